// Package importer handles the ingestion boundaries: JSON snapshots
// (export/import), CSV rows, and OFX/QFX bank statements. Parsers
// return plain transactions or ledger states; the ledger.Store decides
// how they enter the ledger.
package importer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/svanhoutte/stuiver/internal/common"
	"github.com/svanhoutte/stuiver/internal/model"
	"github.com/svanhoutte/stuiver/internal/money"
)

// ExportVersion is the version stamped on exported snapshots.
const ExportVersion = 1

// Envelope is the export wrapper: a full, lossless ledger snapshot.
type Envelope struct {
	Version    int                `json:"version"`
	ExportedAt time.Time          `json:"exportedAt"`
	Data       *model.LedgerState `json:"data"`
}

// Export serializes the full ledger state inside the versioned wrapper.
func Export(state *model.LedgerState, now time.Time) ([]byte, error) {
	raw, err := json.MarshalIndent(Envelope{
		Version:    ExportVersion,
		ExportedAt: now.UTC(),
		Data:       state,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return raw, nil
}

// importTransaction tolerates every transaction shape we accept on
// import. Amount is either a direct minor-unit integer (amountCents) or
// a decimal amount field, which may itself be a number or a string.
type importTransaction struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Note        string          `json:"note"`
	AmountCents *int64          `json:"amountCents"`
	Amount      json.RawMessage `json:"amount"`
}

func (it importTransaction) toModel(now time.Time) model.Transaction {
	tx := model.Transaction{
		ID:       it.ID,
		Kind:     model.ParseKind(it.Type),
		Date:     it.Date,
		Category: it.Category,
		Note:     it.Note,
	}
	if tx.Date == "" {
		tx.Date = now.Format(model.DateLayout)
	}
	if it.AmountCents != nil {
		tx.Amount = *it.AmountCents
	} else if len(it.Amount) > 0 {
		tx.Amount = money.ParseToMinorUnits(strings.Trim(string(it.Amount), `"`))
	}
	return tx
}

// ParseState validates and coerces an import payload into a ledger
// state. Accepted shapes are the versioned export wrapper, a raw
// ledger-state object, and the legacy {tx, cats} payload. A structural
// violation rejects the entire payload; there is no partial acceptance.
// The result still needs storage.Normalize (ids, month default).
func ParseState(raw []byte, now time.Time) (*model.LedgerState, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object", common.ErrInvalidImport)
	}

	// Versioned wrapper: unwrap and validate the inner document.
	if data, ok := probe["data"]; ok {
		if _, versioned := probe["version"]; versioned {
			return ParseState(data, now)
		}
	}

	// Legacy payload exported by the original app.
	if tx, ok := probe["tx"]; ok {
		if cats, okCats := probe["cats"]; okCats {
			return parseLegacyPayload(tx, cats, now)
		}
	}

	catsRaw, ok := probe["categories"]
	if !ok {
		return nil, fmt.Errorf("%w: missing categories object", common.ErrInvalidImport)
	}
	var cats struct {
		Income  []string `json:"income"`
		Expense []string `json:"expense"`
	}
	if err := json.Unmarshal(catsRaw, &cats); err != nil {
		return nil, fmt.Errorf("%w: categories.income and categories.expense must be sequences", common.ErrInvalidImport)
	}

	txRaw, ok := probe["transactions"]
	if !ok {
		return nil, fmt.Errorf("%w: missing transactions sequence", common.ErrInvalidImport)
	}
	var entries []importTransaction
	if err := json.Unmarshal(txRaw, &entries); err != nil {
		return nil, fmt.Errorf("%w: transactions must be a sequence", common.ErrInvalidImport)
	}

	state := &model.LedgerState{
		Categories: model.CategoryRegistry{Income: cats.Income, Expense: cats.Expense},
	}
	if monthRaw, okMonth := probe["selectedMonth"]; okMonth {
		_ = json.Unmarshal(monthRaw, &state.SelectedMonth)
	}
	if budgetsRaw, okBudgets := probe["budgets"]; okBudgets {
		_ = json.Unmarshal(budgetsRaw, &state.Budgets)
	}
	for _, entry := range entries {
		state.Transactions = append(state.Transactions, entry.toModel(now))
	}
	return state, nil
}

func parseLegacyPayload(txRaw, catsRaw json.RawMessage, now time.Time) (*model.LedgerState, error) {
	var entries []importTransaction
	if err := json.Unmarshal(txRaw, &entries); err != nil {
		return nil, fmt.Errorf("%w: tx must be a sequence", common.ErrInvalidImport)
	}
	var cats struct {
		Income  []string `json:"income"`
		Expense []string `json:"expense"`
	}
	if err := json.Unmarshal(catsRaw, &cats); err != nil {
		return nil, fmt.Errorf("%w: cats.income and cats.expense must be sequences", common.ErrInvalidImport)
	}

	state := &model.LedgerState{
		Categories: model.CategoryRegistry{Income: cats.Income, Expense: cats.Expense},
	}
	for _, entry := range entries {
		state.Transactions = append(state.Transactions, entry.toModel(now))
	}
	return state, nil
}
