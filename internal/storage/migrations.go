package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/svanhoutte/stuiver/internal/model"
)

// Storage keys. LedgerKey is the one permanent home of the ledger
// document; the migration steps below read the layouts that predate it.
const (
	LedgerKey  = "ledger.v2"
	BackupsKey = "ledger.backups"
)

// newID generates transaction ids. Overridable in tests.
var newID = uuid.NewString

// Migration is one legacy-layout loader. Steps are tried in priority
// order; each is a pure read that either produces a ledger state or
// reports that its layout is not present.
type Migration struct {
	Load        func(ctx context.Context, kv KV) (*model.LedgerState, bool, error)
	Description string
}

var migrations = []Migration{
	{
		Description: "single-document v1 layout (fb_data_v1)",
		Load:        loadV1Document,
	},
	{
		Description: "split tx/cats layout",
		Load:        loadSplitDocuments,
	},
}

// LoadState loads the ledger from the permanent key, falling back to
// legacy layouts in priority order. A successful legacy load is written
// back under the permanent key so the migration runs once. Nothing
// parseable anywhere yields the default state; this function never
// surfaces a malformed-document error to the caller.
func LoadState(ctx context.Context, kv KV, now time.Time) (*model.LedgerState, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	raw, found, err := kv.Get(ctx, LedgerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger document: %w", err)
	}
	if found {
		var state model.LedgerState
		if jsonErr := json.Unmarshal(raw, &state); jsonErr != nil {
			slog.Warn("ledger document is malformed, starting from defaults",
				"key", LedgerKey, "error", jsonErr)
			return model.DefaultState(now), nil
		}
		return Normalize(&state, now), nil
	}

	for _, migration := range migrations {
		state, ok, loadErr := migration.Load(ctx, kv)
		if loadErr != nil {
			return nil, fmt.Errorf("migration %q failed: %w", migration.Description, loadErr)
		}
		if !ok {
			continue
		}
		state = Normalize(state, now)
		if saveErr := SaveState(ctx, kv, state); saveErr != nil {
			return nil, fmt.Errorf("failed to persist migrated ledger: %w", saveErr)
		}
		slog.Info("Migrated legacy ledger data",
			"layout", migration.Description,
			"transactions", len(state.Transactions))
		return state, nil
	}

	return model.DefaultState(now), nil
}

// SaveState writes the full ledger document under the permanent key.
func SaveState(ctx context.Context, kv KV, state *model.LedgerState) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode ledger state: %w", err)
	}
	return kv.Put(ctx, LedgerKey, raw)
}

// Normalize repairs a decoded ledger state in place and returns it.
// Missing sequences and maps become empty, transactions without an id
// get a fresh one, and an unset month filter defaults to the current
// month. An explicitly stored "all" scope is preserved. Normalizing
// twice yields the same result as normalizing once.
func Normalize(state *model.LedgerState, now time.Time) *model.LedgerState {
	if state.Categories.Income == nil {
		state.Categories.Income = []string{}
	}
	if state.Categories.Expense == nil {
		state.Categories.Expense = []string{}
	}
	if state.Transactions == nil {
		state.Transactions = []model.Transaction{}
	}
	if state.Budgets.Expense == nil {
		state.Budgets.Expense = make(map[string]int64)
	}
	if state.SelectedMonth == "" {
		state.SelectedMonth = model.CurrentMonth(now)
	}
	for i := range state.Transactions {
		if state.Transactions[i].ID == "" {
			state.Transactions[i].ID = newID()
		}
		if state.Transactions[i].Kind != model.KindIncome {
			state.Transactions[i].Kind = model.KindExpense
		}
	}
	state.SchemaVersion = model.SchemaVersion
	return state
}

// legacyTransaction is the persisted transaction shape of the pre-v2
// layouts: kind under "type", amount as a decimal number of whole euros.
type legacyTransaction struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Note     string  `json:"note"`
	Amount   float64 `json:"amount"`
}

func (l legacyTransaction) toModel() model.Transaction {
	return model.Transaction{
		ID:       l.ID,
		Kind:     model.ParseKind(l.Type),
		Date:     l.Date,
		Category: l.Category,
		Amount:   decimal.NewFromFloat(l.Amount).Shift(2).Round(0).IntPart(),
		Note:     l.Note,
	}
}

// loadV1Document reads the fb_data_v1 single-document layout.
func loadV1Document(ctx context.Context, kv KV) (*model.LedgerState, bool, error) {
	raw, found, err := kv.Get(ctx, "fb_data_v1")
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	var doc struct {
		Categories   model.CategoryRegistry `json:"categories"`
		Transactions []legacyTransaction    `json:"transactions"`
	}
	if jsonErr := json.Unmarshal(raw, &doc); jsonErr != nil {
		slog.Warn("skipping malformed legacy document", "key", "fb_data_v1", "error", jsonErr)
		return nil, false, nil
	}

	state := &model.LedgerState{Categories: doc.Categories}
	for _, legacy := range doc.Transactions {
		state.Transactions = append(state.Transactions, legacy.toModel())
	}
	return state, true, nil
}

// loadSplitDocuments reads the oldest layout, which kept transactions
// and categories under separate keys.
func loadSplitDocuments(ctx context.Context, kv KV) (*model.LedgerState, bool, error) {
	rawTx, found, err := kv.Get(ctx, "tx")
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	var legacyTxs []legacyTransaction
	if jsonErr := json.Unmarshal(rawTx, &legacyTxs); jsonErr != nil {
		slog.Warn("skipping malformed legacy document", "key", "tx", "error", jsonErr)
		return nil, false, nil
	}

	state := &model.LedgerState{}
	for _, legacy := range legacyTxs {
		state.Transactions = append(state.Transactions, legacy.toModel())
	}

	// Categories lived under their own key and may be missing entirely.
	if rawCats, catsFound, catsErr := kv.Get(ctx, "cats"); catsErr != nil {
		return nil, false, catsErr
	} else if catsFound {
		if jsonErr := json.Unmarshal(rawCats, &state.Categories); jsonErr != nil {
			slog.Warn("ignoring malformed legacy categories", "key", "cats", "error", jsonErr)
		}
	}
	return state, true, nil
}
