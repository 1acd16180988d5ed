// Package ledger owns the authoritative ledger state. Every mutation
// runs validate → mutate → persist → backup-rotate before returning, so
// no partial state is ever visible across calls. Derived views live in
// the query, series and budget packages and work on snapshots.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/svanhoutte/stuiver/internal/budget"
	"github.com/svanhoutte/stuiver/internal/common"
	"github.com/svanhoutte/stuiver/internal/model"
	"github.com/svanhoutte/stuiver/internal/storage"
)

// Store is the single owner of the persisted ledger document.
type Store struct {
	kv    storage.KV
	state *model.LedgerState
	now   func() time.Time
	newID func() string
}

// Open loads (and if necessary migrates) the ledger from kv.
func Open(ctx context.Context, kv storage.KV) (*Store, error) {
	s := &Store{
		kv:    kv,
		now:   time.Now,
		newID: uuid.NewString,
	}
	state, err := storage.LoadState(ctx, kv, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	s.state = state
	return s, nil
}

// State returns a snapshot of the current ledger state. Mutating the
// snapshot has no effect on the store.
func (s *Store) State() *model.LedgerState {
	return s.state.Clone()
}

// persist writes the full document and rotates the backup log.
func (s *Store) persist(ctx context.Context) error {
	if err := storage.SaveState(ctx, s.kv, s.state); err != nil {
		return fmt.Errorf("failed to persist ledger: %w", err)
	}
	if err := storage.RotateBackup(ctx, s.kv, s.state, s.now()); err != nil {
		return fmt.Errorf("failed to rotate backups: %w", err)
	}
	return nil
}

// AddTransaction validates and appends a new entry, implicitly
// registering its category, and returns the generated id.
func (s *Store) AddTransaction(ctx context.Context, kind model.Kind, date, category string, amount int64, note string) (string, error) {
	category = strings.TrimSpace(category)
	if date == "" {
		return "", common.Invalidf("date is required")
	}
	if !model.ValidDate(date) {
		return "", common.Invalidf("date %q is not a valid YYYY-MM-DD date", date)
	}
	if amount <= 0 {
		return "", common.Invalidf("amount must be positive")
	}
	if category == "" {
		return "", common.Invalidf("category is required")
	}

	tx := model.Transaction{
		ID:       s.newID(),
		Kind:     kind,
		Date:     date,
		Category: category,
		Amount:   amount,
		Note:     strings.TrimSpace(note),
	}
	s.state.Categories.Ensure(kind, category)
	s.state.Transactions = append(s.state.Transactions, tx)

	if err := s.persist(ctx); err != nil {
		return "", err
	}
	slog.Debug("added transaction", "id", tx.ID, "kind", kind, "date", date, "amount", amount)
	return tx.ID, nil
}

// TransactionUpdate lists the mutable fields of a transaction. Nil
// fields are left untouched; the id never changes.
type TransactionUpdate struct {
	Kind     *model.Kind
	Date     *string
	Category *string
	Amount   *int64
	Note     *string
}

// UpdateTransaction replaces the given fields of the transaction with
// the matching id. A missing id is ErrNotFound.
func (s *Store) UpdateTransaction(ctx context.Context, id string, update TransactionUpdate) error {
	idx := -1
	for i := range s.state.Transactions {
		if s.state.Transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: transaction %q", common.ErrNotFound, id)
	}

	if update.Date != nil && !model.ValidDate(*update.Date) {
		return common.Invalidf("date %q is not a valid YYYY-MM-DD date", *update.Date)
	}
	if update.Amount != nil && *update.Amount <= 0 {
		return common.Invalidf("amount must be positive")
	}
	if update.Category != nil && strings.TrimSpace(*update.Category) == "" {
		return common.Invalidf("category is required")
	}

	tx := &s.state.Transactions[idx]
	if update.Kind != nil {
		tx.Kind = *update.Kind
	}
	if update.Date != nil {
		tx.Date = *update.Date
	}
	if update.Category != nil {
		tx.Category = strings.TrimSpace(*update.Category)
	}
	if update.Amount != nil {
		tx.Amount = *update.Amount
	}
	if update.Note != nil {
		tx.Note = strings.TrimSpace(*update.Note)
	}
	s.state.Categories.Ensure(tx.Kind, tx.Category)

	return s.persist(ctx)
}

// DeleteTransaction removes the entry with the given id. An absent id
// is a silent no-op; deletion is idempotent.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	for i := range s.state.Transactions {
		if s.state.Transactions[i].ID == id {
			s.state.Transactions = append(s.state.Transactions[:i], s.state.Transactions[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// AddCategory registers a new category name under kind. Empty or
// duplicate names are no-ops.
func (s *Store) AddCategory(ctx context.Context, kind model.Kind, name string) error {
	if !s.state.Categories.Ensure(kind, name) {
		return nil
	}
	return s.persist(ctx)
}

// RemoveCategory drops a name from the registry. Transactions keep the
// orphaned name; nothing cascades.
func (s *Store) RemoveCategory(ctx context.Context, kind model.Kind, name string) error {
	if !s.state.Categories.Remove(kind, name) {
		return nil
	}
	return s.persist(ctx)
}

// SetBudget stores an explicit expense budget for a category. Negative
// input clamps to 0.
func (s *Store) SetBudget(ctx context.Context, category string, cents int64) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return common.Invalidf("category is required")
	}
	if cents < 0 {
		cents = 0
	}
	s.state.Budgets.Expense[category] = cents
	return s.persist(ctx)
}

// SetSelectedMonth replaces the month filter. month is either a YYYY-MM
// token or model.ScopeAll for the explicit all-time view.
func (s *Store) SetSelectedMonth(ctx context.Context, month string) error {
	if month != model.ScopeAll {
		if _, err := time.Parse("2006-01", month); err != nil {
			return common.Invalidf("month %q is not a valid YYYY-MM token", month)
		}
	}
	s.state.SelectedMonth = month
	return s.persist(ctx)
}

// ApplyAveragesToBudgets bulk-sets every known expense category's
// budget to its computed prorated average. Explicit user action, never
// automatic.
func (s *Store) ApplyAveragesToBudgets(ctx context.Context) error {
	averages := budget.AverageMonthlySpend(s.state.Transactions)
	for _, category := range s.state.Categories.Expense {
		s.state.Budgets.Expense[category] = averages[category]
	}
	return s.persist(ctx)
}

// AppendTransactions adds imported entries to the existing ledger,
// generating ids where missing and registering unseen categories.
// Existing transactions are never replaced. Returns the appended count.
func (s *Store) AppendTransactions(ctx context.Context, transactions []model.Transaction) (int, error) {
	seen := make(map[string]bool, len(s.state.Transactions))
	for _, tx := range s.state.Transactions {
		seen[tx.ID] = true
	}
	for _, tx := range transactions {
		if tx.ID == "" || seen[tx.ID] {
			tx.ID = s.newID()
		}
		seen[tx.ID] = true
		if tx.Date == "" {
			tx.Date = s.now().Format(model.DateLayout)
		}
		if tx.Kind != model.KindIncome {
			tx.Kind = model.KindExpense
		}
		if tx.Category != "" {
			s.state.Categories.Ensure(tx.Kind, tx.Category)
		}
		s.state.Transactions = append(s.state.Transactions, tx)
	}
	if len(transactions) == 0 {
		return 0, nil
	}
	if err := s.persist(ctx); err != nil {
		return 0, err
	}
	return len(transactions), nil
}

// ReplaceState swaps in a whole new ledger state, normalizing it first.
// Used by the JSON import path after validation has accepted the
// payload; the previous state remains reachable through the backup log.
func (s *Store) ReplaceState(ctx context.Context, state *model.LedgerState) error {
	s.state = storage.Normalize(state, s.now())
	return s.persist(ctx)
}

// Backups exposes the rolling backup log, most recent first.
func (s *Store) Backups(ctx context.Context) ([]storage.Backup, error) {
	return storage.Backups(ctx, s.kv)
}

// RestoreBackup replaces the live state with the snapshot at the given
// position in the rolling log (0 is the most recent).
func (s *Store) RestoreBackup(ctx context.Context, index int) error {
	backups, err := storage.Backups(ctx, s.kv)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(backups) {
		return fmt.Errorf("%w: backup %d", common.ErrNotFound, index)
	}
	return s.ReplaceState(ctx, backups[index].State)
}
