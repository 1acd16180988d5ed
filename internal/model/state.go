package model

import "time"

// SchemaVersion is the version stamped on freshly normalized state.
const SchemaVersion = 2

// ScopeAll is the explicit "show everything" month filter. It is
// distinct from an unset filter, which defaults to the current month
// when state is loaded.
const ScopeAll = "all"

// LedgerState is the aggregate persisted unit. The ledger.Store is its
// sole owner; everything else works on copies or derived views.
type LedgerState struct {
	SchemaVersion int              `json:"schemaVersion"`
	SelectedMonth string           `json:"selectedMonth"`
	Categories    CategoryRegistry `json:"categories"`
	Budgets       BudgetMap        `json:"budgets"`
	Transactions  []Transaction    `json:"transactions"`
}

// Clone returns a deep copy.
func (s *LedgerState) Clone() *LedgerState {
	out := &LedgerState{
		SchemaVersion: s.SchemaVersion,
		SelectedMonth: s.SelectedMonth,
		Categories: CategoryRegistry{
			Income:  append([]string(nil), s.Categories.Income...),
			Expense: append([]string(nil), s.Categories.Expense...),
		},
		Budgets:      BudgetMap{Expense: make(map[string]int64, len(s.Budgets.Expense))},
		Transactions: append([]Transaction(nil), s.Transactions...),
	}
	for name, cents := range s.Budgets.Expense {
		out.Budgets.Expense[name] = cents
	}
	return out
}

// CurrentMonth formats t as a YYYY-MM token.
func CurrentMonth(t time.Time) string {
	return t.Format("2006-01")
}

// DefaultState is what a brand new household starts from.
func DefaultState(now time.Time) *LedgerState {
	return &LedgerState{
		SchemaVersion: SchemaVersion,
		SelectedMonth: CurrentMonth(now),
		Categories: CategoryRegistry{
			Income:  []string{"Salary"},
			Expense: []string{"Groceries", "Rent", "Utilities"},
		},
		Budgets:      BudgetMap{Expense: make(map[string]int64)},
		Transactions: []Transaction{},
	}
}
