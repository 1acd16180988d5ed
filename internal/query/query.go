// Package query derives filtered views and aggregates from the ledger.
// Everything here is a pure function over transaction slices; results
// are freshly allocated and never alias store state.
package query

import (
	"sort"

	"github.com/svanhoutte/stuiver/internal/model"
)

// InScope returns the transactions visible under the state's month
// filter: everything for the explicit all-time scope, otherwise the
// entries whose date falls in the selected YYYY-MM. Order is not
// specified; callers sort explicitly.
func InScope(state *model.LedgerState) []model.Transaction {
	if state.SelectedMonth == model.ScopeAll {
		return append([]model.Transaction(nil), state.Transactions...)
	}
	var out []model.Transaction
	for _, t := range state.Transactions {
		if t.YearMonth() == state.SelectedMonth {
			out = append(out, t)
		}
	}
	return out
}

// ByKind keeps only transactions of the given kind.
func ByKind(transactions []model.Transaction, kind model.Kind) []model.Transaction {
	var out []model.Transaction
	for _, t := range transactions {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// SumByKind totals the minor-unit amounts of the given kind.
func SumByKind(transactions []model.Transaction, kind model.Kind) int64 {
	var sum int64
	for _, t := range transactions {
		if t.Kind == kind {
			sum += t.Amount
		}
	}
	return sum
}

// Balance is income minus expense over the given transactions.
func Balance(transactions []model.Transaction) int64 {
	return SumByKind(transactions, model.KindIncome) - SumByKind(transactions, model.KindExpense)
}

// SortedByDateAsc returns a copy sorted by date, oldest first. The sort
// is stable: same-day entries keep their insertion order.
func SortedByDateAsc(transactions []model.Transaction) []model.Transaction {
	out := append([]model.Transaction(nil), transactions...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// SortedByDateDesc returns a copy sorted by date, newest first, with
// same-day entries keeping their insertion order.
func SortedByDateDesc(transactions []model.Transaction) []model.Transaction {
	out := append([]model.Transaction(nil), transactions...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}
