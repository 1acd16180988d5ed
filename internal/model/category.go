package model

import "strings"

// CategoryRegistry holds the user's category names per kind. Names are
// unique within a kind and keep first-seen order, which is also display
// order. A transaction may reference a name that is no longer (or never
// was) registered; such orphans are tolerated everywhere.
type CategoryRegistry struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

// ForKind returns the name sequence for the given kind.
func (r *CategoryRegistry) ForKind(kind Kind) []string {
	if kind == KindIncome {
		return r.Income
	}
	return r.Expense
}

// Ensure registers name under kind if it is not already present.
// The name is trimmed first; an empty result or an exact duplicate is a
// no-op. Returns true when the registry changed.
func (r *CategoryRegistry) Ensure(kind Kind, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, existing := range r.ForKind(kind) {
		if existing == name {
			return false
		}
	}
	if kind == KindIncome {
		r.Income = append(r.Income, name)
	} else {
		r.Expense = append(r.Expense, name)
	}
	return true
}

// Remove drops name from kind's sequence. Transactions referencing the
// name are left alone. Returns true when the registry changed.
func (r *CategoryRegistry) Remove(kind Kind, name string) bool {
	seq := r.ForKind(kind)
	for i, existing := range seq {
		if existing == name {
			seq = append(seq[:i], seq[i+1:]...)
			if kind == KindIncome {
				r.Income = seq
			} else {
				r.Expense = seq
			}
			return true
		}
	}
	return false
}

// BudgetMap stores explicit per-category budgets in minor units.
// Budgets apply to expense categories only; a category absent from the
// map has no explicit budget.
type BudgetMap struct {
	Expense map[string]int64 `json:"expense"`
}
