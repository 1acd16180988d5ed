// Package budget computes per-category envelopes: prorated monthly
// spending averages and budget-versus-spend classification.
package budget

import (
	"time"

	"github.com/svanhoutte/stuiver/internal/model"
)

// normalizedMonthDays is the standard month length averages are
// prorated to, independent of which calendar months the data covers.
const normalizedMonthDays = 31

// AverageMonthlySpend computes each expense category's historical spend
// normalized to a 31-day month. The observed span runs from the
// earliest to the latest expense date across all categories, so every
// category is measured against the same window; a category active only
// in a short sub-window is averaged over the full span regardless.
func AverageMonthlySpend(transactions []model.Transaction) map[string]int64 {
	totals := make(map[string]int64)
	var minDate, maxDate string
	for _, t := range transactions {
		if t.Kind != model.KindExpense {
			continue
		}
		totals[t.Category] += t.Amount
		if minDate == "" || t.Date < minDate {
			minDate = t.Date
		}
		if maxDate == "" || t.Date > maxDate {
			maxDate = t.Date
		}
	}
	if len(totals) == 0 {
		return totals
	}

	spanDays := observedSpanDays(minDate, maxDate)
	averages := make(map[string]int64, len(totals))
	for category, total := range totals {
		// round(total / spanDays * 31), half up, in integer arithmetic
		averages[category] = (total*normalizedMonthDays + spanDays/2) / spanDays
	}
	return averages
}

// observedSpanDays is the inclusive day count between two canonical
// dates, never less than 1.
func observedSpanDays(minDate, maxDate string) int64 {
	start, errStart := time.Parse(model.DateLayout, minDate)
	end, errEnd := time.Parse(model.DateLayout, maxDate)
	if errStart != nil || errEnd != nil {
		return 1
	}
	days := int64(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// BudgetFor resolves a category's effective budget: the explicit budget
// when set and nonzero, otherwise the category's computed average over
// the full transaction history.
func BudgetFor(state *model.LedgerState, category string) int64 {
	if explicit := state.Budgets.Expense[category]; explicit > 0 {
		return explicit
	}
	return AverageMonthlySpend(state.Transactions)[category]
}

// Envelope splits spending against a budget for proportional display.
// Within + Over always equals the spend, and Within + Over + Remaining
// always equals max(spent, budget).
type Envelope struct {
	Within    int64
	Over      int64
	Remaining int64
}

// Classify splits spent against budget.
func Classify(spent, budget int64) Envelope {
	e := Envelope{Within: spent}
	if spent > budget {
		e.Within = budget
		e.Over = spent - budget
	}
	if budget > spent {
		e.Remaining = budget - spent
	}
	return e
}
