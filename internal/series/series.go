// Package series builds the per-day aggregates behind the overview
// chart: daily income/expense totals and the cumulative running balance.
package series

import (
	"sort"

	"github.com/svanhoutte/stuiver/internal/model"
)

// DayTotal holds one day's summed income and expense in minor units.
type DayTotal struct {
	Income  int64
	Expense int64
}

// DailyTotals groups transactions by exact date, summing each kind
// independently. A day with activity of only one kind reports zero for
// the other.
func DailyTotals(transactions []model.Transaction) map[string]DayTotal {
	totals := make(map[string]DayTotal)
	for _, t := range transactions {
		day := totals[t.Date]
		if t.Kind == model.KindIncome {
			day.Income += t.Amount
		} else {
			day.Expense += t.Amount
		}
		totals[t.Date] = day
	}
	return totals
}

// Daily is a chart-ready series over the distinct active dates of a
// transaction set. Labels are sorted ascending and sparse: days without
// any transaction are not synthesized.
type Daily struct {
	Labels  []string
	Income  []int64
	Expense []int64
	Running []int64
}

// DailySeries builds the daily series for exactly the transactions
// passed in. Running[i] is the prefix sum of (income - expense) up to
// and including Labels[i]; over a month-scoped subset the running
// balance therefore starts from that scope's own beginning.
func DailySeries(transactions []model.Transaction) Daily {
	totals := DailyTotals(transactions)

	labels := make([]string, 0, len(totals))
	for date := range totals {
		labels = append(labels, date)
	}
	sort.Strings(labels)

	out := Daily{
		Labels:  labels,
		Income:  make([]int64, len(labels)),
		Expense: make([]int64, len(labels)),
		Running: make([]int64, len(labels)),
	}
	var run int64
	for i, date := range labels {
		day := totals[date]
		out.Income[i] = day.Income
		out.Expense[i] = day.Expense
		run += day.Income - day.Expense
		out.Running[i] = run
	}
	return out
}
