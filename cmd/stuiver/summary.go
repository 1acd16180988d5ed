package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/svanhoutte/stuiver/internal/cli"
	"github.com/svanhoutte/stuiver/internal/model"
	"github.com/svanhoutte/stuiver/internal/query"
	"github.com/svanhoutte/stuiver/internal/series"
)

func summaryCmd() *cobra.Command {
	var allFlag bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Totals and daily running balance for the current scope",
		Long: `Show income, expense, and balance totals for the selected month (or all
time), followed by the per-day series the overview chart is built from.
Over a month scope the running balance starts from that month's own
beginning; over all time it is the true cumulative balance.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			state := store.State()
			if allFlag {
				state.SelectedMonth = model.ScopeAll
			}

			transactions := query.InScope(state)
			format := moneyFormatter()

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Summary (%s)", scopeLabel(state))))
			fmt.Printf("  Income:  %s\n", cli.IncomeStyle.Render(format.FormatMinorUnits(query.SumByKind(transactions, model.KindIncome))))
			fmt.Printf("  Expense: %s\n", cli.ExpenseStyle.Render(format.FormatMinorUnits(query.SumByKind(transactions, model.KindExpense))))
			fmt.Printf("  Balance: %s\n", cli.BoldStyle.Render(format.FormatMinorUnits(query.Balance(transactions))))

			daily := series.DailySeries(transactions)
			if len(daily.Labels) == 0 {
				return nil
			}

			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("DATE"),
				cli.BoldStyle.Render("INCOME"),
				cli.BoldStyle.Render("EXPENSE"),
				cli.BoldStyle.Render("RUNNING"))
			for i, date := range daily.Labels {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					date,
					format.FormatMinorUnits(daily.Income[i]),
					format.FormatMinorUnits(daily.Expense[i]),
					format.FormatMinorUnits(daily.Running[i]))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&allFlag, "all", false, "summarize the entire history instead of the selected month")

	return cmd
}
