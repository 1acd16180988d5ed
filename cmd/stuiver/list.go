package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/svanhoutte/stuiver/internal/cli"
	"github.com/svanhoutte/stuiver/internal/model"
	"github.com/svanhoutte/stuiver/internal/query"
)

func listCmd() *cobra.Command {
	var (
		kindFlag string
		allFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions in the current scope",
		Long:  `Show the transactions visible under the selected month filter, newest first.`,
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
			switch kindFlag {
			case "income":
				transactions = query.ByKind(transactions, model.KindIncome)
			case "expense":
				transactions = query.ByKind(transactions, model.KindExpense)
			case "all":
			default:
				return fmt.Errorf("invalid type filter %q (want all, income, or expense)", kindFlag)
			}
			transactions = query.SortedByDateDesc(transactions)

			if len(transactions) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No transactions for %s.", scopeLabel(state))))
				return nil
			}

			format := moneyFormatter()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("DATE"),
				cli.BoldStyle.Render("TYPE"),
				cli.BoldStyle.Render("CATEGORY"),
				cli.BoldStyle.Render("AMOUNT"),
				cli.BoldStyle.Render("NOTE"),
				cli.BoldStyle.Render("ID"))

			for _, t := range transactions {
				amount := format.FormatMinorUnits(t.Amount)
				if t.Kind == model.KindIncome {
					amount = cli.IncomeStyle.Render(amount)
				} else {
					amount = cli.ExpenseStyle.Render("-" + amount)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					t.Date, t.Kind, t.Category, amount, t.Note, cli.SubtleStyle.Render(t.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "type", "all", "filter by type (all, income, expense)")
	cmd.Flags().BoolVar(&allFlag, "all", false, "ignore the month filter for this listing")

	return cmd
}
