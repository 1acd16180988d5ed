package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/svanhoutte/stuiver/internal/budget"
	"github.com/svanhoutte/stuiver/internal/cli"
	"github.com/svanhoutte/stuiver/internal/model"
	"github.com/svanhoutte/stuiver/internal/money"
	"github.com/svanhoutte/stuiver/internal/query"
)

const envelopeBarWidth = 24

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage per-category budget envelopes",
		Long: `Set explicit budgets for expense categories and inspect spending
against them. A category without an explicit budget falls back to its
prorated monthly average (total historical spend normalized to a 31-day
month over the observed activity span).`,
	}

	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(applyAveragesCmd())

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show envelopes for the current scope",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			state := store.State()
			scoped := query.ByKind(query.InScope(state), model.KindExpense)
			averages := budget.AverageMonthlySpend(state.Transactions)
			format := moneyFormatter()

			spentPerCategory := make(map[string]int64)
			for _, t := range scoped {
				spentPerCategory[t.Category] += t.Amount
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Envelopes (%s)", scopeLabel(state))))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("CATEGORY"),
				cli.BoldStyle.Render("SPENT"),
				cli.BoldStyle.Render("BUDGET"),
				cli.BoldStyle.Render("AVG/MONTH"),
				cli.BoldStyle.Render(""),
				cli.BoldStyle.Render("STATUS"))

			for _, category := range state.Categories.Expense {
				spent := spentPerCategory[category]
				allowance := budget.BudgetFor(state, category)
				envelope := budget.Classify(spent, allowance)

				status := cli.SuccessStyle.Render(fmt.Sprintf("%s left", format.FormatMinorUnits(envelope.Remaining)))
				if envelope.Over > 0 {
					status = cli.ErrorStyle.Render(fmt.Sprintf("%s over", format.FormatMinorUnits(envelope.Over)))
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					category,
					format.FormatMinorUnits(spent),
					format.FormatMinorUnits(allowance),
					cli.SubtleStyle.Render(format.FormatMinorUnits(averages[category])),
					cli.EnvelopeBar(envelope, envelopeBarWidth),
					status)
			}
			return nil
		},
	}
}

func setBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set an explicit expense budget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			cents := money.ParseToMinorUnits(args[1])
			if err := store.SetBudget(ctx, args[0], cents); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Budget for %q set to %s",
				args[0], moneyFormatter().FormatMinorUnits(cents))))
			return nil
		},
	}
}

func applyAveragesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply-averages",
		Short: "Set every expense budget to its computed monthly average",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.ApplyAveragesToBudgets(ctx); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("✓ Budgets set to prorated monthly averages"))
			return nil
		},
	}
}
