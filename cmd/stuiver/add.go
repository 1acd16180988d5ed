package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/svanhoutte/stuiver/internal/cli"
	"github.com/svanhoutte/stuiver/internal/model"
	"github.com/svanhoutte/stuiver/internal/money"
)

func addCmd() *cobra.Command {
	var (
		kindFlag     string
		dateFlag     string
		categoryFlag string
		amountFlag   string
		noteFlag     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an income or expense entry",
		Long: `Record a new ledger entry. The amount accepts both decimal comma and
decimal dot notation ("12,34", "12.34", "1.234,56"); a category typed
here is registered automatically.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			date := dateFlag
			if date == "" {
				date = time.Now().Format(model.DateLayout)
			}

			// The codec maps garbage to 0; the store rejects <= 0.
			amount := money.ParseToMinorUnits(amountFlag)

			id, err := store.AddTransaction(ctx, model.ParseKind(kindFlag), date, categoryFlag, amount, noteFlag)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added %s of %s on %s (%s)",
				model.ParseKind(kindFlag), moneyFormatter().FormatMinorUnits(amount), date, id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "type", "t", "expense", "entry type (income or expense)")
	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&categoryFlag, "category", "c", "", "category name")
	cmd.Flags().StringVarP(&amountFlag, "amount", "a", "", "amount, e.g. \"12,34\"")
	cmd.Flags().StringVarP(&noteFlag, "note", "n", "", "free-form note")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
