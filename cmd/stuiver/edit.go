package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svanhoutte/stuiver/internal/cli"
	"github.com/svanhoutte/stuiver/internal/ledger"
	"github.com/svanhoutte/stuiver/internal/model"
	"github.com/svanhoutte/stuiver/internal/money"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction by id",
		Long:  `Remove a transaction. Deleting an id that does not exist is a no-op.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.DeleteTransaction(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted %s", args[0])))
			return nil
		},
	}
}

func updateCmd() *cobra.Command {
	var (
		kindFlag     string
		dateFlag     string
		categoryFlag string
		amountFlag   string
		noteFlag     string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a transaction",
		Long:  `Replace one or more fields of an existing transaction. Unset flags keep their current value; the id never changes.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			var update ledger.TransactionUpdate
			if cmd.Flags().Changed("type") {
				kind := model.ParseKind(kindFlag)
				update.Kind = &kind
			}
			if cmd.Flags().Changed("date") {
				update.Date = &dateFlag
			}
			if cmd.Flags().Changed("category") {
				update.Category = &categoryFlag
			}
			if cmd.Flags().Changed("amount") {
				amount := money.ParseToMinorUnits(amountFlag)
				update.Amount = &amount
			}
			if cmd.Flags().Changed("note") {
				update.Note = &noteFlag
			}

			if err := store.UpdateTransaction(ctx, args[0], update); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Updated %s", args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "type", "", "new type (income or expense)")
	cmd.Flags().StringVar(&dateFlag, "date", "", "new date as YYYY-MM-DD")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "new category")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "new amount")
	cmd.Flags().StringVar(&noteFlag, "note", "", "new note")

	return cmd
}
