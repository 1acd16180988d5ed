package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/svanhoutte/stuiver/internal/cli"
	"github.com/svanhoutte/stuiver/internal/importer"
)

func importCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-csv <file>",
		Short: "Append transactions from a CSV file",
		Long: `Import rows from a CSV export. The delimiter (comma, semicolon, or tab)
is detected from the header row, which names the columns: date, type,
category, amount, note. Dates may be DD/MM/YYYY or YYYY-MM-DD. Imported
rows are appended to the ledger; nothing is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open CSV file: %w", err)
			}
			defer f.Close()

			transactions, err := importer.ParseCSV(f)
			if err != nil {
				return err
			}
			if len(transactions) == 0 {
				fmt.Println(cli.WarningStyle.Render("No importable rows found."))
				return nil
			}

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			added, err := store.AppendTransactions(ctx, transactions)
			if err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Imported %d transactions from %s", added, args[0])))
			return nil
		},
	}
}
