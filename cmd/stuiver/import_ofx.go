package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/svanhoutte/stuiver/internal/cli"
	"github.com/svanhoutte/stuiver/internal/importer"
	"github.com/svanhoutte/stuiver/internal/model"
)

func importOFXCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Append transactions from OFX/QFX bank statements",
		Long: `Import statement entries from OFX or QFX files exported from your bank.
Debits become expenses, credits income; entries without a usable type
hint land in the "Bank import" category for recategorizing.

Examples:
  # Import a single file
  stuiver import-ofx ~/Downloads/statement_jan.qfx

  # Import all statements in a directory
  stuiver import-ofx ~/Downloads/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Expand globs and collect all files
			var allFiles []string
			for _, pattern := range args {
				matches, err := filepath.Glob(pattern)
				if err != nil {
					return fmt.Errorf("invalid pattern %s: %w", pattern, err)
				}
				if len(matches) == 0 {
					if _, err := os.Stat(pattern); err == nil {
						allFiles = append(allFiles, pattern)
					} else {
						slog.Warn("No files found matching pattern", "pattern", pattern)
					}
				} else {
					allFiles = append(allFiles, matches...)
				}
			}
			if len(allFiles) == 0 {
				return fmt.Errorf("no files found to import")
			}

			parser := importer.NewOFXParser()
			bar := progressbar.Default(int64(len(allFiles)), "parsing statements")

			var transactions []model.Transaction
			for _, path := range allFiles {
				f, err := os.Open(path)
				if err != nil {
					slog.Error("Failed to open file", "file", path, "error", err)
					_ = bar.Add(1)
					continue
				}
				parsed, err := parser.Parse(f)
				_ = f.Close()
				if err != nil {
					slog.Error("Failed to parse OFX file", "file", path, "error", err)
					_ = bar.Add(1)
					continue
				}
				transactions = append(transactions, parsed...)
				_ = bar.Add(1)
			}

			if len(transactions) == 0 {
				fmt.Println(cli.WarningStyle.Render("No transactions found in the given files."))
				return nil
			}
			if dryRun {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("Dry run: %d transactions would be imported.", len(transactions))))
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
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Imported %d transactions from %d files", added, len(allFiles))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview import without saving")

	return cmd
}
