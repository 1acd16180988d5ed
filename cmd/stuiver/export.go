package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/svanhoutte/stuiver/internal/cli"
	"github.com/svanhoutte/stuiver/internal/importer"
)

func exportCmd() *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full ledger as a JSON snapshot",
		Long:  `Write a versioned, lossless snapshot of the whole ledger to stdout or a file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			raw, err := importer.Export(store.State(), time.Now())
			if err != nil {
				return err
			}

			if outFlag == "" {
				fmt.Println(string(raw))
				return nil
			}
			if err := os.WriteFile(outFlag, raw, 0600); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Exported ledger to %s", outFlag)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "output file (default: stdout)")

	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON snapshot, replacing the current ledger",
		Long: `Replace the ledger with a previously exported snapshot. Accepted shapes
are the versioned export wrapper, a raw ledger document, and the legacy
{tx, cats} backup format. A structurally invalid payload is rejected
whole; the current ledger is left untouched. The replaced state remains
reachable via the rolling backups.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import file: %w", err)
			}

			state, err := importer.ParseState(raw, time.Now())
			if err != nil {
				return err
			}

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.ReplaceState(ctx, state); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Imported %d transactions from %s",
				len(store.State().Transactions), args[0])))
			return nil
		},
	}
}
