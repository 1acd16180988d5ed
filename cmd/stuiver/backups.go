package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/svanhoutte/stuiver/internal/cli"
)

func backupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "Inspect and restore rolling backups",
		Long: `Every mutation snapshots the ledger into a small rolling backup log.
These backups are a recovery net against accidental destructive edits,
not a full history.`,
	}

	cmd.AddCommand(listBackupsCmd())
	cmd.AddCommand(restoreBackupCmd())

	return cmd
}

func listBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available backups, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			backups, err := store.Backups(ctx)
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Println(cli.InfoStyle.Render("No backups yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.BoldStyle.Render("#"),
				cli.BoldStyle.Render("TAKEN AT"),
				cli.BoldStyle.Render("TRANSACTIONS"))
			for i, b := range backups {
				fmt.Fprintf(w, "%d\t%s\t%d\n", i, b.TakenAt.Format("2006-01-02 15:04:05"), len(b.State.Transactions))
			}
			return nil
		},
	}
}

func restoreBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <#>",
		Short: "Restore the ledger from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid backup number: %w", err)
			}

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.RestoreBackup(ctx, index); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Restored backup %d (%d transactions)",
				index, len(store.State().Transactions))))
			return nil
		},
	}
}
