package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/svanhoutte/stuiver/internal/cli"
	"github.com/svanhoutte/stuiver/internal/model"
)

func monthCmd() *cobra.Command {
	var (
		allFlag   bool
		todayFlag bool
	)

	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show or change the selected month filter",
		Long: `Without arguments, print the active scope. With a YYYY-MM argument,
scope all views to that month. --all switches to the explicit all-time
view; --today jumps back to the current calendar month.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			var month string
			switch {
			case allFlag:
				month = model.ScopeAll
			case todayFlag:
				month = model.CurrentMonth(time.Now())
			case len(args) == 1:
				month = args[0]
			default:
				fmt.Printf("Current scope: %s\n", cli.BoldStyle.Render(scopeLabel(store.State())))
				return nil
			}

			if err := store.SetSelectedMonth(ctx, month); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Scope set to %s", scopeLabel(store.State()))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&allFlag, "all", false, "show all transactions regardless of month")
	cmd.Flags().BoolVar(&todayFlag, "today", false, "scope to the current calendar month")

	return cmd
}
