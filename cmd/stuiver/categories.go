package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svanhoutte/stuiver/internal/cli"
	"github.com/svanhoutte/stuiver/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage income and expense categories",
		Long: `List, add, and remove category names. Removing a category never touches
the transactions that reference it; they simply keep the orphaned name.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(removeCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			state := store.State()
			fmt.Println(cli.TitleStyle.Render("Income"))
			for _, name := range state.Categories.Income {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println(cli.TitleStyle.Render("Expense"))
			for _, name := range state.Categories.Expense {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <income|expense> <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			kind := model.ParseKind(args[0])
			if err := store.AddCategory(ctx, kind, args[1]); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added %s category %q", kind, args[1])))
			return nil
		},
	}
}

func removeCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <income|expense> <name>",
		Short: "Remove a category",
		Long:  `Remove a category name from the registry. Existing transactions keep the name.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			kind := model.ParseKind(args[0])
			if err := store.RemoveCategory(ctx, kind, args[1]); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Removed %s category %q", kind, args[1])))
			return nil
		},
	}
}
