package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/notaflow/notaflow/internal/cli"
	"github.com/notaflow/notaflow/internal/display"
	"github.com/notaflow/notaflow/internal/shopping"
)

func listsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage shopping lists",
	}

	cmd.AddCommand(listsShowCmd())
	cmd.AddCommand(listsFromInvoiceCmd())

	return cmd
}

func listsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your shopping lists, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			lists, err := store.ListShoppingLists(ctx, currentUserID())
			if err != nil {
				return err
			}

			if len(lists) == 0 {
				fmt.Println(cli.FormatInfo("No shopping lists yet"))
				return nil
			}

			for i := range lists {
				list := &lists[i]
				fmt.Printf("%s %s %s\n", cli.ListIcon, cli.BoldStyle.Render(list.Name),
					cli.SubtleStyle.Render(fmt.Sprintf("[%s, ~%s]", list.Status, display.Currency(list.TotalEstimatedCost))))
				for _, item := range list.Items {
					check := " "
					if item.Purchased {
						check = cli.SuccessIcon
					}
					fmt.Printf("  [%s] %-36s x%.0f %10s\n", check, item.Name, item.Quantity, display.Currency(item.EstimatedPrice))
				}
				fmt.Println()
			}

			return nil
		},
	}
}

func listsFromInvoiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "from-invoice <invoice-id>",
		Short: "Create a shopping list from a stored invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid invoice ID %q", args[0])
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			inv, err := store.GetInvoiceByID(ctx, id)
			if err != nil {
				return err
			}

			list := shopping.FromInvoice(inv)
			listID, err := store.SaveShoppingList(ctx, list)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Shopping list %q created with ID %d (%d items)", list.Name, listID, len(list.Items))))
			return nil
		},
	}
}
