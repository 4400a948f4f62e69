package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/notaflow/notaflow/internal/cli"
	"github.com/notaflow/notaflow/internal/display"
	"github.com/notaflow/notaflow/internal/service"
)

func invoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Manage stored invoices",
	}

	cmd.AddCommand(invoicesListCmd())
	cmd.AddCommand(invoicesShowCmd())
	cmd.AddCommand(invoicesDeleteCmd())

	return cmd
}

func invoicesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored invoices, most recent first",
		RunE:  runInvoicesList,
	}

	cmd.Flags().String("store", "", "Filter by store name (substring match)")
	cmd.Flags().String("from", "", "Only invoices scanned on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Only invoices scanned on or before this date (YYYY-MM-DD)")
	cmd.Flags().Int("limit", 0, "Maximum number of invoices to show (default 50)")

	return cmd
}

func runInvoicesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	filter := service.InvoiceFilter{UserID: currentUserID()}
	filter.StoreName, _ = cmd.Flags().GetString("store")
	filter.Limit, _ = cmd.Flags().GetInt("limit")

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
		filter.DateFrom = &t
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --to date: %w", err)
		}
		end := t.Add(24*time.Hour - time.Second)
		filter.DateTo = &end
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	invoices, err := store.ListInvoices(ctx, filter)
	if err != nil {
		return err
	}

	if len(invoices) == 0 {
		fmt.Println(cli.FormatInfo("No invoices found"))
		return nil
	}

	fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-5s %-28s %-12s %-16s %10s %6s", "ID", "STORE", "NUMBER", "SCANNED", "TOTAL", "ITEMS")))
	for i := range invoices {
		inv := &invoices[i]
		fmt.Printf("%-5d %-28s %-12s %-16s %10s %6d\n",
			inv.ID, truncate(inv.StoreName, 28), inv.InvoiceNumber,
			display.DateTime(inv.ScanTimestamp), display.Currency(inv.TotalAmount), len(inv.Items))
	}

	return nil
}

func invoicesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one invoice with its items and price history context",
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

			fmt.Println(invoiceSummary(inv))
			fmt.Println(cli.SubtleStyle.Render("Scanned " + display.RelativeTime(inv.ScanTimestamp, time.Now())))
			return nil
		},
	}
}

func invoicesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an invoice and its price history",
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

			if err := store.DeleteInvoice(ctx, id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Invoice %d deleted", id)))
			return nil
		},
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
