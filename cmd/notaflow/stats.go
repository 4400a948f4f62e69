package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/notaflow/notaflow/internal/cli"
	"github.com/notaflow/notaflow/internal/display"
	"github.com/notaflow/notaflow/internal/service"
	"github.com/notaflow/notaflow/internal/stats"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show spending statistics",
		Long: `Show lifetime spending statistics plus a breakdown for the selected
period: total spent, savings from discounts, top categories, and the
spending trend over time.`,
		RunE: runStats,
	}

	cmd.Flags().String("period", "month", "Period for the detailed breakdown (week, month, year)")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	periodFlag, _ := cmd.Flags().GetString("period")
	period, err := stats.ParsePeriod(periodFlag)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	userID := currentUserID()
	invoices, err := store.ListInvoices(ctx, service.InvoiceFilter{UserID: userID, Limit: 1000})
	if err != nil {
		return err
	}
	lists, err := store.ListShoppingLists(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	overview := stats.ComputeOverview(invoices, len(lists), now)
	summary := stats.Compute(invoices, period, now)

	fmt.Println(cli.FormatTitle("Spending overview"))
	fmt.Printf("Invoices:        %d\n", overview.TotalInvoices)
	fmt.Printf("Products:        %d\n", overview.TotalProducts)
	fmt.Printf("Shopping lists:  %d\n", overview.TotalLists)
	fmt.Printf("Total spent:     %s\n", display.Currency(overview.TotalSpent))
	fmt.Printf("Total savings:   %s\n", display.Currency(overview.TotalSavings))
	fmt.Printf("Average invoice: %s\n", display.Currency(overview.AverageInvoiceValue))
	fmt.Printf("Favorite store:  %s\n", overview.MostShoppedStore)
	fmt.Printf("This month:      %s\n", display.Currency(overview.CurrentMonthSpent))

	fmt.Println()
	fmt.Println(cli.FormatTitle(fmt.Sprintf("Last %s", period)))
	fmt.Printf("Spent:    %s across %d invoice(s), %d product(s)\n",
		display.Currency(summary.PeriodSpent), summary.InvoiceCount, summary.ProductCount)
	fmt.Printf("Savings:  %s\n", display.Currency(summary.PeriodSavings))

	if len(summary.TopCategories) > 0 {
		fmt.Println("\nTop categories:")
		for i, ct := range summary.TopCategories {
			fmt.Printf("  %d. %-22s %10s %s\n", i+1, ct.Category, display.Currency(ct.Total),
				cli.SubtleStyle.Render(fmt.Sprintf("(%.0f items)", ct.Count)))
		}
	}

	if len(summary.SpendingTrend) > 0 {
		fmt.Println("\nSpending trend:")
		for _, point := range summary.SpendingTrend {
			fmt.Printf("  %-10s %10s\n", point.Date, display.Currency(point.Amount))
		}
	}

	return nil
}
