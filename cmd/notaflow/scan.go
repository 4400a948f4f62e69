package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notaflow/notaflow/internal/cli"
	"github.com/notaflow/notaflow/internal/common"
	"github.com/notaflow/notaflow/internal/display"
	"github.com/notaflow/notaflow/internal/ingest"
	"github.com/notaflow/notaflow/internal/model"
	"github.com/notaflow/notaflow/internal/scraper"
	"github.com/notaflow/notaflow/internal/shopping"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <qr-content>",
		Short: "Scan a fiscal receipt QR code",
		Long: `Resolve the QR code of a Brazilian fiscal receipt (NFC-e) into structured
invoice data, normalize it, and save it locally.

The argument is the raw QR code content, which must contain a SEFAZ
consultation URL.`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	cmd.Flags().Bool("list", false, "Also create a shopping list from the scanned invoice")
	cmd.Flags().Bool("dry-run", false, "Normalize and display the invoice without saving it")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	createList, _ := cmd.Flags().GetBool("list")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	invoiceURL, ok := scraper.ExtractInvoiceURL(args[0])
	if !ok {
		return common.ErrInvalidQRCode
	}

	userID := currentUserID()
	common.LogInfo("Scanning invoice", common.Fields{"url": invoiceURL, "user": userID})

	client := scraper.NewClient(scraperBaseURL())
	raw, cached, err := client.ProcessInvoice(ctx, invoiceURL, userID)
	if err != nil {
		return common.NewUserError("could not fetch the invoice from the scraping backend", err)
	}
	if cached {
		common.LogDebug("Invoice served from scraper cache", common.Fields{"url": invoiceURL})
	}

	inv, err := ingest.NewNormalizer().Normalize(raw, userID)
	if err != nil {
		return fmt.Errorf("failed to normalize invoice: %w", err)
	}

	if dryRun {
		fmt.Println(invoiceSummary(&inv))
		fmt.Println(cli.FormatInfo("Dry run, nothing was saved"))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id, err := store.SaveInvoice(ctx, &inv)
	if err != nil {
		return fmt.Errorf("failed to save invoice: %w", err)
	}

	fmt.Println(invoiceSummary(&inv))
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Invoice saved with ID %d", id)))

	if createList {
		list := shopping.FromInvoice(&inv)
		listID, listErr := store.SaveShoppingList(ctx, list)
		if listErr != nil {
			return fmt.Errorf("failed to save shopping list: %w", listErr)
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Shopping list %q created with ID %d", list.Name, listID)))
	}

	return nil
}

func invoiceSummary(inv *model.NormalizedInvoice) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Store:      %s\n", inv.StoreName)
	if inv.StoreCNPJ != "" {
		fmt.Fprintf(&b, "CNPJ:       %s\n", inv.StoreCNPJ)
	}
	fmt.Fprintf(&b, "Number:     %s\n", inv.InvoiceNumber)
	fmt.Fprintf(&b, "Emitted:    %s (confidence: %s)\n", display.DateTime(inv.EmissionDate), cli.FormatConfidence(inv.DateConfidence))
	fmt.Fprintf(&b, "Total:      %s\n", display.Currency(inv.TotalAmount))
	if inv.Discounts > 0 {
		fmt.Fprintf(&b, "Discounts:  %s\n", display.Currency(inv.Discounts))
	}

	for _, w := range inv.DateWarnings {
		fmt.Fprintf(&b, "%s\n", cli.FormatWarning(w))
	}

	fmt.Fprintf(&b, "\nItems (%d):\n", len(inv.Items))
	for _, item := range inv.Items {
		fmt.Fprintf(&b, "  %-40s %8s  %s\n", item.Name, display.Currency(item.TotalPrice), cli.SubtleStyle.Render(item.Category))
	}

	return cli.RenderBox("Invoice "+inv.InvoiceNumber, strings.TrimRight(b.String(), "\n"))
}
