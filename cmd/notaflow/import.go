package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/notaflow/notaflow/internal/cli"
	"github.com/notaflow/notaflow/internal/common"
	"github.com/notaflow/notaflow/internal/ingest"
	"github.com/notaflow/notaflow/internal/model"
	"github.com/notaflow/notaflow/internal/service"
	"github.com/notaflow/notaflow/internal/shopping"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import raw invoice JSON files",
		Long: `Import one or more raw invoice payloads previously exported from the
scraping backend. Each file holds a single JSON invoice object.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("lists", false, "Also create a shopping list per imported invoice")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	createLists, _ := cmd.Flags().GetBool("lists")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	normalizer := ingest.NewNormalizer()
	userID := currentUserID()

	bar := progressbar.NewOptions(len(args),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing invoices..."),
	)

	imported := 0
	failed := 0
	for _, path := range args {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := importFile(cmd, store, normalizer, userID, path, createLists); err != nil {
			common.LogError(err, "Skipping invoice file", common.Fields{"file": path})
			failed++
		} else {
			imported++
		}
		_ = bar.Add(1)
	}
	fmt.Fprintln(os.Stderr)

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d invoice(s)", imported)))
	if failed > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("Failed to import %d file(s), see log for details", failed)))
	}

	return nil
}

func importFile(cmd *cobra.Command, store service.Storage, normalizer *ingest.Normalizer, userID, path string, createList bool) error {
	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied import path
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var raw model.RawInvoice
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode invoice JSON: %w", err)
	}

	inv, err := normalizer.Normalize(raw, userID)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if _, err := store.SaveInvoice(ctx, &inv); err != nil {
		return fmt.Errorf("failed to save invoice: %w", err)
	}

	if createList {
		if _, err := store.SaveShoppingList(ctx, shopping.FromInvoice(&inv)); err != nil {
			return fmt.Errorf("failed to save shopping list: %w", err)
		}
	}

	return nil
}
