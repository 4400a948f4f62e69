package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notaflow/notaflow/internal/category"
	"github.com/notaflow/notaflow/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show the product category taxonomy",
		RunE:  runCategories,
	}

	cmd.Flags().String("test", "", "Categorize a product name and show the result")

	return cmd
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if name, _ := cmd.Flags().GetString("test"); name != "" {
		result := category.NewCategorizer().Categorize(name)
		fmt.Printf("%s → %s\n", name, cli.BoldStyle.Render(result))
		return nil
	}

	fmt.Println(cli.FormatTitle("Product categories"))
	for _, rule := range category.DefaultTaxonomy() {
		fmt.Printf("%s %s\n", cli.BoldStyle.Render(rule.Category),
			cli.SubtleStyle.Render(fmt.Sprintf("(%d keywords, %d patterns)", len(rule.Keywords), len(rule.Patterns))))
	}
	fmt.Printf("%s %s\n", cli.BoldStyle.Render(category.FallbackCategory), cli.SubtleStyle.Render("(fallback)"))

	return nil
}
