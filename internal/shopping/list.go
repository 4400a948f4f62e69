// Package shopping derives shopping lists from scanned invoices.
package shopping

import (
	"fmt"

	"github.com/notaflow/notaflow/internal/category"
	"github.com/notaflow/notaflow/internal/ingest"
	"github.com/notaflow/notaflow/internal/model"
)

// FromInvoice builds a shopping list mirroring a stored invoice's items.
// Item prices become estimates for the next purchase and nothing is marked
// purchased yet.
func FromInvoice(inv *model.NormalizedInvoice) *model.ShoppingList {
	list := &model.ShoppingList{
		UserID:             inv.UserID,
		Name:               fmt.Sprintf("Lista baseada em %s", inv.StoreName),
		Description:        fmt.Sprintf("Lista gerada automaticamente da nota fiscal %s de %s", inv.InvoiceNumber, inv.StoreName),
		Status:             model.ListStatusActive,
		TotalEstimatedCost: inv.TotalAmount,
		CreatedFromInvoice: inv.ID,
		Items:              make([]model.ShoppingListItem, 0, len(inv.Items)),
	}

	for _, item := range inv.Items {
		list.Items = append(list.Items, listItem(item))
	}

	return list
}

func listItem(item model.LineItem) model.ShoppingListItem {
	out := model.ShoppingListItem{
		Name:           item.Name,
		Quantity:       item.Quantity,
		Unit:           item.Unit,
		Category:       item.Category,
		EstimatedPrice: item.UnitPrice,
	}

	if out.Name == "" {
		out.Name = "Item sem nome"
	}
	if out.Quantity <= 0 {
		out.Quantity = 1
	}
	if out.Unit == "" {
		out.Unit = ingest.DefaultUnit
	}
	if out.Category == "" {
		out.Category = category.FallbackCategory
	}

	return out
}
