package model

import "time"

// ShoppingListStatus tracks the lifecycle of a shopping list.
type ShoppingListStatus string

const (
	// ListStatusActive is a list the user is still shopping against.
	ListStatusActive ShoppingListStatus = "active"
	// ListStatusCompleted is a finished list.
	ListStatusCompleted ShoppingListStatus = "completed"
	// ListStatusArchived is a list hidden from the default view.
	ListStatusArchived ShoppingListStatus = "archived"
)

// ShoppingListItem is one entry on a shopping list, seeded from an invoice
// line item or added by hand.
type ShoppingListItem struct {
	Name           string
	Unit           string
	Category       string
	Notes          string
	Quantity       float64
	EstimatedPrice float64
	ActualPrice    float64
	Purchased      bool
}

// ShoppingList groups items the user plans to buy, optionally derived from
// a previously scanned invoice.
type ShoppingList struct {
	CreatedAt          time.Time
	UserID             string
	Name               string
	Description        string
	Status             ShoppingListStatus
	Items              []ShoppingListItem
	ID                 int64
	CreatedFromInvoice int64
	TotalEstimatedCost float64
}
