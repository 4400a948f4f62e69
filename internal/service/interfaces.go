// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/notaflow/notaflow/internal/model"
)

// InvoiceFilter defines filtering options for invoice queries.
type InvoiceFilter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	UserID    string
	StoreName string
	Limit     int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Invoice operations
	SaveInvoice(ctx context.Context, invoice *model.NormalizedInvoice) (int64, error)
	GetInvoiceByID(ctx context.Context, id int64) (*model.NormalizedInvoice, error)
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]model.NormalizedInvoice, error)
	DeleteInvoice(ctx context.Context, id int64) error

	// Price history operations
	GetPriceHistory(ctx context.Context, userID, productName string) ([]model.PriceEntry, error)

	// Shopping list operations
	SaveShoppingList(ctx context.Context, list *model.ShoppingList) (int64, error)
	ListShoppingLists(ctx context.Context, userID string) ([]model.ShoppingList, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// InvoiceFetcher retrieves raw invoice payloads from the scraping backend.
type InvoiceFetcher interface {
	ProcessInvoice(ctx context.Context, invoiceURL, userID string) (model.RawInvoice, bool, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
