// Package storage provides the data persistence layer for the notaflow application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/notaflow/notaflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext          = errors.New("context cannot be nil")
	ErrEmptyString         = errors.New("string parameter cannot be empty")
	ErrNilParameter        = errors.New("parameter cannot be nil")
	ErrInvalidInvoice      = errors.New("invalid invoice")
	ErrInvalidDateRange    = errors.New("start date must be before end date")
	ErrInvalidShoppingList = errors.New("invalid shopping list")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateInvoice validates a normalized invoice before persisting it.
func validateInvoice(inv *model.NormalizedInvoice) error {
	if inv == nil {
		return fmt.Errorf("%w: invoice", ErrNilParameter)
	}
	if strings.TrimSpace(inv.UserID) == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidInvoice)
	}
	if strings.TrimSpace(inv.StoreName) == "" {
		return fmt.Errorf("%w: missing store name", ErrInvalidInvoice)
	}
	if inv.ScanTimestamp.IsZero() {
		return fmt.Errorf("%w: missing scan timestamp", ErrInvalidInvoice)
	}
	if len(inv.Items) == 0 {
		return fmt.Errorf("%w: no line items", ErrInvalidInvoice)
	}

	for i, item := range inv.Items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: item %d missing name", ErrInvalidInvoice, i)
		}
		if strings.TrimSpace(item.Category) == "" {
			return fmt.Errorf("%w: item %d missing category", ErrInvalidInvoice, i)
		}
	}

	switch inv.DateConfidence {
	case model.ConfidenceHigh, model.ConfidenceMedium, model.ConfidenceLow:
		// Valid confidence
	default:
		return fmt.Errorf("%w: unknown date confidence %q", ErrInvalidInvoice, inv.DateConfidence)
	}

	return nil
}

// validateShoppingList validates a shopping list before persisting it.
func validateShoppingList(list *model.ShoppingList) error {
	if list == nil {
		return fmt.Errorf("%w: list", ErrNilParameter)
	}
	if strings.TrimSpace(list.UserID) == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidShoppingList)
	}
	if strings.TrimSpace(list.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidShoppingList)
	}

	switch list.Status {
	case model.ListStatusActive, model.ListStatusCompleted, model.ListStatusArchived:
		// Valid status
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidShoppingList, list.Status)
	}

	return nil
}
