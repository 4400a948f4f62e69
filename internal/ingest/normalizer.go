// Package ingest turns raw scraped-invoice payloads into normalized
// invoice records ready for storage.
package ingest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/notaflow/notaflow/internal/category"
	"github.com/notaflow/notaflow/internal/dateparse"
	"github.com/notaflow/notaflow/internal/model"
)

// Structural payload defects. Anything else degrades gracefully into
// low-confidence data instead of failing.
var (
	ErrMissingEmitter = errors.New("invoice payload missing store name")
	ErrNoLineItems    = errors.New("invoice payload has no line items")
)

// DefaultUnit is used when the scraper omits a line item's unit.
const DefaultUnit = "UN"

// Normalizer composes the date parser and the product categorizer into one
// ingestion step. Safe for concurrent use.
type Normalizer struct {
	parser      *dateparse.Parser
	categorizer *category.Categorizer
	clock       func() time.Time
}

// NewNormalizer returns a Normalizer using the wall clock.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		parser:      dateparse.NewParser(),
		categorizer: category.NewCategorizer(),
		clock:       time.Now,
	}
}

// NewNormalizerWithClock returns a Normalizer with a pinned clock, for
// deterministic tests and replays.
func NewNormalizerWithClock(clock func() time.Time) *Normalizer {
	n := NewNormalizer()
	n.clock = clock
	return n
}

// Normalize validates the payload shape, resolves the emission date and
// per-item categories, and assembles a NormalizedInvoice. It fails only on
// structural defects; date and category problems are recorded on the
// result, never raised.
func (n *Normalizer) Normalize(raw model.RawInvoice, userID string) (model.NormalizedInvoice, error) {
	if strings.TrimSpace(raw.StoreName) == "" {
		return model.NormalizedInvoice{}, fmt.Errorf("normalize invoice %q: %w", raw.InvoiceNumber, ErrMissingEmitter)
	}
	if len(raw.Items) == 0 {
		return model.NormalizedInvoice{}, fmt.Errorf("normalize invoice %q: %w", raw.InvoiceNumber, ErrNoLineItems)
	}

	// One "now" per call: the scan timestamp and the recency scoring must
	// agree with each other.
	now := n.clock()
	dateResult := n.parser.ParseAt(raw.InvoiceDate, now)

	items := make([]model.LineItem, 0, len(raw.Items))
	for _, rawItem := range raw.Items {
		items = append(items, n.normalizeItem(rawItem))
	}

	return model.NormalizedInvoice{
		UserID:         userID,
		StoreName:      raw.StoreName,
		StoreCNPJ:      raw.StoreCNPJ,
		StoreAddress:   CleanAddress(raw.StoreAddress),
		InvoiceNumber:  raw.InvoiceNumber,
		EmissionDate:   dateResult.ParsedDate,
		ScanTimestamp:  now,
		TotalAmount:    raw.TotalAmount,
		Discounts:      raw.Discounts,
		Taxes:          raw.Taxes,
		QRURL:          raw.QRURL,
		Protocol:       raw.Protocol,
		AccessKey:      raw.AccessKey,
		Series:         raw.Series,
		Items:          items,
		DateConfidence: dateResult.Confidence,
		DateWarnings:   dateResult.Warnings,
	}, nil
}

// normalizeItem fills gaps the scraper left: unit, quantity and category.
// A category supplied by the scraper is trusted and passed through.
func (n *Normalizer) normalizeItem(raw model.RawLineItem) model.LineItem {
	item := model.LineItem{
		Name:       raw.Name,
		Code:       raw.Code,
		Unit:       raw.Unit,
		Category:   raw.Category,
		Quantity:   raw.Quantity,
		UnitPrice:  raw.UnitPrice,
		TotalPrice: raw.TotalPrice,
	}

	if item.Unit == "" {
		item.Unit = DefaultUnit
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if item.Category == "" {
		item.Category = n.categorizer.Categorize(item.Name)
	}

	return item
}
