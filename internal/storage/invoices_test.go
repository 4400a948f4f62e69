package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/notaflow/notaflow/internal/common"
	"github.com/notaflow/notaflow/internal/model"
	"github.com/notaflow/notaflow/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testInvoice(userID string) *model.NormalizedInvoice {
	return &model.NormalizedInvoice{
		UserID:         userID,
		StoreName:      "Supermercado Boa Compra",
		StoreCNPJ:      "12.345.678/0001-90",
		StoreAddress:   "Av. Brasil, 123, Centro",
		InvoiceNumber:  "000123456",
		EmissionDate:   time.Date(2024, time.June, 10, 14, 30, 45, 0, time.Local),
		ScanTimestamp:  time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local),
		TotalAmount:    17.80,
		Discounts:      1.20,
		DateConfidence: model.ConfidenceHigh,
		DateWarnings:   []string{},
		Items: []model.LineItem{
			{Name: "Leite Integral 1L", Code: "789100", Quantity: 2, UnitPrice: 4.90, TotalPrice: 9.80, Unit: "UN", Category: "Alimentação"},
			{Name: "Refrigerante Cola 2L", Quantity: 1, UnitPrice: 8.00, TotalPrice: 8.00, Unit: "UN", Category: "Bebidas"},
		},
	}
}

func TestSQLiteStorage_SaveAndGetInvoice(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	inv := testInvoice("user-1")
	inv.DateWarnings = []string{"Data com mais de 30 dias de diferença"}
	inv.DateConfidence = model.ConfidenceMedium

	id, err := store.SaveInvoice(ctx, inv)
	require.NoError(t, err)
	assert.Equal(t, id, inv.ID)

	got, err := store.GetInvoiceByID(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "Supermercado Boa Compra", got.StoreName)
	assert.Equal(t, "000123456", got.InvoiceNumber)
	assert.Equal(t, model.ConfidenceMedium, got.DateConfidence)
	assert.Equal(t, []string{"Data com mais de 30 dias de diferença"}, got.DateWarnings)
	assert.WithinDuration(t, inv.EmissionDate, got.EmissionDate, time.Second)
	assert.WithinDuration(t, inv.ScanTimestamp, got.ScanTimestamp, time.Second)

	require.Len(t, got.Items, 2)
	assert.Equal(t, "Leite Integral 1L", got.Items[0].Name, "item order is preserved")
	assert.Equal(t, "Alimentação", got.Items[0].Category)
	assert.Equal(t, "Bebidas", got.Items[1].Category)
	assert.Empty(t, got.Items[1].Code)
}

func TestSQLiteStorage_SaveInvoice_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*model.NormalizedInvoice)
	}{
		{name: "missing user", mutate: func(i *model.NormalizedInvoice) { i.UserID = "" }},
		{name: "missing store", mutate: func(i *model.NormalizedInvoice) { i.StoreName = "" }},
		{name: "no items", mutate: func(i *model.NormalizedInvoice) { i.Items = nil }},
		{name: "item without category", mutate: func(i *model.NormalizedInvoice) { i.Items[0].Category = "" }},
		{name: "bad confidence", mutate: func(i *model.NormalizedInvoice) { i.DateConfidence = "certain" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := testInvoice("user-1")
			tt.mutate(inv)

			_, err := store.SaveInvoice(ctx, inv)
			assert.Error(t, err)
		})
	}
}

func TestSQLiteStorage_ListInvoices(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	base := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		inv := testInvoice("user-1")
		inv.ScanTimestamp = base.AddDate(0, 0, i)
		inv.InvoiceNumber = string(rune('A' + i))
		_, err := store.SaveInvoice(ctx, inv)
		require.NoError(t, err)
	}
	other := testInvoice("user-2")
	other.StoreName = "Padaria do Bairro"
	_, err := store.SaveInvoice(ctx, other)
	require.NoError(t, err)

	t.Run("filter by user, newest first", func(t *testing.T) {
		invoices, listErr := store.ListInvoices(ctx, service.InvoiceFilter{UserID: "user-1"})
		require.NoError(t, listErr)
		require.Len(t, invoices, 3)
		assert.Equal(t, "C", invoices[0].InvoiceNumber)
		assert.Len(t, invoices[0].Items, 2, "items are loaded")
	})

	t.Run("date range filter", func(t *testing.T) {
		from := base.AddDate(0, 0, 1)
		invoices, listErr := store.ListInvoices(ctx, service.InvoiceFilter{UserID: "user-1", DateFrom: &from})
		require.NoError(t, listErr)
		assert.Len(t, invoices, 2)
	})

	t.Run("store name filter", func(t *testing.T) {
		invoices, listErr := store.ListInvoices(ctx, service.InvoiceFilter{StoreName: "Padaria"})
		require.NoError(t, listErr)
		require.Len(t, invoices, 1)
		assert.Equal(t, "user-2", invoices[0].UserID)
	})

	t.Run("limit", func(t *testing.T) {
		invoices, listErr := store.ListInvoices(ctx, service.InvoiceFilter{UserID: "user-1", Limit: 1})
		require.NoError(t, listErr)
		assert.Len(t, invoices, 1)
	})

	t.Run("inverted date range rejected", func(t *testing.T) {
		from := base.AddDate(0, 0, 5)
		to := base
		_, listErr := store.ListInvoices(ctx, service.InvoiceFilter{DateFrom: &from, DateTo: &to})
		assert.ErrorIs(t, listErr, ErrInvalidDateRange)
	})
}

func TestSQLiteStorage_DeleteInvoice(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	inv := testInvoice("user-1")
	id, err := store.SaveInvoice(ctx, inv)
	require.NoError(t, err)

	history, err := store.GetPriceHistory(ctx, "user-1", "Leite Integral 1L")
	require.NoError(t, err)
	require.Len(t, history, 1)

	require.NoError(t, store.DeleteInvoice(ctx, id))

	_, err = store.GetInvoiceByID(ctx, id)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	history, err = store.GetPriceHistory(ctx, "user-1", "Leite Integral 1L")
	require.NoError(t, err)
	assert.Empty(t, history, "price history is removed with the invoice")

	err = store.DeleteInvoice(ctx, id)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestSQLiteStorage_GetPriceHistory(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first := testInvoice("user-1")
	first.ScanTimestamp = time.Date(2024, time.May, 1, 10, 0, 0, 0, time.Local)
	first.Items[0].UnitPrice = 4.50
	_, err := store.SaveInvoice(ctx, first)
	require.NoError(t, err)

	second := testInvoice("user-1")
	second.ScanTimestamp = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.Local)
	second.Items[0].UnitPrice = 4.90
	_, err = store.SaveInvoice(ctx, second)
	require.NoError(t, err)

	entries, err := store.GetPriceHistory(ctx, "user-1", "Leite Integral 1L")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 4.90, entries[0].Price, "newest entry first")
	assert.Equal(t, 4.50, entries[1].Price)
	assert.Equal(t, "Supermercado Boa Compra", entries[0].StoreName)
}

func TestSQLiteStorage_Migrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Running migrations again must be a no-op.
	require.NoError(t, store.Migrate(ctx))

	var version int
	require.NoError(t, store.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.Error(t, err)
}
