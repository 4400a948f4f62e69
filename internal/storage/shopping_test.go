package storage

import (
	"context"
	"testing"

	"github.com/notaflow/notaflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShoppingList(userID string) *model.ShoppingList {
	return &model.ShoppingList{
		UserID:             userID,
		Name:               "Lista baseada em Supermercado Boa Compra",
		Description:        "Lista gerada automaticamente da nota fiscal 000123456 de Supermercado Boa Compra",
		Status:             model.ListStatusActive,
		TotalEstimatedCost: 17.80,
		CreatedFromInvoice: 1,
		Items: []model.ShoppingListItem{
			{Name: "Leite Integral 1L", Quantity: 2, Unit: "UN", Category: "Alimentação", EstimatedPrice: 4.90},
			{Name: "Refrigerante Cola 2L", Quantity: 1, Unit: "UN", Category: "Bebidas", EstimatedPrice: 8.00},
		},
	}
}

func TestSQLiteStorage_SaveAndListShoppingLists(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	list := testShoppingList("user-1")
	id, err := store.SaveShoppingList(ctx, list)
	require.NoError(t, err)
	assert.Equal(t, id, list.ID)

	lists, err := store.ListShoppingLists(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, lists, 1)

	got := lists[0]
	assert.Equal(t, "Lista baseada em Supermercado Boa Compra", got.Name)
	assert.Equal(t, model.ListStatusActive, got.Status)
	assert.Equal(t, int64(1), got.CreatedFromInvoice)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Leite Integral 1L", got.Items[0].Name)
	assert.False(t, got.Items[0].Purchased)
	assert.Equal(t, 4.90, got.Items[0].EstimatedPrice)

	other, err := store.ListShoppingLists(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSQLiteStorage_SaveShoppingList_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	t.Run("missing user", func(t *testing.T) {
		list := testShoppingList("")
		_, err := store.SaveShoppingList(ctx, list)
		assert.Error(t, err)
	})

	t.Run("missing name", func(t *testing.T) {
		list := testShoppingList("user-1")
		list.Name = ""
		_, err := store.SaveShoppingList(ctx, list)
		assert.Error(t, err)
	})

	t.Run("bad status", func(t *testing.T) {
		list := testShoppingList("user-1")
		list.Status = "paused"
		_, err := store.SaveShoppingList(ctx, list)
		assert.Error(t, err)
	})
}
