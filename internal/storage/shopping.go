package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/notaflow/notaflow/internal/model"
)

// SaveShoppingList persists a shopping list and its items in one
// transaction, returning the new list ID.
func (s *SQLiteStorage) SaveShoppingList(ctx context.Context, list *model.ShoppingList) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateShoppingList(list); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var fromInvoice any
	if list.CreatedFromInvoice != 0 {
		fromInvoice = list.CreatedFromInvoice
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO shopping_lists (user_id, name, description, status, total_estimated_cost, created_from_invoice)
		VALUES (?, ?, ?, ?, ?, ?)`,
		list.UserID, list.Name, list.Description, string(list.Status), list.TotalEstimatedCost, fromInvoice)
	if err != nil {
		return 0, fmt.Errorf("failed to insert shopping list: %w", err)
	}

	listID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get list ID: %w", err)
	}

	for i, item := range list.Items {
		var actualPrice any
		if item.ActualPrice > 0 {
			actualPrice = item.ActualPrice
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO shopping_list_items (list_id, position, name, quantity, unit, category, estimated_price, actual_price, purchased, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			listID, i, item.Name, item.Quantity, item.Unit, item.Category, item.EstimatedPrice, actualPrice, item.Purchased, item.Notes); err != nil {
			return 0, fmt.Errorf("failed to insert list item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit shopping list: %w", err)
	}

	list.ID = listID
	return listID, nil
}

// ListShoppingLists returns a user's shopping lists, newest first, with
// their items.
func (s *SQLiteStorage) ListShoppingLists(ctx context.Context, userID string) ([]model.ShoppingList, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, description, status, total_estimated_cost, created_from_invoice, created_at
		FROM shopping_lists WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shopping lists: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lists []model.ShoppingList
	for rows.Next() {
		var list model.ShoppingList
		var description sql.NullString
		var status string
		var fromInvoice sql.NullInt64
		if err := rows.Scan(&list.ID, &list.UserID, &list.Name, &description, &status,
			&list.TotalEstimatedCost, &fromInvoice, &list.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shopping list: %w", err)
		}
		list.Description = description.String
		list.Status = model.ShoppingListStatus(status)
		list.CreatedFromInvoice = fromInvoice.Int64
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shopping lists: %w", err)
	}

	for i := range lists {
		items, itemsErr := s.loadListItems(ctx, lists[i].ID)
		if itemsErr != nil {
			return nil, itemsErr
		}
		lists[i].Items = items
	}

	return lists, nil
}

func (s *SQLiteStorage) loadListItems(ctx context.Context, listID int64) ([]model.ShoppingListItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, quantity, unit, category, estimated_price, actual_price, purchased, notes
		FROM shopping_list_items WHERE list_id = ? ORDER BY position`, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.ShoppingListItem
	for rows.Next() {
		var item model.ShoppingListItem
		var actualPrice sql.NullFloat64
		var notes sql.NullString
		if err := rows.Scan(&item.Name, &item.Quantity, &item.Unit, &item.Category,
			&item.EstimatedPrice, &actualPrice, &item.Purchased, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan list item: %w", err)
		}
		item.ActualPrice = actualPrice.Float64
		item.Notes = notes.String
		items = append(items, item)
	}

	return items, rows.Err()
}
