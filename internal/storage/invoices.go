package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/notaflow/notaflow/internal/common"
	"github.com/notaflow/notaflow/internal/model"
	"github.com/notaflow/notaflow/internal/service"
)

// SaveInvoice persists a normalized invoice, its line items, and one price
// history row per item in a single transaction. On success the invoice's
// ID field is set and returned.
func (s *SQLiteStorage) SaveInvoice(ctx context.Context, inv *model.NormalizedInvoice) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateInvoice(inv); err != nil {
		return 0, err
	}

	warnings, err := json.Marshal(inv.DateWarnings)
	if err != nil {
		return 0, fmt.Errorf("failed to encode date warnings: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO invoices (
			user_id, store_name, store_cnpj, store_address, invoice_number,
			emission_date, scan_timestamp, total_amount, discounts, taxes,
			qr_url, protocol, access_key, series, date_confidence, date_warnings
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.UserID, inv.StoreName, inv.StoreCNPJ, inv.StoreAddress, inv.InvoiceNumber,
		inv.EmissionDate, inv.ScanTimestamp, inv.TotalAmount, inv.Discounts, inv.Taxes,
		inv.QRURL, inv.Protocol, inv.AccessKey, inv.Series, string(inv.DateConfidence), string(warnings))
	if err != nil {
		return 0, fmt.Errorf("failed to insert invoice: %w", err)
	}

	invoiceID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get invoice ID: %w", err)
	}

	for i, item := range inv.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO invoice_items (
				invoice_id, position, name, code, quantity, unit_price, total_price, unit, category
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			invoiceID, i, item.Name, item.Code, item.Quantity, item.UnitPrice, item.TotalPrice, item.Unit, item.Category); err != nil {
			return 0, fmt.Errorf("failed to insert item %d: %w", i, err)
		}

		// Price history tracks the unit price at scan time.
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO price_history (
				user_id, invoice_id, product_name, product_code, store_name, store_cnpj, price, date
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			inv.UserID, invoiceID, item.Name, item.Code, inv.StoreName, inv.StoreCNPJ, item.UnitPrice, inv.ScanTimestamp); err != nil {
			return 0, fmt.Errorf("failed to insert price history for item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit invoice: %w", err)
	}

	inv.ID = invoiceID
	return invoiceID, nil
}

// GetInvoiceByID loads one invoice with its line items.
func (s *SQLiteStorage) GetInvoiceByID(ctx context.Context, id int64) (*model.NormalizedInvoice, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, store_name, store_cnpj, store_address, invoice_number,
			emission_date, scan_timestamp, total_amount, discounts, taxes,
			qr_url, protocol, access_key, series, date_confidence, date_warnings
		FROM invoices WHERE id = ?`, id)

	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: invoice %d", common.ErrNotFound, id)
		}
		return nil, err
	}

	items, err := s.loadItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Items = items

	return inv, nil
}

// ListInvoices returns invoices matching the filter, most recently scanned
// first. A zero Limit defaults to 50.
func (s *SQLiteStorage) ListInvoices(ctx context.Context, filter service.InvoiceFilter) ([]model.NormalizedInvoice, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return nil, ErrInvalidDateRange
	}

	query := strings.Builder{}
	query.WriteString(`
		SELECT id, user_id, store_name, store_cnpj, store_address, invoice_number,
			emission_date, scan_timestamp, total_amount, discounts, taxes,
			qr_url, protocol, access_key, series, date_confidence, date_warnings
		FROM invoices WHERE 1=1`)

	args := []any{}
	if filter.UserID != "" {
		query.WriteString(" AND user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.DateFrom != nil {
		query.WriteString(" AND scan_timestamp >= ?")
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query.WriteString(" AND scan_timestamp <= ?")
		args = append(args, *filter.DateTo)
	}
	if filter.StoreName != "" {
		query.WriteString(" AND store_name LIKE ?")
		args = append(args, "%"+filter.StoreName+"%")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query.WriteString(" ORDER BY scan_timestamp DESC LIMIT ?")
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var invoices []model.NormalizedInvoice
	for rows.Next() {
		inv, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}

	for i := range invoices {
		items, itemsErr := s.loadItems(ctx, invoices[i].ID)
		if itemsErr != nil {
			return nil, itemsErr
		}
		invoices[i].Items = items
	}

	return invoices, nil
}

// DeleteInvoice removes an invoice along with its items and price history.
func (s *SQLiteStorage) DeleteInvoice(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM price_history WHERE invoice_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete price history: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM invoice_items WHERE invoice_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete invoice items: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deletion: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: invoice %d", common.ErrNotFound, id)
	}

	return tx.Commit()
}

// GetPriceHistory returns the recorded prices for one product, newest first.
func (s *SQLiteStorage) GetPriceHistory(ctx context.Context, userID, productName string) ([]model.PriceEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(productName, "productName"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, invoice_id, product_name, product_code, store_name, store_cnpj, price, date
		FROM price_history
		WHERE user_id = ? AND product_name = ?
		ORDER BY date DESC`, userID, productName)
	if err != nil {
		return nil, fmt.Errorf("failed to query price history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.PriceEntry
	for rows.Next() {
		var e model.PriceEntry
		var code, cnpj sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.InvoiceID, &e.ProductName, &code, &e.StoreName, &cnpj, &e.Price, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan price entry: %w", err)
		}
		e.ProductCode = code.String
		e.StoreCNPJ = cnpj.String
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*model.NormalizedInvoice, error) {
	var inv model.NormalizedInvoice
	var cnpj, address, qrURL, protocol, accessKey, series, warnings sql.NullString
	var confidence string

	err := row.Scan(&inv.ID, &inv.UserID, &inv.StoreName, &cnpj, &address, &inv.InvoiceNumber,
		&inv.EmissionDate, &inv.ScanTimestamp, &inv.TotalAmount, &inv.Discounts, &inv.Taxes,
		&qrURL, &protocol, &accessKey, &series, &confidence, &warnings)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan invoice: %w", err)
	}

	inv.StoreCNPJ = cnpj.String
	inv.StoreAddress = address.String
	inv.QRURL = qrURL.String
	inv.Protocol = protocol.String
	inv.AccessKey = accessKey.String
	inv.Series = series.String
	inv.DateConfidence = model.Confidence(confidence)

	if warnings.Valid && warnings.String != "" {
		if err := json.Unmarshal([]byte(warnings.String), &inv.DateWarnings); err != nil {
			return nil, fmt.Errorf("failed to decode date warnings: %w", err)
		}
	}

	return &inv, nil
}

func (s *SQLiteStorage) loadItems(ctx context.Context, invoiceID int64) ([]model.LineItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, code, quantity, unit_price, total_price, unit, category
		FROM invoice_items WHERE invoice_id = ? ORDER BY position`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.LineItem
	for rows.Next() {
		var item model.LineItem
		var code sql.NullString
		if err := rows.Scan(&item.Name, &code, &item.Quantity, &item.UnitPrice, &item.TotalPrice, &item.Unit, &item.Category); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		item.Code = code.String
		items = append(items, item)
	}

	return items, rows.Err()
}
