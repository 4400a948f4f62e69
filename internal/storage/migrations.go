package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema: invoices, line items, price history",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS invoices (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id TEXT NOT NULL,
					store_name TEXT NOT NULL,
					store_cnpj TEXT,
					store_address TEXT,
					invoice_number TEXT NOT NULL,
					emission_date DATETIME NOT NULL,
					scan_timestamp DATETIME NOT NULL,
					total_amount REAL NOT NULL,
					discounts REAL DEFAULT 0,
					taxes REAL DEFAULT 0,
					qr_url TEXT,
					protocol TEXT,
					access_key TEXT,
					series TEXT,
					date_confidence TEXT NOT NULL,
					date_warnings TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_invoices_user ON invoices(user_id)`,
				`CREATE INDEX idx_invoices_scan_timestamp ON invoices(scan_timestamp)`,
				`CREATE INDEX idx_invoices_store ON invoices(store_name)`,

				`CREATE TABLE IF NOT EXISTS invoice_items (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					invoice_id INTEGER NOT NULL,
					position INTEGER NOT NULL,
					name TEXT NOT NULL,
					code TEXT,
					quantity REAL NOT NULL,
					unit_price REAL NOT NULL,
					total_price REAL NOT NULL,
					unit TEXT NOT NULL,
					category TEXT NOT NULL,
					FOREIGN KEY (invoice_id) REFERENCES invoices(id)
				)`,
				`CREATE INDEX idx_invoice_items_invoice ON invoice_items(invoice_id)`,
				`CREATE INDEX idx_invoice_items_category ON invoice_items(category)`,

				`CREATE TABLE IF NOT EXISTS price_history (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id TEXT NOT NULL,
					invoice_id INTEGER NOT NULL,
					product_name TEXT NOT NULL,
					product_code TEXT,
					store_name TEXT NOT NULL,
					store_cnpj TEXT,
					price REAL NOT NULL,
					date DATETIME NOT NULL,
					FOREIGN KEY (invoice_id) REFERENCES invoices(id)
				)`,
				`CREATE INDEX idx_price_history_invoice ON price_history(invoice_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Shopping lists",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS shopping_lists (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id TEXT NOT NULL,
					name TEXT NOT NULL,
					description TEXT,
					status TEXT NOT NULL DEFAULT 'active',
					total_estimated_cost REAL DEFAULT 0,
					created_from_invoice INTEGER,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_shopping_lists_user ON shopping_lists(user_id)`,

				`CREATE TABLE IF NOT EXISTS shopping_list_items (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					list_id INTEGER NOT NULL,
					position INTEGER NOT NULL,
					name TEXT NOT NULL,
					quantity REAL NOT NULL,
					unit TEXT NOT NULL,
					category TEXT NOT NULL,
					estimated_price REAL DEFAULT 0,
					actual_price REAL,
					purchased INTEGER NOT NULL DEFAULT 0,
					notes TEXT,
					FOREIGN KEY (list_id) REFERENCES shopping_lists(id)
				)`,
				`CREATE INDEX idx_shopping_list_items_list ON shopping_list_items(list_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Index price history by product for lookup queries",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_price_history_product ON price_history(user_id, product_name, date)`)
			return err
		},
	},
}

// Migrate brings the schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	return nil
}
