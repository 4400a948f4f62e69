package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/notaflow/notaflow/internal/config"
	"github.com/notaflow/notaflow/internal/service"
	"github.com/notaflow/notaflow/internal/storage"
)

// initStorage opens the database from config and brings the schema up to
// date. Callers own the returned storage and must Close it.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// currentUserID resolves the user owning the local data.
func currentUserID() string {
	if id := viper.GetString("user.id"); id != "" {
		return id
	}
	return config.DefaultUserID
}

// scraperBaseURL resolves the scraping backend endpoint.
func scraperBaseURL() string {
	if url := viper.GetString("scraper.base_url"); url != "" {
		return url
	}
	return config.DefaultScraperURL
}
