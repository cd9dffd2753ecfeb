// Package sqlite provides a SQLite-backed dataset backend, persisting
// fetched preset/usage datasets across sessions.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/doshidak/calcdex/internal/battle/domain"
	sqlitemigrate "github.com/doshidak/calcdex/internal/platform/storage/sqlitemigrate"
	"github.com/doshidak/calcdex/internal/preset/storage"
	"github.com/doshidak/calcdex/internal/preset/storage/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Backend persists datasets in SQLite.
type Backend struct {
	sqlDB *sql.DB
}

// Open opens a SQLite dataset backend and applies embedded migrations.
func Open(path string) (*Backend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Backend{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (b *Backend) Close() error {
	if b == nil || b.sqlDB == nil {
		return nil
	}
	return b.sqlDB.Close()
}

// GetDataset returns the dataset stored for a format.
func (b *Backend) GetDataset(ctx context.Context, format string) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b == nil || b.sqlDB == nil {
		return nil, storage.ErrUnconfigured
	}

	var payload string
	row := b.sqlDB.QueryRowContext(ctx,
		`SELECT payload FROM preset_datasets WHERE format = ?`, normalize(format))
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("query dataset: %w", err)
	}

	var dataset domain.Dataset
	if err := json.Unmarshal([]byte(payload), &dataset); err != nil {
		return nil, fmt.Errorf("unmarshal dataset: %w", err)
	}
	return &dataset, nil
}

// PutDataset stores a dataset under its format key, replacing any prior row.
func (b *Backend) PutDataset(ctx context.Context, dataset *domain.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b == nil || b.sqlDB == nil {
		return storage.ErrUnconfigured
	}
	if dataset == nil || strings.TrimSpace(dataset.Format) == "" {
		return fmt.Errorf("dataset format is required")
	}

	payload, err := json.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}

	_, err = b.sqlDB.ExecContext(ctx,
		`INSERT INTO preset_datasets (format, payload, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(format) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		normalize(dataset.Format), string(payload), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("persist dataset: %w", err)
	}
	return nil
}

// DeleteDataset drops the dataset for a format.
func (b *Backend) DeleteDataset(ctx context.Context, format string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b == nil || b.sqlDB == nil {
		return storage.ErrUnconfigured
	}
	if _, err := b.sqlDB.ExecContext(ctx,
		`DELETE FROM preset_datasets WHERE format = ?`, normalize(format)); err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	return nil
}

func normalize(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}
