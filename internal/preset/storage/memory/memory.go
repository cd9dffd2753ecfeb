// Package memory provides an in-memory dataset backend, used by tests and
// by sessions running without a cache path configured.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/doshidak/calcdex/internal/battle/domain"
	"github.com/doshidak/calcdex/internal/preset/storage"
)

// Backend is an in-memory dataset backend. Safe for concurrent use.
type Backend struct {
	mu       sync.RWMutex
	datasets map[string]*domain.Dataset
}

// New returns an empty in-memory backend.
func New() *Backend {
	return &Backend{datasets: make(map[string]*domain.Dataset)}
}

// GetDataset returns the dataset for a format.
func (b *Backend) GetDataset(ctx context.Context, format string) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	dataset, ok := b.datasets[normalize(format)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return dataset, nil
}

// PutDataset stores a dataset under its format key.
func (b *Backend) PutDataset(ctx context.Context, dataset *domain.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dataset == nil || strings.TrimSpace(dataset.Format) == "" {
		return fmt.Errorf("dataset format is required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.datasets[normalize(dataset.Format)] = dataset
	return nil
}

// DeleteDataset drops the dataset for a format.
func (b *Backend) DeleteDataset(ctx context.Context, format string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.datasets, normalize(format))
	return nil
}

// Close is a no-op for the in-memory backend.
func (b *Backend) Close() error { return nil }

func normalize(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}
