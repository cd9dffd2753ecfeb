// Package storage provides the caching accessor for preset/usage datasets.
//
// Datasets come from an injected Fetcher (the external community source) and
// are persisted through a pluggable Backend so they survive across sessions.
// The engine never blocks a reconciliation on a fetch: it asks Available
// first and operates on whatever the cache holds.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/doshidak/calcdex/internal/battle/domain"
	"github.com/doshidak/calcdex/internal/dex"
	apperrors "github.com/doshidak/calcdex/internal/errors"
)

// ErrNotFound indicates a requested dataset or species entry is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ErrUnconfigured indicates the store has no backend.
var ErrUnconfigured = apperrors.New(apperrors.CodeStorageUnconfigured, "storage is not configured")

// Fetcher retrieves a dataset for a format from the external source.
type Fetcher interface {
	FetchDataset(ctx context.Context, format string) (*domain.Dataset, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, format string) (*domain.Dataset, error)

// FetchDataset calls the wrapped function.
func (f FetcherFunc) FetchDataset(ctx context.Context, format string) (*domain.Dataset, error) {
	return f(ctx, format)
}

// Backend persists fetched datasets.
type Backend interface {
	GetDataset(ctx context.Context, format string) (*domain.Dataset, error)
	PutDataset(ctx context.Context, dataset *domain.Dataset) error
	DeleteDataset(ctx context.Context, format string) error
	Close() error
}

// Store is the caching accessor over a backend and a fetcher.
type Store struct {
	backend Backend
	fetcher Fetcher
}

// NewStore returns a store over the backend and fetcher.
func NewStore(backend Backend, fetcher Fetcher) *Store {
	return &Store{backend: backend, fetcher: fetcher}
}

// Available reports whether a dataset for the format is already cached.
func (s *Store) Available(ctx context.Context, format string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.backend == nil {
		return false, ErrUnconfigured
	}
	_, err := s.backend.GetDataset(ctx, format)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Fetch returns the cached dataset for a format, pulling it through the
// fetcher and persisting it on a cache miss.
func (s *Store) Fetch(ctx context.Context, format string) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.backend == nil {
		return nil, ErrUnconfigured
	}

	dataset, err := s.backend.GetDataset(ctx, format)
	if err == nil {
		return dataset, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if s.fetcher == nil {
		return nil, err
	}

	dataset, err = s.fetcher.FetchDataset(ctx, format)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset %q: %w", format, err)
	}
	if dataset == nil {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, format, ErrNotFound)
	}
	if err := s.backend.PutDataset(ctx, dataset); err != nil {
		return nil, fmt.Errorf("persist dataset %q: %w", format, err)
	}
	return dataset, nil
}

// Get returns the cached presets for one species forme in a format. The
// forme is normalized before lookup.
func (s *Store) Get(ctx context.Context, format, speciesForme string) ([]domain.Preset, error) {
	dataset, err := s.Fetch(ctx, format)
	if err != nil {
		return nil, err
	}
	presets, ok := dataset.Presets[dex.NormalizeID(speciesForme)]
	if !ok || len(presets) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, speciesForme, ErrNotFound)
	}
	return presets, nil
}

// Usage returns the cached usage record for one species forme, when present.
func (s *Store) Usage(ctx context.Context, format, speciesForme string) (*domain.UsageRecord, error) {
	dataset, err := s.Fetch(ctx, format)
	if err != nil {
		return nil, err
	}
	record, ok := dataset.Usage[dex.NormalizeID(speciesForme)]
	if !ok {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, speciesForme, ErrNotFound)
	}
	return record, nil
}

// Purge drops the cached dataset for a format.
func (s *Store) Purge(ctx context.Context, format string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.backend == nil {
		return ErrUnconfigured
	}
	return s.backend.DeleteDataset(ctx, format)
}

// Close closes the backend.
func (s *Store) Close() error {
	if s == nil || s.backend == nil {
		return nil
	}
	return s.backend.Close()
}
