package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/doshidak/calcdex/internal/battle/domain"
	"github.com/doshidak/calcdex/internal/preset/storage"
	"github.com/doshidak/calcdex/internal/preset/storage/memory"
)

func testDataset(format string) *domain.Dataset {
	return &domain.Dataset{
		Format: format,
		Presets: map[string][]domain.Preset{
			"garchomp": {{
				Name:         "Swords Dance",
				Format:       format,
				SpeciesForme: "Garchomp",
				Nature:       "Jolly",
			}},
		},
		Usage: map[string]*domain.UsageRecord{
			"garchomp": {SpeciesForme: "Garchomp", Items: map[string]float64{"Leftovers": 0.4}},
		},
	}
}

type countingFetcher struct {
	calls   int
	dataset *domain.Dataset
	err     error
}

func (f *countingFetcher) FetchDataset(ctx context.Context, format string) (*domain.Dataset, error) {
	f.calls++
	return f.dataset, f.err
}

func TestStoreFetchPullsThroughOnce(t *testing.T) {
	fetcher := &countingFetcher{dataset: testDataset("gen9ou")}
	store := storage.NewStore(memory.New(), fetcher)
	ctx := context.Background()

	available, err := store.Available(ctx, "gen9ou")
	if err != nil {
		t.Fatalf("Available() error = %v", err)
	}
	if available {
		t.Fatal("Available() = true before any fetch")
	}

	if _, err := store.Fetch(ctx, "gen9ou"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if _, err := store.Fetch(ctx, "gen9ou"); err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1 (cache hit on the second fetch)", fetcher.calls)
	}

	available, err = store.Available(ctx, "gen9ou")
	if err != nil {
		t.Fatalf("Available() error = %v", err)
	}
	if !available {
		t.Error("Available() = false after a fetch")
	}
}

func TestStoreGetNormalizesForme(t *testing.T) {
	store := storage.NewStore(memory.New(), &countingFetcher{dataset: testDataset("gen9ou")})
	ctx := context.Background()

	presets, err := store.Get(ctx, "gen9ou", "Garchomp")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(presets) != 1 || presets[0].Name != "Swords Dance" {
		t.Errorf("presets = %v, want the Swords Dance entry", presets)
	}

	if _, err := store.Get(ctx, "gen9ou", "Heatran"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestStoreUsage(t *testing.T) {
	store := storage.NewStore(memory.New(), &countingFetcher{dataset: testDataset("gen9ou")})

	record, err := store.Usage(context.Background(), "gen9ou", "Garchomp")
	if err != nil {
		t.Fatalf("Usage() error = %v", err)
	}
	if record.Items["Leftovers"] != 0.4 {
		t.Errorf("usage record = %+v, want the cached item weights", record)
	}
}

func TestStorePurge(t *testing.T) {
	fetcher := &countingFetcher{dataset: testDataset("gen9ou")}
	store := storage.NewStore(memory.New(), fetcher)
	ctx := context.Background()

	if _, err := store.Fetch(ctx, "gen9ou"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if err := store.Purge(ctx, "gen9ou"); err != nil {
		t.Fatalf("Purge() error = %v", err)
	}

	available, err := store.Available(ctx, "gen9ou")
	if err != nil {
		t.Fatalf("Available() error = %v", err)
	}
	if available {
		t.Error("Available() = true after purge")
	}

	// The next fetch must go back to the source.
	if _, err := store.Fetch(ctx, "gen9ou"); err != nil {
		t.Fatalf("Fetch() after purge error = %v", err)
	}
	if fetcher.calls != 2 {
		t.Errorf("fetcher calls = %d, want 2", fetcher.calls)
	}
}

func TestStoreFetchErrorsWithoutFetcher(t *testing.T) {
	store := storage.NewStore(memory.New(), nil)

	if _, err := store.Fetch(context.Background(), "gen9ou"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Fetch() error = %v, want ErrNotFound without a fetcher", err)
	}
}

func TestStoreCancelledContext(t *testing.T) {
	store := storage.NewStore(memory.New(), &countingFetcher{dataset: testDataset("gen9ou")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Fetch(ctx, "gen9ou"); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}
