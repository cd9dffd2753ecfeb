package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/doshidak/calcdex/internal/battle/domain"
	"github.com/doshidak/calcdex/internal/dex"
	"github.com/doshidak/calcdex/internal/format"
	"github.com/doshidak/calcdex/internal/preset/storage"
	"github.com/doshidak/calcdex/internal/preset/storage/memory"
)

func mustFormat(t *testing.T, id string) format.Format {
	t.Helper()
	f, err := format.Parse(id)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", id, err)
	}
	return f
}

func waitSnapshot(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case snapshot := <-ch:
		return snapshot
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a snapshot")
		return Snapshot{}
	}
}

func intp(v int) *int { return &v }

func TestSessionPipeline(t *testing.T) {
	f := mustFormat(t, "gen9ou")
	s := New("battle-1", f, dex.New(), nil, nil)
	defer s.Close()

	ctx := context.Background()
	snapshots := s.Subscribe()
	s.Start(ctx)

	obs := Observation{
		Public: &domain.PublicObservation{Ident: "p1a: Garchomp", HP: intp(357), MaxHP: intp(357)},
		Server: &domain.ServerObservation{
			Ident: "p1: Garchomp",
			Stats: map[dex.Stat]int{
				dex.HP: 357, dex.Atk: 359, dex.Def: 226,
				dex.SpA: 176, dex.SpD: 207, dex.Spe: 333,
			},
		},
	}
	if err := s.Submit(ctx, obs); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	got := waitSnapshot(t, snapshots)
	e := got.Entity
	if e.SpeciesForme != "Garchomp" {
		t.Fatalf("forme = %q, want Garchomp", e.SpeciesForme)
	}
	if e.Nature != "Jolly" {
		t.Errorf("inferred nature = %q, want Jolly", e.Nature)
	}
	want := dex.StatTable{HP: 357, Atk: 359, Def: 226, SpA: 176, SpD: 207, Spe: 333}
	if e.SpreadStats != want {
		t.Errorf("derived stats = %+v, want %+v", e.SpreadStats, want)
	}
	if e.EVs.Sum(false) > f.TotalEVBudget() {
		t.Errorf("EV sum = %d, exceeds budget", e.EVs.Sum(false))
	}
}

func TestSessionNoOpObservationSkipsPublish(t *testing.T) {
	f := mustFormat(t, "gen9ou")
	s := New("battle-1", f, dex.New(), nil, nil)
	defer s.Close()

	ctx := context.Background()
	snapshots := s.Subscribe()
	s.Start(ctx)

	obs := Observation{Public: &domain.PublicObservation{Ident: "p1a: Garchomp", HP: intp(280)}}
	if err := s.Submit(ctx, obs); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	first := waitSnapshot(t, snapshots)

	// The duplicate must produce no snapshot; the next change must be the
	// next snapshot delivered.
	if err := s.Submit(ctx, obs); err != nil {
		t.Fatalf("duplicate Submit() error = %v", err)
	}
	changed := Observation{Public: &domain.PublicObservation{Ident: "p1a: Garchomp", HP: intp(100)}}
	if err := s.Submit(ctx, changed); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	second := waitSnapshot(t, snapshots)
	if second.Entity.HP != 100 {
		t.Errorf("second snapshot HP = %d, want 100 (duplicate suppressed)", second.Entity.HP)
	}
	if first.Entity.Nonce == second.Entity.Nonce {
		t.Error("nonce unchanged across a material change")
	}
}

func TestSessionAppliesInArrivalOrder(t *testing.T) {
	f := mustFormat(t, "gen9ou")
	s := New("battle-1", f, dex.New(), nil, nil)
	defer s.Close()

	ctx := context.Background()
	snapshots := s.Subscribe()
	s.Start(ctx)

	for stage := 1; stage <= 3; stage++ {
		obs := Observation{Public: &domain.PublicObservation{
			Ident:  "p1a: Garchomp",
			Boosts: map[dex.Stat]int{dex.Atk: stage},
		}}
		if err := s.Submit(ctx, obs); err != nil {
			t.Fatalf("Submit(%d) error = %v", stage, err)
		}
	}

	for stage := 1; stage <= 3; stage++ {
		got := waitSnapshot(t, snapshots)
		if boost := got.Entity.Boosts[dex.Atk]; boost != stage {
			t.Fatalf("snapshot %d boost = %d, want arrival order preserved", stage, boost)
		}
	}
}

func TestSessionSubmitAfterClose(t *testing.T) {
	f := mustFormat(t, "gen9ou")
	s := New("battle-1", f, dex.New(), nil, nil)
	s.Start(context.Background())
	s.Close()

	err := s.Submit(context.Background(), Observation{Public: &domain.PublicObservation{Ident: "p1a: Garchomp"}})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Submit() error = %v, want ErrClosed", err)
	}
}

func TestSessionResolvesPresets(t *testing.T) {
	f := mustFormat(t, "gen9ou")

	dataset := &domain.Dataset{
		Format: "gen9ou",
		Presets: map[string][]domain.Preset{
			"garchomp": {{
				ID:           "preset-1",
				Name:         "Default",
				Format:       "gen9ou",
				SpeciesForme: "Garchomp",
				Nature:       "Hardy",
				IVs:          dex.Fill(31),
			}},
		},
	}
	store := storage.NewStore(memory.New(), storage.FetcherFunc(
		func(ctx context.Context, format string) (*domain.Dataset, error) {
			return dataset, nil
		}))
	if _, err := store.Fetch(context.Background(), "gen9ou"); err != nil {
		t.Fatalf("warm Fetch() error = %v", err)
	}

	s := New("battle-1", f, dex.New(), store, nil)
	defer s.Close()
	snapshots := s.Subscribe()
	s.Start(context.Background())

	obs := Observation{Public: &domain.PublicObservation{Ident: "p1a: Garchomp", HP: intp(300)}}
	if err := s.Submit(context.Background(), obs); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	got := waitSnapshot(t, snapshots)
	if len(got.Entity.CandidatePresets) != 1 || got.Entity.CandidatePresets[0] != "preset-1" {
		t.Errorf("candidates = %v, want [preset-1]", got.Entity.CandidatePresets)
	}
	if got.Entity.AppliedPreset != "preset-1" {
		t.Errorf("applied preset = %q, want the matching default spread", got.Entity.AppliedPreset)
	}
}

func TestSessionRuinActivation(t *testing.T) {
	f := mustFormat(t, "gen9ou")
	s := New("battle-1", f, dex.New(), nil, nil)
	defer s.Close()

	ctx := context.Background()
	snapshots := s.Subscribe()
	s.Start(ctx)

	active := true
	submit := func(ident string) {
		t.Helper()
		obs := Observation{Public: &domain.PublicObservation{Ident: ident, Active: &active}}
		if err := s.Submit(ctx, obs); err != nil {
			t.Fatalf("Submit(%q) error = %v", ident, err)
		}
	}

	submit("p1a: Chi-Yu")
	first := waitSnapshot(t, snapshots)
	if first.Entity.AbilityToggled {
		t.Error("single active ruin ability activated alone")
	}

	submit("p2a: Ting-Lu")
	second := waitSnapshot(t, snapshots)
	if !second.Entity.AbilityToggled {
		t.Error("second distinct ruin ability did not activate")
	}

	// The recount is team-wide: the first holder flipped too.
	for _, e := range s.Entities() {
		if e.SpeciesForme == "Chi-Yu" && !e.AbilityToggled {
			t.Error("recount did not flip the previously reconciled holder")
		}
	}
}
