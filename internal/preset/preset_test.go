package preset

import (
	"testing"

	"github.com/doshidak/calcdex/internal/battle/domain"
	"github.com/doshidak/calcdex/internal/dex"
	"github.com/doshidak/calcdex/internal/format"
)

func mustFormat(t *testing.T, id string) format.Format {
	t.Helper()
	f, err := format.Parse(id)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", id, err)
	}
	return f
}

func garchompPreset() domain.Preset {
	return domain.Preset{
		ID:           "abc123",
		Name:         "Swords Dance",
		Format:       "gen9ou",
		Gen:          9,
		SpeciesForme: "Garchomp",
		Ability:      "Rough Skin",
		Item:         "Leftovers",
		Nature:       "Jolly",
		Moves:        []string{"Swords Dance", "Earthquake", "Scale Shot", "Stone Edge"},
		IVs:          dex.Fill(31),
		EVs:          dex.StatTable{Atk: 252, SpD: 4, Spe: 252},
		TeraTypes:    []string{"Fire"},
	}
}

func TestAppliedRoundTrip(t *testing.T) {
	f := mustFormat(t, "gen9ou")
	p := garchompPreset()
	e := &domain.Entity{Side: "p1", SpeciesForme: "Garchomp", Level: 100}

	m := Apply(f, e, p, nil)
	got := m.ApplyTo(e)

	if !Applied(f, got, p) {
		t.Errorf("Applied() = false after Apply, want round-trip to hold")
	}
	if got.AppliedPreset != p.ID {
		t.Errorf("applied preset = %q, want %q", got.AppliedPreset, p.ID)
	}
	if got.TeraType != "Fire" {
		t.Errorf("tera type = %q, want re-derived Fire", got.TeraType)
	}
}

func TestAppliedMismatches(t *testing.T) {
	f := mustFormat(t, "gen9ou")
	p := garchompPreset()

	base := Apply(f, &domain.Entity{SpeciesForme: "Garchomp"}, p, nil).ApplyTo(&domain.Entity{SpeciesForme: "Garchomp"})

	tests := []struct {
		name   string
		mutate func(e *domain.Entity)
	}{
		{name: "different nature", mutate: func(e *domain.Entity) { e.Nature = "Adamant" }},
		{name: "different evs", mutate: func(e *domain.Entity) { e.EVs = dex.Fill(0) }},
		{name: "missing move", mutate: func(e *domain.Entity) { e.Moves = e.Moves[:3] }},
		{name: "different item", mutate: func(e *domain.Entity) { e.DirtyItem = nil; e.Item = "Choice Scarf" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := base.Clone()
			tt.mutate(e)
			if Applied(f, e, p) {
				t.Errorf("Applied() = true, want false")
			}
		})
	}
}

func TestAppliedLegacySkips(t *testing.T) {
	p := domain.Preset{
		SpeciesForme: "Tauros",
		Ability:      "Intimidate",
		Nature:       "Adamant",
		Moves:        []string{"Body Slam", "Hyper Beam"},
		IVs:          dex.Fill(30),
		EVs:          dex.Fill(252),
	}

	e := &domain.Entity{
		SpeciesForme: "Tauros",
		Moves:        []string{"Body Slam", "Hyper Beam", "Blizzard", "Earthquake"},
		IVs:          dex.Fill(30),
		EVs:          dex.Fill(0), // EVs are not compared in legacy
	}

	if !Applied(mustFormat(t, "gen1ou"), e, p) {
		t.Error("Applied() = false in gen 1, want ability/nature/item/EV checks skipped")
	}

	// Gen 2 checks items again.
	p.Item = "Leftovers"
	if Applied(mustFormat(t, "gen2ou"), e, p) {
		t.Error("Applied() = true in gen 2 without the preset item held")
	}
}

func TestApplyClearsRedundantOverrides(t *testing.T) {
	f := mustFormat(t, "gen9ou")
	p := garchompPreset()

	stale := "Sand Veil"
	e := &domain.Entity{
		SpeciesForme: "Garchomp",
		Ability:      "Rough Skin", // already revealed as the preset's ability
		Item:         "Leftovers",
		DirtyAbility: &stale,
	}

	m := Apply(f, e, p, nil)
	if m.DirtyAbility != nil {
		t.Errorf("dirty ability = %v, want cleared when it restates the revealed value", *m.DirtyAbility)
	}
	if m.DirtyItem != nil {
		t.Errorf("dirty item = %v, want cleared when it restates the revealed value", *m.DirtyItem)
	}

	got := m.ApplyTo(e)
	if got.DirtyAbility != nil {
		t.Error("stale dirty ability survived ApplyTo")
	}
}

func TestApplyTransformedKeepsLockedFields(t *testing.T) {
	f := mustFormat(t, "gen9ou")
	p := garchompPreset()

	e := &domain.Entity{
		SpeciesForme:     "Ditto",
		TransformedForme: "Garchomp",
		Item:             "Choice Scarf",
		Moves:            []string{"Earthquake"},
		IVs:              dex.StatTable{HP: 25, Atk: 31, Def: 31, SpA: 31, SpD: 31, Spe: 31},
		EVs:              dex.StatTable{HP: 100},
	}

	m := Apply(f, e, p, nil)
	if m.Moves != nil {
		t.Errorf("moves mutation = %v, want transformation-locked move list untouched", m.Moves)
	}
	if m.IVs.HP != 25 || m.EVs.HP != 100 {
		t.Errorf("HP column = iv %d ev %d, want pre-transform values retained", m.IVs.HP, m.EVs.HP)
	}
	if m.DirtyItem != nil {
		t.Errorf("dirty item = %v, want suppressed while an item is already held", *m.DirtyItem)
	}
}

func TestApplyEmptySpreadForcesGenetics(t *testing.T) {
	f := mustFormat(t, "gen9ou")
	p := domain.Preset{SpeciesForme: "Garchomp", Nature: "Jolly"}

	m := Apply(f, &domain.Entity{SpeciesForme: "Garchomp"}, p, nil)
	if !m.ShowGenetics {
		t.Error("ShowGenetics = false for an entirely empty spread")
	}
}

func TestSortAlts(t *testing.T) {
	alts := []domain.Alt{
		{Name: "Leftovers", Usage: 0.2},
		{Name: "Choice Scarf", Usage: 0.5},
		{Name: "Rocky Helmet", Usage: 0.3},
	}

	t.Run("by carried weight", func(t *testing.T) {
		got := SortAlts(alts, nil)
		if got[0].Name != "Choice Scarf" || got[2].Name != "Leftovers" {
			t.Errorf("order = %v, want descending by usage", got)
		}
	})

	t.Run("usage record overrides", func(t *testing.T) {
		got := SortAlts(alts, map[string]float64{"leftovers": 0.9})
		if got[0].Name != "Leftovers" {
			t.Errorf("order = %v, want Leftovers promoted by the usage record", got)
		}
	})
}
