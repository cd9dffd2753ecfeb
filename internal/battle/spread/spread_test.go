package spread

import (
	"errors"
	"testing"

	"github.com/doshidak/calcdex/internal/battle/calc"
	"github.com/doshidak/calcdex/internal/dex"
	apperrors "github.com/doshidak/calcdex/internal/errors"
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

func TestInferModernResetsNatureOnMismatch(t *testing.T) {
	f := mustFormat(t, "gen9ou")
	garchomp := dex.StatTable{HP: 108, Atk: 130, Def: 95, SpA: 80, SpD: 85, Spe: 102}

	// Adamant reproduces Attack 359 but would need 372 Speed EVs for 333,
	// so the search must discard it and land on Jolly.
	known := map[dex.Stat]int{
		dex.HP:  100,
		dex.Atk: 359,
		dex.Def: 226,
		dex.SpA: 176,
		dex.SpD: 207,
		dex.Spe: 333,
	}

	got, err := Infer(f, garchomp, 100, known, true)
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}
	if got.Nature.Name != "Jolly" {
		t.Errorf("nature = %q, want Jolly", got.Nature.Name)
	}
	wantIVs := dex.Fill(31)
	if got.IVs != wantIVs {
		t.Errorf("IVs = %+v, want %+v", got.IVs, wantIVs)
	}
	wantEVs := dex.StatTable{Atk: 252, SpD: 4, Spe: 252}
	if got.EVs != wantEVs {
		t.Errorf("EVs = %+v, want %+v", got.EVs, wantEVs)
	}
	if sum := got.EVs.Sum(false); sum > f.TotalEVBudget() {
		t.Errorf("EV sum = %d, exceeds budget %d", sum, f.TotalEVBudget())
	}
}

func TestInferModernReproducesReportedStats(t *testing.T) {
	f := mustFormat(t, "gen9ou")
	base := dex.StatTable{HP: 78, Atk: 115, Def: 58, SpA: 70, SpD: 42, Spe: 83}

	known := map[dex.Stat]int{
		dex.HP:  100,
		dex.Atk: 299,
		dex.Def: 152,
		dex.SpA: 193,
		dex.SpD: 120,
		dex.Spe: 202,
	}

	got, err := Infer(f, base, 100, known, true)
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}

	// Several spreads can reproduce identical stats, so assert the
	// reproduction itself rather than one particular tuple.
	derived := calc.SpreadStats(f, base, 100, got.Nature, got.IVs, got.EVs)
	for _, s := range []dex.Stat{dex.Atk, dex.Def, dex.SpA, dex.SpD, dex.Spe} {
		if derived.Get(s) != known[s] {
			t.Errorf("%s = %d, want %d", s, derived.Get(s), known[s])
		}
	}
	if sum := got.EVs.Sum(false); sum > f.TotalEVBudget() {
		t.Errorf("EV sum = %d, exceeds budget %d", sum, f.TotalEVBudget())
	}
}

func TestInferModernStaleHPExcluded(t *testing.T) {
	f := mustFormat(t, "gen9ou")
	garchomp := dex.StatTable{HP: 108, Atk: 130, Def: 95, SpA: 80, SpD: 85, Spe: 102}

	// HP 100 is a percentage artifact, not a real final stat. With the
	// stale flag set the search ignores it and still succeeds.
	known := map[dex.Stat]int{dex.HP: 100, dex.Atk: 359}

	got, err := Infer(f, garchomp, 100, known, true)
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}
	if got.IVs.HP != 31 || got.EVs.HP != 0 {
		t.Errorf("HP column = iv %d ev %d, want generation defaults 31/0", got.IVs.HP, got.EVs.HP)
	}
	// With only Attack constrained the first nature boosting it wins:
	// Adamant at int((296+31)*1.1) = 359.
	if got.Nature.Name != "Adamant" || got.EVs.Atk != 124 {
		t.Errorf("got %s with Atk EV %d, want Adamant with 124", got.Nature.Name, got.EVs.Atk)
	}
}

func TestInferModernUnknownStatsKeepDefaults(t *testing.T) {
	f := mustFormat(t, "gen9ou")
	garchomp := dex.StatTable{HP: 108, Atk: 130, Def: 95, SpA: 80, SpD: 85, Spe: 102}

	got, err := Infer(f, garchomp, 100, map[dex.Stat]int{dex.Spe: 240}, false)
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}
	if got.IVs.Atk != 31 {
		t.Errorf("Atk IV = %d, want default 31", got.IVs.Atk)
	}
	if got.EVs.Atk != 0 {
		t.Errorf("Atk EV = %d, want default 0", got.EVs.Atk)
	}
}

func TestInferLegacyRecoversDVs(t *testing.T) {
	f := mustFormat(t, "gen1ou")
	tauros := dex.StatTable{HP: 75, Atk: 100, Def: 95, SpA: 40, SpD: 70, Spe: 110}

	// Max DVs with full stat experience. The merged Special column is
	// reported once and must land on both modern special columns.
	known := map[dex.Stat]int{
		dex.HP:  353,
		dex.Atk: 298,
		dex.Def: 258,
		dex.Spc: 178,
		dex.Spe: 318,
	}

	got, err := Infer(f, tauros, 100, known, false)
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}
	if got.Nature.Name != "Hardy" {
		t.Errorf("nature = %q, want neutral Hardy", got.Nature.Name)
	}
	wantIVs := dex.Fill(30)
	if got.IVs != wantIVs {
		t.Errorf("IVs = %+v, want %+v", got.IVs, wantIVs)
	}
	wantEVs := dex.Fill(252)
	if got.EVs != wantEVs {
		t.Errorf("EVs = %+v, want %+v", got.EVs, wantEVs)
	}
}

func TestInferLegacyDerivesHPDV(t *testing.T) {
	f := mustFormat(t, "gen1ou")
	tauros := dex.StatTable{HP: 75, Atk: 100, Def: 95, SpA: 40, SpD: 70, Spe: 110}

	// Attack DV 7 with no stat experience: 2*(100+7) + 5 = 219.
	got, err := Infer(f, tauros, 100, map[dex.Stat]int{dex.Atk: 219}, false)
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}
	if got.IVs.Atk != 14 {
		t.Errorf("Atk IV = %d, want 14 (DV 7)", got.IVs.Atk)
	}
	// HP DV is derived from the low bits of the other four DVs, never
	// searched directly.
	if got.IVs.HP != 30 {
		t.Errorf("HP IV = %d, want 30 (derived DV 15)", got.IVs.HP)
	}
}

func TestInferLegacyHPMismatchFails(t *testing.T) {
	f := mustFormat(t, "gen1ou")
	tauros := dex.StatTable{HP: 75, Atk: 100, Def: 95, SpA: 40, SpD: 70, Spe: 110}

	// Attack pins the DVs, but the reported HP is unreachable with the
	// derived HP DV.
	known := map[dex.Stat]int{
		dex.Atk: 298,
		dex.HP:  999,
	}

	_, err := Infer(f, tauros, 100, known, false)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("Infer() error = %v, want ErrNoMatch", err)
	}
}

func TestInferExhaustionReturnsEmpty(t *testing.T) {
	f := mustFormat(t, "gen9ou")
	garchomp := dex.StatTable{HP: 108, Atk: 130, Def: 95, SpA: 80, SpD: 85, Spe: 102}

	got, err := Infer(f, garchomp, 100, map[dex.Stat]int{dex.Atk: 9999}, false)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("Infer() error = %v, want ErrNoMatch", err)
	}
	if !apperrors.IsCode(err, apperrors.CodeSpreadInferenceFailed) {
		t.Errorf("error code = %v, want CodeSpreadInferenceFailed", apperrors.GetCode(err))
	}
	if got != (Result{}) {
		t.Errorf("result = %+v, want empty on exhaustion", got)
	}
}

func TestInferNoKnownStats(t *testing.T) {
	f := mustFormat(t, "gen9ou")

	_, err := Infer(f, dex.Fill(100), 100, nil, false)
	if !errors.Is(err, ErrMissingStats) {
		t.Fatalf("Infer() error = %v, want ErrMissingStats", err)
	}

	// A lone stale HP reading leaves nothing to search against.
	_, err = Infer(f, dex.Fill(100), 100, map[dex.Stat]int{dex.HP: 100}, true)
	if !errors.Is(err, ErrMissingStats) {
		t.Fatalf("Infer() with only stale HP error = %v, want ErrMissingStats", err)
	}
}
