// Package spread recovers a plausible (nature, IVs, EVs) tuple from known
// final stats via constrained search.
//
// The search is best-effort: several distinct spreads can reproduce identical
// final stats, and the modern IV space is coarsened to {max, 0} for
// tractability. When no legal combination reproduces every known stat the
// search returns an empty result, never a partial or guessed one.
package spread

import (
	"github.com/doshidak/calcdex/internal/battle/calc"
	"github.com/doshidak/calcdex/internal/dex"
	apperrors "github.com/doshidak/calcdex/internal/errors"
	"github.com/doshidak/calcdex/internal/format"
)

// ErrNoMatch indicates the search exhausted every nature candidate without a
// full stat match.
var ErrNoMatch = apperrors.New(apperrors.CodeSpreadInferenceFailed, "no legal spread reproduces the known stats")

// ErrMissingStats indicates there were no known stats to search against.
var ErrMissingStats = apperrors.New(apperrors.CodeSpreadMissingStats, "no known stats to infer from")

// Result is a recovered spread.
type Result struct {
	Nature dex.Nature
	IVs    dex.StatTable
	EVs    dex.StatTable
}

// Infer searches for a spread reproducing the known final stats.
// Stats absent from known keep their generation defaults. When ignoreHP is
// set the HP column is excluded from matching (the stale zero-HP quirk).
func Infer(f format.Format, base dex.StatTable, level int, known map[dex.Stat]int, ignoreHP bool) (Result, error) {
	if level <= 0 {
		level = 100
	}
	targets := make(map[dex.Stat]int, len(known))
	for s, v := range known {
		if s == dex.HP && ignoreHP {
			continue
		}
		if s == dex.Spc {
			// Merged special observations apply to both modern columns.
			targets[dex.SpA] = v
			targets[dex.SpD] = v
			continue
		}
		targets[s] = v
	}
	if len(targets) == 0 {
		return Result{}, ErrMissingStats
	}

	if f.Legacy() {
		return inferLegacy(f, base, level, targets)
	}
	return inferModern(f, base, level, targets)
}

func inferModern(f format.Format, base dex.StatTable, level int, targets map[dex.Stat]int) (Result, error) {
	for _, nature := range dex.Natures {
		ivs := dex.Fill(f.DefaultIV())
		evs := dex.Fill(f.DefaultEV())
		matched := true

		for _, s := range dex.Stats {
			target, ok := targets[s]
			if !ok {
				continue
			}

			iv, ev, found := searchModernStat(f, base.Get(s), level, target, s, nature)
			if !found {
				matched = false
				break
			}
			ivs = ivs.Set(s, iv)
			evs = evs.Set(s, ev)
		}

		// The nature is accepted only when every known stat matched and
		// the summed EVs respect the legal budget; otherwise reset and
		// try the next nature.
		if matched && evs.Sum(false) <= f.TotalEVBudget() {
			return Result{Nature: nature, IVs: ivs, EVs: evs}, nil
		}
	}

	return Result{}, ErrNoMatch
}

// searchModernStat walks IV candidates from the legal maximum downward,
// coarsened to {max, 0} as the overwhelmingly common case, and EV candidates
// from 252 downward in steps of 4.
func searchModernStat(f format.Format, base, level, target int, s dex.Stat, nature dex.Nature) (int, int, bool) {
	for _, iv := range []int{f.MaxIV(), 0} {
		for ev := format.MaxEVPerStat; ev >= 0; ev -= 4 {
			var value int
			if s == dex.HP {
				value = calc.HPStat(f, base, iv, ev, level)
			} else {
				value = calc.Stat(f, base, iv, ev, level, nature.Multiplier(s))
			}
			if value == target {
				return iv, ev, true
			}
		}
	}
	return 0, 0, false
}

// inferLegacy runs the single-DV-constrained variant: Attack, Defense, Speed,
// and Special DVs are searched independently at DV granularity, the HP DV is
// derived from their low bits, and there is no nature.
func inferLegacy(f format.Format, base dex.StatTable, level int, targets map[dex.Stat]int) (Result, error) {
	neutral := dex.NatureByName("Hardy")

	type found struct{ dv, ev int }
	results := make(map[dex.Stat]found, 4)

	searched := []struct {
		stat   dex.Stat
		target dex.Stat // column the known value is read from
	}{
		{stat: dex.Atk, target: dex.Atk},
		{stat: dex.Def, target: dex.Def},
		{stat: dex.Spe, target: dex.Spe},
		{stat: dex.Spc, target: dex.SpA},
	}

	for _, col := range searched {
		target, ok := targets[col.target]
		if !ok {
			results[col.stat] = found{dv: calc.DV(f.DefaultIV()), ev: f.DefaultEV()}
			continue
		}
		matched := false
		for dv := 15; dv >= 0 && !matched; dv-- {
			for ev := format.MaxEVPerStat; ev >= 0; ev -= 4 {
				if calc.Stat(f, base.Get(col.stat), calc.IVFromDV(dv), ev, level, 1) == target {
					results[col.stat] = found{dv: dv, ev: ev}
					matched = true
					break
				}
			}
		}
		if !matched {
			return Result{}, ErrNoMatch
		}
	}

	hpDV := calc.HPDV(results[dex.Atk].dv, results[dex.Def].dv, results[dex.Spe].dv, results[dex.Spc].dv)
	hpEV := f.DefaultEV()
	if target, ok := targets[dex.HP]; ok {
		matched := false
		for ev := format.MaxEVPerStat; ev >= 0; ev -= 4 {
			if calc.HPStat(f, base.HP, calc.IVFromDV(hpDV), ev, level) == target {
				hpEV = ev
				matched = true
				break
			}
		}
		if !matched {
			return Result{}, ErrNoMatch
		}
	}

	spcIV := calc.IVFromDV(results[dex.Spc].dv)
	ivs := dex.StatTable{
		HP:  calc.IVFromDV(hpDV),
		Atk: calc.IVFromDV(results[dex.Atk].dv),
		Def: calc.IVFromDV(results[dex.Def].dv),
		SpA: spcIV,
		SpD: spcIV,
		Spe: calc.IVFromDV(results[dex.Spe].dv),
	}
	evs := dex.StatTable{
		HP:  hpEV,
		Atk: results[dex.Atk].ev,
		Def: results[dex.Def].ev,
		SpA: results[dex.Spc].ev,
		SpD: results[dex.Spc].ev,
		Spe: results[dex.Spe].ev,
	}

	return Result{Nature: neutral, IVs: ivs, EVs: evs}, nil
}
