// Package calc computes final stats from base stats, spreads, and in-battle
// modifiers. The formula functions are pure; nothing here caches across
// reconciliation cycles.
package calc

import (
	"github.com/doshidak/calcdex/internal/dex"
	"github.com/doshidak/calcdex/internal/format"
)

// HPStat computes the final HP stat.
func HPStat(f format.Format, base, iv, ev, level int) int {
	if f.Legacy() {
		dv := DV(iv)
		return (2*(base+dv)+ev/4)*level/100 + level + 10
	}
	return (2*base+iv+ev/4)*level/100 + level + 10
}

// Stat computes a final non-HP stat before boosts and battle modifiers.
// natureMult is 1 for legacy generations, which have no natures.
func Stat(f format.Format, base, iv, ev, level int, natureMult float64) int {
	if f.Legacy() {
		dv := DV(iv)
		return (2*(base+dv)+ev/4)*level/100 + 5
	}
	raw := (2*base+iv+ev/4)*level/100 + 5
	return int(float64(raw) * natureMult)
}

// DV converts a modern-scale IV (0-30, even) to its legacy DV (0-15).
func DV(iv int) int {
	return iv / 2
}

// IVFromDV converts a legacy DV back to the modern IV scale.
func IVFromDV(dv int) int {
	return dv * 2
}

// HPDV derives the legacy HP DV from the low bits of the other DVs. It is
// never searched independently.
func HPDV(atkDV, defDV, speDV, spcDV int) int {
	return (atkDV&1)*8 + (defDV&1)*4 + (speDV&1)*2 + spcDV&1
}

// SpreadStats computes the full final stat line for a spread, without boosts
// or battle modifiers.
func SpreadStats(f format.Format, base dex.StatTable, level int, nature dex.Nature, ivs, evs dex.StatTable) dex.StatTable {
	out := dex.StatTable{}
	out.HP = HPStat(f, base.HP, ivs.HP, evs.HP, level)
	for _, s := range dex.Stats {
		if s == dex.HP {
			continue
		}
		mult := 1.0
		if f.HasNatures() {
			mult = nature.Multiplier(s)
		}
		out = out.Set(s, Stat(f, base.Get(s), ivs.Get(s), evs.Get(s), level, mult))
	}
	return out
}

// BoostMultiplier returns the stage multiplier (|stage|+2)/2 raised to the
// sign of the stage, with the stage clamped to ±6.
func BoostMultiplier(stage int) float64 {
	if stage > 6 {
		stage = 6
	} else if stage < -6 {
		stage = -6
	}
	if stage >= 0 {
		return float64(stage+2) / 2
	}
	return 2 / float64(-stage+2)
}
