package calc

import (
	"github.com/doshidak/calcdex/internal/battle/domain"
	"github.com/doshidak/calcdex/internal/dex"
	"github.com/doshidak/calcdex/internal/format"
)

// Volatile and ability names the modifier chain reacts to.
const (
	abilityGuts       = "guts"
	abilityQuickFeet  = "quickfeet"
	volatileSlowStart = "slowstart"
)

// Modified applies boost stages and status/ability/field modifiers to a
// spread stat line. HP is never modified.
//
// Burn halves Attack; paralysis cuts Speed to 25% before generation 7 and
// 50% from generation 7 onward. Guts converts any status into a 1.5x Attack
// boost instead of the burn penalty, and Quick Feet converts it into a 1.5x
// Speed boost instead of the paralysis penalty. An active slow-start
// volatile halves Attack and Speed.
func Modified(f format.Format, e *domain.Entity, spread dex.StatTable) dex.StatTable {
	out := spread

	status := e.EffectiveStatus()
	ability := dex.NormalizeID(e.EffectiveAbility())
	slowStart := e.HasVolatile(volatileSlowStart)

	for _, s := range dex.Stats {
		if s == dex.HP {
			continue
		}
		value := float64(spread.Get(s))
		value = float64(int(value * BoostMultiplier(e.EffectiveBoost(s))))

		switch s {
		case dex.Atk:
			if status != domain.StatusNone && ability == abilityGuts {
				value = float64(int(value * 1.5))
			} else if status == domain.StatusBurn {
				value = float64(int(value * 0.5))
			}
			if slowStart {
				value = float64(int(value * 0.5))
			}
		case dex.Spe:
			if status != domain.StatusNone && ability == abilityQuickFeet {
				value = float64(int(value * 1.5))
			} else if status == domain.StatusParalysis {
				if f.Gen >= 7 {
					value = float64(int(value * 0.5))
				} else {
					value = float64(int(value * 0.25))
				}
			}
			if slowStart {
				value = float64(int(value * 0.5))
			}
		}

		out = out.Set(s, int(value))
	}

	return out
}
