package sync

import (
	"github.com/doshidak/calcdex/internal/battle/domain"
	"github.com/doshidak/calcdex/internal/dex"
)

// ruinAbilities are the stacking field-count abilities whose activation
// depends on a team-wide distinct count rather than the holder alone.
var ruinAbilities = map[string]struct{}{
	"beadsofruin":   {},
	"swordofruin":   {},
	"tabletsofruin": {},
	"vesselofruin":  {},
}

// RecountRuin recomputes the activation flag for every ruin-ability holder.
// Activation requires at least two distinct ruin abilities among active
// entities on the combined field, and only flips for entities that are
// currently active or selected. Must run over the whole roster whenever
// selection or activity changes, not just the entity being edited.
func RecountRuin(entities []*domain.Entity) {
	distinct := make(map[string]struct{}, 2)
	for _, e := range entities {
		if !e.Active {
			continue
		}
		a := dex.NormalizeID(e.EffectiveAbility())
		if _, ok := ruinAbilities[a]; ok {
			distinct[a] = struct{}{}
		}
	}
	activated := len(distinct) >= 2

	for _, e := range entities {
		a := dex.NormalizeID(e.EffectiveAbility())
		if _, ok := ruinAbilities[a]; !ok {
			continue
		}
		e.AbilityToggled = activated && (e.Active || e.Selected)
	}
}
