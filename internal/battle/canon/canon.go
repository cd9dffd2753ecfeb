// Package canon turns raw observations and prior entity records into
// canonical entities: forme aliases resolved, dex-derived legality lists
// populated, and per-generation defaults filled in.
package canon

import (
	"github.com/doshidak/calcdex/internal/battle/domain"
	"github.com/doshidak/calcdex/internal/battle/identity"
	"github.com/doshidak/calcdex/internal/dex"
	"github.com/doshidak/calcdex/internal/format"
)

// FromPublic builds a canonical entity from a first public-feed observation.
// Only identity-level fields are taken here; the merge of the observation's
// mutable fields is the reconciler's job.
func FromPublic(f format.Format, d *dex.Dex, obs domain.PublicObservation) (*domain.Entity, error) {
	side, name, err := domain.ParseIdent(obs.Ident)
	if err != nil {
		return nil, err
	}
	forme := obs.SpeciesForme
	if forme == "" {
		forme = name
	}
	e := &domain.Entity{
		Source:       domain.SourcePublic,
		Side:         side,
		SpeciesForme: forme,
		Level:        obs.Level,
		Gender:       obs.Gender,
	}
	return Canonicalize(f, d, e)
}

// FromServer builds a canonical entity from an authoritative-feed
// observation. Authoritative stats, moves, ability, and item are recorded as
// revealed truth.
func FromServer(f format.Format, d *dex.Dex, obs domain.ServerObservation) (*domain.Entity, error) {
	side, name, err := domain.ParseIdent(obs.Ident)
	if err != nil {
		return nil, err
	}
	e := &domain.Entity{
		Source:       domain.SourceServer,
		Side:         side,
		SpeciesForme: name,
	}
	if len(obs.Stats) > 0 {
		e.ServerStats = make(map[dex.Stat]int, len(obs.Stats))
		for s, v := range obs.Stats {
			e.ServerStats[s] = v
		}
	}
	e.ServerMoves = append(e.ServerMoves, obs.Moves...)
	e.Moves = append(e.Moves, obs.Moves...)
	if f.HasAbilities() {
		e.Ability = obs.Ability
	}
	if f.HasItems() {
		e.Item = obs.Item
	}
	return Canonicalize(f, d, e)
}

// Canonicalize normalizes an entity record in canonical form: the forme alias
// is resolved against the dex, type/ability/base-forme lists are refreshed
// for the current (or transformed) forme, unset spread fields get their
// generation defaults, and fields the generation does not model are
// suppressed. Manual overrides are never clobbered.
//
// The input is not mutated. An unresolvable forme returns an error so the
// caller can keep its prior record.
func Canonicalize(f format.Format, d *dex.Dex, e *domain.Entity) (*domain.Entity, error) {
	out := e.Clone()

	sp, err := d.Species(out.SpeciesForme)
	if err != nil {
		return nil, err
	}
	if sp.BaseForme != "" {
		out.CosmeticForme = sp.Name
		out.SpeciesForme = sp.BaseForme
		if base, baseErr := d.Species(sp.BaseForme); baseErr == nil {
			sp = base
		}
	} else {
		out.SpeciesForme = sp.Name
	}
	out.AltFormes = append([]string(nil), sp.OtherFormes...)

	// Type and ability legality follow the transformed forme when one is
	// set. A transformed forme the dex cannot resolve is an optional field
	// and is ignored.
	deriv := sp
	if out.TransformedForme != "" {
		if tsp, tErr := d.Species(out.TransformedForme); tErr == nil {
			deriv = tsp
			out.TransformedForme = tsp.Name
		}
	}
	// An active type-change volatile overrides the dex-derived type list
	// until it drops.
	if tc, ok := out.Volatiles["typechange"]; ok && len(tc.Args) > 0 {
		out.Types = append([]string(nil), tc.Args...)
	} else {
		out.Types = append([]string(nil), deriv.Types...)
	}

	if out.Level <= 0 || domain.ValidateLevel(out.Level) != nil {
		out.Level = 100
	}

	if zero := (dex.StatTable{}); out.IVs == zero {
		out.IVs = dex.Fill(f.DefaultIV())
	}
	if zero := (dex.StatTable{}); out.EVs == zero {
		out.EVs = dex.Fill(f.DefaultEV())
	}

	if f.HasAbilities() {
		out.Abilities = append([]string(nil), deriv.Abilities...)
		if out.Ability == "" && out.DirtyAbility == nil && len(deriv.Abilities) == 1 {
			out.Ability = deriv.Abilities[0]
		}
	} else {
		out.Ability = ""
		out.DirtyAbility = nil
		out.Abilities = nil
		out.AbilityToggled = false
	}

	if f.HasNatures() {
		if out.Nature == "" {
			out.Nature = "Hardy"
		}
	} else {
		out.Nature = ""
	}

	if !f.HasItems() {
		out.Item = ""
		out.PrevItem = ""
		out.DirtyItem = nil
	}

	if out.ID == "" {
		out.ID = identity.EntityID(out.Side, out.SpeciesForme, out.Level, out.Gender)
	}
	nonce, err := identity.Nonce(out)
	if err != nil {
		return nil, err
	}
	out.Nonce = nonce
	return out, nil
}
