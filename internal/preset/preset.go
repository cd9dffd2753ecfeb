// Package preset matches and applies community spread templates to entities.
package preset

import (
	"sort"

	"github.com/doshidak/calcdex/internal/battle/domain"
	"github.com/doshidak/calcdex/internal/dex"
	"github.com/doshidak/calcdex/internal/format"
)

// Applied reports whether the preset already describes the entity: ability
// and nature (skipped in legacy generations), item (skipped in generation 1),
// full move-subset containment, IVs (with the legacy special-stat
// exceptions), and EVs (skipped in legacy). Alternates and the content-hash
// id are not part of the comparison. Pure, no side effects.
func Applied(f format.Format, e *domain.Entity, p domain.Preset) bool {
	if f.HasAbilities() && dex.NormalizeID(e.EffectiveAbility()) != dex.NormalizeID(p.Ability) {
		return false
	}
	if f.HasNatures() && dex.NormalizeID(e.Nature) != dex.NormalizeID(p.Nature) {
		return false
	}
	if f.HasItems() && dex.NormalizeID(e.EffectiveItem()) != dex.NormalizeID(p.Item) {
		return false
	}
	for _, want := range p.Moves {
		if !containsMove(e.Moves, want) {
			return false
		}
	}
	if !ivsMatch(f, e.IVs, p.IVs) {
		return false
	}
	if !f.Legacy() && e.EVs != p.EVs {
		return false
	}
	return true
}

// Mutation is the field set Apply produces. It is applied to a clone, never
// in place; nil dirty pointers clear the corresponding manual override.
type Mutation struct {
	AppliedPreset string

	Nature string
	IVs    dex.StatTable
	EVs    dex.StatTable

	// Moves is nil when the entity's move list must not change
	// (transformation-locked).
	Moves []string

	DirtyAbility *string
	DirtyItem    *string

	TeraType string

	AltAbilities []domain.Alt
	AltItems     []domain.Alt
	AltMoves     []domain.Alt

	ShowGenetics bool
}

// Apply computes the mutation that brings the entity onto the preset.
//
// Transformed entities keep their transformation-locked fields: the move
// list stays untouched, the pre-transform HP IV/EV columns are retained, and
// an item already held before transforming is never swapped out. A manual
// override that would now simply restate the revealed value is cleared
// instead of set. When a matching usage record is supplied the alternates
// are re-sorted by usage weight.
func Apply(f format.Format, e *domain.Entity, p domain.Preset, usage *domain.UsageRecord) Mutation {
	m := Mutation{
		AppliedPreset: p.ID,
		IVs:           p.IVs,
		EVs:           p.EVs,
	}
	if f.HasNatures() {
		m.Nature = p.Nature
	}

	transformed := e.TransformedForme != ""
	if transformed {
		m.IVs.HP = e.IVs.HP
		m.EVs.HP = e.EVs.HP
	} else {
		m.Moves = append([]string(nil), p.Moves...)
	}

	if f.HasAbilities() && p.Ability != "" {
		if dex.NormalizeID(e.Ability) != dex.NormalizeID(p.Ability) {
			ability := p.Ability
			m.DirtyAbility = &ability
		}
	}

	itemLocked := transformed && (e.Item != "" || e.PrevItem != "")
	if f.HasItems() && p.Item != "" && !itemLocked {
		if dex.NormalizeID(e.Item) != dex.NormalizeID(p.Item) {
			item := p.Item
			m.DirtyItem = &item
		}
	}

	if len(p.TeraTypes) > 0 {
		m.TeraType = p.TeraTypes[0]
	}

	m.AltAbilities = SortAlts(p.AltAbilities, usageWeights(usage).abilities)
	m.AltItems = SortAlts(p.AltItems, usageWeights(usage).items)
	m.AltMoves = SortAlts(p.AltMoves, usageWeights(usage).moves)

	// An entirely empty spread leaves nothing to look at unless the
	// genetics panel is forced open.
	if m.IVs == (dex.StatTable{}) && m.EVs == (dex.StatTable{}) {
		m.ShowGenetics = true
	}
	return m
}

// ApplyTo produces a new entity with the mutation applied.
func (m Mutation) ApplyTo(e *domain.Entity) *domain.Entity {
	out := e.Clone()
	out.AppliedPreset = m.AppliedPreset
	out.Nature = m.Nature
	out.IVs = m.IVs
	out.EVs = m.EVs
	if m.Moves != nil {
		out.Moves = append([]string(nil), m.Moves...)
	}
	out.DirtyAbility = m.DirtyAbility
	out.DirtyItem = m.DirtyItem
	if m.TeraType != "" {
		out.TeraType = m.TeraType
	}
	out.ShowGenetics = m.ShowGenetics
	return out
}

// SortAlts returns the alternates sorted by descending usage weight. A
// weights map (keyed by normalized option name) overrides the weights the
// alternates carry.
func SortAlts(alts []domain.Alt, weights map[string]float64) []domain.Alt {
	if len(alts) == 0 {
		return nil
	}
	out := append([]domain.Alt(nil), alts...)
	for i := range out {
		if w, ok := weights[dex.NormalizeID(out[i].Name)]; ok {
			out[i].Usage = w
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Usage > out[j].Usage })
	return out
}

type weightSet struct {
	abilities map[string]float64
	items     map[string]float64
	moves     map[string]float64
}

func usageWeights(usage *domain.UsageRecord) weightSet {
	if usage == nil {
		return weightSet{}
	}
	return weightSet{
		abilities: normalizeWeights(usage.Abilities),
		items:     normalizeWeights(usage.Items),
		moves:     normalizeWeights(usage.Moves),
	}
}

func normalizeWeights(raw map[string]float64) map[string]float64 {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]float64, len(raw))
	for name, w := range raw {
		out[dex.NormalizeID(name)] = w
	}
	return out
}

func containsMove(moves []string, want string) bool {
	for _, have := range moves {
		if dex.NormalizeID(have) == dex.NormalizeID(want) {
			return true
		}
	}
	return false
}

// ivsMatch compares IV tables. Legacy generations derive HP from the other
// DVs and mirror one special DV into both columns, so only the directly
// chosen columns are compared there.
func ivsMatch(f format.Format, have, want dex.StatTable) bool {
	if !f.Legacy() {
		return have == want
	}
	return have.Atk == want.Atk && have.Def == want.Def &&
		have.Spe == want.Spe && have.SpA == want.SpA
}
