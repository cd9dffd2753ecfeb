package domain

import "github.com/doshidak/calcdex/internal/dex"

// Alt is one alternative choice with its community usage weight.
type Alt struct {
	Name  string  `json:"name"`
	Usage float64 `json:"usage,omitempty"`
}

// Preset is a named spread template. Presets are immutable once constructed;
// their ID is a content hash over every field below it.
type Preset struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Format string `json:"format"`
	Gen    int    `json:"gen"`

	SpeciesForme string `json:"speciesForme"`

	Ability      string `json:"ability,omitempty"`
	AltAbilities []Alt  `json:"altAbilities,omitempty"`

	Item     string `json:"item,omitempty"`
	AltItems []Alt  `json:"altItems,omitempty"`

	Nature string `json:"nature,omitempty"`

	Moves    []string `json:"moves,omitempty"`
	AltMoves []Alt    `json:"altMoves,omitempty"`

	IVs dex.StatTable `json:"ivs"`
	EVs dex.StatTable `json:"evs"`

	TeraTypes []string `json:"teraTypes,omitempty"`

	// Usage is the weight of this spread within its dataset, when known.
	Usage float64 `json:"usage,omitempty"`
}

// UsageRecord carries per-option community usage weights for one species
// forme in one format.
type UsageRecord struct {
	SpeciesForme string             `json:"speciesForme"`
	Abilities    map[string]float64 `json:"abilities,omitempty"`
	Items        map[string]float64 `json:"items,omitempty"`
	Moves        map[string]float64 `json:"moves,omitempty"`
}

// Dataset is one fetched preset/usage dataset for a format.
type Dataset struct {
	Format  string                  `json:"format"`
	Presets map[string][]Preset     `json:"presets"` // keyed by normalized species forme
	Usage   map[string]*UsageRecord `json:"usage,omitempty"`
}
