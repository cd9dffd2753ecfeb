// Package dex exposes the read-only species, move, and nature tables the
// engine derives legality from. Tables are shared by every battle session and
// never mutated after construction.
package dex

import (
	"strings"

	apperrors "github.com/doshidak/calcdex/internal/errors"
)

var (
	// ErrSpeciesNotFound indicates a species forme missing from the tables.
	ErrSpeciesNotFound = apperrors.New(apperrors.CodeDexSpeciesNotFound, "species not found")
	// ErrMoveNotFound indicates a move missing from the tables.
	ErrMoveNotFound = apperrors.New(apperrors.CodeDexMoveNotFound, "move not found")
)

// Stat identifies one stat column.
type Stat string

// Stat columns. Spc is the merged generation-1 special stat; it is never
// stored, only used when mirroring observations into SpA and SpD.
const (
	HP  Stat = "hp"
	Atk Stat = "atk"
	Def Stat = "def"
	SpA Stat = "spa"
	SpD Stat = "spd"
	Spe Stat = "spe"
	Spc Stat = "spc"
)

// Stats lists the stored stat columns in canonical order.
var Stats = []Stat{HP, Atk, Def, SpA, SpD, Spe}

// StatTable holds one value per stored stat column.
type StatTable struct {
	HP  int `json:"hp"`
	Atk int `json:"atk"`
	Def int `json:"def"`
	SpA int `json:"spa"`
	SpD int `json:"spd"`
	Spe int `json:"spe"`
}

// Get returns the value for a stat column. Spc reads SpA.
func (t StatTable) Get(s Stat) int {
	switch s {
	case HP:
		return t.HP
	case Atk:
		return t.Atk
	case Def:
		return t.Def
	case SpA, Spc:
		return t.SpA
	case SpD:
		return t.SpD
	case Spe:
		return t.Spe
	}
	return 0
}

// Set returns a copy of the table with the stat column replaced.
// Spc writes both special columns.
func (t StatTable) Set(s Stat, value int) StatTable {
	switch s {
	case HP:
		t.HP = value
	case Atk:
		t.Atk = value
	case Def:
		t.Def = value
	case SpA:
		t.SpA = value
	case SpD:
		t.SpD = value
	case Spe:
		t.Spe = value
	case Spc:
		t.SpA = value
		t.SpD = value
	}
	return t
}

// Fill returns a table with every column set to value.
func Fill(value int) StatTable {
	return StatTable{HP: value, Atk: value, Def: value, SpA: value, SpD: value, Spe: value}
}

// Sum returns the total of every column except HP when skipHP is set.
func (t StatTable) Sum(skipHP bool) int {
	total := t.Atk + t.Def + t.SpA + t.SpD + t.Spe
	if !skipHP {
		total += t.HP
	}
	return total
}

// Species describes one species forme.
type Species struct {
	Name           string
	Types          []string
	Abilities      []string
	BaseStats      StatTable
	BaseForme      string   // set when this entry is a cosmetic variant of another forme
	CosmeticFormes []string // display names of cosmetic variants
	OtherFormes    []string // display names of battle-relevant alternate formes
	CanGigantamax  bool
}

// MoveCategory partitions moves into damage classes.
type MoveCategory string

const (
	CategoryStatus   MoveCategory = "status"
	CategoryPhysical MoveCategory = "physical"
	CategorySpecial  MoveCategory = "special"
)

// Move describes one move.
type Move struct {
	Name     string
	Type     string
	Category MoveCategory
	// Pivot marks moves that switch the user out after use.
	Pivot bool
}

// Damaging reports whether the move is physical or special.
func (m Move) Damaging() bool {
	return m.Category != CategoryStatus
}

// Dex is a read-only lookup table set.
type Dex struct {
	species map[string]Species
	moves   map[string]Move
}

// New returns a Dex preloaded with the built-in tables.
func New() *Dex {
	d := &Dex{
		species: make(map[string]Species, len(builtinSpecies)),
		moves:   make(map[string]Move, len(builtinMoves)),
	}
	for _, s := range builtinSpecies {
		d.RegisterSpecies(s)
	}
	for _, m := range builtinMoves {
		d.RegisterMove(m)
	}
	return d
}

// RegisterSpecies adds or replaces a species entry, including its cosmetic
// variants, which resolve back to the base entry's stats and abilities.
func (d *Dex) RegisterSpecies(s Species) {
	d.species[NormalizeID(s.Name)] = s
	for _, cosmetic := range s.CosmeticFormes {
		d.species[NormalizeID(cosmetic)] = Species{
			Name:      cosmetic,
			Types:     s.Types,
			Abilities: s.Abilities,
			BaseStats: s.BaseStats,
			BaseForme: s.Name,
		}
	}
}

// RegisterMove adds or replaces a move entry.
func (d *Dex) RegisterMove(m Move) {
	d.moves[NormalizeID(m.Name)] = m
}

// Species resolves a forme name to its species entry. Wildcard ("-*") and
// Gigantamax ("-Gmax") suffixes are stripped before lookup.
func (d *Dex) Species(forme string) (Species, error) {
	name := StripFormeSuffix(forme)
	if s, ok := d.species[NormalizeID(name)]; ok {
		return s, nil
	}
	return Species{}, apperrors.Wrap(apperrors.CodeDexSpeciesNotFound, forme, ErrSpeciesNotFound)
}

// Move resolves a move name to its move entry.
func (d *Dex) Move(name string) (Move, error) {
	if m, ok := d.moves[NormalizeID(name)]; ok {
		return m, nil
	}
	return Move{}, apperrors.Wrap(apperrors.CodeDexMoveNotFound, name, ErrMoveNotFound)
}

// StripFormeSuffix removes the wildcard and Gigantamax markers from a forme
// name: "Urshifu-*" and "Charizard-Gmax" both resolve to their base forme.
func StripFormeSuffix(forme string) string {
	name := strings.TrimSpace(forme)
	name = strings.TrimSuffix(name, "-*")
	name = strings.TrimSuffix(name, "-Gmax")
	return name
}
