// Package format parses battle format identifiers and exposes the
// per-generation legality rules the engine depends on.
package format

import (
	"strconv"
	"strings"

	apperrors "github.com/doshidak/calcdex/internal/errors"
)

// DefaultGeneration is assumed when a format identifier carries no genN token.
const DefaultGeneration = 9

// Per-generation legality constants.
const (
	// MaxEVPerStat is the per-stat EV ceiling in every generation.
	MaxEVPerStat = 252
	// EVBudget is the legal total-EV budget from generation 3 onward.
	EVBudget = 508
	// MaxIV is the per-stat IV ceiling from generation 3 onward.
	MaxIV = 31
	// MaxLegacyIV is the per-stat IV ceiling in generations 1-2, derived
	// from paired DVs (DV 15 -> IV 30).
	MaxLegacyIV = 30
)

var (
	// ErrEmpty indicates an empty format identifier.
	ErrEmpty = apperrors.New(apperrors.CodeFormatEmpty, "format identifier is empty")
	// ErrInvalidGeneration indicates a genN token outside the supported range.
	ErrInvalidGeneration = apperrors.New(apperrors.CodeFormatInvalidGeneration, "generation out of range")
)

// Format describes a parsed battle format.
type Format struct {
	// ID is the full normalized format identifier, e.g. "gen9ou".
	ID string
	// Gen is the game generation, 1-9.
	Gen int
	// Label is the format name with the generation token stripped, e.g. "ou".
	Label string
}

// Parse extracts the generation from a leading genN token in the format
// identifier. A missing token defaults to DefaultGeneration.
func Parse(id string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(id))
	if normalized == "" {
		return Format{}, ErrEmpty
	}

	f := Format{ID: normalized, Gen: DefaultGeneration, Label: normalized}
	rest, ok := strings.CutPrefix(normalized, "gen")
	if !ok {
		return f, nil
	}

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return f, nil
	}

	gen, err := strconv.Atoi(rest[:digits])
	if err != nil || gen < 1 || gen > DefaultGeneration {
		return Format{}, ErrInvalidGeneration
	}

	f.Gen = gen
	f.Label = rest[digits:]
	return f, nil
}

// Legacy reports whether the format predates the ability/nature/EV era.
func (f Format) Legacy() bool {
	return f.Gen <= 2
}

// HasAbilities reports whether abilities exist in this generation.
func (f Format) HasAbilities() bool {
	return f.Gen >= 3
}

// HasNatures reports whether natures exist in this generation.
func (f Format) HasNatures() bool {
	return f.Gen >= 3
}

// HasItems reports whether held items exist in this generation.
func (f Format) HasItems() bool {
	return f.Gen >= 2
}

// MaxIV returns the per-stat IV ceiling for this generation.
func (f Format) MaxIV() int {
	if f.Legacy() {
		return MaxLegacyIV
	}
	return MaxIV
}

// DefaultIV returns the value an unset IV defaults to in this generation.
func (f Format) DefaultIV() int {
	return f.MaxIV()
}

// DefaultEV returns the value an unset EV defaults to in this generation.
// Legacy stat experience is maximal by default; modern EVs start at zero.
func (f Format) DefaultEV() int {
	if f.Legacy() {
		return MaxEVPerStat
	}
	return 0
}

// TotalEVBudget returns the legal total-EV budget. Legacy generations have no
// shared budget: every stat may hold maximal stat experience.
func (f Format) TotalEVBudget() int {
	if f.Legacy() {
		return 6 * MaxEVPerStat
	}
	return EVBudget
}
