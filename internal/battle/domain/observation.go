package domain

import (
	"strings"

	"github.com/doshidak/calcdex/internal/dex"
	apperrors "github.com/doshidak/calcdex/internal/errors"
)

// ErrMalformedIdent indicates an observation without a resolvable
// side+species identifier. Such observations are dropped whole.
var ErrMalformedIdent = apperrors.New(apperrors.CodeObservationMalformedIdentity, "unresolvable observation identifier")

// PublicObservation is a per-turn partial snapshot from the public feed.
// Every field except Ident is optional; absent fields leave the entity
// untouched.
type PublicObservation struct {
	// Ident is the side:species identifier string, e.g. "p2a: Garchomp".
	Ident string `json:"ident"`

	SpeciesForme string `json:"speciesForme,omitempty"`
	Level        int    `json:"level,omitempty"`
	Gender       Gender `json:"gender,omitempty"`

	HP     *int    `json:"hp,omitempty"`
	MaxHP  *int    `json:"maxHp,omitempty"`
	Status *Status `json:"status,omitempty"`

	// Ability may carry a parenthesized placeholder like "(other)" for
	// effects that proc without revealing the real ability.
	Ability string `json:"ability,omitempty"`

	// Item may carry an unrevealed placeholder; ItemRemoved signals the
	// prior item was knocked off or consumed.
	Item        string `json:"item,omitempty"`
	ItemRemoved bool   `json:"itemRemoved,omitempty"`

	Boosts map[dex.Stat]int `json:"boosts,omitempty"`

	// Moves are this turn's move-track entries. Transform-inherited moves
	// carry a trailing "*" tag.
	Moves []string `json:"moves,omitempty"`

	Volatiles map[string][]string `json:"volatiles,omitempty"`

	// TeraType is the reported Tera type when the entity terastallized.
	TeraType string `json:"teraType,omitempty"`

	Active *bool `json:"active,omitempty"`
}

// ServerObservation is the exact per-entity data from the authoritative
// feed, available only for the locally controlled side.
type ServerObservation struct {
	Ident string `json:"ident"`

	Stats   map[dex.Stat]int `json:"stats,omitempty"`
	Moves   []string         `json:"moves,omitempty"`
	Ability string           `json:"ability,omitempty"`
	Item    string           `json:"item,omitempty"`
}

// ParseIdent splits a side:species identifier into its side and species
// name. The optional position letter after the side ("p2a") is dropped.
func ParseIdent(ident string) (side, name string, err error) {
	raw := strings.TrimSpace(ident)
	head, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return "", "", ErrMalformedIdent
	}

	side = strings.TrimSpace(head)
	if len(side) > 2 && (side[0] == 'p' || side[0] == 'P') {
		side = side[:2]
	}
	side = strings.ToLower(side)
	name = strings.TrimSpace(rest)

	if len(side) < 2 || side[0] != 'p' || name == "" {
		return "", "", ErrMalformedIdent
	}
	return side, name, nil
}
