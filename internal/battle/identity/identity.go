// Package identity derives content-addressed identifiers and change
// fingerprints for entities and presets. Both functions are pure: identical
// inputs always produce identical output, and any mutable-field change moves
// the nonce.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/doshidak/calcdex/internal/battle/domain"
	"github.com/doshidak/calcdex/internal/dex"
)

// EntityID hashes the stable identity subset of an entity: side, species
// forme, level, and gender. It never changes across reconciliation.
func EntityID(side, speciesForme string, level int, gender domain.Gender) string {
	digest := sha256.Sum256([]byte(strings.Join([]string{
		"entity",
		strings.ToLower(side),
		dex.NormalizeID(speciesForme),
		strconv.Itoa(level),
		string(gender),
	}, "\x00")))
	return hex.EncodeToString(digest[:16])
}

// Nonce hashes the full mutable field set of an entity. Two entities with an
// equal nonce carry no material difference and must not trigger a state
// replacement. The identity fields the hash was derived alongside (ID, Nonce)
// are excluded.
func Nonce(e *domain.Entity) (string, error) {
	if e == nil {
		return "", fmt.Errorf("entity is required")
	}

	shadow := e.Clone()
	shadow.ID = ""
	shadow.Nonce = ""

	// encoding/json sorts map keys and walks struct fields in declaration
	// order, so the encoding is deterministic.
	payload, err := json.Marshal(shadow)
	if err != nil {
		return "", fmt.Errorf("encode entity for nonce: %w", err)
	}

	digest := sha256.Sum256(payload)
	return hex.EncodeToString(digest[:]), nil
}

// PresetID hashes a preset's content. The hash excludes the ID field itself,
// so reconstructing an identical preset reproduces the identifier.
func PresetID(p domain.Preset) (string, error) {
	p.ID = ""
	payload, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode preset for id: %w", err)
	}
	digest := sha256.Sum256(payload)
	return hex.EncodeToString(digest[:16]), nil
}
