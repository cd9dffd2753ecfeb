// Package domain defines the canonical battle entity record and the shared
// vocabulary the reconciliation pipeline operates on.
package domain

import (
	"fmt"

	"github.com/doshidak/calcdex/internal/dex"
	apperrors "github.com/doshidak/calcdex/internal/errors"
	"github.com/doshidak/calcdex/internal/format"
)

// Source records which feed created an entity.
type Source string

const (
	// SourcePublic marks entities first seen on the public feed.
	SourcePublic Source = "public"
	// SourceServer marks entities first seen on the authoritative feed.
	SourceServer Source = "server"
	// SourceUser marks entities created by explicit user action.
	SourceUser Source = "user"
)

// Gender is the entity's reported gender, if any.
type Gender string

const (
	GenderMale       Gender = "M"
	GenderFemale     Gender = "F"
	GenderGenderless Gender = "N"
)

// Status is a non-volatile status condition.
type Status string

const (
	StatusNone      Status = ""
	StatusBurn      Status = "brn"
	StatusParalysis Status = "par"
	StatusPoison    Status = "psn"
	StatusToxic     Status = "tox"
	StatusSleep     Status = "slp"
	StatusFreeze    Status = "frz"
)

// Volatile is one volatile effect on an entity. Transform stores the copied
// entity's forme name in Args rather than a reference to the live entity.
type Volatile struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
}

// MoveOverride carries per-move manual property overrides.
type MoveOverride struct {
	Type      string           `json:"type,omitempty"`
	Category  dex.MoveCategory `json:"category,omitempty"`
	BasePower int              `json:"basePower,omitempty"`
}

// Entity is the reconciled in-battle representation of one creature.
//
// Fields prefixed Dirty are user-entered manual overrides: they take
// precedence over their revealed counterpart until invalidated. A nil dirty
// pointer means "defer to the revealed value"; for DirtyItem an empty string
// means "confirmed no item".
type Entity struct {
	ID    string `json:"id"`
	Nonce string `json:"-"`

	Source Source `json:"source"`
	Side   string `json:"side"`

	SpeciesForme     string   `json:"speciesForme"`
	TransformedForme string   `json:"transformedForme,omitempty"`
	CosmeticForme    string   `json:"cosmeticForme,omitempty"`
	AltFormes        []string `json:"altFormes,omitempty"`

	Level  int    `json:"level"`
	Gender Gender `json:"gender,omitempty"`

	Types      []string `json:"types"`
	DirtyTypes []string `json:"dirtyTypes,omitempty"`

	TeraType      string `json:"teraType,omitempty"`
	Terastallized bool   `json:"terastallized,omitempty"`

	Ability        string   `json:"ability,omitempty"`
	DirtyAbility   *string  `json:"dirtyAbility,omitempty"`
	AbilityToggled bool     `json:"abilityToggled,omitempty"`
	Abilities      []string `json:"abilities,omitempty"`

	Item      string  `json:"item,omitempty"`
	PrevItem  string  `json:"prevItem,omitempty"`
	DirtyItem *string `json:"dirtyItem,omitempty"`

	Nature string        `json:"nature,omitempty"`
	IVs    dex.StatTable `json:"ivs"`
	EVs    dex.StatTable `json:"evs"`

	Boosts      map[dex.Stat]int `json:"boosts,omitempty"`
	DirtyBoosts map[dex.Stat]int `json:"dirtyBoosts,omitempty"`

	HP      int  `json:"hp"`
	MaxHP   int  `json:"maxHp"`
	StaleHP bool `json:"staleHp,omitempty"`

	Status      Status  `json:"status,omitempty"`
	DirtyStatus *Status `json:"dirtyStatus,omitempty"`

	Moves            []string                `json:"moves,omitempty"`
	RevealedMoves    []string                `json:"revealedMoves,omitempty"`
	ServerMoves      []string                `json:"serverMoves,omitempty"`
	TransformedMoves []string                `json:"transformedMoves,omitempty"`
	MoveOverrides    map[string]MoveOverride `json:"moveOverrides,omitempty"`

	Volatiles map[string]Volatile `json:"volatiles,omitempty"`

	AppliedPreset    string   `json:"appliedPreset,omitempty"`
	CandidatePresets []string `json:"candidatePresets,omitempty"`
	ShowGenetics     bool     `json:"showGenetics,omitempty"`

	ServerStats map[dex.Stat]int `json:"serverStats,omitempty"`
	SpreadStats dex.StatTable    `json:"spreadStats"`

	Active   bool `json:"active,omitempty"`
	Selected bool `json:"selected,omitempty"`
}

// EffectiveAbility resolves the activation-relevant ability: the manual
// override when present, otherwise the revealed ability. When both are empty
// ability effects are inert.
func (e *Entity) EffectiveAbility() string {
	return Effective(e.DirtyAbility, e.Ability)
}

// EffectiveItem resolves the held item, honoring a "confirmed no item"
// override (empty, not unset).
func (e *Entity) EffectiveItem() string {
	return Effective(e.DirtyItem, e.Item)
}

// EffectiveStatus resolves the status condition.
func (e *Entity) EffectiveStatus() Status {
	return Effective(e.DirtyStatus, e.Status)
}

// EffectiveBoost resolves the boost stage for one stat, preferring the
// manual per-stat override.
func (e *Entity) EffectiveBoost(s dex.Stat) int {
	if v, ok := e.DirtyBoosts[s]; ok {
		return v
	}
	return e.Boosts[s]
}

// EffectiveTypes resolves the type set, preferring the manual override.
func (e *Entity) EffectiveTypes() []string {
	if len(e.DirtyTypes) > 0 {
		return e.DirtyTypes
	}
	return e.Types
}

// Fainted reports whether the entity is at zero HP.
func (e *Entity) Fainted() bool {
	return e.HP <= 0
}

// HasVolatile reports whether the named volatile effect is present.
func (e *Entity) HasVolatile(name string) bool {
	_, ok := e.Volatiles[name]
	return ok
}

// Clone returns a deep copy of the entity.
func (e *Entity) Clone() *Entity {
	clone := *e
	clone.AltFormes = cloneSlice(e.AltFormes)
	clone.Types = cloneSlice(e.Types)
	clone.DirtyTypes = cloneSlice(e.DirtyTypes)
	clone.Abilities = cloneSlice(e.Abilities)
	clone.Moves = cloneSlice(e.Moves)
	clone.RevealedMoves = cloneSlice(e.RevealedMoves)
	clone.ServerMoves = cloneSlice(e.ServerMoves)
	clone.TransformedMoves = cloneSlice(e.TransformedMoves)
	clone.CandidatePresets = cloneSlice(e.CandidatePresets)
	clone.DirtyAbility = clonePtr(e.DirtyAbility)
	clone.DirtyItem = clonePtr(e.DirtyItem)
	clone.DirtyStatus = clonePtr(e.DirtyStatus)
	clone.Boosts = cloneMap(e.Boosts)
	clone.DirtyBoosts = cloneMap(e.DirtyBoosts)
	clone.ServerStats = cloneMap(e.ServerStats)
	if e.MoveOverrides != nil {
		clone.MoveOverrides = make(map[string]MoveOverride, len(e.MoveOverrides))
		for k, v := range e.MoveOverrides {
			clone.MoveOverrides[k] = v
		}
	}
	if e.Volatiles != nil {
		clone.Volatiles = make(map[string]Volatile, len(e.Volatiles))
		for k, v := range e.Volatiles {
			v.Args = cloneSlice(v.Args)
			clone.Volatiles[k] = v
		}
	}
	return &clone
}

func cloneSlice(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MaxBoostStage bounds boost stages in either direction.
const MaxBoostStage = 6

// ClampBoost bounds a boost stage to the legal ±6 range.
func ClampBoost(stage int) int {
	return max(-MaxBoostStage, min(MaxBoostStage, stage))
}

// ClampIV bounds an IV to the generation's legal range.
func ClampIV(iv int, f format.Format) int {
	return max(0, min(f.MaxIV(), iv))
}

// ValidateEVs checks the total-EV budget for the format.
func ValidateEVs(evs dex.StatTable, f format.Format) error {
	for _, s := range dex.Stats {
		if v := evs.Get(s); v < 0 || v > format.MaxEVPerStat {
			return apperrors.New(apperrors.CodeEntityInvalidIV, fmt.Sprintf("ev %d out of range for %s", v, s))
		}
	}
	if sum := evs.Sum(false); sum > f.TotalEVBudget() {
		return apperrors.New(apperrors.CodeEntityEVBudgetExceed,
			fmt.Sprintf("ev total %d exceeds budget %d", sum, f.TotalEVBudget()))
	}
	return nil
}

// ValidateLevel checks the level range.
func ValidateLevel(level int) error {
	if level < 1 || level > 100 {
		return apperrors.New(apperrors.CodeEntityInvalidLevel, fmt.Sprintf("level %d out of range", level))
	}
	return nil
}
