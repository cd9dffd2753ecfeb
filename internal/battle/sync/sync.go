// Package sync merges per-turn feed observations into canonical entities.
//
// The reconciler never fails a session: malformed observations are dropped
// with the prior entity returned unchanged, and malformed optional fields
// are silently ignored. Callers detect a no-op by nonce equality (the same
// entity pointer is returned).
package sync

import (
	"log"
	"strings"

	"github.com/doshidak/calcdex/internal/battle/canon"
	"github.com/doshidak/calcdex/internal/battle/domain"
	"github.com/doshidak/calcdex/internal/dex"
	"github.com/doshidak/calcdex/internal/format"
)

const maxMoveSlots = 4

// Volatile names with reconciliation-relevant structure.
const (
	volatileTransform  = "transform"
	volatileTypeChange = "typechange"
)

// Reconciler merges observations into entities for one battle format.
type Reconciler struct {
	format format.Format
	dex    *dex.Dex
	logger *log.Logger
}

// New returns a reconciler. A nil logger falls back to the default logger.
func New(f format.Format, d *dex.Dex, logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = log.Default()
	}
	return &Reconciler{format: f, dex: d, logger: logger}
}

// Reconcile merges a public-feed observation and an optional authoritative
// observation into the existing entity. The returned entity is a new record,
// or the existing one unchanged when nothing materially changed or the
// observation was dropped.
func (r *Reconciler) Reconcile(existing *domain.Entity, pub *domain.PublicObservation, srv *domain.ServerObservation, field *domain.Field) *domain.Entity {
	if existing == nil {
		return nil
	}

	next := existing.Clone()

	if pub != nil {
		side, _, err := domain.ParseIdent(pub.Ident)
		if err != nil || side != existing.Side {
			r.logger.Printf("sync: dropping observation with unresolvable ident %q for %s", pub.Ident, existing.ID)
			return existing
		}
		r.mergePublic(next, pub, field)
	}

	if srv != nil {
		if _, _, err := domain.ParseIdent(srv.Ident); err != nil {
			r.logger.Printf("sync: ignoring authoritative observation with unresolvable ident %q", srv.Ident)
		} else {
			r.mergeServer(next, srv)
		}
	}

	// A fainted entity cannot carry a status condition, whatever the feed
	// said this turn.
	if next.HP <= 0 {
		next.Status = domain.StatusNone
		next.DirtyStatus = nil
	}

	canonical, err := canon.Canonicalize(r.format, r.dex, next)
	if err != nil {
		r.logger.Printf("sync: no canonical update for %s: %v", existing.ID, err)
		return existing
	}
	if canonical.Nonce == existing.Nonce {
		return existing
	}
	return canonical
}

func (r *Reconciler) mergePublic(e *domain.Entity, obs *domain.PublicObservation, field *domain.Field) {
	if obs.SpeciesForme != "" {
		incoming := dex.StripFormeSuffix(obs.SpeciesForme)
		current := dex.StripFormeSuffix(e.SpeciesForme)
		if dex.NormalizeID(incoming) != dex.NormalizeID(current) {
			e.SpeciesForme = incoming
			e.CosmeticForme = ""
		}
	}
	if obs.Level > 0 {
		e.Level = obs.Level
	}
	if obs.Gender != "" {
		e.Gender = obs.Gender
	}

	if obs.MaxHP != nil {
		e.MaxHP = *obs.MaxHP
	}
	if obs.HP != nil {
		e.HP = *obs.HP
	}
	if obs.HP != nil || obs.MaxHP != nil {
		// A reported 100 maxHP at 0 HP is the stale zero-HP quirk: the
		// feed fell back to percentage scale, so the value must not feed
		// spread inference.
		e.StaleHP = e.HP == 0 && e.MaxHP == 100
	}

	if obs.Status != nil {
		e.Status = *obs.Status
	}

	// Parenthesized values like "(other)" are placeholders for effects
	// that proc without revealing the real ability.
	if a := strings.TrimSpace(obs.Ability); a != "" && !strings.HasPrefix(a, "(") {
		e.Ability = a
		e.DirtyAbility = nil
	}

	if obs.ItemRemoved {
		if e.Item != "" {
			e.PrevItem = e.Item
		}
		e.Item = ""
		e.DirtyItem = nil
	} else if it := strings.TrimSpace(obs.Item); it != "" && !strings.HasPrefix(it, "(") {
		e.Item = it
		e.DirtyItem = nil
	}

	for s, stage := range obs.Boosts {
		if e.Boosts == nil {
			e.Boosts = make(map[dex.Stat]int, len(obs.Boosts))
		}
		stage = domain.ClampBoost(stage)
		if s == dex.Spc {
			e.Boosts[dex.SpA] = stage
			e.Boosts[dex.SpD] = stage
			continue
		}
		e.Boosts[s] = stage
	}

	for _, raw := range obs.Moves {
		name, transformed := strings.CutSuffix(strings.TrimSpace(raw), "*")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if transformed {
			appendUnique(&e.TransformedMoves, name)
			continue
		}
		appendUnique(&e.RevealedMoves, name)
		r.mergeMove(e, name)
	}

	if obs.Volatiles != nil {
		r.mergeVolatiles(e, obs.Volatiles)
	}

	if obs.TeraType != "" {
		e.TeraType = obs.TeraType
	}
	if tc, ok := e.Volatiles[volatileTypeChange]; ok {
		e.Terastallized = len(tc.Args) == 1 && e.TeraType != "" && tc.Args[0] == e.TeraType
	} else {
		e.Terastallized = false
	}

	if obs.Active != nil {
		e.Active = *obs.Active
		if field != nil {
			setActive(field.Side(e.Side), e.ID, e.Active)
		}
	}
}

// mergeVolatiles replaces the volatile set wholesale each cycle. The
// transform volatile embeds another entity on the wire; only its forme name
// is kept, never a reference.
func (r *Reconciler) mergeVolatiles(e *domain.Entity, raw map[string][]string) {
	vols := make(map[string]domain.Volatile, len(raw))
	for name, args := range raw {
		vols[name] = domain.Volatile{Name: name, Args: append([]string(nil), args...)}
	}
	e.Volatiles = vols

	if tr, ok := vols[volatileTransform]; ok && len(tr.Args) > 0 {
		e.TransformedForme = tr.Args[0]
	} else if e.TransformedForme != "" {
		e.TransformedForme = ""
		e.TransformedMoves = nil
	}
}

func (r *Reconciler) mergeServer(e *domain.Entity, obs *domain.ServerObservation) {
	if len(obs.Stats) > 0 {
		e.ServerStats = make(map[dex.Stat]int, len(obs.Stats))
		for s, v := range obs.Stats {
			if s == dex.Spc {
				e.ServerStats[dex.SpA] = v
				e.ServerStats[dex.SpD] = v
				continue
			}
			e.ServerStats[s] = v
		}
		if hp, ok := e.ServerStats[dex.HP]; ok {
			e.MaxHP = hp
			e.StaleHP = false
		}
	}
	if len(obs.Moves) > 0 {
		e.ServerMoves = append([]string(nil), obs.Moves...)
		e.Moves = append([]string(nil), obs.Moves...)
	}
	if obs.Ability != "" {
		e.Ability = obs.Ability
		e.DirtyAbility = nil
	}
	if obs.Item != "" {
		e.Item = obs.Item
		e.DirtyItem = nil
	}
}

// mergeMove folds a newly revealed move into the active move list without
// discarding the user's manual choices wholesale. With a free slot the move
// is appended; otherwise the replacement slot follows a fixed priority
// chain: a status-move slot, then a same-type damaging non-pivot slot, then
// an off-type slot, then the first slot.
func (r *Reconciler) mergeMove(e *domain.Entity, name string) {
	for _, m := range e.Moves {
		if dex.NormalizeID(m) == dex.NormalizeID(name) {
			return
		}
	}
	if len(e.Moves) < maxMoveSlots {
		e.Moves = append(e.Moves, name)
		return
	}
	e.Moves[r.mergeSlot(e)] = name
}

func (r *Reconciler) mergeSlot(e *domain.Entity) int {
	types := e.EffectiveTypes()
	statusSlot, sameTypeSlot, offTypeSlot := -1, -1, -1

	for i, name := range e.Moves {
		m, err := r.dex.Move(name)
		if err != nil {
			if offTypeSlot < 0 {
				offTypeSlot = i
			}
			continue
		}
		switch {
		case !m.Damaging() && !m.Pivot:
			if statusSlot < 0 {
				statusSlot = i
			}
		case m.Damaging() && !m.Pivot && hasType(types, m.Type):
			if sameTypeSlot < 0 {
				sameTypeSlot = i
			}
		case !hasType(types, m.Type):
			if offTypeSlot < 0 {
				offTypeSlot = i
			}
		}
	}

	for _, slot := range []int{statusSlot, sameTypeSlot, offTypeSlot} {
		if slot >= 0 {
			return slot
		}
	}
	return 0
}

func hasType(types []string, t string) bool {
	for _, have := range types {
		if dex.NormalizeID(have) == dex.NormalizeID(t) {
			return true
		}
	}
	return false
}

func appendUnique(list *[]string, name string) {
	for _, have := range *list {
		if dex.NormalizeID(have) == dex.NormalizeID(name) {
			return
		}
	}
	*list = append(*list, name)
}

func setActive(side *domain.Side, id string, active bool) {
	for i, have := range side.ActiveIDs {
		if have == id {
			if !active {
				side.ActiveIDs = append(side.ActiveIDs[:i], side.ActiveIDs[i+1:]...)
			}
			return
		}
	}
	if active {
		side.ActiveIDs = append(side.ActiveIDs, id)
	}
}
