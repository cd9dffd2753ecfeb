// Package session runs the per-battle reconciliation pipeline.
//
// Each session owns one battle's entity set and consumes observations from a
// single queue, so updates apply strictly in arrival order. Sessions are
// fully independent: the dex and format tables are the only shared state,
// and they are read-only.
package session

import (
	"context"
	"log"
	stdsync "sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/doshidak/calcdex/internal/battle/calc"
	"github.com/doshidak/calcdex/internal/battle/canon"
	"github.com/doshidak/calcdex/internal/battle/domain"
	"github.com/doshidak/calcdex/internal/battle/identity"
	"github.com/doshidak/calcdex/internal/battle/spread"
	battlesync "github.com/doshidak/calcdex/internal/battle/sync"
	"github.com/doshidak/calcdex/internal/dex"
	apperrors "github.com/doshidak/calcdex/internal/errors"
	"github.com/doshidak/calcdex/internal/format"
	platformid "github.com/doshidak/calcdex/internal/platform/id"
	"github.com/doshidak/calcdex/internal/preset"
	"github.com/doshidak/calcdex/internal/preset/storage"
)

// ErrClosed indicates an observation was submitted after the session closed.
var ErrClosed = apperrors.New(apperrors.CodeSessionClosed, "session is closed")

const (
	queueDepth     = 64
	subscribeDepth = 16
)

// Observation pairs one public-feed snapshot with its optional authoritative
// counterpart.
type Observation struct {
	Public *domain.PublicObservation `json:"public,omitempty"`
	Server *domain.ServerObservation `json:"server,omitempty"`
}

// Snapshot is the outbound contract: a reconciled entity plus the field
// context it was derived under.
type Snapshot struct {
	Battle string         `json:"battle"`
	Entity *domain.Entity `json:"entity"`
	Field  *domain.Field  `json:"field"`
}

// Session is one battle's serialized reconciliation pipeline.
type Session struct {
	id      string
	format  format.Format
	dex     *dex.Dex
	rec     *battlesync.Reconciler
	presets *storage.Store
	logger  *log.Logger
	tracer  trace.Tracer

	queue chan Observation
	done  chan struct{}
	once  stdsync.Once

	mu       stdsync.Mutex
	entities map[string]*domain.Entity
	order    []string
	field    *domain.Field
	subs     []chan Snapshot
}

// New returns a session for one battle. An empty id gets a generated one;
// the preset store may be nil.
func New(id string, f format.Format, d *dex.Dex, presets *storage.Store, logger *log.Logger) *Session {
	if id == "" {
		id = platformid.NewID()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		id:       id,
		format:   f,
		dex:      d,
		rec:      battlesync.New(f, d, logger),
		presets:  presets,
		logger:   logger,
		tracer:   otel.Tracer("calcdex/session"),
		queue:    make(chan Observation, queueDepth),
		done:     make(chan struct{}),
		entities: make(map[string]*domain.Entity),
		field:    domain.NewField("singles"),
	}
}

// Start launches the pipeline goroutine. It returns once the goroutine is
// running; the goroutine stops when ctx is cancelled or Close is called.
func (s *Session) Start(ctx context.Context) {
	go s.run(ctx)
}

// Submit enqueues an observation for in-order application.
func (s *Session) Submit(ctx context.Context, obs Observation) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.queue <- obs:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe registers a snapshot channel. Slow subscribers drop snapshots
// rather than stalling the pipeline.
func (s *Session) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, subscribeDepth)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Entities returns a deep-copied snapshot of the roster in first-seen order.
func (s *Session) Entities() []*domain.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Entity, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.entities[key].Clone())
	}
	return out
}

// Close stops the pipeline. Pending queued observations are discarded.
func (s *Session) Close() {
	s.once.Do(func() { close(s.done) })
}

// Apply runs one observation through the pipeline synchronously and returns
// the published snapshot, or false when the observation was a no-op or was
// dropped. Replay-style callers use this; live feeds go through Submit.
func (s *Session) Apply(ctx context.Context, obs Observation) (Snapshot, bool) {
	return s.process(ctx, obs)
}

func (s *Session) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case obs := <-s.queue:
			s.process(ctx, obs)
		}
	}
}

func (s *Session) process(ctx context.Context, obs Observation) (Snapshot, bool) {
	ctx, span := s.tracer.Start(ctx, "session.observation")
	defer span.End()

	ident := ""
	switch {
	case obs.Public != nil:
		ident = obs.Public.Ident
	case obs.Server != nil:
		ident = obs.Server.Ident
	default:
		return Snapshot{}, false
	}
	side, name, err := domain.ParseIdent(ident)
	if err != nil {
		s.logger.Printf("session %s: dropping observation with unresolvable ident %q", s.id, ident)
		return Snapshot{}, false
	}
	key := side + ":" + dex.NormalizeID(dex.StripFormeSuffix(name))

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entities[key]
	if !ok {
		e, err = s.create(ctx, obs)
		if err != nil {
			s.logger.Printf("session %s: cannot create entity for %q: %v", s.id, ident, err)
			return Snapshot{}, false
		}
		s.entities[key] = e
		s.order = append(s.order, key)
	}

	next := s.reconcile(ctx, e, obs)
	if next == e && ok {
		// Nonce equality: nothing materially changed, skip propagation.
		return Snapshot{}, false
	}
	e = next
	s.entities[key] = e

	battlesync.RecountRuin(s.roster())
	s.infer(ctx, e)
	s.derive(ctx, e)
	s.resolvePresets(ctx, e)

	if nonce, err := identity.Nonce(e); err == nil {
		e.Nonce = nonce
	}

	snapshot := Snapshot{Battle: s.id, Entity: e.Clone(), Field: s.field}
	s.publish(snapshot)
	return snapshot, true
}

func (s *Session) create(ctx context.Context, obs Observation) (*domain.Entity, error) {
	_, span := s.tracer.Start(ctx, "session.canonicalize")
	defer span.End()

	if obs.Public != nil {
		return canon.FromPublic(s.format, s.dex, *obs.Public)
	}
	return canon.FromServer(s.format, s.dex, *obs.Server)
}

func (s *Session) reconcile(ctx context.Context, e *domain.Entity, obs Observation) *domain.Entity {
	_, span := s.tracer.Start(ctx, "session.reconcile")
	defer span.End()
	return s.rec.Reconcile(e, obs.Public, obs.Server, s.field)
}

// infer recovers the spread from authoritative final stats, leaving the
// generation defaults in place when the search fails.
func (s *Session) infer(ctx context.Context, e *domain.Entity) {
	if len(e.ServerStats) == 0 {
		return
	}
	_, span := s.tracer.Start(ctx, "session.infer")
	defer span.End()

	base, err := s.baseStats(e)
	if err != nil {
		return
	}
	result, err := spread.Infer(s.format, base, e.Level, e.ServerStats, e.StaleHP)
	if err != nil {
		s.logger.Printf("session %s: spread inference for %s: %v", s.id, e.SpeciesForme, err)
		return
	}
	if s.format.HasNatures() {
		e.Nature = result.Nature.Name
	}
	e.IVs = result.IVs
	e.EVs = result.EVs
}

// derive recomputes the modified stat line. Never cached across cycles.
func (s *Session) derive(ctx context.Context, e *domain.Entity) {
	_, span := s.tracer.Start(ctx, "session.derive")
	defer span.End()

	base, err := s.baseStats(e)
	if err != nil {
		return
	}
	line := calc.SpreadStats(s.format, base, e.Level, dex.NatureByName(e.Nature), e.IVs, e.EVs)
	e.SpreadStats = calc.Modified(s.format, e, line)
}

// resolvePresets attaches candidate presets when a dataset is already
// cached. The pipeline never blocks on an external fetch.
func (s *Session) resolvePresets(ctx context.Context, e *domain.Entity) {
	if s.presets == nil {
		return
	}
	available, err := s.presets.Available(ctx, s.format.ID)
	if err != nil || !available {
		return
	}
	_, span := s.tracer.Start(ctx, "session.presets")
	defer span.End()

	candidates, err := s.presets.Get(ctx, s.format.ID, e.SpeciesForme)
	if err != nil {
		return
	}
	e.CandidatePresets = e.CandidatePresets[:0]
	e.AppliedPreset = ""
	for _, p := range candidates {
		if p.ID != "" {
			e.CandidatePresets = append(e.CandidatePresets, p.ID)
		}
		if e.AppliedPreset == "" && preset.Applied(s.format, e, p) {
			e.AppliedPreset = p.ID
		}
	}
}

// baseStats resolves the stat line the derivations run on: the transformed
// forme's base stats when transformed, except HP, which always comes from
// the untransformed line.
func (s *Session) baseStats(e *domain.Entity) (dex.StatTable, error) {
	sp, err := s.dex.Species(e.SpeciesForme)
	if err != nil {
		return dex.StatTable{}, err
	}
	base := sp.BaseStats
	if e.TransformedForme != "" {
		if tsp, err := s.dex.Species(e.TransformedForme); err == nil {
			hp := base.HP
			base = tsp.BaseStats
			base.HP = hp
		}
	}
	return base, nil
}

func (s *Session) roster() []*domain.Entity {
	out := make([]*domain.Entity, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.entities[key])
	}
	return out
}

func (s *Session) publish(snapshot Snapshot) {
	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
			s.logger.Printf("session %s: dropping snapshot for a slow subscriber", s.id)
		}
	}
}
