// internal/game/session.go
//
// Session state machine for one play-through.
//
// Lifecycle:
//   not_started → in_round → resolving → in_round | won
//                     └──────────────→ lost
//   won/lost are terminal until Start (restart) reinitialises everything.
//
// Notes:
//   - A Session is not safe for concurrent use. Every call, including the
//     scheduled round advance, must arrive on one serialised event stream
//     (see play.Table).
//   - Each Start bumps a generation token. A round advance scheduled under an
//     older generation is a no-op when it fires.

package game

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/vocabdrop/internal/vocab"
)

// Session holds the mutable state of one game session.
type Session struct {
	settings Settings
	catalog  *vocab.Catalog
	selector roundPicker
	listener Listener
	clock    Clock
	sched    Scheduler
	newID    func() ItemID
	log      zerolog.Logger

	state      State
	generation uint64
	round      int
	score      int
	mistakes   int
	used       UsedSet
	target     int // catalog position, -1 when no round is active
	items      []RoundItem
	byID       map[ItemID]int
	roundStart time.Time
}

// roundPicker is the selection surface a Session draws rounds from. *Selector implements it.
type roundPicker interface {
	SelectTarget(cat *vocab.Catalog, used UsedSet) (int, error)
	BuildRoundItems(cat *vocab.Catalog, target, itemsPerRound int) []int
}

// Option customises a Session at construction.
type Option func(*Session)

func WithListener(l Listener) Option { return func(s *Session) { s.listener = l } }
func WithClock(c Clock) Option { return func(s *Session) { s.clock = c } }
func WithScheduler(sc Scheduler) Option { return func(s *Session) { s.sched = sc } }
func WithLogger(l zerolog.Logger) Option { return func(s *Session) { s.log = l } }

// WithRandom sets the source used for target and distractor selection.
func WithRandom(r RandomSource) Option {
	return func(s *Session) { s.selector = NewSelector(r) }
}

// WithItemIDs overrides the round item identifier generator.
func WithItemIDs(f func() ItemID) Option { return func(s *Session) { s.newID = f } }

// NewSession validates settings against the catalog and returns a session in
// StateNotStarted. Configuration problems return a *ConfigError.
//
// WithScheduler is required: the round advance has to come back on the
// caller's event stream, and only the caller knows what that stream is.
func NewSession(cat *vocab.Catalog, settings Settings, opts ...Option) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	size := 0
	if cat != nil {
		size = cat.Len()
	}
	if err := settings.CheckCatalog(size); err != nil {
		return nil, err
	}

	s := &Session{
		settings: settings,
		catalog:  cat,
		selector: NewSelector(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))),
		listener: NopListener{},
		clock:    SystemClock(),
		newID:    newItemID,
		log:      zerolog.Nop(),
		state:    StateNotStarted,
		used:     make(UsedSet, size),
		target:   -1,
	}
	for _, o := range opts {
		o(s)
	}
	if s.sched == nil {
		return nil, &ConfigError{Field: "Scheduler", Reason: "required", Err: ErrNoScheduler}
	}
	return s, nil
}

// Start begins a fresh play-through, discarding any previous progress.
func (s *Session) Start() {
	s.generation++
	s.round, s.score, s.mistakes = 0, 0, 0
	clear(s.used)
	s.clearRound()
	s.state = StateInRound

	s.listener.ScoreChanged(s.score)
	s.listener.MistakesChanged(s.mistakes, s.settings.MaxMistakes)
	s.startRound()
}

// Restart is Start requested from outside, typically from a terminal panel.
// It never waits for a pending round advance.
func (s *Session) Restart() {
	s.log.Debug().Str("from", string(s.state)).Uint64("generation", s.generation).Msg("session restart")
	s.Start()
}

// Tick publishes the elapsed reaction time of the active round. It never mutates state.
func (s *Session) Tick() {
	if s.state != StateInRound && s.state != StateResolving {
		return
	}
	s.listener.TimerTick(s.clock.Now().Sub(s.roundStart))
}

func (s *Session) startRound() {
	if s.round >= s.settings.RoundsToWin {
		s.clearRound()
		s.state = StateWon
		s.log.Debug().Int("score", s.score).Msg("session won")
		s.listener.Won(s.score)
		return
	}

	s.clearRound()
	s.round++
	s.listener.RoundChanged(s.round, s.settings.RoundsToWin)

	target, err := s.selector.SelectTarget(s.catalog, s.used)
	invariant(err == nil, "select target: %v", err)
	s.used[target] = struct{}{}
	s.target = target
	s.listener.WordChanged(s.catalog.At(target).Word)

	positions := s.selector.BuildRoundItems(s.catalog, target, s.settings.ItemsPerRound)
	s.items = make([]RoundItem, 0, len(positions))
	s.byID = make(map[ItemID]int, len(positions))
	targets := 0
	for _, p := range positions {
		it := RoundItem{
			ID:       s.newID(),
			Entry:    s.catalog.At(p),
			Position: p,
			IsTarget: p == target,
		}
		if it.IsTarget {
			targets++
		}
		_, dup := s.byID[it.ID]
		invariant(!dup, "duplicate item id %q", it.ID)
		s.byID[it.ID] = len(s.items)
		s.items = append(s.items, it)
	}
	invariant(targets == 1, "round %d has %d targets", s.round, targets)

	s.listener.ItemsSpawned(s.views())
	s.roundStart = s.clock.Now()
	s.state = StateInRound
}

// recordHit scores the active round by reaction time and schedules the advance.
func (s *Session) recordHit() {
	elapsed := s.clock.Now().Sub(s.roundStart)
	gained := s.settings.ScoreFor(elapsed)
	s.score += gained
	s.listener.ScoreChanged(s.score)
	s.state = StateResolving

	s.log.Debug().Int("round", s.round).Dur("elapsed", elapsed).Int("gained", gained).Msg("hit")

	gen := s.generation
	s.sched.AfterFunc(s.settings.NextRoundDelay, func() { s.advance(gen) })
}

// recordMiss counts a mistake and ends the session once the bound is exceeded.
func (s *Session) recordMiss() {
	s.mistakes++
	s.listener.MistakesChanged(s.mistakes, s.settings.MaxMistakes)
	if s.mistakes > s.settings.MaxMistakes {
		s.clearRound()
		s.state = StateLost
		s.log.Debug().Int("score", s.score).Int("mistakes", s.mistakes).Msg("session lost")
		s.listener.GameOver(s.score)
	}
}

func (s *Session) advance(gen uint64) {
	if gen != s.generation || s.state != StateResolving {
		s.log.Debug().Uint64("scheduled", gen).Uint64("current", s.generation).Msg("stale round advance dropped")
		return
	}
	s.startRound()
}

func (s *Session) clearRound() {
	s.items = nil
	s.byID = nil
	s.target = -1
}

func (s *Session) views() []ItemView {
	out := make([]ItemView, len(s.items))
	for i, it := range s.items {
		out[i] = it.view()
	}
	return out
}

// Snapshot returns a copy of everything the presentation layer renders.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:       s.state,
		Round:       s.round,
		TotalRounds: s.settings.RoundsToWin,
		Score:       s.score,
		Mistakes:    s.mistakes,
		MaxMistakes: s.settings.MaxMistakes,
		Items:       s.views(),
	}
	if s.target >= 0 {
		snap.Word = s.catalog.At(s.target).Word
		snap.ElapsedMs = s.clock.Now().Sub(s.roundStart).Milliseconds()
	}
	return snap
}

func (s *Session) State() State { return s.state }
func (s *Session) Score() int { return s.score }
func (s *Session) Mistakes() int { return s.mistakes }
func (s *Session) Round() int { return s.round }
func (s *Session) Generation() uint64 { return s.generation }
func (s *Session) Settings() Settings { return s.settings }
func (s *Session) UsedTargets() int { return len(s.used) }
func (s *Session) Catalog() *vocab.Catalog { return s.catalog }

// Target returns the current target entry, if a round is active.
func (s *Session) Target() (vocab.Entry, bool) {
	if s.target < 0 {
		return vocab.Entry{}, false
	}
	return s.catalog.At(s.target), true
}

// Items returns a copy of the current round items, target flag included.
func (s *Session) Items() []RoundItem {
	out := make([]RoundItem, len(s.items))
	copy(out, s.items)
	return out
}
