// internal/play/table.go
//
// Table hosts one game session for a presentation client.
// Responsibilities:
//   - Own the *game.Session and its *game.DropResolver (no global game controller).
//   - Serialise every inbound event through one mutex: drops, restarts, timer
//     ticks and the scheduled round advance all run one at a time.
//   - Publish listener callbacks to subscribers through a Hub.
//   - Drive the on-screen timer with a ticker that never mutates state.
//
// Notes:
//   - The round advance is a time.AfterFunc task. It takes the table lock
//     before touching the session, and the session itself drops tasks from a
//     superseded generation, so a restart never waits for it.
//   - Close stops the ticker and turns pending tasks into no-ops.

package play

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/vocabdrop/internal/game"
	"github.com/robalobadob/vocabdrop/internal/vocab"
)

// Options tune a Table. Zero values fall back to defaults.
type Options struct {
	Seed         *uint64       // fixed seed for reproducible sessions
	TickInterval time.Duration // 0 disables timer ticks
	Zones        []game.ZoneID
	Clock        game.Clock
	Logger       *zerolog.Logger
}

// Table is a concurrency-safe wrapper around one session.
type Table struct {
	id        string
	createdAt time.Time

	mu         sync.Mutex
	session    *game.Session
	resolver   *game.DropResolver
	hub        *Hub
	log        zerolog.Logger
	seed       uint64
	lastActive time.Time
	closed     bool
	timers     map[*time.Timer]struct{}

	done chan struct{}
}

// NewTable validates settings against cat and builds a table in not_started.
func NewTable(id string, cat *vocab.Catalog, settings game.Settings, opts Options) (*Table, error) {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	logger = logger.With().Str("session", id).Logger()

	clock := opts.Clock
	if clock == nil {
		clock = game.SystemClock()
	}
	seed := rand.Uint64()
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	t := &Table{
		id:         id,
		createdAt:  time.Now(),
		hub:        NewHub(id, logger),
		log:        logger,
		seed:       seed,
		lastActive: time.Now(),
		timers:     make(map[*time.Timer]struct{}),
		done:       make(chan struct{}),
	}
	s, err := game.NewSession(cat, settings,
		game.WithListener(t.hub),
		game.WithClock(clock),
		game.WithScheduler(t),
		game.WithRandom(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))),
		game.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	t.session = s
	t.resolver = game.NewDropResolver(s, opts.Zones...)

	if opts.TickInterval > 0 {
		go t.tickLoop(opts.TickInterval)
	}
	return t, nil
}

// ID returns the session identifier.
func (t *Table) ID() string { return t.id }

// Seed returns the seed driving target and distractor selection.
func (t *Table) Seed() uint64 { return t.seed }

// CreatedAt returns when the table was created.
func (t *Table) CreatedAt() time.Time { return t.createdAt }

// LastActive returns the time of the last inbound event.
func (t *Table) LastActive() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastActive
}

// Start begins the session. Restart is the same call from a terminal panel.
func (t *Table) Start() game.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return t.session.Snapshot()
	}
	t.touch()
	t.session.Start()
	t.log.Info().Msg("session started")
	return t.session.Snapshot()
}

// Restart reinitialises the session without waiting for a pending round advance.
func (t *Table) Restart() game.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return t.session.Snapshot()
	}
	t.touch()
	t.session.Restart()
	t.log.Info().Msg("session restarted")
	return t.session.Snapshot()
}

// Drop resolves a reported drag-and-drop event.
func (t *Table) Drop(item game.ItemID, zone game.ZoneID) (game.Outcome, game.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return game.OutcomeIgnored, t.session.Snapshot()
	}
	t.touch()
	out := t.resolver.Resolve(game.Drop{Item: item, Zone: zone})
	return out, t.session.Snapshot()
}

// Snapshot returns the current view of the session.
func (t *Table) Snapshot() game.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.Snapshot()
}

// Attach subscribes to updates and returns the snapshot they follow from.
func (t *Table) Attach() (game.Snapshot, <-chan Message, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch, cancel := t.hub.Subscribe()
	return t.session.Snapshot(), ch, cancel
}

// Close stops the ticker, disarms pending tasks and disconnects subscribers.
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	close(t.done)
	for tm := range t.timers {
		tm.Stop()
	}
	clear(t.timers)
	t.hub.CloseAll()
	t.log.Info().Msg("session closed")
}

// AfterFunc implements game.Scheduler. Called with t.mu held.
func (t *Table) AfterFunc(d time.Duration, f func()) {
	var tm *time.Timer
	tm = time.AfterFunc(d, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.timers, tm)
		if t.closed {
			return
		}
		f()
	})
	t.timers[tm] = struct{}{}
}

func (t *Table) tickLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.mu.Lock()
			if !t.closed {
				t.session.Tick()
			}
			t.mu.Unlock()
		}
	}
}

func (t *Table) touch() { t.lastActive = time.Now() }
