// internal/store/memory.go
//
// In-memory registry of live game tables.
// Game state is never persisted; this is the only place sessions live and it
// is lost when the process restarts.
//
// Characteristics:
//   - Stores *play.Table objects keyed by session ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Sweep closes and removes tables idle for longer than a TTL.
//   - Errors are returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocabdrop/internal/play"
)

// ErrNotFound is returned by Get and Delete for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the registry interface for live sessions.
type Store interface {
	// Save registers or replaces a table under its ID.
	Save(ctx context.Context, t *play.Table) error

	// Get retrieves a table by session ID.
	Get(ctx context.Context, id string) (*play.Table, error)

	// Delete closes and removes a table.
	Delete(ctx context.Context, id string) error

	// Sweep closes and removes tables idle longer than ttl, returning how many.
	Sweep(ctx context.Context, ttl time.Duration) int

	// Len reports the number of live tables.
	Len() int

	// Close closes every table.
	Close()
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex           // guards tables map
	tables map[string]*play.Table // keyed by Table.ID()
	now    func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{tables: make(map[string]*play.Table), now: time.Now}
}

func (m *memory) Save(ctx context.Context, t *play.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.tables[t.ID()]; ok && old != t {
		old.Close()
	}
	m.tables[t.ID()] = t
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*play.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.tables[id]; ok {
		return t, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	t, ok := m.tables[id]
	delete(m.tables, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	t.Close()
	return nil
}

func (m *memory) Sweep(ctx context.Context, ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)
	var stale []*play.Table

	m.mu.Lock()
	for id, t := range m.tables {
		if t.LastActive().Before(cutoff) {
			stale = append(stale, t)
			delete(m.tables, id)
		}
	}
	m.mu.Unlock()

	for _, t := range stale {
		t.Close()
		log.Info().Str("session", t.ID()).Msg("idle session cleaned up")
	}
	return len(stale)
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables)
}

func (m *memory) Close() {
	m.mu.Lock()
	tables := m.tables
	m.tables = make(map[string]*play.Table)
	m.mu.Unlock()
	for _, t := range tables {
		t.Close()
	}
}

// RunJanitor sweeps st every interval until ctx is cancelled.
func RunJanitor(ctx context.Context, st Store, every, ttl time.Duration) {
	if every <= 0 || ttl <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(ctx, ttl); n > 0 {
				log.Info().Int("removed", n).Int("live", st.Len()).Msg("session sweep")
			}
		}
	}
}
