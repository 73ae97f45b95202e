package game

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/robalobadob/vocabdrop/internal/vocab"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// manualScheduler queues tasks until the test runs them.
type manualScheduler struct {
	tasks  []func()
	delays []time.Duration
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) {
	m.tasks = append(m.tasks, f)
	m.delays = append(m.delays, d)
}

func (m *manualScheduler) RunAll() {
	tasks := m.tasks
	m.tasks, m.delays = nil, nil
	for _, f := range tasks {
		f()
	}
}

// recorder captures listener calls.
type recorder struct {
	NopListener
	words    []string
	rounds   []int
	scores   []int
	mistakes []int
	spawned  [][]ItemView
	snapped  []ItemID
	returned []ItemID
	disabled [][]ItemID
	ticks    []time.Duration
	won      []int
	lost     []int
}

func (r *recorder) WordChanged(w string) { r.words = append(r.words, w) }
func (r *recorder) RoundChanged(cur, _ int) { r.rounds = append(r.rounds, cur) }
func (r *recorder) ScoreChanged(s int) { r.scores = append(r.scores, s) }
func (r *recorder) MistakesChanged(n, _ int) { r.mistakes = append(r.mistakes, n) }
func (r *recorder) TimerTick(d time.Duration) { r.ticks = append(r.ticks, d) }
func (r *recorder) ItemsSpawned(items []ItemView) { r.spawned = append(r.spawned, items) }
func (r *recorder) ItemSnapped(id ItemID) { r.snapped = append(r.snapped, id) }
func (r *recorder) ItemReturned(id ItemID) { r.returned = append(r.returned, id) }
func (r *recorder) ItemsDisabled(ids []ItemID) { r.disabled = append(r.disabled, ids) }
func (r *recorder) Won(score int) { r.won = append(r.won, score) }
func (r *recorder) GameOver(score int) { r.lost = append(r.lost, score) }

func testCatalog(t *testing.T, n int) *vocab.Catalog {
	t.Helper()
	entries := make([]vocab.Entry, n)
	for i := range entries {
		w := fmt.Sprintf("word%02d", i)
		entries[i] = vocab.Entry{Word: w, ImageRef: "img/" + w}
	}
	cat, err := vocab.NewCatalog(entries)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return cat
}

type harness struct {
	session  *Session
	resolver *DropResolver
	clock    *fakeClock
	sched    *manualScheduler
	rec      *recorder
}

func newHarness(t *testing.T, catalogSize int, settings Settings) *harness {
	t.Helper()
	h := &harness{
		clock: &fakeClock{now: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)},
		sched: &manualScheduler{},
		rec:   &recorder{},
	}
	next := 0
	s, err := NewSession(testCatalog(t, catalogSize), settings,
		WithClock(h.clock),
		WithScheduler(h.sched),
		WithListener(h.rec),
		WithRandom(rand.New(rand.NewPCG(42, 7))),
		WithItemIDs(func() ItemID {
			next++
			return ItemID(fmt.Sprintf("item-%d", next))
		}),
	)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	h.session = s
	h.resolver = NewDropResolver(s)
	return h
}

func (h *harness) targetID(t *testing.T) ItemID {
	t.Helper()
	for _, it := range h.session.Items() {
		if it.IsTarget {
			return it.ID
		}
	}
	t.Fatalf("no target in round %d", h.session.Round())
	return ""
}

func (h *harness) distractorID(t *testing.T) ItemID {
	t.Helper()
	for _, it := range h.session.Items() {
		if !it.IsTarget {
			return it.ID
		}
	}
	t.Fatalf("no distractor in round %d", h.session.Round())
	return ""
}

func (h *harness) drop(id ItemID) Outcome {
	return h.resolver.Resolve(Drop{Item: id, Zone: DefaultZone})
}
