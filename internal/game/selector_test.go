package game

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/robalobadob/vocabdrop/internal/vocab"
)

func TestBuildRoundItemsTenEntriesEightItems(t *testing.T) {
	cat := testCatalog(t, 10)
	sel := NewSelector(rand.New(rand.NewPCG(1, 2)))

	for trial := 0; trial < 50; trial++ {
		target, err := sel.SelectTarget(cat, UsedSet{})
		if err != nil {
			t.Fatalf("select target: %v", err)
		}
		items := sel.BuildRoundItems(cat, target, 8)
		if len(items) != 8 {
			t.Fatalf("expected 8 items, got %d", len(items))
		}
		seen := map[int]bool{}
		targets := 0
		for _, p := range items {
			if seen[p] {
				t.Fatalf("duplicate position %d in %v", p, items)
			}
			seen[p] = true
			if p == target {
				targets++
			}
		}
		if targets != 1 {
			t.Fatalf("expected exactly 1 target, got %d", targets)
		}
	}
}

func TestBuildRoundItemsCapsAtCatalogSize(t *testing.T) {
	cat := testCatalog(t, 3)
	sel := NewSelector(rand.New(rand.NewPCG(3, 4)))

	items := sel.BuildRoundItems(cat, 1, 8)
	if len(items) != 3 {
		t.Fatalf("expected min(8, 3) = 3 items, got %d", len(items))
	}

	single := sel.BuildRoundItems(cat, 2, 1)
	if len(single) != 1 || single[0] != 2 {
		t.Fatalf("expected only the target, got %v", single)
	}
}

func TestBuildRoundItemsShufflesTargetPosition(t *testing.T) {
	cat := testCatalog(t, 10)
	sel := NewSelector(rand.New(rand.NewPCG(5, 6)))

	slots := map[int]bool{}
	for i := 0; i < 200; i++ {
		items := sel.BuildRoundItems(cat, 0, 8)
		for slot, p := range items {
			if p == 0 {
				slots[slot] = true
			}
		}
	}
	if len(slots) != 8 {
		t.Fatalf("expected target to appear in all 8 slots, saw %d", len(slots))
	}
}

func TestSelectTargetCycleHasNoRepeats(t *testing.T) {
	cat := testCatalog(t, 6)
	sel := NewSelector(rand.New(rand.NewPCG(7, 8)))
	used := UsedSet{}

	for cycle := 0; cycle < 3; cycle++ {
		seen := map[int]bool{}
		for i := 0; i < cat.Len(); i++ {
			p, err := sel.SelectTarget(cat, used)
			if err != nil {
				t.Fatalf("select target: %v", err)
			}
			if seen[p] {
				t.Fatalf("cycle %d: position %d repeated", cycle, p)
			}
			seen[p] = true
			used[p] = struct{}{}
			if len(used) > cat.Len() {
				t.Fatalf("used set grew past catalog size: %d", len(used))
			}
		}
	}
}

func TestSelectTargetClearsExhaustedSet(t *testing.T) {
	cat := testCatalog(t, 2)
	sel := NewSelector(rand.New(rand.NewPCG(9, 10)))
	used := UsedSet{0: {}, 1: {}}

	if _, err := sel.SelectTarget(cat, used); err != nil {
		t.Fatalf("select target: %v", err)
	}
	if len(used) != 0 {
		t.Fatalf("expected used set to be cleared, has %d", len(used))
	}
}

func TestSelectTargetEmptyCatalog(t *testing.T) {
	cat, err := vocab.NewCatalog(nil)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	sel := NewSelector(rand.New(rand.NewPCG(1, 1)))
	if _, err := sel.SelectTarget(cat, UsedSet{}); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestSelectorDeterministicUnderSeed(t *testing.T) {
	cat := testCatalog(t, 12)
	a := NewSelector(rand.New(rand.NewPCG(11, 12)))
	b := NewSelector(rand.New(rand.NewPCG(11, 12)))

	for i := 0; i < 10; i++ {
		ta, _ := a.SelectTarget(cat, UsedSet{})
		tb, _ := b.SelectTarget(cat, UsedSet{})
		if ta != tb {
			t.Fatalf("pick %d diverged: %d vs %d", i, ta, tb)
		}
		ia := a.BuildRoundItems(cat, ta, 5)
		ib := b.BuildRoundItems(cat, tb, 5)
		for j := range ia {
			if ia[j] != ib[j] {
				t.Fatalf("round %d item %d diverged", i, j)
			}
		}
	}
}
