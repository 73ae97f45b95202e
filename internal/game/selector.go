// internal/game/selector.go
//
// Round selection: target choice without repeats and distractor sampling.
//
// Target choice:
//   - Uniform over catalog positions not yet used this cycle.
//   - When every position has been used, the used set is cleared first, so
//     repeats happen across cycles but never within one.
//
// Round items:
//   - The target once, plus min(itemsPerRound-1, size-1) distinct distractors
//     drawn without replacement, then the whole set is Fisher–Yates shuffled.

package game

import "github.com/robalobadob/vocabdrop/internal/vocab"

// UsedSet records catalog positions already used as targets in the current cycle.
type UsedSet map[int]struct{}

// Selector picks targets and builds round item sets from an injected random source.
type Selector struct {
	rng RandomSource
}

func NewSelector(rng RandomSource) *Selector { return &Selector{rng: rng} }

// SelectTarget returns a catalog position not in used, clearing used when
// it already covers the whole catalog. The caller records the pick.
func (s *Selector) SelectTarget(cat *vocab.Catalog, used UsedSet) (int, error) {
	n := cat.Len()
	if n == 0 {
		return 0, ErrEmptyCatalog
	}
	pool := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if _, ok := used[i]; !ok {
			pool = append(pool, i)
		}
	}
	if len(pool) == 0 {
		clear(used)
		for i := 0; i < n; i++ {
			pool = append(pool, i)
		}
	}
	return pool[s.rng.IntN(len(pool))], nil
}

// BuildRoundItems returns catalog positions for one round in display order.
func (s *Selector) BuildRoundItems(cat *vocab.Catalog, target, itemsPerRound int) []int {
	distractors := make([]int, 0, cat.Len())
	for i := 0; i < cat.Len(); i++ {
		if i != target {
			distractors = append(distractors, i)
		}
	}
	need := min(max(itemsPerRound-1, 0), len(distractors))

	// Partial Fisher–Yates: the first need slots end up a uniform sample.
	for i := 0; i < need; i++ {
		j := i + s.rng.IntN(len(distractors)-i)
		distractors[i], distractors[j] = distractors[j], distractors[i]
	}

	out := make([]int, 0, need+1)
	out = append(out, target)
	out = append(out, distractors[:need]...)
	s.shuffle(out)
	return out
}

func (s *Selector) shuffle(xs []int) {
	for i := len(xs) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}
