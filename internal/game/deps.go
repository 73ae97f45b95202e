package game

import (
	"time"

	"github.com/google/uuid"
)

// Clock is the time source for reaction timing.
type Clock interface {
	Now() time.Time
}

// Scheduler runs f once after d. f must be invoked on the same serialised
// event stream as every other call into the Session.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// RandomSource returns a uniform int in [0, n). *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

func newItemID() ItemID { return ItemID(uuid.NewString()) }

// Listener receives everything the presentation layer needs to re-render.
// Calls happen synchronously inside the Session; implementations must not
// call back into it.
type Listener interface {
	WordChanged(word string)
	RoundChanged(current, total int)
	ScoreChanged(score int)
	MistakesChanged(count, max int)
	TimerTick(elapsed time.Duration)
	ItemsSpawned(items []ItemView)
	ItemSnapped(id ItemID)
	ItemReturned(id ItemID)
	ItemsDisabled(ids []ItemID)
	Won(finalScore int)
	GameOver(finalScore int)
}

// NopListener ignores every callback. Embed it to implement only a subset.
type NopListener struct{}

func (NopListener) WordChanged(string) {}
func (NopListener) RoundChanged(int, int) {}
func (NopListener) ScoreChanged(int) {}
func (NopListener) MistakesChanged(int, int) {}
func (NopListener) TimerTick(time.Duration) {}
func (NopListener) ItemsSpawned([]ItemView) {}
func (NopListener) ItemSnapped(ItemID) {}
func (NopListener) ItemReturned(ItemID) {}
func (NopListener) ItemsDisabled([]ItemID) {}
func (NopListener) Won(int) {}
func (NopListener) GameOver(int) {}
