// internal/game/types.go
//
// Core type definitions for the vocabulary matching game.
// Defines:
//   - State: session lifecycle (not_started → in_round → resolving → won/lost).
//   - Outcome: result of resolving a single drop.
//   - RoundItem / ItemView: a picture in the current round, with and without the target flag.
//   - Snapshot: read-only view published to the presentation layer.

package game

import "github.com/robalobadob/vocabdrop/internal/vocab"

// State is the session lifecycle state.
type State string

const (
	StateNotStarted State = "not_started"
	StateInRound    State = "in_round"
	StateResolving  State = "resolving" // correct drop seen, waiting for the round advance
	StateWon        State = "won"
	StateLost       State = "lost"
)

// Terminal reports whether s only leaves via restart.
func (s State) Terminal() bool { return s == StateWon || s == StateLost }

// Outcome is the result of resolving a drop.
type Outcome string

const (
	OutcomeHit     Outcome = "hit"
	OutcomeMiss    Outcome = "miss"
	OutcomeIgnored Outcome = "ignored" // stale or duplicate event, nothing changed
)

// ItemID identifies a round item for the lifetime of one round.
type ItemID string

// ZoneID identifies a drop zone.
type ZoneID string

// DefaultZone is the single answer box used when no zones are configured.
const DefaultZone ZoneID = "answer"

// Drop is a drag-and-drop event reported by the presentation layer.
type Drop struct {
	Item ItemID `json:"itemId"`
	Zone ZoneID `json:"zoneId"`
}

// RoundItem is one picture in the current round.
type RoundItem struct {
	ID       ItemID
	Entry    vocab.Entry
	Position int  // catalog position of Entry
	IsTarget bool // never leaves the core
	Snapped  bool // dropped correctly into the zone
	Disabled bool // no longer interactive
}

// ItemView is what the presentation layer sees of a round item.
type ItemView struct {
	ID       ItemID `json:"itemId"`
	ImageRef string `json:"imageRef"`
	Snapped  bool   `json:"snapped,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

func (it RoundItem) view() ItemView {
	return ItemView{ID: it.ID, ImageRef: it.Entry.ImageRef, Snapped: it.Snapped, Disabled: it.Disabled}
}

// Snapshot is a consistent copy of the session for rendering.
type Snapshot struct {
	State       State      `json:"state"`
	Round       int        `json:"round"`
	TotalRounds int        `json:"totalRounds"`
	Score       int        `json:"score"`
	Mistakes    int        `json:"mistakes"`
	MaxMistakes int        `json:"maxMistakes"`
	Word        string     `json:"word,omitempty"`
	Items       []ItemView `json:"items"`
	ElapsedMs   int64      `json:"elapsedMs"`
}
