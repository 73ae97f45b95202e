package play

import (
	"time"

	"github.com/robalobadob/vocabdrop/internal/game"
)

// MessageType names an outbound presentation update.
type MessageType string

const (
	MsgSnapshot        MessageType = "snapshot"
	MsgWordChanged     MessageType = "word_changed"
	MsgRoundChanged    MessageType = "round_changed"
	MsgScoreChanged    MessageType = "score_changed"
	MsgMistakesChanged MessageType = "mistakes_changed"
	MsgTimerTick       MessageType = "timer_tick"
	MsgItemsSpawned    MessageType = "items_spawned"
	MsgItemSnapped     MessageType = "item_snapped"
	MsgItemReturned    MessageType = "item_returned"
	MsgItemsDisabled   MessageType = "items_disabled"
	MsgWon             MessageType = "won"
	MsgGameOver        MessageType = "game_over"
)

// Message is one update sent to presentation clients.
type Message struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"sessionId"`
	Payload   any         `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Payload types

type WordPayload struct {
	Word string `json:"word"`
}

type RoundPayload struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type ScorePayload struct {
	Score int `json:"score"`
}

type MistakesPayload struct {
	Count int `json:"count"`
	Max   int `json:"max"`
}

type TimerPayload struct {
	ElapsedSeconds float64 `json:"elapsedSeconds"`
}

type ItemsPayload struct {
	Items []game.ItemView `json:"items"`
}

type ItemPayload struct {
	ItemID game.ItemID `json:"itemId"`
}

type ItemIDsPayload struct {
	ItemIDs []game.ItemID `json:"itemIds"`
}

type FinalScorePayload struct {
	FinalScore int `json:"finalScore"`
}
