package play

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/vocabdrop/internal/game"
)

const subscriberBuffer = 64

// Hub fans listener callbacks out to subscribed presentation clients as Messages.
// Sends never block: a subscriber whose buffer is full misses the message.
type Hub struct {
	sessionID string
	now       func() time.Time
	log       zerolog.Logger

	mu     sync.Mutex
	nextID int
	subs   map[int]chan Message
}

func NewHub(sessionID string, log zerolog.Logger) *Hub {
	return &Hub{
		sessionID: sessionID,
		now:       time.Now,
		log:       log,
		subs:      make(map[int]chan Message),
	}
}

// Subscribe registers a receiver. The returned func unsubscribes and closes the channel.
func (h *Hub) Subscribe() (<-chan Message, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan Message, subscriberBuffer)
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}
}

// Subscribers returns the number of active receivers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// CloseAll unsubscribes everyone.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.subs {
		delete(h.subs, id)
		close(c)
	}
}

func (h *Hub) publish(t MessageType, payload any) {
	msg := Message{Type: t, SessionID: h.sessionID, Payload: payload, Timestamp: h.now()}
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.subs {
		select {
		case c <- msg:
		default:
			h.log.Warn().Int("subscriber", id).Str("type", string(t)).Msg("subscriber buffer full, message dropped")
		}
	}
}

func (h *Hub) WordChanged(word string) { h.publish(MsgWordChanged, WordPayload{Word: word}) }

func (h *Hub) RoundChanged(current, total int) {
	h.publish(MsgRoundChanged, RoundPayload{Current: current, Total: total})
}

func (h *Hub) ScoreChanged(score int) { h.publish(MsgScoreChanged, ScorePayload{Score: score}) }

func (h *Hub) MistakesChanged(count, max int) {
	h.publish(MsgMistakesChanged, MistakesPayload{Count: count, Max: max})
}

func (h *Hub) TimerTick(elapsed time.Duration) {
	h.publish(MsgTimerTick, TimerPayload{ElapsedSeconds: elapsed.Seconds()})
}

func (h *Hub) ItemsSpawned(items []game.ItemView) {
	h.publish(MsgItemsSpawned, ItemsPayload{Items: items})
}

func (h *Hub) ItemSnapped(id game.ItemID) { h.publish(MsgItemSnapped, ItemPayload{ItemID: id}) }
func (h *Hub) ItemReturned(id game.ItemID) { h.publish(MsgItemReturned, ItemPayload{ItemID: id}) }

func (h *Hub) ItemsDisabled(ids []game.ItemID) {
	h.publish(MsgItemsDisabled, ItemIDsPayload{ItemIDs: ids})
}

func (h *Hub) Won(finalScore int) { h.publish(MsgWon, FinalScorePayload{FinalScore: finalScore}) }

func (h *Hub) GameOver(finalScore int) {
	h.publish(MsgGameOver, FinalScorePayload{FinalScore: finalScore})
}

var _ game.Listener = (*Hub)(nil)
