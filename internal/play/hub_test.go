package play

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestHubDropsWhenSubscriberFull(t *testing.T) {
	h := NewHub("s", zerolog.Nop())
	ch, cancel := h.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer+10; i++ {
		h.ScoreChanged(i)
	}
	if len(ch) != subscriberBuffer {
		t.Fatalf("expected buffer to cap at %d, got %d", subscriberBuffer, len(ch))
	}
	first := <-ch
	if first.Type != MsgScoreChanged || first.Payload.(ScorePayload).Score != 0 {
		t.Fatalf("unexpected first message %+v", first)
	}
}

func TestHubUnsubscribeIsIdempotent(t *testing.T) {
	h := NewHub("s", zerolog.Nop())
	_, cancel := h.Subscribe()
	if h.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber")
	}
	cancel()
	cancel()
	if h.Subscribers() != 0 {
		t.Fatalf("expected 0 subscribers, got %d", h.Subscribers())
	}
}

func TestHubTimerPayloadInSeconds(t *testing.T) {
	h := NewHub("s", zerolog.Nop())
	ch, cancel := h.Subscribe()
	defer cancel()

	h.TimerTick(1500 * time.Millisecond)
	msg := <-ch
	if p := msg.Payload.(TimerPayload); p.ElapsedSeconds != 1.5 {
		t.Fatalf("expected 1.5s, got %v", p.ElapsedSeconds)
	}
}
