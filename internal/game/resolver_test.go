package game

import "testing"

func TestResolveIgnoresUnknownZone(t *testing.T) {
	h := newHarness(t, 10, DefaultSettings())
	h.session.Start()

	out := h.resolver.Resolve(Drop{Item: h.targetID(t), Zone: "elsewhere"})
	if out != OutcomeIgnored {
		t.Fatalf("expected ignored, got %s", out)
	}
	if h.session.Score() != 0 || h.session.State() != StateInRound {
		t.Fatalf("unknown zone mutated state")
	}
}

func TestResolveBeforeStartIgnored(t *testing.T) {
	h := newHarness(t, 10, DefaultSettings())
	if out := h.drop("item-1"); out != OutcomeIgnored {
		t.Fatalf("expected ignored before start, got %s", out)
	}
	if h.session.State() != StateNotStarted {
		t.Fatalf("expected not_started, got %s", h.session.State())
	}
}

func TestResolveCustomZones(t *testing.T) {
	h := newHarness(t, 10, DefaultSettings())
	r := NewDropResolver(h.session, "left", "right")
	h.session.Start()

	zones := r.Zones()
	if len(zones) != 2 || zones[0] != "left" || zones[1] != "right" {
		t.Fatalf("unexpected zones %v", zones)
	}
	if out := r.Resolve(Drop{Item: h.targetID(t), Zone: DefaultZone}); out != OutcomeIgnored {
		t.Fatalf("default zone should not be registered, got %s", out)
	}
	if out := r.Resolve(Drop{Item: h.targetID(t), Zone: "right"}); out != OutcomeHit {
		t.Fatalf("expected hit in right zone, got %s", out)
	}
}

func TestMissKeepsItemDroppable(t *testing.T) {
	h := newHarness(t, 10, DefaultSettings())
	h.session.Start()
	id := h.distractorID(t)

	h.drop(id)
	if out := h.drop(id); out != OutcomeMiss {
		t.Fatalf("expected a returned item to be droppable again, got %s", out)
	}
	if h.session.Mistakes() != 2 {
		t.Fatalf("expected 2 mistakes, got %d", h.session.Mistakes())
	}
	if out := h.drop(h.targetID(t)); out != OutcomeHit {
		t.Fatalf("expected hit after misses, got %s", out)
	}
}
