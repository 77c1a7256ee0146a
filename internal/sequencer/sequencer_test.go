package sequencer

import "testing"

func TestOutboundStartsAtOneAndIncrements(t *testing.T) {
	s := New()
	if id := s.NextOutbound(); id != 1 {
		t.Fatalf("expected first outbound id 1, got %d", id)
	}
	if id := s.NextOutbound(); id != 2 {
		t.Fatalf("expected second outbound id 2, got %d", id)
	}
}

func TestLastSequenceSeenTracksMostNegative(t *testing.T) {
	s := New()
	if got := s.LastSequenceSeen(); got != 0 {
		t.Fatalf("expected 0 before any inbound stanza, got %d", got)
	}
	s.ObserveInbound(-1)
	s.ObserveInbound(-3)
	s.ObserveInbound(-2)
	if got := s.LastSequenceSeen(); got != 3 {
		t.Fatalf("expected magnitude 3 for most negative -3, got %d", got)
	}
}
