// Package sequencer assigns and tracks stanza IDs for one connection.
//
// Outbound IDs are client-assigned and increase monotonically from 1.
// Inbound IDs are server-assigned, strictly decrease from -1, and the
// sequencer remembers the most negative one seen so it can report
// lastSequenceSeen on the next Configuration exchange.
package sequencer

import "sync"

// Sequencer is safe for concurrent use, though in the single-goroutine
// session design it is only ever touched from the owning goroutine.
type Sequencer struct {
	mu           sync.Mutex
	nextOutbound int32
	lowestSeen   int32 // most negative server stanzaId observed; 0 if none yet
}

func New() *Sequencer {
	return &Sequencer{nextOutbound: 1}
}

// NextOutbound returns the next client-assigned stanzaId and advances the
// counter. The sequence never revisits 0.
func (s *Sequencer) NextOutbound() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextOutbound
	s.nextOutbound++
	if s.nextOutbound == 0 {
		s.nextOutbound = 1
	}
	return id
}

// ObserveInbound records a server-assigned stanzaId. id must be negative;
// callers are expected to have already rejected 0 and positive values
// arriving on inbound envelopes from the server.
func (s *Sequencer) ObserveInbound(id int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < s.lowestSeen {
		s.lowestSeen = id
	}
}

// LastSequenceSeen returns the magnitude of the most negative server
// stanzaId observed so far, for reporting back to the server via
// Configuration.lastSequenceSeen. Returns 0 if no server stanza has been
// seen yet.
func (s *Sequencer) LastSequenceSeen() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lowestSeen == 0 {
		return 0
	}
	return -s.lowestSeen
}
