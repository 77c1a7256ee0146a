// Package convstore defines the local persistence collaborator for
// conversation history. The session consults it to answer SyncRequest
// replay and to remember the most recently seen stanza across restarts; it
// never implements storage itself (database schema is out of scope here).
package convstore

import "github.com/skylarkvoice/client/protocol"

// Store is implemented by whatever local persistence the host app provides
// (SQLite, a key-value cache, in-memory for tests).
type Store interface {
	// AppendEnvelope records one envelope against its conversation for
	// later replay.
	AppendEnvelope(conversationID string, env protocol.Envelope) error

	// EnvelopesSince returns every envelope recorded for conversationID
	// with a server stanzaId whose magnitude exceeds sinceSequence, in
	// ascending sequence order.
	EnvelopesSince(conversationID string, sinceSequence int32) ([]protocol.Envelope, error)

	// LastSequenceSeen returns the magnitude of the most negative server
	// stanzaId recorded for conversationID, or 0 if none.
	LastSequenceSeen(conversationID string) (int32, error)
}

// InMemory is a Store backed by a process-local slice, useful for tests and
// as a default when the host app has no persistence layer of its own.
type InMemory struct {
	byConversation map[string][]protocol.Envelope
}

func NewInMemory() *InMemory {
	return &InMemory{byConversation: make(map[string][]protocol.Envelope)}
}

func (s *InMemory) AppendEnvelope(conversationID string, env protocol.Envelope) error {
	s.byConversation[conversationID] = append(s.byConversation[conversationID], env)
	return nil
}

func (s *InMemory) EnvelopesSince(conversationID string, sinceSequence int32) ([]protocol.Envelope, error) {
	var out []protocol.Envelope
	for _, env := range s.byConversation[conversationID] {
		if env.ServerOriginated() && -env.StanzaID > sinceSequence {
			out = append(out, env)
		}
	}
	return out, nil
}

func (s *InMemory) LastSequenceSeen(conversationID string) (int32, error) {
	var max int32
	for _, env := range s.byConversation[conversationID] {
		if env.ServerOriginated() && -env.StanzaID > max {
			max = -env.StanzaID
		}
	}
	return max, nil
}
