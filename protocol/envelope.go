package protocol

// Envelope is the wire-level unit of exchange: a five-entry map keyed
// stanzaId, conversationId, type, meta and body. Positive stanzaId values
// are client-originated, negative are server-originated; zero is reserved
// and never appears on the wire.
type Envelope struct {
	StanzaID       int32
	ConversationID *string
	Type           MessageType
	Meta           map[string]Value
	Body           Body
}

// ClientOriginated reports whether this stanza was assigned by the client
// side of the connection, per the sign convention in the data model.
func (e Envelope) ClientOriginated() bool { return e.StanzaID > 0 }

// ServerOriginated reports whether this stanza was assigned by the server
// side of the connection.
func (e Envelope) ServerOriginated() bool { return e.StanzaID < 0 }
