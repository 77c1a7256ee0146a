package logging

import "go.opentelemetry.io/otel/attribute"

// Standard span attribute keys for the voice client. Trimmed to the
// envelope-level concerns this client actually has a hand in; ASR/TTS/LLM
// token accounting belongs to whatever runs on the other end of the wire.
const (
	AttrConversationID = "conversation.id"
	AttrMessageID       = "message.id"
	AttrRequestID       = "request.id"
	AttrStanzaType      = "stanza.type"
	AttrStanzaDirection = "stanza.direction"
)

func ConversationID(id string) attribute.KeyValue { return attribute.String(AttrConversationID, id) }
func MessageID(id string) attribute.KeyValue      { return attribute.String(AttrMessageID, id) }
func RequestID(id string) attribute.KeyValue      { return attribute.String(AttrRequestID, id) }
func StanzaType(t string) attribute.KeyValue      { return attribute.String(AttrStanzaType, t) }
func StanzaDirection(dir string) attribute.KeyValue {
	return attribute.String(AttrStanzaDirection, dir)
}
