package protocol

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func msgpackEncoderFor(buf *bytes.Buffer) *msgpack.Encoder {
	return msgpack.NewEncoder(buf)
}

func roundTrip(t *testing.T, env Envelope) Envelope {
	t.Helper()
	var buf bytes.Buffer
	if err := EncodeEnvelope(&buf, env); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeEnvelope(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestUserMessageRoundTrip(t *testing.T) {
	conv := "conv_abc"
	prev := "msg_1"
	ts := int64(1700000000000)
	env := Envelope{
		StanzaID:       1,
		ConversationID: &conv,
		Type:           TypeUserMessage,
		Body: UserMessage{
			ID: "msg_2", PreviousID: &prev, ConversationID: conv,
			Content: "hello", Timestamp: &ts,
		},
	}
	out := roundTrip(t, env)
	if out.StanzaID != 1 || !out.ClientOriginated() {
		t.Fatalf("expected positive client-originated stanzaId, got %d", out.StanzaID)
	}
	um, ok := out.Body.(UserMessage)
	if !ok {
		t.Fatalf("expected UserMessage body, got %T", out.Body)
	}
	if um.Content != "hello" || um.ID != "msg_2" || *um.PreviousID != prev || *um.Timestamp != ts {
		t.Fatalf("unexpected round-tripped body: %+v", um)
	}
}

func TestServerStanzaIDIsNegative(t *testing.T) {
	env := Envelope{
		StanzaID: -1,
		Type:     TypeAcknowledgement,
		Body:     Acknowledgement{ConversationID: "c1", AcknowledgedStanzaID: 1, Success: true},
	}
	out := roundTrip(t, env)
	if !out.ServerOriginated() {
		t.Fatalf("expected server-originated stanzaId")
	}
}

// encodeRawEnvelope writes a five-entry envelope map by hand so tests can
// probe malformed wire shapes DecodeEnvelope is expected to reject.
func encodeRawEnvelope(enc *msgpack.Encoder, stanzaID int64, msgType uint64, bodyFieldCount int, writeBody func()) {
	enc.EncodeMapLen(5)
	enc.EncodeString("stanzaId")
	enc.EncodeInt(stanzaID)
	enc.EncodeString("conversationId")
	enc.EncodeNil()
	enc.EncodeString("type")
	enc.EncodeUint(msgType)
	enc.EncodeString("meta")
	enc.EncodeNil()
	enc.EncodeString("body")
	enc.EncodeMapLen(bodyFieldCount)
	writeBody()
}

func TestEnvelopeArityRejected(t *testing.T) {
	var buf bytes.Buffer
	enc := msgpackEncoderFor(&buf)
	enc.EncodeMapLen(4)
	enc.EncodeString("stanzaId")
	enc.EncodeInt(1)
	enc.EncodeString("conversationId")
	enc.EncodeNil()
	enc.EncodeString("type")
	enc.EncodeUint(uint64(TypeAcknowledgement))
	enc.EncodeString("meta")
	enc.EncodeNil()

	_, err := DecodeEnvelope(&buf)
	if err == nil {
		t.Fatal("expected error for malformed top-level arity")
	}
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != ErrMalformedEnvelope {
		t.Fatalf("expected MalformedEnvelope, got %v", err)
	}
}

func TestUnknownTypeRejected(t *testing.T) {
	var buf bytes.Buffer
	enc := msgpackEncoderFor(&buf)
	encodeRawEnvelope(enc, 1, 999, 0, func() {})

	_, err := DecodeEnvelope(&buf)
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != ErrUnknownType {
		t.Fatalf("expected UnknownType, got %v", err)
	}
}

func TestBodyArityBelowFixedCountRejected(t *testing.T) {
	var buf bytes.Buffer
	enc := msgpackEncoderFor(&buf)
	// Acknowledgement requires 3 fields; only send 1.
	encodeRawEnvelope(enc, 1, uint64(TypeAcknowledgement), 1, func() {
		enc.EncodeString("conversationId")
		enc.EncodeString("c1")
	})

	_, err := DecodeEnvelope(&buf)
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != ErrMalformedEnvelope {
		t.Fatalf("expected MalformedEnvelope for short body arity, got %v", err)
	}
}

func TestControlVariationUnknownModeIsFatal(t *testing.T) {
	var buf bytes.Buffer
	enc := msgpackEncoderFor(&buf)
	encodeRawEnvelope(enc, 1, uint64(TypeControlVariation), 4, func() {
		enc.EncodeString("conversationId")
		enc.EncodeString("c1")
		enc.EncodeString("targetId")
		enc.EncodeString("msg_1")
		enc.EncodeString("mode")
		enc.EncodeString("not-a-real-mode")
		enc.EncodeString("newContent")
		enc.EncodeNil()
	})

	_, err := DecodeEnvelope(&buf)
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != ErrUnknownEnumStrict {
		t.Fatalf("expected UnknownEnumStrict, got %v", err)
	}
}

func TestEnvelopeUnknownKeyRejected(t *testing.T) {
	var buf bytes.Buffer
	enc := msgpackEncoderFor(&buf)
	enc.EncodeMapLen(5)
	enc.EncodeString("stanzaId")
	enc.EncodeInt(1)
	enc.EncodeString("conversationId")
	enc.EncodeNil()
	enc.EncodeString("type")
	enc.EncodeUint(uint64(TypeAcknowledgement))
	enc.EncodeString("meta")
	enc.EncodeNil()
	enc.EncodeString("bogus")
	enc.EncodeMapLen(0)

	_, err := DecodeEnvelope(&buf)
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != ErrMalformedEnvelope {
		t.Fatalf("expected MalformedEnvelope for unexpected key, got %v", err)
	}
}

func TestControlStopStopTypeRoundTrip(t *testing.T) {
	env := Envelope{
		StanzaID: 1,
		Type:     TypeControlStop,
		Body:     ControlStop{ConversationID: "c1", StopType: StopAll},
	}
	out := roundTrip(t, env)
	cs := out.Body.(ControlStop)
	if cs.StopType != StopAll {
		t.Fatalf("expected StopAll to survive round trip, got %v", cs.StopType)
	}
}

func TestAnswerTypeWireAlias(t *testing.T) {
	if AnswerTextVoice.Wire() != "text+voice" {
		t.Fatalf("expected text+voice alias, got %q", AnswerTextVoice.Wire())
	}
	if answerTypeFromWire("text+voice") != AnswerTextVoice {
		t.Fatalf("expected text+voice to parse back to AnswerTextVoice")
	}
}

func TestValueRejectsUnrepresentable(t *testing.T) {
	_, err := FromAny(make(chan int))
	if err == nil {
		t.Fatal("expected ErrUnrepresentableValue")
	}
	if _, ok := err.(*ErrUnrepresentableValue); !ok {
		t.Fatalf("expected *ErrUnrepresentableValue, got %T", err)
	}
}

func TestAssistantSentenceSequencing(t *testing.T) {
	env := Envelope{
		StanzaID: -1,
		Type:     TypeAssistantSentence,
		Body: AssistantSentence{
			PreviousID: "msg_1", ConversationID: "c1", Sequence: 3, Text: "world",
		},
	}
	out := roundTrip(t, env)
	as := out.Body.(AssistantSentence)
	if as.Sequence != 3 || as.Text != "world" {
		t.Fatalf("unexpected round-tripped sentence: %+v", as)
	}
}

func TestToolUseRequestParametersRoundTrip(t *testing.T) {
	env := Envelope{
		StanzaID: -1,
		Type:     TypeToolUseRequest,
		Body: ToolUseRequest{
			ID: "tool_1", MessageID: "msg_1", ConversationID: "c1", ToolName: "search",
			Parameters: map[string]Value{"query": String("weather"), "limit": Int64(5)},
			Execution:  ToolExecutionClient,
		},
	}
	out := roundTrip(t, env)
	tr := out.Body.(ToolUseRequest)
	if tr.Execution != ToolExecutionClient {
		t.Fatalf("expected execution to round trip, got %v", tr.Execution)
	}
	q, ok := tr.Parameters["query"].String()
	if !ok || q != "weather" {
		t.Fatalf("expected query=weather, got %+v", tr.Parameters)
	}
}
