package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylarkvoice/client/protocol"
)

// fakeLink is an in-process MediaLink double: Send records every outbound
// envelope, and the test pushes inbound envelopes directly onto envelopes.
type fakeLink struct {
	sent      chan protocol.Envelope
	envelopes chan protocol.Envelope
	errs      chan error
	connected bool
}

func newFakeLink() *fakeLink {
	return &fakeLink{
		sent:      make(chan protocol.Envelope, 16),
		envelopes: make(chan protocol.Envelope, 16),
		errs:      make(chan error, 16),
	}
}

func (f *fakeLink) Connect(ctx context.Context) error { f.connected = true; return nil }
func (f *fakeLink) Disconnect()                       { f.connected = false }
func (f *fakeLink) Send(ctx context.Context, env protocol.Envelope) error {
	f.sent <- env
	return nil
}
func (f *fakeLink) Reconnect(ctx context.Context) error { f.connected = true; return nil }
func (f *fakeLink) Envelopes() <-chan protocol.Envelope { return f.envelopes }
func (f *fakeLink) Errors() <-chan error                { return f.errs }
func (f *fakeLink) Connected() bool                     { return f.connected }

type fakeSettings struct{}

func (fakeSettings) ClientVersion() string               { return "test" }
func (fakeSettings) PreferredLanguage() string            { return "en" }
func (fakeSettings) Device() string                       { return "test-device" }
func (fakeSettings) ToolTimeout() time.Duration           { return 30 * time.Second }
func (fakeSettings) EditFollowUpTimeout() time.Duration   { return 30 * time.Millisecond }
func (fakeSettings) SilenceThreshold() time.Duration      { return time.Hour }
func (fakeSettings) EndOfConversationSilence() time.Duration { return time.Hour }
func (fakeSettings) WatchdogTick() time.Duration          { return 10 * time.Millisecond }
func (fakeSettings) TranscriptionHold() time.Duration     { return time.Hour }
func (fakeSettings) FinalGracePeriod() time.Duration      { return 50 * time.Millisecond }

func newTestController(t *testing.T) (*Controller, *fakeLink) {
	t.Helper()
	link := newFakeLink()
	c := New(Config{Link: link, Settings: fakeSettings{}})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	c.Start(ctx)
	return c, link
}

func drainUntil(t *testing.T, events <-chan Event, kind EventKind, timeout time.Duration) Event {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case ev := <-events:
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event kind %d", kind)
		}
	}
}

func TestServerInfoMovesToListeningForWakeWord(t *testing.T) {
	c, link := newTestController(t)
	link.envelopes <- protocol.Envelope{
		StanzaID: -1, Type: protocol.TypeServerInfo,
		Body: protocol.ServerInfo{
			Connection: protocol.ServerConnectionInfo{Status: protocol.ConnStatusConnected},
			Model:      protocol.ServerModelInfo{Name: "m", Provider: "p"},
		},
	}
	ev := drainUntil(t, c.Events(), EventServerInfo, time.Second)
	require.Equal(t, "m", ev.ServerInfo.Model.Name)
	assert.Eventually(t, func() bool { return c.State() == ListeningForWakeWord }, time.Second, time.Millisecond)
}

func TestSendUserMessageAssignsIncreasingStanzaIDs(t *testing.T) {
	c, link := newTestController(t)
	config := <-link.sent // Configuration, sent once Connect succeeds
	require.Equal(t, protocol.TypeConfiguration, config.Type)

	c.SendUserMessage("conv_1", "hello")
	c.SendUserMessage("conv_1", "world")

	first := <-link.sent
	second := <-link.sent
	assert.Equal(t, int32(2), first.StanzaID)
	assert.Equal(t, int32(3), second.StanzaID)
	assert.Equal(t, protocol.TypeUserMessage, first.Type)
}

func TestEditFollowUpTimeoutFiresWithoutFollowUp(t *testing.T) {
	c, _ := newTestController(t)
	c.Edit("conv_1", "msg_1", "edited content")
	ev := drainUntil(t, c.Events(), EventError, time.Second)
	var timeoutErr *ErrEditFollowUpTimeout
	require.ErrorAs(t, ev.Err, &timeoutErr)
	assert.Equal(t, "msg_1", timeoutErr.TargetID)
}

func TestAssistantSentenceStreamIsReorderedBeforeEmission(t *testing.T) {
	c, link := newTestController(t)
	link.envelopes <- protocol.Envelope{
		StanzaID: -1, Type: protocol.TypeServerInfo,
		Body: protocol.ServerInfo{
			Connection: protocol.ServerConnectionInfo{Status: protocol.ConnStatusConnected},
			Model:      protocol.ServerModelInfo{Name: "m", Provider: "p"},
		},
	}
	drainUntil(t, c.Events(), EventServerInfo, time.Second)
	assert.Eventually(t, func() bool { return c.State() == ListeningForWakeWord }, time.Second, time.Millisecond)

	c.StartListening()
	assert.Eventually(t, func() bool { return c.State() == Listening }, time.Second, time.Millisecond)
	c.StopListening()
	assert.Eventually(t, func() bool { return c.State() == Processing }, time.Second, time.Millisecond)

	link.envelopes <- protocol.Envelope{
		StanzaID: -2, Type: protocol.TypeStartAnswer,
		Body: protocol.StartAnswer{ID: "msg_1", PreviousID: "msg_0", ConversationID: "conv_1"},
	}
	assert.Eventually(t, func() bool { return c.State() == Processing }, time.Second, time.Millisecond)

	final := true
	link.envelopes <- protocol.Envelope{
		StanzaID: -3, Type: protocol.TypeAssistantSentence,
		Body: protocol.AssistantSentence{
			PreviousID: "msg_1", ConversationID: "conv_1", Sequence: 1, Text: "world",
			IsFinal: &final, Audio: []byte("pcm"),
		},
	}
	assert.Eventually(t, func() bool { return c.State() == Speaking }, time.Second, time.Millisecond)
	link.envelopes <- protocol.Envelope{
		StanzaID: -4, Type: protocol.TypeAssistantSentence,
		Body: protocol.AssistantSentence{PreviousID: "msg_1", ConversationID: "conv_1", Sequence: 0, Text: "hello"},
	}

	first := drainUntil(t, c.Events(), EventAssistantSentence, time.Second)
	second := drainUntil(t, c.Events(), EventAssistantSentence, time.Second)
	assert.Equal(t, "hello", first.AssistantSentence.Text)
	assert.Equal(t, "world", second.AssistantSentence.Text)
}
