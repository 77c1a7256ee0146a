// Package medialink defines the transport abstraction the session uses to
// exchange envelopes with the server, plus a default adapter over a
// gorilla/websocket connection.
package medialink

import (
	"context"

	"github.com/skylarkvoice/client/protocol"
)

// MediaLink is the one point of contact between the session state machine
// and the network. The session never touches a socket directly; it only
// ever calls Send and reads from Envelopes/Errors. This keeps VoiceController
// testable against a fake MediaLink with no real connection.
type MediaLink interface {
	// Connect establishes the underlying connection. It blocks until
	// connected or ctx is done.
	Connect(ctx context.Context) error

	// Disconnect tears down the connection. Safe to call when already
	// disconnected.
	Disconnect()

	// Send writes one envelope to the wire.
	Send(ctx context.Context, env protocol.Envelope) error

	// Reconnect tears down any existing connection and retries with
	// backoff until ctx is cancelled or a connection succeeds. It blocks;
	// callers that must not block the session's owning goroutine run it
	// from a separate goroutine and report completion back as a command.
	Reconnect(ctx context.Context) error

	// Envelopes is the channel of successfully decoded inbound envelopes.
	Envelopes() <-chan protocol.Envelope

	// Errors carries transport-level and decode failures that the session
	// must react to (Disconnected, Reconnecting, decode errors that don't
	// resolve to an envelope).
	Errors() <-chan error

	// Connected reports whether the underlying connection is currently up.
	Connected() bool
}
