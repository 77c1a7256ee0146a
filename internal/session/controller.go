// Package session implements the VoiceController: a single-goroutine state
// machine that owns one connection's conversation lifecycle, stream
// assembly and control flows. Every public method enqueues a command onto
// the owning goroutine's channel rather than mutating state directly, so
// all state mutation happens in one explicit select loop instead of behind
// several mutex-guarded fields.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/skylarkvoice/client/internal/convstore"
	"github.com/skylarkvoice/client/internal/medialink"
	"github.com/skylarkvoice/client/internal/metrics"
	"github.com/skylarkvoice/client/internal/observable"
	"github.com/skylarkvoice/client/internal/preferences"
	"github.com/skylarkvoice/client/internal/sequencer"
	"github.com/skylarkvoice/client/internal/settings"
	"github.com/skylarkvoice/client/internal/subscription"
	"github.com/skylarkvoice/client/internal/wake"
	"github.com/skylarkvoice/client/protocol"
	"github.com/skylarkvoice/client/shared/id"
	"github.com/skylarkvoice/client/shared/ptr"
)

// malformedEnvelopeBurstLimit and malformedEnvelopeBurstWindow implement the
// "repeated MalformedEnvelope" escalation: more than this many decode
// failures within the trailing window moves the session to Error rather
// than tolerating an apparently broken link indefinitely.
const (
	malformedEnvelopeBurstLimit  = 5
	malformedEnvelopeBurstWindow = 10 * time.Second
)

// Config carries everything the Controller needs to wire its collaborators.
type Config struct {
	Link     medialink.MediaLink
	Settings settings.Settings
	Metrics  *metrics.Metrics
	Logger   *slog.Logger

	// Wake drives ListeningForWakeWord -> Activated. Optional: when nil,
	// only an explicit StartListening() call can leave ListeningForWakeWord
	// (e.g. a push-to-talk-only host).
	Wake wake.Source

	// Store persists inbound envelopes and answers SyncRequest replay on
	// reconnect. Optional: when nil, reconnection skips the sync exchange
	// and relies solely on Configuration.lastSequenceSeen.
	Store convstore.Store
}

// Controller is the VoiceController. All of its state is owned by the
// goroutine running run (launched by Start); every other method only ever sends on cmds or
// reads from the observable/event channels, never touches fields directly.
type Controller struct {
	link     medialink.MediaLink
	settings settings.Settings
	metrics  *metrics.Metrics
	logger   *slog.Logger
	wake     wake.Source
	store    convstore.Store

	seq  *sequencer.Sequencer
	subs *subscription.Manager

	state  *observable.Value[State]
	events chan Event
	cmds   chan command

	conversationID string
	assemblers     map[string]*assembler // keyed by conversationID; one in-flight answer per conversation

	editPending *string // targetID of an in-flight VariationEdit awaiting follow-up content
	toolPending map[string]time.Time

	malformedErrAt []time.Time // timestamps of recent ErrMalformedEnvelope decode failures

	editTimer    *time.Timer
	silenceTimer *time.Timer
	eocTimer     *time.Timer

	cancel context.CancelFunc
}

func New(cfg Config) *Controller {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Controller{
		link:        cfg.Link,
		settings:    cfg.Settings,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
		wake:        cfg.Wake,
		store:       cfg.Store,
		seq:         sequencer.New(),
		subs:        subscription.NewManager(),
		state:       observable.New(Idle),
		events:      make(chan Event, 64),
		cmds:        make(chan command, 64),
		assemblers:  make(map[string]*assembler),
		toolPending: make(map[string]time.Time),
	}
}

// State returns the current VoiceController state.
func (c *Controller) State() State { return c.state.Get() }

// Events is the stream of everything the session surfaces to a host app:
// assistant sentences in delivery order, transcriptions, tool requests,
// reasoning steps, state changes and errors.
func (c *Controller) Events() <-chan Event { return c.events }

// Start connects the MediaLink and begins the owning goroutine. It returns
// once the run loop has been launched; connection itself happens
// asynchronously and is reflected through State()/Events().
func (c *Controller) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	go c.run(ctx)
	c.enqueue(cmdConnect{})
}

// Stop halts the run loop and disconnects the transport.
func (c *Controller) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Controller) enqueue(cmd command) {
	select {
	case c.cmds <- cmd:
	default:
		c.logger.Warn("session: command queue full, dropping", "command", cmd)
	}
}

// StartListening requests a transition into Listening (e.g. after wake word
// or push-to-talk activation).
func (c *Controller) StartListening() { c.enqueue(cmdStartListening{}) }

// StopListening requests a transition back out of Listening.
func (c *Controller) StopListening() { c.enqueue(cmdStopListening{}) }

// SendUserMessage sends a text user message on the active conversation.
func (c *Controller) SendUserMessage(conversationID, text string) {
	c.enqueue(cmdSendUserMessage{conversationID: conversationID, text: text})
}

// StopGeneration asks the server to stop generation/speech/all for targetID
// (or the whole conversation if targetID is nil).
func (c *Controller) StopGeneration(conversationID string, targetID *string, reason *string, stopType protocol.StopType) {
	c.enqueue(cmdControlStop{conversationID: conversationID, targetID: targetID, reason: reason, stopType: stopType})
}

// Regenerate, Edit and Continue request the named variation on targetID.
// Edit starts the edit-follow-up timeout: the caller must send the edited
// content as a user message within the configured window.
func (c *Controller) Regenerate(conversationID, targetID string) {
	c.enqueue(cmdControlVariation{conversationID: conversationID, targetID: targetID, mode: protocol.VariationRegenerate})
}

func (c *Controller) Continue(conversationID, targetID string) {
	c.enqueue(cmdControlVariation{conversationID: conversationID, targetID: targetID, mode: protocol.VariationContinue})
}

func (c *Controller) Edit(conversationID, targetID, newContent string) {
	c.enqueue(cmdControlVariation{
		conversationID: conversationID, targetID: targetID,
		mode: protocol.VariationEdit, newContent: &newContent,
	})
}

// Subscribe begins following conversationID, optionally replaying from
// fromSequence.
func (c *Controller) Subscribe(conversationID string, fromSequence *int32) {
	c.enqueue(cmdSubscribe{conversationID: conversationID, fromSequence: fromSequence})
}

// Unsubscribe stops following conversationID.
func (c *Controller) Unsubscribe(conversationID string) {
	c.enqueue(cmdUnsubscribe{conversationID: conversationID})
}

// SubmitToolResult reports the outcome of a client-executed tool call back
// to the server.
func (c *Controller) SubmitToolResult(conversationID string, result protocol.ToolUseResult) {
	c.enqueue(cmdToolUseResult{conversationID: conversationID, result: result})
}

// SetDimensionPreference steers the answer-ranking weights for
// conversationID, optionally naming a server-side preset.
func (c *Controller) SetDimensionPreference(conversationID string, weights protocol.DimensionWeights, preset *string) {
	c.enqueue(cmdSetDimensionPreference{conversationID: conversationID, weights: weights, preset: preset})
}

// ResetDimensionPreference restores the embedded default dimension weights
// for conversationID.
func (c *Controller) ResetDimensionPreference(conversationID string) {
	c.SetDimensionPreference(conversationID, preferences.Get().DimensionWeights(), nil)
}

func (c *Controller) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		c.logger.Warn("session: event queue full, dropping", "kind", ev.Kind)
	}
}

func (c *Controller) setState(to State) {
	from := c.state.Get()
	if !canTransition(from, to) {
		c.emit(Event{Kind: EventError, Err: &ErrIllegalStateTransition{From: from, To: to}})
		return
	}
	c.state.Set(to)
	if c.metrics != nil {
		c.metrics.StateTransitions.WithLabelValues(from.String(), to.String()).Inc()
	}
	c.emit(Event{Kind: EventStateChanged, State: to})
}

func (c *Controller) run(ctx context.Context) {
	watchdog := time.NewTicker(c.settings.WatchdogTick())
	defer watchdog.Stop()

	c.editTimer = time.NewTimer(time.Hour)
	c.editTimer.Stop()
	c.silenceTimer = time.NewTimer(time.Hour)
	c.silenceTimer.Stop()
	c.eocTimer = time.NewTimer(time.Hour)
	c.eocTimer.Stop()

	defer func() {
		c.link.Disconnect()
		if c.wake != nil {
			c.wake.Stop()
		}
		close(c.events)
	}()

	var wakeDetections <-chan wake.Detection
	if c.wake != nil {
		wakeDetections = c.wake.Detections()
	}

	for {
		select {
		case <-ctx.Done():
			return

		case env := <-c.link.Envelopes():
			c.handleEnvelope(ctx, env)

		case err := <-c.link.Errors():
			c.handleTransportError(ctx, err)

		case cmd := <-c.cmds:
			c.handleCommand(ctx, cmd)

		case <-wakeDetections:
			if c.State() == ListeningForWakeWord {
				if c.wake != nil {
					c.wake.Stop()
				}
				c.setState(Activated)
				c.setState(Listening)
			}

		case <-c.editTimer.C:
			if c.editPending != nil {
				target := *c.editPending
				c.editPending = nil
				c.emit(Event{Kind: EventError, Err: &ErrEditFollowUpTimeout{TargetID: target}})
			}

		case <-c.silenceTimer.C:
			if c.State() == Listening {
				c.setState(Processing)
			}

		case <-c.eocTimer.C:
			c.setState(ListeningForWakeWord)

		case <-watchdog.C:
			c.checkToolTimeouts()
		}
	}
}

func (c *Controller) checkToolTimeouts() {
	timeout := c.settings.ToolTimeout()
	now := time.Now()
	for id, started := range c.toolPending {
		if now.Sub(started) > timeout {
			delete(c.toolPending, id)
			c.logger.Warn("session: tool call timed out", "request_id", id)
		}
	}
}

// deactivate clears everything tied to the current activation/conversation
// cycle: pending timers, in-flight stream assembly and edit/tool state. It
// never changes State itself; callers set the target state before or after.
func (c *Controller) deactivate() {
	c.editTimer.Stop()
	c.silenceTimer.Stop()
	c.eocTimer.Stop()
	c.editPending = nil
	c.assemblers = make(map[string]*assembler)
	c.toolPending = make(map[string]time.Time)
}

func (c *Controller) handleTransportError(ctx context.Context, err error) {
	if de, ok := err.(*protocol.DecodeError); ok {
		if c.metrics != nil {
			c.metrics.DecodeErrors.WithLabelValues(de.Kind.String()).Inc()
		}
		c.emit(Event{Kind: EventError, Err: de})
		if de.Kind == protocol.ErrMalformedEnvelope {
			c.recordMalformedEnvelope()
		}
		return
	}
	c.setState(Disconnected)
	c.deactivate()
	c.emit(Event{Kind: EventError, Err: err})
	go c.reconnect(ctx)
}

// recordMalformedEnvelope tracks a rolling window of decode failures and
// escalates to Error once more than malformedEnvelopeBurstLimit have landed
// within malformedEnvelopeBurstWindow — a steady trickle of bad frames is
// tolerated, a burst is treated as a broken or hostile link.
func (c *Controller) recordMalformedEnvelope() {
	now := time.Now()
	cutoff := now.Add(-malformedEnvelopeBurstWindow)
	kept := c.malformedErrAt[:0]
	for _, t := range c.malformedErrAt {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	c.malformedErrAt = append(kept, now)
	if len(c.malformedErrAt) > malformedEnvelopeBurstLimit {
		c.setState(Error)
		c.deactivate()
		c.malformedErrAt = nil
	}
}

// reconnect retries the link with its configured backoff and, once back up,
// enqueues cmdLinkConnected so the owning goroutine re-issues Configuration
// (and a SyncRequest, if a conversation and a Store are in play) from a
// single-writer context. It runs off the owning goroutine since link.Reconnect
// blocks for potentially many retries.
func (c *Controller) reconnect(ctx context.Context) {
	if err := c.link.Reconnect(ctx); err != nil {
		c.emit(Event{Kind: EventError, Err: err})
		return
	}
	c.enqueue(cmdLinkConnected{})
}

// sendConfiguration issues Configuration on first connect and again after
// every reconnect, carrying the sequencer's view of the last server stanza
// observed so the server knows where to resume.
func (c *Controller) sendConfiguration(ctx context.Context) {
	body := protocol.Configuration{
		ConversationID:    optionalConversationID(c.conversationID),
		LastSequenceSeen:  ptr.To(c.seq.LastSequenceSeen()),
		ClientVersion:     ptr.To(c.settings.ClientVersion()),
		PreferredLanguage: ptr.To(c.settings.PreferredLanguage()),
		Device:            ptr.To(c.settings.Device()),
		Features:          protocol.DefaultFeatures(),
	}
	c.send(ctx, c.nextOutboundEnvelope(c.conversationID, protocol.TypeConfiguration, body))
}

func optionalConversationID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func (c *Controller) nextOutboundEnvelope(conversationID string, t protocol.MessageType, body protocol.Body) protocol.Envelope {
	convID := conversationID
	return protocol.Envelope{
		StanzaID:       c.seq.NextOutbound(),
		ConversationID: &convID,
		Type:           t,
		Body:           body,
	}
}

func (c *Controller) send(ctx context.Context, env protocol.Envelope) {
	if err := c.link.Send(ctx, env); err != nil {
		c.emit(Event{Kind: EventError, Err: err})
	}
}

func newMessageID() string { return id.NewMessage() }
