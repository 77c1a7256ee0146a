package session

import (
	"context"
	"fmt"
	"time"

	"github.com/skylarkvoice/client/protocol"
	"github.com/skylarkvoice/client/shared/id"
	"github.com/skylarkvoice/client/shared/ptr"
)

// handleEnvelope dispatches one decoded inbound envelope. It is always
// called from the owning goroutine.
func (c *Controller) handleEnvelope(ctx context.Context, env protocol.Envelope) {
	if env.ServerOriginated() {
		c.seq.ObserveInbound(env.StanzaID)
		if c.store != nil && env.ConversationID != nil {
			if err := c.store.AppendEnvelope(*env.ConversationID, env); err != nil {
				c.logger.Warn("session: failed to persist inbound envelope", "error", err)
			}
		}
	}

	switch body := env.Body.(type) {
	case protocol.ServerInfo:
		c.setState(Connecting)
		c.setState(ListeningForWakeWord)
		if c.wake != nil {
			if err := c.wake.Start(); err != nil {
				c.logger.Warn("session: wake source failed to start", "error", err)
			}
		}
		c.emit(Event{Kind: EventServerInfo, ServerInfo: body})

	case protocol.Acknowledgement:
		// Acknowledgements are not tracked: the sequencer above records only
		// this envelope's own stanzaId, and no outbound stanza is marked as
		// confirmed by acknowledgedStanzaId.

	case protocol.ErrorMessage:
		c.emit(Event{Kind: EventError, ConversationID: body.ConversationID,
			Err: fmt.Errorf("session: server error %d: %s", body.Code, body.Message)})
		if !body.Recoverable {
			c.setState(Error)
			c.deactivate()
		}

	case protocol.SyncResponse:
		c.emit(Event{Kind: EventSyncCompleted, ConversationID: body.ConversationID, SyncResponse: body})

	case protocol.SubscribeAck:
		missed := int32(0)
		if body.MissedMessages != nil {
			missed = *body.MissedMessages
		}
		reason := ""
		if body.Error != nil {
			reason = *body.Error
		}
		c.subs.Confirm(body.ConversationID, body.Success, missed, reason)
		if !body.Success {
			c.emit(Event{Kind: EventSubscriptionRejected, ConversationID: body.ConversationID, Err: &subscriptionRejected{reason: reason}})
		}

	case protocol.UnsubscribeAck:
		c.subs.Unsubscribe(body.ConversationID)

	case protocol.Transcription:
		c.resetTimer(c.silenceTimer, c.settings.TranscriptionHold())
		c.emit(Event{Kind: EventTranscription, Transcription: body, ConversationID: body.ConversationID})
		if body.Final {
			c.setState(Processing)
		}

	case protocol.StartAnswer:
		c.assemblers[body.ConversationID] = newAssembler(body.ID)
		c.setState(Processing)

	case protocol.AssistantSentence:
		a, ok := c.assemblers[body.ConversationID]
		if !ok {
			a = newAssembler(body.PreviousID)
			c.assemblers[body.ConversationID] = a
		}
		if body.Audio != nil {
			c.setState(Speaking)
		}
		for _, s := range a.Feed(body) {
			c.emit(Event{Kind: EventAssistantSentence, AssistantSentence: s, ConversationID: body.ConversationID})
		}
		if a.Done() {
			delete(c.assemblers, body.ConversationID)
			c.resetTimer(c.eocTimer, c.settings.EndOfConversationSilence())
		}

	case protocol.ReasoningStep:
		c.emit(Event{Kind: EventReasoningStep, ReasoningStep: body, ConversationID: body.ConversationID})

	case protocol.MemoryTrace:
		c.emit(Event{Kind: EventMemoryTrace, MemoryTrace: body, ConversationID: body.ConversationID})

	case protocol.Commentary:
		c.emit(Event{Kind: EventCommentary, Commentary: body, ConversationID: body.ConversationID})

	case protocol.ToolUseRequest:
		c.toolPending[body.ID] = time.Now()
		c.emit(Event{Kind: EventToolUseRequest, ToolUseRequest: body, ConversationID: body.ConversationID})

	case protocol.SessionStats:
		c.emit(Event{Kind: EventSessionStats, SessionStats: body})

	case protocol.ConversationUpdate:
		// not surfaced as an event and causes no state change.

	default:
		c.logger.Debug("session: unhandled inbound body", "type", env.Type.String())
	}
}

type subscriptionRejected struct{ reason string }

func (e *subscriptionRejected) Error() string { return "session: subscription rejected: " + e.reason }

func (c *Controller) resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// handleCommand executes one queued command against the current state.
func (c *Controller) handleCommand(ctx context.Context, cmd command) {
	switch cc := cmd.(type) {
	case cmdConnect:
		c.setState(Connecting)
		go func() {
			if err := c.link.Connect(ctx); err != nil {
				c.emit(Event{Kind: EventError, Err: err})
				return
			}
			c.enqueue(cmdLinkConnected{})
		}()

	case cmdLinkConnected:
		c.sendConfiguration(ctx)
		if c.conversationID != "" && c.store != nil {
			since, err := c.store.LastSequenceSeen(c.conversationID)
			if err != nil {
				c.logger.Warn("session: failed to read last sequence seen", "error", err)
			} else {
				c.send(ctx, c.nextOutboundEnvelope(c.conversationID, protocol.TypeSyncRequest, protocol.SyncRequest{
					ConversationID: c.conversationID, SinceSequence: ptr.To(since),
				}))
			}
		}

	case cmdStartListening:
		// Push-to-talk and a wake-word detection both pass through Activated
		// on their way into Listening; neither lingers there.
		if c.wake != nil && c.State() == ListeningForWakeWord {
			c.wake.Stop()
		}
		c.setState(Activated)
		c.setState(Listening)

	case cmdStopListening:
		c.setState(Processing)

	case cmdSendUserMessage:
		c.conversationID = cc.conversationID
		body := protocol.UserMessage{
			ID:             id.NewMessage(),
			ConversationID: cc.conversationID,
			Content:        cc.text,
		}
		if c.editPending != nil {
			c.editPending = nil
			c.editTimer.Stop()
		}
		c.send(ctx, c.nextOutboundEnvelope(cc.conversationID, protocol.TypeUserMessage, body))
		c.setState(Processing)

	case cmdControlStop:
		body := protocol.ControlStop{
			ConversationID: cc.conversationID, TargetID: cc.targetID,
			Reason: cc.reason, StopType: cc.stopType,
		}
		c.send(ctx, c.nextOutboundEnvelope(cc.conversationID, protocol.TypeControlStop, body))

	case cmdControlVariation:
		body := protocol.ControlVariation{
			ConversationID: cc.conversationID, TargetID: cc.targetID, Mode: cc.mode,
			NewContent: cc.newContent,
		}
		c.send(ctx, c.nextOutboundEnvelope(cc.conversationID, protocol.TypeControlVariation, body))
		if cc.mode == protocol.VariationEdit {
			c.editPending = ptr.To(cc.targetID)
			c.resetTimer(c.editTimer, c.settings.EditFollowUpTimeout())
		}

	case cmdSubscribe:
		if err := c.subs.Subscribe(cc.conversationID); err != nil {
			c.emit(Event{Kind: EventError, ConversationID: cc.conversationID, Err: err})
			return
		}
		body := protocol.Subscribe{ConversationID: cc.conversationID, FromSequence: cc.fromSequence}
		c.send(ctx, c.nextOutboundEnvelope(cc.conversationID, protocol.TypeSubscribe, body))

	case cmdUnsubscribe:
		body := protocol.Unsubscribe{ConversationID: cc.conversationID}
		c.send(ctx, c.nextOutboundEnvelope(cc.conversationID, protocol.TypeUnsubscribe, body))

	case cmdToolUseResult:
		delete(c.toolPending, cc.result.RequestID)
		c.send(ctx, c.nextOutboundEnvelope(cc.conversationID, protocol.TypeToolUseResult, cc.result))

	case cmdSetDimensionPreference:
		body := protocol.DimensionPreference{
			ConversationID: cc.conversationID, Weights: cc.weights, Preset: cc.preset,
			Timestamp: time.Now().UnixMilli(),
		}
		c.send(ctx, c.nextOutboundEnvelope(cc.conversationID, protocol.TypeDimensionPreference, body))
	}
}
