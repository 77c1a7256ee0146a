package session

import "github.com/skylarkvoice/client/protocol"

// EventKind tags the payload carried by an Event.
type EventKind uint8

const (
	EventStateChanged EventKind = iota
	EventAssistantSentence
	EventTranscription
	EventToolUseRequest
	EventReasoningStep
	EventMemoryTrace
	EventCommentary
	EventServerInfo
	EventSessionStats
	EventError
	EventSubscriptionRejected
	EventSyncCompleted
)

// Event is a discriminated union of everything the session surfaces to a
// host app. Exactly one of the typed fields is populated, matching Kind.
type Event struct {
	Kind EventKind

	State             State
	AssistantSentence protocol.AssistantSentence
	Transcription     protocol.Transcription
	ToolUseRequest    protocol.ToolUseRequest
	ReasoningStep     protocol.ReasoningStep
	MemoryTrace       protocol.MemoryTrace
	Commentary        protocol.Commentary
	ServerInfo        protocol.ServerInfo
	SessionStats      protocol.SessionStats
	SyncResponse      protocol.SyncResponse
	Err               error
	ConversationID    string
}
