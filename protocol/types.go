package protocol

// MessageType is the numeric catalogue code carried in Envelope.Type. The
// registry is closed: no plugin may extend it at runtime.
type MessageType uint16

const (
	TypeErrorMessage         MessageType = 1
	TypeUserMessage          MessageType = 2
	TypeAssistantMessage     MessageType = 3
	TypeAudioChunk           MessageType = 4
	TypeReasoningStep        MessageType = 5
	TypeToolUseRequest       MessageType = 6
	TypeToolUseResult        MessageType = 7
	TypeAcknowledgement      MessageType = 8
	TypeTranscription        MessageType = 9
	TypeControlStop          MessageType = 10
	TypeControlVariation     MessageType = 11
	TypeConfiguration        MessageType = 12
	TypeStartAnswer          MessageType = 13
	TypeMemoryTrace          MessageType = 14
	TypeCommentary           MessageType = 15
	TypeAssistantSentence    MessageType = 16
	TypeSyncRequest          MessageType = 17
	TypeSyncResponse         MessageType = 18
	TypeFeedback             MessageType = 20
	TypeFeedbackConfirmation MessageType = 21
	TypeUserNote             MessageType = 22
	TypeNoteConfirmation     MessageType = 23
	TypeMemoryAction         MessageType = 24
	TypeMemoryConfirmation   MessageType = 25
	TypeServerInfo           MessageType = 26
	TypeSessionStats         MessageType = 27
	TypeConversationUpdate   MessageType = 28
	TypeDimensionPreference  MessageType = 30
	TypeEliteOptions         MessageType = 31
	TypeOptimizationProgress MessageType = 32
	TypeEliteSelect          MessageType = 33
	TypeSubscribe            MessageType = 40
	TypeUnsubscribe          MessageType = 41
	TypeSubscribeAck         MessageType = 42
	TypeUnsubscribeAck       MessageType = 43
)

// String implements fmt.Stringer for readable logs.
func (t MessageType) String() string {
	switch t {
	case TypeErrorMessage:
		return "ErrorMessage"
	case TypeUserMessage:
		return "UserMessage"
	case TypeAssistantMessage:
		return "AssistantMessage"
	case TypeAudioChunk:
		return "AudioChunk"
	case TypeReasoningStep:
		return "ReasoningStep"
	case TypeToolUseRequest:
		return "ToolUseRequest"
	case TypeToolUseResult:
		return "ToolUseResult"
	case TypeAcknowledgement:
		return "Acknowledgement"
	case TypeTranscription:
		return "Transcription"
	case TypeControlStop:
		return "ControlStop"
	case TypeControlVariation:
		return "ControlVariation"
	case TypeConfiguration:
		return "Configuration"
	case TypeStartAnswer:
		return "StartAnswer"
	case TypeMemoryTrace:
		return "MemoryTrace"
	case TypeCommentary:
		return "Commentary"
	case TypeAssistantSentence:
		return "AssistantSentence"
	case TypeSyncRequest:
		return "SyncRequest"
	case TypeSyncResponse:
		return "SyncResponse"
	case TypeFeedback:
		return "Feedback"
	case TypeFeedbackConfirmation:
		return "FeedbackConfirmation"
	case TypeUserNote:
		return "UserNote"
	case TypeNoteConfirmation:
		return "NoteConfirmation"
	case TypeMemoryAction:
		return "MemoryAction"
	case TypeMemoryConfirmation:
		return "MemoryConfirmation"
	case TypeServerInfo:
		return "ServerInfo"
	case TypeSessionStats:
		return "SessionStats"
	case TypeConversationUpdate:
		return "ConversationUpdate"
	case TypeDimensionPreference:
		return "DimensionPreference"
	case TypeEliteOptions:
		return "EliteOptions"
	case TypeOptimizationProgress:
		return "OptimizationProgress"
	case TypeEliteSelect:
		return "EliteSelect"
	case TypeSubscribe:
		return "Subscribe"
	case TypeUnsubscribe:
		return "Unsubscribe"
	case TypeSubscribeAck:
		return "SubscribeAck"
	case TypeUnsubscribeAck:
		return "UnsubscribeAck"
	default:
		return "Unknown"
	}
}

// Severity is ErrorMessage's numeric categorical field. Unknown wire values
// decode to SeverityInfo, the declared default.
type Severity int32

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

func severityFromWire(n int32) Severity {
	switch n {
	case int32(SeverityWarning):
		return SeverityWarning
	case int32(SeverityError):
		return SeverityError
	case int32(SeverityCritical):
		return SeverityCritical
	default:
		return SeverityInfo
	}
}

// StopType is ControlStop.stopType's wire-aliased enum.
type StopType uint8

const (
	StopGeneration StopType = iota
	StopSpeech
	StopAll
)

func (s StopType) Wire() string {
	switch s {
	case StopSpeech:
		return "speech"
	case StopAll:
		return "all"
	default:
		return "generation"
	}
}

func stopTypeFromWire(s string) StopType {
	switch s {
	case "speech":
		return StopSpeech
	case "all":
		return StopAll
	default:
		return StopGeneration
	}
}

// VariationType is ControlVariation.mode. Unlike most enums here, an unknown
// wire string is fatal (UnknownEnumStrict) rather than defaulted.
type VariationType uint8

const (
	VariationRegenerate VariationType = iota
	VariationEdit
	VariationContinue
)

func (v VariationType) Wire() string {
	switch v {
	case VariationEdit:
		return "edit"
	case VariationContinue:
		return "continue"
	default:
		return "regenerate"
	}
}

func variationTypeFromWire(s string) (VariationType, bool) {
	switch s {
	case "regenerate":
		return VariationRegenerate, true
	case "edit":
		return VariationEdit, true
	case "continue":
		return VariationContinue, true
	default:
		return 0, false
	}
}

// AnswerType is StartAnswer.answerType. The "text+voice" alias is load-bearing.
type AnswerType uint8

const (
	AnswerText AnswerType = iota
	AnswerVoice
	AnswerTextVoice
)

func (a AnswerType) Wire() string {
	switch a {
	case AnswerVoice:
		return "voice"
	case AnswerTextVoice:
		return "text+voice"
	default:
		return "text"
	}
}

func answerTypeFromWire(s string) AnswerType {
	switch s {
	case "voice":
		return AnswerVoice
	case "text+voice":
		return AnswerTextVoice
	default:
		return AnswerText
	}
}

// ToolExecution is ToolUseRequest.execution. Unknown wire value defaults to
// ToolExecutionServer.
type ToolExecution uint8

const (
	ToolExecutionServer ToolExecution = iota
	ToolExecutionClient
	ToolExecutionEither
)

func (t ToolExecution) Wire() string {
	switch t {
	case ToolExecutionClient:
		return "client"
	case ToolExecutionEither:
		return "either"
	default:
		return "server"
	}
}

func toolExecutionFromWire(s string) ToolExecution {
	switch s {
	case "client":
		return ToolExecutionClient
	case "either":
		return ToolExecutionEither
	default:
		return ToolExecutionServer
	}
}

// ConnectionStatus appears in ServerInfo.connection.status.
type ConnectionStatus uint8

const (
	ConnStatusConnected ConnectionStatus = iota
	ConnStatusConnecting
	ConnStatusDisconnected
	ConnStatusReconnecting
)

func (c ConnectionStatus) Wire() string {
	switch c {
	case ConnStatusConnecting:
		return "connecting"
	case ConnStatusDisconnected:
		return "disconnected"
	case ConnStatusReconnecting:
		return "reconnecting"
	default:
		return "connected"
	}
}

func connectionStatusFromWire(s string) ConnectionStatus {
	switch s {
	case "connecting":
		return ConnStatusConnecting
	case "disconnected":
		return ConnStatusDisconnected
	case "reconnecting":
		return ConnStatusReconnecting
	default:
		return ConnStatusConnected
	}
}

// MCPServerStatus appears in ServerInfo.mcpServers[].status.
type MCPServerStatus uint8

const (
	MCPStatusConnected MCPServerStatus = iota
	MCPStatusDisconnected
	MCPStatusError
)

func (s MCPServerStatus) Wire() string {
	switch s {
	case MCPStatusDisconnected:
		return "disconnected"
	case MCPStatusError:
		return "error"
	default:
		return "connected"
	}
}

func mcpServerStatusFromWire(s string) MCPServerStatus {
	switch s {
	case "disconnected":
		return MCPStatusDisconnected
	case "error":
		return MCPStatusError
	default:
		return MCPStatusConnected
	}
}

// MemoryCategory appears in MemoryAction.memory.category.
type MemoryCategory uint8

const (
	MemoryCategoryPreference MemoryCategory = iota
	MemoryCategoryFact
	MemoryCategoryContext
	MemoryCategoryInstruction
)

func (c MemoryCategory) Wire() string {
	switch c {
	case MemoryCategoryFact:
		return "fact"
	case MemoryCategoryContext:
		return "context"
	case MemoryCategoryInstruction:
		return "instruction"
	default:
		return "preference"
	}
}

func memoryCategoryFromWire(s string) MemoryCategory {
	switch s {
	case "fact":
		return MemoryCategoryFact
	case "context":
		return MemoryCategoryContext
	case "instruction":
		return MemoryCategoryInstruction
	default:
		return MemoryCategoryPreference
	}
}

// MemoryActionKind is MemoryAction.action.
type MemoryActionKind uint8

const (
	MemoryActionCreate MemoryActionKind = iota
	MemoryActionUpdate
	MemoryActionDelete
	MemoryActionPin
	MemoryActionArchive
)

func (a MemoryActionKind) Wire() string {
	switch a {
	case MemoryActionUpdate:
		return "update"
	case MemoryActionDelete:
		return "delete"
	case MemoryActionPin:
		return "pin"
	case MemoryActionArchive:
		return "archive"
	default:
		return "create"
	}
}

func memoryActionKindFromWire(s string) MemoryActionKind {
	switch s {
	case "update":
		return MemoryActionUpdate
	case "delete":
		return MemoryActionDelete
	case "pin":
		return MemoryActionPin
	case "archive":
		return MemoryActionArchive
	default:
		return MemoryActionCreate
	}
}

// NoteCategory is UserNote.category.
type NoteCategory uint8

const (
	NoteCategoryGeneral NoteCategory = iota
	NoteCategoryPreference
	NoteCategoryReminder
	NoteCategoryFact
)

func (c NoteCategory) Wire() string {
	switch c {
	case NoteCategoryPreference:
		return "preference"
	case NoteCategoryReminder:
		return "reminder"
	case NoteCategoryFact:
		return "fact"
	default:
		return "general"
	}
}

func noteCategoryFromWire(s string) NoteCategory {
	switch s {
	case "preference":
		return NoteCategoryPreference
	case "reminder":
		return NoteCategoryReminder
	case "fact":
		return NoteCategoryFact
	default:
		return NoteCategoryGeneral
	}
}

// Feature flags advertised in Configuration.features.
const (
	FeatureStreaming         = "streaming"
	FeaturePartialResponses  = "partial_responses"
	FeatureAudioOutput       = "audio_output"
	FeatureReasoningSteps    = "reasoning_steps"
	FeatureToolUse           = "tool_use"
)

// DefaultFeatures is the feature set advertised on every Configuration
// issuance (§4.4).
func DefaultFeatures() []string {
	return []string{FeatureStreaming, FeatureAudioOutput, FeaturePartialResponses, FeatureReasoningSteps, FeatureToolUse}
}

// DefaultToolTimeoutMs is the default ToolUseRequest.timeoutMs when absent.
const DefaultToolTimeoutMs int32 = 30000
