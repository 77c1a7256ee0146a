package protocol

// catalogEntry binds a MessageType to its fixed field count and its
// Fields-to-Body constructor. arity is the exact number of keys a
// well-formed body map carries (required and optional fields alike,
// since optionals are always present with a nil value on the wire).
type catalogEntry struct {
	arity      int
	fromFields func(Fields) (Body, error)
}

var catalogue = map[MessageType]catalogEntry{
	TypeErrorMessage:         {7, errorMessageFromFields},
	TypeUserMessage:          {5, userMessageFromFields},
	TypeAssistantMessage:     {5, assistantMessageFromFields},
	TypeAudioChunk:           {8, audioChunkFromFields},
	TypeReasoningStep:        {5, reasoningStepFromFields},
	TypeToolUseRequest:       {7, toolUseRequestFromFields},
	TypeToolUseResult:        {7, toolUseResultFromFields},
	TypeAcknowledgement:      {3, acknowledgementFromFields},
	TypeTranscription:        {7, transcriptionFromFields},
	TypeControlStop:          {4, controlStopFromFields},
	TypeControlVariation:     {4, controlVariationFromFields},
	TypeConfiguration:        {6, configurationFromFields},
	TypeStartAnswer:          {5, startAnswerFromFields},
	TypeMemoryTrace:          {6, memoryTraceFromFields},
	TypeCommentary:           {5, commentaryFromFields},
	TypeAssistantSentence:    {7, assistantSentenceFromFields},
	TypeSyncRequest:          {2, syncRequestFromFields},
	TypeSyncResponse:         {3, syncResponseFromFields},
	TypeFeedback:             {9, feedbackFromFields},
	TypeFeedbackConfirmation: {5, feedbackConfirmationFromFields},
	TypeUserNote:             {5, userNoteFromFields},
	TypeNoteConfirmation:     {4, noteConfirmationFromFields},
	TypeMemoryAction:         {4, memoryActionFromFields},
	TypeMemoryConfirmation:   {5, memoryConfirmationFromFields},
	TypeServerInfo:           {3, serverInfoFromFields},
	TypeSessionStats:         {4, sessionStatsFromFields},
	TypeConversationUpdate:   {4, conversationUpdateFromFields},
	TypeDimensionPreference:  {4, dimensionPreferenceFromFields},
	TypeEliteOptions:         {4, eliteOptionsFromFields},
	TypeOptimizationProgress: {9, optimizationProgressFromFields},
	TypeEliteSelect:          {3, eliteSelectFromFields},
	TypeSubscribe:            {2, subscribeFromFields},
	TypeUnsubscribe:          {1, unsubscribeFromFields},
	TypeSubscribeAck:         {4, subscribeAckFromFields},
	TypeUnsubscribeAck:       {2, unsubscribeAckFromFields},
}

// lookupCatalogue returns the catalogue entry for t, or ok=false if t is not
// a registered type (decode must reject with UnknownType in that case).
func lookupCatalogue(t MessageType) (catalogEntry, bool) {
	e, ok := catalogue[t]
	return e, ok
}
