package protocol

// Body is implemented by every message-catalogue payload type. ToFields
// must return a map containing every field name declared for that type,
// using Nil() for any absent optional field, so the body always round-trips
// through the catalogue's fixed arity (§8 "Arity invariance").
type Body interface {
	Type() MessageType
	ToFields() Fields
}

func optStr(s *string) Value {
	if s == nil {
		return Nil()
	}
	return String(*s)
}

func optI32(i *int32) Value {
	if i == nil {
		return Nil()
	}
	return Int64(int64(*i))
}

func optI64(i *int64) Value {
	if i == nil {
		return Nil()
	}
	return Int64(*i)
}

func optF32(f *float32) Value {
	if f == nil {
		return Nil()
	}
	return Float64(float64(*f))
}

func optBool(b *bool) Value {
	if b == nil {
		return Nil()
	}
	return Bool(*b)
}

func strList(ss []string) Value {
	if ss == nil {
		return Nil()
	}
	vs := make([]Value, len(ss))
	for i, s := range ss {
		vs[i] = String(s)
	}
	return List(vs)
}

// ---- ErrorMessage (1) ----

type ErrorMessage struct {
	ID             string
	ConversationID string
	Code           int32
	Message        string
	Severity       Severity
	Recoverable    bool
	OriginatingID  *string
}

func (ErrorMessage) Type() MessageType { return TypeErrorMessage }

func (m ErrorMessage) ToFields() Fields {
	return Fields{
		"id": String(m.ID), "conversationId": String(m.ConversationID),
		"code": Int64(int64(m.Code)), "message": String(m.Message),
		"severity": Int64(int64(m.Severity)), "recoverable": Bool(m.Recoverable),
		"originatingId": optStr(m.OriginatingID),
	}
}

func errorMessageFromFields(f Fields) (Body, error) {
	var m ErrorMessage
	var err error
	if m.ID, err = f.RequireString("id"); err != nil {
		return nil, err
	}
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.Code, err = f.RequireInt32("code"); err != nil {
		return nil, err
	}
	if m.Message, err = f.RequireString("message"); err != nil {
		return nil, err
	}
	sev, err := f.RequireInt32("severity")
	if err != nil {
		return nil, err
	}
	m.Severity = severityFromWire(sev)
	if m.Recoverable, err = f.RequireBool("recoverable"); err != nil {
		return nil, err
	}
	if m.OriginatingID, err = f.OptString("originatingId"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- UserMessage (2) / AssistantMessage (3) — identical shape ----

type UserMessage struct {
	ID             string
	PreviousID     *string
	ConversationID string
	Content        string
	Timestamp      *int64
}

func (UserMessage) Type() MessageType { return TypeUserMessage }

func (m UserMessage) ToFields() Fields {
	return Fields{
		"id": String(m.ID), "previousId": optStr(m.PreviousID),
		"conversationId": String(m.ConversationID), "content": String(m.Content),
		"timestamp": optI64(m.Timestamp),
	}
}

func userLikeFromFields(f Fields) (id string, previousID *string, conversationID, content string, timestamp *int64, err error) {
	if id, err = f.RequireString("id"); err != nil {
		return
	}
	if previousID, err = f.OptString("previousId"); err != nil {
		return
	}
	if conversationID, err = f.RequireString("conversationId"); err != nil {
		return
	}
	if content, err = f.RequireString("content"); err != nil {
		return
	}
	timestamp, err = f.OptInt64("timestamp")
	return
}

func userMessageFromFields(f Fields) (Body, error) {
	id, prev, conv, content, ts, err := userLikeFromFields(f)
	if err != nil {
		return nil, err
	}
	return UserMessage{ID: id, PreviousID: prev, ConversationID: conv, Content: content, Timestamp: ts}, nil
}

type AssistantMessage struct {
	ID             string
	PreviousID     *string
	ConversationID string
	Content        string
	Timestamp      *int64
}

func (AssistantMessage) Type() MessageType { return TypeAssistantMessage }

func (m AssistantMessage) ToFields() Fields {
	return Fields{
		"id": String(m.ID), "previousId": optStr(m.PreviousID),
		"conversationId": String(m.ConversationID), "content": String(m.Content),
		"timestamp": optI64(m.Timestamp),
	}
}

func assistantMessageFromFields(f Fields) (Body, error) {
	id, prev, conv, content, ts, err := userLikeFromFields(f)
	if err != nil {
		return nil, err
	}
	return AssistantMessage{ID: id, PreviousID: prev, ConversationID: conv, Content: content, Timestamp: ts}, nil
}

// ---- AudioChunk (4) ----

type AudioChunk struct {
	ConversationID string
	Format         string
	Sequence       int32
	DurationMs     int32
	TrackSID       *string
	Data           []byte
	IsLast         *bool
	Timestamp      *int64
}

func (AudioChunk) Type() MessageType { return TypeAudioChunk }

func (m AudioChunk) ToFields() Fields {
	data := Nil()
	if m.Data != nil {
		data = Binary(m.Data)
	}
	return Fields{
		"conversationId": String(m.ConversationID), "format": String(m.Format),
		"sequence": Int64(int64(m.Sequence)), "durationMs": Int64(int64(m.DurationMs)),
		"trackSid": optStr(m.TrackSID), "data": data,
		"isLast": optBool(m.IsLast), "timestamp": optI64(m.Timestamp),
	}
}

func audioChunkFromFields(f Fields) (Body, error) {
	var m AudioChunk
	var err error
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.Format, err = f.RequireString("format"); err != nil {
		return nil, err
	}
	if m.Sequence, err = f.RequireInt32("sequence"); err != nil {
		return nil, err
	}
	if m.DurationMs, err = f.RequireInt32("durationMs"); err != nil {
		return nil, err
	}
	if m.TrackSID, err = f.OptString("trackSid"); err != nil {
		return nil, err
	}
	if m.Data, err = f.OptBytes("data"); err != nil {
		return nil, err
	}
	isLast, err := f.OptBool("isLast")
	if err != nil {
		return nil, err
	}
	if v, present := f.get("isLast"); present && !v.IsNil() {
		m.IsLast = &isLast
	}
	if m.Timestamp, err = f.OptInt64("timestamp"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- ReasoningStep (5) ----

type ReasoningStep struct {
	ID             string
	MessageID      string
	ConversationID string
	Sequence       int32
	Content        string
}

func (ReasoningStep) Type() MessageType { return TypeReasoningStep }

func (m ReasoningStep) ToFields() Fields {
	return Fields{
		"id": String(m.ID), "messageId": String(m.MessageID),
		"conversationId": String(m.ConversationID), "sequence": Int64(int64(m.Sequence)),
		"content": String(m.Content),
	}
}

func reasoningStepFromFields(f Fields) (Body, error) {
	var m ReasoningStep
	var err error
	if m.ID, err = f.RequireString("id"); err != nil {
		return nil, err
	}
	if m.MessageID, err = f.RequireString("messageId"); err != nil {
		return nil, err
	}
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.Sequence, err = f.RequireInt32("sequence"); err != nil {
		return nil, err
	}
	if m.Content, err = f.RequireString("content"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- ToolUseRequest (6) ----

type ToolUseRequest struct {
	ID             string
	MessageID      string
	ConversationID string
	ToolName       string
	Parameters     map[string]Value
	Execution      ToolExecution
	TimeoutMs      *int32
}

func (ToolUseRequest) Type() MessageType { return TypeToolUseRequest }

func (m ToolUseRequest) ToFields() Fields {
	return Fields{
		"id": String(m.ID), "messageId": String(m.MessageID),
		"conversationId": String(m.ConversationID), "toolName": String(m.ToolName),
		"parameters": Map(m.Parameters), "execution": String(m.Execution.Wire()),
		"timeoutMs": optI32(m.TimeoutMs),
	}
}

func toolUseRequestFromFields(f Fields) (Body, error) {
	var m ToolUseRequest
	var err error
	if m.ID, err = f.RequireString("id"); err != nil {
		return nil, err
	}
	if m.MessageID, err = f.RequireString("messageId"); err != nil {
		return nil, err
	}
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.ToolName, err = f.RequireString("toolName"); err != nil {
		return nil, err
	}
	if m.Parameters, err = f.RequireMap("parameters"); err != nil {
		return nil, err
	}
	m.Execution = OptEnumLenient(f, "execution", toolExecutionFromWire, ToolExecutionServer)
	if m.TimeoutMs, err = f.OptInt32("timeoutMs"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- ToolUseResult (7) ----

type ToolUseResult struct {
	ID             string
	RequestID      string
	ConversationID string
	Success        bool
	Result         Value
	ErrorCode      *string
	ErrorMessage   *string
}

func (ToolUseResult) Type() MessageType { return TypeToolUseResult }

func (m ToolUseResult) ToFields() Fields {
	return Fields{
		"id": String(m.ID), "requestId": String(m.RequestID),
		"conversationId": String(m.ConversationID), "success": Bool(m.Success),
		"result": m.Result, "errorCode": optStr(m.ErrorCode), "errorMessage": optStr(m.ErrorMessage),
	}
}

func toolUseResultFromFields(f Fields) (Body, error) {
	var m ToolUseResult
	var err error
	if m.ID, err = f.RequireString("id"); err != nil {
		return nil, err
	}
	if m.RequestID, err = f.RequireString("requestId"); err != nil {
		return nil, err
	}
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.Success, err = f.RequireBool("success"); err != nil {
		return nil, err
	}
	m.Result = f.OptValue("result")
	if m.ErrorCode, err = f.OptString("errorCode"); err != nil {
		return nil, err
	}
	if m.ErrorMessage, err = f.OptString("errorMessage"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- Acknowledgement (8) ----

type Acknowledgement struct {
	ConversationID       string
	AcknowledgedStanzaID int32
	Success              bool
}

func (Acknowledgement) Type() MessageType { return TypeAcknowledgement }

func (m Acknowledgement) ToFields() Fields {
	return Fields{
		"conversationId": String(m.ConversationID),
		"acknowledgedStanzaId": Int64(int64(m.AcknowledgedStanzaID)),
		"success": Bool(m.Success),
	}
}

func acknowledgementFromFields(f Fields) (Body, error) {
	var m Acknowledgement
	var err error
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.AcknowledgedStanzaID, err = f.RequireInt32("acknowledgedStanzaId"); err != nil {
		return nil, err
	}
	if m.Success, err = f.RequireBool("success"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- Transcription (9) ----

type Transcription struct {
	ID             string
	PreviousID     *string
	ConversationID string
	Text           string
	Final          bool
	Confidence     *float32
	Language       *string
}

func (Transcription) Type() MessageType { return TypeTranscription }

func (m Transcription) ToFields() Fields {
	return Fields{
		"id": String(m.ID), "previousId": optStr(m.PreviousID),
		"conversationId": String(m.ConversationID), "text": String(m.Text),
		"final": Bool(m.Final), "confidence": optF32(m.Confidence), "language": optStr(m.Language),
	}
}

func transcriptionFromFields(f Fields) (Body, error) {
	var m Transcription
	var err error
	if m.ID, err = f.RequireString("id"); err != nil {
		return nil, err
	}
	if m.PreviousID, err = f.OptString("previousId"); err != nil {
		return nil, err
	}
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.Text, err = f.RequireString("text"); err != nil {
		return nil, err
	}
	if m.Final, err = f.RequireBool("final"); err != nil {
		return nil, err
	}
	if m.Confidence, err = f.OptFloat32("confidence"); err != nil {
		return nil, err
	}
	if m.Language, err = f.OptString("language"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- ControlStop (10) ----

type ControlStop struct {
	ConversationID string
	TargetID       *string
	Reason         *string
	StopType       StopType
}

func (ControlStop) Type() MessageType { return TypeControlStop }

func (m ControlStop) ToFields() Fields {
	return Fields{
		"conversationId": String(m.ConversationID), "targetId": optStr(m.TargetID),
		"reason": optStr(m.Reason), "stopType": String(m.StopType.Wire()),
	}
}

func controlStopFromFields(f Fields) (Body, error) {
	var m ControlStop
	var err error
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.TargetID, err = f.OptString("targetId"); err != nil {
		return nil, err
	}
	if m.Reason, err = f.OptString("reason"); err != nil {
		return nil, err
	}
	m.StopType = OptEnumLenient(f, "stopType", stopTypeFromWire, StopGeneration)
	return m, nil
}

// ---- ControlVariation (11) ----

type ControlVariation struct {
	ConversationID string
	TargetID       string
	Mode           VariationType
	NewContent     *string
}

func (ControlVariation) Type() MessageType { return TypeControlVariation }

func (m ControlVariation) ToFields() Fields {
	return Fields{
		"conversationId": String(m.ConversationID), "targetId": String(m.TargetID),
		"mode": String(m.Mode.Wire()), "newContent": optStr(m.NewContent),
	}
}

func controlVariationFromFields(f Fields) (Body, error) {
	var m ControlVariation
	var err error
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.TargetID, err = f.RequireString("targetId"); err != nil {
		return nil, err
	}
	if m.Mode, err = RequireEnumStrict(f, "mode", variationTypeFromWire); err != nil {
		return nil, err
	}
	if m.NewContent, err = f.OptString("newContent"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- Configuration (12) ----

type Configuration struct {
	ConversationID    *string
	LastSequenceSeen  *int32
	ClientVersion     *string
	PreferredLanguage *string
	Device            *string
	Features          []string
}

func (Configuration) Type() MessageType { return TypeConfiguration }

func (m Configuration) ToFields() Fields {
	return Fields{
		"conversationId": optStr(m.ConversationID), "lastSequenceSeen": optI32(m.LastSequenceSeen),
		"clientVersion": optStr(m.ClientVersion), "preferredLanguage": optStr(m.PreferredLanguage),
		"device": optStr(m.Device), "features": strList(m.Features),
	}
}

func configurationFromFields(f Fields) (Body, error) {
	var m Configuration
	var err error
	if m.ConversationID, err = f.OptString("conversationId"); err != nil {
		return nil, err
	}
	if m.LastSequenceSeen, err = f.OptInt32("lastSequenceSeen"); err != nil {
		return nil, err
	}
	if m.ClientVersion, err = f.OptString("clientVersion"); err != nil {
		return nil, err
	}
	if m.PreferredLanguage, err = f.OptString("preferredLanguage"); err != nil {
		return nil, err
	}
	if m.Device, err = f.OptString("device"); err != nil {
		return nil, err
	}
	if m.Features, err = f.OptStringList("features"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- StartAnswer (13) ----

type StartAnswer struct {
	ID                   string
	PreviousID           string
	ConversationID       string
	AnswerType           AnswerType
	PlannedSentenceCount *int32
}

func (StartAnswer) Type() MessageType { return TypeStartAnswer }

func (m StartAnswer) ToFields() Fields {
	return Fields{
		"id": String(m.ID), "previousId": String(m.PreviousID),
		"conversationId": String(m.ConversationID), "answerType": String(m.AnswerType.Wire()),
		"plannedSentenceCount": optI32(m.PlannedSentenceCount),
	}
}

func startAnswerFromFields(f Fields) (Body, error) {
	var m StartAnswer
	var err error
	if m.ID, err = f.RequireString("id"); err != nil {
		return nil, err
	}
	if m.PreviousID, err = f.RequireString("previousId"); err != nil {
		return nil, err
	}
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	m.AnswerType = OptEnumLenient(f, "answerType", answerTypeFromWire, AnswerText)
	if m.PlannedSentenceCount, err = f.OptInt32("plannedSentenceCount"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- MemoryTrace (14) ----

type MemoryTrace struct {
	ID             string
	MessageID      string
	ConversationID string
	MemoryID       string
	Content        string
	Relevance      float32
}

func (MemoryTrace) Type() MessageType { return TypeMemoryTrace }

func (m MemoryTrace) ToFields() Fields {
	return Fields{
		"id": String(m.ID), "messageId": String(m.MessageID), "conversationId": String(m.ConversationID),
		"memoryId": String(m.MemoryID), "content": String(m.Content), "relevance": Float64(float64(m.Relevance)),
	}
}

func memoryTraceFromFields(f Fields) (Body, error) {
	var m MemoryTrace
	var err error
	if m.ID, err = f.RequireString("id"); err != nil {
		return nil, err
	}
	if m.MessageID, err = f.RequireString("messageId"); err != nil {
		return nil, err
	}
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.MemoryID, err = f.RequireString("memoryId"); err != nil {
		return nil, err
	}
	if m.Content, err = f.RequireString("content"); err != nil {
		return nil, err
	}
	if m.Relevance, err = f.RequireFloat32("relevance"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- Commentary (15) ----

type Commentary struct {
	ID              string
	MessageID       string
	ConversationID  string
	Content         string
	CommentaryType  *string
}

func (Commentary) Type() MessageType { return TypeCommentary }

func (m Commentary) ToFields() Fields {
	return Fields{
		"id": String(m.ID), "messageId": String(m.MessageID), "conversationId": String(m.ConversationID),
		"content": String(m.Content), "commentaryType": optStr(m.CommentaryType),
	}
}

func commentaryFromFields(f Fields) (Body, error) {
	var m Commentary
	var err error
	if m.ID, err = f.RequireString("id"); err != nil {
		return nil, err
	}
	if m.MessageID, err = f.RequireString("messageId"); err != nil {
		return nil, err
	}
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.Content, err = f.RequireString("content"); err != nil {
		return nil, err
	}
	if m.CommentaryType, err = f.OptString("commentaryType"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- AssistantSentence (16) ----

type AssistantSentence struct {
	ID             *string
	PreviousID     string
	ConversationID string
	Sequence       int32
	Text           string
	IsFinal        *bool
	Audio          []byte
}

func (AssistantSentence) Type() MessageType { return TypeAssistantSentence }

func (m AssistantSentence) ToFields() Fields {
	audio := Nil()
	if m.Audio != nil {
		audio = Binary(m.Audio)
	}
	return Fields{
		"id": optStr(m.ID), "previousId": String(m.PreviousID),
		"conversationId": String(m.ConversationID), "sequence": Int64(int64(m.Sequence)),
		"text": String(m.Text), "isFinal": optBool(m.IsFinal), "audio": audio,
	}
}

func assistantSentenceFromFields(f Fields) (Body, error) {
	var m AssistantSentence
	var err error
	if m.ID, err = f.OptString("id"); err != nil {
		return nil, err
	}
	if m.PreviousID, err = f.RequireString("previousId"); err != nil {
		return nil, err
	}
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.Sequence, err = f.RequireInt32("sequence"); err != nil {
		return nil, err
	}
	if m.Text, err = f.RequireString("text"); err != nil {
		return nil, err
	}
	isFinal, err := f.OptBool("isFinal")
	if err != nil {
		return nil, err
	}
	if v, present := f.get("isFinal"); present && !v.IsNil() {
		m.IsFinal = &isFinal
	}
	if m.Audio, err = f.OptBytes("audio"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- SyncRequest (17) / SyncResponse (18) ----

type SyncRequest struct {
	ConversationID string
	SinceSequence  *int32
}

func (SyncRequest) Type() MessageType { return TypeSyncRequest }

func (m SyncRequest) ToFields() Fields {
	return Fields{"conversationId": String(m.ConversationID), "sinceSequence": optI32(m.SinceSequence)}
}

func syncRequestFromFields(f Fields) (Body, error) {
	var m SyncRequest
	var err error
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.SinceSequence, err = f.OptInt32("sinceSequence"); err != nil {
		return nil, err
	}
	return m, nil
}

type SyncResponse struct {
	ConversationID string
	Messages       []Value
	LastSequence   int32
}

func (SyncResponse) Type() MessageType { return TypeSyncResponse }

func (m SyncResponse) ToFields() Fields {
	msgs := Nil()
	if m.Messages != nil {
		msgs = List(m.Messages)
	}
	return Fields{
		"conversationId": String(m.ConversationID), "messages": msgs,
		"lastSequence": Int64(int64(m.LastSequence)),
	}
}

func syncResponseFromFields(f Fields) (Body, error) {
	var m SyncResponse
	var err error
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	v, ok := f.get("messages")
	if !ok || v.IsNil() {
		return nil, newDecodeErr(ErrMissingRequiredField, "messages", "required list field absent")
	}
	list, ok := v.List()
	if !ok {
		return nil, newDecodeErr(ErrFieldTypeMismatch, "messages", "expected list")
	}
	m.Messages = list
	if m.LastSequence, err = f.RequireInt32("lastSequence"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- Feedback family (20-25) ----

type Feedback struct {
	ID             string
	ConversationID string
	MessageID      string
	TargetType     string
	TargetID       *string
	Vote           string
	QuickFeedback  *string
	Note           *string
	Timestamp      int64
}

func (Feedback) Type() MessageType { return TypeFeedback }

func (m Feedback) ToFields() Fields {
	return Fields{
		"id": String(m.ID), "conversationId": String(m.ConversationID), "messageId": String(m.MessageID),
		"targetType": String(m.TargetType), "targetId": optStr(m.TargetID), "vote": String(m.Vote),
		"quickFeedback": optStr(m.QuickFeedback), "note": optStr(m.Note), "timestamp": Int64(m.Timestamp),
	}
}

func feedbackFromFields(f Fields) (Body, error) {
	var m Feedback
	var err error
	if m.ID, err = f.RequireString("id"); err != nil {
		return nil, err
	}
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.MessageID, err = f.RequireString("messageId"); err != nil {
		return nil, err
	}
	if m.TargetType, err = f.RequireString("targetType"); err != nil {
		return nil, err
	}
	if m.TargetID, err = f.OptString("targetId"); err != nil {
		return nil, err
	}
	if m.Vote, err = f.RequireString("vote"); err != nil {
		return nil, err
	}
	if m.QuickFeedback, err = f.OptString("quickFeedback"); err != nil {
		return nil, err
	}
	if m.Note, err = f.OptString("note"); err != nil {
		return nil, err
	}
	if m.Timestamp, err = f.RequireInt64("timestamp"); err != nil {
		return nil, err
	}
	return m, nil
}

type FeedbackConfirmation struct {
	ConversationID string
	TargetID       string
	Upvotes        int32
	Downvotes      int32
	SpecialVotes   map[string]int32
}

func (FeedbackConfirmation) Type() MessageType { return TypeFeedbackConfirmation }

func (m FeedbackConfirmation) ToFields() Fields {
	sv := Nil()
	if m.SpecialVotes != nil {
		vm := make(map[string]Value, len(m.SpecialVotes))
		for k, v := range m.SpecialVotes {
			vm[k] = Int64(int64(v))
		}
		sv = Map(vm)
	}
	return Fields{
		"conversationId": String(m.ConversationID), "targetId": String(m.TargetID),
		"upvotes": Int64(int64(m.Upvotes)), "downvotes": Int64(int64(m.Downvotes)), "specialVotes": sv,
	}
}

func feedbackConfirmationFromFields(f Fields) (Body, error) {
	var m FeedbackConfirmation
	var err error
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.TargetID, err = f.RequireString("targetId"); err != nil {
		return nil, err
	}
	if m.Upvotes, err = f.RequireInt32("upvotes"); err != nil {
		return nil, err
	}
	if m.Downvotes, err = f.RequireInt32("downvotes"); err != nil {
		return nil, err
	}
	sv, err := f.OptMap("specialVotes")
	if err != nil {
		return nil, err
	}
	if sv != nil {
		m.SpecialVotes = make(map[string]int32, len(sv))
		for k, v := range sv {
			i, ok := v.Int64()
			if !ok {
				return nil, newDecodeErr(ErrFieldTypeMismatch, "specialVotes", "expected int values")
			}
			n, err := narrowInt32("specialVotes", i)
			if err != nil {
				return nil, err
			}
			m.SpecialVotes[k] = n
		}
	}
	return m, nil
}

type UserNote struct {
	ID             string
	ConversationID string
	Content        string
	Category       NoteCategory
	Timestamp      int64
}

func (UserNote) Type() MessageType { return TypeUserNote }

func (m UserNote) ToFields() Fields {
	return Fields{
		"id": String(m.ID), "conversationId": String(m.ConversationID), "content": String(m.Content),
		"category": String(m.Category.Wire()), "timestamp": Int64(m.Timestamp),
	}
}

func userNoteFromFields(f Fields) (Body, error) {
	var m UserNote
	var err error
	if m.ID, err = f.RequireString("id"); err != nil {
		return nil, err
	}
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.Content, err = f.RequireString("content"); err != nil {
		return nil, err
	}
	m.Category = OptEnumLenient(f, "category", noteCategoryFromWire, NoteCategoryGeneral)
	if m.Timestamp, err = f.RequireInt64("timestamp"); err != nil {
		return nil, err
	}
	return m, nil
}

type NoteConfirmation struct {
	ID             string
	ConversationID string
	NoteID         string
	Success        bool
}

func (NoteConfirmation) Type() MessageType { return TypeNoteConfirmation }

func (m NoteConfirmation) ToFields() Fields {
	return Fields{
		"id": String(m.ID), "conversationId": String(m.ConversationID),
		"noteId": String(m.NoteID), "success": Bool(m.Success),
	}
}

func noteConfirmationFromFields(f Fields) (Body, error) {
	var m NoteConfirmation
	var err error
	if m.ID, err = f.RequireString("id"); err != nil {
		return nil, err
	}
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.NoteID, err = f.RequireString("noteId"); err != nil {
		return nil, err
	}
	if m.Success, err = f.RequireBool("success"); err != nil {
		return nil, err
	}
	return m, nil
}

type MemoryActionPayload struct {
	Content  string
	Category MemoryCategory
	Pinned   *bool
}

type MemoryAction struct {
	ID        string
	Action    MemoryActionKind
	Memory    *MemoryActionPayload
	Timestamp int64
}

func (MemoryAction) Type() MessageType { return TypeMemoryAction }

func (m MemoryAction) ToFields() Fields {
	mem := Nil()
	if m.Memory != nil {
		mem = Map(map[string]Value{
			"content": String(m.Memory.Content), "category": String(m.Memory.Category.Wire()),
			"pinned": optBool(m.Memory.Pinned),
		})
	}
	return Fields{
		"id": String(m.ID), "action": String(m.Action.Wire()), "memory": mem,
		"timestamp": Int64(m.Timestamp),
	}
}

func memoryActionFromFields(f Fields) (Body, error) {
	var m MemoryAction
	var err error
	if m.ID, err = f.RequireString("id"); err != nil {
		return nil, err
	}
	m.Action, err = RequireEnumStrict(f, "action", func(s string) (MemoryActionKind, bool) {
		return memoryActionKindFromWire(s), true
	})
	if err != nil {
		return nil, err
	}
	memMap, err := f.OptMap("memory")
	if err != nil {
		return nil, err
	}
	if memMap != nil {
		mf := Fields(memMap)
		content, err := mf.RequireString("content")
		if err != nil {
			return nil, err
		}
		category := OptEnumLenient(mf, "category", memoryCategoryFromWire, MemoryCategoryPreference)
		pinned, err := mf.OptBool("pinned")
		if err != nil {
			return nil, err
		}
		var pinnedPtr *bool
		if _, present := mf.get("pinned"); present {
			pinnedPtr = &pinned
		}
		m.Memory = &MemoryActionPayload{Content: content, Category: category, Pinned: pinnedPtr}
	}
	if m.Timestamp, err = f.RequireInt64("timestamp"); err != nil {
		return nil, err
	}
	return m, nil
}

type MemoryConfirmation struct {
	ID             string
	ConversationID string
	MemoryID       *string
	Action         string
	Success        bool
}

func (MemoryConfirmation) Type() MessageType { return TypeMemoryConfirmation }

func (m MemoryConfirmation) ToFields() Fields {
	return Fields{
		"id": String(m.ID), "conversationId": String(m.ConversationID),
		"memoryId": optStr(m.MemoryID), "action": String(m.Action), "success": Bool(m.Success),
	}
}

func memoryConfirmationFromFields(f Fields) (Body, error) {
	var m MemoryConfirmation
	var err error
	if m.ID, err = f.RequireString("id"); err != nil {
		return nil, err
	}
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.MemoryID, err = f.OptString("memoryId"); err != nil {
		return nil, err
	}
	if m.Action, err = f.RequireString("action"); err != nil {
		return nil, err
	}
	if m.Success, err = f.RequireBool("success"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- ServerInfo (26) ----

type ServerConnectionInfo struct {
	Status  ConnectionStatus
	Latency int64
}

type ServerModelInfo struct {
	Name     string
	Provider string
}

type MCPServerInfo struct {
	Name   string
	Status MCPServerStatus
}

type ServerInfo struct {
	Connection ServerConnectionInfo
	Model      ServerModelInfo
	MCPServers []MCPServerInfo
}

func (ServerInfo) Type() MessageType { return TypeServerInfo }

func (m ServerInfo) ToFields() Fields {
	servers := make([]Value, len(m.MCPServers))
	for i, s := range m.MCPServers {
		servers[i] = Map(map[string]Value{"name": String(s.Name), "status": String(s.Status.Wire())})
	}
	return Fields{
		"connection": Map(map[string]Value{
			"status": String(m.Connection.Status.Wire()), "latency": Int64(m.Connection.Latency),
		}),
		"model": Map(map[string]Value{"name": String(m.Model.Name), "provider": String(m.Model.Provider)}),
		"mcpServers": List(servers),
	}
}

func serverInfoFromFields(f Fields) (Body, error) {
	var m ServerInfo
	connMap, err := f.RequireMap("connection")
	if err != nil {
		return nil, err
	}
	cf := Fields(connMap)
	m.Connection.Status = OptEnumLenient(cf, "status", connectionStatusFromWire, ConnStatusDisconnected)
	if m.Connection.Latency, err = cf.RequireInt64("latency"); err != nil {
		return nil, err
	}
	modelMap, err := f.RequireMap("model")
	if err != nil {
		return nil, err
	}
	mf := Fields(modelMap)
	if m.Model.Name, err = mf.RequireString("name"); err != nil {
		return nil, err
	}
	if m.Model.Provider, err = mf.RequireString("provider"); err != nil {
		return nil, err
	}
	v, ok := f.get("mcpServers")
	if !ok || v.IsNil() {
		return nil, newDecodeErr(ErrMissingRequiredField, "mcpServers", "required list field absent")
	}
	list, ok := v.List()
	if !ok {
		return nil, newDecodeErr(ErrFieldTypeMismatch, "mcpServers", "expected list")
	}
	m.MCPServers = make([]MCPServerInfo, len(list))
	for i, e := range list {
		em, ok := e.Map()
		if !ok {
			return nil, newDecodeErr(ErrFieldTypeMismatch, "mcpServers", "expected list of maps")
		}
		ef := Fields(em)
		name, err := ef.RequireString("name")
		if err != nil {
			return nil, err
		}
		status := OptEnumLenient(ef, "status", mcpServerStatusFromWire, MCPStatusDisconnected)
		m.MCPServers[i] = MCPServerInfo{Name: name, Status: status}
	}
	return m, nil
}

// ---- SessionStats (27) ----

type SessionStats struct {
	MessageCount    int32
	ToolCallCount   int32
	MemoriesUsed    int32
	SessionDuration int32
}

func (SessionStats) Type() MessageType { return TypeSessionStats }

func (m SessionStats) ToFields() Fields {
	return Fields{
		"messageCount": Int64(int64(m.MessageCount)), "toolCallCount": Int64(int64(m.ToolCallCount)),
		"memoriesUsed": Int64(int64(m.MemoriesUsed)), "sessionDuration": Int64(int64(m.SessionDuration)),
	}
}

func sessionStatsFromFields(f Fields) (Body, error) {
	var m SessionStats
	var err error
	if m.MessageCount, err = f.RequireInt32("messageCount"); err != nil {
		return nil, err
	}
	if m.ToolCallCount, err = f.RequireInt32("toolCallCount"); err != nil {
		return nil, err
	}
	if m.MemoriesUsed, err = f.RequireInt32("memoriesUsed"); err != nil {
		return nil, err
	}
	if m.SessionDuration, err = f.RequireInt32("sessionDuration"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- ConversationUpdate (28) ----

type ConversationUpdate struct {
	ConversationID string
	Title          *string
	Archived       *bool
	Timestamp      int64
}

func (ConversationUpdate) Type() MessageType { return TypeConversationUpdate }

func (m ConversationUpdate) ToFields() Fields {
	return Fields{
		"conversationId": String(m.ConversationID), "title": optStr(m.Title),
		"archived": optBool(m.Archived), "timestamp": Int64(m.Timestamp),
	}
}

func conversationUpdateFromFields(f Fields) (Body, error) {
	var m ConversationUpdate
	var err error
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.Title, err = f.OptString("title"); err != nil {
		return nil, err
	}
	archived, err := f.OptBool("archived")
	if err != nil {
		return nil, err
	}
	if v, present := f.get("archived"); present && !v.IsNil() {
		m.Archived = &archived
	}
	if m.Timestamp, err = f.RequireInt64("timestamp"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- DimensionPreference (30) ----

type DimensionWeights struct {
	SuccessRate    float32
	Quality        float32
	Efficiency     float32
	Robustness     float32
	Generalization float32
	Diversity      float32
	Innovation     float32
}

func (w DimensionWeights) toValue() Value {
	return Map(map[string]Value{
		"successRate": Float64(float64(w.SuccessRate)), "quality": Float64(float64(w.Quality)),
		"efficiency": Float64(float64(w.Efficiency)), "robustness": Float64(float64(w.Robustness)),
		"generalization": Float64(float64(w.Generalization)), "diversity": Float64(float64(w.Diversity)),
		"innovation": Float64(float64(w.Innovation)),
	})
}

func dimensionWeightsFromMap(m map[string]Value) (DimensionWeights, error) {
	var w DimensionWeights
	f := Fields(m)
	var err error
	if w.SuccessRate, err = f.RequireFloat32("successRate"); err != nil {
		return w, err
	}
	if w.Quality, err = f.RequireFloat32("quality"); err != nil {
		return w, err
	}
	if w.Efficiency, err = f.RequireFloat32("efficiency"); err != nil {
		return w, err
	}
	if w.Robustness, err = f.RequireFloat32("robustness"); err != nil {
		return w, err
	}
	if w.Generalization, err = f.RequireFloat32("generalization"); err != nil {
		return w, err
	}
	if w.Diversity, err = f.RequireFloat32("diversity"); err != nil {
		return w, err
	}
	if w.Innovation, err = f.RequireFloat32("innovation"); err != nil {
		return w, err
	}
	return w, nil
}

type DimensionPreference struct {
	ConversationID string
	Weights        DimensionWeights
	Preset         *string
	Timestamp      int64
}

func (DimensionPreference) Type() MessageType { return TypeDimensionPreference }

func (m DimensionPreference) ToFields() Fields {
	return Fields{
		"conversationId": String(m.ConversationID), "weights": m.Weights.toValue(),
		"preset": optStr(m.Preset), "timestamp": Int64(m.Timestamp),
	}
}

func dimensionPreferenceFromFields(f Fields) (Body, error) {
	var m DimensionPreference
	var err error
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	wm, err := f.RequireMap("weights")
	if err != nil {
		return nil, err
	}
	if m.Weights, err = dimensionWeightsFromMap(wm); err != nil {
		return nil, err
	}
	if m.Preset, err = f.OptString("preset"); err != nil {
		return nil, err
	}
	if m.Timestamp, err = f.RequireInt64("timestamp"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- EliteOptions (31) ----

type EliteScores struct {
	SuccessRate, Quality, Efficiency, Robustness, Generalization, Diversity, Innovation float32
}

func (s EliteScores) toValue() Value {
	return Map(map[string]Value{
		"successRate": Float64(float64(s.SuccessRate)), "quality": Float64(float64(s.Quality)),
		"efficiency": Float64(float64(s.Efficiency)), "robustness": Float64(float64(s.Robustness)),
		"generalization": Float64(float64(s.Generalization)), "diversity": Float64(float64(s.Diversity)),
		"innovation": Float64(float64(s.Innovation)),
	})
}

func eliteScoresFromMap(m map[string]Value) (EliteScores, error) {
	w, err := dimensionWeightsFromMap(m)
	return EliteScores(w), err
}

type Elite struct {
	ID          string
	Label       string
	Scores      EliteScores
	Description string
	BestFor     string
}

type EliteOptions struct {
	ConversationID string
	Elites         []Elite
	CurrentEliteID string
	Timestamp      int64
}

func (EliteOptions) Type() MessageType { return TypeEliteOptions }

func (m EliteOptions) ToFields() Fields {
	elites := make([]Value, len(m.Elites))
	for i, e := range m.Elites {
		elites[i] = Map(map[string]Value{
			"id": String(e.ID), "label": String(e.Label), "scores": e.Scores.toValue(),
			"description": String(e.Description), "bestFor": String(e.BestFor),
		})
	}
	return Fields{
		"conversationId": String(m.ConversationID), "elites": List(elites),
		"currentEliteId": String(m.CurrentEliteID), "timestamp": Int64(m.Timestamp),
	}
}

func eliteOptionsFromFields(f Fields) (Body, error) {
	var m EliteOptions
	var err error
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	v, ok := f.get("elites")
	if !ok || v.IsNil() {
		return nil, newDecodeErr(ErrMissingRequiredField, "elites", "required list field absent")
	}
	list, ok := v.List()
	if !ok {
		return nil, newDecodeErr(ErrFieldTypeMismatch, "elites", "expected list")
	}
	m.Elites = make([]Elite, len(list))
	for i, e := range list {
		em, ok := e.Map()
		if !ok {
			return nil, newDecodeErr(ErrFieldTypeMismatch, "elites", "expected list of maps")
		}
		ef := Fields(em)
		var elite Elite
		if elite.ID, err = ef.RequireString("id"); err != nil {
			return nil, err
		}
		if elite.Label, err = ef.RequireString("label"); err != nil {
			return nil, err
		}
		sm, err := ef.RequireMap("scores")
		if err != nil {
			return nil, err
		}
		if elite.Scores, err = eliteScoresFromMap(sm); err != nil {
			return nil, err
		}
		if elite.Description, err = ef.RequireString("description"); err != nil {
			return nil, err
		}
		if elite.BestFor, err = ef.RequireString("bestFor"); err != nil {
			return nil, err
		}
		m.Elites[i] = elite
	}
	if m.CurrentEliteID, err = f.RequireString("currentEliteId"); err != nil {
		return nil, err
	}
	if m.Timestamp, err = f.RequireInt64("timestamp"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- OptimizationProgress (32) ----

type OptimizationProgress struct {
	RunID           string
	Status          string
	Iteration       int32
	MaxIterations   int32
	CurrentScore    float32
	BestScore       float32
	DimensionScores map[string]float32
	Message         *string
	Timestamp       int64
}

func (OptimizationProgress) Type() MessageType { return TypeOptimizationProgress }

func (m OptimizationProgress) ToFields() Fields {
	ds := Nil()
	if m.DimensionScores != nil {
		dm := make(map[string]Value, len(m.DimensionScores))
		for k, v := range m.DimensionScores {
			dm[k] = Float64(float64(v))
		}
		ds = Map(dm)
	}
	return Fields{
		"runId": String(m.RunID), "status": String(m.Status), "iteration": Int64(int64(m.Iteration)),
		"maxIterations": Int64(int64(m.MaxIterations)), "currentScore": Float64(float64(m.CurrentScore)),
		"bestScore": Float64(float64(m.BestScore)), "dimensionScores": ds,
		"message": optStr(m.Message), "timestamp": Int64(m.Timestamp),
	}
}

func optimizationProgressFromFields(f Fields) (Body, error) {
	var m OptimizationProgress
	var err error
	if m.RunID, err = f.RequireString("runId"); err != nil {
		return nil, err
	}
	if m.Status, err = f.RequireString("status"); err != nil {
		return nil, err
	}
	if m.Iteration, err = f.RequireInt32("iteration"); err != nil {
		return nil, err
	}
	if m.MaxIterations, err = f.RequireInt32("maxIterations"); err != nil {
		return nil, err
	}
	if m.CurrentScore, err = f.RequireFloat32("currentScore"); err != nil {
		return nil, err
	}
	if m.BestScore, err = f.RequireFloat32("bestScore"); err != nil {
		return nil, err
	}
	dsMap, err := f.OptMap("dimensionScores")
	if err != nil {
		return nil, err
	}
	if dsMap != nil {
		m.DimensionScores = make(map[string]float32, len(dsMap))
		for k, v := range dsMap {
			fl, ok := floatOf(v)
			if !ok {
				return nil, newDecodeErr(ErrFieldTypeMismatch, "dimensionScores", "expected float values")
			}
			m.DimensionScores[k] = float32(fl)
		}
	}
	if m.Message, err = f.OptString("message"); err != nil {
		return nil, err
	}
	if m.Timestamp, err = f.RequireInt64("timestamp"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- EliteSelect (33) ----

type EliteSelect struct {
	ConversationID string
	EliteID        string
	Timestamp      int64
}

func (EliteSelect) Type() MessageType { return TypeEliteSelect }

func (m EliteSelect) ToFields() Fields {
	return Fields{
		"conversationId": String(m.ConversationID), "eliteId": String(m.EliteID),
		"timestamp": Int64(m.Timestamp),
	}
}

func eliteSelectFromFields(f Fields) (Body, error) {
	var m EliteSelect
	var err error
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.EliteID, err = f.RequireString("eliteId"); err != nil {
		return nil, err
	}
	if m.Timestamp, err = f.RequireInt64("timestamp"); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- Subscribe (40) / Unsubscribe (41) / SubscribeAck (42) / UnsubscribeAck (43) ----

type Subscribe struct {
	ConversationID string
	FromSequence   *int32
}

func (Subscribe) Type() MessageType { return TypeSubscribe }

func (m Subscribe) ToFields() Fields {
	return Fields{"conversationId": String(m.ConversationID), "fromSequence": optI32(m.FromSequence)}
}

func subscribeFromFields(f Fields) (Body, error) {
	var m Subscribe
	var err error
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.FromSequence, err = f.OptInt32("fromSequence"); err != nil {
		return nil, err
	}
	return m, nil
}

type Unsubscribe struct {
	ConversationID string
}

func (Unsubscribe) Type() MessageType { return TypeUnsubscribe }

func (m Unsubscribe) ToFields() Fields {
	return Fields{"conversationId": String(m.ConversationID)}
}

func unsubscribeFromFields(f Fields) (Body, error) {
	var m Unsubscribe
	var err error
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	return m, nil
}

type SubscribeAck struct {
	ConversationID string
	Success        bool
	MissedMessages *int32
	Error          *string
}

func (SubscribeAck) Type() MessageType { return TypeSubscribeAck }

func (m SubscribeAck) ToFields() Fields {
	return Fields{
		"conversationId": String(m.ConversationID), "success": Bool(m.Success),
		"missedMessages": optI32(m.MissedMessages), "error": optStr(m.Error),
	}
}

func subscribeAckFromFields(f Fields) (Body, error) {
	var m SubscribeAck
	var err error
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.Success, err = f.RequireBool("success"); err != nil {
		return nil, err
	}
	if m.MissedMessages, err = f.OptInt32("missedMessages"); err != nil {
		return nil, err
	}
	if m.Error, err = f.OptString("error"); err != nil {
		return nil, err
	}
	return m, nil
}

type UnsubscribeAck struct {
	ConversationID string
	Success        bool
}

func (UnsubscribeAck) Type() MessageType { return TypeUnsubscribeAck }

func (m UnsubscribeAck) ToFields() Fields {
	return Fields{"conversationId": String(m.ConversationID), "success": Bool(m.Success)}
}

func unsubscribeAckFromFields(f Fields) (Body, error) {
	var m UnsubscribeAck
	var err error
	if m.ConversationID, err = f.RequireString("conversationId"); err != nil {
		return nil, err
	}
	if m.Success, err = f.RequireBool("success"); err != nil {
		return nil, err
	}
	return m, nil
}
