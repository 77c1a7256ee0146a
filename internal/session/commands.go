package session

import "github.com/skylarkvoice/client/protocol"

type command interface{ isCommand() }

type cmdConnect struct{}

// cmdLinkConnected is enqueued once the MediaLink reports a successful
// Connect or Reconnect, always from off the owning goroutine — it is what
// lets the connect/reconnect goroutines trigger Configuration issuance
// without touching session state directly.
type cmdLinkConnected struct{}

type cmdStartListening struct{}
type cmdStopListening struct{}

type cmdSendUserMessage struct {
	conversationID string
	text           string
}

type cmdControlStop struct {
	conversationID string
	targetID       *string
	reason         *string
	stopType       protocol.StopType
}

type cmdControlVariation struct {
	conversationID string
	targetID       string
	mode           protocol.VariationType
	newContent     *string
}

type cmdSubscribe struct {
	conversationID string
	fromSequence   *int32
}

type cmdUnsubscribe struct {
	conversationID string
}

type cmdToolUseResult struct {
	conversationID string
	result         protocol.ToolUseResult
}

type cmdSetDimensionPreference struct {
	conversationID string
	weights        protocol.DimensionWeights
	preset         *string
}

func (cmdConnect) isCommand()                {}
func (cmdLinkConnected) isCommand()           {}
func (cmdStartListening) isCommand()          {}
func (cmdStopListening) isCommand()           {}
func (cmdSendUserMessage) isCommand()         {}
func (cmdControlStop) isCommand()             {}
func (cmdControlVariation) isCommand()        {}
func (cmdSubscribe) isCommand()               {}
func (cmdUnsubscribe) isCommand()             {}
func (cmdToolUseResult) isCommand()           {}
func (cmdSetDimensionPreference) isCommand()  {}
