package session

import "fmt"

// State is one stage of the VoiceController's lifecycle.
type State uint8

const (
	Idle State = iota
	ListeningForWakeWord
	Activated
	Listening
	Processing
	Speaking
	Connecting
	Disconnected
	Error
)

func (s State) String() string {
	switch s {
	case ListeningForWakeWord:
		return "ListeningForWakeWord"
	case Activated:
		return "Activated"
	case Listening:
		return "Listening"
	case Processing:
		return "Processing"
	case Speaking:
		return "Speaking"
	case Connecting:
		return "Connecting"
	case Disconnected:
		return "Disconnected"
	case Error:
		return "Error"
	default:
		return "Idle"
	}
}

// allowedTransitions enumerates every legal State -> State edge. A request
// to move to a state not listed here for the current state is an
// IllegalStateTransition.
var allowedTransitions = map[State]map[State]bool{
	Idle: {
		ListeningForWakeWord: true, Connecting: true,
	},
	ListeningForWakeWord: {
		Activated: true, Disconnected: true, Error: true,
	},
	Activated: {
		Listening: true, ListeningForWakeWord: true, Disconnected: true, Error: true,
	},
	Listening: {
		Processing: true, ListeningForWakeWord: true, Disconnected: true, Error: true,
	},
	Processing: {
		Speaking: true, ListeningForWakeWord: true, Listening: true, Disconnected: true, Error: true,
	},
	Speaking: {
		ListeningForWakeWord: true, Listening: true, Processing: true, Disconnected: true, Error: true,
	},
	Connecting: {
		ListeningForWakeWord: true, Disconnected: true, Error: true,
	},
	Disconnected: {
		Connecting: true, Error: true,
	},
	Error: {
		Connecting: true, Idle: true,
	},
}

// ErrIllegalStateTransition is returned when the session is asked to move
// to a state that is not reachable from its current one.
type ErrIllegalStateTransition struct {
	From, To State
}

func (e *ErrIllegalStateTransition) Error() string {
	return fmt.Sprintf("session: illegal state transition %s -> %s", e.From, e.To)
}

func canTransition(from, to State) bool {
	if from == to {
		return true
	}
	edges, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return edges[to]
}
