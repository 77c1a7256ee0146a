package session

import "fmt"

// ErrNoActiveConversation reports that no current conversation has been
// established. The Controller's operations take the conversation ID from
// the caller and do not check it against a current conversation, so none of
// them returns or emits this error.
type ErrNoActiveConversation struct{}

func (ErrNoActiveConversation) Error() string {
	return "session: no active conversation"
}

// ErrEditFollowUpTimeout is delivered when a VariationEdit was started but
// no follow-up content arrived within the edit-follow-up timeout.
type ErrEditFollowUpTimeout struct {
	TargetID string
}

func (e *ErrEditFollowUpTimeout) Error() string {
	return fmt.Sprintf("session: edit follow-up timed out for %s", e.TargetID)
}
