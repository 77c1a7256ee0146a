package session

import "github.com/skylarkvoice/client/protocol"

// assembler reorders AssistantSentence chunks for one answer by their
// sequence field, since chunks may arrive out of order (a sentence requiring
// an extra generation pass can finish after a later one). It emits sentences
// to the caller strictly in sequence order, holding later-arriving ones back
// until every lower-numbered sequence has been delivered.
type assembler struct {
	messageID string
	nextSeq   int32
	pending   map[int32]protocol.AssistantSentence
	done      bool
}

func newAssembler(messageID string) *assembler {
	return &assembler{messageID: messageID, pending: make(map[int32]protocol.AssistantSentence)}
}

// Feed admits one chunk and returns the run of now-deliverable sentences in
// order, which may be empty if s arrived ahead of its turn.
func (a *assembler) Feed(s protocol.AssistantSentence) []protocol.AssistantSentence {
	if a.done {
		return nil
	}
	a.pending[s.Sequence] = s

	var out []protocol.AssistantSentence
	for {
		next, ok := a.pending[a.nextSeq]
		if !ok {
			break
		}
		delete(a.pending, a.nextSeq)
		out = append(out, next)
		a.nextSeq++
		if next.IsFinal != nil && *next.IsFinal {
			a.done = true
			break
		}
	}
	return out
}

// Done reports whether the final in-order sentence has been delivered.
func (a *assembler) Done() bool { return a.done }
