package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skylarkvoice/client/protocol"
)

func sentence(seq int32, text string, final bool) protocol.AssistantSentence {
	return protocol.AssistantSentence{Sequence: seq, Text: text, IsFinal: &final}
}

func TestAssemblerDeliversInOrderWhenChunksArriveInOrder(t *testing.T) {
	a := newAssembler("msg_1")
	out := a.Feed(sentence(0, "Hello", false))
	assert.Equal(t, []protocol.AssistantSentence{sentence(0, "Hello", false)}, out)

	out = a.Feed(sentence(1, "world", true))
	assert.Equal(t, []protocol.AssistantSentence{sentence(1, "world", true)}, out)
	assert.True(t, a.Done())
}

func TestAssemblerReordersOutOfOrderChunks(t *testing.T) {
	a := newAssembler("msg_1")

	out := a.Feed(sentence(1, "world", false))
	assert.Empty(t, out, "sequence 1 should be held until 0 arrives")

	out = a.Feed(sentence(2, "!", true))
	assert.Empty(t, out, "sequence 2 should still be held")

	out = a.Feed(sentence(0, "Hello", false))
	assert.Equal(t, []protocol.AssistantSentence{
		sentence(0, "Hello", false),
		sentence(1, "world", false),
		sentence(2, "!", true),
	}, out)
	assert.True(t, a.Done())
}

func TestAssemblerStopsAfterFinal(t *testing.T) {
	a := newAssembler("msg_1")
	a.Feed(sentence(0, "done", true))
	assert.True(t, a.Done())
	out := a.Feed(sentence(1, "late straggler", false))
	assert.Empty(t, out, "sentences after the final chunk must not be delivered")
}
