package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeLifecycle(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Subscribe("conv_1"))

	state, ok := m.State("conv_1")
	require.True(t, ok)
	assert.Equal(t, Pending, state)

	m.Confirm("conv_1", true, 4, "")
	state, ok = m.State("conv_1")
	require.True(t, ok)
	assert.Equal(t, Active, state)
	assert.EqualValues(t, 4, m.MissedMessages("conv_1"))
}

func TestExactlyOneSubscribeInvariant(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Subscribe("conv_1"))
	err := m.Subscribe("conv_1")
	require.Error(t, err)
	var already *ErrAlreadySubscribed
	assert.ErrorAs(t, err, &already)
}

func TestRejectedSubscriptionMayBeRetried(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Subscribe("conv_1"))
	m.Confirm("conv_1", false, 0, "conversation not found")
	assert.Equal(t, "conversation not found", m.RejectReason("conv_1"))

	require.NoError(t, m.Subscribe("conv_1"))
	state, _ := m.State("conv_1")
	assert.Equal(t, Pending, state)
}

func TestUnsubscribeRemovesTracking(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Subscribe("conv_1"))
	m.Confirm("conv_1", true, 0, "")
	m.Unsubscribe("conv_1")
	_, ok := m.State("conv_1")
	assert.False(t, ok)
}
