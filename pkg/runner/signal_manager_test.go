package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalManager_Lifecycle(t *testing.T) {
	sm := NewSignalManager(context.Background())
	defer sm.Stop()

	ctx1 := sm.Context()
	require.NotNil(t, ctx1)
	assert.NoError(t, ctx1.Err())

	sm.Reset()
	ctx2 := sm.Context()
	assert.NotEqual(t, ctx1, ctx2, "Reset should arm a new context")
	assert.ErrorIs(t, ctx1.Err(), context.Canceled, "Reset should release the previous context")
	assert.NoError(t, ctx2.Err())
	assert.Zero(t, sm.Interrupts(), "a live context is not an interrupt")

	sm.Stop()
	assert.ErrorIs(t, ctx2.Err(), context.Canceled)
}

func TestSignalManager_FollowsParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	sm := NewSignalManager(parent)
	defer sm.Stop()

	cancel()
	assert.ErrorIs(t, sm.Context().Err(), context.Canceled)

	sm.Reset()
	assert.Zero(t, sm.Interrupts(), "parent cancellation is not an interrupt")
}

func TestSignalManager_CheckRace(t *testing.T) {
	sm := NewSignalManager(context.Background(), WithRaceWindow(50*time.Millisecond))
	defer sm.Stop()

	start := time.Now()
	sm.CheckRace()
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, time.Second, "CheckRace took too long")

	sm.Stop()
	start = time.Now()
	sm.CheckRace()
	assert.Less(t, time.Since(start), 50*time.Millisecond, "a cancelled context returns at once")
}
