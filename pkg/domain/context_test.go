package domain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/clic/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutionContext_Outputs(t *testing.T) {
	ec := domain.NewExecutionContext(nil)
	ec.AppendOutput("a", "b")
	ec.AppendOutput("c")

	out := ec.Outputs()
	assert.Equal(t, []string{"a", "b", "c"}, out)

	// snapshot is detached from the pool
	out[0] = "x"
	assert.Equal(t, "a", ec.Outputs()[0])

	ec.ResetOutputs()
	assert.Empty(t, ec.Outputs())
}

func TestExecutionContext_Clone(t *testing.T) {
	var lines []string
	ec := domain.NewExecutionContext(domain.SinkFunc(func(l string) { lines = append(lines, l) }))
	ec.Set("user", "ana")
	ec.SetCurrentObject(42)
	ec.AppendOutput("out")

	clone := ec.Clone()
	v, ok := clone.Get("user")
	require.True(t, ok)
	assert.Equal(t, "ana", v)
	assert.Equal(t, 42, clone.CurrentObject())
	assert.Empty(t, clone.Outputs())

	clone.Set("user", "bia")
	v, _ = ec.Get("user")
	assert.Equal(t, "ana", v, "scope must be copied, not shared")

	clone.Write("hello")
	assert.Equal(t, []string{"hello"}, lines, "sink is shared")
}

func TestExecutionContext_AcquireBlocksUntilRelease(t *testing.T) {
	ec := domain.NewExecutionContext(nil)
	require.NoError(t, ec.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := ec.Acquire(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrContextBusy))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	ec.Release()
	require.NoError(t, ec.Acquire(context.Background()))
	ec.Release()
}

func TestExecutionContext_AcquireWithDoneContext(t *testing.T) {
	ec := domain.NewExecutionContext(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 50; i++ {
		err := ec.Acquire(ctx)
		require.ErrorIs(t, err, context.Canceled, "attempt %d", i)
	}
	require.NoError(t, ec.Acquire(context.Background()), "the guard stays free")
	ec.Release()
}

func TestExecutionContext_ZeroValue(t *testing.T) {
	var ec domain.ExecutionContext

	ec.Write("dropped")
	ec.Set("k", "v")
	v, ok := ec.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, ec.Acquire(ctx))
	ec.Release()
	require.NoError(t, ec.Acquire(ctx))
	ec.Release()
}

func TestFlowDescriptor_String(t *testing.T) {
	f := domain.FlowDescriptor{Name: "deploy", Steps: []string{"build", "push"}}
	assert.Equal(t, "deploy: [build, push]", f.String())
}
