package domain

import (
	"context"
	"fmt"
	"maps"
	"sync"
)

// Sink receives the human-readable output of commands and of the dispatcher.
type Sink interface {
	Write(line string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(line string)

// Write calls f(line).
func (f SinkFunc) Write(line string) { f(line) }

type discardSink struct{}

func (discardSink) Write(string) {}

// ExecutionContext is the per-invocation state handed to commands.
// The zero value is ready to use and discards output.
//
// The outputs pool is cleared once at the start of every top-level dispatch and
// is only appended to afterwards, so later steps of a flow see the outputs of
// the earlier ones in the order they were produced.
type ExecutionContext struct {
	sink Sink

	mu      sync.Mutex
	outputs []string
	scope   map[string]any
	current any

	// guard serializes dispatches that share this context.
	guardOnce sync.Once
	guard     chan struct{}
}

// NewExecutionContext creates a context writing to sink. A nil sink discards output.
func NewExecutionContext(sink Sink) *ExecutionContext {
	if sink == nil {
		sink = discardSink{}
	}
	return &ExecutionContext{
		sink:  sink,
		scope: make(map[string]any),
	}
}

// Write sends one line to the sink.
func (c *ExecutionContext) Write(line string) {
	c.Sink().Write(line)
}

// Sink returns the output sink of the context.
func (c *ExecutionContext) Sink() Sink {
	if c.sink == nil {
		return discardSink{}
	}
	return c.sink
}

// AppendOutput adds values to the outputs pool.
func (c *ExecutionContext) AppendOutput(values ...string) {
	c.mu.Lock()
	c.outputs = append(c.outputs, values...)
	c.mu.Unlock()
}

// Outputs returns a snapshot of the outputs pool.
func (c *ExecutionContext) Outputs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.outputs))
	copy(out, c.outputs)
	return out
}

// ResetOutputs empties the outputs pool.
func (c *ExecutionContext) ResetOutputs() {
	c.mu.Lock()
	c.outputs = nil
	c.mu.Unlock()
}

// Get reads a value from the ambient scope.
func (c *ExecutionContext) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.scope[key]
	return v, ok
}

// Set stores a value in the ambient scope.
func (c *ExecutionContext) Set(key string, value any) {
	c.mu.Lock()
	if c.scope == nil {
		c.scope = make(map[string]any)
	}
	c.scope[key] = value
	c.mu.Unlock()
}

// Scope returns a copy of the ambient scope.
func (c *ExecutionContext) Scope() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.scope)
}

// CurrentObject returns the object commands currently operate on, if any.
func (c *ExecutionContext) CurrentObject() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// SetCurrentObject replaces the current object.
func (c *ExecutionContext) SetCurrentObject(v any) {
	c.mu.Lock()
	c.current = v
	c.mu.Unlock()
}

// Clone returns a new context sharing the sink, with a copy of the scope,
// the same current object and an empty outputs pool.
func (c *ExecutionContext) Clone() *ExecutionContext {
	clone := NewExecutionContext(c.sink)
	c.mu.Lock()
	maps.Copy(clone.scope, c.scope)
	clone.current = c.current
	c.mu.Unlock()
	return clone
}

// Acquire reserves the context for one dispatch. It blocks while another
// dispatch holds the context and gives up when ctx is done. A ctx that is
// already done never acquires.
func (c *ExecutionContext) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	guard := c.slot()
	select {
	case guard <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrContextBusy, ctx.Err())
	}
}

// Release frees the context reserved by Acquire.
func (c *ExecutionContext) Release() {
	select {
	case <-c.slot():
	default:
	}
}

func (c *ExecutionContext) slot() chan struct{} {
	c.guardOnce.Do(func() {
		c.guard = make(chan struct{}, 1)
	})
	return c.guard
}
