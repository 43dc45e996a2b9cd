package runner

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// DefaultRaceWindow is how long CheckRace waits for a signal to follow an input error.
const DefaultRaceWindow = 100 * time.Millisecond

// SignalManager turns OS signals into context cancellation for one REPL session.
// Each armed context is cancelled by the first signal received; Reset re-arms it
// so a signal can interrupt a single dispatch without ending the session.
type SignalManager struct {
	mu         sync.Mutex
	parent     context.Context
	signals    []os.Signal
	raceWindow time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
	interrupts int
}

// SignalOption configures a SignalManager.
type SignalOption func(*SignalManager)

// WithSignals replaces the default SIGINT and SIGTERM set.
func WithSignals(sigs ...os.Signal) SignalOption {
	return func(sm *SignalManager) {
		sm.signals = sigs
	}
}

// WithRaceWindow sets how long CheckRace waits.
func WithRaceWindow(d time.Duration) SignalOption {
	return func(sm *SignalManager) {
		sm.raceWindow = d
	}
}

// NewSignalManager creates a manager derived from parent and arms it.
func NewSignalManager(parent context.Context, opts ...SignalOption) *SignalManager {
	if parent == nil {
		parent = context.Background()
	}
	sm := &SignalManager{
		parent:     parent,
		signals:    []os.Signal{os.Interrupt, syscall.SIGTERM},
		raceWindow: DefaultRaceWindow,
	}
	for _, opt := range opts {
		opt(sm)
	}
	sm.Reset()
	return sm
}

// Context returns the currently armed context.
func (sm *SignalManager) Context() context.Context {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.ctx
}

// Reset re-arms the listener. If the previous context was cancelled while the
// parent is still live, the cancellation is counted as an interrupt.
func (sm *SignalManager) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.ctx != nil && sm.ctx.Err() != nil && sm.parent.Err() == nil {
		sm.interrupts++
	}
	if sm.cancel != nil {
		sm.cancel()
	}
	sm.ctx, sm.cancel = signal.NotifyContext(sm.parent, sm.signals...)
}

// Interrupts returns how many armed contexts were cancelled by a signal so far.
func (sm *SignalManager) Interrupts() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.interrupts
}

// Stop releases the listener for good.
func (sm *SignalManager) Stop() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.cancel != nil {
		sm.cancel()
	}
}

// CheckRace waits up to the race window for the armed context to be cancelled.
// On Windows, Ctrl+C surfaces as an input error slightly before the signal.
func (sm *SignalManager) CheckRace() {
	ctx := sm.Context()
	if ctx.Err() != nil {
		return
	}
	timer := time.NewTimer(sm.raceWindow)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
