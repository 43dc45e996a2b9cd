package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventDispatchStart EventType = "dispatch_start"
	EventDispatchEnd   EventType = "dispatch_end"
	EventStepStart     EventType = "step_start"
	EventStepEnd       EventType = "step_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	DispatchID string    `json:"dispatch_id"`
}

// DispatchEvent marks the start or the end of a processed line.
type DispatchEvent struct {
	EventBase
	Line   string          `json:"line"`
	Report *DispatchReport `json:"report,omitempty"` // only on EventDispatchEnd
}

// StepEvent marks the start or the end of one step.
type StepEvent struct {
	EventBase
	Index  int        `json:"index"`
	Result StepResult `json:"result"`
}

// ProcessedEvent is delivered to listeners once a line has been fully processed.
type ProcessedEvent struct {
	DispatchID string    `json:"dispatch_id"`
	Line       string    `json:"line"`
	Timestamp  time.Time `json:"timestamp"`
}

// LifecycleHooks defines callbacks for dispatcher observability.
type LifecycleHooks struct {
	OnDispatchStart func(context.Context, *DispatchEvent)
	OnDispatchEnd   func(context.Context, *DispatchEvent)
	OnStepStart     func(context.Context, *StepEvent)
	OnStepEnd       func(context.Context, *StepEvent)
}
