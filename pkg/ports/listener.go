package ports

import (
	"context"

	"github.com/aretw0/clic/pkg/domain"
)

// Listener is notified once a line has been fully processed.
type Listener interface {
	OnProcessed(ctx context.Context, ev domain.ProcessedEvent) error
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ctx context.Context, ev domain.ProcessedEvent) error

// OnProcessed calls f(ctx, ev).
func (f ListenerFunc) OnProcessed(ctx context.Context, ev domain.ProcessedEvent) error {
	return f(ctx, ev)
}

// Journal keeps a record of processed lines.
type Journal interface {
	// Append records a processed line.
	Append(ctx context.Context, ev domain.ProcessedEvent) error
	// Recent returns up to n records, newest first. n <= 0 returns all.
	Recent(ctx context.Context, n int) ([]domain.ProcessedEvent, error)
}

// JournalListener returns a Listener that appends every processed line to j.
func JournalListener(j Journal) Listener {
	return ListenerFunc(func(ctx context.Context, ev domain.ProcessedEvent) error {
		return j.Append(ctx, ev)
	})
}
