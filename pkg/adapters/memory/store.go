package memory

import (
	"context"
	"sync"

	"github.com/aretw0/clic/pkg/domain"
)

// Journal implements ports.Journal in memory, keeping at most max records.
// Safe for concurrent use.
type Journal struct {
	mu     sync.RWMutex
	max    int
	events []domain.ProcessedEvent
}

// NewJournal creates a journal. max <= 0 keeps every record.
func NewJournal(max int) *Journal {
	return &Journal{max: max}
}

// Append records a processed line, dropping the oldest record past the bound.
func (j *Journal) Append(ctx context.Context, ev domain.ProcessedEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, ev)
	if j.max > 0 && len(j.events) > j.max {
		j.events = append([]domain.ProcessedEvent(nil), j.events[len(j.events)-j.max:]...)
	}
	return nil
}

// Recent returns up to n records, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]domain.ProcessedEvent, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if n <= 0 || n > len(j.events) {
		n = len(j.events)
	}
	out := make([]domain.ProcessedEvent, 0, n)
	for i := len(j.events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, j.events[i])
	}
	return out, nil
}
