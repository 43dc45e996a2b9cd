package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/clic/pkg/domain"
)

// Source implements ports.RegistrySource (and ports.Watchable) over an
// in-memory catalog. Safe for concurrent use.
type Source struct {
	mu       sync.RWMutex
	catalog  domain.Catalog
	watchers []chan struct{}
}

// NewSource creates a source serving the given commands and no flows.
func NewSource(commands ...domain.CommandDescriptor) *Source {
	return &Source{catalog: domain.Catalog{Commands: commands}}
}

// NewFromCatalog creates a source serving catalog.
func NewFromCatalog(catalog domain.Catalog) *Source {
	return &Source{catalog: catalog}
}

// AddCommand appends a command to the catalog.
func (s *Source) AddCommand(desc domain.CommandDescriptor) *Source {
	s.mu.Lock()
	s.catalog.Commands = append(s.catalog.Commands, desc)
	s.mu.Unlock()
	return s
}

// AddFlow appends a flow to the catalog.
func (s *Source) AddFlow(name string, steps ...string) *Source {
	s.mu.Lock()
	s.catalog.Flows = append(s.catalog.Flows, domain.FlowDescriptor{Name: name, Steps: steps})
	s.mu.Unlock()
	return s
}

// Replace swaps the whole catalog and signals watchers.
func (s *Source) Replace(catalog domain.Catalog) {
	s.mu.Lock()
	s.catalog = catalog
	watchers := append([]chan struct{}(nil), s.watchers...)
	s.mu.Unlock()

	for _, w := range watchers {
		select {
		case w <- struct{}{}:
		default:
		}
	}
}

// Load returns a copy of the current catalog.
func (s *Source) Load(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domain.Catalog{}, fmt.Errorf("memory source: %w", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Catalog{
		Commands: append([]domain.CommandDescriptor(nil), s.catalog.Commands...),
		Flows:    append([]domain.FlowDescriptor(nil), s.catalog.Flows...),
	}, nil
}

// Watch returns a channel signaled on every Replace.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		for i, w := range s.watchers {
			if w == ch {
				s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}()
	return ch, nil
}
