package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/ports"
)

// Merged combines several sources into one.
type Merged struct {
	mu      sync.RWMutex
	sources []ports.RegistrySource
}

// Merge combines sources into one. Catalogs are concatenated in order, so a
// command id defined by two sources makes Load fail as a duplicate.
// The merged source is watchable; it signals when any watchable member does.
func Merge(sources ...ports.RegistrySource) *Merged {
	return &Merged{sources: sources}
}

// Add appends a source. It is seen by the next Load.
func (m *Merged) Add(s ports.RegistrySource) {
	m.mu.Lock()
	m.sources = append(m.sources, s)
	m.mu.Unlock()
}

func (m *Merged) list() []ports.RegistrySource {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]ports.RegistrySource(nil), m.sources...)
}

// Load concatenates the catalogs of every source.
func (m *Merged) Load(ctx context.Context) (domain.Catalog, error) {
	var out domain.Catalog
	for i, s := range m.list() {
		c, err := s.Load(ctx)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("source %d: %w", i, err)
		}
		out.Commands = append(out.Commands, c.Commands...)
		out.Flows = append(out.Flows, c.Flows...)
	}
	return out, nil
}

// Watch fans in the signals of the watchable sources present when it is called.
func (m *Merged) Watch(ctx context.Context) (<-chan struct{}, error) {
	watchCtx, cancel := context.WithCancel(ctx)
	var inputs []<-chan struct{}
	for i, s := range m.list() {
		w, ok := s.(ports.Watchable)
		if !ok {
			continue
		}
		ch, err := w.Watch(watchCtx)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		inputs = append(inputs, ch)
	}

	out := make(chan struct{}, 1)
	var wg sync.WaitGroup
	for _, in := range inputs {
		wg.Add(1)
		go func(in <-chan struct{}) {
			defer wg.Done()
			for {
				select {
				case <-watchCtx.Done():
					return
				case _, ok := <-in:
					if !ok {
						return
					}
					select {
					case out <- struct{}{}:
					default:
					}
				}
			}
		}(in)
	}
	go func() {
		wg.Wait()
		cancel()
		close(out)
	}()
	return out, nil
}
