// Package registry holds the commands and flows available to the dispatcher.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/ports"
)

// ErrNotWatchable is returned by Watch when the source cannot signal changes.
var ErrNotWatchable = errors.New("registry source is not watchable")

// maxSuggestDistance bounds the edit distance of "did you mean" suggestions.
const maxSuggestDistance = 2

// Registry manages the available commands and flows.
type Registry struct {
	source   ports.RegistrySource
	logger   *slog.Logger
	onReload func(error)

	mu       sync.RWMutex
	commands map[string]domain.CommandDescriptor
	flows    map[string]domain.FlowDescriptor
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for load warnings and watch errors.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithReloadHook registers a callback invoked after every reload triggered by Watch.
// err is nil when the reload succeeded.
func WithReloadHook(fn func(err error)) Option {
	return func(r *Registry) {
		r.onReload = fn
	}
}

// New creates an empty registry backed by source. Call Load to populate it.
func New(source ports.RegistrySource, opts ...Option) *Registry {
	r := &Registry{
		source:   source,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		commands: make(map[string]domain.CommandDescriptor),
		flows:    make(map[string]domain.FlowDescriptor),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load replaces the contents of the registry with the catalog of the source.
// On error the previous contents are kept.
func (r *Registry) Load(ctx context.Context) error {
	catalog, err := r.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load registry source: %w", err)
	}

	commands := make(map[string]domain.CommandDescriptor, len(catalog.Commands))
	for _, c := range catalog.Commands {
		if c.ID == "" || c.Factory == nil {
			return fmt.Errorf("%w: id=%q", domain.ErrInvalidDescriptor, c.ID)
		}
		if _, dup := commands[c.ID]; dup {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateCommand, c.ID)
		}
		commands[c.ID] = c
	}

	flows := make(map[string]domain.FlowDescriptor, len(catalog.Flows))
	for _, f := range catalog.Flows {
		if f.Name == "" {
			return fmt.Errorf("%w: flow without name", domain.ErrInvalidDescriptor)
		}
		if _, dup := flows[f.Name]; dup {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateFlow, f.Name)
		}
		if _, shadowed := commands[f.Name]; shadowed {
			r.logger.Warn("Flow shadows command with the same name", "name", f.Name)
		}
		f.Steps = append([]string(nil), f.Steps...)
		flows[f.Name] = f
	}

	r.mu.Lock()
	r.commands = commands
	r.flows = flows
	r.mu.Unlock()

	r.logger.Debug("Registry loaded", "commands", len(commands), "flows", len(flows))
	return nil
}

// CreateCommand returns a new instance of the command with its options configured.
func (r *Registry) CreateCommand(id string) (domain.Command, bool) {
	r.mu.RLock()
	desc, ok := r.commands[id]
	r.mu.RUnlock()

	if !ok {
		return nil, false
	}
	cmd := desc.Factory()
	if cmd == nil {
		return nil, false
	}
	cmd.ConfigureOptions()
	return cmd, true
}

// Describe returns the description of a command.
func (r *Registry) Describe(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.commands[id]
	if !ok {
		return "", false
	}
	return desc.Description, true
}

// ListCommandIDs returns the sorted ids of all commands.
func (r *Registry) ListCommandIDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.commands))
	for id := range r.commands {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// ListFlows returns a copy of the flows keyed by name.
func (r *Registry) ListFlows() map[string]domain.FlowDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]domain.FlowDescriptor, len(r.flows))
	for name, f := range r.flows {
		f.Steps = append([]string(nil), f.Steps...)
		out[name] = f
	}
	return out
}

// Flow looks up a flow by name.
func (r *Registry) Flow(name string) (domain.FlowDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.flows[name]
	if ok {
		f.Steps = append([]string(nil), f.Steps...)
	}
	return f, ok
}

// Suggest returns the known command id or flow name closest to id, or "" if
// none is close enough.
func (r *Registry) Suggest(id string) string {
	r.mu.RLock()
	names := make([]string, 0, len(r.commands)+len(r.flows))
	for name := range r.commands {
		names = append(names, name)
	}
	for name := range r.flows {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)

	best, bestDist := "", maxSuggestDistance+1
	for _, name := range names {
		if d := levenshtein.ComputeDistance(id, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// Watch reloads the registry every time the source signals a change, until ctx is done.
// Reload failures are logged and leave the previous contents active.
func (r *Registry) Watch(ctx context.Context) error {
	w, ok := r.source.(ports.Watchable)
	if !ok {
		return ErrNotWatchable
	}
	ch, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch registry source: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				err := r.Load(ctx)
				if err != nil {
					r.logger.Error("Registry reload failed", "err", err)
				} else {
					r.logger.Info("Registry reloaded")
				}
				if r.onReload != nil {
					r.onReload(err)
				}
			}
		}
	}()
	return nil
}

// IsFlow reports whether name is a registered flow.
func (r *Registry) IsFlow(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.flows[name]
	return ok
}

// Details returns the extended help of a command.
func (r *Registry) Details(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.commands[id]
	if !ok {
		return "", false
	}
	return desc.Details, true
}
