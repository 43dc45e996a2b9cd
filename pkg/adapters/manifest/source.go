package manifest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/ports"
	"github.com/fsnotify/fsnotify"
)

// debounce groups the burst of events editors emit for a single save.
const debounce = 100 * time.Millisecond

// Source implements ports.RegistrySource and ports.Watchable over a manifest file.
type Source struct {
	path    string
	builder ports.CommandBuilder
	logger  *slog.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithLogger sets the logger used by Watch.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// NewSource creates a source reading path and building commands with builder.
func NewSource(path string, builder ports.CommandBuilder, opts ...Option) *Source {
	s := &Source{
		path:    path,
		builder: builder,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the manifest and builds its catalog.
func (s *Source) Load(ctx context.Context) (domain.Catalog, error) {
	m, err := ParseFile(s.path)
	if err != nil {
		return domain.Catalog{}, err
	}

	var catalog domain.Catalog
	for _, c := range m.Commands {
		if c.ID == "" {
			return domain.Catalog{}, fmt.Errorf("%w: command without id", domain.ErrInvalidDescriptor)
		}
		kind := c.Kind
		if kind == "" {
			kind = c.ID
		}
		factory, err := s.builder.Build(c.ID, kind, c.Config)
		if err != nil {
			return domain.Catalog{}, err
		}
		catalog.Commands = append(catalog.Commands, domain.CommandDescriptor{
			ID:          c.ID,
			Description: c.Description,
			Details:     c.Details,
			Factory:     factory,
		})
	}
	for _, f := range m.Flows {
		catalog.Flows = append(catalog.Flows, domain.FlowDescriptor{Name: f.Name, Steps: f.Steps})
	}
	return catalog, nil
}

// Watch signals every change of the manifest file until ctx is done.
// The parent directory is watched so that editors replacing the file are seen.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	abs, err := filepath.Abs(s.path)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer watcher.Close()

		var timer <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					timer = time.After(debounce)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("Manifest watcher error", "err", err)
			case <-timer:
				timer = nil
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ch, nil
}
