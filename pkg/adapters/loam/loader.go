package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/ports"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository of markdown documents to ports.RegistrySource.
// The document body becomes the extended help of the command.
type Loader struct {
	Repo    *loam.TypedRepository[CommandMetadata]
	builder ports.CommandBuilder
}

// New creates a new Loam adapter building commands with builder.
func New(repo *loam.TypedRepository[CommandMetadata], builder ports.CommandBuilder) *Loader {
	return &Loader{
		Repo:    repo,
		builder: builder,
	}
}

// Load lists every document of the repository and builds the catalog.
func (l *Loader) Load(ctx context.Context) (domain.Catalog, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	var catalog domain.Catalog
	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return domain.Catalog{}, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		if len(doc.Data.Steps) > 0 {
			catalog.Flows = append(catalog.Flows, domain.FlowDescriptor{Name: id, Steps: doc.Data.Steps})
			continue
		}

		kind := doc.Data.Kind
		if kind == "" {
			kind = id
		}
		factory, err := l.builder.Build(id, kind, doc.Data.Config)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("document %s: %w", doc.ID, err)
		}
		// Listed documents carry metadata only; the body needs a direct read.
		full, err := l.Repo.Get(ctx, doc.ID)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("loam get failed for %s: %w", doc.ID, err)
		}
		catalog.Commands = append(catalog.Commands, domain.CommandDescriptor{
			ID:          id,
			Description: doc.Data.Description,
			Details:     strings.TrimSpace(full.Content),
			Factory:     factory,
		})
	}

	sort.Slice(catalog.Commands, func(i, j int) bool { return catalog.Commands[i].ID < catalog.Commands[j].ID })
	sort.Slice(catalog.Flows, func(i, j int) bool { return catalog.Flows[i].Name < catalog.Flows[j].Name })
	return catalog, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan struct{}, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan struct{}, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()

	return ch, nil
}
