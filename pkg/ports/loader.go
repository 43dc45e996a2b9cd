package ports

import (
	"context"

	"github.com/aretw0/clic/pkg/domain"
)

// RegistrySource defines where the registry gets its commands and flows from.
// Every call returns the full catalog; the registry replaces its contents with it.
type RegistrySource interface {
	Load(ctx context.Context) (domain.Catalog, error)
}

// Watchable defines an interface for sources that can notify about backend changes.
// This is typically used for hot-reload of the command catalog.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying catalog changes.
	// It abstracts away the specific event details, signaling only that a reload is required.
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Catalog is the read side of the command registry, as needed by autocomplete.
type Catalog interface {
	ListCommandIDs() []string
	ListFlows() map[string]domain.FlowDescriptor
	CreateCommand(id string) (domain.Command, bool)
}

// CommandBuilder turns a declared command kind and its configuration into a factory.
// Declarative sources (manifests, document catalogs) use it to instantiate commands.
type CommandBuilder interface {
	Build(id, kind string, config map[string]any) (domain.Factory, error)
}
