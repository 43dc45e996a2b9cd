package commands

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/clic/pkg/adapters/process"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// ErrUnknownKind is returned when a manifest references a kind missing from the table.
var ErrUnknownKind = errors.New("unknown command kind")

// Builder creates the factory of a command declared as id with the given configuration.
type Builder func(id string, config map[string]any) (domain.Factory, error)

// Table maps command kinds to builders.
type Table struct {
	mu     sync.RWMutex
	kinds  map[string]Builder
	runner *process.Runner
}

// NewTable creates a table with the builtin kinds: help, list, flows, hello, echo and exec.
// Programs declared by exec commands are registered in runner.
func NewTable(catalog Catalog, runner *process.Runner) *Table {
	if runner == nil {
		runner = process.NewRunner()
	}
	t := &Table{kinds: make(map[string]Builder), runner: runner}

	t.Register("help", fixed(helpFactory(catalog)))
	t.Register("list", fixed(listFactory(catalog)))
	t.Register("flows", fixed(flowsFactory(catalog)))
	t.Register("hello", func(id string, config map[string]any) (domain.Factory, error) {
		var cfg helloConfig
		if err := decode(config, &cfg); err != nil {
			return nil, err
		}
		return helloFactory(cfg), nil
	})
	t.Register("echo", func(id string, config map[string]any) (domain.Factory, error) {
		var cfg echoConfig
		if err := decode(config, &cfg); err != nil {
			return nil, err
		}
		return echoFactory(cfg), nil
	})
	t.Register("exec", t.buildExec)
	return t
}

// Register adds or replaces a kind.
func (t *Table) Register(kind string, b Builder) {
	t.mu.Lock()
	t.kinds[kind] = b
	t.mu.Unlock()
}

// Kinds returns the sorted kind names.
func (t *Table) Kinds() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	kinds := make([]string, 0, len(t.kinds))
	for k := range t.kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Build creates the factory for a command of the given kind.
func (t *Table) Build(id, kind string, config map[string]any) (domain.Factory, error) {
	t.mu.RLock()
	b, ok := t.kinds[kind]
	t.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (command %s)", ErrUnknownKind, kind, id)
	}
	f, err := b(id, config)
	if err != nil {
		return nil, fmt.Errorf("invalid config for command %s: %w", id, err)
	}
	return f, nil
}

func (t *Table) buildExec(id string, config map[string]any) (domain.Factory, error) {
	var cfg process.Config
	if err := decode(config, &cfg); err != nil {
		return nil, err
	}
	if cfg.Command == "" {
		return nil, errors.New("exec: missing command")
	}
	// each exec command owns the allow-list entry named after its id
	cfg.Name = id
	t.runner.Register(cfg)
	return execFactory(t.runner, id), nil
}

func fixed(f domain.Factory) Builder {
	return func(string, map[string]any) (domain.Factory, error) {
		return f, nil
	}
}

func decode(input map[string]any, out any) error {
	if input == nil {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
