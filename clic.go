package clic

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/clic/internal/runtime"
	loamAdapter "github.com/aretw0/clic/pkg/adapters/loam"
	"github.com/aretw0/clic/pkg/adapters/manifest"
	"github.com/aretw0/clic/pkg/adapters/memory"
	"github.com/aretw0/clic/pkg/adapters/process"
	"github.com/aretw0/clic/pkg/commands"
	"github.com/aretw0/clic/pkg/completion"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/history"
	"github.com/aretw0/clic/pkg/ports"
	"github.com/aretw0/clic/pkg/registry"
	"github.com/aretw0/loam"
)

// Engine is the high-level entry point for the clic library.
// It wires a command registry, the dispatcher, the autocomplete engine and
// a history log behind a single API.
type Engine struct {
	registry   *registry.Registry
	dispatcher *runtime.Dispatcher
	completion *completion.Engine
	history    *history.Log
	kinds      *commands.Table

	sources      []ports.RegistrySource
	manifestPath string
	catalogPath  string
	noBuiltins   bool
	extraKinds   map[string]commands.Builder
	extraCmds    []domain.CommandDescriptor
	extraFlows   []domain.FlowDescriptor
	listeners    []ports.Listener
	journal      ports.Journal
	hooks        domain.LifecycleHooks
	runner       *process.Runner
	historySize  int
	onReload     func(error)
	logger       *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithListener registers a listener notified after every processed line.
func WithListener(l ports.Listener) Option {
	return func(e *Engine) {
		e.listeners = append(e.listeners, l)
	}
}

// WithSource adds a custom catalog source.
func WithSource(s ports.RegistrySource) Option {
	return func(e *Engine) {
		e.sources = append(e.sources, s)
	}
}

// WithManifest loads commands and flows from a YAML, TOML or JSON manifest.
func WithManifest(path string) Option {
	return func(e *Engine) {
		e.manifestPath = path
	}
}

// WithCatalog loads commands and flows from a Loam repository of markdown documents.
func WithCatalog(dir string) Option {
	return func(e *Engine) {
		e.catalogPath = dir
	}
}

// WithCommand registers a command programmatically.
func WithCommand(desc domain.CommandDescriptor) Option {
	return func(e *Engine) {
		e.extraCmds = append(e.extraCmds, desc)
	}
}

// WithFlow registers a flow programmatically.
func WithFlow(name string, steps ...string) Option {
	return func(e *Engine) {
		e.extraFlows = append(e.extraFlows, domain.FlowDescriptor{Name: name, Steps: steps})
	}
}

// WithKind makes a command kind available to manifests and catalogs.
func WithKind(kind string, b commands.Builder) Option {
	return func(e *Engine) {
		if e.extraKinds == nil {
			e.extraKinds = make(map[string]commands.Builder)
		}
		e.extraKinds[kind] = b
	}
}

// WithProcessRunner sets the runner used by exec commands.
func WithProcessRunner(r *process.Runner) Option {
	return func(e *Engine) {
		e.runner = r
	}
}

// WithHistorySize sets the capacity of the history log (default history.DefaultSize).
func WithHistorySize(n int) Option {
	return func(e *Engine) {
		e.historySize = n
	}
}

// WithReloadHook registers a callback run after every reload triggered by Watch.
func WithReloadHook(fn func(err error)) Option {
	return func(e *Engine) {
		e.onReload = fn
	}
}

// WithJournal records every processed line in j and adds the journal command
// listing the most recent ones.
func WithJournal(j ports.Journal) Option {
	return func(e *Engine) {
		e.journal = j
	}
}

// WithoutBuiltins leaves the help, list, flows, hello and echo commands out of the registry.
func WithoutBuiltins() Option {
	return func(e *Engine) {
		e.noBuiltins = true
	}
}

// New initializes a new Engine and loads its catalog.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	eng := &Engine{historySize: history.DefaultSize}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Sources are added after the registry exists, since help and list
	// describe the registry they live in.
	builtins := memory.NewSource()
	sources := registry.Merge(builtins)

	regOpts := []registry.Option{registry.WithLogger(eng.logger)}
	if eng.onReload != nil {
		regOpts = append(regOpts, registry.WithReloadHook(eng.onReload))
	}
	eng.registry = registry.New(sources, regOpts...)
	eng.kinds = commands.NewTable(eng.registry, eng.runner)
	for kind, b := range eng.extraKinds {
		eng.kinds.Register(kind, b)
	}

	if !eng.noBuiltins {
		for _, d := range commands.Builtins(eng.registry) {
			builtins.AddCommand(d)
		}
	}
	if eng.journal != nil {
		builtins.AddCommand(commands.Journal(eng.journal))
		eng.listeners = append(eng.listeners, ports.JournalListener(eng.journal))
	}
	for _, d := range eng.extraCmds {
		builtins.AddCommand(d)
	}
	for _, f := range eng.extraFlows {
		builtins.AddFlow(f.Name, f.Steps...)
	}

	if eng.manifestPath != "" {
		sources.Add(manifest.NewSource(eng.manifestPath, eng.kinds, manifest.WithLogger(eng.logger)))
	}
	if eng.catalogPath != "" {
		src, err := openCatalog(eng.catalogPath, eng.kinds)
		if err != nil {
			return nil, err
		}
		sources.Add(src)
	}
	for _, s := range eng.sources {
		sources.Add(s)
	}

	if err := eng.registry.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load commands: %w", err)
	}

	dispatcherOpts := []runtime.Option{
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	}
	for _, l := range eng.listeners {
		dispatcherOpts = append(dispatcherOpts, runtime.WithListener(l))
	}
	eng.dispatcher = runtime.NewDispatcher(eng.registry, dispatcherOpts...)
	eng.completion = completion.New(eng.registry)
	eng.history = history.New(eng.historySize)

	return eng, nil
}

func openCatalog(dir string, builder ports.CommandBuilder) (*loamAdapter.Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	// Strict mode keeps numbers as json.Number across formats. The catalog is
	// never written, so Loam runs read-only.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	typedRepo := loam.NewTypedRepository[loamAdapter.CommandMetadata](repo)
	return loamAdapter.New(typedRepo, builder), nil
}

// NewContext creates an execution context writing to sink.
func (e *Engine) NewContext(sink domain.Sink) *domain.ExecutionContext {
	return domain.NewExecutionContext(sink)
}

// Process interprets one input line. See runtime.Dispatcher.Process.
func (e *Engine) Process(ctx context.Context, line string, ec *domain.ExecutionContext) (*domain.DispatchReport, error) {
	return e.dispatcher.Process(ctx, line, ec)
}

// Submit interprets a line in the background.
func (e *Engine) Submit(ctx context.Context, line string, ec *domain.ExecutionContext) *runtime.Job {
	return e.dispatcher.Submit(ctx, line, ec)
}

// AddListener registers a listener after construction.
func (e *Engine) AddListener(l ports.Listener) {
	e.dispatcher.AddListener(l)
}

// Complete returns line with the token under cursor completed.
func (e *Engine) Complete(line string, cursor int) string {
	return e.completion.Complete(line, cursor)
}

// CompleteWithCursor completes line and returns the cursor moved past the completion.
func (e *Engine) CompleteWithCursor(line string, cursor int) (string, int) {
	return e.completion.CompleteWithCursor(line, cursor)
}

// Candidates lists the names matching the token under cursor.
func (e *Engine) Candidates(line string, cursor int) []string {
	return e.completion.Candidates(line, cursor)
}

// History returns the engine history log.
func (e *Engine) History() *history.Log {
	return e.history
}

// Registry returns the command registry.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Completion returns the autocomplete engine.
func (e *Engine) Completion() *completion.Engine {
	return e.completion
}

// Kinds returns the command kind table used by manifests and catalogs.
func (e *Engine) Kinds() *commands.Table {
	return e.kinds
}

// Reload reloads every source. On error the previous catalog stays in place.
func (e *Engine) Reload(ctx context.Context) error {
	return e.registry.Load(ctx)
}

// Watch reloads the catalog whenever a watchable source changes, until ctx is done.
func (e *Engine) Watch(ctx context.Context) error {
	return e.registry.Watch(ctx)
}
