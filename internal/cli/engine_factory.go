package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/clic"
	"github.com/aretw0/clic/pkg/adapters/memory"
	"github.com/aretw0/clic/pkg/adapters/redis"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/observability"
	"github.com/aretw0/clic/pkg/persistence/middleware"
	"github.com/aretw0/clic/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// environment is an engine plus the resources the CLI opened for it.
type environment struct {
	engine  *clic.Engine
	metrics *prometheus.Registry
	closers []io.Closer
}

func (e *environment) Close() error {
	var errs []error
	for _, c := range e.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// DefaultJournalSize bounds the in-memory journal used when no Redis address is given.
const DefaultJournalSize = 200

// createEngine initializes a clic engine with standard CLI conventions.
func createEngine(ctx context.Context, opts RunOptions, logger *slog.Logger, extra ...clic.Option) (*environment, error) {
	env := &environment{}
	engineOpts := []clic.Option{clic.WithLogger(logger)}

	hooks := []domain.LifecycleHooks{}
	if opts.Debug {
		hooks = append(hooks, observability.LogHooks(logger))
	}
	if opts.MetricsAddr != "" {
		env.metrics = prometheus.NewRegistry()
		m, err := observability.NewMetrics(env.metrics)
		if err != nil {
			return nil, fmt.Errorf("error registering metrics: %w", err)
		}
		hooks = append(hooks, m.Hooks())
	}
	if len(hooks) > 0 {
		engineOpts = append(engineOpts, clic.WithLifecycleHooks(observability.Merge(hooks...)))
	}

	if opts.Manifest != "" {
		engineOpts = append(engineOpts, clic.WithManifest(opts.Manifest))
	}
	if opts.Catalog != "" {
		engineOpts = append(engineOpts, clic.WithCatalog(opts.Catalog))
	}
	if opts.HistorySize > 0 {
		engineOpts = append(engineOpts, clic.WithHistorySize(opts.HistorySize))
	}

	redact, err := middleware.NewRedactMiddleware(opts.Redact)
	if err != nil {
		return nil, err
	}
	var journal ports.Journal = memory.NewJournal(DefaultJournalSize)
	if opts.RedisAddr != "" {
		var journalOpts []redis.Option
		if opts.RedisKey != "" {
			journalOpts = append(journalOpts, redis.WithKey(opts.RedisKey))
		}
		remote := redis.New(opts.RedisAddr, "", 0, journalOpts...)
		env.closers = append(env.closers, remote)
		journal = remote
		logger.Info("Journaling processed lines", "addr", opts.RedisAddr)
	}
	engineOpts = append(engineOpts, clic.WithJournal(middleware.Chain(journal, redact)))

	engine, err := clic.New(ctx, append(engineOpts, extra...)...)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	env.engine = engine
	return env, nil
}
