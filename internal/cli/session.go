package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/clic"
	"github.com/aretw0/clic/internal/presentation/tui"
	"github.com/aretw0/clic/pkg/runner"
	"github.com/aretw0/clic/pkg/sink"
	"golang.org/x/sync/errgroup"
)

// RunInteractive starts the read-process loop on the process terminal.
// With a terminal it uses a line editor with completion and history; with
// piped input it reads plain lines and echoes each one, producing a transcript.
func RunInteractive(ctx context.Context, opts RunOptions) error {
	logger := createLogger(opts.Debug)
	interactive := isTerminal()

	var notices io.Writer = os.Stdout
	env, err := createEngine(ctx, opts, logger, clic.WithReloadHook(func(err error) {
		if err != nil {
			printSystemMessage(notices, "Catalog reload failed: %v", err)
			return
		}
		printSystemMessage(notices, "Catalog reloaded.")
	}))
	if err != nil {
		return err
	}
	defer env.Close()

	var handler runner.IOHandler
	if interactive {
		tui.PrintBanner(os.Stdout, clic.Version)
		rl, err := runner.NewReadlineHandler(env.engine.Completion(), env.engine.History())
		if err != nil {
			return fmt.Errorf("error starting line editor: %w", err)
		}
		defer rl.Close()
		handler = rl
	} else {
		handler = runner.NewTextHandler(os.Stdin, os.Stdout, runner.WithPrompt(""))
	}
	notices = handler.Output()

	return runSession(ctx, opts, env, handler, logger, !interactive)
}

// runSession runs the loop, and the metrics server when configured, until the
// loop ends or either fails.
func runSession(ctx context.Context, opts RunOptions, env *environment, handler runner.IOHandler, logger *slog.Logger, echo bool) error {
	group, groupCtx := errgroup.WithContext(ctx)
	sessionCtx, stop := context.WithCancel(groupCtx)
	defer stop()

	if opts.Watch {
		if err := env.engine.Watch(sessionCtx); err != nil {
			return fmt.Errorf("error watching catalog: %w", err)
		}
		logger.Info("Watching catalog for changes")
		printSystemMessage(handler.Output(), "Watching for catalog changes.")
	}

	if env.metrics != nil {
		group.Go(func() error {
			return serveMetrics(sessionCtx, opts.MetricsAddr, env.metrics, logger)
		})
	}

	group.Go(func() error {
		// The loop ending ends the session, metrics server included.
		defer stop()
		r := runner.NewRunner(
			runner.WithEngine(env.engine),
			runner.WithHistory(env.engine.History()),
			runner.WithLogger(logger),
			runner.WithInputHandler(handler),
			runner.WithSink(sink.NewWriter(handler.Output(), sink.WithStyledEcho())),
			runner.WithEcho(echo),
		)
		return r.Run(sessionCtx)
	})

	return group.Wait()
}
