package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/history"
	"github.com/aretw0/clic/pkg/sink"
)

// ErrNoEngine is returned by Run when no engine was configured.
var ErrNoEngine = errors.New("runner: no engine configured")

// Processor interprets lines. *clic.Engine implements it.
type Processor interface {
	Process(ctx context.Context, line string, ec *domain.ExecutionContext) (*domain.DispatchReport, error)
}

// Runner handles the read-process loop of the engine using provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (plain text vs line editor).
type Runner struct {
	// Handler is the strategy for input. If nil, a TextHandler over Stdin/Stdout is used.
	Handler IOHandler

	// Sink receives command output and echoed lines.
	Sink domain.Sink

	// History records accepted lines. If nil, lines are not recorded.
	History *history.Log

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Echo writes each accepted line to the sink before processing it.
	Echo bool

	engine  Processor
	context *domain.ExecutionContext
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Echo:   true,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads and processes lines until the input is exhausted, the user types
// exit or quit, or ctx is done.
// An interrupt signal cancels the dispatch in progress and the loop goes on;
// an interrupt while waiting for input ends the loop.
func (r *Runner) Run(ctx context.Context) error {
	if r.engine == nil {
		return ErrNoEngine
	}
	handler := r.resolveHandler()
	ec := r.resolveContext(handler)

	signals := NewSignalManager(ctx)
	defer signals.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := handler.Input(signals.Context())
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if errors.Is(err, ErrInterrupted) {
				continue
			}
			signals.CheckRace()
			if signals.Context().Err() != nil {
				r.Logger.Debug("Runner input: Context cancelled", "err", signals.Context().Err())
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		if isQuit(line) {
			return nil
		}

		if _, err := r.Accept(signals.Context(), line, ec); err != nil {
			switch {
			case errors.Is(err, ErrInputTooLarge), errors.Is(err, ErrInvalidUTF8):
				ec.Write(fmt.Sprintf("error: %v", err))
			case ctx.Err() != nil:
				return nil
			case errors.Is(err, context.Canceled):
				ec.Write("interrupted")
				signals.Reset()
				r.Logger.Debug("Dispatch interrupted by signal", "interrupts", signals.Interrupts())
			default:
				return err
			}
		}
	}
}

// Accept cleans one line and, unless it is blank, echoes it, records it in the
// history and processes it. A nil report with a nil error means the line was blank.
func (r *Runner) Accept(ctx context.Context, line string, ec *domain.ExecutionContext) (*domain.DispatchReport, error) {
	if r.engine == nil {
		return nil, ErrNoEngine
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	clean, err := SanitizeInput(line)
	if err != nil {
		return nil, err
	}

	if r.Echo {
		ec.Write(sink.EchoPrefix + clean)
	}
	if r.History != nil {
		r.History.Add(clean)
	}
	return r.engine.Process(ctx, clean, ec)
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		// Memoize to prevent creating new pumps on subsequent Run() calls
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r.Handler
}

func (r *Runner) resolveContext(handler IOHandler) *domain.ExecutionContext {
	if r.context != nil {
		return r.context
	}
	if r.Sink == nil {
		r.Sink = sink.NewWriter(handler.Output())
	}
	r.context = domain.NewExecutionContext(r.Sink)
	return r.context
}

func isQuit(line string) bool {
	switch strings.TrimSpace(line) {
	case "exit", "quit":
		return true
	}
	return false
}
