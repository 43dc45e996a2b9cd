package runner

import (
	"log/slog"

	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/history"
)

// DefaultInputBufferSize is the default number of lines to buffer for input handlers.
const DefaultInputBufferSize = 64

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithEngine configures the engine lines are handed to. Required.
func WithEngine(engine Processor) Option {
	return func(r *Runner) {
		r.engine = engine
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithSink configures where command output goes. By default it is a
// sink.Writer over the handler output.
func WithSink(s domain.Sink) Option {
	return func(r *Runner) {
		r.Sink = s
	}
}

// WithHistory records every accepted line in log.
func WithHistory(log *history.Log) Option {
	return func(r *Runner) {
		r.History = log
	}
}

// WithEcho controls whether accepted lines are written to the sink, prefixed
// by sink.EchoPrefix, before they are processed. Enabled by default.
func WithEcho(echo bool) Option {
	return func(r *Runner) {
		r.Echo = echo
	}
}

// WithExecutionContext shares ec across every line instead of a context
// created by the runner.
func WithExecutionContext(ec *domain.ExecutionContext) Option {
	return func(r *Runner) {
		r.context = ec
	}
}
