package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/ports"
	"github.com/aretw0/clic/pkg/tokenizer"
	"github.com/google/uuid"
)

// ErrNilContext is returned when Process is called without an execution context.
var ErrNilContext = errors.New("nil execution context")

// Resolver is the part of the registry the dispatcher needs.
type Resolver interface {
	CreateCommand(id string) (domain.Command, bool)
	Flow(name string) (domain.FlowDescriptor, bool)
	Suggest(id string) string
}

// Dispatcher turns raw lines into command executions.
type Dispatcher struct {
	resolver Resolver
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	newID    func() string

	mu        sync.RWMutex
	listeners []ports.Listener
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// WithListener registers a listener notified after every processed line.
func WithListener(l ports.Listener) Option {
	return func(d *Dispatcher) {
		d.listeners = append(d.listeners, l)
	}
}

// WithIDGenerator overrides how dispatch ids are generated.
func WithIDGenerator(fn func() string) Option {
	return func(d *Dispatcher) {
		d.newID = fn
	}
}

// NewDispatcher creates a dispatcher resolving commands through resolver.
func NewDispatcher(resolver Resolver, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		resolver: resolver,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddListener registers a listener notified after every processed line.
func (d *Dispatcher) AddListener(l ports.Listener) {
	d.mu.Lock()
	d.listeners = append(d.listeners, l)
	d.mu.Unlock()
}

// Job is a dispatch running in the background.
type Job struct {
	done   chan struct{}
	cancel context.CancelFunc
	report *domain.DispatchReport
	err    error
}

// Wait blocks until every step and every listener notification has completed.
func (j *Job) Wait() (*domain.DispatchReport, error) {
	<-j.done
	return j.report, j.err
}

// Done is closed when the job has completed.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Cancel stops the job before its next step. A running step is not interrupted.
func (j *Job) Cancel() {
	j.cancel()
}

// Submit runs Process in the background.
func (d *Dispatcher) Submit(ctx context.Context, line string, ec *domain.ExecutionContext) *Job {
	ctx, cancel := context.WithCancel(ctx)
	job := &Job{done: make(chan struct{}), cancel: cancel}
	go func() {
		defer close(job.done)
		defer cancel()
		job.report, job.err = d.Process(ctx, line, ec)
	}()
	return job
}

// Process interprets one line: a single command, or every step of a flow in order.
//
// Problems local to the line (bad quoting, unknown commands, bad options,
// failing commands) are written to the context sink and recorded in the
// report; they are not returned as errors. The returned error is non-nil only
// when the dispatch could not run to its end because ctx was done.
func (d *Dispatcher) Process(ctx context.Context, line string, ec *domain.ExecutionContext) (*domain.DispatchReport, error) {
	if ec == nil {
		return nil, ErrNilContext
	}
	if err := ec.Acquire(ctx); err != nil {
		return nil, err
	}
	defer ec.Release()

	ec.ResetOutputs()
	report := &domain.DispatchReport{ID: d.newID(), Line: line}
	logger := d.logger.With("dispatch_id", report.ID)

	if d.hooks.OnDispatchStart != nil {
		d.hooks.OnDispatchStart(ctx, &domain.DispatchEvent{
			EventBase: d.event(domain.EventDispatchStart, report.ID),
			Line:      line,
		})
	}
	defer func() {
		if d.hooks.OnDispatchEnd != nil {
			d.hooks.OnDispatchEnd(ctx, &domain.DispatchEvent{
				EventBase: d.event(domain.EventDispatchEnd, report.ID),
				Line:      line,
				Report:    report,
			})
		}
	}()

	head, rest, hasArgs := strings.Cut(line, " ")
	var params []string
	if hasArgs {
		tokens, err := tokenizer.Tokenize(rest)
		if err != nil {
			ec.Write(domain.MsgParseError(err))
			logger.Error("Failed to parse command line", "line", line, "err", err)
			report.Aborted = true
			report.Err = err
			return report, nil
		}
		params = tokens
	}

	if flow, ok := d.resolver.Flow(head); ok {
		report.Flow = flow.Name
		for _, ref := range flow.Steps {
			if err := ctx.Err(); err != nil {
				return d.cancelled(report, ref, err)
			}
			args := append(append([]string(nil), params...), ec.Outputs()...)
			d.launch(ctx, logger, report, ref, args, ec)
		}
	} else {
		if err := ctx.Err(); err != nil {
			return d.cancelled(report, head, err)
		}
		d.launch(ctx, logger, report, head, params, ec)
	}

	d.notify(ctx, logger, domain.ProcessedEvent{
		DispatchID: report.ID,
		Line:       line,
		Timestamp:  time.Now(),
	})
	return report, nil
}

func (d *Dispatcher) cancelled(report *domain.DispatchReport, next string, err error) (*domain.DispatchReport, error) {
	report.Steps = append(report.Steps, domain.StepResult{CommandID: next, Status: domain.StepSkipped, Err: err})
	report.Err = err
	return report, err
}

// launch runs a single step and appends its result to the report.
func (d *Dispatcher) launch(ctx context.Context, logger *slog.Logger, report *domain.DispatchReport, id string, args []string, ec *domain.ExecutionContext) {
	index := len(report.Steps)
	result := domain.StepResult{CommandID: id, Args: args}
	start := time.Now()

	if d.hooks.OnStepStart != nil {
		d.hooks.OnStepStart(ctx, &domain.StepEvent{
			EventBase: d.event(domain.EventStepStart, report.ID),
			Index:     index,
			Result:    result,
		})
	}

	d.runStep(ctx, logger, &result, ec)
	result.Duration = time.Since(start)
	report.Steps = append(report.Steps, result)

	if d.hooks.OnStepEnd != nil {
		d.hooks.OnStepEnd(ctx, &domain.StepEvent{
			EventBase: d.event(domain.EventStepEnd, report.ID),
			Index:     index,
			Result:    result,
		})
	}
}

func (d *Dispatcher) runStep(ctx context.Context, logger *slog.Logger, result *domain.StepResult, ec *domain.ExecutionContext) {
	cmd, ok := d.resolver.CreateCommand(result.CommandID)
	if !ok {
		result.Status = domain.StepNotFound
		result.Err = fmt.Errorf("%w: %s", domain.ErrCommandNotFound, result.CommandID)
		ec.Write(domain.MsgCommandNotFound(result.CommandID, d.resolver.Suggest(result.CommandID)))
		return
	}

	if err := cmd.Parse(result.Args); err != nil {
		result.Status = domain.StepParseError
		result.Err = err
		ec.Write(domain.MsgParseError(err))
		logger.Error("Failed to parse command options", "command", result.CommandID, "err", err)
		return
	}

	if err := d.execute(ctx, cmd, ec); err != nil {
		result.Status = domain.StepFailed
		result.Err = err
		logger.Warn("Command execution failed", "command", result.CommandID, "err", err)
	} else {
		result.Status = domain.StepCompleted
	}
	ec.Write(domain.Separator)
}

// execute runs the command, turning a panic into an error.
func (d *Dispatcher) execute(ctx context.Context, cmd domain.Command, ec *domain.ExecutionContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("command panicked: %v", r)
		}
	}()
	return cmd.Execute(ctx, ec)
}

func (d *Dispatcher) notify(ctx context.Context, logger *slog.Logger, ev domain.ProcessedEvent) {
	d.mu.RLock()
	listeners := append([]ports.Listener(nil), d.listeners...)
	d.mu.RUnlock()

	for _, l := range listeners {
		if err := safeNotify(ctx, l, ev); err != nil {
			logger.Warn("Listener failed", "err", err)
		}
	}
}

func safeNotify(ctx context.Context, l ports.Listener, ev domain.ProcessedEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener panicked: %v", r)
		}
	}()
	return l.OnProcessed(ctx, ev)
}

func (d *Dispatcher) event(t domain.EventType, id string) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, DispatchID: id}
}
