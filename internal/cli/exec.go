package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/clic/pkg/runner"
	"github.com/aretw0/clic/pkg/sink"
)

// ErrDispatchFailed is returned when at least one processed line did not
// complete every step. The details were already written to the output.
var ErrDispatchFailed = errors.New("one or more commands failed")

// RunLines processes each line in order, sharing one execution context.
func RunLines(ctx context.Context, opts RunOptions, lines []string, out io.Writer) error {
	logger := createLogger(opts.Debug)
	env, err := createEngine(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer env.Close()

	ec := env.engine.NewContext(sink.NewWriter(out))
	failed := false
	for _, line := range lines {
		report, err := env.engine.Process(ctx, line, ec)
		if err != nil {
			return fmt.Errorf("dispatch of %q interrupted: %w", line, err)
		}
		if !report.Completed() {
			failed = true
		}
	}
	if failed {
		return ErrDispatchFailed
	}
	return nil
}

// RunScript processes the lines of in as a non-interactive session: each
// line is echoed before its output.
func RunScript(ctx context.Context, opts RunOptions, in io.Reader, out io.Writer) error {
	logger := createLogger(opts.Debug)
	env, err := createEngine(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer env.Close()

	handler := runner.NewTextHandler(in, out, runner.WithPrompt(""))
	return runSession(ctx, opts, env, handler, logger, true)
}
