package runner

import (
	"context"
	"errors"
	"io"
)

// ErrInterrupted is returned by Input when the user cancelled the line being
// edited (Ctrl+C in a line editor). The session goes on.
var ErrInterrupted = errors.New("input interrupted")

// IOHandler defines the strategy for reading lines from the user.
// This allows switching between a plain reader (pipes, tests) and a line editor.
type IOHandler interface {
	// Input reads the next line. It returns io.EOF when the source is exhausted.
	Input(ctx context.Context) (string, error)

	// Output is where command output should be written so it does not
	// clobber the prompt.
	Output() io.Writer
}
