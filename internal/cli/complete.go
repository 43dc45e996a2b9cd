package cli

import (
	"context"
	"fmt"
	"io"
)

// RunComplete writes line completed at cursor. When nothing could be
// expanded and several names match, the candidates follow, one per line.
// A negative cursor means the end of the line.
func RunComplete(ctx context.Context, opts RunOptions, line string, cursor int, out io.Writer) error {
	logger := createLogger(opts.Debug)
	env, err := createEngine(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer env.Close()

	if cursor < 0 {
		cursor = len([]rune(line))
	}
	revised := env.engine.Complete(line, cursor)
	fmt.Fprintln(out, revised)
	if revised != line {
		return nil
	}
	if candidates := env.engine.Candidates(line, cursor); len(candidates) > 1 {
		for _, c := range candidates {
			fmt.Fprintln(out, c)
		}
	}
	return nil
}
