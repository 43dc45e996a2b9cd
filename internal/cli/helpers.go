package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/clic/internal/logging"
	"golang.org/x/term"
)

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout command output).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// isTerminal reports whether both stdin and stdout are attached to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
