package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel overrides the level passed to New when set to debug, info, warn or error.
const EnvLevel = "CLIC_LOG_LEVEL"

// New creates the application logger on Stderr, keeping Stdout for command output.
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stderr, LevelFromEnv(level))
}

// NewWithWriter creates a text logger writing to w.
// The "error" key is renamed to "err" and dispatch ids are shortened to 8 characters.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case "error":
				a.Key = "err"
			case "dispatch_id":
				if id := a.Value.String(); len(id) > 8 {
					a.Value = slog.StringValue(id[:8])
				}
			}
			return a
		},
	}))
}

// LevelFromEnv returns the level named by CLIC_LOG_LEVEL, or fallback when unset or unknown.
func LevelFromEnv(fallback slog.Level) slog.Level {
	raw := strings.TrimSpace(os.Getenv(EnvLevel))
	if raw == "" {
		return fallback
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		return fallback
	}
	return lvl
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
