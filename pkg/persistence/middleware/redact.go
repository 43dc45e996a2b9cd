package middleware

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/ports"
)

// Mask replaces redacted option values.
const Mask = "***"

// DefaultSensitiveOptions are the option name patterns redacted when none are given.
var DefaultSensitiveOptions = []string{"password", "passwd", "secret", "token", "api[_-]?key"}

type redactMiddleware struct {
	next    ports.Journal
	pattern *regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks the value of every
// option whose name matches one of the patterns before the line is recorded.
// Both "--token abc" and "--token=abc" forms are masked; quoted values are
// masked as a whole. Patterns are regular expressions matched against the
// full option name, case-insensitively.
func NewRedactMiddleware(patterns []string) (Middleware, error) {
	if len(patterns) == 0 {
		patterns = DefaultSensitiveOptions
	}
	for _, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
	}
	expr := `(?i)(^|\s)(--?(?:` + strings.Join(patterns, "|") + `))(=|\s+)('[^']*'|"[^"]*"|\S+)`
	pattern := regexp.MustCompile(expr)
	return func(next ports.Journal) ports.Journal {
		return &redactMiddleware{next: next, pattern: pattern}
	}, nil
}

func (m *redactMiddleware) Append(ctx context.Context, ev domain.ProcessedEvent) error {
	ev.Line = m.Redact(ev.Line)
	return m.next.Append(ctx, ev)
}

func (m *redactMiddleware) Recent(ctx context.Context, n int) ([]domain.ProcessedEvent, error) {
	return m.next.Recent(ctx, n)
}

// Redact returns line with sensitive option values masked.
func (m *redactMiddleware) Redact(line string) string {
	return m.pattern.ReplaceAllString(line, "${1}${2}${3}"+Mask)
}
