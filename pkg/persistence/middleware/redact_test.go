package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/clic/pkg/adapters/memory"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/persistence/middleware"
	"github.com/aretw0/clic/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, j ports.Journal, line string) string {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, j.Append(ctx, domain.ProcessedEvent{Line: line}))
	recent, err := j.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	return recent[0].Line
}

func TestRedactMiddleware(t *testing.T) {
	mw, err := middleware.NewRedactMiddleware(nil)
	require.NoError(t, err)
	j := mw(memory.NewJournal(0))

	tests := []struct {
		line string
		want string
	}{
		{"login --user ada --password hunter2", "login --user ada --password ***"},
		{"login --password=hunter2 --user ada", "login --password=*** --user ada"},
		{"deploy --API_KEY 'a b c' now", "deploy --API_KEY *** now"},
		{`deploy --api-key "x y"`, "deploy --api-key ***"},
		{"deploy -token abc", "deploy -token ***"},
		{"echo password token", "echo password token"},
		{"deploy --tokens 3", "deploy --tokens 3"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, record(t, j, tt.line))
		})
	}
}

func TestRedactMiddleware_CustomPatterns(t *testing.T) {
	mw, err := middleware.NewRedactMiddleware([]string{"pin"})
	require.NoError(t, err)
	j := mw(memory.NewJournal(0))

	assert.Equal(t, "card --pin *** --password open", record(t, j, "card --pin 1234 --password open"))
}

func TestRedactMiddleware_InvalidPattern(t *testing.T) {
	_, err := middleware.NewRedactMiddleware([]string{"("})
	assert.Error(t, err)
}

func TestChain(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.Journal) ports.Journal {
			return tagJournal{next: next, tag: func() { order = append(order, name) }}
		}
	}

	j := middleware.Chain(memory.NewJournal(0), tag("outer"), tag("inner"))
	require.NoError(t, j.Append(context.Background(), domain.ProcessedEvent{Line: "x"}))
	assert.Equal(t, []string{"outer", "inner"}, order)
}

type tagJournal struct {
	next ports.Journal
	tag  func()
}

func (j tagJournal) Append(ctx context.Context, ev domain.ProcessedEvent) error {
	j.tag()
	return j.next.Append(ctx, ev)
}

func (j tagJournal) Recent(ctx context.Context, n int) ([]domain.ProcessedEvent, error) {
	return j.next.Recent(ctx, n)
}
