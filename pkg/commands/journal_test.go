package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/clic/pkg/adapters/memory"
	"github.com/aretw0/clic/pkg/commands"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal(t *testing.T) {
	ctx := context.Background()
	journal := memory.NewJournal(0)
	base := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	for i, line := range []string{"list", "hello --name Ada", "flows"} {
		require.NoError(t, journal.Append(ctx, domain.ProcessedEvent{
			DispatchID: "d",
			Line:       line,
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	source := memory.NewSource(commands.Journal(journal))
	reg := registry.New(source)
	require.NoError(t, reg.Load(ctx))

	t.Run("Oldest First", func(t *testing.T) {
		out, _ := run(t, reg, "journal")
		assert.Equal(t, []string{
			"07:08:09  list",
			"07:09:09  hello --name Ada",
			"07:10:09  flows",
		}, out.Lines())
	})

	t.Run("Limit", func(t *testing.T) {
		out, _ := run(t, reg, "journal", "-n", "1")
		assert.Equal(t, []string{"07:10:09  flows"}, out.Lines())
	})
}
