package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/clic/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunJournalContract runs a suite of tests to verify that a Journal implementation
// adheres to the defined interface contract. The journal must start empty.
func RunJournalContract(t *testing.T, journal Journal) {
	ctx := context.Background()
	base := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("Empty", func(t *testing.T) {
		recent, err := journal.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, recent)
	})

	t.Run("Append and Recent", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			err := journal.Append(ctx, domain.ProcessedEvent{
				DispatchID: fmt.Sprintf("d-%d", i),
				Line:       fmt.Sprintf("cmd %d", i),
				Timestamp:  base.Add(time.Duration(i) * time.Second),
			})
			require.NoError(t, err, "Append should not return error")
		}

		recent, err := journal.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "cmd 2", recent[0].Line, "newest first")
		assert.Equal(t, "d-2", recent[0].DispatchID)
		assert.Equal(t, "cmd 1", recent[1].Line)
		assert.True(t, recent[0].Timestamp.Equal(base.Add(2*time.Second)))
	})

	t.Run("Recent All", func(t *testing.T) {
		recent, err := journal.Recent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, recent, 3)
		assert.Equal(t, "cmd 0", recent[2].Line)
	})
}
