package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/clic/pkg/adapters/redis"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, client
}

func TestRedisJournal_Contract(t *testing.T) {
	_, client := setup(t)
	ports.RunJournalContract(t, redis.NewFromClient(client))
}

func TestRedisJournal_Capped(t *testing.T) {
	mr, client := setup(t)
	j := redis.NewFromClient(client, redis.WithKey("test:journal"), redis.WithMaxEntries(2))
	ctx := context.Background()

	for _, line := range []string{"a", "b", "c"} {
		require.NoError(t, j.Append(ctx, domain.ProcessedEvent{Line: line}))
	}

	items, err := mr.List("test:journal")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	recent, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].Line)
	assert.Equal(t, "b", recent[1].Line)
}

func TestRedisJournal_ListenerIntegration(t *testing.T) {
	_, client := setup(t)
	j := redis.NewFromClient(client)
	l := ports.JournalListener(j)

	require.NoError(t, l.OnProcessed(context.Background(), domain.ProcessedEvent{DispatchID: "id-1", Line: "help"}))

	recent, err := j.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "id-1", recent[0].DispatchID)
}
