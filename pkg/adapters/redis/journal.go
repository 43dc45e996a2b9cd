package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/clic/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Journal implements ports.Journal using a capped Redis list, newest first.
type Journal struct {
	client *backend.Client
	key    string
	max    int64
}

// Option configures a Journal.
type Option func(*Journal)

// WithKey sets the list key.
func WithKey(key string) Option {
	return func(j *Journal) {
		j.key = key
	}
}

// WithMaxEntries caps the list length. 0 keeps every entry.
func WithMaxEntries(n int) Option {
	return func(j *Journal) {
		j.max = int64(n)
	}
}

// New creates a journal connecting to a Redis server.
func New(address, password string, db int, opts ...Option) *Journal {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a journal from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Journal {
	j := &Journal{
		client: client,
		key:    "clic:journal",
		max:    1000,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Append pushes the event and trims the list in one transaction.
func (j *Journal) Append(ctx context.Context, ev domain.ProcessedEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = j.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.LPush(ctx, j.key, data)
		if j.max > 0 {
			pipe.LTrim(ctx, j.key, 0, j.max-1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis journal append failed: %w", err)
	}
	return nil
}

// Recent returns up to n events, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]domain.ProcessedEvent, error) {
	stop := int64(-1)
	if n > 0 {
		stop = int64(n - 1)
	}
	items, err := j.client.LRange(ctx, j.key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("redis journal read failed: %w", err)
	}

	events := make([]domain.ProcessedEvent, 0, len(items))
	for _, item := range items {
		var ev domain.ProcessedEvent
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			return nil, fmt.Errorf("corrupt journal entry: %w", err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// Close closes the underlying client.
func (j *Journal) Close() error {
	return j.client.Close()
}
