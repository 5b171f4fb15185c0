//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/packaging-service/internal/circuitbreaker"
)

func newIntegrationBreaker(name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             name,
	})
}

func TestLogsRepositoryWithCircuitBreaker_PassThrough_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cb := newIntegrationBreaker("logs-pass-through")
	repo := NewLogsRepositoryWithCircuitBreaker(NewLogsRepository(newTestMongoDB(t)), cb)
	assert.Same(t, cb, repo.GetCircuitBreaker())

	require.NoError(t, repo.Create(ctx, &LogEntryDocument{Level: "info", Message: "estimate", RequestID: "req-1", LocationID: "wh-1"}))
	require.NoError(t, repo.CreateMany(ctx, []*LogEntryDocument{
		{Level: "info", Message: "Package type created", LocationID: "wh-1", ActionType: "create_package_type"},
		{Level: "error", Message: "Package type rejected", LocationID: "wh-1", ActionType: "create_package_type"},
	}))

	entries, err := repo.Query(ctx, LogQueryOptions{RequestID: "req-1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "wh-1", entries[0].LocationID)

	count, err := repo.Count(ctx, LogQueryOptions{ActionType: "create_package_type"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.Equal(t, circuitbreaker.StateClosed, cb.State())
}

func TestLogsRepositoryWithCircuitBreaker_ClosedClient_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newTestMongoDB(t)
	cb := newIntegrationBreaker("logs-closed-client")
	repo := NewLogsRepositoryWithCircuitBreaker(NewLogsRepository(db), cb)

	require.NoError(t, db.Close(ctx))

	for i := 0; i < 2; i++ {
		assert.Error(t, repo.Create(ctx, &LogEntryDocument{Message: "lost"}))
	}
	require.True(t, cb.IsOpen())

	assert.NoError(t, repo.Create(ctx, &LogEntryDocument{Message: "dropped"}), "writes are dropped while open")
	assert.NoError(t, repo.CreateMany(ctx, []*LogEntryDocument{{Message: "dropped"}}))

	_, err := repo.Query(ctx, LogQueryOptions{})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	_, err = repo.Count(ctx, LogQueryOptions{})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
}
