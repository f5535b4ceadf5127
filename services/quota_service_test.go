package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JNU-econovation/EATceed-AI/apperrors"
)

func setupQuota(t *testing.T, limit int) (*QuotaService, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewQuotaService(client, limit), mr
}

func TestQuotaConsumeSequence(t *testing.T) {
	const limit = 3
	svc, _ := setupQuota(t, limit)
	ctx := context.Background()

	for want := limit - 1; want >= 0; want-- {
		remaining, err := svc.Consume(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, want, remaining)
	}

	_, err := svc.Consume(ctx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.NewRateLimitExceeded(limit))

	// The failed call must not have incremented anything.
	remaining, err := svc.Remaining(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestQuotaCheckDoesNotConsume(t *testing.T) {
	svc, _ := setupQuota(t, 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		remaining, err := svc.Check(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, remaining)
	}

	_, err := svc.Consume(ctx, 1)
	require.NoError(t, err)

	remaining, err := svc.Check(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)
}

func TestQuotaCheckAtLimit(t *testing.T) {
	svc, _ := setupQuota(t, 1)
	ctx := context.Background()

	_, err := svc.Consume(ctx, 1)
	require.NoError(t, err)

	_, err = svc.Check(ctx, 1)
	assert.ErrorIs(t, err, apperrors.NewRateLimitExceeded(1))
}

func TestQuotaExpiryIsSetOnce(t *testing.T) {
	svc, mr := setupQuota(t, 5)
	ctx := context.Background()

	_, err := svc.Consume(ctx, 1)
	require.NoError(t, err)

	ttl := mr.TTL("rate_limit:1")
	require.Greater(t, ttl, time.Duration(0))
	require.LessOrEqual(t, ttl, 24*time.Hour)

	// Further consumes within the window must not re-apply the expiry.
	_, err = svc.Consume(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, ttl, mr.TTL("rate_limit:1"))
}

func TestQuotaResetsAfterMidnight(t *testing.T) {
	const limit = 2
	svc, mr := setupQuota(t, limit)
	ctx := context.Background()

	for i := 0; i < limit; i++ {
		_, err := svc.Consume(ctx, 1)
		require.NoError(t, err)
	}
	_, err := svc.Consume(ctx, 1)
	require.Error(t, err)

	// The counter expires at the next local midnight, at most 24h away.
	mr.FastForward(25 * time.Hour)

	remaining, err := svc.Remaining(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, limit, remaining)

	remaining, err = svc.Consume(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, limit-1, remaining)
}

func TestQuotaCountersAreIndependentPerMember(t *testing.T) {
	svc, _ := setupQuota(t, 1)
	ctx := context.Background()

	_, err := svc.Consume(ctx, 1)
	require.NoError(t, err)
	_, err = svc.Consume(ctx, 1)
	require.Error(t, err)

	remaining, err := svc.Consume(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestQuotaStoreUnreachable(t *testing.T) {
	svc, mr := setupQuota(t, 3)
	ctx := context.Background()
	mr.Close()

	_, err := svc.Remaining(ctx, 1)
	assert.ErrorIs(t, err, apperrors.NewServiceUnavailable(nil))

	_, err = svc.Consume(ctx, 1)
	assert.ErrorIs(t, err, apperrors.NewServiceUnavailable(nil))
}
