package ratelimiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"carelink-service/internal/app/contracts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRedis struct {
	mock.Mock
	contracts.RedisRepository
}

func (m *mockRedis) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error) {
	args := m.Called(ctx, key, ttl)
	return args.Int(0), args.Error(1)
}

func TestResourceLimiter_ApplyResourceLimiter(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 50, 0, time.UTC)
	input := func() *contracts.ApplyResourceLimiterInput {
		return &contracts.ApplyResourceLimiterInput{
			ResourceName:      " Profile-1 ",
			LimiterGroupName:  "message_send",
			WindowDurationSec: 60,
			MaxQuota:          2,
			NowUTC:            now,
		}
	}
	expectedKey := "LIMIT:MESSAGE_SEND:profile-1:29539320"

	t.Run("within quota", func(t *testing.T) {
		redis := new(mockRedis)
		redis.On("IncrementWithTTL", mock.Anything, expectedKey, 61*time.Second).Return(2, nil)

		out, err := NewResourceLimiter(redis, zap.NewNop()).ApplyResourceLimiter(context.Background(), input())
		require.NoError(t, err)
		assert.True(t, out.Allowed)
		redis.AssertExpectations(t)
	})

	t.Run("over quota reports seconds to next window", func(t *testing.T) {
		redis := new(mockRedis)
		redis.On("IncrementWithTTL", mock.Anything, expectedKey, 61*time.Second).Return(3, nil)

		out, err := NewResourceLimiter(redis, zap.NewNop()).ApplyResourceLimiter(context.Background(), input())
		require.NoError(t, err)
		assert.False(t, out.Allowed)
		assert.Equal(t, 11, out.RetryAfterSecs)
	})

	t.Run("zero quota disables the limit", func(t *testing.T) {
		in := input()
		in.MaxQuota = 0
		out, err := NewResourceLimiter(new(mockRedis), zap.NewNop()).ApplyResourceLimiter(context.Background(), in)
		require.NoError(t, err)
		assert.True(t, out.Allowed)
	})

	t.Run("redis failure is returned", func(t *testing.T) {
		redis := new(mockRedis)
		redis.On("IncrementWithTTL", mock.Anything, expectedKey, 61*time.Second).Return(0, errors.New("down"))

		out, err := NewResourceLimiter(redis, zap.NewNop()).ApplyResourceLimiter(context.Background(), input())
		assert.Error(t, err)
		assert.False(t, out.Allowed)
	})
}
