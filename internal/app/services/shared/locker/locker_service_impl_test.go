package locker

import (
	"context"
	"testing"
	"time"

	redisrepo "carelink-service/internal/app/services/shared/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLockService_TryLockAndUnlock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	svc := NewLockService(redisrepo.NewRedisRepository(client), zap.NewNop())
	ctx := context.Background()

	acquired, owner, err := svc.TryLock(ctx, "worker:reminder", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)
	assert.NotEmpty(t, owner)

	acquired, _, err = svc.TryLock(ctx, "worker:reminder", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired, "second holder must not get the lock")

	err = svc.Unlock(ctx, "worker:reminder", "someone-else")
	assert.Error(t, err)
	assert.True(t, mr.Exists("worker:reminder"))

	require.NoError(t, svc.Unlock(ctx, "worker:reminder", owner))
	assert.False(t, mr.Exists("worker:reminder"))

	t.Run("expired lock can be taken again", func(t *testing.T) {
		acquired, _, err := svc.TryLock(ctx, "worker:other", time.Second)
		require.NoError(t, err)
		require.True(t, acquired)

		mr.FastForward(2 * time.Second)

		acquired, _, err = svc.TryLock(ctx, "worker:other", time.Second)
		require.NoError(t, err)
		assert.True(t, acquired)
	})
}
