package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) (*miniredis.Miniredis, *redis.Client, *redisRepository) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client, &redisRepository{client: client}
}

func TestRedisRepository_SetGet(t *testing.T) {
	_, _, repo := setupRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "session:1", map[string]string{"profile_id": "p-1"}, time.Minute))

	value, err := repo.Get(ctx, "session:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"profile_id":"p-1"}`, value)

	missing, err := repo.Get(ctx, "session:missing")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestRedisRepository_IncrementWithTTL(t *testing.T) {
	mr, _, repo := setupRepository(t)
	ctx := context.Background()

	first, err := repo.IncrementWithTTL(ctx, "counter", 30*time.Second)
	require.NoError(t, err)
	second, err := repo.IncrementWithTTL(ctx, "counter", 30*time.Second)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 30*time.Second, mr.TTL("counter"))

	mr.FastForward(31 * time.Second)
	again, err := repo.IncrementWithTTL(ctx, "counter", 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, again)
}

func TestRedisRepository_TrySetNXAndDeleteIfEquals(t *testing.T) {
	mr, _, repo := setupRepository(t)
	ctx := context.Background()

	acquired, err := repo.TrySetNX(ctx, "lock", "owner-a", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = repo.TrySetNX(ctx, "lock", "owner-b", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)

	deleted, err := repo.DeleteIfEquals(ctx, "lock", "owner-b")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.True(t, mr.Exists("lock"))

	deleted, err = repo.DeleteIfEquals(ctx, "lock", "owner-a")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, mr.Exists("lock"))
}

func TestRedisRepository_Publish(t *testing.T) {
	_, client, repo := setupRepository(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, "conversation:c-1")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Publish(ctx, "conversation:c-1", map[string]string{"type": "message"}))

	select {
	case msg := <-sub.Channel():
		assert.JSONEq(t, `{"type":"message"}`, msg.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a published message")
	}
}
