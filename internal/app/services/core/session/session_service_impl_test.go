package session

import (
	"context"
	"testing"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/models"
	redisrepo "carelink-service/internal/app/services/shared/redis"
	"carelink-service/internal/pkg/exceptions"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService(t *testing.T) (*miniredis.Miniredis, *sessionService) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.InternalConfig{}
	cfg.App.LoginSessionExpiredTimeInHours = 24
	cfg.JWT.Secret = "test-secret"

	return mr, &sessionService{
		RedisRepository: redisrepo.NewRedisRepository(client),
		InternalConfig:  cfg,
	}
}

func TestSessionService_Lifecycle(t *testing.T) {
	mr, svc := newTestSessionService(t)
	ctx := context.Background()

	profile := &models.Profile{ID: "p-1", Email: "pat@example.com", FullName: "Pat Doe", Role: "patient"}
	session, token, err := svc.CreateSession(ctx, profile)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, 24*time.Hour, mr.TTL("session:"+session.SessionID))

	loaded, err := svc.GetSessionFromToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "p-1", loaded.ProfileID)
	assert.Equal(t, "patient", loaded.Role)
	assert.True(t, loaded.IsPatient())

	require.NoError(t, svc.DeleteSession(ctx, session.SessionID))

	_, err = svc.GetSessionFromToken(ctx, token)
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, 401, customErr.StatusCode)
}

func TestSessionService_RejectsForeignToken(t *testing.T) {
	_, svc := newTestSessionService(t)

	_, err := svc.GetSessionFromToken(context.Background(), "not-a-jwt")

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, 401, customErr.StatusCode)
}
