package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSessionStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping redis session store test")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { rdb.Close() })

	ctx := context.Background()
	store := NewRedisSessionStore(rdb)

	s := Session{ID: uuid.NewString(), UserID: 99, IssuedAt: time.Now(), ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, store.Save(ctx, s))

	uid, err := store.Lookup(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(99), uid)

	ttl, err := rdb.TTL(ctx, sessionKeyPrefix+s.ID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Lookup(ctx, s.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)

	expired := Session{ID: uuid.NewString(), UserID: 1, ExpiresAt: time.Now().Add(-time.Second)}
	require.Error(t, store.Save(ctx, expired))
}
