package db_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farrowscore/api/db"
	"github.com/farrowscore/api/util"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisCacheStore(t *testing.T) {
	mr, client := newTestRedis(t)
	store := db.NewRedisCacheStore(client, "")
	ctx := context.Background()

	entry, err := store.Get(ctx, "games")
	require.NoError(t, err)
	assert.Nil(t, entry)

	stored := util.CacheEntry{Payload: json.RawMessage(`[{"game_id":"1"}]`), StoredAt: time.Date(2024, 9, 8, 18, 0, 0, 0, time.UTC)}
	require.NoError(t, store.Set(ctx, "games", stored))
	require.NoError(t, store.Set(ctx, "game:game=1", stored))
	assert.True(t, mr.Exists("score:cache:games"))
	assert.Zero(t, mr.TTL("score:cache:games"))

	entry, err = store.Get(ctx, "games")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.JSONEq(t, string(stored.Payload), string(entry.Payload))
	assert.True(t, entry.StoredAt.Equal(stored.StoredAt))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"games", "game:game=1"}, keys)

	require.NoError(t, store.Delete(ctx, "games"))
	keys, err = store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"game:game=1"}, keys)

	mr.Set("ratelimit:u1", "untouched")
	require.NoError(t, store.Clear(ctx))
	keys, err = store.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.True(t, mr.Exists("ratelimit:u1"))
}

func TestRedisCacheStore_WithCacheService(t *testing.T) {
	_, client := newTestRedis(t)
	now := time.Date(2024, 9, 8, 18, 0, 0, 0, time.UTC)
	cache := util.NewCacheService(db.NewRedisCacheStore(client, "test"))
	cache.SetClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "teams", []string{"KC", "SF"}))

	var teams []string
	hit, err := cache.Get(ctx, "teams", time.Hour, &teams)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"KC", "SF"}, teams)

	now = now.Add(2 * time.Hour)
	hit, err = cache.Get(ctx, "teams", time.Hour, &teams)
	require.NoError(t, err)
	assert.False(t, hit)

	stats, err := cache.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Size)
}

func TestRateLimit(t *testing.T) {
	_, client := newTestRedis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := db.RateLimit(ctx, client, "u1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i+1)
	}

	allowed, err := db.RateLimit(ctx, client, "u1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = db.RateLimit(ctx, client, "u2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCipher(t *testing.T) {
	cipher, err := db.NewCipher("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	sealed, err := cipher.Encrypt([]byte("charge ch_1"))
	require.NoError(t, err)
	assert.NotEqual(t, []byte("charge ch_1"), sealed)

	opened, err := cipher.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "charge ch_1", string(opened))

	_, err = db.NewCipher("short")
	assert.Error(t, err)

	none, err := db.NewCipher("")
	require.NoError(t, err)
	plain, err := none.Encrypt([]byte("clear"))
	require.NoError(t, err)
	assert.Equal(t, "clear", string(plain))
}
