package util_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farrowscore/api/util"
)

func TestCacheService(t *testing.T) {
	now := time.Date(2024, 9, 8, 18, 0, 0, 0, time.UTC)
	store := util.NewMemoryCacheStore()
	cache := util.NewCacheService(store)
	cache.SetClock(func() time.Time { return now })
	ctx := context.Background()

	t.Run("Miss", func(t *testing.T) {
		var dest []int
		hit, err := cache.Get(ctx, "absent", time.Minute, &dest)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("HitWithinTTL", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "scores", []int{24, 17}))
		now = now.Add(30 * time.Second)

		var dest []int
		hit, err := cache.Get(ctx, "scores", 30*time.Second, &dest)
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, []int{24, 17}, dest)
	})

	t.Run("ExpiredEntryIsEvicted", func(t *testing.T) {
		now = now.Add(time.Second)

		var dest []int
		hit, err := cache.Get(ctx, "scores", 30*time.Second, &dest)
		require.NoError(t, err)
		assert.False(t, hit)

		entry, err := store.Get(ctx, "scores")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("UndecodableEntryIsEvicted", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "broken", util.CacheEntry{Payload: json.RawMessage(`"text"`), StoredAt: now}))

		var dest []int
		hit, err := cache.Get(ctx, "broken", time.Minute, &dest)
		require.NoError(t, err)
		assert.False(t, hit)

		stats, err := cache.Stats(ctx)
		require.NoError(t, err)
		assert.NotContains(t, stats.Keys, "broken")
	})

	t.Run("StatsAndClear", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "b", 1))
		require.NoError(t, cache.Set(ctx, "a", 2))

		stats, err := cache.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Size)
		assert.Equal(t, []string{"a", "b"}, stats.Keys)

		require.NoError(t, cache.Clear(ctx))
		stats, err = cache.Stats(ctx)
		require.NoError(t, err)
		assert.Zero(t, stats.Size)
	})
}
