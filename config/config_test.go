package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farrowscore/api/config"
)

func TestInitConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("SCORE_CACHE_BACKEND", "redis")
	t.Setenv("SCORE_PAYMENTS_PROVIDER", "coinbase")
	t.Setenv("SCORE_SOURCES_SPORTSDATA_SEASON", "2025")

	require.NoError(t, config.InitConfig())
	cfg := config.GetConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Server.RateLimitWindow)
	assert.Equal(t, 30*time.Second, cfg.Cache.LiveTTL)
	assert.Equal(t, time.Hour, cfg.Cache.ReferenceTTL)
	assert.Equal(t, 10*time.Second, cfg.Sources.Timeout)
	assert.Equal(t, 2023, cfg.Sources.SportsData.HistoricalSeason)
	assert.Equal(t, "memory", cfg.Payments.Store)
	assert.Equal(t, "log", cfg.Audit.Backend)

	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "coinbase", cfg.Payments.Provider)
	assert.Equal(t, 2025, cfg.Sources.SportsData.Season)
	assert.Equal(t, "redis", config.GetString("cache.backend"))
}
