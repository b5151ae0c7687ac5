package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLogger_WritesToDir(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev; zap.ReplaceGlobals(prev) })

	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, InitLogger(Options{Dir: dir, Level: "debug"}))
	assert.True(t, Log.Core().Enabled(zapcore.DebugLevel))

	Info("payment verified", ChargeRef("ch_1"))
	_ = Sync()

	raw, err := os.ReadFile(filepath.Join(dir, "score.log"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"chargeRef":"ch_1"`)
	assert.Contains(t, string(raw), `"service":"farrowscore"`)
}

func TestInitLogger_RejectsUnknownLevel(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	assert.Error(t, InitLogger(Options{Level: "chatty"}))
	assert.Same(t, prev, Log)
}

func TestFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	type feature string

	zap.New(core).Info("access checked",
		UserID("u1"), Feature(feature("advanced_stats")), Kind("players"), ResourceKey("players:game=1"), Source("fixtures"))

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "u1", fields["userID"])
	assert.Equal(t, "advanced_stats", fields["feature"])
	assert.Equal(t, "players", fields["kind"])
	assert.Equal(t, "players:game=1", fields["key"])
	assert.Equal(t, "fixtures", fields["source"])
}
