package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	t.Run("Applies defaults for missing keys", func(t *testing.T) {
		// Given: a config file with only the log level
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log-level: debug\n"), 0o600))

		// When: loading it
		conf := MustLoad(path)

		// Then: every other section falls back to its default
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, "vrTicTacOptions", conf.Options.Key)
		assert.Equal(t, 30*time.Second, conf.Session.FrameTimeout)
	})

	t.Run("Reads nested sections", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		data := "redis:\n  host: cache\n  port: \"6380\"\noptions:\n  key: quiz\nsession:\n  frame-timeout: 5s\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		conf := MustLoad(path)

		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, "quiz", conf.Options.Key)
		assert.Equal(t, 5*time.Second, conf.Session.FrameTimeout)
	})

	t.Run("Panics without a file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
