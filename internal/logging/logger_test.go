package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonview/internal/config"
)

func readLog(t *testing.T, file string) string {
	t.Helper()
	require.NoError(t, Sync())
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	return string(data)
}

func reset(t *testing.T) {
	t.Cleanup(func() {
		_ = Initialize(config.LoggingConfig{}, false)
	})
}

func TestDisabledByDefault(t *testing.T) {
	reset(t)
	require.NoError(t, Initialize(config.LoggingConfig{Level: "info"}, false))

	assert.Empty(t, Path())
	assert.False(t, IsCategoryEnabled(CategoryWatch))

	// No-op loggers must be safe to use.
	Get(CategoryWatch).Info("dropped %d", 1)
	Watch("dropped")
}

func TestCategoriesWriteToFile(t *testing.T) {
	reset(t)
	file := filepath.Join(t.TempDir(), "logs", "test.log")

	require.NoError(t, Initialize(config.LoggingConfig{
		Level:      "info",
		File:       file,
		DebugMode:  true,
		Categories: map[string]bool{"ui": false},
	}, false))
	assert.Equal(t, file, Path())

	Viewer("loaded %s", "a.json")
	UI("should not appear")
	WatchDebug("below level")

	out := readLog(t, file)
	assert.Contains(t, out, "jsonview logging initialized")
	assert.Contains(t, out, "loaded a.json")
	assert.Contains(t, out, `"cat":"viewer"`)
	assert.NotContains(t, out, "should not appear")
	assert.NotContains(t, out, "below level")
}

func TestVerboseForcesDebug(t *testing.T) {
	reset(t)
	file := filepath.Join(t.TempDir(), "verbose.log")

	require.NoError(t, Initialize(config.LoggingConfig{Level: "error", File: file}, true))

	WatchDebug("debug line")
	BootDebug("boot detail")
	BootError("boot failure %d", 2)
	Get(CategoryWatch).With("path", "x.json").Warn("with context")

	out := readLog(t, file)
	assert.Contains(t, out, "debug line")
	assert.Contains(t, out, "boot detail")
	assert.Contains(t, out, "boot failure 2")
	assert.Contains(t, out, `"path":"x.json"`)
}

func TestInvalidLevel(t *testing.T) {
	reset(t)
	err := Initialize(config.LoggingConfig{
		Level:     "loud",
		File:      filepath.Join(t.TempDir(), "x.log"),
		DebugMode: true,
	}, false)
	assert.Error(t, err)
}

func TestGetCachesLoggers(t *testing.T) {
	reset(t)
	require.NoError(t, Initialize(config.LoggingConfig{
		File:      filepath.Join(t.TempDir(), "cache.log"),
		DebugMode: true,
	}, false))

	assert.Same(t, Get(CategoryBoot), Get(CategoryBoot))
}

func TestTimer(t *testing.T) {
	reset(t)
	file := filepath.Join(t.TempDir(), "timer.log")
	require.NoError(t, Initialize(config.LoggingConfig{Level: "debug", File: file, DebugMode: true}, false))

	StartTimer(CategoryViewer, "parse").Stop()
	StartTimer(CategoryViewer, "render").StopWithThreshold(-time.Second)

	out := readLog(t, file)
	assert.True(t, strings.Contains(out, "parse completed in"))
	assert.True(t, strings.Contains(out, "render took"))
}
