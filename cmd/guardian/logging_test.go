package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withLogDir(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	withLogDir(t)

	assert.Nil(t, setupLogging(false))
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelError))
	_, err := os.Stat(logDir)
	assert.True(t, os.IsNotExist(err), "no log directory without debug")
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	withLogDir(t)

	f := setupLogging(true)
	require.NotNil(t, f)
	defer f.Close()

	slog.Debug("probe", "answer", 42)
	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=probe")
	assert.Contains(t, string(data), "answer=42")
}

func TestSetupLogging_Rotation(t *testing.T) {
	withLogDir(t)
	require.NoError(t, os.MkdirAll(logDir, 0o755))
	path := filepath.Join(logDir, logFileName)
	require.NoError(t, os.WriteFile(path, make([]byte, maxLogSize+1), 0o644))

	f := setupLogging(true)
	require.NotNil(t, f)
	defer f.Close()

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	rotated := 0
	for _, e := range entries {
		if e.Name() != logFileName && strings.HasPrefix(e.Name(), "guardian-") {
			rotated++
		}
	}
	assert.Equal(t, 1, rotated)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(maxLogSize))
}
