package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	tmerrors "taskmap.dev/taskmap/internal/errors"
)

func TestConfigDefaults(t *testing.T) {
	t.Run("returns defaults when config does not exist", func(t *testing.T) {
		config, err := Load(t.TempDir())
		require.NoError(t, err)

		require.Equal(t, 50, config.GetHistoryDepth())
		require.Equal(t, 2*time.Second, config.GroupingWindow())
		require.Equal(t, int64(5<<20), config.StorageQuota())
		require.Equal(t, 300*time.Millisecond, config.SaveDebounce())
		require.Equal(t, 10, config.GetTrimKeep())
	})

	t.Run("returns stored values", func(t *testing.T) {
		dir := t.TempDir()
		depth := 7
		quota := int64(1024)
		require.NoError(t, Save(dir, &Config{HistoryDepth: &depth, StorageQuotaBytes: &quota}))

		config, err := Load(dir)
		require.NoError(t, err)
		require.Equal(t, 7, config.GetHistoryDepth())
		require.Equal(t, int64(1024), config.StorageQuota())
		require.Equal(t, 10, config.GetTrimKeep())
	})

	t.Run("fails on malformed json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(ConfigPath(dir), []byte("{"), 0600))
		_, err := Load(dir)
		require.Error(t, err)
	})
}

func TestConfigGetSet(t *testing.T) {
	config := &Config{}

	require.NoError(t, config.Set("saveDebounceMs", "50"))
	value, err := config.Get("saveDebounceMs")
	require.NoError(t, err)
	require.Equal(t, "50", value)
	require.Equal(t, 50*time.Millisecond, config.SaveDebounce())

	require.Error(t, config.Set("saveDebounceMs", "-1"))
	require.Error(t, config.Set("saveDebounceMs", "soon"))
	require.Error(t, config.Set("colour", "1"))
	_, err = config.Get("colour")
	require.Error(t, err)

	for _, key := range Keys() {
		_, err := config.Get(key)
		require.NoError(t, err, key)
	}
}

func TestWorkspace(t *testing.T) {
	t.Run("init creates the directory and a default config", func(t *testing.T) {
		t.Setenv(EnvDir, "")
		root := t.TempDir()

		dir, existed, err := Init(root)
		require.NoError(t, err)
		require.False(t, existed)
		require.Equal(t, DirName, filepath.Base(dir))
		require.FileExists(t, ConfigPath(dir))

		_, existed, err = Init(root)
		require.NoError(t, err)
		require.True(t, existed)
	})

	t.Run("discovery walks up from nested directories", func(t *testing.T) {
		t.Setenv(EnvDir, "")
		root := t.TempDir()
		dir, _, err := Init(root)
		require.NoError(t, err)

		nested := filepath.Join(root, "a", "b", "c")
		require.NoError(t, os.MkdirAll(nested, 0750))

		found, err := FindWorkspace(nested)
		require.NoError(t, err)
		require.Equal(t, dir, found)
	})

	t.Run("missing workspace reports not initialized", func(t *testing.T) {
		t.Setenv(EnvDir, "")
		_, err := FindWorkspace(t.TempDir())
		require.ErrorIs(t, err, tmerrors.ErrNotInitialized)
	})

	t.Run("environment override wins", func(t *testing.T) {
		override := filepath.Join(t.TempDir(), "elsewhere")
		t.Setenv(EnvDir, override)

		dir, _, err := Init(t.TempDir())
		require.NoError(t, err)
		require.Equal(t, override, dir)

		found, err := FindWorkspace(t.TempDir())
		require.NoError(t, err)
		require.Equal(t, override, found)
	})
}
