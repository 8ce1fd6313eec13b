package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/git-eq/internal/constants"
	"github.com/mrz1836/git-eq/internal/errors"
)

// clearEnv blanks every GITEQ_ setting the tests rely on.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GITEQ_GIT_BINARY", "GITEQ_LOCK_WAIT", "GITEQ_LOCK_DEBOUNCE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(constants.HomeEnvVar, t.TempDir())

	cfg, err := Load(context.Background())
	require.NoError(t, err, "Load should not fail when no config file exists")
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ReadsGlobalConfigFromHome(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, constants.GlobalConfigName), []byte(`
git:
  binary: /usr/local/bin/git
`), 0o600))

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/git", cfg.Git.Binary)
	assert.Equal(t, constants.DefaultLockDebounce, cfg.Lock.Debounce)
}

func TestLoadFromPath_FileValues(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
git:
  binary: git2
lock:
  wait: false
  debounce: 250ms
`)

	cfg, err := LoadFromPath(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "git2", cfg.Git.Binary)
	assert.False(t, cfg.Lock.Wait)
	assert.Equal(t, 250*time.Millisecond, cfg.Lock.Debounce)
}

func TestLoadFromPath_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
lock:
  debounce: 3s
`)
	t.Setenv("GITEQ_LOCK_DEBOUNCE", "1m")
	t.Setenv("GITEQ_GIT_BINARY", "/opt/git")

	cfg, err := LoadFromPath(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.Lock.Debounce)
	assert.Equal(t, "/opt/git", cfg.Git.Binary)
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromPath(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPath_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "zero debounce",
			content: "lock:\n  debounce: 0s\n",
			wantErr: errors.ErrConfigInvalid,
		},
		{
			name:    "empty binary",
			content: "git:\n  binary: \"\"\n",
			wantErr: errors.ErrConfigInvalid,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)

			_, err := LoadFromPath(context.Background(), writeConfig(t, tc.content))
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestLoadFromPath_MalformedYAML(t *testing.T) {
	clearEnv(t)

	_, err := LoadFromPath(context.Background(), writeConfig(t, "lock: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromPath_BadDuration(t *testing.T) {
	clearEnv(t)

	_, err := LoadFromPath(context.Background(), writeConfig(t, "lock:\n  debounce: soon\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config")
}
