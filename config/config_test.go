package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blogstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "data/badger", cfg.Storage.DataDir)
	assert.True(t, cfg.Store.EnforceCommentOwnership)
	assert.Equal(t, uint8(3), cfg.Store.MaxTagsCount)
	assert.Equal(t, uint16(2000), cfg.Store.MaxContentLen)
	assert.Equal(t, uint8(250), cfg.Store.MaxTitleLen)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:9000"
  read_timeout: 3s
storage:
  in_memory: true
  data_dir: ""
store:
  enforce_comment_ownership: false
  max_tags_count: 5
  tags: [go, rust]
log:
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Storage.InMemory)
	assert.False(t, cfg.Store.EnforceCommentOwnership)
	assert.Equal(t, uint8(5), cfg.Store.MaxTagsCount)
	assert.Equal(t, uint8(250), cfg.Store.MaxTitleLen)
	assert.Equal(t, []string{"go", "rust"}, cfg.Store.Tags)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BLOGSTORE_ADDR", ":7000")
	t.Setenv("BLOGSTORE_DATA_DIR", "/tmp/blog")
	t.Setenv("BLOGSTORE_LOG_LEVEL", "debug")
	t.Setenv("BLOGSTORE_LOG_FORMAT", "json")

	cfg, err := Load(writeConfig(t, "server:\n  addr: \":9000\"\n"))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "/tmp/blog", cfg.Storage.DataDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "server: [", "parse config"},
		{"bad level", "log:\n  level: loud\n", "Level"},
		{"bad format", "log:\n  format: xml\n", "Format"},
		{"missing data dir", "storage:\n  data_dir: \"\"\n", "DataDir"},
		{"zero body cap", "server:\n  max_body_bytes: 0\n", "MaxBodyBytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config")
	})
}
