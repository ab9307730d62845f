package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/captop/captop/pkg/system/cgroup"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "captop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.Summary)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.NoColor)
	assert.Equal(t, cgroup.DefaultStatPath, cfg.MemoryStatPath)
}

func TestLoad(t *testing.T) {
	path := write(t, "summary: true\nverbose: true\nmemory_stat_path: /mnt/cg/memory.stat\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Summary)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.NoColor, "absent keys keep their defaults")
	assert.Equal(t, "/mnt/cg/memory.stat", cfg.MemoryStatPath)
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(write(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	_, err := Load(write(t, "sumary: true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sumary")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
