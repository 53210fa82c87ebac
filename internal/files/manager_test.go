package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxscorecli/internal/config"
	"boxscorecli/internal/shared/testutil"
)

func newTestManager(t *testing.T) (*Manager, *config.Paths) {
	t.Helper()
	paths := config.NewPaths(t.TempDir(), config.PipelineConfig{})
	require.NoError(t, paths.EnsureDirectories())
	return NewManager(paths, nil), paths
}

func TestManagerInputPath(t *testing.T) {
	m, paths := newTestManager(t)

	assert.Equal(t, "", m.InputPath(""))
	abs := filepath.Join(t.TempDir(), "half.json")
	assert.Equal(t, abs, m.InputPath(abs))
	assert.Equal(t, filepath.Join(paths.InputDir, "no_such_half.json"), m.InputPath("no_such_half.json"))
}

func TestManagerOutputPath(t *testing.T) {
	m, paths := newTestManager(t)
	dir := t.TempDir()

	assert.Equal(t, filepath.Join(paths.OutputDir, "features.csv"), m.OutputPath("", "features.csv"))
	assert.Equal(t, filepath.Join(dir, "features.csv"), m.OutputPath(dir, "features.csv"))
	assert.Equal(t, filepath.Join(dir, "out.json"), m.OutputPath(filepath.Join(dir, "out.json"), "features.json"))
}

func TestManagerFileExists(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	paths := config.NewPaths(t.TempDir(), config.PipelineConfig{})
	require.NoError(t, paths.EnsureDirectories())
	m := NewManager(paths, logger)

	require.NoError(t, os.WriteFile(paths.GetInputPath("half.json"), []byte("{}"), 0644))

	assert.True(t, m.FileExists("half.json"))
	assert.False(t, m.FileExists("3q.json"))
	assert.False(t, m.FileExists(paths.InputDir))
	assert.True(t, handler.ContainsAttr("exists", true))
}

func TestManagerEnsureDirectory(t *testing.T) {
	m, _ := newTestManager(t)
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, m.EnsureDirectory(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
