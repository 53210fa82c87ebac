package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxscorecli/internal/shared/testutil"
)

func TestNewPaths(t *testing.T) {
	base := t.TempDir()

	t.Run("relative paths resolve against base", func(t *testing.T) {
		p := NewPaths(base, Default().Pipeline)

		assert.Equal(t, filepath.Join(base, "data", "input"), p.InputDir)
		assert.Equal(t, filepath.Join(base, "data", "output"), p.OutputDir)
		assert.Equal(t, filepath.Join(base, "logs"), p.LogsDir)
		assert.Equal(t, filepath.Join(base, "data", "output", "features.csv"), p.GetOutputPath("features.csv"))
		assert.Equal(t, filepath.Join(base, "data", "input", "half.json"), p.GetInputPath("half.json"))
		assert.Equal(t, filepath.Join(base, "logs", "app.log"), p.GetLogPath("app.log"))
	})

	t.Run("absolute paths are kept", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out")
		p := NewPaths(base, PipelineConfig{OutputDir: out})

		assert.Equal(t, out, p.OutputDir)
		assert.Equal(t, filepath.Join(base, DefaultInputDir), p.InputDir)
	})
}

func TestGetPaths(t *testing.T) {
	p, err := GetPaths(Default().Pipeline)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(p.BaseDir))
	assert.Equal(t, filepath.Join(p.BaseDir, DefaultOutputDir), p.OutputDir)
}

func TestEnsureDirectories(t *testing.T) {
	p := NewPaths(t.TempDir(), Default().Pipeline)

	require.NoError(t, p.EnsureDirectories())

	for _, dir := range []string{p.DataDir, p.InputDir, p.OutputDir, p.LogsDir} {
		assert.DirExists(t, dir)
	}
	assert.True(t, FileExists(p.InputDir))
	assert.False(t, FileExists(filepath.Join(p.InputDir, "absent.json")))
}

func TestLogPathResolution(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	p := NewPaths("/srv/boxscore", Default().Pipeline)

	p.LogPathResolution(logger)

	assert.True(t, handler.ContainsAttr("directories.output", filepath.Join("/srv/boxscore", DefaultOutputDir)))
}
