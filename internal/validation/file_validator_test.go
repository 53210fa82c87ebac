package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileValidator_ValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	v := NewFileValidator(nil)

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "json document", path: writeFile(t, dir, "half.json", `{"resultSets":[]}`)},
		{name: "upper case extension", path: writeFile(t, dir, "3Q.XLSX", "PK")},
		{name: "missing", path: filepath.Join(dir, "nope.json"), wantErr: ErrNotFound},
		{name: "directory", path: dir, wantErr: ErrNotRegular},
		{name: "csv", path: writeFile(t, dir, "half.csv", "a,b"), wantErr: ErrUnsupportedType},
		{name: "lock file", path: writeFile(t, dir, "~$3q.xlsx", "x"), wantErr: ErrTemporaryFile},
		{name: "empty", path: writeFile(t, dir, "empty.json", ""), wantErr: ErrEmptyFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateInputFile(tt.path)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFileValidator_ValidatePair(t *testing.T) {
	dir := t.TempDir()
	v := NewFileValidator(nil)
	half := writeFile(t, dir, "half.json", "{}")

	assert.NoError(t, v.ValidatePair(half, writeFile(t, dir, "3q.json", "{}")))

	err := v.ValidatePair(filepath.Join(dir, "missing.json"), writeFile(t, dir, "3q.txt", "x"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)
	dir := filepath.Join(t.TempDir(), "nested", "out")

	require.NoError(t, v.ValidateOutputDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	blocker := writeFile(t, t.TempDir(), "file", "x")
	assert.Error(t, v.ValidateOutputDirectory(filepath.Join(blocker, "sub")))
}
