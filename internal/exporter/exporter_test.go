package exporter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxscorecli/internal/config"
	apperrors "boxscorecli/internal/errors"
)

func TestExporterWriteFile(t *testing.T) {
	exp := New(nil)
	dir := t.TempDir()

	for _, format := range config.OutputFormats {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(dir, format, FileName(format))
			require.NoError(t, exp.WriteFile(path, format, featureTable(t), WriteOptions{}))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestExporterWrite(t *testing.T) {
	exp := New(nil)

	var buf bytes.Buffer
	require.NoError(t, exp.Write(&buf, config.FormatJSON, featureTable(t), WriteOptions{}))
	assert.True(t, json.Valid(buf.Bytes()))

	buf.Reset()
	require.NoError(t, exp.Write(&buf, config.FormatCSV, featureTable(t), WriteOptions{}))
	assert.Contains(t, buf.String(), "LAL @ BOS")
}

func TestExporterUnsupportedFormat(t *testing.T) {
	exp := New(nil)

	err := exp.Write(&bytes.Buffer{}, "parquet", featureTable(t), WriteOptions{})
	assert.ErrorContains(t, err, "unsupported output format")

	err = exp.WriteFile(filepath.Join(t.TempDir(), "x.parquet"), "parquet", featureTable(t), WriteOptions{})
	assert.ErrorContains(t, err, "unsupported output format")
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestExporterWriteFileStorageError(t *testing.T) {
	exp := New(nil)

	// a regular file where the output directory should be
	blocker := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	for _, format := range config.OutputFormats {
		t.Run(format, func(t *testing.T) {
			err := exp.WriteFile(filepath.Join(blocker, FileName(format)), format, featureTable(t), WriteOptions{})
			require.Error(t, err)

			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrTypeStorage, appErr.Type)
			assert.Equal(t, format, appErr.Context["format"])
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "features.csv", FileName(config.FormatCSV))
	assert.Equal(t, "features.xlsx", FileName(config.FormatXLSX))
}
