package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxscorecli/internal/shared/testutil"
)

func TestCSVWriterWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(nil).Write(&buf, featureTable(t), WriteOptions{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"TEAM_ID", "GAME_ID", "MATCHUP", "EFG_PCT", "TOV_PCT"},
		{"1610612738", "0022300001", "BOS vs. LAL", "0.5", ""},
		{"1610612747", "0022300001", "LAL @ BOS", "0.30000000000000004", ""},
	}, records)
}

func TestCSVWriterBOM(t *testing.T) {
	tests := []struct {
		name    string
		options WriteOptions
		wantBOM bool
	}{
		{"without BOM", WriteOptions{}, false},
		{"with BOM", WriteOptions{BOMPrefix: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewCSVWriter(nil).Write(&buf, featureTable(t), tt.options))

			assert.Equal(t, tt.wantBOM, bytes.HasPrefix(buf.Bytes(), utf8BOM))
			body := bytes.TrimPrefix(buf.Bytes(), utf8BOM)
			assert.True(t, bytes.HasPrefix(body, []byte("TEAM_ID,")))
		})
	}
}

func TestCSVWriterWriteTable(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	path := filepath.Join(t.TempDir(), "nested", "out", "features.csv")

	require.NoError(t, NewCSVWriter(logger).WriteTable(path, featureTable(t), WriteOptions{BOMPrefix: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, utf8BOM))

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)

	assert.True(t, handler.ContainsAttr("file_path", path))
	assert.True(t, handler.ContainsAttr("record_count", int64(2)))
}

func TestCSVWriterWriteTableUnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := NewCSVWriter(nil).WriteTable(filepath.Join(blocker, "features.csv"), featureTable(t), WriteOptions{})
	assert.Error(t, err)
}
