package exporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, featureTable(t)))

	var got struct {
		Headers []string        `json:"headers"`
		Rows    [][]interface{} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, []string{"TEAM_ID", "GAME_ID", "MATCHUP", "EFG_PCT", "TOV_PCT"}, got.Headers)
	assert.Equal(t, [][]interface{}{
		{1610612738.0, "0022300001", "BOS vs. LAL", 0.5, nil},
		{1610612747.0, "0022300001", "LAL @ BOS", 0.30000000000000004, nil},
	}, got.Rows)
	assert.Contains(t, buf.String(), "null")
	assert.NotContains(t, buf.String(), "NaN")
}
