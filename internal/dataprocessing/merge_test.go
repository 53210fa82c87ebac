package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "boxscorecli/internal/errors"
)

var mergeKey = []string{"TEAM_ID", "GAME_ID"}

func TestMergePeriods(t *testing.T) {
	left := newTestTable(t, []string{"TEAM_ID", "GAME_ID", "HALF_PTS"},
		[]interface{}{1, "g1", 50},
		[]interface{}{2, "g1", 48},
		[]interface{}{3, "g2", 40},
	)
	right := newTestTable(t, []string{"GAME_ID", "TEAM_ID", "3Q_PTS"},
		[]interface{}{"g1", 2, 25},
		[]interface{}{"g1", 1, 27},
		[]interface{}{"g9", 9, 20},
	)

	merged, err := MergePeriods(left, right, mergeKey)
	require.NoError(t, err)

	assert.Equal(t, []string{"TEAM_ID", "GAME_ID", "HALF_PTS", "3Q_PTS"}, merged.Columns())
	assert.Equal(t, [][]interface{}{
		{1.0, "g1", 50.0, 27.0},
		{2.0, "g1", 48.0, 25.0},
	}, merged.Records())
}

func TestMergePeriodsDuplicateKeys(t *testing.T) {
	left := newTestTable(t, []string{"TEAM_ID", "GAME_ID", "HALF_PTS"},
		[]interface{}{1, "g1", 50},
		[]interface{}{1, "g1", 51},
	)
	right := newTestTable(t, []string{"TEAM_ID", "GAME_ID", "3Q_PTS"},
		[]interface{}{1, "g1", 25},
		[]interface{}{1, "g1", 26},
	)

	merged, err := MergePeriods(left, right, mergeKey)
	require.NoError(t, err)
	assert.Equal(t, 4, merged.Len())
}

func TestMergePeriodsKeysCompareByText(t *testing.T) {
	left := newTestTable(t, []string{"TEAM_ID", "GAME_ID", "HALF_PTS"},
		[]interface{}{1, "0022300001", 50})
	right := newTestTable(t, []string{"TEAM_ID", "GAME_ID", "3Q_PTS"},
		[]interface{}{1, 22300001, 25})

	merged, err := MergePeriods(left, right, mergeKey)
	require.NoError(t, err)
	assert.Equal(t, 0, merged.Len())
}

func TestMergePeriodsErrors(t *testing.T) {
	left := newTestTable(t, []string{"TEAM_ID", "GAME_ID", "PTS"}, []interface{}{1, "g1", 50})

	t.Run("missing key column", func(t *testing.T) {
		right := newTestTable(t, []string{"TEAM_ID", "3Q_PTS"}, []interface{}{1, 25})

		_, err := MergePeriods(left, right, mergeKey)
		appErr := requireAppError(t, err, apperrors.ErrTypeColumnNotFound, StageMerge)
		assert.Equal(t, "GAME_ID", appErr.Context[apperrors.ContextColumn])
	})

	t.Run("untagged tables collide", func(t *testing.T) {
		right := newTestTable(t, []string{"TEAM_ID", "GAME_ID", "PTS"}, []interface{}{1, "g1", 25})

		_, err := MergePeriods(left, right, mergeKey)
		appErr := requireAppError(t, err, apperrors.ErrTypeMalformedInput, StageMerge)
		assert.Equal(t, "PTS", appErr.Context[apperrors.ContextColumn])
	})
}

func TestMergePeriodsKeepsKeyTypes(t *testing.T) {
	left := newTestTable(t, []string{"TEAM_ID", "GAME_ID", "HALF_PTS"},
		[]interface{}{1610612738, "0022300001", 50},
		[]interface{}{nil, "0022300001", 10},
	)
	right := newTestTable(t, []string{"TEAM_ID", "GAME_ID", "3Q_PTS"},
		[]interface{}{"1610612738", "0022300001", 25},
		[]interface{}{nil, "0022300001", 5},
	)

	merged, err := MergePeriods(left, right, mergeKey)
	require.NoError(t, err)

	// numeric and text ids with the same canonical text match; empty keys match each other
	assert.Equal(t, [][]interface{}{
		{1610612738.0, "0022300001", 50.0, 25.0},
		{nil, "0022300001", 10.0, 5.0},
	}, merged.Records())
}
