package dataprocessing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "boxscorecli/internal/errors"
	"boxscorecli/pkg/contracts/domain"
)

func TestDropRankColumns(t *testing.T) {
	half, _ := loadSampleGame(t)

	pruned, err := DropRankColumns(half)
	require.NoError(t, err)

	for _, c := range pruned.Columns() {
		assert.NotContains(t, c, RankMarker)
	}
	for _, c := range MetadataColumns {
		assert.False(t, pruned.HasColumn(c), c)
	}
	assert.Equal(t, half.Width()-6, pruned.Width())
	assert.Equal(t, half.Len(), pruned.Len())
	// source is untouched
	assert.True(t, half.HasColumn("GP_RANK"))
}

func TestPruneIsNotIdempotent(t *testing.T) {
	half, _ := loadSampleGame(t)

	pruned, err := DropRankColumns(half)
	require.NoError(t, err)

	_, err = DropRankColumns(pruned)
	appErr := requireAppError(t, err, apperrors.ErrTypeColumnNotFound, StagePrune)
	assert.Equal(t, "SEASON_YEAR", appErr.Context[apperrors.ContextColumn])

	_, err = DropMetadataColumns(pruned)
	requireAppError(t, err, apperrors.ErrTypeColumnNotFound, StagePrune)
}

func TestDropMetadataColumnsToleratesRankColumns(t *testing.T) {
	half, _ := loadSampleGame(t)

	pruned, err := DropMetadataColumns(half)
	require.NoError(t, err)

	assert.True(t, pruned.HasColumn("GP_RANK"))
	assert.False(t, pruned.HasColumn("TEAM_NAME"))
}

func TestDropColumnsFailsBeforeDroppingAnything(t *testing.T) {
	tbl := newTestTable(t, []string{"A", "B"}, []interface{}{1, 2})

	out, err := DropColumns(tbl, StagePrune, "A", "C")
	requireAppError(t, err, apperrors.ErrTypeColumnNotFound, StagePrune)
	assert.Nil(t, out)
	assert.Equal(t, []string{"A", "B"}, tbl.Columns())
}

func TestDropPeriodColumns(t *testing.T) {
	tbl := newTestTable(t,
		[]string{"TEAM_ID", "HALF_PTS", "3Q_PTS", "PTS", "OPP_PTS"},
		[]interface{}{1, 50, 30, 80, 75},
	)

	out, err := DropPeriodColumns(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"TEAM_ID", "PTS", "OPP_PTS"}, out.Columns())
	assert.Equal(t, []interface{}{1.0, 80.0, 75.0}, out.Records()[0])
}

func TestFinalFilter(t *testing.T) {
	columns := append([]string{"MATCHUP", "WL", "AST", "HALF_AST", "3Q_AST", ColEFGPct}, FeatureInputColumns...)
	row := make([]interface{}, len(columns))
	for i := range row {
		row[i] = 1
	}
	tbl := newTestTable(t, columns, row)

	t.Run("full profile keeps feature inputs", func(t *testing.T) {
		out, err := FinalFilter(tbl, domain.ProfileFull)
		require.NoError(t, err)
		assert.Equal(t, len(columns)-2, out.Width())
		assert.True(t, out.HasColumn("PTS"))
		assert.False(t, out.HasColumn("HALF_AST"))
	})

	t.Run("model profile drops feature inputs", func(t *testing.T) {
		out, err := FinalFilter(tbl, domain.ProfileModel)
		require.NoError(t, err)
		assert.Equal(t, []string{"MATCHUP", "WL", "AST", ColEFGPct}, out.Columns())
	})

	t.Run("model profile requires every input", func(t *testing.T) {
		short, err := DropColumns(tbl, StagePrune, "HOME")
		require.NoError(t, err)

		_, err = FinalFilter(short, domain.ProfileModel)
		appErr := requireAppError(t, err, apperrors.ErrTypeColumnNotFound, StageFinalFilter)
		assert.Equal(t, "HOME", appErr.Context[apperrors.ContextColumn])
	})
}

func TestDropColumnsEveryColumn(t *testing.T) {
	tbl := newTestTable(t, []string{"A", "B"}, []interface{}{1, 2}, []interface{}{3, 4})

	out, err := DropColumns(tbl, StagePrune, "B", "A")
	require.NoError(t, err)
	assert.Equal(t, 0, out.Width())
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, []interface{}{}, out.Records()[0])
}

func TestDropMatchingKeepsOrder(t *testing.T) {
	tbl := newTestTable(t, []string{"PTS", "GP_RANK", "AST", "W_RANK"}, []interface{}{80, 3, 20, 9})

	out, err := DropMatching(tbl, StagePrune, func(c string) bool { return strings.Contains(c, RankMarker) })
	require.NoError(t, err)
	assert.Equal(t, []string{"PTS", "AST"}, out.Columns())
	assert.Equal(t, []interface{}{80.0, 20.0}, out.Records()[0])
}
