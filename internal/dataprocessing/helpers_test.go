package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "boxscorecli/internal/errors"
	"boxscorecli/internal/shared/testutil"
)

// newTestTable builds a table from plain Go values
func newTestTable(t *testing.T, columns []string, rows ...[]interface{}) *Table {
	t.Helper()

	values := make([][]Value, len(rows))
	for i, r := range rows {
		row := make([]Value, len(r))
		for j, cell := range r {
			v, err := ValueOf(cell)
			require.NoError(t, err)
			row[j] = v
		}
		values[i] = row
	}
	tbl, err := NewTable(columns, values)
	require.NoError(t, err)
	return tbl
}

// requireAppError asserts err is an AppError of the given type raised by stage
func requireAppError(t *testing.T, err error, errType apperrors.ErrorType, stage string) *apperrors.AppError {
	t.Helper()

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected *AppError, got %T: %v", err, err)
	require.Equal(t, errType, appErr.Type, appErr.Error())
	require.Equal(t, stage, appErr.Stage())
	return appErr
}

// loadSampleGame returns the loaded half and third-quarter tables of the sample game
func loadSampleGame(t *testing.T) (*Table, *Table) {
	t.Helper()

	half, q3 := testutil.SampleGame()
	h, q, err := LoadTables(half, q3)
	require.NoError(t, err)
	return h, q
}

// rowByTeam returns the row index of teamID
func rowByTeam(t *testing.T, tbl *Table, teamID float64) int {
	t.Helper()

	for i := 0; i < tbl.Len(); i++ {
		if tbl.Float(i, ColTeamID) == teamID {
			return i
		}
	}
	t.Fatalf("team %v not found", teamID)
	return -1
}
