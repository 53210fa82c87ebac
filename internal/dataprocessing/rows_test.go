package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "boxscorecli/internal/errors"
)

func TestDropIncompleteRows(t *testing.T) {
	tbl := newTestTable(t, []string{"GAME_ID", "FG_PCT", "AST"},
		[]interface{}{"g1", 0.5, 20},
		[]interface{}{"g1", math.NaN(), 18},
		[]interface{}{"g2", 0.4, nil},
		[]interface{}{"g2", 0.45, 22},
	)

	out, dropped, err := DropIncompleteRows(tbl)
	require.NoError(t, err)

	assert.Equal(t, 2, dropped)
	assert.Equal(t, [][]interface{}{{"g1", 0.5, 20.0}, {"g2", 0.45, 22.0}}, out.Records())
	assert.Equal(t, 4, tbl.Len())
}

func TestSortByGame(t *testing.T) {
	tbl := newTestTable(t, []string{"GAME_ID", "TEAM_ID"},
		[]interface{}{"0022300002", 1},
		[]interface{}{"0022300001", 2},
		[]interface{}{"0022300002", 3},
		[]interface{}{"0022300001", 4},
	)

	out, err := SortByGame(tbl)
	require.NoError(t, err)

	col, _ := out.Column(ColTeamID)
	ids := make([]string, len(col))
	for i, v := range col {
		ids[i] = v.Text()
	}
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids)
}

func TestDropIncompleteRowsEveryRow(t *testing.T) {
	tbl := newTestTable(t, []string{"GAME_ID", "AST"},
		[]interface{}{"g1", nil},
		[]interface{}{nil, 18},
	)

	out, dropped, err := DropIncompleteRows(tbl)
	require.NoError(t, err)

	assert.Equal(t, 2, dropped)
	assert.Equal(t, 0, out.Len())
	assert.Equal(t, []string{"GAME_ID", "AST"}, out.Columns())
}

func TestSortByGameOrdering(t *testing.T) {
	tests := []struct {
		name string
		ids  []interface{}
		want [][]interface{}
	}{
		{
			name: "numeric ids sort numerically",
			ids:  []interface{}{10, 9, 100},
			want: [][]interface{}{{9.0}, {10.0}, {100.0}},
		},
		{
			// a column holding any text is a text column
			name: "mixed ids sort as text",
			ids:  []interface{}{"b", 10, "a", 9},
			want: [][]interface{}{{"10"}, {"9"}, {"a"}, {"b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([][]interface{}, len(tt.ids))
			for i, id := range tt.ids {
				rows[i] = []interface{}{id}
			}
			tbl := newTestTable(t, []string{"GAME_ID"}, rows...)

			out, err := SortByGame(tbl)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Records())
		})
	}
}

func TestSortByGameRequiresGameID(t *testing.T) {
	tbl := newTestTable(t, []string{"TEAM_ID"}, []interface{}{1})

	_, err := SortByGame(tbl)
	requireAppError(t, err, apperrors.ErrTypeColumnNotFound, StageDropIncomplete)
}
