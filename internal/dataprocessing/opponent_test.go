package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "boxscorecli/internal/errors"
	"boxscorecli/pkg/contracts/domain"
)

type teamGame struct {
	team float64
	game string
	home interface{}
	base float64
}

// combinedTable builds a table with every combined stat of a row set to base
// plus the stat's position, so each cell is traceable to its row
func combinedTable(t *testing.T, games ...teamGame) *Table {
	t.Helper()

	columns := append([]string{ColTeamID, ColGameID, ColHome}, CombinedStats...)
	rows := make([][]interface{}, len(games))
	for i, g := range games {
		row := []interface{}{g.team, g.game, g.home}
		for j := range CombinedStats {
			row = append(row, g.base+float64(j))
		}
		rows[i] = row
	}
	return newTestTable(t, columns, rows...)
}

func TestJoinOpponentsIsSymmetric(t *testing.T) {
	tbl := combinedTable(t,
		teamGame{team: 1, game: "g1", home: 1, base: 100},
		teamGame{team: 2, game: "g1", home: 0, base: 200},
	)

	out, dropped, err := JoinOpponents(tbl, domain.PairingStrict)
	require.NoError(t, err)
	assert.Empty(t, dropped)

	assert.Equal(t, tbl.Width()+len(CombinedStats), out.Width())
	for _, s := range CombinedStats {
		assert.Equal(t, out.Float(1, s), out.Float(0, OpponentPrefix+s), s)
		assert.Equal(t, out.Float(0, s), out.Float(1, OpponentPrefix+s), s)
	}
}

func TestJoinOpponentsGroupsByGameID(t *testing.T) {
	// rows of a game are not adjacent and the away row comes first
	tbl := combinedTable(t,
		teamGame{team: 2, game: "g1", home: 0, base: 200},
		teamGame{team: 3, game: "g2", home: 1, base: 300},
		teamGame{team: 1, game: "g1", home: 1, base: 100},
		teamGame{team: 4, game: "g2", home: 0, base: 400},
	)

	out, _, err := JoinOpponents(tbl, domain.PairingStrict)
	require.NoError(t, err)
	require.Equal(t, 4, out.Len())

	teams := []float64{out.Float(0, ColTeamID), out.Float(1, ColTeamID), out.Float(2, ColTeamID), out.Float(3, ColTeamID)}
	assert.Equal(t, []float64{2, 1, 3, 4}, teams)

	assert.Equal(t, 118.0, out.Float(0, "OPP_PLUS_MINUS"))
	assert.Equal(t, 300.0, out.Float(3, "OPP_MIN"))
}

func TestJoinOpponentsUnpaired(t *testing.T) {
	tests := []struct {
		name  string
		games []teamGame
		rows  int
	}{
		{
			name:  "single row",
			games: []teamGame{{team: 3, game: "g2", home: 1}},
			rows:  1,
		},
		{
			name:  "three rows",
			games: []teamGame{{team: 3, game: "g2", home: 1}, {team: 4, game: "g2", home: 0}, {team: 5, game: "g2", home: 0}},
			rows:  3,
		},
		{
			name:  "two home rows",
			games: []teamGame{{team: 3, game: "g2", home: 1}, {team: 4, game: "g2", home: 1}},
			rows:  2,
		},
		{
			name:  "undefined home flag",
			games: []teamGame{{team: 3, game: "g2", home: 1}, {team: 4, game: "g2", home: nil}},
			rows:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			games := append([]teamGame{
				{team: 1, game: "g1", home: 1, base: 100},
				{team: 2, game: "g1", home: 0, base: 200},
			}, tt.games...)
			tbl := combinedTable(t, games...)

			_, _, err := JoinOpponents(tbl, domain.PairingStrict)
			appErr := requireAppError(t, err, apperrors.ErrTypeUnpairedGame, StageOpponents)
			assert.Equal(t, "g2", appErr.Context[apperrors.ContextGameID])
			assert.Equal(t, tt.rows, appErr.Context[apperrors.ContextRows])

			out, dropped, err := JoinOpponents(tbl, domain.PairingLenient)
			require.NoError(t, err)
			assert.Equal(t, []string{"g2"}, dropped)
			assert.Equal(t, 2, out.Len())
		})
	}
}

func TestJoinOpponentsRequiresCombinedStats(t *testing.T) {
	tbl := combinedTable(t, teamGame{team: 1, game: "g1", home: 1})
	tbl, err := DropColumns(tbl, StagePrune, "PFD")
	require.NoError(t, err)

	_, _, err = JoinOpponents(tbl, domain.PairingStrict)
	appErr := requireAppError(t, err, apperrors.ErrTypeColumnNotFound, StageOpponents)
	assert.Equal(t, "PFD", appErr.Context[apperrors.ContextColumn])
}
