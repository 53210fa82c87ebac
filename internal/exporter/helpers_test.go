package exporter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"boxscorecli/internal/dataprocessing"
)

// featureTable returns a two-row table with an id, a text key, a ratio and
// an undefined cell
func featureTable(t *testing.T) *dataprocessing.Table {
	t.Helper()

	tbl, err := dataprocessing.NewTable(
		[]string{"TEAM_ID", "GAME_ID", "MATCHUP", "EFG_PCT", "TOV_PCT"},
		[][]dataprocessing.Value{
			{
				dataprocessing.Number(1610612738),
				dataprocessing.String("0022300001"),
				dataprocessing.String("BOS vs. LAL"),
				dataprocessing.Number(0.5),
				dataprocessing.Number(math.NaN()),
			},
			{
				dataprocessing.Number(1610612747),
				dataprocessing.String("0022300001"),
				dataprocessing.String("LAL @ BOS"),
				dataprocessing.Number(inexactSum()),
				dataprocessing.Missing(),
			},
		},
	)
	require.NoError(t, err)
	return tbl
}

// inexactSum is 0.1 + 0.2 in float64 arithmetic. Constant operands would be
// folded exactly to 0.3 at compile time.
func inexactSum() float64 {
	a := 0.1
	return a + 0.2
}
