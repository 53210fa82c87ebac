package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "boxscorecli/internal/errors"
)

var factorColumns = []string{
	"FGM", "FG3M", "FGA", "TOV", "OREB", "DREB", "FTA",
	"OPP_FGM", "OPP_FG3M", "OPP_FGA", "OPP_TOV", "OPP_OREB", "OPP_DREB", "OPP_FTA",
}

func TestComputeFourFactors(t *testing.T) {
	tbl := newTestTable(t, factorColumns,
		[]interface{}{40, 10, 85, 14, 10, 30, 20, 29, 7, 64, 12, 8, 28, 15},
	)

	out, err := ComputeFourFactors(tbl)
	require.NoError(t, err)

	tests := []struct {
		column string
		want   float64
	}{
		{ColEFGPct, (40 + 0.5*10) / 85.0},
		{ColTOVPct, 14 / (85 - 10 + 14 + 0.4*20)},
		{ColOREBPct, 10 / (10 + 28.0)},
		{ColFTRate, 20 / 85.0},
		{ColOppEFGPct, (29 + 0.5*7) / 64.0},
		{ColOppTOVPct, 12 / (64 - 8 + 12 + 0.4*15)},
		{ColOppFTRate, 15 / 64.0},
		{ColDREBPct, 30 / (64 - 29.0)},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			assert.InDelta(t, tt.want, out.Float(0, tt.column), 1e-12)
		})
	}

	assert.InDelta(t, 0.5294, out.Float(0, ColEFGPct), 1e-4)
	assert.False(t, out.HasColumn("OPP_DREB_PCT"))
	assert.False(t, out.HasColumn("OPP_OREB_PCT"))
	assert.Equal(t, len(factorColumns)+8, out.Width())
}

func TestComputeFourFactorsZeroDenominator(t *testing.T) {
	tbl := newTestTable(t, factorColumns,
		[]interface{}{0, 0, 0, 0, 0, 5, 0, 3, 0, 3, 0, 0, 0, 0},
	)

	out, err := ComputeFourFactors(tbl)
	require.NoError(t, err)

	assert.True(t, math.IsNaN(out.Float(0, ColEFGPct)))
	assert.True(t, math.IsNaN(out.Float(0, ColFTRate)))
	assert.True(t, math.IsNaN(out.Float(0, ColOREBPct)))
	// nonzero numerator over a zero denominator is NaN as well
	assert.True(t, math.IsNaN(out.Float(0, ColDREBPct)))
	assert.InDelta(t, 1.0, out.Float(0, ColOppEFGPct), 1e-12)
}

func TestComputeFourFactorsRequiresOpponentColumns(t *testing.T) {
	tbl := newTestTable(t, factorColumns[:7], []interface{}{40, 10, 85, 14, 10, 30, 20})

	_, err := ComputeFourFactors(tbl)
	appErr := requireAppError(t, err, apperrors.ErrTypeColumnNotFound, StageFourFactors)
	assert.Equal(t, "OPP_DREB", appErr.Context[apperrors.ContextColumn])
}
