package dataprocessing

import (
	"github.com/go-gota/gota/series"
)

// factor is one derived ratio: output column, inputs, formula
type factor struct {
	column string
	inputs []string
	eval   func(x []float64) float64
}

// Inputs are read in the listed order. Zero denominators give NaN.
var fourFactors = []factor{
	{ColEFGPct, []string{"FGM", "FG3M", "FGA"}, effectiveFG},
	{ColTOVPct, []string{"TOV", "FGA", "OREB", "FTA"}, turnoverRate},
	{ColOREBPct, []string{"OREB", "OPP_DREB"}, func(x []float64) float64 { return ratio(x[0], x[0]+x[1]) }},
	{ColFTRate, []string{"FTA", "FGA"}, func(x []float64) float64 { return ratio(x[0], x[1]) }},
	{ColOppEFGPct, []string{"OPP_FGM", "OPP_FG3M", "OPP_FGA"}, effectiveFG},
	{ColOppTOVPct, []string{"OPP_TOV", "OPP_FGA", "OPP_OREB", "OPP_FTA"}, turnoverRate},
	{ColOppFTRate, []string{"OPP_FTA", "OPP_FGA"}, func(x []float64) float64 { return ratio(x[0], x[1]) }},
	// no OPP_DREB_PCT or OPP_OREB_PCT counterpart
	{ColDREBPct, []string{"DREB", "OPP_FGA", "OPP_FGM"}, func(x []float64) float64 { return ratio(x[0], x[1]-x[2]) }},
}

// (FGM + 0.5*FG3M) / FGA
func effectiveFG(x []float64) float64 {
	return ratio(x[0]+0.5*x[1], x[2])
}

// TOV / (FGA - OREB + TOV + 0.4*FTA)
func turnoverRate(x []float64) float64 {
	return ratio(x[0], x[1]-x[2]+x[0]+0.4*x[3])
}

// ComputeFourFactors adds the four-factor ratios for the team and, except for
// the rebounding ratios, for its opponent
func ComputeFourFactors(t *Table) (*Table, error) {
	cols := make([]series.Series, len(fourFactors))
	for i, f := range fourFactors {
		idx, err := t.requireColumns(StageFourFactors, f.inputs...)
		if err != nil {
			return nil, err
		}
		in := make([][]float64, len(idx))
		for j, c := range idx {
			in[j] = t.floats(c)
		}

		vals := make([]float64, t.Len())
		x := make([]float64, len(idx))
		for r := range vals {
			for j := range in {
				x[j] = in[j][r]
			}
			vals[r] = f.eval(x)
		}
		cols[i] = floatSeries(f.column, vals)
	}
	return t.mutate(StageFourFactors, cols...)
}
