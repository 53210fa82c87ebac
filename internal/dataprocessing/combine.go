package dataprocessing

import (
	"math"

	"github.com/go-gota/gota/series"

	"boxscorecli/pkg/contracts/domain"
)

// CombinePeriods writes STAT = HALF_STAT + 3Q_STAT for every combined stat and
// recomputes the shooting percentages from the combined makes and attempts
func CombinePeriods(t *Table) (*Table, error) {
	half, q3 := PeriodPrefix(domain.PeriodHalf), PeriodPrefix(domain.PeriodThirdQuarter)

	halfCols := make([]string, len(CombinedStats))
	q3Cols := make([]string, len(CombinedStats))
	for i, s := range CombinedStats {
		halfCols[i] = half + s
		q3Cols[i] = q3 + s
	}
	halfIdx, err := t.requireColumns(StageCombine, halfCols...)
	if err != nil {
		return nil, err
	}
	q3Idx, err := t.requireColumns(StageCombine, q3Cols...)
	if err != nil {
		return nil, err
	}

	cols := make([]series.Series, 0, len(CombinedStats)+len(recomputedPercentages))
	combined := make(map[string][]float64, len(CombinedStats))
	for i, s := range CombinedStats {
		h, q := t.floats(halfIdx[i]), t.floats(q3Idx[i])
		total := make([]float64, t.Len())
		for r := range total {
			// NaN marks a missing operand and carries through
			total[r] = h[r] + q[r]
		}
		combined[s] = total
		cols = append(cols, floatSeries(s, total))
	}
	for _, p := range recomputedPercentages {
		made, attempted := combined[p.made], combined[p.attempted]
		pct := make([]float64, t.Len())
		for r := range pct {
			pct[r] = ratio(made[r], attempted[r])
		}
		cols = append(cols, floatSeries(p.column, pct))
	}
	return t.mutate(StageCombine, cols...)
}

// ratio divides, giving NaN rather than an infinity when the denominator is zero
func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}
