package dataprocessing

import (
	"strings"

	apperrors "boxscorecli/internal/errors"
	"boxscorecli/pkg/contracts/domain"
)

// Matchup markers, e.g. "BOS vs. LAL" (home) and "LAL @ BOS" (away)
const (
	HomeMarker = "vs."
	AwayMarker = "@"
)

// ClassifyMatchup returns 1 for a home matchup and 0 for an away one. ok is
// false when the string carries neither marker.
func ClassifyMatchup(matchup string) (home int, ok bool) {
	switch {
	case strings.Contains(matchup, HomeMarker):
		return 1, true
	case strings.Contains(matchup, AwayMarker):
		return 0, true
	default:
		return 0, false
	}
}

// DeriveHomeFlag writes HOME from MATCHUP. Unrecognized matchups fail in strict
// mode and count as away in lenient mode.
func DeriveHomeFlag(t *Table, mode domain.HomeFlagMode) (*Table, error) {
	idx, err := t.requireColumns(StageHomeFlag, ColMatchup)
	if err != nil {
		return nil, err
	}
	matchupCol := idx[0]
	gameCol, hasGame := t.ColumnIndex(ColGameID)

	home := make([]float64, t.Len())
	for i := range home {
		matchup := t.cell(i, matchupCol).Text()
		flag, ok := ClassifyMatchup(matchup)
		if !ok && mode != domain.HomeFlagLenient {
			e := malformed(StageHomeFlag, "row %d has unrecognized matchup %q", i, matchup).
				WithContext(apperrors.ContextRow, i).
				WithContext(apperrors.ContextColumn, ColMatchup)
			if hasGame {
				e.WithContext(apperrors.ContextGameID, t.cell(i, gameCol).Text())
			}
			return nil, e
		}
		home[i] = float64(flag)
	}
	return t.mutate(StageHomeFlag, floatSeries(ColHome, home))
}
