package dataprocessing

import (
	"github.com/go-gota/gota/series"

	apperrors "boxscorecli/internal/errors"
	"boxscorecli/pkg/contracts/domain"
)

// gamePair holds the row indexes recorded for one game id
type gamePair struct {
	id   string
	rows []int
}

// JoinOpponents copies every combined stat of a team's opponent onto the team's
// row as OPP_<stat>, in both directions. Each game id must resolve to exactly
// one home row and one away row. In strict mode a violation is an
// UnpairedGameError; in lenient mode the game is dropped and its id returned.
func JoinOpponents(t *Table, mode domain.PairingMode) (*Table, []string, error) {
	if _, err := t.requireColumns(StageOpponents, ColGameID, ColHome); err != nil {
		return nil, nil, err
	}

	statIdx, err := t.requireColumns(StageOpponents, CombinedStats...)
	if err != nil {
		return nil, nil, err
	}

	gameIDs, _ := t.Column(ColGameID)
	flags, _ := t.Column(ColHome)

	var dropped []string
	var order, opponent []int
	for _, g := range groupByGame(gameIDs) {
		home, away, ok := splitPair(flags, g)
		if !ok {
			if mode == domain.PairingLenient {
				dropped = append(dropped, g.id)
				continue
			}
			return nil, nil, unpaired(g)
		}

		// input order within the game is kept
		for _, ri := range g.rows {
			opp := away
			if ri == away {
				opp = home
			}
			order = append(order, ri)
			opponent = append(opponent, opp)
		}
	}

	out, err := t.subset(StageOpponents, order)
	if err != nil {
		return nil, nil, err
	}
	cols := make([]series.Series, len(CombinedStats))
	for i, s := range CombinedStats {
		vals := make([]Value, len(opponent))
		for r, opp := range opponent {
			vals[r] = t.cell(opp, statIdx[i])
		}
		cols[i] = toSeries(OpponentPrefix+s, vals)
	}
	out, err = out.mutate(StageOpponents, cols...)
	if err != nil {
		return nil, nil, err
	}
	return out, dropped, nil
}

// groupByGame groups row indexes by game id in first-seen order
func groupByGame(ids []Value) []*gamePair {
	byID := make(map[string]*gamePair)
	var order []*gamePair
	for i, v := range ids {
		id := v.Text()
		g, ok := byID[id]
		if !ok {
			g = &gamePair{id: id}
			byID[id] = g
			order = append(order, g)
		}
		g.rows = append(g.rows, i)
	}
	return order
}

// splitPair returns the home and away row of a game
func splitPair(flags []Value, g *gamePair) (home, away int, ok bool) {
	if len(g.rows) != 2 {
		return 0, 0, false
	}
	home, away = -1, -1
	for _, ri := range g.rows {
		flag, isNum := flags[ri].Float()
		switch {
		case isNum && flag == 1:
			if home >= 0 {
				return 0, 0, false
			}
			home = ri
		case isNum && flag == 0:
			if away >= 0 {
				return 0, 0, false
			}
			away = ri
		default:
			return 0, 0, false
		}
	}
	return home, away, home >= 0 && away >= 0
}

func unpaired(g *gamePair) error {
	return apperrors.NewUnpairedGameError(StageOpponents, g.id, len(g.rows))
}
