package dataprocessing

import (
	"github.com/go-gota/gota/dataframe"
)

// DropIncompleteRows removes rows holding any missing or undefined cell and
// reports how many were removed
func DropIncompleteRows(t *Table) (*Table, int, error) {
	keep := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if complete(t.Row(i)) {
			keep = append(keep, i)
		}
	}
	if len(keep) == t.Len() {
		return t, 0, nil
	}
	out, err := t.subset(StageDropIncomplete, keep)
	if err != nil {
		return nil, 0, err
	}
	return out, t.Len() - len(keep), nil
}

func complete(row []Value) bool {
	for _, v := range row {
		if v.IsMissing() {
			return false
		}
	}
	return true
}

// SortByGame orders rows by GAME_ID, keeping the input order within a game.
// Numeric ids sort numerically and text ids lexically.
func SortByGame(t *Table) (*Table, error) {
	if _, err := t.requireColumns(StageDropIncomplete, ColGameID); err != nil {
		return nil, err
	}
	if t.Len() < 2 {
		return t, nil
	}
	return derive(StageDropIncomplete, t.df.Arrange(dataframe.Sort(ColGameID)))
}
