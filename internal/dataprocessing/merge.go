package dataprocessing

import (
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "boxscorecli/internal/errors"
)

// missingKey stands in for an empty key cell so that empty keys match each other
const missingKey = "\x00"

// MergePeriods inner-joins two tagged tables on the key columns. Output columns
// are the left columns followed by the right non-key columns. A key repeated in
// either table yields the cross product of the matching rows. Keys compare by
// canonical text, so "0022300001" never matches 22300001.
func MergePeriods(left, right *Table, on []string) (*Table, error) {
	if _, err := left.requireColumns(StageMerge, on...); err != nil {
		return nil, err
	}
	if _, err := right.requireColumns(StageMerge, on...); err != nil {
		return nil, err
	}

	isKey := make(map[string]bool, len(on))
	for _, k := range on {
		isKey[k] = true
	}

	columns := left.Columns()
	for _, c := range right.columns {
		if isKey[c] {
			continue
		}
		if left.HasColumn(c) {
			return nil, malformed(StageMerge, "column %q is present in both tables", c).
				WithContext(apperrors.ContextColumn, c)
		}
		columns = append(columns, c)
	}

	joined := textKeys(left, on).InnerJoin(textKeys(right, on), on...)
	joined = joined.Select(columns)
	if joined.Err != nil {
		return derive(StageMerge, joined)
	}
	for _, k := range on {
		joined = joined.Mutate(restoreKey(joined.Col(k), left.df.Col(k).Type()))
	}
	return derive(StageMerge, joined)
}

// textKeys returns t's frame with every key column stored as canonical text
func textKeys(t *Table, on []string) dataframe.DataFrame {
	df := t.df
	for _, k := range on {
		vals, _ := t.Column(k)
		cells := make([]string, len(vals))
		for i, v := range vals {
			if v.IsMissing() {
				cells[i] = missingKey
				continue
			}
			cells[i] = v.Text()
		}
		df = df.Mutate(series.New(cells, series.String, k))
	}
	return df
}

// restoreKey converts a joined text key back to the column type of the left table
func restoreKey(s series.Series, typ series.Type) series.Series {
	cells := make([]interface{}, s.Len())
	for i := range cells {
		text := s.Elem(i).String()
		switch {
		case text == missingKey:
			cells[i] = nil
		case typ == series.Float:
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				cells[i] = nil
				continue
			}
			cells[i] = f
		default:
			cells[i] = text
		}
	}
	return series.New(cells, typ, s.Name)
}
