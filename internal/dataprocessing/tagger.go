package dataprocessing

import (
	apperrors "boxscorecli/internal/errors"
	"boxscorecli/pkg/contracts/domain"
)

// PeriodPrefix returns the column prefix for a period, e.g. "HALF_"
func PeriodPrefix(p domain.Period) string {
	return string(p) + "_"
}

// TagPeriod prefixes every column with the period tag except the join key
func TagPeriod(t *Table, period domain.Period) (*Table, error) {
	if _, err := t.requireColumns(StageTag, JoinKey...); err != nil {
		return nil, err
	}

	key := make(map[string]bool, len(JoinKey))
	for _, k := range JoinKey {
		key[k] = true
	}

	prefix := PeriodPrefix(period)
	df := t.df
	for _, c := range t.columns {
		if key[c] {
			continue
		}
		if t.HasColumn(prefix + c) {
			return nil, malformed(StageTag, "column %q is already tagged", prefix+c).
				WithContext(apperrors.ContextColumn, prefix+c)
		}
		df = df.Rename(prefix+c, c)
	}
	return derive(StageTag, df)
}
