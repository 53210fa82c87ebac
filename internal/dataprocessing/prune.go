package dataprocessing

import (
	"strings"

	"boxscorecli/pkg/contracts/domain"
)

// DropColumns removes the named columns. Every name must be present.
func DropColumns(t *Table, stage string, names ...string) (*Table, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if !t.HasColumn(n) {
			return nil, columnNotFound(stage, n)
		}
		drop[n] = true
	}
	if len(drop) == t.Width() {
		return emptyTable(t.Len()), nil
	}
	if len(drop) == 0 {
		return t, nil
	}
	return derive(stage, t.df.Drop(names))
}

// DropMatching removes every column for which match returns true. Absent
// matches are not an error.
func DropMatching(t *Table, stage string, match func(string) bool) (*Table, error) {
	return project(t, stage, func(c string) bool { return !match(c) })
}

// DropMetadataColumns removes the season, team name and date columns
func DropMetadataColumns(t *Table) (*Table, error) {
	return DropColumns(t, StagePrune, MetadataColumns...)
}

// DropRankColumns removes the season-aggregate rank columns and the metadata columns
func DropRankColumns(t *Table) (*Table, error) {
	unranked, err := DropMatching(t, StagePrune, func(c string) bool { return strings.Contains(c, RankMarker) })
	if err != nil {
		return nil, err
	}
	return DropMetadataColumns(unranked)
}

// DropPeriodColumns removes every HALF_ and 3Q_ column
func DropPeriodColumns(t *Table) (*Table, error) {
	half, q3 := PeriodPrefix(domain.PeriodHalf), PeriodPrefix(domain.PeriodThirdQuarter)
	return DropMatching(t, StageFinalFilter, func(c string) bool {
		return strings.Contains(c, half) || strings.Contains(c, q3)
	})
}

// DropFeatureInputs removes the raw inputs of the four-factor features
func DropFeatureInputs(t *Table) (*Table, error) {
	return DropColumns(t, StageFinalFilter, FeatureInputColumns...)
}

// FinalFilter drops per-period columns and, for the model profile, the
// feature inputs and identifiers
func FinalFilter(t *Table, profile domain.OutputProfile) (*Table, error) {
	out, err := DropPeriodColumns(t)
	if err != nil {
		return nil, err
	}
	if profile == domain.ProfileModel {
		return DropFeatureInputs(out)
	}
	return out, nil
}

// project keeps the columns for which keep returns true, in order
func project(t *Table, stage string, keep func(string) bool) (*Table, error) {
	var columns []string
	for _, c := range t.columns {
		if keep(c) {
			columns = append(columns, c)
		}
	}
	switch len(columns) {
	case 0:
		return emptyTable(t.Len()), nil
	case t.Width():
		return t, nil
	}
	return derive(stage, t.df.Select(columns))
}
