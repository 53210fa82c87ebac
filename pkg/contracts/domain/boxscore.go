package domain

// ResultSet is one tabular block of a stats document: a header vocabulary and
// positional rows aligned to it.
type ResultSet struct {
	Name    string          `json:"name,omitempty"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// Document is a team box-score document for one time window (first half or
// third quarter) as published by the stats provider.
type Document struct {
	Resource   string      `json:"resource,omitempty"`
	Parameters interface{} `json:"parameters,omitempty"`
	ResultSets []ResultSet `json:"resultSets"`
}

// Period identifies the time window a document covers
type Period string

const (
	PeriodHalf         Period = "HALF"
	PeriodThirdQuarter Period = "3Q"
)

// PairingMode decides what happens to games that do not resolve to exactly one
// home and one away row
type PairingMode string

const (
	PairingStrict  PairingMode = "strict"
	PairingLenient PairingMode = "lenient"
)

// HomeFlagMode decides what happens to matchup strings that carry neither the
// home nor the away marker
type HomeFlagMode string

const (
	HomeFlagStrict  HomeFlagMode = "strict"
	HomeFlagLenient HomeFlagMode = "lenient"
)

// OutputProfile selects the final column set
type OutputProfile string

const (
	// ProfileFull keeps key, combined, percentage, home, opponent and four-factor columns
	ProfileFull OutputProfile = "full"
	// ProfileModel keeps only the model features
	ProfileModel OutputProfile = "model"
)

// FeatureStats summarizes one pipeline run
type FeatureStats struct {
	HalfRows              int      `json:"half_rows"`
	ThirdQuarterRows      int      `json:"third_quarter_rows"`
	MergedRows            int      `json:"merged_rows"`
	IncompleteRowsDropped int      `json:"incomplete_rows_dropped"`
	UnpairedGamesDropped  []string `json:"unpaired_games_dropped,omitempty"`
	OutputRows            int      `json:"output_rows"`
	OutputColumns         int      `json:"output_columns"`
}

// FeatureTable is the wire form of a feature table. Undefined numbers are null.
type FeatureTable struct {
	Headers []string        `json:"headers"`
	Rows    [][]interface{} `json:"rows"`
}
