// Package dataprocessing builds four-factor feature tables from first-half and
// third-quarter team box scores.
//
// # Architecture
//
// Every stage is a pure function from one or two tables to a new table:
//
//  1. Loader: JSON or XLSX documents to tables (ParseDocument, ParseWorkbook, LoadTables)
//  2. Pruner: drop rank and metadata columns (DropRankColumns, DropMetadataColumns)
//  3. Tagger: prefix statistics with HALF_ or 3Q_ (TagPeriod)
//  4. Merger: inner join on TEAM_ID, GAME_ID, MATCHUP, WL (MergePeriods)
//  5. Combiner: STAT = HALF_STAT + 3Q_STAT, percentages recomputed (CombinePeriods)
//  6. Home flag: HOME from MATCHUP (DeriveHomeFlag)
//  7. Row filter: drop incomplete rows, order by game (DropIncompleteRows, SortByGame)
//  8. Opponent join: OPP_<stat> on both rows of a game (JoinOpponents)
//  9. Four factors: EFG_PCT, TOV_PCT, OREB_PCT, FT_RATE and the opponent side (ComputeFourFactors)
//  10. Final filter: per-period columns and, for the model profile, raw inputs (FinalFilter)
//
// Processor runs the stages in order and exposes each one for the step-wise
// orchestrator in internal/operations.
//
// # Usage
//
//	half, q3, err := dataprocessing.LoadFiles(ctx, "half.json", "q3.json")
//	if err != nil {
//	    return err
//	}
//	res, err := dataprocessing.NewProcessor(dataprocessing.DefaultOptions(), logger).Run(ctx, half, q3)
//
// # Error Handling
//
// Structural problems abort the run with a typed *errors.AppError carrying the
// stage name: MalformedInputError for bad documents or matchups,
// ColumnNotFoundError for schema violations and UnpairedGameError for games
// without exactly one home and one away row (strict pairing only).
//
// Division by zero never fails; it produces NaN, which the row filter removes
// before the opponent join and which exporters write as an empty cell or null.
package dataprocessing
