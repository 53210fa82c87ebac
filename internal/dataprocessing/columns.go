package dataprocessing

import (
	"fmt"

	apperrors "boxscorecli/internal/errors"
)

// Stage names carried by every pipeline error
const (
	StageLoad           = "load"
	StagePrune          = "prune"
	StageTag            = "tag_periods"
	StageMerge          = "merge"
	StageCombine        = "combine"
	StageHomeFlag       = "home_flag"
	StageDropIncomplete = "drop_incomplete"
	StageOpponents      = "opponents"
	StageFourFactors    = "four_factors"
	StageFinalFilter    = "final_filter"
)

// Column names used by more than one stage
const (
	ColTeamID  = "TEAM_ID"
	ColGameID  = "GAME_ID"
	ColMatchup = "MATCHUP"
	ColWL      = "WL"
	ColHome    = "HOME"

	RankMarker     = "_RANK"
	OpponentPrefix = "OPP_"
)

// JoinKey identifies one team's participation in one game
var JoinKey = []string{ColTeamID, ColGameID, ColMatchup, ColWL}

// MetadataColumns are non-statistical columns removed before merging
var MetadataColumns = []string{"SEASON_YEAR", "TEAM_ABBREVIATION", "TEAM_NAME", "GAME_DATE"}

// CombinedStats are summed across periods and copied to the opponent row
var CombinedStats = []string{
	"MIN", "FGM", "FGA", "FG3M", "FG3A", "FTM", "FTA",
	"OREB", "DREB", "REB", "AST", "TOV", "STL",
	"BLK", "BLKA", "PF", "PFD", "PTS", "PLUS_MINUS",
}

// percentage column -> (makes, attempts)
var recomputedPercentages = []struct {
	column, made, attempted string
}{
	{"FG_PCT", "FGM", "FGA"},
	{"FG3_PCT", "FG3M", "FG3A"},
	{"FT_PCT", "FTM", "FTA"},
}

// FeatureInputColumns are raw combined inputs removed by the model profile
var FeatureInputColumns = []string{
	"FGM", "FGA", "FG_PCT",
	"FG3M", "FG3A", "FG3_PCT",
	"FTM", "FTA", "FT_PCT",
	"OPP_FGM", "OPP_FGA",
	"OPP_FG3M", "OPP_FG3A",
	"OPP_FTM", "OPP_FTA",
	"PF", "OPP_PF",
	"OREB", "DREB", "OPP_OREB", "OPP_DREB",
	"TOV", "OPP_TOV", "STL", "OPP_STL",
	"PTS", "OPP_PTS", "REB", "OPP_REB",
	"OPP_PLUS_MINUS", "BLKA", "OPP_BLKA", "PFD", "OPP_PFD",
	"GAME_ID", "TEAM_ID", "MIN", "OPP_MIN", "HOME",
}

// Four-factor output columns
const (
	ColEFGPct    = "EFG_PCT"
	ColTOVPct    = "TOV_PCT"
	ColOREBPct   = "OREB_PCT"
	ColFTRate    = "FT_RATE"
	ColOppEFGPct = "OPP_EFG_PCT"
	ColOppTOVPct = "OPP_TOV_PCT"
	ColOppFTRate = "OPP_FT_RATE"
	ColDREBPct   = "DREB_PCT"
)

func columnNotFound(stage, column string) error {
	return apperrors.NewColumnNotFoundError(stage, column)
}

func malformed(stage, format string, args ...interface{}) *apperrors.AppError {
	return apperrors.NewMalformedInputError(stage, fmt.Sprintf(format, args...))
}
