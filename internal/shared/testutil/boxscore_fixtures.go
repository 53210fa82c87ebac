package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"boxscorecli/pkg/contracts/domain"
)

// Team ids and the game id used by the sample game
const (
	CelticsID    = 1610612738
	LakersID     = 1610612747
	WarriorsID   = 1610612744
	NuggetsID    = 1610612743
	SampleGameID = "0022300001"
	SecondGameID = "0022300002"
)

// StatColumns is the statistic block of every fixture row, in header order
var StatColumns = []string{
	"MIN", "FGM", "FGA", "FG_PCT", "FG3M", "FG3A", "FG3_PCT", "FTM", "FTA", "FT_PCT",
	"OREB", "DREB", "REB", "AST", "TOV", "STL", "BLK", "BLKA", "PF", "PFD", "PTS", "PLUS_MINUS",
}

// BoxScoreHeaders returns the header vocabulary of a team game-log document
func BoxScoreHeaders() []string {
	headers := []string{
		"SEASON_YEAR", "TEAM_ID", "TEAM_ABBREVIATION", "TEAM_NAME",
		"GAME_ID", "GAME_DATE", "MATCHUP", "WL",
	}
	headers = append(headers, StatColumns...)
	return append(headers, "GP_RANK", "PTS_RANK")
}

// TeamLine is one team's box score for one period of one game
type TeamLine struct {
	TeamID  int
	Abbrev  string
	Name    string
	GameID  string
	Matchup string
	WL      string
	Stats   map[string]float64
}

// PeriodStats returns a plausible half-game stat line. Overrides replace
// single entries; percentages are derived from makes and attempts.
func PeriodStats(overrides map[string]float64) map[string]float64 {
	s := map[string]float64{
		"MIN": 24, "FGM": 20, "FGA": 42, "FG3M": 5, "FG3A": 15, "FTM": 8, "FTA": 10,
		"OREB": 5, "DREB": 15, "REB": 20, "AST": 12, "TOV": 7, "STL": 4,
		"BLK": 3, "BLKA": 2, "PF": 9, "PFD": 10, "PTS": 53, "PLUS_MINUS": 3,
	}
	for k, v := range overrides {
		s[k] = v
	}
	s["FG_PCT"] = pct(s["FGM"], s["FGA"])
	s["FG3_PCT"] = pct(s["FG3M"], s["FG3A"])
	s["FT_PCT"] = pct(s["FTM"], s["FTA"])
	return s
}

func pct(made, attempted float64) float64 {
	if attempted == 0 {
		return 0
	}
	return made / attempted
}

// Row renders the line in BoxScoreHeaders order
func (l TeamLine) Row() []interface{} {
	row := []interface{}{
		"2023-24", l.TeamID, l.Abbrev, l.Name,
		l.GameID, "2023-10-24", l.Matchup, l.WL,
	}
	for _, c := range StatColumns {
		v, ok := l.Stats[c]
		if !ok {
			row = append(row, nil)
			continue
		}
		row = append(row, v)
	}
	return append(row, 1, 1)
}

// NewBoxScoreDocument builds a single-result-set document from team lines
func NewBoxScoreDocument(lines ...TeamLine) *domain.Document {
	rows := make([][]interface{}, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, l.Row())
	}
	return &domain.Document{
		Resource: "teamgamelogs",
		ResultSets: []domain.ResultSet{{
			Name:    "TeamGameLogs",
			Headers: BoxScoreHeaders(),
			RowSet:  rows,
		}},
	}
}

// SampleGame returns the half and third-quarter documents of one game:
// BOS at home against LAL. Combined, BOS has FGM 40, FG3M 10, FGA 85 and
// 80 points; LAL has 75 points.
func SampleGame() (half, q3 *domain.Document) {
	half = NewBoxScoreDocument(
		celtics(SampleGameID, "BOS vs. LAL", "W", PeriodStats(nil)),
		lakers(SampleGameID, "LAL @ BOS", "L", PeriodStats(map[string]float64{"FGM": 19, "PTS": 50, "PLUS_MINUS": -3})),
	)
	q3 = NewBoxScoreDocument(
		celtics(SampleGameID, "BOS vs. LAL", "W", PeriodStats(map[string]float64{
			"MIN": 12, "FGA": 43, "PTS": 27, "PLUS_MINUS": 2,
		})),
		lakers(SampleGameID, "LAL @ BOS", "L", PeriodStats(map[string]float64{
			"MIN": 12, "FGM": 10, "FGA": 22, "FG3M": 2, "FG3A": 8, "PTS": 25, "PLUS_MINUS": -2,
		})),
	)
	return half, q3
}

// TwoGames returns documents with the sample game followed by a second game,
// GSW at home against DEN, listed away row first
func TwoGames() (half, q3 *domain.Document) {
	half, q3 = SampleGame()
	half.ResultSets[0].RowSet = append(half.ResultSets[0].RowSet,
		nuggets(SecondGameID, "DEN @ GSW", "W", PeriodStats(nil)).Row(),
		warriors(SecondGameID, "GSW vs. DEN", "L", PeriodStats(nil)).Row(),
	)
	q3.ResultSets[0].RowSet = append(q3.ResultSets[0].RowSet,
		nuggets(SecondGameID, "DEN @ GSW", "W", PeriodStats(map[string]float64{"MIN": 12})).Row(),
		warriors(SecondGameID, "GSW vs. DEN", "L", PeriodStats(map[string]float64{"MIN": 12})).Row(),
	)
	return half, q3
}

func celtics(game, matchup, wl string, s map[string]float64) TeamLine {
	return TeamLine{CelticsID, "BOS", "Boston Celtics", game, matchup, wl, s}
}

func lakers(game, matchup, wl string, s map[string]float64) TeamLine {
	return TeamLine{LakersID, "LAL", "Los Angeles Lakers", game, matchup, wl, s}
}

func warriors(game, matchup, wl string, s map[string]float64) TeamLine {
	return TeamLine{WarriorsID, "GSW", "Golden State Warriors", game, matchup, wl, s}
}

func nuggets(game, matchup, wl string, s map[string]float64) TeamLine {
	return TeamLine{NuggetsID, "DEN", "Denver Nuggets", game, matchup, wl, s}
}

// BoxScoreFixtures writes fixture documents to a test directory
type BoxScoreFixtures struct {
	TestDataDir string
}

// NewBoxScoreFixtures creates a new fixtures manager
func NewBoxScoreFixtures(testDataDir string) *BoxScoreFixtures {
	return &BoxScoreFixtures{TestDataDir: testDataDir}
}

// WriteDocument writes doc as JSON and returns the file path
func (f *BoxScoreFixtures) WriteDocument(name string, doc *domain.Document) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}
	return f.WriteRaw(name, data)
}

// WriteRaw writes arbitrary bytes, e.g. a corrupted document
func (f *BoxScoreFixtures) WriteRaw(name string, data []byte) (string, error) {
	if err := os.MkdirAll(f.TestDataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	path := filepath.Join(f.TestDataDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

// WriteSampleGame writes the sample game as half.json and 3q.json
func (f *BoxScoreFixtures) WriteSampleGame() (halfPath, q3Path string, err error) {
	half, q3 := SampleGame()
	if halfPath, err = f.WriteDocument("half.json", half); err != nil {
		return "", "", err
	}
	if q3Path, err = f.WriteDocument("3q.json", q3); err != nil {
		return "", "", err
	}
	return halfPath, q3Path, nil
}
