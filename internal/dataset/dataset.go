// Package dataset reads and writes the CSV tables that pipeline stages
// hand to each other. Each stage's contract with the next is its output
// file's existence and schema; optional tables report absence explicitly
// instead of surfacing a file error.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"eplpulse/internal/model"
)

// Standard file names under the data directory.
const (
	MatchesFile   = "cleaned/matches_clean.csv"
	PlayersFile   = "cleaned/players.csv"
	FixturesFile  = "cleaned/fixtures_detailed.csv"
	XGMatchesFile = "cleaned/xg_matches.csv"
	XGTeamsFile   = "cleaned/xg_teams.csv"
	XGPlayersFile = "cleaned/xg_players.csv"
	DashboardFile = "dashboard_data.json"
)

var matchesHeader = []string{
	"match_id", "season", "date", "time",
	"home_team", "away_team",
	"home_goals", "away_goals", "result",
	"ht_home_goals", "ht_away_goals", "ht_result",
	"referee",
	"home_shots", "away_shots",
	"home_shots_on_target", "away_shots_on_target",
	"home_fouls", "away_fouls",
	"home_corners", "away_corners",
	"home_yellows", "away_yellows",
	"home_reds", "away_reds",
	"total_goals", "total_shots", "total_fouls", "total_cards",
}

// WriteMatches writes the cleaned match table.
func WriteMatches(dataDir string, matches []model.Match) error {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			strconv.Itoa(m.MatchID), m.Season, m.Date, m.Time,
			m.HomeTeam, m.AwayTeam,
			strconv.Itoa(m.HomeGoals), strconv.Itoa(m.AwayGoals), m.Result,
			strconv.Itoa(m.HTHomeGoals), strconv.Itoa(m.HTAwayGoals), m.HTResult,
			m.Referee,
			strconv.Itoa(m.HomeShots), strconv.Itoa(m.AwayShots),
			strconv.Itoa(m.HomeShotsOnTarget), strconv.Itoa(m.AwayShotsOnTarget),
			strconv.Itoa(m.HomeFouls), strconv.Itoa(m.AwayFouls),
			strconv.Itoa(m.HomeCorners), strconv.Itoa(m.AwayCorners),
			strconv.Itoa(m.HomeYellows), strconv.Itoa(m.AwayYellows),
			strconv.Itoa(m.HomeReds), strconv.Itoa(m.AwayReds),
			strconv.Itoa(m.TotalGoals), strconv.Itoa(m.TotalShots),
			strconv.Itoa(m.TotalFouls), strconv.Itoa(m.TotalCards),
		})
	}
	return writeCSV(filepath.Join(dataDir, MatchesFile), matchesHeader, rows)
}

// ReadMatches reads the cleaned match table. The table is required: a
// missing or malformed file is an error.
func ReadMatches(dataDir string) ([]model.Match, error) {
	header, rows, err := readCSV(filepath.Join(dataDir, MatchesFile))
	if err != nil {
		return nil, err
	}
	col := indexColumns(header)
	matches := make([]model.Match, 0, len(rows))
	for _, r := range rows {
		get := func(name string) string { return field(r, col, name) }
		matches = append(matches, model.Match{
			MatchID:  atoi(get("match_id")),
			Season:   get("season"),
			Date:     get("date"),
			Time:     get("time"),
			HomeTeam: get("home_team"),
			AwayTeam: get("away_team"),

			HomeGoals: atoi(get("home_goals")),
			AwayGoals: atoi(get("away_goals")),
			Result:    get("result"),

			HTHomeGoals: atoi(get("ht_home_goals")),
			HTAwayGoals: atoi(get("ht_away_goals")),
			HTResult:    get("ht_result"),

			Referee: get("referee"),

			HomeShots:         atoi(get("home_shots")),
			AwayShots:         atoi(get("away_shots")),
			HomeShotsOnTarget: atoi(get("home_shots_on_target")),
			AwayShotsOnTarget: atoi(get("away_shots_on_target")),
			HomeFouls:         atoi(get("home_fouls")),
			AwayFouls:         atoi(get("away_fouls")),
			HomeCorners:       atoi(get("home_corners")),
			AwayCorners:       atoi(get("away_corners")),
			HomeYellows:       atoi(get("home_yellows")),
			AwayYellows:       atoi(get("away_yellows")),
			HomeReds:          atoi(get("home_reds")),
			AwayReds:          atoi(get("away_reds")),

			TotalGoals: atoi(get("total_goals")),
			TotalShots: atoi(get("total_shots")),
			TotalFouls: atoi(get("total_fouls")),
			TotalCards: atoi(get("total_cards")),
		})
	}
	return matches, nil
}

// WritePlayers writes the FPL player table.
func WritePlayers(dataDir string, players []model.Player) error {
	header := []string{
		"player_name", "full_name", "team", "position",
		"goals", "assists", "clean_sheets", "minutes",
		"yellow_cards", "red_cards", "total_points", "price", "bonus",
	}
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{
			p.PlayerName, p.FullName, p.Team, p.Position,
			strconv.Itoa(p.Goals), strconv.Itoa(p.Assists),
			strconv.Itoa(p.CleanSheets), strconv.Itoa(p.Minutes),
			strconv.Itoa(p.YellowCards), strconv.Itoa(p.RedCards),
			strconv.Itoa(p.TotalPoints),
			strconv.FormatFloat(p.Price, 'f', 1, 64),
			strconv.Itoa(p.Bonus),
		})
	}
	return writeCSV(filepath.Join(dataDir, PlayersFile), header, rows)
}

// ReadPlayers reads the FPL player table. The second return value is false
// when the table is absent, which downstream treats as "enrichment not
// available" rather than an error.
func ReadPlayers(dataDir string) ([]model.Player, bool, error) {
	header, rows, err := readCSV(filepath.Join(dataDir, PlayersFile))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	col := indexColumns(header)
	players := make([]model.Player, 0, len(rows))
	for _, r := range rows {
		get := func(name string) string { return field(r, col, name) }
		players = append(players, model.Player{
			PlayerName:  get("player_name"),
			FullName:    get("full_name"),
			Team:        get("team"),
			Position:    get("position"),
			Goals:       atoi(get("goals")),
			Assists:     atoi(get("assists")),
			CleanSheets: atoi(get("clean_sheets")),
			Minutes:     atoi(get("minutes")),
			YellowCards: atoi(get("yellow_cards")),
			RedCards:    atoi(get("red_cards")),
			TotalPoints: atoi(get("total_points")),
			Price:       atof(get("price")),
			Bonus:       atoi(get("bonus")),
		})
	}
	return players, true, nil
}

// WriteFixtures writes the finished-fixture table.
func WriteFixtures(dataDir string, fixtures []model.Fixture) error {
	header := []string{"match_date", "home_team", "away_team", "home_score", "away_score"}
	rows := make([][]string, 0, len(fixtures))
	for _, f := range fixtures {
		rows = append(rows, []string{
			f.MatchDate, f.HomeTeam, f.AwayTeam,
			strconv.Itoa(f.HomeScore), strconv.Itoa(f.AwayScore),
		})
	}
	return writeCSV(filepath.Join(dataDir, FixturesFile), header, rows)
}

// WriteMatchXG writes the per-match xG table.
func WriteMatchXG(dataDir string, matches []model.MatchXG) error {
	header := []string{
		"match_id", "date", "home_team", "away_team",
		"home_goals", "away_goals", "home_xg", "away_xg",
	}
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			m.MatchID, m.Date, m.HomeTeam, m.AwayTeam,
			strconv.Itoa(m.HomeGoals), strconv.Itoa(m.AwayGoals),
			strconv.FormatFloat(m.HomeXG, 'f', 2, 64),
			strconv.FormatFloat(m.AwayXG, 'f', 2, 64),
		})
	}
	return writeCSV(filepath.Join(dataDir, XGMatchesFile), header, rows)
}

// WriteTeamXG writes the per-team xG aggregate table.
func WriteTeamXG(dataDir string, teams []model.TeamXG) error {
	header := []string{
		"team", "matches", "xg_for", "xg_against",
		"goals_for", "goals_against", "npxg_for", "npxg_against",
		"xg_difference", "ppda", "deep_completions",
	}
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []string{
			t.Team, strconv.Itoa(t.Matches),
			strconv.FormatFloat(t.XGFor, 'f', 2, 64),
			strconv.FormatFloat(t.XGAgainst, 'f', 2, 64),
			strconv.Itoa(t.GoalsFor), strconv.Itoa(t.GoalsAgainst),
			strconv.FormatFloat(t.NPXGFor, 'f', 2, 64),
			strconv.FormatFloat(t.NPXGAgainst, 'f', 2, 64),
			strconv.FormatFloat(t.XGDifference, 'f', 2, 64),
			strconv.FormatFloat(t.PPDA, 'f', 2, 64),
			strconv.Itoa(t.DeepCompletions),
		})
	}
	return writeCSV(filepath.Join(dataDir, XGTeamsFile), header, rows)
}

// ReadTeamXG reads the per-team xG table; false when absent.
func ReadTeamXG(dataDir string) ([]model.TeamXG, bool, error) {
	header, rows, err := readCSV(filepath.Join(dataDir, XGTeamsFile))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	col := indexColumns(header)
	teams := make([]model.TeamXG, 0, len(rows))
	for _, r := range rows {
		get := func(name string) string { return field(r, col, name) }
		teams = append(teams, model.TeamXG{
			Team:            get("team"),
			Matches:         atoi(get("matches")),
			XGFor:           atof(get("xg_for")),
			XGAgainst:       atof(get("xg_against")),
			GoalsFor:        atoi(get("goals_for")),
			GoalsAgainst:    atoi(get("goals_against")),
			NPXGFor:         atof(get("npxg_for")),
			NPXGAgainst:     atof(get("npxg_against")),
			XGDifference:    atof(get("xg_difference")),
			PPDA:            atof(get("ppda")),
			DeepCompletions: atoi(get("deep_completions")),
		})
	}
	return teams, true, nil
}

// WritePlayerXG writes the per-player xG table.
func WritePlayerXG(dataDir string, players []model.PlayerXG) error {
	header := []string{
		"player_name", "team", "position", "games", "minutes",
		"goals", "xg", "assists", "xa", "shots", "key_passes", "npg", "npxg",
	}
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{
			p.PlayerName, p.Team, p.Position,
			strconv.Itoa(p.Games), strconv.Itoa(p.Minutes),
			strconv.Itoa(p.Goals),
			strconv.FormatFloat(p.XG, 'f', 2, 64),
			strconv.Itoa(p.Assists),
			strconv.FormatFloat(p.XA, 'f', 2, 64),
			strconv.Itoa(p.Shots), strconv.Itoa(p.KeyPasses),
			strconv.Itoa(p.NPG),
			strconv.FormatFloat(p.NPXG, 'f', 2, 64),
		})
	}
	return writeCSV(filepath.Join(dataDir, XGPlayersFile), header, rows)
}

// ReadPlayerXG reads the per-player xG table; false when absent.
func ReadPlayerXG(dataDir string) ([]model.PlayerXG, bool, error) {
	header, rows, err := readCSV(filepath.Join(dataDir, XGPlayersFile))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	col := indexColumns(header)
	players := make([]model.PlayerXG, 0, len(rows))
	for _, r := range rows {
		get := func(name string) string { return field(r, col, name) }
		players = append(players, model.PlayerXG{
			PlayerName: get("player_name"),
			Team:       get("team"),
			Position:   get("position"),
			Games:      atoi(get("games")),
			Minutes:    atoi(get("minutes")),
			Goals:      atoi(get("goals")),
			XG:         atof(get("xg")),
			Assists:    atoi(get("assists")),
			XA:         atof(get("xa")),
			Shots:      atoi(get("shots")),
			KeyPasses:  atoi(get("key_passes")),
			NPG:        atoi(get("npg")),
			NPXG:       atof(get("npxg")),
		})
	}
	return players, true, nil
}

// WriteDashboard writes the aggregated dashboard document as indented
// JSON, the file the frontend fetches.
func WriteDashboard(dataDir string, d model.Dashboard) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dashboard: %w", err)
	}
	path := filepath.Join(dataDir, DashboardFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadDashboard reads a previously written dashboard document; false when
// none has been generated yet.
func ReadDashboard(dataDir string) (model.Dashboard, bool, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, DashboardFile))
	if os.IsNotExist(err) {
		return model.Dashboard{}, false, nil
	}
	if err != nil {
		return model.Dashboard{}, false, err
	}
	var d model.Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		return model.Dashboard{}, false, fmt.Errorf("decode dashboard: %w", err)
	}
	return d, true, nil
}

// ---- CSV plumbing ----

func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func readCSV(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("read %s: empty file", path)
	}
	return records[0], records[1:], nil
}

func indexColumns(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	return col
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// atoi parses an int, tolerating float-formatted values ("2.0") and
// returning 0 for anything unparsable.
func atoi(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func atof(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
