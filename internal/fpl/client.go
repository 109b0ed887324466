// Package fpl fetches Fantasy Premier League player and fixture data, the
// pipeline's first optional enrichment source. Historical seasons come
// from the vaastav/Fantasy-Premier-League GitHub archive; the live season
// from the FPL API itself.
package fpl

import (
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"eplpulse/internal/config"
	"eplpulse/internal/model"
)

// requestDelay is the fixed pause between outbound calls.
const requestDelay = 1 * time.Second

var positionNames = map[int]string{1: "GK", 2: "DEF", 3: "MID", 4: "FWD"}

// Client fetches FPL data in either historical or live mode.
type Client struct {
	cfg   config.Config
	http  *resty.Client
	sleep func(time.Duration)
}

// NewClient returns an FPL client with a fixed 30s timeout.
func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:   cfg,
		http:  resty.New().SetTimeout(30 * time.Second),
		sleep: time.Sleep,
	}
}

// Fetch retrieves player and finished-fixture tables for the current
// season, choosing the source by the season's Live flag.
func (c *Client) Fetch() ([]model.Player, []model.Fixture, error) {
	season, ok := c.cfg.Season(c.cfg.CurrentSeason)
	if !ok {
		return nil, nil, fmt.Errorf("unknown season %q", c.cfg.CurrentSeason)
	}
	if season.Live {
		return c.fetchLive()
	}
	return c.fetchHistorical(season.Label)
}

// ---- historical mode (GitHub archive) ----

func (c *Client) fetchHistorical(seasonLabel string) ([]model.Player, []model.Fixture, error) {
	base := fmt.Sprintf(c.cfg.FPLArchiveBase, seasonLabel)

	playersCSV, err := c.getText(base + "/cleaned_players.csv")
	if err != nil {
		return nil, nil, fmt.Errorf("players: %w", err)
	}
	c.sleep(requestDelay)

	teamsCSV, err := c.getText(base + "/teams.csv")
	if err != nil {
		return nil, nil, fmt.Errorf("teams: %w", err)
	}
	c.sleep(requestDelay)

	teamNames, err := parseTeamLookup(teamsCSV)
	if err != nil {
		return nil, nil, fmt.Errorf("teams: %w", err)
	}

	players, err := c.parseArchivePlayers(playersCSV, teamNames)
	if err != nil {
		return nil, nil, fmt.Errorf("players: %w", err)
	}

	// The archive's fixtures file is not present for every season; its
	// absence only costs the fixtures table.
	var fixtures []model.Fixture
	if fixturesCSV, ferr := c.getText(base + "/fixtures.csv"); ferr == nil {
		c.sleep(requestDelay)
		fixtures, err = c.parseArchiveFixtures(fixturesCSV, teamNames)
		if err != nil {
			return nil, nil, fmt.Errorf("fixtures: %w", err)
		}
	}

	return players, fixtures, nil
}

func parseTeamLookup(text string) (map[int]string, error) {
	header, rows, err := parseCSV(text)
	if err != nil {
		return nil, err
	}
	col := indexColumns(header)
	lookup := make(map[int]string, len(rows))
	for _, r := range rows {
		id := atoi(field(r, col, "id"))
		lookup[id] = field(r, col, "name")
	}
	return lookup, nil
}

func (c *Client) parseArchivePlayers(text string, teamNames map[int]string) ([]model.Player, error) {
	header, rows, err := parseCSV(text)
	if err != nil {
		return nil, err
	}
	col := indexColumns(header)
	players := make([]model.Player, 0, len(rows))
	for _, r := range rows {
		get := func(name string) string { return field(r, col, name) }

		teamName, ok := teamNames[atoi(get("team"))]
		if !ok {
			teamName = get("team")
		}

		// Archive prices are in tenths of a million above 100.
		price := atof(get("now_cost"))
		if price > 100 {
			price /= 10
		}

		players = append(players, model.Player{
			PlayerName:  get("web_name"),
			FullName:    strings.TrimSpace(get("first_name") + " " + get("second_name")),
			Team:        config.Canonicalize(c.cfg.FPLNames, teamName),
			Position:    positionName(get("element_type")),
			Goals:       atoi(get("goals_scored")),
			Assists:     atoi(get("assists")),
			CleanSheets: atoi(get("clean_sheets")),
			Minutes:     atoi(get("minutes")),
			YellowCards: atoi(get("yellow_cards")),
			RedCards:    atoi(get("red_cards")),
			TotalPoints: atoi(get("total_points")),
			Price:       round1(price),
			Bonus:       atoi(get("bonus")),
		})
	}
	return players, nil
}

func (c *Client) parseArchiveFixtures(text string, teamNames map[int]string) ([]model.Fixture, error) {
	header, rows, err := parseCSV(text)
	if err != nil {
		return nil, err
	}
	col := indexColumns(header)
	fixtures := make([]model.Fixture, 0, len(rows))
	for _, r := range rows {
		get := func(name string) string { return field(r, col, name) }
		if _, ok := col["finished"]; ok && !strings.EqualFold(get("finished"), "true") {
			continue
		}
		fixtures = append(fixtures, model.Fixture{
			MatchDate: datePrefix(get("kickoff_time")),
			HomeTeam:  c.canonicalTeam(teamNames, atoi(get("team_h"))),
			AwayTeam:  c.canonicalTeam(teamNames, atoi(get("team_a"))),
			HomeScore: atoi(get("team_h_score")),
			AwayScore: atoi(get("team_a_score")),
		})
	}
	return fixtures, nil
}

// ---- live mode (FPL API) ----

// bootstrapStatic holds the fields we need from /bootstrap-static/.
type bootstrapStatic struct {
	Elements []struct {
		WebName     string `json:"web_name"`
		FirstName   string `json:"first_name"`
		SecondName  string `json:"second_name"`
		Team        int    `json:"team"`
		ElementType int    `json:"element_type"`
		GoalsScored int    `json:"goals_scored"`
		Assists     int    `json:"assists"`
		CleanSheets int    `json:"clean_sheets"`
		Minutes     int    `json:"minutes"`
		YellowCards int    `json:"yellow_cards"`
		RedCards    int    `json:"red_cards"`
		TotalPoints int    `json:"total_points"`
		NowCost     int    `json:"now_cost"`
		Bonus       int    `json:"bonus"`
	} `json:"elements"`
	Teams []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"teams"`
}

// apiFixture is one entry from /fixtures/.
type apiFixture struct {
	KickoffTime string `json:"kickoff_time"`
	TeamH       int    `json:"team_h"`
	TeamA       int    `json:"team_a"`
	TeamHScore  *int   `json:"team_h_score"`
	TeamAScore  *int   `json:"team_a_score"`
	Finished    bool   `json:"finished"`
}

func (c *Client) fetchLive() ([]model.Player, []model.Fixture, error) {
	var bootstrap bootstrapStatic
	resp, err := c.http.R().SetResult(&bootstrap).Get(c.cfg.FPLLiveAPI + "/bootstrap-static/")
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap-static: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, nil, fmt.Errorf("bootstrap-static: HTTP %d", resp.StatusCode())
	}
	c.sleep(requestDelay)

	teamNames := make(map[int]string, len(bootstrap.Teams))
	for _, t := range bootstrap.Teams {
		teamNames[t.ID] = t.Name
	}

	players := make([]model.Player, 0, len(bootstrap.Elements))
	for _, e := range bootstrap.Elements {
		players = append(players, model.Player{
			PlayerName:  e.WebName,
			FullName:    strings.TrimSpace(e.FirstName + " " + e.SecondName),
			Team:        c.canonicalTeam(teamNames, e.Team),
			Position:    positionName(strconv.Itoa(e.ElementType)),
			Goals:       e.GoalsScored,
			Assists:     e.Assists,
			CleanSheets: e.CleanSheets,
			Minutes:     e.Minutes,
			YellowCards: e.YellowCards,
			RedCards:    e.RedCards,
			TotalPoints: e.TotalPoints,
			Price:       round1(float64(e.NowCost) / 10),
			Bonus:       e.Bonus,
		})
	}

	var raw []apiFixture
	resp, err = c.http.R().SetResult(&raw).Get(c.cfg.FPLLiveAPI + "/fixtures/")
	if err != nil || resp.StatusCode() != 200 {
		// Fixtures are a nice-to-have; players alone are still useful.
		return players, nil, nil
	}
	c.sleep(requestDelay)

	var fixtures []model.Fixture
	for _, f := range raw {
		if !f.Finished {
			continue
		}
		fixtures = append(fixtures, model.Fixture{
			MatchDate: datePrefix(f.KickoffTime),
			HomeTeam:  c.canonicalTeam(teamNames, f.TeamH),
			AwayTeam:  c.canonicalTeam(teamNames, f.TeamA),
			HomeScore: intOrZero(f.TeamHScore),
			AwayScore: intOrZero(f.TeamAScore),
		})
	}
	return players, fixtures, nil
}

// ---- shared helpers ----

func (c *Client) getText(url string) (string, error) {
	resp, err := c.http.R().Get(url)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", url, err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode())
	}
	return resp.String(), nil
}

func (c *Client) canonicalTeam(teamNames map[int]string, id int) string {
	name, ok := teamNames[id]
	if !ok {
		name = strconv.Itoa(id)
	}
	return config.Canonicalize(c.cfg.FPLNames, name)
}

// positionName maps an FPL element type to a position label. Values that
// already look like position labels pass through.
func positionName(v string) string {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		if name, ok := positionNames[n]; ok {
			return name
		}
		return "UNK"
	}
	switch v {
	case "GK", "DEF", "MID", "FWD":
		return v
	}
	return "UNK"
}

func parseCSV(text string) (header []string, rows [][]string, err error) {
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(text, "\ufeff")))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty CSV")
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

func atoi(s string) int {
	s = strings.TrimSpace(s)
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

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func datePrefix(kickoff string) string {
	if len(kickoff) >= 10 {
		return kickoff[:10]
	}
	return kickoff
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
