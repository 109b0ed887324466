package fpl

import (
	"testing"

	"eplpulse/internal/config"
)

func testClient() *Client {
	return &Client{cfg: config.Default()}
}

const teamsCSV = `id,name,short_name
1,Arsenal,ARS
2,Man City,MCI
3,Spurs,TOT
`

func TestParseTeamLookup(t *testing.T) {
	lookup, err := parseTeamLookup(teamsCSV)
	if err != nil {
		t.Fatal(err)
	}
	if lookup[2] != "Man City" {
		t.Errorf("lookup[2] = %q", lookup[2])
	}
	if len(lookup) != 3 {
		t.Errorf("len = %d", len(lookup))
	}
}

func TestParseArchivePlayers(t *testing.T) {
	playersCSV := `first_name,second_name,web_name,team,element_type,goals_scored,assists,clean_sheets,minutes,yellow_cards,red_cards,total_points,now_cost,bonus
Erling,Haaland,Haaland,2,4,27,5,0,2880,3,0,256,141,30
Bukayo,Saka,Saka,1,3,10,11,0,2500,2,0,180,8.7,22
`
	lookup, err := parseTeamLookup(teamsCSV)
	if err != nil {
		t.Fatal(err)
	}
	players, err := testClient().parseArchivePlayers(playersCSV, lookup)
	if err != nil {
		t.Fatal(err)
	}
	if len(players) != 2 {
		t.Fatalf("got %d players", len(players))
	}

	haaland := players[0]
	if haaland.FullName != "Erling Haaland" {
		t.Errorf("FullName = %q", haaland.FullName)
	}
	if haaland.Team != "Manchester City" {
		t.Errorf("Team = %q, want canonical name", haaland.Team)
	}
	if haaland.Position != "FWD" {
		t.Errorf("Position = %q", haaland.Position)
	}
	// Archive prices over 100 are tenths of a million.
	if haaland.Price != 14.1 {
		t.Errorf("Price = %v, want 14.1", haaland.Price)
	}

	saka := players[1]
	if saka.Team != "Arsenal" {
		t.Errorf("Team = %q", saka.Team)
	}
	// Prices already in millions pass through.
	if saka.Price != 8.7 {
		t.Errorf("Price = %v, want 8.7", saka.Price)
	}
}

func TestParseArchiveFixturesSkipsUnfinished(t *testing.T) {
	fixturesCSV := `kickoff_time,team_h,team_a,team_h_score,team_a_score,finished
2025-08-16T14:00:00Z,1,2,2,1,True
2025-08-17T15:30:00Z,3,1,,,False
`
	lookup, err := parseTeamLookup(teamsCSV)
	if err != nil {
		t.Fatal(err)
	}
	fixtures, err := testClient().parseArchiveFixtures(fixturesCSV, lookup)
	if err != nil {
		t.Fatal(err)
	}
	if len(fixtures) != 1 {
		t.Fatalf("got %d fixtures, want 1 (unfinished dropped)", len(fixtures))
	}
	f := fixtures[0]
	if f.MatchDate != "2025-08-16" {
		t.Errorf("MatchDate = %q", f.MatchDate)
	}
	if f.HomeTeam != "Arsenal" || f.AwayTeam != "Manchester City" {
		t.Errorf("teams = %q vs %q", f.HomeTeam, f.AwayTeam)
	}
	if f.HomeScore != 2 || f.AwayScore != 1 {
		t.Errorf("score = %d-%d", f.HomeScore, f.AwayScore)
	}
}

func TestPositionName(t *testing.T) {
	cases := map[string]string{
		"1": "GK", "2": "DEF", "3": "MID", "4": "FWD",
		"0": "UNK", "9": "UNK",
		"MID": "MID", "FWD": "FWD",
		"striker": "UNK", "": "UNK",
	}
	for in, want := range cases {
		if got := positionName(in); got != want {
			t.Errorf("positionName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanonicalTeamFallsBackToID(t *testing.T) {
	c := testClient()
	if got := c.canonicalTeam(map[int]string{}, 42); got != "42" {
		t.Errorf("unknown team id = %q, want \"42\"", got)
	}
	if got := c.canonicalTeam(map[int]string{7: "Spurs"}, 7); got != "Tottenham Hotspur" {
		t.Errorf("mapped team = %q", got)
	}
}
