package aggregate

import (
	"testing"

	"eplpulse/internal/model"
)

func fplPlayer(short, full, team, pos string) model.Player {
	return model.Player{
		PlayerName: short, FullName: full, Team: team, Position: pos,
		Goals: 5, Assists: 3, Minutes: 1800, Price: 7.5,
	}
}

func xgPlayer(name, team string, xg, xa float64) model.PlayerXG {
	return model.PlayerXG{
		PlayerName: name, Team: team,
		XG: xg, XA: xa, Shots: 40, KeyPasses: 20,
	}
}

func TestMatchExactShortName(t *testing.T) {
	idx := buildXGIndex([]model.PlayerXG{xgPlayer("Richarlison", "Tottenham Hotspur", 4.2, 1.1)})
	stats, ok := idx.match(fplPlayer("Richarlison", "Richarlison de Andrade", "Tottenham Hotspur", "FWD"))
	if !ok || stats.XG != 4.2 {
		t.Errorf("exact short-name match failed: ok=%v stats=%+v", ok, stats)
	}
}

func TestMatchFullName(t *testing.T) {
	idx := buildXGIndex([]model.PlayerXG{xgPlayer("Erling Haaland", "Manchester City", 28.9, 3.2)})
	stats, ok := idx.match(fplPlayer("Haaland", "Erling Haaland", "Manchester City", "FWD"))
	if !ok || stats.XG != 28.9 {
		t.Errorf("full-name match failed: ok=%v stats=%+v", ok, stats)
	}
}

func TestMatchLastNameStripsAccents(t *testing.T) {
	idx := buildXGIndex([]model.PlayerXG{xgPlayer("Hugo Ekitike", "Liverpool", 11.3, 2.0)})
	stats, ok := idx.match(fplPlayer("Ekitiké", "Hugo Ekitiké", "Liverpool", "FWD"))
	if !ok || stats.XG != 11.3 {
		t.Errorf("accented last-name match failed: ok=%v stats=%+v", ok, stats)
	}
}

func TestMatchDottedName(t *testing.T) {
	idx := buildXGIndex([]model.PlayerXG{xgPlayer("Bruno Fernandes", "Manchester United", 8.8, 7.7)})
	stats, ok := idx.match(fplPlayer("B.Fernandes", "Bruno Borges Fernandes", "Manchester United", "MID"))
	if !ok || stats.XA != 7.7 {
		t.Errorf("dotted-name match failed: ok=%v stats=%+v", ok, stats)
	}
}

func TestMatchSubstring(t *testing.T) {
	idx := buildXGIndex([]model.PlayerXG{xgPlayer("Enzo Fernandez", "Chelsea", 3.1, 4.4)})
	stats, ok := idx.match(fplPlayer("Enzo", "Enzo Jeremias Fernandez", "Chelsea", "MID"))
	if !ok || stats.XG != 3.1 {
		t.Errorf("substring match failed: ok=%v stats=%+v", ok, stats)
	}
}

func TestMatchTransferredPlayer(t *testing.T) {
	// Understat lists every club for a mid-season transfer.
	idx := buildXGIndex([]model.PlayerXG{xgPlayer("Jack Wanderer", "Tottenham Hotspur,West Ham United", 2.2, 1.0)})
	if _, ok := idx.match(fplPlayer("Wanderer", "Jack Wanderer", "West Ham United", "MID")); !ok {
		t.Error("player should match via second listed club")
	}
	if _, ok := idx.match(fplPlayer("Wanderer", "Jack Wanderer", "Tottenham Hotspur", "MID")); !ok {
		t.Error("player should match via first listed club")
	}
}

func TestMatchRequiresSameTeam(t *testing.T) {
	idx := buildXGIndex([]model.PlayerXG{xgPlayer("Erling Haaland", "Manchester City", 28.9, 3.2)})
	if _, ok := idx.match(fplPlayer("Haaland", "Erling Haaland", "Arsenal", "FWD")); ok {
		t.Error("match must not cross teams")
	}
}

func TestMatchFuzzyFallback(t *testing.T) {
	idx := buildXGIndex([]model.PlayerXG{xgPlayer("Joao Pedro Junqueira", "Chelsea", 6.6, 2.1)})
	stats, ok := idx.match(fplPlayer("J.Pedro", "Joao Pedro Junqueira de Jesus", "Chelsea", "FWD"))
	if !ok || stats.XG != 6.6 {
		t.Errorf("fuzzy fallback failed: ok=%v stats=%+v", ok, stats)
	}
}

func TestMatchNoFalsePositive(t *testing.T) {
	idx := buildXGIndex([]model.PlayerXG{xgPlayer("Gabriel Martinelli", "Arsenal", 9.0, 3.0)})
	if _, ok := idx.match(fplPlayer("Timber", "Jurrien Timber", "Arsenal", "DEF")); ok {
		t.Error("dissimilar names on the same team must not match")
	}
}

func TestStripAccents(t *testing.T) {
	cases := map[string]string{
		"Ekitiké":  "Ekitike",
		"Szoboszlai": "Szoboszlai",
		"Müller":   "Muller",
		"João":     "Joao",
	}
	for in, want := range cases {
		if got := stripAccents(in); got != want {
			t.Errorf("stripAccents(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPer90(t *testing.T) {
	if got := per90(10, 900); float64(got) != 1 {
		t.Errorf("per90(10, 900) = %v, want 1", float64(got))
	}
	// Below 90 minutes the rate is meaningless.
	if got := per90(3, 89); got != 0 {
		t.Errorf("per90(3, 89) = %v, want 0", float64(got))
	}
	if got := per90(9, 2700); float64(got) != 0.3 {
		t.Errorf("per90(9, 2700) = %v, want 0.3", float64(got))
	}
}

func TestGoalScorersEnrichment(t *testing.T) {
	players := []model.Player{
		fplPlayer("Haaland", "Erling Haaland", "Manchester City", "FWD"),
		fplPlayer("Mystery", "Utterly Unknown", "Arsenal", "MID"),
	}
	players[0].Goals = 20
	players[1].Goals = 8

	boards := playerLeaderboards(players,
		[]model.PlayerXG{xgPlayer("Erling Haaland", "Manchester City", 22.5, 3.0)}, true)

	scorers := boards.GoalScorers
	if len(scorers) != 2 {
		t.Fatalf("got %d scorers", len(scorers))
	}
	if scorers[0].PlayerName != "Haaland" || scorers[0].Rank != 1 {
		t.Errorf("top scorer = %+v", scorers[0])
	}
	if scorers[0].XG == nil || float64(*scorers[0].XG) != 22.5 {
		t.Errorf("matched scorer should carry xG, got %v", scorers[0].XG)
	}
	if scorers[0].Shots == nil || *scorers[0].Shots != 40 {
		t.Errorf("matched scorer should carry shots")
	}
	if scorers[1].XG != nil || scorers[1].Shots != nil {
		t.Errorf("unmatched scorer must keep nil xG fields")
	}
}

func TestGoalScorersWithoutXGData(t *testing.T) {
	players := []model.Player{fplPlayer("Haaland", "Erling Haaland", "Manchester City", "FWD")}
	boards := playerLeaderboards(players, nil, false)
	if boards.GoalScorers[0].XG != nil {
		t.Error("without Understat data all xG fields stay nil")
	}
}

func TestIronMenOnePerTeam(t *testing.T) {
	players := []model.Player{
		fplPlayer("First", "First Keeper", "Arsenal", "GK"),
		fplPlayer("Second", "Second Keeper", "Arsenal", "GK"),
		fplPlayer("Other", "Other Player", "Chelsea", "DEF"),
	}
	players[0].Minutes = 3400
	players[1].Minutes = 20
	players[2].Minutes = 3000

	boards := playerLeaderboards(players, nil, false)
	iron := boards.IronMen
	if len(iron) != 2 {
		t.Fatalf("got %d iron men, want one per team", len(iron))
	}
	if iron[0].PlayerName != "First" || iron[0].Minutes != 3400 {
		t.Errorf("iron[0] = %+v", iron[0])
	}
	if float64(iron[0].GamesEquivalent) != 37.8 {
		t.Errorf("GamesEquivalent = %v", float64(iron[0].GamesEquivalent))
	}
}

func TestGoalsByPositionOrderAndCounts(t *testing.T) {
	players := []model.Player{
		fplPlayer("A", "A A", "Arsenal", "FWD"),
		fplPlayer("B", "B B", "Arsenal", "MID"),
		fplPlayer("C", "C C", "Arsenal", "MID"),
		fplPlayer("Bench", "Bench Warmer", "Arsenal", "DEF"),
	}
	players[3].Minutes = 0

	boards := playerLeaderboards(players, nil, false)
	byPos := boards.GoalsByPosition
	want := []string{"FWD", "MID", "DEF", "GK"}
	for i, pos := range want {
		if byPos[i].Position != pos {
			t.Errorf("position[%d] = %s, want %s", i, byPos[i].Position, pos)
		}
	}
	if byPos[1].PlayerCount != 2 {
		t.Errorf("MID count = %d, want 2", byPos[1].PlayerCount)
	}
	// Zero-minute players do not count toward the average.
	if byPos[2].PlayerCount != 0 {
		t.Errorf("DEF count = %d, want 0 (bench only)", byPos[2].PlayerCount)
	}
	if byPos[2].TotalGoals != 5 {
		t.Errorf("DEF goals = %d, want goals still summed", byPos[2].TotalGoals)
	}
}

func TestBestValueMinutesFloor(t *testing.T) {
	regular := fplPlayer("Regular", "Regular Player", "Arsenal", "MID")
	cameo := fplPlayer("Cameo", "Cameo Player", "Arsenal", "FWD")
	cameo.Minutes = 200
	cameo.Goals = 4

	boards := playerLeaderboards([]model.Player{regular, cameo}, nil, false)
	if len(boards.BestValue) != 1 {
		t.Fatalf("got %d value rows", len(boards.BestValue))
	}
	if boards.BestValue[0].PlayerName != "Regular" {
		t.Errorf("low-minutes player should be excluded")
	}
	// (5 goals + 3 assists) / 7.5
	if float64(boards.BestValue[0].GAPerMillion) != 1.07 {
		t.Errorf("GAPerMillion = %v", float64(boards.BestValue[0].GAPerMillion))
	}
}

func TestMostCards(t *testing.T) {
	clean := fplPlayer("Clean", "Clean Player", "Arsenal", "MID")
	clean.YellowCards, clean.RedCards = 0, 0
	dirty := fplPlayer("Dirty", "Dirty Player", "Chelsea", "DEF")
	dirty.YellowCards, dirty.RedCards = 9, 1

	boards := playerLeaderboards([]model.Player{clean, dirty}, nil, false)
	if len(boards.MostCards) != 1 {
		t.Fatalf("got %d card rows", len(boards.MostCards))
	}
	row := boards.MostCards[0]
	if row.PlayerName != "Dirty" || row.TotalCards != 10 {
		t.Errorf("row = %+v", row)
	}
}

func TestMoneyVsPointsPerfectLine(t *testing.T) {
	// Points lie exactly on points = 2*value + 1.
	players := []model.Player{
		{PlayerName: "a", Team: "Arsenal", Price: 10},
		{PlayerName: "b", Team: "Chelsea", Price: 20},
		{PlayerName: "c", Team: "Everton", Price: 30},
	}
	table := []model.TableRow{
		{Team: "Arsenal", Points: 21, Played: 10},
		{Team: "Chelsea", Points: 41, Played: 10},
		{Team: "Everton", Points: 61, Played: 10},
	}

	section := moneyVsPoints(players, table)
	if section == nil {
		t.Fatal("section is nil")
	}
	r := section.Regression
	if float64(r.Slope) != 2 || float64(r.Intercept) != 1 {
		t.Errorf("fit = %v*x + %v, want 2*x + 1", float64(r.Slope), float64(r.Intercept))
	}
	if float64(r.RSquared) != 1 {
		t.Errorf("RSquared = %v, want 1", float64(r.RSquared))
	}
	for _, row := range section.Teams {
		if float64(row.OverUnder) != 0 {
			t.Errorf("%s over/under = %v, want 0 on a perfect fit", row.Team, float64(row.OverUnder))
		}
	}
}

func TestMoneyVsPointsSkipsUnknownTeams(t *testing.T) {
	players := []model.Player{
		{PlayerName: "a", Team: "Arsenal", Price: 10},
		{PlayerName: "b", Team: "Relegated FC", Price: 5},
	}
	table := []model.TableRow{{Team: "Arsenal", Points: 30, Played: 12}}

	section := moneyVsPoints(players, table)
	if section == nil || len(section.Teams) != 1 {
		t.Fatalf("section = %+v", section)
	}
	if section.Teams[0].Team != "Arsenal" {
		t.Errorf("team = %s", section.Teams[0].Team)
	}
}

func TestMoneyVsPointsEmptyIsNil(t *testing.T) {
	if section := moneyVsPoints(nil, nil); section != nil {
		t.Error("no samples should yield nil section")
	}
}
