package dataset

import (
	"math"
	"testing"

	"eplpulse/internal/jsonx"
	"eplpulse/internal/model"
)

func sampleMatch() model.Match {
	return model.Match{
		MatchID: 1, Season: "2025-26", Date: "2025-08-16", Time: "15:00",
		HomeTeam: "Arsenal", AwayTeam: "Chelsea",
		HomeGoals: 2, AwayGoals: 1, Result: "H",
		HTHomeGoals: 1, HTAwayGoals: 0, HTResult: "H",
		Referee:   "M Oliver",
		HomeShots: 14, AwayShots: 9, HomeShotsOnTarget: 6, AwayShotsOnTarget: 3,
		HomeFouls: 10, AwayFouls: 12, HomeCorners: 7, AwayCorners: 4,
		HomeYellows: 1, AwayYellows: 2, HomeReds: 0, AwayReds: 1,
		TotalGoals: 3, TotalShots: 23, TotalFouls: 22, TotalCards: 4,
	}
}

func TestMatchesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := []model.Match{sampleMatch()}

	if err := WriteMatches(dir, want); err != nil {
		t.Fatal(err)
	}
	got, err := ReadMatches(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d matches", len(got))
	}
	if got[0] != want[0] {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got[0], want[0])
	}
}

func TestReadMatchesMissingIsError(t *testing.T) {
	if _, err := ReadMatches(t.TempDir()); err == nil {
		t.Fatal("missing required match table should be an error")
	}
}

func TestPlayersRoundTripAndAbsence(t *testing.T) {
	dir := t.TempDir()

	_, ok, err := ReadPlayers(dir)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("absent player table reported present")
	}

	want := []model.Player{{
		PlayerName: "Haaland", FullName: "Erling Haaland",
		Team: "Manchester City", Position: "FWD",
		Goals: 27, Assists: 5, CleanSheets: 0, Minutes: 2880,
		YellowCards: 3, RedCards: 0, TotalPoints: 256, Price: 14.1, Bonus: 30,
	}}
	if err := WritePlayers(dir, want); err != nil {
		t.Fatal(err)
	}
	got, ok, err := ReadPlayers(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("written player table reported absent")
	}
	if got[0] != want[0] {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got[0], want[0])
	}
}

func TestTeamXGRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := []model.TeamXG{{
		Team: "Liverpool", Matches: 38,
		XGFor: 78.12, XGAgainst: 34.56,
		GoalsFor: 86, GoalsAgainst: 41,
		NPXGFor: 70.01, NPXGAgainst: 30.99,
		XGDifference: 43.56, PPDA: 9.87, DeepCompletions: 312,
	}}
	if err := WriteTeamXG(dir, want); err != nil {
		t.Fatal(err)
	}
	got, ok, err := ReadTeamXG(dir)
	if err != nil || !ok {
		t.Fatalf("read: ok=%v err=%v", ok, err)
	}
	if got[0] != want[0] {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got[0], want[0])
	}
}

func TestPlayerXGRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := []model.PlayerXG{{
		PlayerName: "Mohamed Salah", Team: "Liverpool", Position: "F M S",
		Games: 38, Minutes: 3380, Goals: 29, XG: 25.54,
		Assists: 18, XA: 13.46, Shots: 130, KeyPasses: 82,
		NPG: 20, NPXG: 18.33,
	}}
	if err := WritePlayerXG(dir, want); err != nil {
		t.Fatal(err)
	}
	got, ok, err := ReadPlayerXG(dir)
	if err != nil || !ok {
		t.Fatalf("read: ok=%v err=%v", ok, err)
	}
	if got[0] != want[0] {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got[0], want[0])
	}
}

func TestDashboardRoundTrip(t *testing.T) {
	dir := t.TempDir()

	_, ok, err := ReadDashboard(dir)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("absent dashboard reported present")
	}

	want := model.Dashboard{
		GeneratedAt:   "2026-08-30T12:00:00Z",
		Season:        "2025-26",
		Source:        "football-data.co.uk",
		TotalMatches:  40,
		TotalGoals:    112,
		GoalsPerMatch: jsonx.Float(2.8),
	}
	if err := WriteDashboard(dir, want); err != nil {
		t.Fatal(err)
	}
	got, ok, err := ReadDashboard(dir)
	if err != nil || !ok {
		t.Fatalf("read: ok=%v err=%v", ok, err)
	}
	if got.Season != want.Season || got.TotalGoals != want.TotalGoals {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.XGTable != nil || got.MoneyVsPoints != nil {
		t.Errorf("optional sections should stay nil")
	}
}

func TestDashboardNonFiniteSerializesAsNull(t *testing.T) {
	dir := t.TempDir()
	d := model.Dashboard{
		Season:        "2025-26",
		GoalsPerMatch: jsonx.Float(math.NaN()),
	}
	if err := WriteDashboard(dir, d); err != nil {
		t.Fatalf("NaN in document should marshal as null, got error: %v", err)
	}
	got, ok, err := ReadDashboard(dir)
	if err != nil || !ok {
		t.Fatalf("read back: ok=%v err=%v", ok, err)
	}
	if got.GoalsPerMatch != 0 {
		t.Errorf("null should decode to 0, got %v", float64(got.GoalsPerMatch))
	}
}

func TestAtoiTolerance(t *testing.T) {
	cases := map[string]int{
		"7": 7, "2.0": 2, "": 0, "abc": 0, " 5 ": 5,
	}
	for in, want := range cases {
		if got := atoi(in); got != want {
			t.Errorf("atoi(%q) = %d, want %d", in, got, want)
		}
	}
}
