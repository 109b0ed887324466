// Package aggregate turns the cleaned stage tables into the dashboard
// document. The match table drives the required sections; FPL and
// Understat tables drive optional sections that degrade to null when
// their source is missing.
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"time"

	"eplpulse/internal/config"
	"eplpulse/internal/jsonx"
	"eplpulse/internal/model"
)

// Input carries the stage tables feeding one dashboard build. The Has
// flags distinguish "table absent" from "table empty".
type Input struct {
	Matches  []model.Match
	Players  []model.Player
	HasFPL   bool
	TeamXG   []model.TeamXG
	PlayerXG []model.PlayerXG
	HasXG    bool
}

// Build assembles the full dashboard document for the configured current
// season. Matches from other seasons feed only the season comparison.
func Build(cfg config.Config, in Input, now time.Time) model.Dashboard {
	var current []model.Match
	for _, m := range in.Matches {
		if m.Season == cfg.CurrentSeason {
			current = append(current, m)
		}
	}

	totalGoals := 0
	for _, m := range current {
		totalGoals += m.TotalGoals
	}

	table := leagueTable(current)

	d := model.Dashboard{
		GeneratedAt:   now.Format(time.RFC3339),
		Season:        cfg.CurrentSeason,
		Source:        "football-data.co.uk",
		TotalMatches:  len(current),
		TotalGoals:    totalGoals,
		GoalsPerMatch: ratio(float64(totalGoals), len(current), 2),

		SeasonStatus: seasonStatus(cfg, current),

		LeagueTable:        table,
		CumulativePoints:   cumulativePoints(current),
		MonthlyTrends:      monthlyTrends(current),
		HomeAway:           homeAwaySplit(current),
		RefereeStats:       refereeStats(current),
		ScorelineFrequency: scorelineFrequency(current),
		SeasonComparison:   seasonComparison(cfg, in.Matches),
	}

	if in.HasXG {
		d.XGTable, d.XGVsActual, d.ShotQuality = xgSections(in.TeamXG, table)
		d.TopScorers = topScorers(in.PlayerXG)
	}
	if in.HasFPL {
		d.PlayerValue = playerValue(in.Players)
		d.PlayerLeaderboards = playerLeaderboards(in.Players, in.PlayerXG, in.HasXG)
		d.MoneyVsPoints = moneyVsPoints(in.Players, table)
	}

	return d
}

// seasonStatus derives schedule totals from the canonical team list, so a
// hypothetical different league size still yields a coherent descriptor.
func seasonStatus(cfg config.Config, current []model.Match) model.SeasonStatus {
	n := len(cfg.CanonicalTeams[cfg.CurrentSeason])
	matchesTotal := n * (n - 1)
	matchdaysTotal := 2 * (n - 1)
	if n == 0 {
		matchesTotal, matchdaysTotal = 0, 0
	}

	// Postponements leave teams on different match counts; the team with
	// the most games played defines the current matchday.
	games := make(map[string]int)
	lastDate := ""
	for _, m := range current {
		games[m.HomeTeam]++
		games[m.AwayTeam]++
		if m.Date > lastDate {
			lastDate = m.Date
		}
	}
	matchdaysPlayed := 0
	for _, g := range games {
		if g > matchdaysPlayed {
			matchdaysPlayed = g
		}
	}

	return model.SeasonStatus{
		MatchesPlayed:   len(current),
		MatchesTotal:    matchesTotal,
		MatchdaysPlayed: matchdaysPlayed,
		MatchdaysTotal:  matchdaysTotal,
		IsComplete:      matchesTotal > 0 && len(current) >= matchesTotal,
		LastMatchDate:   lastDate,
	}
}

func leagueTable(current []model.Match) []model.TableRow {
	type tally struct {
		hw, hd, hl, aw, ad, al int
		gf, ga                 int
		shots, sot             int
		cleanSheets            int
	}
	tallies := make(map[string]*tally)
	team := func(name string) *tally {
		t, ok := tallies[name]
		if !ok {
			t = &tally{}
			tallies[name] = t
		}
		return t
	}

	for _, m := range current {
		h, a := team(m.HomeTeam), team(m.AwayTeam)
		switch m.Result {
		case "H":
			h.hw++
			a.al++
		case "D":
			h.hd++
			a.ad++
		case "A":
			h.hl++
			a.aw++
		}
		h.gf += m.HomeGoals
		h.ga += m.AwayGoals
		a.gf += m.AwayGoals
		a.ga += m.HomeGoals
		h.shots += m.HomeShots
		h.sot += m.HomeShotsOnTarget
		a.shots += m.AwayShots
		a.sot += m.AwayShotsOnTarget
		if m.AwayGoals == 0 {
			h.cleanSheets++
		}
		if m.HomeGoals == 0 {
			a.cleanSheets++
		}
	}

	names := make([]string, 0, len(tallies))
	for name := range tallies {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]model.TableRow, 0, len(names))
	for _, name := range names {
		t := tallies[name]
		played := t.hw + t.hd + t.hl + t.aw + t.ad + t.al
		won := t.hw + t.aw
		drawn := t.hd + t.ad
		lost := t.hl + t.al

		shotAcc := jsonx.Float(0)
		if t.shots > 0 {
			shotAcc = jsonx.Round(float64(t.sot)/float64(t.shots)*100, 2)
		}

		rows = append(rows, model.TableRow{
			Team:               name,
			Played:             played,
			Won:                won,
			Drawn:              drawn,
			Lost:               lost,
			GoalsFor:           t.gf,
			GoalsAgainst:       t.ga,
			GoalDifference:     t.gf - t.ga,
			Points:             won*3 + drawn,
			HomeWon:            t.hw,
			HomeDrawn:          t.hd,
			HomeLost:           t.hl,
			AwayWon:            t.aw,
			AwayDrawn:          t.ad,
			AwayLost:           t.al,
			CleanSheets:        t.cleanSheets,
			TotalShots:         t.shots,
			TotalShotsOnTarget: t.sot,
			ShotAccuracy:       shotAcc,
			GoalsPerGame:       ratio(float64(t.gf), played, 2),
		})
	}

	// Points, then goal difference, then goals scored. Team name last so
	// equal records still order deterministically.
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

func cumulativePoints(current []model.Match) map[string][]model.PointsStep {
	ordered := make([]model.Match, len(current))
	copy(ordered, current)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date < ordered[j].Date })

	series := make(map[string][]model.PointsStep)
	running := make(map[string]int)
	appendStep := func(team string, pts int) {
		running[team] += pts
		series[team] = append(series[team], model.PointsStep{
			Matchday: len(series[team]) + 1,
			Points:   running[team],
		})
	}

	for _, m := range ordered {
		homePts, awayPts := 0, 0
		switch m.Result {
		case "H":
			homePts = 3
		case "D":
			homePts, awayPts = 1, 1
		case "A":
			awayPts = 3
		}
		appendStep(m.HomeTeam, homePts)
		appendStep(m.AwayTeam, awayPts)
	}
	return series
}

func monthlyTrends(current []model.Match) []model.MonthTrend {
	byMonth := make(map[string]*model.MonthTrend)
	for _, m := range current {
		if len(m.Date) < 7 {
			continue
		}
		month := m.Date[:7]
		t, ok := byMonth[month]
		if !ok {
			t = &model.MonthTrend{Month: month}
			byMonth[month] = t
		}
		t.Matches++
		t.TotalGoals += m.TotalGoals
		switch m.Result {
		case "H":
			t.HomeWins++
		case "D":
			t.Draws++
		case "A":
			t.AwayWins++
		}
	}

	trends := make([]model.MonthTrend, 0, len(byMonth))
	for _, t := range byMonth {
		t.AvgGoals = ratio(float64(t.TotalGoals), t.Matches, 2)
		trends = append(trends, *t)
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Month < trends[j].Month })
	return trends
}

func homeAwaySplit(current []model.Match) model.HomeAwaySplit {
	var s model.HomeAwaySplit
	homeGoals, awayGoals := 0, 0
	for _, m := range current {
		switch m.Result {
		case "H":
			s.HomeWins++
		case "D":
			s.Draws++
		case "A":
			s.AwayWins++
		}
		homeGoals += m.HomeGoals
		awayGoals += m.AwayGoals
	}
	s.TotalMatches = len(current)
	s.HomeGoalsAvg = ratio(float64(homeGoals), len(current), 2)
	s.AwayGoalsAvg = ratio(float64(awayGoals), len(current), 2)
	s.HomeWinPct = ratio(float64(s.HomeWins)*100, len(current), 2)
	s.DrawPct = ratio(float64(s.Draws)*100, len(current), 2)
	s.AwayWinPct = ratio(float64(s.AwayWins)*100, len(current), 2)
	return s
}

// refereeMinMatches filters out referees with too small a sample for the
// per-match averages to mean anything.
const refereeMinMatches = 3

func refereeStats(current []model.Match) []model.RefereeRow {
	type tally struct {
		matches, goals, fouls, cards, reds int
	}
	byRef := make(map[string]*tally)
	for _, m := range current {
		t, ok := byRef[m.Referee]
		if !ok {
			t = &tally{}
			byRef[m.Referee] = t
		}
		t.matches++
		t.goals += m.TotalGoals
		t.fouls += m.TotalFouls
		t.cards += m.TotalCards
		t.reds += m.HomeReds + m.AwayReds
	}

	var rows []model.RefereeRow
	for ref, t := range byRef {
		if t.matches < refereeMinMatches {
			continue
		}
		rows = append(rows, model.RefereeRow{
			Referee:   ref,
			Matches:   t.matches,
			AvgGoals:  ratio(float64(t.goals), t.matches, 2),
			AvgFouls:  ratio(float64(t.fouls), t.matches, 2),
			AvgCards:  ratio(float64(t.cards), t.matches, 2),
			TotalReds: t.reds,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AvgCards != rows[j].AvgCards {
			return rows[i].AvgCards > rows[j].AvgCards
		}
		return rows[i].Referee < rows[j].Referee
	})
	return rows
}

func scorelineFrequency(current []model.Match) []model.ScorelineCount {
	counts := make(map[string]int)
	for _, m := range current {
		counts[fmt.Sprintf("%d-%d", m.HomeGoals, m.AwayGoals)]++
	}
	rows := make([]model.ScorelineCount, 0, len(counts))
	for score, count := range counts {
		rows = append(rows, model.ScorelineCount{Score: score, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Score < rows[j].Score
	})
	if len(rows) > 10 {
		rows = rows[:10]
	}
	return rows
}

func seasonComparison(cfg config.Config, all []model.Match) []model.SeasonSummary {
	bySeason := make(map[string][]model.Match)
	for _, m := range all {
		bySeason[m.Season] = append(bySeason[m.Season], m)
	}

	var rows []model.SeasonSummary
	for _, season := range cfg.Seasons {
		matches := bySeason[season.Label]
		if len(matches) == 0 {
			continue
		}
		goals, cards, fouls, homeWins := 0, 0, 0, 0
		for _, m := range matches {
			goals += m.TotalGoals
			cards += m.TotalCards
			fouls += m.TotalFouls
			if m.Result == "H" {
				homeWins++
			}
		}
		rows = append(rows, model.SeasonSummary{
			Season:     season.Label,
			Matches:    len(matches),
			AvgGoals:   ratio(float64(goals), len(matches), 2),
			AvgCards:   ratio(float64(cards), len(matches), 2),
			HomeWinPct: ratio(float64(homeWins)*100, len(matches), 2),
			AvgFouls:   ratio(float64(fouls), len(matches), 2),
		})
	}
	return rows
}

// ratio divides by an integer count, returning 0 for an empty count
// instead of NaN.
func ratio(numerator float64, count, decimals int) jsonx.Float {
	if count <= 0 {
		return 0
	}
	return jsonx.Round(numerator/float64(count), decimals)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
