// Package report renders pipeline results as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"eplpulse/internal/model"
)

// PrintSeasonSummary prints a one-line header describing the dashboard.
func PrintSeasonSummary(w io.Writer, d model.Dashboard) {
	status := "in progress"
	if d.SeasonStatus.IsComplete {
		status = "complete"
	}
	fmt.Fprintf(w, "\nSeason: %s  |  Matches: %d/%d  |  Matchday: %d/%d  |  Status: %s  |  Last match: %s\n\n",
		d.Season, d.SeasonStatus.MatchesPlayed, d.SeasonStatus.MatchesTotal,
		d.SeasonStatus.MatchdaysPlayed, d.SeasonStatus.MatchdaysTotal,
		status, d.SeasonStatus.LastMatchDate)
}

// PrintLeagueTable writes the league standings to the provided writer.
func PrintLeagueTable(w io.Writer, rows []model.TableRow) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("POS", "TEAM", "P", "W", "D", "L", "GF", "GA", "GD", "PTS", "CS", "SHOTS", "ACC%")

	for _, r := range rows {
		table.Append(
			strconv.Itoa(r.Position),
			r.Team,
			strconv.Itoa(r.Played),
			strconv.Itoa(r.Won),
			strconv.Itoa(r.Drawn),
			strconv.Itoa(r.Lost),
			strconv.Itoa(r.GoalsFor),
			strconv.Itoa(r.GoalsAgainst),
			fmt.Sprintf("%+d", r.GoalDifference),
			strconv.Itoa(r.Points),
			strconv.Itoa(r.CleanSheets),
			strconv.Itoa(r.TotalShots),
			fmt.Sprintf("%.1f%%", float64(r.ShotAccuracy)),
		)
	}
	table.Render()
}

// PrintSectionStatus lists each dashboard section and whether it was
// populated, so a pipeline run shows at a glance which sources landed.
func PrintSectionStatus(w io.Writer, d model.Dashboard) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("SECTION", "SOURCE", "STATUS")

	appendSection := func(name, source string, populated bool) {
		status := "null"
		if populated {
			status = "populated"
		}
		table.Append(name, source, status)
	}

	appendSection("league_table", "football-data", len(d.LeagueTable) > 0)
	appendSection("cumulative_points", "football-data", len(d.CumulativePoints) > 0)
	appendSection("monthly_trends", "football-data", len(d.MonthlyTrends) > 0)
	appendSection("referee_stats", "football-data", len(d.RefereeStats) > 0)
	appendSection("scoreline_frequency", "football-data", len(d.ScorelineFrequency) > 0)
	appendSection("season_comparison", "football-data", len(d.SeasonComparison) > 0)
	appendSection("xg_table", "understat", d.XGTable != nil)
	appendSection("xg_vs_actual", "understat", d.XGVsActual != nil)
	appendSection("shot_quality", "understat", d.ShotQuality != nil)
	appendSection("top_scorers", "understat", d.TopScorers != nil)
	appendSection("player_value", "fpl", d.PlayerValue != nil)
	appendSection("player_leaderboards", "fpl", d.PlayerLeaderboards != nil)
	appendSection("money_vs_points", "fpl", d.MoneyVsPoints != nil)

	table.Render()
}

// PrintTopScorers writes the Understat scorer list when present.
func PrintTopScorers(w io.Writer, rows []model.ScorerRow) {
	if len(rows) == 0 {
		return
	}
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("PLAYER", "TEAM", "POS", "GOALS", "ASSISTS", "xG", "xA", "G-xG", "MIN")

	for _, r := range rows {
		table.Append(
			r.PlayerName,
			r.Team,
			r.Position,
			strconv.Itoa(r.Goals),
			strconv.Itoa(r.Assists),
			fmt.Sprintf("%.2f", float64(r.XG)),
			fmt.Sprintf("%.2f", float64(r.XA)),
			fmt.Sprintf("%+.2f", float64(r.GoalsMinusXG)),
			strconv.Itoa(r.Minutes),
		)
	}
	table.Render()
}
