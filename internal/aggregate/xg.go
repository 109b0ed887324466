package aggregate

import (
	"sort"

	"eplpulse/internal/jsonx"
	"eplpulse/internal/model"
)

// xgSections builds the three team-level Understat sections. Points and
// shot counts come from the league table so xG is always compared against
// the same record the table shows.
func xgSections(teams []model.TeamXG, table []model.TableRow) (xgTable []model.XGTableRow, scatter []model.XGScatterPoint, quality []model.ShotQualityRow) {
	tableByTeam := make(map[string]model.TableRow, len(table))
	for _, row := range table {
		tableByTeam[row.Team] = row
	}

	for _, t := range teams {
		actual := tableByTeam[t.Team]

		xgTable = append(xgTable, model.XGTableRow{
			Team:         t.Team,
			XGFor:        jsonx.Round(t.XGFor, 2),
			XGAgainst:    jsonx.Round(t.XGAgainst, 2),
			GoalsFor:     t.GoalsFor,
			GoalsAgainst: t.GoalsAgainst,
			XGDifference: jsonx.Round(t.XGFor-t.XGAgainst, 2),
			ActualPoints: actual.Points,
		})

		scatter = append(scatter, model.XGScatterPoint{
			Team:        t.Team,
			TotalXG:     jsonx.Round(t.XGFor, 2),
			ActualGoals: t.GoalsFor,
			Difference:  jsonx.Round(float64(t.GoalsFor)-t.XGFor, 2),
		})

		// Shot counts come from football-data, not Understat, so the
		// ratio only exists for teams present in the league table.
		if actual.TotalShots > 0 {
			// 3 decimals: the spread across teams is ~0.10 to 0.15 and
			// 2dp collapses half the league to the same value.
			quality = append(quality, model.ShotQualityRow{
				Team:       t.Team,
				TotalShots: actual.TotalShots,
				XGPerShot:  jsonx.Round(t.XGFor/float64(actual.TotalShots), 3),
			})
		}
	}

	sort.Slice(xgTable, func(i, j int) bool {
		if xgTable[i].XGDifference != xgTable[j].XGDifference {
			return xgTable[i].XGDifference > xgTable[j].XGDifference
		}
		return xgTable[i].Team < xgTable[j].Team
	})
	sort.Slice(quality, func(i, j int) bool {
		if quality[i].XGPerShot != quality[j].XGPerShot {
			return quality[i].XGPerShot > quality[j].XGPerShot
		}
		return quality[i].Team < quality[j].Team
	})
	return xgTable, scatter, quality
}

// topScorers ranks Understat players by goals, top 10.
func topScorers(players []model.PlayerXG) []model.ScorerRow {
	scorers := make([]model.PlayerXG, 0, len(players))
	for _, p := range players {
		if p.PlayerName != "" && p.Goals > 0 {
			scorers = append(scorers, p)
		}
	}
	sort.Slice(scorers, func(i, j int) bool {
		if scorers[i].Goals != scorers[j].Goals {
			return scorers[i].Goals > scorers[j].Goals
		}
		return scorers[i].PlayerName < scorers[j].PlayerName
	})
	if len(scorers) > 10 {
		scorers = scorers[:10]
	}

	rows := make([]model.ScorerRow, 0, len(scorers))
	for _, p := range scorers {
		rows = append(rows, model.ScorerRow{
			PlayerName:   p.PlayerName,
			Team:         p.Team,
			Goals:        p.Goals,
			Assists:      p.Assists,
			XG:           jsonx.Round(p.XG, 2),
			XA:           jsonx.Round(p.XA, 2),
			Minutes:      p.Minutes,
			GoalsMinusXG: jsonx.Round(float64(p.Goals)-p.XG, 2),
			Position:     p.Position,
		})
	}
	return rows
}

// playerValue ranks FPL players by goals per million of price, top 10.
func playerValue(players []model.Player) []model.ValueRow {
	type valued struct {
		model.Player
		perMillion float64
	}
	candidates := make([]valued, 0, len(players))
	for _, p := range players {
		if p.Goals > 0 && p.Price > 0 {
			candidates = append(candidates, valued{
				Player:     p,
				perMillion: round2(float64(p.Goals) / p.Price),
			})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].perMillion != candidates[j].perMillion {
			return candidates[i].perMillion > candidates[j].perMillion
		}
		return candidates[i].PlayerName < candidates[j].PlayerName
	})
	if len(candidates) > 10 {
		candidates = candidates[:10]
	}

	rows := make([]model.ValueRow, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, model.ValueRow{
			PlayerName:      c.PlayerName,
			Team:            c.Team,
			Price:           jsonx.Round(c.Price, 1),
			Goals:           c.Goals,
			GoalsPerMillion: jsonx.Round(c.perMillion, 2),
		})
	}
	return rows
}
