package aggregate

import (
	"sort"

	"eplpulse/internal/jsonx"
	"eplpulse/internal/model"
)

// moneyVsPoints relates squad value (sum of FPL prices per team) to
// league points via a closed-form least-squares fit. Teams without a
// league table entry are skipped; nil is returned when nothing remains.
func moneyVsPoints(players []model.Player, table []model.TableRow) *model.MoneyVsPoints {
	tableByTeam := make(map[string]model.TableRow, len(table))
	for _, row := range table {
		tableByTeam[row.Team] = row
	}

	squadValues := make(map[string]float64)
	for _, p := range players {
		squadValues[p.Team] += p.Price
	}

	type sample struct {
		team   string
		value  float64
		points int
		played int
	}
	samples := make([]sample, 0, len(squadValues))
	for team, value := range squadValues {
		row, ok := tableByTeam[team]
		if !ok {
			continue
		}
		samples = append(samples, sample{team, value, row.Points, row.Played})
	}
	if len(samples) == 0 {
		return nil
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].team < samples[j].team })

	n := float64(len(samples))
	var meanV, meanP float64
	for _, s := range samples {
		meanV += s.value
		meanP += float64(s.points)
	}
	meanV /= n
	meanP /= n

	var cov, varV, varP float64
	for _, s := range samples {
		dv := s.value - meanV
		dp := float64(s.points) - meanP
		cov += dv * dp
		varV += dv * dv
		varP += dp * dp
	}

	slope, intercept, rSquared := 0.0, meanP, 0.0
	if varV > 0 {
		slope = cov / varV
		intercept = meanP - slope*meanV
		if varP > 0 {
			rSquared = cov * cov / (varV * varP)
		}
	}

	rows := make([]model.MoneyRow, 0, len(samples))
	for _, s := range samples {
		expected := slope*s.value + intercept
		rows = append(rows, model.MoneyRow{
			Team:           s.team,
			SquadValue:     jsonx.Round(s.value, 1),
			Points:         s.points,
			Played:         s.played,
			PointsPerMatch: ratio(float64(s.points), s.played, 2),
			ExpectedPoints: jsonx.Round(expected, 2),
			OverUnder:      jsonx.Round(float64(s.points)-expected, 2),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].OverUnder != rows[j].OverUnder {
			return rows[i].OverUnder > rows[j].OverUnder
		}
		return rows[i].Team < rows[j].Team
	})

	return &model.MoneyVsPoints{
		Teams: rows,
		Regression: model.Regression{
			Slope:     jsonx.Round(slope, 4),
			Intercept: jsonx.Round(intercept, 2),
			RSquared:  jsonx.Round(rSquared, 3),
		},
	}
}
