package aggregate

import (
	"sort"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"eplpulse/internal/jsonx"
	"eplpulse/internal/model"
)

// xgStats is the Understat payload attached to a matched FPL player.
type xgStats struct {
	XG        float64
	XA        float64
	Shots     int
	KeyPasses int
}

type nameKey struct {
	name string
	team string
}

// xgIndex supports matching FPL player names against Understat names.
// FPL uses short names ("Haaland"), Understat full names ("Erling
// Haaland"), and transferred players carry comma-separated team lists on
// the Understat side, so the index is built per (name variant, team).
type xgIndex struct {
	byName map[nameKey]xgStats // exact player name
	byLast map[nameKey]xgStats // accent-stripped lowercase last name
	byTeam map[string][]teamCandidate
}

type teamCandidate struct {
	nameNorm string
	stats    xgStats
}

func buildXGIndex(players []model.PlayerXG) xgIndex {
	idx := xgIndex{
		byName: make(map[nameKey]xgStats),
		byLast: make(map[nameKey]xgStats),
		byTeam: make(map[string][]teamCandidate),
	}
	for _, p := range players {
		if p.PlayerName == "" {
			continue
		}
		stats := xgStats{XG: p.XG, XA: p.XA, Shots: p.Shots, KeyPasses: p.KeyPasses}
		nameNorm := strings.ToLower(stripAccents(p.PlayerName))
		parts := strings.Fields(nameNorm)
		last := nameNorm
		if len(parts) > 0 {
			last = parts[len(parts)-1]
		}
		for _, team := range strings.Split(p.Team, ",") {
			team = strings.TrimSpace(team)
			idx.byName[nameKey{p.PlayerName, team}] = stats
			idx.byLast[nameKey{last, team}] = stats
			idx.byTeam[team] = append(idx.byTeam[team], teamCandidate{nameNorm, stats})
		}
	}
	return idx
}

// jaroWinklerFloor is the minimum similarity accepted by the fuzzy
// fallback. Below this the risk of cross-matching teammates outweighs
// the value of an extra enrichment.
const jaroWinklerFloor = 0.9

// match resolves one FPL player to Understat stats, trying progressively
// looser strategies. Returns false when no strategy finds a match; the
// affected leaderboard fields stay null.
func (idx xgIndex) match(p model.Player) (xgStats, bool) {
	// Exact short name, then exact full name.
	if s, ok := idx.byName[nameKey{p.PlayerName, p.Team}]; ok {
		return s, true
	}
	if p.FullName != "" {
		if s, ok := idx.byName[nameKey{p.FullName, p.Team}]; ok {
			return s, true
		}
	}

	// FPL short names are usually surnames.
	nameNorm := strings.ToLower(stripAccents(p.PlayerName))
	if s, ok := idx.byLast[nameKey{nameNorm, p.Team}]; ok {
		return s, true
	}

	// Dotted names like "B.Fernandes" or "Kroupi.Jr": try each part long
	// enough to be a surname.
	if strings.Contains(p.PlayerName, ".") {
		for _, part := range strings.Split(nameNorm, ".") {
			if len(part) <= 2 {
				continue
			}
			if s, ok := idx.byLast[nameKey{part, p.Team}]; ok {
				return s, true
			}
		}
	}

	// Substring within the same team: "enzo" inside "enzo fernandez".
	clean := strings.TrimRight(nameNorm, ".")
	if clean != "" {
		for _, c := range idx.byTeam[p.Team] {
			if strings.Contains(c.nameNorm, clean) {
				return c.stats, true
			}
		}
	}

	// Fuzzy fallback within the same team for spelling drift the other
	// strategies miss ("Wood" vs "Woods").
	fullNorm := strings.ToLower(stripAccents(p.FullName))
	best, bestScore := xgStats{}, 0.0
	for _, c := range idx.byTeam[p.Team] {
		score := matchr.JaroWinkler(fullNorm, c.nameNorm, false)
		if score > bestScore {
			best, bestScore = c.stats, score
		}
	}
	if bestScore >= jaroWinklerFloor {
		return best, true
	}
	return xgStats{}, false
}

// stripAccents removes diacritics so Ekitiké matches Ekitike.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// per90 scales a stat to a per-90-minute rate. Below 90 minutes the rate
// is noise, so it reports 0.
func per90(stat, minutes int) jsonx.Float {
	if minutes < 90 {
		return 0
	}
	return jsonx.Round(float64(stat)/float64(minutes)*90, 2)
}

func playerLeaderboards(players []model.Player, xgPlayers []model.PlayerXG, hasXG bool) *model.PlayerLeaderboards {
	var idx xgIndex
	if hasXG {
		idx = buildXGIndex(xgPlayers)
	}
	lookup := func(p model.Player) (xgStats, bool) {
		if !hasXG {
			return xgStats{}, false
		}
		return idx.match(p)
	}

	return &model.PlayerLeaderboards{
		GoalScorers:     goalScorers(players, lookup),
		AssistLeaders:   assistLeaders(players, lookup),
		IronMen:         ironMen(players),
		GoalsByPosition: goalsByPosition(players),
		BestValue:       bestValue(players),
		MostCards:       mostCards(players),
	}
}

func goalScorers(players []model.Player, lookup func(model.Player) (xgStats, bool)) []model.GoalScorerRow {
	ranked := filterSort(players,
		func(p model.Player) bool { return p.Goals > 0 },
		func(a, b model.Player) bool { return a.Goals > b.Goals },
		20)

	rows := make([]model.GoalScorerRow, 0, len(ranked))
	for i, p := range ranked {
		row := model.GoalScorerRow{
			Rank:       i + 1,
			PlayerName: p.PlayerName,
			Team:       p.Team,
			Position:   p.Position,
			Goals:      p.Goals,
			Assists:    p.Assists,
			Minutes:    p.Minutes,
			GoalsPer90: per90(p.Goals, p.Minutes),
			Price:      jsonx.Round(p.Price, 1),
		}
		if stats, ok := lookup(p); ok {
			row.XG = floatPtr(stats.XG)
			row.Shots = intPtr(stats.Shots)
		}
		rows = append(rows, row)
	}
	return rows
}

func assistLeaders(players []model.Player, lookup func(model.Player) (xgStats, bool)) []model.AssistLeaderRow {
	ranked := filterSort(players,
		func(p model.Player) bool { return p.Assists > 0 },
		func(a, b model.Player) bool { return a.Assists > b.Assists },
		15)

	rows := make([]model.AssistLeaderRow, 0, len(ranked))
	for i, p := range ranked {
		row := model.AssistLeaderRow{
			Rank:         i + 1,
			PlayerName:   p.PlayerName,
			Team:         p.Team,
			Position:     p.Position,
			Assists:      p.Assists,
			Goals:        p.Goals,
			Minutes:      p.Minutes,
			AssistsPer90: per90(p.Assists, p.Minutes),
			Price:        jsonx.Round(p.Price, 1),
		}
		if stats, ok := lookup(p); ok {
			row.XA = floatPtr(stats.XA)
			row.KeyPasses = intPtr(stats.KeyPasses)
		}
		rows = append(rows, row)
	}
	return rows
}

// ironMen picks each team's most-played player, ranked by minutes.
func ironMen(players []model.Player) []model.IronManRow {
	topByTeam := make(map[string]model.Player)
	for _, p := range players {
		cur, ok := topByTeam[p.Team]
		if !ok || p.Minutes > cur.Minutes || (p.Minutes == cur.Minutes && p.PlayerName < cur.PlayerName) {
			topByTeam[p.Team] = p
		}
	}

	rows := make([]model.IronManRow, 0, len(topByTeam))
	for _, p := range topByTeam {
		rows = append(rows, model.IronManRow{
			PlayerName:      p.PlayerName,
			Team:            p.Team,
			Position:        p.Position,
			Minutes:         p.Minutes,
			GamesEquivalent: jsonx.Round(float64(p.Minutes)/90, 1),
			Goals:           p.Goals,
			Assists:         p.Assists,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Minutes != rows[j].Minutes {
			return rows[i].Minutes > rows[j].Minutes
		}
		return rows[i].Team < rows[j].Team
	})
	return rows
}

var positionOrder = []string{"FWD", "MID", "DEF", "GK"}

func goalsByPosition(players []model.Player) []model.PositionGoals {
	rows := make([]model.PositionGoals, 0, len(positionOrder))
	for _, pos := range positionOrder {
		var goals, assists, count int
		for _, p := range players {
			if p.Position != pos {
				continue
			}
			goals += p.Goals
			assists += p.Assists
			if p.Minutes > 0 {
				count++
			}
		}
		rows = append(rows, model.PositionGoals{
			Position:     pos,
			TotalGoals:   goals,
			TotalAssists: assists,
			PlayerCount:  count,
			AvgGoals:     ratio(float64(goals), count, 2),
		})
	}
	return rows
}

// bestValueMinMinutes excludes fringe players whose tiny samples would
// dominate a per-million ranking.
const bestValueMinMinutes = 450

func bestValue(players []model.Player) []model.BestValueRow {
	type valued struct {
		model.Player
		perMillion float64
	}
	var candidates []valued
	for _, p := range players {
		if p.Minutes < bestValueMinMinutes || p.Price <= 0 {
			continue
		}
		candidates = append(candidates, valued{
			Player:     p,
			perMillion: round2(float64(p.Goals+p.Assists) / p.Price),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].perMillion != candidates[j].perMillion {
			return candidates[i].perMillion > candidates[j].perMillion
		}
		return candidates[i].PlayerName < candidates[j].PlayerName
	})
	if len(candidates) > 15 {
		candidates = candidates[:15]
	}

	rows := make([]model.BestValueRow, 0, len(candidates))
	for i, c := range candidates {
		rows = append(rows, model.BestValueRow{
			Rank:         i + 1,
			PlayerName:   c.PlayerName,
			Team:         c.Team,
			Position:     c.Position,
			Price:        jsonx.Round(c.Price, 1),
			Goals:        c.Goals,
			Assists:      c.Assists,
			GAPerMillion: jsonx.Round(c.perMillion, 2),
			Minutes:      c.Minutes,
		})
	}
	return rows
}

func mostCards(players []model.Player) []model.CardsRow {
	ranked := filterSort(players,
		func(p model.Player) bool { return p.YellowCards+p.RedCards > 0 },
		func(a, b model.Player) bool {
			return a.YellowCards+a.RedCards > b.YellowCards+b.RedCards
		},
		10)

	rows := make([]model.CardsRow, 0, len(ranked))
	for _, p := range ranked {
		rows = append(rows, model.CardsRow{
			PlayerName: p.PlayerName,
			Team:       p.Team,
			Position:   p.Position,
			Yellows:    p.YellowCards,
			Reds:       p.RedCards,
			TotalCards: p.YellowCards + p.RedCards,
			Minutes:    p.Minutes,
		})
	}
	return rows
}

// filterSort selects players passing keep, orders them by less (player
// name breaking ties), and truncates to limit.
func filterSort(players []model.Player, keep func(model.Player) bool, less func(a, b model.Player) bool, limit int) []model.Player {
	var out []model.Player
	for _, p := range players {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if less(out[i], out[j]) {
			return true
		}
		if less(out[j], out[i]) {
			return false
		}
		return out[i].PlayerName < out[j].PlayerName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func floatPtr(v float64) *jsonx.Float {
	f := jsonx.Round(v, 2)
	return &f
}

func intPtr(v int) *int {
	return &v
}
