package understat

import (
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"eplpulse/internal/config"
	"eplpulse/internal/model"
)

// normalizeTeam converts an Understat team name to canonical form.
// Understat sometimes uses underscores in place of spaces.
func normalizeTeam(names map[string]string, name string) string {
	return config.Canonicalize(names, strings.ReplaceAll(name, "_", " "))
}

// normalizeTeamList canonicalizes a comma-separated team list. Players who
// transferred mid-season carry every club they appeared for.
func normalizeTeamList(names map[string]string, list string) string {
	parts := strings.Split(list, ",")
	for i, p := range parts {
		parts[i] = normalizeTeam(names, strings.TrimSpace(p))
	}
	return strings.Join(parts, ",")
}

// ProcessMatches converts datesData into the match xG table. Unfinished
// fixtures (isResult false) are skipped.
func ProcessMatches(cfg config.Config, datesData string) []model.MatchXG {
	var rows []model.MatchXG
	gjson.Parse(datesData).ForEach(func(_, m gjson.Result) bool {
		if !m.Get("isResult").Bool() {
			return true
		}
		date := m.Get("datetime").String()
		if len(date) > 10 {
			date = date[:10]
		}
		rows = append(rows, model.MatchXG{
			MatchID:   m.Get("id").String(),
			Date:      date,
			HomeTeam:  normalizeTeam(cfg.UnderstatNames, m.Get("h.title").String()),
			AwayTeam:  normalizeTeam(cfg.UnderstatNames, m.Get("a.title").String()),
			HomeGoals: int(m.Get("goals.h").Int()),
			AwayGoals: int(m.Get("goals.a").Int()),
			HomeXG:    round2(m.Get("xG.h").Float()),
			AwayXG:    round2(m.Get("xG.a").Float()),
		})
		return true
	})
	return rows
}

// ProcessTeams converts teamsData into per-team season aggregates.
// teamsData is an object keyed by team id; each value carries a title and
// a per-match history array that is summed here.
func ProcessTeams(cfg config.Config, teamsData string) []model.TeamXG {
	var rows []model.TeamXG
	gjson.Parse(teamsData).ForEach(func(_, team gjson.Result) bool {
		history := team.Get("history")
		if !history.IsArray() || len(history.Array()) == 0 {
			return true
		}

		var t model.TeamXG
		t.Team = normalizeTeam(cfg.UnderstatNames, team.Get("title").String())

		var ppdaSum float64
		history.ForEach(func(_, h gjson.Result) bool {
			t.Matches++
			t.XGFor += h.Get("xG").Float()
			t.XGAgainst += h.Get("xGA").Float()
			t.GoalsFor += int(h.Get("scored").Int())
			t.GoalsAgainst += int(h.Get("missed").Int())
			t.NPXGFor += h.Get("npxG").Float()
			t.NPXGAgainst += h.Get("npxGA").Float()
			t.DeepCompletions += int(h.Get("deep").Int())

			// Understat reports PPDA as att/def pass counts per match.
			if ppda := h.Get("ppda"); ppda.IsObject() {
				def := ppda.Get("def").Float()
				if def < 1 {
					def = 1
				}
				ppdaSum += ppda.Get("att").Float() / def
			}
			return true
		})

		t.XGDifference = round2(t.XGFor - t.XGAgainst)
		t.XGFor = round2(t.XGFor)
		t.XGAgainst = round2(t.XGAgainst)
		t.NPXGFor = round2(t.NPXGFor)
		t.NPXGAgainst = round2(t.NPXGAgainst)
		t.PPDA = round2(ppdaSum / float64(t.Matches))

		rows = append(rows, t)
		return true
	})
	return rows
}

// ProcessPlayers converts playersData into the player xG table. Rows
// without a player name have no usable identity and are dropped.
func ProcessPlayers(cfg config.Config, playersData string) []model.PlayerXG {
	var rows []model.PlayerXG
	gjson.Parse(playersData).ForEach(func(_, p gjson.Result) bool {
		name := p.Get("player_name").String()
		if name == "" {
			return true
		}
		rows = append(rows, model.PlayerXG{
			PlayerName: name,
			Team:       normalizeTeamList(cfg.UnderstatNames, p.Get("team_title").String()),
			Position:   p.Get("position").String(),
			Games:      int(p.Get("games").Int()),
			Minutes:    int(p.Get("time").Int()),
			Goals:      int(p.Get("goals").Int()),
			XG:         round2(p.Get("xG").Float()),
			Assists:    int(p.Get("assists").Int()),
			XA:         round2(p.Get("xA").Float()),
			Shots:      int(p.Get("shots").Int()),
			KeyPasses:  int(p.Get("key_passes").Int()),
			NPG:        int(p.Get("npg").Int()),
			NPXG:       round2(p.Get("npxG").Float()),
		})
		return true
	})
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
