// Package clean turns raw football-data.co.uk season tables into the
// fixed-schema match table the rest of the pipeline consumes.
//
// Raw files carry 107-120 columns per season; ~96 are bookmaker odds
// irrelevant to match analysis. Cleaning keeps the 23 columns describing
// actual match events and derives 4 more.
package clean

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"eplpulse/internal/config"
	"eplpulse/internal/fdata"
	"eplpulse/internal/model"
)

// dateFormats are tried in order; football-data files mix 4-digit and
// 2-digit years across seasons.
var dateFormats = []string{"02/01/2006", "02/01/06"}

// SeasonTable pairs a raw season CSV with its season label.
type SeasonTable struct {
	Season string
	Table  fdata.Table
}

// Stats reports what cleaning corrected or discarded.
type Stats struct {
	RawRows          int
	DroppedBadDates  int
	DroppedNullGoals int
	ZeroFilled       map[string]int // column -> null count filled with 0
	Teams            []string
	Referees         int
}

// Run cleans and concatenates the given season tables in order. Row order
// within a season is preserved; match ids are assigned sequentially across
// the full concatenated set so reruns over unchanged input are
// reproducible.
func Run(cfg config.Config, tables []SeasonTable) ([]model.Match, Stats, error) {
	stats := Stats{ZeroFilled: make(map[string]int)}
	var matches []model.Match

	for _, st := range tables {
		col := indexColumns(st.Table.Header)
		for _, row := range st.Table.Rows {
			stats.RawRows++
			get := func(name string) string { return field(row, col, name) }

			date, ok := ParseDate(get("Date"))
			if !ok {
				stats.DroppedBadDates++
				continue
			}

			// Goals cannot be imputed; a null goal column means bad data.
			homeGoals, ok := parseGoals(get("FTHG"))
			if !ok {
				stats.DroppedNullGoals++
				continue
			}
			awayGoals, ok := parseGoals(get("FTAG"))
			if !ok {
				stats.DroppedNullGoals++
				continue
			}

			numeric := func(name string) int {
				v, filled := parseStat(get(name))
				if filled {
					stats.ZeroFilled[name]++
				}
				return v
			}

			m := model.Match{
				Season:   st.Season,
				Date:     date,
				Time:     strings.TrimSpace(get("Time")),
				HomeTeam: config.Canonicalize(cfg.FootballDataNames, get("HomeTeam")),
				AwayTeam: config.Canonicalize(cfg.FootballDataNames, get("AwayTeam")),

				HomeGoals: homeGoals,
				AwayGoals: awayGoals,
				Result:    strings.TrimSpace(get("FTR")),

				HTHomeGoals: numeric("HTHG"),
				HTAwayGoals: numeric("HTAG"),
				HTResult:    strings.TrimSpace(get("HTR")),

				Referee: cleanReferee(get("Referee")),

				HomeShots:         numeric("HS"),
				AwayShots:         numeric("AS"),
				HomeShotsOnTarget: numeric("HST"),
				AwayShotsOnTarget: numeric("AST"),
				HomeFouls:         numeric("HF"),
				AwayFouls:         numeric("AF"),
				HomeCorners:       numeric("HC"),
				AwayCorners:       numeric("AC"),
				HomeYellows:       numeric("HY"),
				AwayYellows:       numeric("AY"),
				HomeReds:          numeric("HR"),
				AwayReds:          numeric("AR"),
			}

			// Derived sums save repeated computation downstream and are
			// the most commonly queried match metrics.
			m.TotalGoals = m.HomeGoals + m.AwayGoals
			m.TotalShots = m.HomeShots + m.AwayShots
			m.TotalFouls = m.HomeFouls + m.AwayFouls
			m.TotalCards = m.HomeYellows + m.AwayYellows + m.HomeReds + m.AwayReds

			matches = append(matches, m)
		}
	}

	for i := range matches {
		matches[i].MatchID = i + 1
	}

	teamSet := make(map[string]struct{})
	refSet := make(map[string]struct{})
	for _, m := range matches {
		teamSet[m.HomeTeam] = struct{}{}
		teamSet[m.AwayTeam] = struct{}{}
		refSet[m.Referee] = struct{}{}
	}
	for t := range teamSet {
		stats.Teams = append(stats.Teams, t)
	}
	sort.Strings(stats.Teams)
	stats.Referees = len(refSet)

	return matches, stats, nil
}

// ParseDate standardizes DD/MM/YYYY and DD/MM/YY to ISO 8601 (YYYY-MM-DD).
// The second return value is false when neither format matches.
func ParseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// parseGoals parses a goals column; false means the value was null or
// unusable and the row must be dropped.
func parseGoals(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// parseStat parses a peripheral numeric stat. A null means "not recorded"
// and is filled with 0. The second return value marks the fill.
func parseStat(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), false
	}
	return 0, true
}

// cleanReferee trims whitespace and substitutes "Unknown" for empty names.
// Trailing whitespace would otherwise split one referee into duplicate
// groups during aggregation.
func cleanReferee(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Unknown"
	}
	return s
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

