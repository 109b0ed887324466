// Package config holds the static season, team, and data-source
// configuration shared by every pipeline stage. Stages receive a Config
// value explicitly; nothing in this package is mutated after Default
// returns.
package config

// Season describes one tracked Premier League season.
type Season struct {
	// Label is the canonical season identifier, e.g. "2024-25".
	Label string
	// Code is the football-data.co.uk URL path segment, e.g. "2425".
	Code string
	// UnderstatYear is the season start year used by Understat.
	UnderstatYear string
	// Live marks the in-progress season: its match CSV is re-downloaded on
	// every run and FPL data comes from the live API instead of the archive.
	Live bool
}

// Config is the immutable configuration consumed by the pipeline stages.
type Config struct {
	Seasons       []Season
	CurrentSeason string

	// FootballDataURL is a template with %s standing in for Season.Code.
	FootballDataURL string
	// FPLArchiveBase is a template with %s standing in for the season label.
	FPLArchiveBase string
	FPLLiveAPI     string
	// UnderstatLeagueURL is a template with %s standing in for UnderstatYear.
	UnderstatLeagueURL string

	// CanonicalTeams maps a season label to its fixed 20-team list. Every
	// extractor normalizes to these exact strings before writing output;
	// cross-source merges depend on it.
	CanonicalTeams map[string][]string

	FootballDataNames map[string]string
	FPLNames          map[string]string
	UnderstatNames    map[string]string
}

// Default returns the project configuration. To add a season: append to
// Seasons, update CurrentSeason, add the team list, and add any new name
// mappings.
func Default() Config {
	return Config{
		Seasons: []Season{
			{Label: "2022-23", Code: "2223", UnderstatYear: "2022"},
			{Label: "2023-24", Code: "2324", UnderstatYear: "2023"},
			{Label: "2024-25", Code: "2425", UnderstatYear: "2024"},
			{Label: "2025-26", Code: "2526", UnderstatYear: "2025", Live: true},
		},
		CurrentSeason: "2025-26",

		FootballDataURL:    "https://www.football-data.co.uk/mmz4281/%s/E0.csv",
		FPLArchiveBase:     "https://raw.githubusercontent.com/vaastav/Fantasy-Premier-League/master/data/%s",
		FPLLiveAPI:         "https://fantasy.premierleague.com/api",
		UnderstatLeagueURL: "https://understat.com/league/EPL/%s",

		CanonicalTeams: map[string][]string{
			"2022-23": {
				"Arsenal", "Aston Villa", "Bournemouth", "Brentford", "Brighton",
				"Chelsea", "Crystal Palace", "Everton", "Fulham",
				"Leeds United", "Leicester City", "Liverpool", "Manchester City",
				"Manchester United", "Newcastle United", "Nottingham Forest",
				"Southampton", "Tottenham Hotspur", "West Ham United", "Wolverhampton",
			},
			"2023-24": {
				"Arsenal", "Aston Villa", "Bournemouth", "Brentford", "Brighton",
				"Burnley", "Chelsea", "Crystal Palace", "Everton", "Fulham",
				"Liverpool", "Luton Town", "Manchester City", "Manchester United",
				"Newcastle United", "Nottingham Forest", "Sheffield United",
				"Tottenham Hotspur", "West Ham United", "Wolverhampton",
			},
			"2024-25": {
				"Arsenal", "Aston Villa", "Bournemouth", "Brentford", "Brighton",
				"Chelsea", "Crystal Palace", "Everton", "Fulham", "Ipswich",
				"Leicester City", "Liverpool", "Manchester City", "Manchester United",
				"Newcastle United", "Nottingham Forest", "Southampton",
				"Tottenham Hotspur", "West Ham United", "Wolverhampton",
			},
			"2025-26": {
				"Arsenal", "Aston Villa", "Bournemouth", "Brentford", "Brighton",
				"Burnley", "Chelsea", "Crystal Palace", "Everton", "Fulham",
				"Leeds United", "Liverpool", "Manchester City", "Manchester United",
				"Newcastle United", "Nottingham Forest", "Sunderland",
				"Tottenham Hotspur", "West Ham United", "Wolverhampton",
			},
		},

		// football-data.co.uk uses short names and abbreviations.
		FootballDataNames: map[string]string{
			"Man United":       "Manchester United",
			"Man City":         "Manchester City",
			"Nott'm Forest":    "Nottingham Forest",
			"Tottenham":        "Tottenham Hotspur",
			"Newcastle":        "Newcastle United",
			"West Ham":         "West Ham United",
			"Wolves":           "Wolverhampton",
			"Luton":            "Luton Town",
			"Leicester":        "Leicester City",
			"Sheffield United": "Sheffield United",
			"Leeds":            "Leeds United",
			"Sunderland":       "Sunderland",
		},

		// FPL has its own short forms.
		FPLNames: map[string]string{
			"Man Utd":       "Manchester United",
			"Man City":      "Manchester City",
			"Nott'm Forest": "Nottingham Forest",
			"Spurs":         "Tottenham Hotspur",
			"Newcastle":     "Newcastle United",
			"West Ham":      "West Ham United",
			"Wolves":        "Wolverhampton",
			"Luton":         "Luton Town",
			"Leicester":     "Leicester City",
			"Sheffield Utd": "Sheffield United",
			"Leeds":         "Leeds United",
		},

		// Understat uses full names with inconsistent spacing/suffixes.
		UnderstatNames: map[string]string{
			"Manchester United":        "Manchester United",
			"Manchester City":          "Manchester City",
			"Nottingham Forest":        "Nottingham Forest",
			"Tottenham":                "Tottenham Hotspur",
			"Newcastle United":         "Newcastle United",
			"West Ham":                 "West Ham United",
			"Wolverhampton Wanderers":  "Wolverhampton",
			"Luton Town":               "Luton Town",
			"Leicester City":           "Leicester City",
			"Leicester":                "Leicester City",
			"Sheffield United":         "Sheffield United",
			"Leeds United":             "Leeds United",
			"Leeds":                    "Leeds United",
		},
	}
}

// Season returns the Season entry for a label, or false when unknown.
func (c Config) Season(label string) (Season, bool) {
	for _, s := range c.Seasons {
		if s.Label == label {
			return s, true
		}
	}
	return Season{}, false
}

// Canonicalize maps a source-specific team name onto its canonical form.
// Names absent from the map pass through unchanged, which makes repeated
// application a no-op.
func Canonicalize(names map[string]string, name string) string {
	if canonical, ok := names[name]; ok {
		return canonical
	}
	return name
}
