// Package model defines the tabular records passed between pipeline stages
// and the dashboard document written by the transform stage.
package model

import "eplpulse/internal/jsonx"

// ---- Stage tables ----

// Match is one cleaned row of the primary match table. Goals are always
// present (rows with null goals are dropped during cleaning); every other
// numeric field defaults to zero when the source had no value.
type Match struct {
	MatchID  int
	Season   string
	Date     string // ISO 8601, YYYY-MM-DD
	Time     string
	HomeTeam string
	AwayTeam string

	HomeGoals int
	AwayGoals int
	Result    string // "H", "D", "A"

	HTHomeGoals int
	HTAwayGoals int
	HTResult    string

	Referee string

	HomeShots         int
	AwayShots         int
	HomeShotsOnTarget int
	AwayShotsOnTarget int
	HomeFouls         int
	AwayFouls         int
	HomeCorners       int
	AwayCorners       int
	HomeYellows       int
	AwayYellows       int
	HomeReds          int
	AwayReds          int

	TotalGoals int
	TotalShots int
	TotalFouls int
	TotalCards int
}

// Player is one row of the FPL player table, one per player per season.
type Player struct {
	PlayerName  string
	FullName    string
	Team        string
	Position    string // GK, DEF, MID, FWD, UNK
	Goals       int
	Assists     int
	CleanSheets int
	Minutes     int
	YellowCards int
	RedCards    int
	TotalPoints int
	Price       float64
	Bonus       int
}

// Fixture is one finished fixture from the FPL fixtures feed.
type Fixture struct {
	MatchDate string
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
}

// TeamXG is one row of the per-team Understat aggregate table.
type TeamXG struct {
	Team            string
	Matches         int
	XGFor           float64
	XGAgainst       float64
	GoalsFor        int
	GoalsAgainst    int
	NPXGFor         float64
	NPXGAgainst     float64
	XGDifference    float64
	PPDA            float64
	DeepCompletions int
}

// MatchXG is one finished match from Understat with per-side xG.
type MatchXG struct {
	MatchID   string
	Date      string
	HomeTeam  string
	AwayTeam  string
	HomeGoals int
	AwayGoals int
	HomeXG    float64
	AwayXG    float64
}

// PlayerXG is one row of the per-player Understat table. Team holds
// comma-separated canonical names when a player transferred mid-season.
type PlayerXG struct {
	PlayerName string
	Team       string
	Position   string
	Games      int
	Minutes    int
	Goals      int
	XG         float64
	Assists    int
	XA         float64
	Shots      int
	KeyPasses  int
	NPG        int
	NPXG       float64
}

// ---- Dashboard document ----

// Dashboard is the aggregated JSON document consumed by the static
// frontend. Optional sections are pointers or slices and marshal as null
// when their source table was unavailable; the keys themselves are always
// emitted so the frontend can branch on presence.
type Dashboard struct {
	GeneratedAt   string      `json:"generated_at"`
	Season        string      `json:"season"`
	Source        string      `json:"source"`
	TotalMatches  int         `json:"total_matches"`
	TotalGoals    int         `json:"total_goals"`
	GoalsPerMatch jsonx.Float `json:"goals_per_match"`

	SeasonStatus SeasonStatus `json:"season_status"`

	LeagueTable        []TableRow              `json:"league_table"`
	CumulativePoints   map[string][]PointsStep `json:"cumulative_points"`
	MonthlyTrends      []MonthTrend            `json:"monthly_trends"`
	HomeAway           HomeAwaySplit           `json:"home_away"`
	RefereeStats       []RefereeRow            `json:"referee_stats"`
	ScorelineFrequency []ScorelineCount        `json:"scoreline_frequency"`
	SeasonComparison   []SeasonSummary         `json:"season_comparison"`

	// Optional sections, null when the backing table is unavailable.
	XGTable            []XGTableRow        `json:"xg_table"`
	XGVsActual         []XGScatterPoint    `json:"xg_vs_actual"`
	TopScorers         []ScorerRow         `json:"top_scorers"`
	ShotQuality        []ShotQualityRow    `json:"shot_quality"`
	PlayerValue        []ValueRow          `json:"player_value"`
	PlayerLeaderboards *PlayerLeaderboards `json:"player_leaderboards"`
	MoneyVsPoints      *MoneyVsPoints      `json:"money_vs_points"`
}

// SeasonStatus describes how much of the schedule has been played. The
// totals are derived from the canonical team list, so a partial season
// produces a coherent partial descriptor.
type SeasonStatus struct {
	MatchesPlayed   int    `json:"matches_played"`
	MatchesTotal    int    `json:"matches_total"`
	MatchdaysPlayed int    `json:"matchdays_played"`
	MatchdaysTotal  int    `json:"matchdays_total"`
	IsComplete      bool   `json:"is_complete"`
	LastMatchDate   string `json:"last_match_date"`
}

// TableRow is one league table entry.
type TableRow struct {
	Team               string      `json:"team"`
	Played             int         `json:"played"`
	Won                int         `json:"won"`
	Drawn              int         `json:"drawn"`
	Lost               int         `json:"lost"`
	GoalsFor           int         `json:"goals_for"`
	GoalsAgainst       int         `json:"goals_against"`
	GoalDifference     int         `json:"goal_difference"`
	Points             int         `json:"points"`
	HomeWon            int         `json:"home_won"`
	HomeDrawn          int         `json:"home_drawn"`
	HomeLost           int         `json:"home_lost"`
	AwayWon            int         `json:"away_won"`
	AwayDrawn          int         `json:"away_drawn"`
	AwayLost           int         `json:"away_lost"`
	CleanSheets        int         `json:"clean_sheets"`
	TotalShots         int         `json:"total_shots"`
	TotalShotsOnTarget int         `json:"total_shots_on_target"`
	ShotAccuracy       jsonx.Float `json:"shot_accuracy"`
	GoalsPerGame       jsonx.Float `json:"goals_per_game"`
	Position           int         `json:"position"`
}

// PointsStep is one matchday entry in a team's cumulative points series.
type PointsStep struct {
	Matchday int `json:"matchday"`
	Points   int `json:"points"`
}

// MonthTrend aggregates matches by calendar month.
type MonthTrend struct {
	Month      string      `json:"month"`
	Matches    int         `json:"matches"`
	TotalGoals int         `json:"total_goals"`
	AvgGoals   jsonx.Float `json:"avg_goals"`
	HomeWins   int         `json:"home_wins"`
	Draws      int         `json:"draws"`
	AwayWins   int         `json:"away_wins"`
}

// HomeAwaySplit summarizes results by venue.
type HomeAwaySplit struct {
	HomeWins     int         `json:"home_wins"`
	Draws        int         `json:"draws"`
	AwayWins     int         `json:"away_wins"`
	HomeGoalsAvg jsonx.Float `json:"home_goals_avg"`
	AwayGoalsAvg jsonx.Float `json:"away_goals_avg"`
	TotalMatches int         `json:"total_matches"`
	HomeWinPct   jsonx.Float `json:"home_win_pct"`
	DrawPct      jsonx.Float `json:"draw_pct"`
	AwayWinPct   jsonx.Float `json:"away_win_pct"`
}

// RefereeRow aggregates discipline stats per referee (minimum 3 matches).
type RefereeRow struct {
	Referee   string      `json:"referee"`
	Matches   int         `json:"matches"`
	AvgGoals  jsonx.Float `json:"avg_goals"`
	AvgFouls  jsonx.Float `json:"avg_fouls"`
	AvgCards  jsonx.Float `json:"avg_cards"`
	TotalReds int         `json:"total_reds"`
}

// ScorelineCount is one "H-A" scoreline and its frequency.
type ScorelineCount struct {
	Score string `json:"score"`
	Count int    `json:"count"`
}

// SeasonSummary is one row of the cross-season comparison.
type SeasonSummary struct {
	Season     string      `json:"season"`
	Matches    int         `json:"matches"`
	AvgGoals   jsonx.Float `json:"avg_goals"`
	AvgCards   jsonx.Float `json:"avg_cards"`
	HomeWinPct jsonx.Float `json:"home_win_pct"`
	AvgFouls   jsonx.Float `json:"avg_fouls"`
}

// XGTableRow compares a team's xG aggregates with its actual record.
type XGTableRow struct {
	Team         string      `json:"team"`
	XGFor        jsonx.Float `json:"xg_for"`
	XGAgainst    jsonx.Float `json:"xg_against"`
	GoalsFor     int         `json:"goals_for"`
	GoalsAgainst int         `json:"goals_against"`
	XGDifference jsonx.Float `json:"xg_difference"`
	ActualPoints int         `json:"actual_points"`
}

// XGScatterPoint is one team in the xG-vs-actual-goals scatter.
type XGScatterPoint struct {
	Team        string      `json:"team"`
	TotalXG     jsonx.Float `json:"total_xg"`
	ActualGoals int         `json:"actual_goals"`
	Difference  jsonx.Float `json:"difference"`
}

// ShotQualityRow ranks teams by xG per shot.
type ShotQualityRow struct {
	Team       string      `json:"team"`
	TotalShots int         `json:"total_shots"`
	XGPerShot  jsonx.Float `json:"xg_per_shot"`
}

// ScorerRow is one entry of the Understat-backed top scorer list.
type ScorerRow struct {
	PlayerName   string      `json:"player_name"`
	Team         string      `json:"team"`
	Goals        int         `json:"goals"`
	Assists      int         `json:"assists"`
	XG           jsonx.Float `json:"xg"`
	XA           jsonx.Float `json:"xa"`
	Minutes      int         `json:"minutes"`
	GoalsMinusXG jsonx.Float `json:"goals_minus_xg"`
	Position     string      `json:"position"`
}

// ValueRow is one entry of the goals-per-million ranking.
type ValueRow struct {
	PlayerName      string      `json:"player_name"`
	Team            string      `json:"team"`
	Price           jsonx.Float `json:"price"`
	Goals           int         `json:"goals"`
	GoalsPerMillion jsonx.Float `json:"goals_per_million"`
}

// PlayerLeaderboards groups the FPL-backed player rankings. The xG fields
// inside individual rows are pointers: nil when Understat data was
// unavailable or the player could not be matched.
type PlayerLeaderboards struct {
	GoalScorers     []GoalScorerRow   `json:"goal_scorers"`
	AssistLeaders   []AssistLeaderRow `json:"assist_leaders"`
	IronMen         []IronManRow      `json:"iron_men"`
	GoalsByPosition []PositionGoals   `json:"goals_by_position"`
	BestValue       []BestValueRow    `json:"best_value"`
	MostCards       []CardsRow        `json:"most_cards"`
}

// GoalScorerRow is one entry of the top goal scorer leaderboard.
type GoalScorerRow struct {
	Rank       int          `json:"rank"`
	PlayerName string       `json:"player_name"`
	Team       string       `json:"team"`
	Position   string       `json:"position"`
	Goals      int          `json:"goals"`
	Assists    int          `json:"assists"`
	Minutes    int          `json:"minutes"`
	GoalsPer90 jsonx.Float  `json:"goals_per_90"`
	Price      jsonx.Float  `json:"price"`
	XG         *jsonx.Float `json:"xg"`
	Shots      *int         `json:"shots"`
}

// AssistLeaderRow is one entry of the assist leaderboard.
type AssistLeaderRow struct {
	Rank         int          `json:"rank"`
	PlayerName   string       `json:"player_name"`
	Team         string       `json:"team"`
	Position     string       `json:"position"`
	Assists      int          `json:"assists"`
	Goals        int          `json:"goals"`
	Minutes      int          `json:"minutes"`
	AssistsPer90 jsonx.Float  `json:"assists_per_90"`
	XA           *jsonx.Float `json:"xa"`
	KeyPasses    *int         `json:"key_passes"`
	Price        jsonx.Float  `json:"price"`
}

// IronManRow is the most-played player of one team.
type IronManRow struct {
	PlayerName      string      `json:"player_name"`
	Team            string      `json:"team"`
	Position        string      `json:"position"`
	Minutes         int         `json:"minutes"`
	GamesEquivalent jsonx.Float `json:"games_equivalent"`
	Goals           int         `json:"goals"`
	Assists         int         `json:"assists"`
}

// PositionGoals aggregates scoring output by position.
type PositionGoals struct {
	Position     string      `json:"position"`
	TotalGoals   int         `json:"total_goals"`
	TotalAssists int         `json:"total_assists"`
	PlayerCount  int         `json:"player_count"`
	AvgGoals     jsonx.Float `json:"avg_goals"`
}

// BestValueRow is one entry of the goals+assists-per-million ranking.
type BestValueRow struct {
	Rank         int         `json:"rank"`
	PlayerName   string      `json:"player_name"`
	Team         string      `json:"team"`
	Position     string      `json:"position"`
	Price        jsonx.Float `json:"price"`
	Goals        int         `json:"goals"`
	Assists      int         `json:"assists"`
	GAPerMillion jsonx.Float `json:"ga_per_million"`
	Minutes      int         `json:"minutes"`
}

// CardsRow is one entry of the disciplinary leaderboard.
type CardsRow struct {
	PlayerName string `json:"player_name"`
	Team       string `json:"team"`
	Position   string `json:"position"`
	Yellows    int    `json:"yellows"`
	Reds       int    `json:"reds"`
	TotalCards int    `json:"total_cards"`
	Minutes    int    `json:"minutes"`
}

// MoneyVsPoints holds the squad-value regression section.
type MoneyVsPoints struct {
	Teams      []MoneyRow `json:"teams"`
	Regression Regression `json:"regression"`
}

// MoneyRow relates one team's squad value to its points haul.
type MoneyRow struct {
	Team           string      `json:"team"`
	SquadValue     jsonx.Float `json:"squad_value"`
	Points         int         `json:"points"`
	Played         int         `json:"played"`
	PointsPerMatch jsonx.Float `json:"points_per_match"`
	ExpectedPoints jsonx.Float `json:"expected_points"`
	OverUnder      jsonx.Float `json:"over_under"`
}

// Regression holds the closed-form OLS fit of squad value against points.
type Regression struct {
	Slope     jsonx.Float `json:"slope"`
	Intercept jsonx.Float `json:"intercept"`
	RSquared  jsonx.Float `json:"r_squared"`
}
