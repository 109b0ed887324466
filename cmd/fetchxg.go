package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"eplpulse/internal/config"
	"eplpulse/internal/dataset"
	"eplpulse/internal/understat"
)

// historicalSeasonMinMatches flags an obviously truncated scrape of a
// finished season (a full one has 380 matches).
const historicalSeasonMinMatches = 300

var fetchXGCmd = &cobra.Command{
	Use:   "fetch-xg",
	Short: "Fetch Understat expected-goals data",
	Long: `Scrapes per-match, per-team and per-player xG for the current season
from understat.com. Results younger than 24 hours are reused. This
source is optional: on failure a warning is printed and the pipeline
continues without xG enrichment.`,
	RunE: runFetchXG,
}

func runFetchXG(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	season, ok := cfg.Season(cfg.CurrentSeason)
	if !ok {
		return fmt.Errorf("unknown season %q", cfg.CurrentSeason)
	}

	cachePaths := []string{
		filepath.Join(dataDir, dataset.XGMatchesFile),
		filepath.Join(dataDir, dataset.XGTeamsFile),
		filepath.Join(dataDir, dataset.XGPlayersFile),
	}
	if understat.Fresh(understat.CacheMaxAge, cachePaths...) {
		fmt.Println("Using cached xG data (less than 24 hours old).")
		return nil
	}

	fmt.Printf("Fetching xG data for %s (Understat year %s)...\n",
		cfg.CurrentSeason, season.UnderstatYear)

	league, err := understat.NewClient(cfg).FetchLeague(season.UnderstatYear)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: Understat fetch failed: %v\n", err)
		fmt.Fprintln(os.Stderr, "Continuing without xG enrichment.")
		return nil
	}

	matches := understat.ProcessMatches(cfg, league.DatesData)
	if err := dataset.WriteMatchXG(dataDir, matches); err != nil {
		return fmt.Errorf("write xg matches: %w", err)
	}
	fmt.Printf("Saved: %s (%d rows)\n", filepath.Join(dataDir, dataset.XGMatchesFile), len(matches))
	if !season.Live && len(matches) < historicalSeasonMinMatches {
		fmt.Fprintf(os.Stderr, "WARNING: only %d matches found for a finished season; expected ~380\n", len(matches))
	}

	teams := understat.ProcessTeams(cfg, league.TeamsData)
	if err := dataset.WriteTeamXG(dataDir, teams); err != nil {
		return fmt.Errorf("write xg teams: %w", err)
	}
	fmt.Printf("Saved: %s (%d rows)\n", filepath.Join(dataDir, dataset.XGTeamsFile), len(teams))

	players := understat.ProcessPlayers(cfg, league.PlayersData)
	if err := dataset.WritePlayerXG(dataDir, players); err != nil {
		return fmt.Errorf("write xg players: %w", err)
	}
	fmt.Printf("Saved: %s (%d rows)\n", filepath.Join(dataDir, dataset.XGPlayersFile), len(players))
	return nil
}
