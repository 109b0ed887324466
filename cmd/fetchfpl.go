package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"eplpulse/internal/config"
	"eplpulse/internal/dataset"
	"eplpulse/internal/fpl"
)

var fetchFPLCmd = &cobra.Command{
	Use:   "fetch-fpl",
	Short: "Fetch Fantasy Premier League player data",
	Long: `Fetches player stats and finished fixtures for the current season,
from the FPL API when the season is live or the vaastav GitHub archive
for historical seasons. This source is optional: on failure a warning is
printed and the pipeline continues without player enrichment.`,
	RunE: runFetchFPL,
}

func runFetchFPL(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	season, _ := cfg.Season(cfg.CurrentSeason)
	mode := "historical archive"
	if season.Live {
		mode = "live API"
	}
	fmt.Printf("Fetching FPL data for %s (%s)...\n", cfg.CurrentSeason, mode)

	players, fixtures, err := fpl.NewClient(cfg).Fetch()
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: FPL fetch failed: %v\n", err)
		fmt.Fprintln(os.Stderr, "Continuing without player enrichment.")
		return nil
	}

	if err := dataset.WritePlayers(dataDir, players); err != nil {
		return fmt.Errorf("write players: %w", err)
	}
	fmt.Printf("Saved: %s (%d players)\n", filepath.Join(dataDir, dataset.PlayersFile), len(players))

	if len(fixtures) > 0 {
		if err := dataset.WriteFixtures(dataDir, fixtures); err != nil {
			return fmt.Errorf("write fixtures: %w", err)
		}
		fmt.Printf("Saved: %s (%d fixtures)\n", filepath.Join(dataDir, dataset.FixturesFile), len(fixtures))
	}
	return nil
}
