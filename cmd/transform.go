package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"eplpulse/internal/aggregate"
	"eplpulse/internal/config"
	"eplpulse/internal/dataset"
	"eplpulse/internal/report"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Aggregate cleaned tables into the dashboard document",
	Long: `Reads the cleaned match table (required) plus the optional FPL and
Understat tables, computes every dashboard section, and writes the
single JSON document the frontend consumes. Sections whose source table
is missing are written as null.`,
	RunE: runTransform,
}

func runTransform(cmd *cobra.Command, args []string) error {
	cfg := config.Default()

	matches, err := dataset.ReadMatches(dataDir)
	if err != nil {
		return fmt.Errorf("load matches (run clean first): %w", err)
	}
	fmt.Printf("Loaded match data: %d rows\n", len(matches))

	in := aggregate.Input{Matches: matches}

	players, hasFPL, err := dataset.ReadPlayers(dataDir)
	if err != nil {
		return fmt.Errorf("load players: %w", err)
	}
	if hasFPL {
		in.Players, in.HasFPL = players, true
		fmt.Printf("Loaded FPL player data: %d rows\n", len(players))
	} else {
		fmt.Println("FPL player data not available, skipping player enrichment")
	}

	// Both xG tables must be present for the xG sections; a partial
	// scrape is treated the same as none.
	teamXG, hasTeams, err := dataset.ReadTeamXG(dataDir)
	if err != nil {
		return fmt.Errorf("load xg teams: %w", err)
	}
	playerXG, hasPlayers, err := dataset.ReadPlayerXG(dataDir)
	if err != nil {
		return fmt.Errorf("load xg players: %w", err)
	}
	if hasTeams && hasPlayers {
		in.TeamXG, in.PlayerXG, in.HasXG = teamXG, playerXG, true
		fmt.Printf("Loaded xG data: %d teams, %d players\n", len(teamXG), len(playerXG))
	} else {
		fmt.Println("xG data not available, skipping xG enrichment")
	}

	d := aggregate.Build(cfg, in, time.Now())

	if err := dataset.WriteDashboard(dataDir, d); err != nil {
		return err
	}
	fmt.Printf("\nSaved: %s\n", filepath.Join(dataDir, dataset.DashboardFile))

	report.PrintSeasonSummary(os.Stdout, d)
	report.PrintLeagueTable(os.Stdout, d.LeagueTable)
	report.PrintSectionStatus(os.Stdout, d)
	return nil
}
