package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"eplpulse/internal/dataset"
	"eplpulse/internal/report"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last generated dashboard",
	Long:  "Prints the season summary, league table and per-section status from the most recent transform run.",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, ok, err := dataset.ReadDashboard(dataDir)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No dashboard generated yet. Run: eplpulse all")
		printStageFiles()
		return nil
	}

	fmt.Printf("Generated: %s\n", d.GeneratedAt)
	report.PrintSeasonSummary(os.Stdout, d)
	report.PrintLeagueTable(os.Stdout, d.LeagueTable)
	report.PrintTopScorers(os.Stdout, d.TopScorers)
	report.PrintSectionStatus(os.Stdout, d)
	return nil
}

// printStageFiles lists which stage outputs exist, to show how far a
// partial pipeline run got.
func printStageFiles() {
	files := []string{
		dataset.MatchesFile,
		dataset.PlayersFile,
		dataset.FixturesFile,
		dataset.XGMatchesFile,
		dataset.XGTeamsFile,
		dataset.XGPlayersFile,
	}
	fmt.Println("\nStage outputs:")
	for _, f := range files {
		state := "missing"
		if _, err := os.Stat(filepath.Join(dataDir, f)); err == nil {
			state = "present"
		}
		fmt.Printf("  %-32s %s\n", f, state)
	}
}
