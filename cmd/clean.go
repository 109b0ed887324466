package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"eplpulse/internal/clean"
	"eplpulse/internal/config"
	"eplpulse/internal/dataset"
	"eplpulse/internal/fdata"
)

// cleanForce re-downloads every season CSV even when cached.
var cleanForce bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Download and clean football-data.co.uk match CSVs",
	Long: `Downloads one CSV per configured season from football-data.co.uk,
standardizes dates and team names, drops unusable rows, and writes the
combined match table. This is the pipeline's required primary source:
any failure here is fatal.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanForce, "force", false, "re-download cached season files")
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	client := fdata.NewClient()

	rawDir := filepath.Join(dataDir, "raw")
	if err := os.MkdirAll(rawDir, 0755); err != nil {
		return fmt.Errorf("create raw dir: %w", err)
	}

	var tables []clean.SeasonTable
	for _, season := range cfg.Seasons {
		url := fmt.Sprintf(cfg.FootballDataURL, season.Code)
		path := filepath.Join(rawDir, fmt.Sprintf("E0_%s.csv", season.Code))

		// Historical season files never change; the live season's file
		// grows weekly and is always re-fetched.
		force := cleanForce || season.Live
		cached, err := client.DownloadSeason(url, path, force)
		if err != nil {
			return fmt.Errorf("season %s: %w", season.Label, err)
		}
		if cached {
			fmt.Printf("[%s] using cached %s\n", season.Label, path)
		} else {
			fmt.Printf("[%s] downloaded %s\n", season.Label, url)
		}

		table, err := fdata.ReadCSV(path)
		if err != nil {
			return fmt.Errorf("season %s: %w", season.Label, err)
		}
		tables = append(tables, clean.SeasonTable{Season: season.Label, Table: table})
	}

	matches, stats, err := clean.Run(cfg, tables)
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	if err := dataset.WriteMatches(dataDir, matches); err != nil {
		return fmt.Errorf("write matches: %w", err)
	}

	fmt.Printf("\nCleaned %d/%d rows", len(matches), stats.RawRows)
	if stats.DroppedBadDates > 0 {
		fmt.Printf("  (dropped %d bad dates)", stats.DroppedBadDates)
	}
	if stats.DroppedNullGoals > 0 {
		fmt.Printf("  (dropped %d null goals)", stats.DroppedNullGoals)
	}
	fmt.Println()

	if len(stats.ZeroFilled) > 0 {
		cols := make([]string, 0, len(stats.ZeroFilled))
		for c := range stats.ZeroFilled {
			cols = append(cols, c)
		}
		sort.Strings(cols)
		for _, c := range cols {
			fmt.Printf("  zero-filled %s: %d\n", c, stats.ZeroFilled[c])
		}
	}

	fmt.Printf("Teams: %d  Referees: %d\n", len(stats.Teams), stats.Referees)
	fmt.Printf("Saved: %s\n", filepath.Join(dataDir, dataset.MatchesFile))
	return nil
}
