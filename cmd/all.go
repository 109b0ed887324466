package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run the full pipeline: clean, fetch-fpl, fetch-xg, transform",
	Long: `Runs every stage in order. The clean stage is required and aborts the
run on failure; the two fetch stages only warn, so a full dashboard
build succeeds even when the enrichment sources are down.`,
	RunE: runAll,
}

func runAll(cmd *cobra.Command, args []string) error {
	stages := []struct {
		name string
		run  func(*cobra.Command, []string) error
	}{
		{"clean", runClean},
		{"fetch-fpl", runFetchFPL},
		{"fetch-xg", runFetchXG},
		{"transform", runTransform},
	}

	for i, stage := range stages {
		fmt.Printf("==> [%d/%d] %s\n", i+1, len(stages), stage.name)
		if err := stage.run(cmd, args); err != nil {
			return fmt.Errorf("%s: %w", stage.name, err)
		}
		fmt.Println()
	}
	return nil
}
