package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dataDir string

var rootCmd = &cobra.Command{
	Use:   "eplpulse",
	Short: "EPL data pipeline",
	Long:  "Download, clean and aggregate Premier League match data into a dashboard dataset.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "data", "path to the data directory")

	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(fetchFPLCmd)
	rootCmd.AddCommand(fetchXGCmd)
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(serveCmd)
}
