package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for golfcard.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "golfcard",
		Short: "Extract player records from OCR text of golf scorecards",
		Long: `golfcard reads the text an OCR service produced from a golf scorecard
screenshot and recovers who played, their gross score, handicap and
hole-by-hole scores.

OCR mistakes it has been taught with "golfcard correct add" are fixed
before extraction. Parsed scorecards are kept in a local database so
that "golfcard standings" can rank league teams by net score.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewParseCmd())
	cmd.AddCommand(NewCorrectCmd())
	cmd.AddCommand(NewStandingsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
