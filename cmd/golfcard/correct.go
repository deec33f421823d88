package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/nao1215/golfcard/internal/database"
	"github.com/nao1215/golfcard/internal/model"
	"github.com/spf13/cobra"
)

// NewCorrectCmd creates the correct command and its subcommands.
func NewCorrectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correct",
		Short: "Manage learned OCR corrections",
		Long: `Correct manages the OCR corrections golfcard applies before extraction.

When OCR keeps misreading the same thing (a player name, a score, a
handicap), teach golfcard the right text once and every later parse fixes it.
Corrections used most often are applied first.

Examples:
  # OCR reads "Boiciak" but the player is "Bojciak"
  golfcard correct add Boiciak Bojciak

  # A handicap that keeps losing its decimal point
  golfcard correct add --type handicap -- -22 -2.2

  # Review what has been learned
  golfcard correct list
  golfcard correct stats

  # Forget a correction
  golfcard correct delete 3`,
	}

	cmd.PersistentFlags().String("db-dir", "",
		"Database directory (default: XDG data directory)")

	cmd.AddCommand(newCorrectAddCmd())
	cmd.AddCommand(newCorrectListCmd())
	cmd.AddCommand(newCorrectStatsCmd())
	cmd.AddCommand(newCorrectDeleteCmd())

	return cmd
}

func newCorrectAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <ocr-text> <corrected-text>",
		Short: "Teach a correction (adding it again raises its priority)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patternType, err := getPatternTypeFlag(cmd, model.PatternName)
			if err != nil {
				return err
			}

			store, err := openStore(getDBDir(cmd))
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			entry, err := store.LearnCorrection(cmd.Context(), args[0], args[1], patternType)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Learned correction #%d: %q -> %q (%s, seen %d times)\n",
				entry.ID, entry.OCRText, entry.Corrected, entry.PatternType, entry.Frequency)
			return nil
		},
	}

	cmd.Flags().StringP("type", "t", string(model.PatternName),
		"What the correction applies to: name, score or handicap")

	return cmd
}

func newCorrectListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List learned corrections, most used first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			patternType, err := getPatternTypeFlag(cmd, "")
			if err != nil {
				return err
			}

			store, err := openStore(getDBDir(cmd))
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			entries, err := store.Corrections(cmd.Context(), patternType)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No corrections learned yet.")
				return nil
			}

			fmt.Fprintf(out, "%-5s %-9s %-5s %-20s %-20s %s\n", "ID", "TYPE", "USED", "OCR TEXT", "CORRECTED", "LAST USED")
			for _, e := range entries {
				fmt.Fprintf(out, "%-5d %-9s %-5d %-20s %-20s %s\n",
					e.ID, e.PatternType, e.Frequency,
					strconv.Quote(e.OCRText), strconv.Quote(e.Corrected),
					e.LastUsedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().StringP("type", "t", "",
		"Only list corrections of this type: name, score or handicap")

	return cmd
}

func newCorrectStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how many corrections have been learned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(getDBDir(cmd))
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			stats, err := store.CorrectionStats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total corrections: %d\n", stats.Total)
			fmt.Fprintf(out, "  name:     %d\n", stats.Name)
			fmt.Fprintf(out, "  score:    %d\n", stats.Score)
			fmt.Fprintf(out, "  handicap: %d\n", stats.Handicap)
			return nil
		},
	}
}

func newCorrectDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a learned correction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid correction id %q", args[0])
			}

			store, err := openStore(getDBDir(cmd))
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			if err := store.DeleteCorrection(cmd.Context(), id); err != nil {
				if errors.Is(err, database.ErrCorrectionNotFound) {
					return fmt.Errorf("no correction with id %d", id)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted correction #%d\n", id)
			return nil
		},
	}
}

// getPatternTypeFlag reads --type, returning def when it is empty.
func getPatternTypeFlag(cmd *cobra.Command, def model.PatternType) (model.PatternType, error) {
	s, err := cmd.Flags().GetString("type")
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return model.ParsePatternType(s)
}
