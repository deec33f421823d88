package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/golfcard/internal/calc"
	"github.com/nao1215/golfcard/internal/config"
	"github.com/nao1215/golfcard/internal/database"
	"github.com/nao1215/golfcard/internal/model"
	"github.com/nao1215/golfcard/internal/report"
	"github.com/spf13/cobra"
)

// errNoTeams is returned when the configuration file defines no teams.
var errNoTeams = errors.New("no teams configured (add a teams: section to the configuration file, see golfcard init)")

// defaultLeagueName titles standings when the configuration names no league.
const defaultLeagueName = "League"

// NewStandingsCmd creates the standings command.
func NewStandingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Rank league teams by net score",
		Long: `Standings ranks the teams of the configuration file using the scorecards
saved by "golfcard parse".

A team's weekly score is the sum of its two best net scores. With --week the
standings of that week are shown; without it the weekly scores of every
saved week are added up.

Examples:
  # Season standings
  golfcard standings

  # Standings of week 3 as Markdown
  golfcard standings --week 3 --markdown`,
		Args: cobra.NoArgs,
		RunE: runStandingsCmd,
	}

	cmd.Flags().IntP("week", "w", 0,
		"Show the standings of a single week (0 = cumulative)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .golfcard in current or home directory)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")

	return cmd
}

// runStandingsCmd executes the standings command.
func runStandingsCmd(cmd *cobra.Command, _ []string) error {
	week, err := cmd.Flags().GetInt("week")
	if err != nil {
		return err
	}
	if week < 0 {
		return config.ErrInvalidWeek
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOut, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOut && markdownOut {
		return fmt.Errorf("configuration error: %w", config.ErrConflictingReportFormats)
	}

	file, _, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	if len(file.Teams) == 0 {
		return errNoTeams
	}

	setupLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	store, err := openStore(getDBDir(cmd))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	var writer report.Writer
	switch {
	case jsonOut:
		writer = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	case markdownOut:
		writer = report.NewMarkdownWriter(cmd.OutOrStdout())
	default:
		writer = report.NewSimpleWriter(cmd.OutOrStdout())
	}

	return writeStandings(cmd.Context(), store, file, week, writer)
}

// writeStandings computes weekly (week > 0) or cumulative standings from
// the saved scorecards and writes them.
func writeStandings(ctx context.Context, store *database.Store, file *config.File, week int, writer report.Writer) error {
	league := file.League
	if league == "" {
		league = defaultLeagueName
	}

	if week > 0 {
		results, err := weekResults(ctx, store, week)
		if err != nil {
			return err
		}
		standings := calc.WeeklyStandings(file.Teams, results)
		_, err = writer.WriteStandings(fmt.Sprintf("%s: Week %d", league, week), standings)
		return err
	}

	weeks, err := store.Weeks(ctx)
	if err != nil {
		return err
	}

	byWeek := make(map[int][]model.NetResult, len(weeks))
	for _, w := range weeks {
		results, err := weekResults(ctx, store, w)
		if err != nil {
			return err
		}
		byWeek[w] = results
	}

	standings := calc.CumulativeStandings(file.Teams, byWeek)
	_, err = writer.WriteCumulative(league+": Season", standings)
	return err
}

// weekResults gathers the net results of every scorecard saved for week.
func weekResults(ctx context.Context, store *database.Store, week int) ([]model.NetResult, error) {
	cards, err := store.ListScorecards(ctx, week)
	if err != nil {
		return nil, err
	}

	var results []model.NetResult
	for _, card := range cards {
		results = append(results, card.Results...)
	}
	return results, nil
}
