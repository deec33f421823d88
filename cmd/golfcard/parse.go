package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/golfcard/internal/config"
	"github.com/nao1215/golfcard/internal/model"
	"github.com/nao1215/golfcard/internal/pipeline"
	"github.com/nao1215/golfcard/internal/report"
	"github.com/spf13/cobra"
)

// NewParseCmd creates the parse command.
func NewParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Extract player records from scorecard OCR text",
		Long: `Parse reads OCR text of golf scorecards and extracts every player's
name, gross score, handicap and hole-by-hole scores, then computes net scores.

Each file holds the OCR output of one scorecard. Use "-" to read standard input.
Learned corrections are applied before extraction, and every parsed scorecard
is saved to the local database for standings.

Rows that need a human look are marked: players whose name could not be read
appear as "(unnamed)", and diagnostics explain what went wrong.

Examples:
  # Parse one scorecard
  golfcard parse scorecard.txt

  # Parse a whole week of scorecards, four at a time
  golfcard parse --week 3 --batch 4 week3/*.txt

  # Pipe OCR output straight in
  ocr-tool card.png | golfcard parse -

  # Export records and net scores to Excel
  golfcard parse --xlsx -o week3.xlsx week3/*.txt

  # Parse without touching the database
  golfcard parse --no-save --no-corrections scorecard.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: runParseCmd,
	}

	// Scoring flags
	cmd.Flags().IntP("week", "w", 0,
		"League week the scorecards belong to (0 = unassigned)")
	cmd.Flags().Int("holes", 0,
		"Holes played for net scoring: 9 or 18 (0 = infer from the hole table)")

	// Batch flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of scorecards parsed concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .golfcard in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown and --xlsx)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json and --xlsx)")
	cmd.Flags().Bool("xlsx", false,
		"Write an Excel workbook with one sheet per scorecard (requires --output)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Database flags
	cmd.Flags().Bool("no-save", false,
		"Do not save parsed scorecards to the database")
	cmd.Flags().Bool("no-corrections", false,
		"Do not apply learned OCR corrections")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")

	return cmd
}

// runParseCmd executes the parse command.
func runParseCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)

	ctx, stop := signalContext(logger)
	defer stop()

	return runParse(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Verbose = getVerboseFlag(cmd)

	cfg.Week, err = cmd.Flags().GetInt("week")
	if err != nil {
		return nil, err
	}

	cfg.NumHoles, err = cmd.Flags().GetInt("holes")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicitly given config file must exist; otherwise defaults apply
	// when no file is found.
	cfg.File, _, err = config.Resolve(cfg.ConfigFilePath)
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.XLSXReport, err = cmd.Flags().GetBool("xlsx")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	noCorrections, err := cmd.Flags().GetBool("no-corrections")
	if err != nil {
		return nil, err
	}
	cfg.UseCorrections = !noCorrections

	cfg.DBDir = getDBDir(cmd)

	cfg.Inputs = args

	return cfg, nil
}

// unavailableStore stands in for a database that could not be opened, so
// the corrections step reports the failure as a diagnostic on every card.
type unavailableStore struct {
	err error
}

// Corrections always fails with the open error.
func (u unavailableStore) Corrections(context.Context, model.PatternType) ([]model.CorrectionEntry, error) {
	return nil, u.err
}

// runParse parses the configured inputs and writes the report.
func runParse(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	if len(cfg.Inputs) == 0 {
		return errors.New("no input provided (specify one or more OCR text files, or - for stdin)")
	}

	logger.Info("starting parse",
		"inputs", len(cfg.Inputs),
		"week", cfg.Week,
		"holes", cfg.NumHoles,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
		"useCorrections", cfg.UseCorrections,
	)

	configOpts := []pipeline.DefaultPipelineOption{
		pipeline.WithPipelineExtraction(cfg.Extraction()),
		pipeline.WithPipelineHoles(cfg.NumHoles),
	}

	// The database is optional for parsing: when it cannot be opened the
	// scorecards are still parsed, without corrections and without saving.
	if cfg.SaveToDB || cfg.UseCorrections {
		store, err := openStore(cfg.DBDir)
		if err != nil {
			logger.Warn("database unavailable", "dir", cfg.DBDir, "error", err)
			if cfg.UseCorrections {
				configOpts = append(configOpts,
					pipeline.WithPipelineCorrections(unavailableStore{err: err}))
			}
		} else {
			defer store.Close()
			logger.Info("database opened", "path", store.Path())

			if cfg.UseCorrections {
				configOpts = append(configOpts,
					pipeline.WithPipelineCorrections(store),
					pipeline.WithPipelineRecorder(store),
				)
			}
			if cfg.SaveToDB {
				configOpts = append(configOpts, pipeline.WithPipelineSaver(store))
			}
		}
	}

	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	}

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.DefaultPipeline(pipelineOpts, configOpts...)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithWeek(cfg.Week),
		pipeline.WithLoader(pipeline.FileLoader(stdin)),
		pipeline.WithBatchLogger(logger),
	)

	cards, batchErr := bp.ProcessBatch(ctx, cfg.Inputs)

	if err := outputReport(cfg, cards, stdout); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if batchErr != nil {
		return batchErr
	}

	failed := 0
	for _, card := range cards {
		if card != nil && card.Error != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scorecards failed", failed, len(cards))
	}
	return nil
}

// outputReport writes the scorecards in the requested format.
// Cards that were never processed (nil) are skipped.
func outputReport(cfg *config.Config, cards []*model.Scorecard, stdout io.Writer) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	writer := newReportWriter(cfg, output, stdout)
	for _, card := range cards {
		if card == nil {
			continue
		}
		if _, err := writer.Write(card); err != nil {
			return err
		}
	}

	return report.Flush(writer)
}

// newReportWriter selects the writer for the configured format.
// The workbook is binary, so an XLSX run also prints the text report.
func newReportWriter(cfg *config.Config, output, stdout io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	case cfg.XLSXReport:
		return report.NewMultiWriter(
			report.NewXLSXWriter(output),
			report.NewSimpleWriter(stdout, report.WithVerbose(cfg.Verbose)),
		)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}
