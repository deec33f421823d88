package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/golfcard/internal/calc"
	"github.com/nao1215/golfcard/internal/config"
	"github.com/nao1215/golfcard/internal/extract"
	"github.com/nao1215/golfcard/internal/model"
)

// CorrectionSource provides learned corrections. The database Store
// implements it.
type CorrectionSource interface {
	Corrections(ctx context.Context, patternType model.PatternType) ([]model.CorrectionEntry, error)
}

// CorrectionRecorder marks corrections as used.
type CorrectionRecorder interface {
	TouchCorrections(ctx context.Context, ids []int64) error
}

// ScorecardSaver persists a processed scorecard.
type ScorecardSaver interface {
	SaveScorecard(ctx context.Context, card *model.Scorecard) error
}

// CorrectionsStep loads learned corrections into the scorecard.
// A failing source never stops extraction: the step records a
// correction_store_unavailable diagnostic, logs a warning and leaves the
// correction list empty.
type CorrectionsStep struct {
	source CorrectionSource
	logger *slog.Logger
}

// NewCorrectionsStep creates a corrections step reading from source.
func NewCorrectionsStep(source CorrectionSource, logger *slog.Logger) *CorrectionsStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &CorrectionsStep{source: source, logger: logger}
}

// Name returns the step name.
func (s *CorrectionsStep) Name() string {
	return "corrections"
}

// Do executes the corrections step.
func (s *CorrectionsStep) Do(ctx context.Context, card *model.Scorecard) error {
	if s.source == nil {
		return nil
	}

	entries, err := s.source.Corrections(ctx, "")
	if err != nil {
		s.logger.Warn("correction store unavailable, continuing without corrections",
			"source", card.Source,
			"error", err,
		)
		card.Corrections = nil
		card.AddDiagnostic(model.NewDiagnostic(model.DiagCorrectionStoreUnavailable, "", -1,
			"learned corrections could not be loaded: %v", err))
		return nil
	}

	card.Corrections = entries
	s.logger.Debug("loaded corrections", "source", card.Source, "count", len(entries))
	return nil
}

// ExtractStep cleans the raw OCR text and extracts player records.
type ExtractStep struct {
	extractor *extract.Extractor
}

// NewExtractStep creates an extraction step.
func NewExtractStep(extractor *extract.Extractor) *ExtractStep {
	return &ExtractStep{extractor: extractor}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do executes the extraction step.
func (s *ExtractStep) Do(_ context.Context, card *model.Scorecard) error {
	res := s.extractor.Extract(card.RawText, card.Corrections)

	card.CleanedText = res.CleanedText
	card.Records = res.Records
	card.AppliedCorrections = res.AppliedCorrections
	card.Diagnostics = append(card.Diagnostics, res.Diagnostics...)
	if res.NumHoles > 0 {
		card.NumHoles = res.NumHoles
	}
	return nil
}

// ScoreStep computes net scores and checks gross scores against hole rows.
type ScoreStep struct {
	// numHoles forces 9 or 18 holes; anything else infers from the records.
	numHoles int
	logger   *slog.Logger
}

// NewScoreStep creates a scoring step.
func NewScoreStep(numHoles int, logger *slog.Logger) *ScoreStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreStep{numHoles: numHoles, logger: logger}
}

// Name returns the step name.
func (s *ScoreStep) Name() string {
	return "score"
}

// Do executes the scoring step. A scorecard without scorable players is
// not an error; it simply has no results.
func (s *ScoreStep) Do(_ context.Context, card *model.Scorecard) error {
	card.NumHoles = calc.InferHoles(s.numHoles, card.Records)

	results, err := calc.NetScores(card.Records, card.NumHoles)
	switch {
	case errors.Is(err, calc.ErrNoPlayers), errors.Is(err, calc.ErrNoScorablePlayers):
		s.logger.Debug("nothing to score", "source", card.Source, "reason", err)
		card.Results = nil
	case err != nil:
		return fmt.Errorf("net scores: %w", err)
	default:
		card.Results = results
	}

	card.Diagnostics = append(card.Diagnostics, calc.ReconcileAll(card.Records)...)
	return nil
}

// TouchCorrectionsStep marks the corrections that rewrote text as used.
// Failures are logged and otherwise ignored.
type TouchCorrectionsStep struct {
	recorder CorrectionRecorder
	logger   *slog.Logger
}

// NewTouchCorrectionsStep creates a step that reports applied corrections to recorder.
func NewTouchCorrectionsStep(recorder CorrectionRecorder, logger *slog.Logger) *TouchCorrectionsStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &TouchCorrectionsStep{recorder: recorder, logger: logger}
}

// Name returns the step name.
func (s *TouchCorrectionsStep) Name() string {
	return "touch_corrections"
}

// Do executes the step.
func (s *TouchCorrectionsStep) Do(ctx context.Context, card *model.Scorecard) error {
	if s.recorder == nil || len(card.AppliedCorrections) == 0 {
		return nil
	}
	if err := s.recorder.TouchCorrections(ctx, card.AppliedCorrections); err != nil {
		s.logger.Warn("failed to record correction usage",
			"source", card.Source,
			"error", err,
		)
	}
	return nil
}

// SaveStep stores the scorecard in the history database.
type SaveStep struct {
	saver ScorecardSaver
}

// NewSaveStep creates a step that persists scorecards with saver.
func NewSaveStep(saver ScorecardSaver) *SaveStep {
	return &SaveStep{saver: saver}
}

// Name returns the step name.
func (s *SaveStep) Name() string {
	return "save"
}

// Do executes the save step.
func (s *SaveStep) Do(ctx context.Context, card *model.Scorecard) error {
	if err := s.saver.SaveScorecard(ctx, card); err != nil {
		return fmt.Errorf("save scorecard: %w", err)
	}
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// Extraction holds the extraction settings.
	Extraction config.Extraction

	// NumHoles forces 9 or 18 holes for net scoring; 0 infers.
	NumHoles int

	// Corrections supplies learned corrections. Nil skips loading.
	Corrections CorrectionSource

	// Recorder is told which corrections fired. Nil skips it.
	Recorder CorrectionRecorder

	// Saver stores finished scorecards. Nil skips saving.
	Saver ScorecardSaver
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineExtraction sets the extraction settings.
func WithPipelineExtraction(cfg config.Extraction) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Extraction = cfg
	}
}

// WithPipelineHoles forces the hole count used for net scoring.
func WithPipelineHoles(n int) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.NumHoles = n
	}
}

// WithPipelineCorrections sets the source of learned corrections.
func WithPipelineCorrections(src CorrectionSource) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Corrections = src
	}
}

// WithPipelineRecorder sets where applied corrections are reported.
func WithPipelineRecorder(r CorrectionRecorder) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Recorder = r
	}
}

// WithPipelineSaver sets where finished scorecards are stored.
func WithPipelineSaver(s ScorecardSaver) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Saver = s
	}
}

// DefaultPipeline creates a pipeline with the standard steps:
// corrections, extract, score, then touch_corrections and save when
// configured.
//
// The first parameter accepts pipeline options (WithLogger, etc).
// The variadic parameter accepts step configuration options.
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		Extraction: config.DefaultExtraction(),
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	logger := p.Logger()
	extractor := extract.New(cfg.Extraction, extract.WithLogger(logger))

	p.AddSteps(
		NewCorrectionsStep(cfg.Corrections, logger),
		NewExtractStep(extractor),
		NewScoreStep(cfg.NumHoles, logger),
	)
	if cfg.Recorder != nil {
		p.AddStep(NewTouchCorrectionsStep(cfg.Recorder, logger))
	}
	if cfg.Saver != nil {
		p.AddStep(NewSaveStep(cfg.Saver))
	}

	return p
}
