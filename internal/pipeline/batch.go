package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/golfcard/internal/config"
	"github.com/nao1215/golfcard/internal/model"
)

// StdinSource is the input name that reads OCR text from standard input.
const StdinSource = "-"

// Loader reads the OCR text of one input.
type Loader func(source string) (string, error)

// BatchProcessor parses multiple OCR inputs concurrently.
// Each input gets its own pipeline and scorecard.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each input.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of inputs parsed at once.
	concurrency int

	// week is stamped on every scorecard.
	week int

	// load reads an input's text.
	load Loader

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed scorecards in input order.
	results []*model.Scorecard
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent parses.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithWeek sets the league week stamped on every scorecard.
func WithWeek(week int) BatchOption {
	return func(b *BatchProcessor) {
		b.week = week
	}
}

// WithLoader replaces how input text is read.
func WithLoader(load Loader) BatchOption {
	return func(b *BatchProcessor) {
		b.load = load
	}
}

// FileLoader returns a Loader that reads files, and stdin for StdinSource.
func FileLoader(stdin io.Reader) Loader {
	return func(source string) (string, error) {
		if source == StdinSource {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return "", fmt.Errorf("read stdin: %w", err)
			}
			return string(data), nil
		}
		data, err := os.ReadFile(source) //nolint:gosec // path comes from the command line
		if err != nil {
			return "", fmt.Errorf("read %s: %w", source, err)
		}
		return string(data), nil
	}
}

// NewBatchProcessor creates a new BatchProcessor.
// The pipelineFactory function is called once per input.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     config.DefaultBatchSize,
		load:            FileLoader(os.Stdin),
		results:         make([]*model.Scorecard, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch parses the inputs concurrently, at most concurrency at a
// time. The returned scorecards are in input order. An input that cannot
// be read or fails a step still yields a scorecard with Error set. Inputs
// not started before cancellation are left nil.
//
// The error return is non-nil only when the batch was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, sources []string) ([]*model.Scorecard, error) {
	bp.logger.Debug("starting batch processing",
		"total_inputs", len(sources),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	bp.results = make([]*model.Scorecard, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, source := range sources {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Debug("parsing scorecard",
				"source", source,
				"index", i+1,
				"total", len(sources),
			)

			card := bp.process(ctx, source)

			bp.mu.Lock()
			bp.results[i] = card
			bp.mu.Unlock()

			return nil
		})
	}

	err := g.Wait()

	bp.logger.Debug("batch processing complete",
		"total_inputs", len(sources),
		"elapsed", time.Since(startTime),
	)

	return bp.results, err
}

// process reads and parses one input.
func (bp *BatchProcessor) process(ctx context.Context, source string) *model.Scorecard {
	text, err := bp.load(source)
	card := model.NewScorecard(sourceName(source), text)
	card.Week = bp.week
	if err != nil {
		bp.logger.Warn("failed to read input", "source", source, "error", err)
		card.Error = err
		card.ErrorMessage = err.Error()
		return card
	}

	if err := bp.pipelineFactory().Execute(ctx, card); err != nil {
		bp.logger.Warn("parse failed",
			"source", source,
			"error", err,
		)
	}
	return card
}

func sourceName(source string) string {
	if source == StdinSource {
		return "stdin"
	}
	return source
}
