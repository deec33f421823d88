package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/golfcard/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the scorecard
// filled in by previous steps.
type Step interface {
	// Do executes the pipeline step.
	// Returns an error if the step fails critically; non-critical problems
	// should be recorded as diagnostics and return nil.
	Do(ctx context.Context, card *model.Scorecard) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails. Failed steps are logged and their errors
// are recorded in the scorecard, but subsequent steps still execute.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Logger returns the logger the pipeline was built with.
func (p *Pipeline) Logger() *slog.Logger {
	return p.logger
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// Cancellation is checked before each step, not during one.
//
// Returns the first error encountered if continueOnError is false,
// or nil if all steps complete. The scorecard keeps the first step error,
// so a later step failing on a half-built card does not hide the cause.
func (p *Pipeline) Execute(ctx context.Context, card *model.Scorecard) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			card.Error = ctx.Err()
			card.ErrorMessage = ctx.Err().Error()
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"source", card.Source,
		)

		start := time.Now()
		if err := step.Do(ctx, card); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"source", card.Source,
				"error", err,
			)

			if card.Error == nil {
				card.Error = err
				card.ErrorMessage = err.Error()
			}

			if !p.continueOnError {
				return err
			}
		} else {
			p.logger.Debug("step completed",
				"step", step.Name(),
				"source", card.Source,
				"records", len(card.Records),
				"diagnostics", len(card.Diagnostics),
				"elapsed", time.Since(start),
			)
		}

		card.PerformedSteps = append(card.PerformedSteps, step.Name())
	}

	p.logger.Debug("scorecard processed",
		"source", card.Source,
		"holes", card.NumHoles,
		"records", len(card.Records),
		"results", len(card.Results),
		"diagnostics", len(card.Diagnostics),
	)
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
