package extract

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/nao1215/golfcard/internal/cleaner"
	"github.com/nao1215/golfcard/internal/config"
	"github.com/nao1215/golfcard/internal/model"
)

// Result is the outcome of one extraction.
type Result struct {
	// CleanedText is the text every offset refers to.
	CleanedText string

	// Tokens are the name, score and handicap tokens in offset order.
	Tokens []model.Token

	// Records are the player records in text order.
	Records []model.PlayerRecord

	// Diagnostics are the non-fatal findings of the run.
	Diagnostics []model.Diagnostic

	// AppliedCorrections are the IDs of learned corrections that fired.
	AppliedCorrections []int64

	// NumHoles is the hole row length, 0 when no hole table was found.
	NumHoles int
}

// Extractor runs the full text-to-records engine.
// It holds no per-call state and is safe for concurrent use.
type Extractor struct {
	cfg        config.Extraction
	bias       Bias
	classifier nameClassifier
	cleaner    *cleaner.Cleaner
	logger     *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithBias replaces the configured summary-row bias.
func WithBias(b Bias) Option {
	return func(e *Extractor) {
		e.bias = b
	}
}

// WithCleaner replaces the text cleaner.
func WithCleaner(c *cleaner.Cleaner) Option {
	return func(e *Extractor) {
		e.cleaner = c
	}
}

// New creates an Extractor for cfg. cfg is expected to be valid
// (see config.Extraction.Validate).
func New(cfg config.Extraction, opts ...Option) *Extractor {
	e := &Extractor{
		cfg:        cfg,
		bias:       BiasFrom(cfg),
		classifier: newNameClassifier(cfg),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cleaner == nil {
		e.cleaner = cleaner.New(cleaner.WithLogger(e.logger))
	}
	return e
}

// NameCandidates returns the name candidate tokens of cleaned text.
func (e *Extractor) NameCandidates(text string) []model.Token {
	return e.classifier.candidates(text)
}

// Extract cleans raw, applies corrections and returns the player records.
// Empty or whitespace-only input yields an empty result.
func (e *Extractor) Extract(raw string, corrections []model.CorrectionEntry) Result {
	cleaned := e.cleaner.Clean(raw, corrections)
	res := Result{
		CleanedText:        cleaned.Text,
		Records:            []model.PlayerRecord{},
		AppliedCorrections: cleaned.Applied,
	}
	if strings.TrimSpace(cleaned.Text) == "" {
		return res
	}
	text := cleaned.Text

	candidates := e.classifier.candidates(text)
	table := e.locateTable(text)

	var pairs []model.ScorePair
	for _, p := range e.ExtractScores(text) {
		if table.covers(p.Handicap.Start) {
			continue
		}
		pairs = append(pairs, p)
	}

	assocs := e.Associate(pairs, candidates)

	known := make([]string, 0, len(assocs))
	for _, a := range assocs {
		if a.Matched() {
			known = append(known, a.Name.Text)
		}
	}

	holes, holeDiags := e.mapRows(table, candidates, known)
	records, diags := Assemble(assocs, holes)

	res.Records = records
	res.NumHoles = holes.NumHoles
	res.Diagnostics = append(holeDiags, diags...)
	res.Tokens = collectTokens(candidates, pairs)

	e.logger.Debug("extraction finished",
		"records", len(records),
		"pairs", len(pairs),
		"candidates", len(candidates),
		"diagnostics", len(res.Diagnostics),
	)
	return res
}

// collectTokens merges name, score and handicap tokens in offset order.
func collectTokens(names []model.Token, pairs []model.ScorePair) []model.Token {
	tokens := make([]model.Token, 0, len(names)+2*len(pairs))
	tokens = append(tokens, names...)
	for _, p := range pairs {
		tokens = append(tokens, p.Score, p.Handicap)
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].Start < tokens[j].Start
	})
	return tokens
}
