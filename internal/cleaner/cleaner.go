package cleaner

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/nao1215/golfcard/internal/model"
)

// DefaultMaxPasses bounds the number of cleaning passes.
// Real scorecards settle in two or three passes; the bound only matters for
// correction sets that rewrite each other in a cycle.
const DefaultMaxPasses = 8

// Noise line thresholds.
const (
	// minMeaningfulRatio is the share of alphanumeric characters above which a line is kept.
	minMeaningfulRatio = 0.3

	// minMeaningfulChars keeps a line regardless of ratio.
	minMeaningfulChars = 3

	// minRepeatLength keeps a single-character line at or above this length.
	minRepeatLength = 5
)

// inlineSpace matches whitespace runs that do not cross a line break.
var inlineSpace = regexp.MustCompile(`[^\S\n]+`)

// Result is the outcome of one cleaning run.
type Result struct {
	// Text is the cleaned text.
	Text string

	// Applied lists the IDs of learned corrections that rewrote the text,
	// in first-applied order.
	Applied []int64

	// Passes is the number of passes run before the text settled.
	Passes int
}

// Cleaner normalizes OCR text.
// A Cleaner holds no per-call state and is safe for concurrent use.
type Cleaner struct {
	patterns  []Pattern
	maxPasses int
	logger    *slog.Logger
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cleaner) {
		c.logger = logger
	}
}

// WithPatterns replaces the structural patterns.
func WithPatterns(patterns ...Pattern) Option {
	return func(c *Cleaner) {
		c.patterns = append([]Pattern(nil), patterns...)
	}
}

// WithExtraPatterns adds structural patterns to the defaults.
func WithExtraPatterns(patterns ...Pattern) Option {
	return func(c *Cleaner) {
		c.patterns = append(c.patterns, patterns...)
	}
}

// WithMaxPasses sets the pass limit. Values below 1 are ignored.
func WithMaxPasses(n int) Option {
	return func(c *Cleaner) {
		if n >= 1 {
			c.maxPasses = n
		}
	}
}

// New creates a Cleaner with the default structural patterns.
func New(opts ...Option) *Cleaner {
	c := &Cleaner{
		patterns:  DefaultPatterns(),
		maxPasses: DefaultMaxPasses,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	sortPatterns(c.patterns)
	return c
}

// Clean cleans raw text with the default patterns and the given corrections.
func Clean(raw string, corrections []model.CorrectionEntry) string {
	return New().Clean(raw, corrections).Text
}

// Clean normalizes raw and applies corrections, most frequent first.
// corrections may be nil.
func (c *Cleaner) Clean(raw string, corrections []model.CorrectionEntry) Result {
	text := normalize(raw)
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	ordered := usableCorrections(corrections)
	applied := make(map[int64]bool)
	var appliedOrder []int64

	passes := 0
	settled := false
	for !settled && passes < c.maxPasses {
		passes++
		next := c.pass(text, ordered, func(id int64) {
			if !applied[id] {
				applied[id] = true
				appliedOrder = append(appliedOrder, id)
			}
		})
		settled = next == text
		text = next
	}

	if !settled {
		c.logger.Debug("cleaning did not settle", "passes", passes)
	}
	c.logger.Debug("text cleaned",
		"passes", passes,
		"corrections_applied", len(appliedOrder),
		"text", text,
	)

	return Result{Text: text, Applied: appliedOrder, Passes: passes}
}

// pass runs one round of whitespace, pattern, correction and noise cleanup.
func (c *Cleaner) pass(text string, corrections []model.CorrectionEntry, onApplied func(int64)) string {
	text = collapseSpaces(text)

	for _, p := range c.patterns {
		text = p.Apply(text)
	}

	for _, corr := range corrections {
		if strings.Contains(text, corr.OCRText) {
			text = strings.ReplaceAll(text, corr.OCRText, corr.Corrected)
			onApplied(corr.ID)
		}
	}

	return dropNoiseLines(collapseSpaces(text))
}

// normalize folds compatibility characters and line endings.
func normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// collapseSpaces collapses whitespace runs within lines and trims each line.
func collapseSpaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(inlineSpace.ReplaceAllString(line, " "))
	}
	return strings.Join(lines, "\n")
}

// usableCorrections returns the corrections that can be applied, most frequent first.
// Entries with empty OCR text, and entries whose replacement contains their
// own OCR text, are skipped because they would rewrite the text on every pass.
func usableCorrections(corrections []model.CorrectionEntry) []model.CorrectionEntry {
	if len(corrections) == 0 {
		return nil
	}

	usable := make([]model.CorrectionEntry, 0, len(corrections))
	for _, c := range corrections {
		if c.OCRText == "" || strings.Contains(c.Corrected, c.OCRText) {
			continue
		}
		usable = append(usable, c)
	}
	model.SortCorrections(usable)
	return usable
}

// dropNoiseLines removes blank lines, lines that are mostly symbols, and
// short lines made of a single repeated character.
func dropNoiseLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if isMeaningful(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func isMeaningful(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	total := 0
	meaningful := 0
	unique := make(map[rune]struct{})
	for _, r := range trimmed {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			meaningful++
		}
		if r != ' ' {
			unique[r] = struct{}{}
		}
	}

	if float64(meaningful)/float64(total) <= minMeaningfulRatio && meaningful < minMeaningfulChars {
		return false
	}
	if len(unique) < 2 && total < minRepeatLength {
		return false
	}
	return true
}
