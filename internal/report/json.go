package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/golfcard/internal/model"
)

// JSONWriter outputs reports in JSON format for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the scorecard in JSON format.
func (w *JSONWriter) Write(card *model.Scorecard) (int, error) {
	return w.writeJSON(card)
}

// StandingsReport is the JSON shape of a weekly leaderboard.
type StandingsReport struct {
	Title     string               `json:"title"`
	Standings []model.TeamStanding `json:"standings"`
}

// CumulativeReport is the JSON shape of season standings.
type CumulativeReport struct {
	Title     string                     `json:"title"`
	Standings []model.CumulativeStanding `json:"standings"`
}

// WriteStandings outputs a weekly leaderboard in JSON format.
func (w *JSONWriter) WriteStandings(title string, standings []model.TeamStanding) (int, error) {
	if standings == nil {
		standings = []model.TeamStanding{}
	}
	return w.writeJSON(StandingsReport{Title: title, Standings: standings})
}

// WriteCumulative outputs season standings in JSON format.
func (w *JSONWriter) WriteCumulative(title string, standings []model.CumulativeStanding) (int, error) {
	if standings == nil {
		standings = []model.CumulativeStanding{}
	}
	return w.writeJSON(CumulativeReport{Title: title, Standings: standings})
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Trailing newline keeps one document per line in compact mode.
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport wraps a scorecard with output metadata.
type JSONReport struct {
	// Version is the golfcard version that generated this report.
	Version string `json:"version"`

	// Scorecard is the processed scorecard.
	Scorecard *model.Scorecard `json:"scorecard"`

	// Flagged is the number of records that need manual attention.
	Flagged int `json:"flagged"`
}

// NewJSONReport creates a JSONReport wrapper with version information.
func NewJSONReport(card *model.Scorecard, version string) *JSONReport {
	return &JSONReport{
		Version:   version,
		Scorecard: card,
		Flagged:   card.FlaggedCount(),
	}
}

// FullJSONWriter outputs scorecards with a metadata wrapper.
type FullJSONWriter struct {
	*JSONWriter

	// version is the golfcard version string.
	version string
}

// NewFullJSONWriter creates a writer for scorecards with metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the scorecard wrapped with metadata.
func (w *FullJSONWriter) Write(card *model.Scorecard) (int, error) {
	return w.writeJSON(NewJSONReport(card, w.version))
}
