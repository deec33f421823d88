package report

import (
	"io"

	"github.com/nao1215/golfcard/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs one processed scorecard.
	// Returns the number of bytes written and any error encountered.
	Write(card *model.Scorecard) (int, error)

	// WriteStandings outputs a weekly team leaderboard.
	WriteStandings(title string, standings []model.TeamStanding) (int, error)

	// WriteCumulative outputs season standings across weeks.
	WriteCumulative(title string, standings []model.CumulativeStanding) (int, error)
}

// Flusher is implemented by writers that buffer output until the end,
// such as XLSXWriter.
type Flusher interface {
	Flush() error
}

// Flush flushes w if it buffers output. Other writers are left alone.
func Flush(w Writer) error {
	if f, ok := w.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the scorecard to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(card *model.Scorecard) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.Write(card) })
}

// WriteStandings outputs the standings to all configured Writers.
func (m *MultiWriter) WriteStandings(title string, standings []model.TeamStanding) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteStandings(title, standings) })
}

// WriteCumulative outputs the season standings to all configured Writers.
func (m *MultiWriter) WriteCumulative(title string, standings []model.CumulativeStanding) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteCumulative(title, standings) })
}

// Flush flushes every buffered writer.
func (m *MultiWriter) Flush() error {
	for _, w := range m.writers {
		if err := Flush(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiWriter) each(fn func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := fn(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
