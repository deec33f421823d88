package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/golfcard/internal/model"
)

const ruleWidth = 70

// SimpleWriter outputs human-readable text reports for terminal display.
// Rows that need manual attention are marked with "!" in the first column.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no content are shown.
	showEmpty bool

	// verbose adds the cleaned OCR text and step list to the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the scorecard in human-readable format.
func (w *SimpleWriter) Write(card *model.Scorecard) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, "GOLFCARD SCORECARD")
	w.writeHeader(&sb, card)
	w.writePlayers(&sb, card)
	w.writeNetScores(&sb, card)
	w.writeDiagnostics(&sb, card)
	if w.verbose {
		w.writeCleanedText(&sb, card)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteStandings outputs a weekly leaderboard.
func (w *SimpleWriter) WriteStandings(title string, standings []model.TeamStanding) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, strings.ToUpper(title))
	if len(standings) == 0 {
		sb.WriteString("  No teams configured\n\n")
	}
	for i, s := range standings {
		sb.WriteString(fmt.Sprintf("  %2d. %-24s %8s  (%s)\n", i+1, s.TeamName, formatTeamScore(s.Score), standingStatus(s)))
		for _, r := range s.TopScores {
			sb.WriteString(fmt.Sprintf("        %-22s %8s\n", r.Name, formatNet(r.NetScore)))
		}
	}
	sb.WriteString("\n")
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteCumulative outputs season standings.
func (w *SimpleWriter) WriteCumulative(title string, standings []model.CumulativeStanding) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, strings.ToUpper(title))
	if len(standings) == 0 {
		sb.WriteString("  No teams configured\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("  %-28s %10s %6s %8s\n", "TEAM", "TOTAL", "WEEKS", "AVERAGE"))
	}
	for i, s := range standings {
		sb.WriteString(fmt.Sprintf("  %2d. %-24s %10s %6d %8s\n",
			i+1, s.TeamName, formatNet(s.TotalScore), s.WeeksPlayed, formatTeamScore(s.AverageScore)))
	}
	sb.WriteString("\n")
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeBanner(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	pad := (ruleWidth - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

// writeHeader writes the scorecard metadata.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, card *model.Scorecard) {
	sb.WriteString(fmt.Sprintf("Source:     %s\n", card.Source))
	if card.Week > 0 {
		sb.WriteString(fmt.Sprintf("Week:       %d\n", card.Week))
	}
	sb.WriteString(fmt.Sprintf("Holes:      %d\n", card.NumHoles))
	sb.WriteString(fmt.Sprintf("Processed:  %s\n", card.ProcessedAt.Format("2006-01-02 15:04:05 MST")))

	switch {
	case card.ErrorMessage != "":
		sb.WriteString(fmt.Sprintf("Status:     ERROR - %s\n", card.ErrorMessage))
	case card.FlaggedCount() > 0:
		sb.WriteString(fmt.Sprintf("Status:     %d record(s) need review\n", card.FlaggedCount()))
	default:
		sb.WriteString("Status:     Complete\n")
	}
	sb.WriteString("\n")
}

// writePlayers writes the extracted records in scorecard order.
func (w *SimpleWriter) writePlayers(sb *strings.Builder, card *model.Scorecard) {
	if len(card.Records) == 0 && !w.showEmpty {
		return
	}

	w.writeSection(sb, "PLAYERS")

	if len(card.Records) == 0 {
		sb.WriteString("  No players found\n\n")
		return
	}

	sb.WriteString(fmt.Sprintf("  %-20s %5s %6s %6s  %s\n", "NAME", "GROSS", "TO PAR", "HCP", "HOLES"))
	for _, r := range card.Records {
		mark := " "
		if recordFlag(r) != "" {
			mark = "!"
		}
		sb.WriteString(fmt.Sprintf("%s %-20s %5s %6s %6s  %s\n",
			mark,
			truncateString(r.Name, 20),
			formatInt(r.GrossScore),
			formatToPar(r.ToPar),
			formatHandicap(r.Handicap),
			formatHoles(r.HoleScores),
		))
	}
	sb.WriteString("\n")
}

// writeNetScores writes the net leaderboard for the scorecard.
func (w *SimpleWriter) writeNetScores(sb *strings.Builder, card *model.Scorecard) {
	if len(card.Results) == 0 && !w.showEmpty {
		return
	}

	w.writeSection(sb, "NET SCORES")

	if len(card.Results) == 0 {
		sb.WriteString("  No scorable players\n\n")
		return
	}

	for i, r := range card.Results {
		sb.WriteString(fmt.Sprintf("  %2d. %-20s %3d - %6s = %s\n",
			i+1, truncateString(r.Name, 20), r.GrossScore, formatNet(r.StrokesGiven), formatNet(r.NetScore)))
	}
	sb.WriteString("\n")
}

// writeDiagnostics writes diagnostics, most severe first.
func (w *SimpleWriter) writeDiagnostics(sb *strings.Builder, card *model.Scorecard) {
	if len(card.Diagnostics) == 0 && !w.showEmpty {
		return
	}

	w.writeSection(sb, "DIAGNOSTICS")

	if len(card.Diagnostics) == 0 {
		sb.WriteString("  No diagnostics\n\n")
		return
	}

	for _, sev := range severitiesDesc {
		for _, d := range card.Diagnostics {
			if d.Kind.Severity() == sev {
				sb.WriteString(fmt.Sprintf("  %s\n", d))
			}
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeCleanedText(sb *strings.Builder, card *model.Scorecard) {
	w.writeSection(sb, "CLEANED TEXT")
	for _, line := range strings.Split(card.CleanedText, "\n") {
		sb.WriteString("  | ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if len(card.PerformedSteps) > 0 {
		sb.WriteString(fmt.Sprintf("\n  Steps: %s\n", strings.Join(card.PerformedSteps, ", ")))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by golfcard\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}

// severitiesDesc orders diagnostics for display.
var severitiesDesc = []model.Severity{
	model.SeverityHigh,
	model.SeverityMedium,
	model.SeverityLow,
	model.SeverityInfo,
}
