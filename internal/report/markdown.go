package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/golfcard/internal/model"
)

// MarkdownWriter outputs reports in Markdown format for sharing with the league.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the scorecard in Markdown format.
func (w *MarkdownWriter) Write(card *model.Scorecard) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, card)
	w.writeAlert(md, card)
	w.writePlayers(md, card)
	w.writeNetScores(md, card)
	w.writeDiagnostics(md, card)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteStandings outputs a weekly leaderboard in Markdown format.
func (w *MarkdownWriter) WriteStandings(title string, standings []model.TeamStanding) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(title)
	md.PlainText("")

	if len(standings) == 0 {
		md.Note("No teams are configured. Add a teams section to the config file.")
		md.PlainText("")
	} else {
		rows := make([][]string, len(standings))
		for i, s := range standings {
			rows[i] = []string{
				strconv.Itoa(i + 1),
				s.TeamName,
				formatTeamScore(s.Score),
				standingStatus(s),
				topScoreNames(s),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Rank", "Team", "Score", "Status", "Counting Scores"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// WriteCumulative outputs season standings in Markdown format.
func (w *MarkdownWriter) WriteCumulative(title string, standings []model.CumulativeStanding) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(title)
	md.PlainText("")

	if len(standings) == 0 {
		md.Note("No teams are configured. Add a teams section to the config file.")
		md.PlainText("")
	} else {
		rows := make([][]string, len(standings))
		for i, s := range standings {
			rows[i] = []string{
				strconv.Itoa(i + 1),
				s.TeamName,
				formatNet(s.TotalScore),
				strconv.Itoa(s.WeeksPlayed),
				formatTeamScore(s.AverageScore),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Rank", "Team", "Total", "Weeks", "Average"},
			Rows:   rows,
		})
		md.PlainText("")

		for _, s := range standings {
			if len(s.WeeklyScores) == 0 {
				continue
			}
			weeks := make([]string, len(s.WeeklyScores))
			for i, ws := range s.WeeklyScores {
				weeks[i] = fmt.Sprintf("Week %d: %s", ws.Week, formatNet(ws.Score))
				if !ws.Complete {
					weeks[i] += " (partial)"
				}
			}
			md.PlainText("### " + s.TeamName)
			md.PlainText("")
			md.BulletList(weeks...)
			md.PlainText("")
		}
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeHeader writes the scorecard metadata table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, card *model.Scorecard) {
	md.H1("Scorecard: " + card.Source)
	md.PlainText("")

	week := missing
	if card.Week > 0 {
		week = strconv.Itoa(card.Week)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + card.Source + "`"},
			{"Week", week},
			{"Holes", strconv.Itoa(card.NumHoles)},
			{"Processed", card.ProcessedAt.Format("2006-01-02 15:04:05 MST")},
			{"Status", w.getStatusText(card)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on scorecard state.
func (w *MarkdownWriter) getStatusText(card *model.Scorecard) string {
	if card.ErrorMessage != "" {
		return "❌ Error - " + card.ErrorMessage
	}
	if n := card.FlaggedCount(); n > 0 {
		return fmt.Sprintf("⚠️ %d record(s) need review", n)
	}
	return "✅ Complete"
}

// writeAlert writes an alert matching the most severe diagnostic.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, card *model.Scorecard) {
	mismatches := len(card.DiagnosticsOfKind(model.DiagScoreMismatch))
	flagged := card.FlaggedCount()
	storeDown := len(card.DiagnosticsOfKind(model.DiagCorrectionStoreUnavailable)) > 0

	switch {
	case card.ErrorMessage != "":
		md.Cautionf("Processing failed: %s", card.ErrorMessage)
	case mismatches > 0:
		md.Cautionf("%d gross score(s) disagree with the hole-by-hole total. Check the scorecard image.", mismatches)
	case flagged > 0:
		md.Warningf("%d record(s) are incomplete and need manual correction.", flagged)
	case storeDown:
		md.Importantf("Learned corrections were not applied to %s. Names may need manual fixes.", card.Source)
	case len(card.Records) == 0:
		md.Note("No players were found in the OCR text.")
	default:
		md.Tip("All players were extracted cleanly.")
	}
	md.PlainText("")
}

// writePlayers writes the extracted records table.
func (w *MarkdownWriter) writePlayers(md *markdown.Markdown, card *model.Scorecard) {
	md.H2("Players")
	md.PlainText("")

	if len(card.Records) == 0 {
		md.PlainText("No players found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(card.Records))
	for i, r := range card.Records {
		name := r.Name
		if flag := recordFlag(r); flag != "" {
			name = "⚠️ " + name + " (" + flag + ")"
		}
		rows[i] = []string{
			name,
			formatInt(r.GrossScore),
			formatToPar(r.ToPar),
			formatHandicap(r.Handicap),
			formatHoles(r.HoleScores),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Name", "Gross", "To Par", "Handicap", "Holes"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeNetScores writes the net leaderboard.
func (w *MarkdownWriter) writeNetScores(md *markdown.Markdown, card *model.Scorecard) {
	if len(card.Results) == 0 {
		return
	}

	md.H2("Net Scores")
	md.PlainText("")

	rows := make([][]string, len(card.Results))
	for i, r := range card.Results {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			r.Name,
			strconv.Itoa(r.GrossScore),
			formatNet(r.StrokesGiven),
			"**" + formatNet(r.NetScore) + "**",
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Name", "Gross", "Strokes", "Net"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDiagnostics writes diagnostics grouped by severity with a chart.
func (w *MarkdownWriter) writeDiagnostics(md *markdown.Markdown, card *model.Scorecard) {
	if len(card.Diagnostics) == 0 {
		return
	}

	md.H2("Diagnostics")
	md.PlainText("")

	counts := make(map[model.Severity]int)
	for _, d := range card.Diagnostics {
		counts[d.Kind.Severity()]++
	}

	if len(counts) > 1 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Diagnostics by Severity"),
			piechart.WithShowData(true),
		)
		for _, sev := range severitiesDesc {
			if counts[sev] > 0 {
				chart.LabelAndIntValue(sev.String(), uint64(counts[sev])) //nolint:gosec // counts are never negative
			}
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	for _, sev := range severitiesDesc {
		var items []string
		for _, d := range card.Diagnostics {
			if d.Kind.Severity() != sev {
				continue
			}
			item := fmt.Sprintf("`%s` %s", d.Kind, d.Message)
			if d.Name != "" {
				item += " (" + d.Name + ")"
			}
			items = append(items, item)
		}
		if len(items) == 0 {
			continue
		}
		md.PlainText("### " + sev.String())
		md.PlainText("")
		md.BulletList(items...)
		md.PlainText("")
	}

	if card.CleanedText != "" {
		md.Details("Cleaned OCR text", "\n```\n"+card.CleanedText+"\n```\n")
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by golfcard*")
}
