package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nao1215/golfcard/internal/model"
)

// maxSheetName is Excel's limit on sheet name length.
const maxSheetName = 31

// XLSXWriter collects scorecards and standings into one workbook.
// Each Write adds a sheet; nothing reaches the output until Flush.
type XLSXWriter struct {
	baseWriter

	file   *excelize.File
	sheets map[string]int
}

// NewXLSXWriter creates an XLSXWriter that writes the workbook to output on Flush.
func NewXLSXWriter(output io.Writer) *XLSXWriter {
	return &XLSXWriter{
		baseWriter: newBaseWriter(output),
		file:       excelize.NewFile(),
		sheets:     make(map[string]int),
	}
}

// Write adds a sheet with the scorecard's players, net scores and
// diagnostics. It reports 0 bytes since output is deferred to Flush.
func (w *XLSXWriter) Write(card *model.Scorecard) (int, error) {
	name := filepath.Base(card.Source)
	if card.Week > 0 {
		name = fmt.Sprintf("W%d %s", card.Week, name)
	}
	sheet, err := w.newSheet(name)
	if err != nil {
		return 0, err
	}

	header := []any{"Name", "Gross", "To Par", "Handicap", "Net", "Flag"}
	for i := 1; i <= card.NumHoles; i++ {
		header = append(header, "H"+strconv.Itoa(i))
	}
	if err := w.setRow(sheet, 1, header); err != nil {
		return 0, err
	}

	nets := make(map[string]float64, len(card.Results))
	for _, r := range card.Results {
		nets[r.Name] = r.NetScore
	}

	for i, r := range card.Records {
		row := []any{r.Name, intCell(r.GrossScore), intCell(r.ToPar), floatCell(r.Handicap)}
		if net, ok := nets[r.Name]; ok {
			row = append(row, net)
		} else {
			row = append(row, "")
		}
		row = append(row, recordFlag(r))
		for _, h := range r.HoleScores {
			row = append(row, intCell(h))
		}
		if err := w.setRow(sheet, i+2, row); err != nil {
			return 0, err
		}
	}

	next := len(card.Records) + 3
	for i, d := range card.Diagnostics {
		if err := w.setRow(sheet, next+i, []any{d.Kind.Severity().String(), string(d.Kind), d.Message, d.Name}); err != nil {
			return 0, err
		}
	}

	_ = w.file.SetColWidth(sheet, "A", "A", 22)
	_ = w.file.SetColWidth(sheet, "F", "F", 14)
	return 0, nil
}

// WriteStandings adds a sheet with a weekly leaderboard.
func (w *XLSXWriter) WriteStandings(title string, standings []model.TeamStanding) (int, error) {
	sheet, err := w.newSheet(title)
	if err != nil {
		return 0, err
	}
	if err := w.setRow(sheet, 1, []any{"Rank", "Team", "Score", "Status", "Counting Scores"}); err != nil {
		return 0, err
	}
	for i, s := range standings {
		row := []any{i + 1, s.TeamName, floatCell(s.Score), standingStatus(s), topScoreNames(s)}
		if err := w.setRow(sheet, i+2, row); err != nil {
			return 0, err
		}
	}
	_ = w.file.SetColWidth(sheet, "B", "B", 24)
	_ = w.file.SetColWidth(sheet, "E", "E", 40)
	return 0, nil
}

// WriteCumulative adds a sheet with season standings.
func (w *XLSXWriter) WriteCumulative(title string, standings []model.CumulativeStanding) (int, error) {
	sheet, err := w.newSheet(title)
	if err != nil {
		return 0, err
	}
	if err := w.setRow(sheet, 1, []any{"Rank", "Team", "Total", "Weeks", "Average"}); err != nil {
		return 0, err
	}
	for i, s := range standings {
		row := []any{i + 1, s.TeamName, s.TotalScore, s.WeeksPlayed, floatCell(s.AverageScore)}
		if err := w.setRow(sheet, i+2, row); err != nil {
			return 0, err
		}
	}
	_ = w.file.SetColWidth(sheet, "B", "B", 24)
	return 0, nil
}

// Flush writes the workbook to the output.
func (w *XLSXWriter) Flush() error {
	if len(w.sheets) > 0 {
		// NewFile starts with a default sheet nobody wrote to.
		if err := w.file.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("xlsx cleanup: %w", err)
		}
		w.file.SetActiveSheet(0)
	}
	if _, err := w.file.WriteTo(w.output); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// Workbook exposes the underlying workbook.
func (w *XLSXWriter) Workbook() *excelize.File {
	return w.file
}

// newSheet creates a uniquely named sheet from name.
func (w *XLSXWriter) newSheet(name string) (string, error) {
	base := sheetName(name)
	sheet := base
	for n := 2; ; n++ {
		// Excel compares sheet names case-insensitively.
		key := strings.ToLower(sheet)
		if _, taken := w.sheets[key]; !taken && key != "sheet1" {
			break
		}
		suffix := " (" + strconv.Itoa(n) + ")"
		sheet = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}

	index, err := w.file.NewSheet(sheet)
	if err != nil {
		return "", fmt.Errorf("xlsx sheet %q: %w", sheet, err)
	}
	w.sheets[strings.ToLower(sheet)] = index
	return sheet, nil
}

func (w *XLSXWriter) setRow(sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx row %d: %w", row, err)
	}
	return nil
}

// sheetName strips characters Excel forbids in sheet names and truncates.
func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Scorecard"
	}
	return truncateRunes(name, maxSheetName)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func intCell(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func floatCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
