package report

import (
	"strconv"
	"strings"

	"github.com/nao1215/golfcard/internal/model"
)

// missing marks an absent value in every output format.
const missing = "-"

func formatInt(v *int) string {
	if v == nil {
		return missing
	}
	return strconv.Itoa(*v)
}

// formatToPar renders a to-par delta the way scorecards print it.
func formatToPar(v *int) string {
	switch {
	case v == nil:
		return missing
	case *v == 0:
		return "E"
	case *v > 0:
		return "+" + strconv.Itoa(*v)
	default:
		return strconv.Itoa(*v)
	}
}

func formatHandicap(v *float64) string {
	if v == nil {
		return missing
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func formatNet(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatTeamScore(v *float64) string {
	if v == nil {
		return missing
	}
	return formatNet(*v)
}

func formatHoles(holes []*int) string {
	if len(holes) == 0 {
		return missing
	}
	cells := make([]string, len(holes))
	for i, h := range holes {
		cells[i] = formatInt(h)
	}
	return strings.Join(cells, " ")
}

// recordFlag explains why a record needs a human look, or returns "".
func recordFlag(r model.PlayerRecord) string {
	switch {
	case r.IsPlaceholder():
		return "needs name"
	case !r.HasSummary():
		return "no summary"
	default:
		return ""
	}
}

// standingStatus describes how complete a team's weekly score is.
func standingStatus(s model.TeamStanding) string {
	switch {
	case s.Complete:
		return "complete"
	case s.Score != nil:
		return "partial"
	default:
		return "no scores"
	}
}

// topScoreNames lists the counting players of a team.
func topScoreNames(s model.TeamStanding) string {
	if len(s.TopScores) == 0 {
		return missing
	}
	parts := make([]string, len(s.TopScores))
	for i, r := range s.TopScores {
		parts[i] = r.Name + " " + formatNet(r.NetScore)
	}
	return strings.Join(parts, ", ")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
