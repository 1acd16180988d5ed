package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/svanhoutte/stuiver/internal/budget"
)

var (
	withinSegment    = lipgloss.NewStyle().Foreground(SuccessColor)
	overSegment      = lipgloss.NewStyle().Foreground(ErrorColor)
	remainingSegment = lipgloss.NewStyle().Foreground(SubtleColor)
)

// EnvelopeBar renders a proportional spent-versus-budget bar of the
// given width. The three segments partition max(spent, budget): spend
// within budget, overspend, and remaining room.
func EnvelopeBar(e budget.Envelope, width int) string {
	total := e.Within + e.Over + e.Remaining
	if total <= 0 || width <= 0 {
		return remainingSegment.Render(strings.Repeat("░", max(width, 0)))
	}

	withinCells := int(e.Within * int64(width) / total)
	overCells := int(e.Over * int64(width) / total)
	remainingCells := width - withinCells - overCells

	var b strings.Builder
	b.WriteString(withinSegment.Render(strings.Repeat("█", withinCells)))
	b.WriteString(overSegment.Render(strings.Repeat("█", overCells)))
	b.WriteString(remainingSegment.Render(strings.Repeat("░", remainingCells)))
	return b.String()
}
