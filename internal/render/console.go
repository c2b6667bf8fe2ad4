package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/dshills/prtassess/internal/assessment"
	"github.com/dshills/prtassess/internal/gauge"
)

// BarWidth is the number of cells in the terminal gauge.
const BarWidth = 40

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	trackStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#334155"))
)

func severityStyle(s assessment.Severity) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gauge.Hex(s)))
}

// Rule returns a line of "=" the given width.
func Rule(width int) string {
	return strings.Repeat("=", width)
}

// Bar draws a horizontal gauge filled to pct, colored by bucket.
func Bar(pct float64, sev assessment.Severity) string {
	filled := int(pct / 100 * BarWidth)
	if filled > BarWidth {
		filled = BarWidth
	}
	if filled < 0 {
		filled = 0
	}
	fill := lipgloss.NewStyle().Background(lipgloss.Color(gauge.Hex(sev))).Render(strings.Repeat(" ", filled))
	track := trackStyle.Render(strings.Repeat(" ", BarWidth-filled))
	return "[" + fill + track + "]"
}

// Console renders the result summary printed at the end of a console run.
func Console(r assessment.Result) string {
	var b strings.Builder
	b.WriteString("\n" + Rule(50) + "\n")
	b.WriteString(headingStyle.Render("ASSESSMENT RESULTS") + "\n")
	b.WriteString(Rule(50) + "\n")
	fmt.Fprintf(&b, "Score: %.1f%%\n", r.Percentage)
	fmt.Fprintf(&b, "Severity Level: %s\n", severityStyle(r.Severity).Render(r.Severity.Upper()))
	fmt.Fprintf(&b, "%s %s\n", Bar(r.Percentage, r.Severity), dimStyle.Render(fmt.Sprintf("%d/%d", r.Score, r.Total())))
	b.WriteString("\nExplanation:\n")
	b.WriteString(r.Explanation + "\n")
	return b.String()
}
