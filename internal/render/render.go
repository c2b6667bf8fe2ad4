// Package render produces text reports from assessment records.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/prtassess/internal/assessment"
	"github.com/dshills/prtassess/internal/record"
)

// Markdown renders a record as a Markdown report.
func Markdown(r *record.Record) string {
	var b strings.Builder

	b.WriteString("# PRT Assessment Results\n\n")
	fmt.Fprintf(&b, "**Date:** %s\n", r.Timestamp)
	fmt.Fprintf(&b, "**Score:** %d / %d (%.1f%%)\n", r.Score, len(r.Questions), r.ScorePercentage)
	fmt.Fprintf(&b, "**Severity:** %s\n\n", strings.ToUpper(r.SeverityLevel))

	b.WriteString("## Explanation\n\n")
	fmt.Fprintf(&b, "%s\n\n", r.Explanation)

	if len(r.Questions) > 0 {
		b.WriteString("## Answers\n\n")
		b.WriteString("| # | Question | Answer |\n")
		b.WriteString("|---|----------|--------|\n")
		for i, q := range r.Questions {
			ans := ""
			if i < len(r.Answers) {
				ans = r.Answers[i]
			}
			fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, escapeCell(q), ans)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Severity Levels\n\n")
	for _, e := range assessment.Explanations() {
		marker := ""
		if string(e.Severity) == r.SeverityLevel {
			marker = " (this assessment)"
		}
		fmt.Fprintf(&b, "- **%s**%s: %s\n", e.Severity.Upper(), marker, e.Text)
	}

	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
