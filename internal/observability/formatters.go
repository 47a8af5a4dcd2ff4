// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/enhance"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// categoryLabel maps category identifiers to display names.
func categoryLabel(cat types.Category) string {
	switch cat {
	case types.CategoryAltText:
		return "Alt Text"
	case types.CategoryFontSize:
		return "Font Size"
	case types.CategoryContrast:
		return "Contrast"
	case types.CategoryComplexity:
		return "Complexity"
	case types.CategoryStructure:
		return "Structure"
	default:
		return string(cat)
	}
}

// PrintScoreReport outputs the overall and per-category scores.
func (p *Printer) PrintScoreReport(report *types.ScoreReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:  %.1f / 100\n", report.Overall))
	sb.WriteString(fmt.Sprintf("Verdict:  %s\n\n", report.Summary))
	for _, cat := range types.Categories {
		sb.WriteString(fmt.Sprintf("  %-12s %6.1f\n", categoryLabel(cat), report.CategoryScores[cat]))
	}

	p.printBox("ACCESSIBILITY SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIssues outputs the first few issues with severity markers.
func (p *Printer) PrintIssues(issues []types.Issue) {
	if len(issues) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total issues: %d\n\n", len(issues)))

	count := min(len(issues), maxItemsToShow)
	for i := 0; i < count; i++ {
		issue := issues[i]
		sb.WriteString(fmt.Sprintf("[%s] slide %d, %s\n",
			strings.ToUpper(string(issue.Severity)), issue.SlideIndex+1, categoryLabel(issue.Category)))
		sb.WriteString(fmt.Sprintf("  %s\n", issue.Message))
	}
	if len(issues) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more issues", len(issues)-maxItemsToShow))
	}

	p.printBox("ISSUES FOUND", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDiff outputs before/after score movement per category.
func (p *Printer) PrintDiff(diff *types.ReportDiff) {
	if diff == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:  %.1f -> %.1f\n\n", diff.Before.Overall, diff.After.Overall))
	for _, cat := range types.Categories {
		delta := diff.CategoryDeltas[cat]
		marker := " "
		if delta > 0 {
			marker = "+"
		}
		sb.WriteString(fmt.Sprintf("  %-12s %6.1f -> %6.1f  (%s%.1f)\n",
			categoryLabel(cat),
			diff.Before.CategoryScores[cat], diff.After.CategoryScores[cat],
			marker, delta))
	}
	sb.WriteString(fmt.Sprintf("\nResolved: %d  Remaining: %d  Introduced: %d",
		len(diff.Resolved), len(diff.Remaining), len(diff.Introduced)))

	p.printBox("SCORE IMPROVEMENT", sb.String())
}

// PrintChangeLog outputs the applied changes and skipped elements.
func (p *Printer) PrintChangeLog(changes []types.ChangeRecord, skips []enhance.Skip) {
	if len(changes) == 0 && len(skips) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Applied %d change(s)\n\n", len(changes)))

	count := min(len(changes), maxItemsToShow)
	for i := 0; i < count; i++ {
		change := changes[i]
		sb.WriteString(fmt.Sprintf("slide %d  %s  %s\n",
			change.SlideIndex+1, change.ShapeID, change.Field))
	}
	if len(changes) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(changes)-maxItemsToShow))
	}

	if len(skips) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkipped %d element(s):\n", len(skips)))
		for i := 0; i < min(len(skips), maxItemsToShow); i++ {
			sb.WriteString(fmt.Sprintf("  slide %d  %s\n", skips[i].SlideIndex+1, skips[i].Reason))
		}
	}

	p.printBox("CHANGE LOG", strings.TrimSuffix(sb.String(), "\n"))
}
