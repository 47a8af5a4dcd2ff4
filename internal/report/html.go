package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

//go:embed report.tmpl
var reportTemplate string

// categoryLabels are the human-readable names used in the HTML tables.
var categoryLabels = map[types.Category]string{
	types.CategoryAltText:    "Alt Text",
	types.CategoryFontSize:   "Font Size",
	types.CategoryContrast:   "Color Contrast",
	types.CategoryComplexity: "Text Complexity",
	types.CategoryStructure:  "Structure",
}

// scoreRow is one line of the per-category score table.
type scoreRow struct {
	Label      string
	Before     float64
	After      float64
	DeltaClass string
	DeltaText  string
}

// issueRow presents an issue with a 1-based slide number.
type issueRow struct {
	SlideNumber  int
	ShapeID      string
	Category     types.Category
	Severity     types.Severity
	Message      string
	SuggestedFix string
}

// changeRow presents a change record with a 1-based slide number.
type changeRow struct {
	SlideNumber int
	ShapeID     string
	Field       string
	OldValue    string
	NewValue    string
}

// skipRow presents a skip with a 1-based slide number.
type skipRow struct {
	SlideNumber int
	ShapeID     string
	Reason      string
}

// WriteHTML renders the export as a standalone HTML page.
func WriteHTML(w io.Writer, export *Export) error {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	data := buildHTMLData(export)
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func buildHTMLData(export *Export) map[string]any {
	report := export.Report
	if export.Diff != nil {
		report = export.Diff.After
	}

	var rows []scoreRow
	for _, cat := range types.Categories {
		row := scoreRow{
			Label:  categoryLabels[cat],
			Before: report.CategoryScores[cat],
			After:  report.CategoryScores[cat],
		}
		if export.Diff != nil {
			row.Before = export.Diff.Before.CategoryScores[cat]
			row.After = export.Diff.After.CategoryScores[cat]
			delta := export.Diff.CategoryDeltas[cat]
			switch {
			case delta > 0:
				row.DeltaClass = "delta-up"
				row.DeltaText = fmt.Sprintf("+%.1f", delta)
			case delta < 0:
				row.DeltaClass = "delta-down"
				row.DeltaText = fmt.Sprintf("%.1f", delta)
			default:
				row.DeltaText = "0.0"
			}
		}
		rows = append(rows, row)
	}

	issues := make([]issueRow, 0, len(report.Issues))
	for _, issue := range report.Issues {
		issues = append(issues, issueRow{
			SlideNumber:  issue.SlideIndex + 1,
			ShapeID:      issue.ShapeID,
			Category:     issue.Category,
			Severity:     issue.Severity,
			Message:      issue.Message,
			SuggestedFix: issue.SuggestedFix,
		})
	}

	changes := make([]changeRow, 0, len(export.Changes))
	for _, change := range export.Changes {
		changes = append(changes, changeRow{
			SlideNumber: change.SlideIndex + 1,
			ShapeID:     change.ShapeID,
			Field:       change.Field,
			OldValue:    change.OldValue,
			NewValue:    change.NewValue,
		})
	}

	skips := make([]skipRow, 0, len(export.Skips))
	for _, skip := range export.Skips {
		skips = append(skips, skipRow{
			SlideNumber: skip.SlideIndex + 1,
			ShapeID:     skip.ShapeID,
			Reason:      skip.Reason,
		})
	}

	return map[string]any{
		"Source":                export.Source,
		"GeneratedAt":           export.GeneratedAt,
		"Report":                export.Report,
		"Diff":                  export.Diff,
		"ScoreRows":             rows,
		"Issues":                issues,
		"Changes":               changes,
		"Skips":                 skips,
		"UnsupportedImageCount": export.UnsupportedImageCount,
	}
}
