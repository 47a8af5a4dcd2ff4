package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/config"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/enhance"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/scoring"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

func sampleIssues(n int) []types.Issue {
	issues := make([]types.Issue, 0, n)
	for i := 0; i < n; i++ {
		issues = append(issues, types.Issue{
			SlideIndex: i,
			ShapeID:    "slide1/2",
			Category:   types.CategoryAltText,
			Severity:   types.SeverityHigh,
			Message:    "picture has no alternative text",
		})
	}
	return issues
}

func TestPrintScoreReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := scoring.New(config.DefaultConfig()).Score(sampleIssues(1))
	p.PrintScoreReport(report)
	output := buf.String()

	assert.Contains(t, output, "ACCESSIBILITY SCORE")
	assert.Contains(t, output, "Overall:")
	assert.Contains(t, output, "Alt Text")
	assert.Contains(t, output, "Contrast")
}

func TestPrintScoreReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoreReport(nil)

	assert.Empty(t, buf.String())
}

func TestPrintIssues(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintIssues(sampleIssues(2))
	output := buf.String()

	assert.Contains(t, output, "ISSUES FOUND")
	assert.Contains(t, output, "Total issues: 2")
	assert.Contains(t, output, "[HIGH]")
}

func TestPrintIssues_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintIssues(sampleIssues(9))

	assert.Contains(t, buf.String(), "... and 4 more issues")
}

func TestPrintIssues_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintIssues(nil)

	assert.Empty(t, buf.String())
}

func TestPrintDiff(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	agg := scoring.New(config.DefaultConfig())
	diff := scoring.Diff(agg.Score(sampleIssues(1)), agg.Score(nil))

	p.PrintDiff(diff)
	output := buf.String()

	assert.Contains(t, output, "SCORE IMPROVEMENT")
	assert.Contains(t, output, "Resolved: 1")
	assert.Contains(t, output, "+25.0")
}

func TestPrintChangeLog(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	changes := []types.ChangeRecord{
		{SlideIndex: 0, ShapeID: "slide1/2", Field: types.FieldFontSize, OldValue: "12.0pt", NewValue: "18.0pt"},
	}
	skips := []enhance.Skip{
		{SlideIndex: 1, ShapeID: "slide2/3", Reason: "font rescale failed"},
	}

	p.PrintChangeLog(changes, skips)
	output := buf.String()

	assert.Contains(t, output, "CHANGE LOG")
	assert.Contains(t, output, "Applied 1 change(s)")
	assert.Contains(t, output, "font_size")
	assert.Contains(t, output, "Skipped 1 element(s)")
}

func TestPrintChangeLog_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintChangeLog(nil, nil)

	assert.Empty(t, buf.String())
}
