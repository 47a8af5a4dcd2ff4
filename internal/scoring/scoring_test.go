package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/config"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

func issue(shapeID string, cat types.Category, sev types.Severity) types.Issue {
	return types.Issue{SlideIndex: 0, ShapeID: shapeID, Category: cat, Severity: sev}
}

func TestScore_NoIssuesIsPerfect(t *testing.T) {
	a := New(config.DefaultConfig())

	report := a.Score(nil)
	assert.Equal(t, 100.0, report.Overall)
	for _, cat := range types.Categories {
		assert.Equal(t, 100.0, report.CategoryScores[cat])
	}
	assert.Equal(t, summaryExcellent, report.Summary)
}

func TestScore_PenaltiesBySeverity(t *testing.T) {
	a := New(config.DefaultConfig())

	report := a.Score([]types.Issue{
		issue("slide1/2", types.CategoryAltText, types.SeverityHigh),    // -25
		issue("slide1/3", types.CategoryFontSize, types.SeverityMedium), // -10
		issue("slide1/4", types.CategoryFontSize, types.SeverityLow),    // -4
	})

	assert.Equal(t, 75.0, report.CategoryScores[types.CategoryAltText])
	assert.Equal(t, 86.0, report.CategoryScores[types.CategoryFontSize])
	assert.Equal(t, 100.0, report.CategoryScores[types.CategoryContrast])

	// 0.30*75 + 0.25*86 + 0.25*100 + 0.15*100 + 0.05*100
	assert.InDelta(t, 89.0, report.Overall, 0.001)
}

func TestScore_CategoryScoreFloorsAtZero(t *testing.T) {
	a := New(config.DefaultConfig())

	var issues []types.Issue
	for i := 0; i < 10; i++ {
		issues = append(issues, issue("slide1/2", types.CategoryContrast, types.SeverityHigh))
	}

	report := a.Score(issues)
	assert.Equal(t, 0.0, report.CategoryScores[types.CategoryContrast])
	assert.GreaterOrEqual(t, report.Overall, 0.0)
}

func TestScore_Deterministic(t *testing.T) {
	a := New(config.DefaultConfig())
	issues := []types.Issue{
		issue("slide1/2", types.CategoryAltText, types.SeverityHigh),
		issue("slide2/2", types.CategoryComplexity, types.SeverityMedium),
	}

	first := a.Score(issues)
	second := a.Score(issues)
	assert.Equal(t, first.Overall, second.Overall)
	assert.Equal(t, first.CategoryScores, second.CategoryScores)
}

func TestSummarizeBuckets(t *testing.T) {
	assert.Equal(t, summaryExcellent, summarize(95))
	assert.Equal(t, summaryExcellent, summarize(90))
	assert.Equal(t, summaryGood, summarize(75))
	assert.Equal(t, summaryFair, summarize(55))
	assert.Equal(t, summaryPoor, summarize(20))
}

func TestDiff_PartitionsIssues(t *testing.T) {
	a := New(config.DefaultConfig())

	resolved := issue("slide1/2", types.CategoryAltText, types.SeverityHigh)
	remaining := issue("slide1/3", types.CategoryContrast, types.SeverityMedium)
	introduced := issue("slide2/2", types.CategoryStructure, types.SeverityLow)

	before := a.Score([]types.Issue{resolved, remaining})
	after := a.Score([]types.Issue{remaining, introduced})

	diff := Diff(before, after)
	require.Len(t, diff.Resolved, 1)
	assert.Equal(t, resolved.Key(), diff.Resolved[0].Key())
	require.Len(t, diff.Remaining, 1)
	assert.Equal(t, remaining.Key(), diff.Remaining[0].Key())
	require.Len(t, diff.Introduced, 1)
	assert.Equal(t, introduced.Key(), diff.Introduced[0].Key())
}

func TestDiff_CategoryDeltas(t *testing.T) {
	a := New(config.DefaultConfig())

	before := a.Score([]types.Issue{issue("slide1/2", types.CategoryAltText, types.SeverityHigh)})
	after := a.Score(nil)

	diff := Diff(before, after)
	assert.Equal(t, 25.0, diff.CategoryDeltas[types.CategoryAltText])
	assert.Equal(t, 0.0, diff.CategoryDeltas[types.CategoryContrast])
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "89.0", FormatScore(89.0))
	assert.Equal(t, "72.5", FormatScore(72.46))
}
