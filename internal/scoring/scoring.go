// Package scoring turns an issue list into weighted accessibility scores and
// compares before/after reports.
package scoring

import (
	"fmt"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/config"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

// Summary buckets by overall score.
const (
	summaryExcellent = "Excellent accessibility"
	summaryGood      = "Good accessibility, minor issues remain"
	summaryFair      = "Fair accessibility, several issues need attention"
	summaryPoor      = "Poor accessibility, significant remediation required"
)

// Aggregator computes scores using the configured weights.
type Aggregator struct {
	cfg *config.Config
}

// New creates an Aggregator.
func New(cfg *config.Config) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Score aggregates issues into a report. Every category starts at 100 and
// loses its severity weight per issue, floored at 0; the overall score is the
// weighted sum across categories. An empty issue list yields a perfect score.
func (a *Aggregator) Score(issues []types.Issue) *types.ScoreReport {
	if issues == nil {
		// Keep the serialized form an empty array rather than null.
		issues = []types.Issue{}
	}

	categoryScores := make(map[types.Category]float64, len(types.Categories))
	for _, cat := range types.Categories {
		categoryScores[cat] = 100
	}

	for _, issue := range issues {
		penalty := a.cfg.SeverityWeights[issue.Severity]
		score := categoryScores[issue.Category] - penalty
		if score < 0 {
			score = 0
		}
		categoryScores[issue.Category] = score
	}

	overall := 0.0
	for cat, weight := range a.cfg.CategoryWeights {
		overall += weight * categoryScores[cat]
	}

	return &types.ScoreReport{
		Overall:        overall,
		CategoryScores: categoryScores,
		Issues:         issues,
		Summary:        summarize(overall),
	}
}

func summarize(overall float64) string {
	switch {
	case overall >= 90:
		return summaryExcellent
	case overall >= 70:
		return summaryGood
	case overall >= 50:
		return summaryFair
	default:
		return summaryPoor
	}
}

// Diff compares two reports by issue identity (shape and category). Issues
// present only before are resolved, present in both are remaining, and
// present only after are introduced.
func Diff(before, after *types.ScoreReport) *types.ReportDiff {
	diff := &types.ReportDiff{
		Before:         before,
		After:          after,
		CategoryDeltas: make(map[types.Category]float64, len(types.Categories)),
		Resolved:       []types.Issue{},
		Remaining:      []types.Issue{},
		Introduced:     []types.Issue{},
	}

	for _, cat := range types.Categories {
		diff.CategoryDeltas[cat] = after.CategoryScores[cat] - before.CategoryScores[cat]
	}

	afterKeys := make(map[string]bool, len(after.Issues))
	for _, issue := range after.Issues {
		afterKeys[issue.Key()] = true
	}
	beforeKeys := make(map[string]bool, len(before.Issues))
	for _, issue := range before.Issues {
		beforeKeys[issue.Key()] = true
	}

	for _, issue := range before.Issues {
		if afterKeys[issue.Key()] {
			continue
		}
		diff.Resolved = append(diff.Resolved, issue)
	}
	for _, issue := range after.Issues {
		if beforeKeys[issue.Key()] {
			diff.Remaining = append(diff.Remaining, issue)
		} else {
			diff.Introduced = append(diff.Introduced, issue)
		}
	}
	return diff
}

// FormatScore renders a score for display with one decimal place.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}
