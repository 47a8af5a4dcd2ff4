// Package analyze inspects a presentation and produces the issue list that
// scoring and enhancement both consume. Analysis is read-only and
// deterministic: the same deck always yields the same issues in the same
// order (slide, then shape, then category).
package analyze

import (
	"fmt"
	"strings"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/alttext"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/config"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/contrast"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/deck"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/fonts"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/readability"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

// Severity boundaries for undersized fonts, as a fraction of the minimum.
const (
	fontLowRatio    = 0.75
	fontMediumRatio = 0.5
)

// Contrast below this ratio is flagged high severity regardless of text size.
const contrastSevereRatio = 2.0

// Complexity escalates to medium once the readability score falls this far
// below the configured threshold. Text flagged on structural cues alone, with
// a passing score, stays low.
const complexityMediumGap = 10.0

// Analyzer checks a presentation against the configured thresholds.
type Analyzer struct {
	cfg *config.Config
}

// New creates an Analyzer.
func New(cfg *config.Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze walks every slide and returns all findings. The deck is never
// mutated.
func (a *Analyzer) Analyze(p *deck.Presentation) []types.Issue {
	var issues []types.Issue
	for _, slide := range p.Slides() {
		for _, shape := range slide.Shapes() {
			issues = append(issues, a.analyzeShape(slide, shape)...)
		}
		if _, ok := slide.Title(); !ok {
			issues = append(issues, types.Issue{
				SlideIndex: slide.Index(),
				ShapeID:    fmt.Sprintf("slide%d", slide.Index()+1),
				Category:   types.CategoryStructure,
				Severity:   types.SeverityLow,
				Message:    "slide has no title",
				SuggestedFix: "Add a title placeholder so screen reader users " +
					"can navigate the deck by slide titles",
			})
		}
	}
	return issues
}

// analyzeShape emits a shape's issues in fixed category order so the overall
// list stays deterministic.
func (a *Analyzer) analyzeShape(slide *deck.Slide, shape deck.Shape) []types.Issue {
	switch s := shape.(type) {
	case *deck.PictureShape:
		if issue, ok := a.checkAltText(slide, s); ok {
			return []types.Issue{issue}
		}
		return nil
	case *deck.TextShape:
		var issues []types.Issue
		if issue, ok := a.checkFontSize(slide, s); ok {
			issues = append(issues, issue)
		}
		issues = append(issues, a.checkContrast(slide, s)...)
		if issue, ok := a.checkComplexity(slide, s); ok {
			issues = append(issues, issue)
		}
		if issue, ok := a.checkEmptyText(slide, s); ok {
			issues = append(issues, issue)
		}
		return issues
	default:
		return nil
	}
}

func (a *Analyzer) checkAltText(slide *deck.Slide, pic *deck.PictureShape) (types.Issue, bool) {
	alt := pic.AltText()
	if !alttext.NeedsAlt(alt) {
		return types.Issue{}, false
	}

	message := "picture has no alternative text"
	if strings.TrimSpace(alt) != "" {
		message = "picture carries auto-generated placeholder alternative text"
	}

	fix := "Generate a description of the image content"
	if format, _ := pic.Image(); format.IsMetafile() {
		fix = fmt.Sprintf("Format %s cannot be rasterized; apply the fallback description", format)
	}

	return types.Issue{
		SlideIndex:   slide.Index(),
		ShapeID:      pic.ID(),
		Category:     types.CategoryAltText,
		Severity:     types.SeverityHigh,
		Message:      message,
		SuggestedFix: fix,
	}, true
}

func (a *Analyzer) checkFontSize(slide *deck.Slide, ts *deck.TextShape) (types.Issue, bool) {
	minPt, found := fonts.MinRunSize(ts)
	if !found || minPt >= a.cfg.MinFontPt {
		return types.Issue{}, false
	}

	severity := types.SeverityHigh
	switch ratio := minPt / a.cfg.MinFontPt; {
	case ratio >= fontLowRatio:
		severity = types.SeverityLow
	case ratio >= fontMediumRatio:
		severity = types.SeverityMedium
	}

	return types.Issue{
		SlideIndex: slide.Index(),
		ShapeID:    ts.ID(),
		Category:   types.CategoryFontSize,
		Severity:   severity,
		Message:    fmt.Sprintf("text uses %.1fpt font, below the %.0fpt minimum", minPt, a.cfg.MinFontPt),
		SuggestedFix: fmt.Sprintf("Scale all runs in the shape so the smallest reaches %.0fpt",
			a.cfg.MinFontPt),
	}, true
}

// checkContrast evaluates each run carrying an explicit color against the
// shape's fill. Runs without an explicit color inherit from theme or layout
// and are skipped; the effective color is not resolvable from the slide part
// alone. A missing fill is treated as white, the default slide background.
func (a *Analyzer) checkContrast(slide *deck.Slide, ts *deck.TextShape) []types.Issue {
	background, hasFill := ts.Fill()
	if !hasFill {
		background = types.RGB{R: 255, G: 255, B: 255}
	}

	var issues []types.Issue
	seen := false
	for _, run := range ts.Runs() {
		if seen {
			break
		}
		foreground, hasColor := run.Color()
		if !hasColor || run.Text() == "" {
			continue
		}

		sizePt := a.cfg.MinFontPt
		if run.SizeSet() {
			sizePt = run.SizePt()
		}
		required := contrast.RequiredRatio(a.cfg, sizePt, run.Bold())

		pair := types.ColorPair{Foreground: foreground, Background: background}
		ratio := contrast.PairRatio(pair)
		if ratio >= required {
			continue
		}

		severity := types.SeverityMedium
		if ratio < contrastSevereRatio {
			severity = types.SeverityHigh
		}

		fix := "No compliant adjustment found by darkening; pick new colors manually"
		if fixed, ok := contrast.Fix(pair, required); ok {
			fix = fmt.Sprintf("Use text %s on background %s",
				fixed.Foreground.Hex(), fixed.Background.Hex())
		}

		// One contrast issue per shape; further failing runs add noise
		// without changing the remediation.
		seen = true
		issues = append(issues, types.Issue{
			SlideIndex: slide.Index(),
			ShapeID:    ts.ID(),
			Category:   types.CategoryContrast,
			Severity:   severity,
			Message: fmt.Sprintf("contrast ratio %.2f:1 is below the required %.1f:1",
				ratio, required),
			SuggestedFix: fix,
		})
	}
	return issues
}

func (a *Analyzer) checkComplexity(slide *deck.Slide, ts *deck.TextShape) (types.Issue, bool) {
	text := ts.Text()
	if !readability.IsComplex(text, a.cfg.ReadabilityThreshold) {
		return types.Issue{}, false
	}

	score := readability.Score(text)
	severity := types.SeverityLow
	if score < a.cfg.ReadabilityThreshold-complexityMediumGap {
		severity = types.SeverityMedium
	}

	return types.Issue{
		SlideIndex: slide.Index(),
		ShapeID:    ts.ID(),
		Category:   types.CategoryComplexity,
		Severity:   severity,
		Message: fmt.Sprintf("text is difficult to read (readability score %.0f)",
			score),
		SuggestedFix: readability.Simplify(text),
	}, true
}

// checkEmptyText flags shapes that exist but render nothing; screen readers
// announce them without content.
func (a *Analyzer) checkEmptyText(slide *deck.Slide, ts *deck.TextShape) (types.Issue, bool) {
	if strings.TrimSpace(ts.Text()) != "" {
		return types.Issue{}, false
	}
	return types.Issue{
		SlideIndex:   slide.Index(),
		ShapeID:      ts.ID(),
		Category:     types.CategoryStructure,
		Severity:     types.SeverityLow,
		Message:      "text shape is empty",
		SuggestedFix: "Remove the shape or give it content",
	}, true
}
