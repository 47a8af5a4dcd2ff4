// Package enhance applies remediations to a presentation: font rescaling,
// contrast correction, alt text generation, and optional text simplification.
package enhance

import (
	"context"
	"fmt"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/alttext"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/config"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/contrast"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/deck"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/fonts"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/readability"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

// Skip records an element the orchestrator could not fix and why. A skipped
// element never aborts the run.
type Skip struct {
	SlideIndex int    `json:"slide_index"`
	ShapeID    string `json:"shape_id"`
	Reason     string `json:"reason"`
}

// Outcome is everything one enhancement run produced.
type Outcome struct {
	Changes    []types.ChangeRecord
	Skips      []Skip
	AltResults []alttext.Result
}

// Orchestrator runs the remediation passes in a fixed order: font sizes,
// then contrast, then alt text, then text simplification when enabled.
// Fixing fonts before contrast matters because the required contrast ratio
// depends on the final text size.
type Orchestrator struct {
	cfg       *config.Config
	describer alttext.Describer
}

// New creates an Orchestrator. The describer may be nil, in which case
// pictures needing alt text receive the configured fallback description.
func New(cfg *config.Config, describer alttext.Describer) *Orchestrator {
	return &Orchestrator{cfg: cfg, describer: describer}
}

// Enhance applies every pass to the presentation in place. All passes are
// idempotent: re-running on an already enhanced deck records no changes.
// Returns an error only on cancellation; per-element failures become skips.
func (o *Orchestrator) Enhance(ctx context.Context, p *deck.Presentation) (*Outcome, error) {
	outcome := &Outcome{}

	for _, slide := range p.Slides() {
		for _, shape := range slide.Shapes() {
			if err := ctx.Err(); err != nil {
				return outcome, err
			}
			ts, ok := shape.(*deck.TextShape)
			if !ok {
				continue
			}
			o.fixFonts(slide, ts, outcome)
			o.fixContrast(slide, ts, outcome)
		}
	}

	if err := o.fixAltText(ctx, p, outcome); err != nil {
		return outcome, err
	}

	if o.cfg.ComplexityAutoApply {
		for _, slide := range p.Slides() {
			for _, shape := range slide.Shapes() {
				if err := ctx.Err(); err != nil {
					return outcome, err
				}
				if ts, ok := shape.(*deck.TextShape); ok {
					o.simplifyText(slide, ts, outcome)
				}
			}
		}
	}

	return outcome, nil
}

func (o *Orchestrator) fixFonts(slide *deck.Slide, ts *deck.TextShape, outcome *Outcome) {
	changes, err := fonts.Rescale(ts, o.cfg.MinFontPt)
	if err != nil {
		outcome.Skips = append(outcome.Skips, Skip{
			SlideIndex: slide.Index(),
			ShapeID:    ts.ID(),
			Reason:     fmt.Sprintf("font rescale failed: %v", err),
		})
		return
	}
	for _, change := range changes {
		outcome.Changes = append(outcome.Changes, types.ChangeRecord{
			SlideIndex: slide.Index(),
			ShapeID:    ts.ID(),
			Field:      types.FieldFontSize,
			OldValue:   formatPt(change.OldPt),
			NewValue:   formatPt(change.NewPt),
		})
	}
}

func formatPt(pt float64) string {
	if pt == 0 {
		return "inherited"
	}
	return fmt.Sprintf("%.1fpt", pt)
}

// fixContrast adjusts explicitly colored runs that fail their required ratio.
// The darker element moves toward black; when even that cannot reach the
// target the element is skipped rather than half-fixed.
func (o *Orchestrator) fixContrast(slide *deck.Slide, ts *deck.TextShape, outcome *Outcome) {
	background, hasFill := ts.Fill()
	if !hasFill {
		background = types.RGB{R: 255, G: 255, B: 255}
	}

	for _, run := range ts.Runs() {
		foreground, hasColor := run.Color()
		if !hasColor || run.Text() == "" {
			continue
		}

		sizePt := o.cfg.MinFontPt
		if run.SizeSet() {
			sizePt = run.SizePt()
		}
		required := contrast.RequiredRatio(o.cfg, sizePt, run.Bold())

		pair := types.ColorPair{Foreground: foreground, Background: background}
		if contrast.PairRatio(pair) >= required {
			continue
		}

		fixed, ok := contrast.Fix(pair, required)
		if !ok {
			outcome.Skips = append(outcome.Skips, Skip{
				SlideIndex: slide.Index(),
				ShapeID:    ts.ID(),
				Reason: fmt.Sprintf("no compliant colors reachable from %s on %s",
					pair.Foreground.Hex(), pair.Background.Hex()),
			})
			continue
		}

		if fixed.Foreground != pair.Foreground {
			run.SetColor(fixed.Foreground)
			outcome.Changes = append(outcome.Changes, types.ChangeRecord{
				SlideIndex: slide.Index(),
				ShapeID:    ts.ID(),
				Field:      types.FieldFontColor,
				OldValue:   pair.Foreground.Hex(),
				NewValue:   fixed.Foreground.Hex(),
			})
		}
		if fixed.Background != pair.Background {
			ts.SetFill(fixed.Background)
			background = fixed.Background
			outcome.Changes = append(outcome.Changes, types.ChangeRecord{
				SlideIndex: slide.Index(),
				ShapeID:    ts.ID(),
				Field:      types.FieldFillColor,
				OldValue:   pair.Background.Hex(),
				NewValue:   fixed.Background.Hex(),
			})
		}
	}
}

func (o *Orchestrator) fixAltText(ctx context.Context, p *deck.Presentation, outcome *Outcome) error {
	// Capture current values first; the coordinator mutates the deck.
	oldAlt := make(map[string]string)
	for _, slide := range p.Slides() {
		for _, shape := range slide.Shapes() {
			if pic, ok := shape.(*deck.PictureShape); ok {
				oldAlt[pic.ID()] = pic.AltText()
			}
		}
	}

	coordinator := alttext.NewCoordinator(o.describer, o.cfg)
	results, err := coordinator.Fill(ctx, p)
	if err != nil {
		return err
	}
	outcome.AltResults = results

	for _, result := range results {
		if result.State != alttext.StateApplied {
			if result.Err != nil {
				outcome.Skips = append(outcome.Skips, Skip{
					SlideIndex: result.SlideIndex,
					ShapeID:    result.ShapeID,
					Reason:     result.Err.Error(),
				})
			}
			continue
		}
		if result.AltText == oldAlt[result.ShapeID] {
			continue
		}
		outcome.Changes = append(outcome.Changes, types.ChangeRecord{
			SlideIndex: result.SlideIndex,
			ShapeID:    result.ShapeID,
			Field:      types.FieldAltText,
			OldValue:   oldAlt[result.ShapeID],
			NewValue:   result.AltText,
		})
	}
	return nil
}

func (o *Orchestrator) simplifyText(slide *deck.Slide, ts *deck.TextShape, outcome *Outcome) {
	text := ts.Text()
	if !readability.IsComplex(text, o.cfg.ReadabilityThreshold) {
		return
	}
	simplified := readability.Simplify(text)
	if simplified == text || simplified == "" {
		return
	}

	ts.SetText(simplified)
	outcome.Changes = append(outcome.Changes, types.ChangeRecord{
		SlideIndex: slide.Index(),
		ShapeID:    ts.ID(),
		Field:      types.FieldText,
		OldValue:   text,
		NewValue:   simplified,
	})
}
