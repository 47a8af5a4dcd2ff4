// Package fonts detects sub-threshold font sizes and rescales them while
// preserving the relative size ratios between runs in the same shape.
package fonts

import (
	"fmt"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/deck"
)

// SizeSample reports the smallest explicit run size found in a shape.
type SizeSample struct {
	SlideIndex int
	ShapeID    string
	SizePt     float64
}

// Scan walks the presentation and returns the minimum explicit run size per
// text shape, in slide order. Shapes whose runs all inherit their size are
// skipped; the analyzer treats inherited sizes separately.
func Scan(p *deck.Presentation) []SizeSample {
	var samples []SizeSample
	for _, slide := range p.Slides() {
		for _, shape := range slide.Shapes() {
			ts, ok := shape.(*deck.TextShape)
			if !ok {
				continue
			}
			minPt, found := MinRunSize(ts)
			if !found {
				continue
			}
			samples = append(samples, SizeSample{
				SlideIndex: slide.Index(),
				ShapeID:    ts.ID(),
				SizePt:     minPt,
			})
		}
	}
	return samples
}

// MinRunSize returns the smallest explicit size among a shape's non-empty
// runs, and whether any run carries an explicit size at all.
func MinRunSize(ts *deck.TextShape) (float64, bool) {
	minPt := 0.0
	found := false
	for _, run := range ts.Runs() {
		if !run.SizeSet() || run.Text() == "" {
			continue
		}
		if !found || run.SizePt() < minPt {
			minPt = run.SizePt()
			found = true
		}
	}
	return minPt, found
}

// RunChange records one run size adjustment made by Rescale.
type RunChange struct {
	RunIndex int
	OldPt    float64
	NewPt    float64
}

// Rescale lifts every run in the shape by a single scale factor so that the
// smallest run reaches minPt. Applying one factor to the whole shape keeps the
// ratio between any two runs intact; sizes are never decreased. Runs without
// an explicit size inherit from the layout and are set to minPt directly so
// the shape cannot render below threshold.
//
// Returns an error if a run carries a non-positive explicit size, which marks
// the element as malformed; callers skip the element and record the reason.
func Rescale(ts *deck.TextShape, minPt float64) ([]RunChange, error) {
	minRun, hasExplicit := MinRunSize(ts)
	if hasExplicit && minRun <= 0 {
		return nil, fmt.Errorf("shape %s: invalid font size %.2fpt", ts.ID(), minRun)
	}

	scale := 1.0
	if hasExplicit && minRun < minPt {
		scale = minPt / minRun
	}

	var changes []RunChange
	for i, run := range ts.Runs() {
		if run.Text() == "" {
			continue
		}
		if !run.SizeSet() {
			if hasExplicit {
				// Only explicit runs define the shape's scale; leave
				// inherited runs to the layout when siblings are sized.
				continue
			}
			run.SetSizePt(minPt)
			changes = append(changes, RunChange{RunIndex: i, OldPt: 0, NewPt: minPt})
			continue
		}
		if scale == 1.0 {
			continue
		}
		oldPt := run.SizePt()
		newPt := oldPt * scale
		if newPt <= oldPt {
			continue
		}
		run.SetSizePt(newPt)
		changes = append(changes, RunChange{RunIndex: i, OldPt: oldPt, NewPt: newPt})
	}
	return changes, nil
}
