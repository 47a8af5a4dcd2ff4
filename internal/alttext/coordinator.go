package alttext

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/config"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/deck"
)

// State tracks an image through the description lifecycle.
type State string

const (
	StatePending           State = "pending"
	StateExtracted         State = "extracted"
	StateDescribeRequested State = "describe_requested"
	StateDescribed         State = "described"
	StateFallbackUsed      State = "fallback_used"
	StateApplied           State = "applied"
)

// Result records the outcome for one picture shape.
type Result struct {
	SlideIndex int
	ShapeID    string
	State      State
	AltText    string
	Attempts   int
	Err        error
}

// placeholderMarkers identify auto-generated alt text that provides no real
// information; such text is treated the same as missing.
var placeholderMarkers = []string{
	"description automatically generated",
	"a picture containing",
	"no description available",
}

// NeedsAlt reports whether the alt text is missing or a known placeholder.
func NeedsAlt(alt string) bool {
	trimmed := strings.TrimSpace(alt)
	if trimmed == "" {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, marker := range placeholderMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Coordinator runs the description lifecycle for every picture in a
// presentation that needs alt text.
type Coordinator struct {
	describer Describer
	cfg       *config.Config

	// backoff returns the wait before retry n (1-based). Overridable in tests.
	backoff func(attempt int) time.Duration
}

// NewCoordinator creates a coordinator using the given describer.
func NewCoordinator(describer Describer, cfg *config.Config) *Coordinator {
	return &Coordinator{
		describer: describer,
		cfg:       cfg,
		backoff:   defaultBackoff,
	}
}

func defaultBackoff(attempt int) time.Duration {
	return time.Duration(attempt) * 500 * time.Millisecond
}

// candidate is one picture shape queued for description.
type candidate struct {
	slideIndex int
	pic        *deck.PictureShape
	level      DetailLevel
	payload    Payload
	result     Result
}

// Fill describes and applies alt text for every picture that needs it.
// Description calls run in parallel up to the configured concurrency;
// applying the text to the document is sequential. Pictures in unsupported
// metafile formats receive the configured fallback text. A single picture's
// failure does not abort the rest; per-picture errors are carried in the
// results. Fill returns an error only on cancellation.
func (c *Coordinator) Fill(ctx context.Context, p *deck.Presentation) ([]Result, error) {
	candidates := c.collect(p)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency())

	for i := range candidates {
		cand := &candidates[i]
		if cand.result.State != StateDescribeRequested {
			continue
		}
		g.Go(func() error {
			return c.describe(gctx, cand)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Apply sequentially; the document model is not safe for concurrent
	// mutation.
	results := make([]Result, 0, len(candidates))
	for i := range candidates {
		cand := &candidates[i]
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if cand.result.AltText != "" {
			cand.pic.SetAltText(cand.result.AltText)
			cand.result.State = StateApplied
		}
		results = append(results, cand.result)
	}
	return results, nil
}

// collect walks the presentation and stages every picture needing alt text.
// Metafiles go straight to fallback; everything else is preprocessed and
// queued for description. Slides with exactly one image get the detailed
// level, since that image usually carries the slide's content.
func (c *Coordinator) collect(p *deck.Presentation) []candidate {
	var candidates []candidate
	for _, slide := range p.Slides() {
		var slidePics []*deck.PictureShape
		for _, shape := range slide.Shapes() {
			if pic, ok := shape.(*deck.PictureShape); ok && NeedsAlt(pic.AltText()) {
				slidePics = append(slidePics, pic)
			}
		}

		level := DetailConcise
		if len(slidePics) == 1 {
			level = DetailDetailed
		}

		for _, pic := range slidePics {
			cand := candidate{
				slideIndex: slide.Index(),
				pic:        pic,
				level:      level,
				result: Result{
					SlideIndex: slide.Index(),
					ShapeID:    pic.ID(),
					State:      StatePending,
				},
			}
			c.stage(&cand)
			candidates = append(candidates, cand)
		}
	}
	return candidates
}

// stage extracts and preprocesses the candidate's image, advancing its state
// to StateDescribeRequested or StateFallbackUsed.
func (c *Coordinator) stage(cand *candidate) {
	format, data := cand.pic.Image()
	if len(data) == 0 {
		cand.result.State = StateFallbackUsed
		cand.result.AltText = c.cfg.FallbackAltText
		cand.result.Err = fmt.Errorf("picture %s: media part missing or empty", cand.result.ShapeID)
		return
	}
	cand.result.State = StateExtracted

	if format.IsMetafile() {
		cand.result.State = StateFallbackUsed
		cand.result.AltText = c.cfg.FallbackAltText
		return
	}

	if c.describer == nil {
		// No model configured; the fallback is the best available text.
		cand.result.State = StateFallbackUsed
		cand.result.AltText = c.cfg.FallbackAltText
		return
	}

	payload, err := Preprocess(data, c.cfg.MaxImageEdgePx)
	if err != nil {
		cand.result.State = StateFallbackUsed
		cand.result.AltText = c.cfg.FallbackAltText
		cand.result.Err = err
		return
	}

	cand.payload = payload
	cand.result.State = StateDescribeRequested
}

// describe calls the model with retries. On exhausted retries the candidate
// falls back to the configured text and keeps the last error.
func (c *Coordinator) describe(ctx context.Context, cand *candidate) error {
	var lastErr error
	for attempt := 1; attempt <= c.retryLimit(); attempt++ {
		cand.result.Attempts = attempt

		text, err := c.describer.Describe(ctx, cand.payload, cand.level)
		if err == nil && text != "" {
			cand.result.State = StateDescribed
			cand.result.AltText = text
			return nil
		}
		if err == nil {
			err = fmt.Errorf("model returned empty description")
		}
		lastErr = err

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt < c.retryLimit() {
			if err := sleep(ctx, c.backoff(attempt)); err != nil {
				return err
			}
		}
	}

	cand.result.State = StateFallbackUsed
	cand.result.AltText = c.cfg.FallbackAltText
	cand.result.Err = &DescribeError{
		ShapeID:  cand.result.ShapeID,
		Attempts: cand.result.Attempts,
		Cause:    lastErr,
	}
	return nil
}

func (c *Coordinator) concurrency() int {
	if c.cfg.DescribeConcurrency > 0 {
		return c.cfg.DescribeConcurrency
	}
	return 1
}

func (c *Coordinator) retryLimit() int {
	if c.cfg.AltTextRetryLimit > 0 {
		return c.cfg.AltTextRetryLimit
	}
	return 1
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
