package enhance_test

import (
	"context"
	"image/color"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/alttext"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/config"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/contrast"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/deck"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/deck/decktest"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/enhance"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

type stubDescriber struct {
	mu    sync.Mutex
	calls int
	text  string
}

func (s *stubDescriber) Describe(ctx context.Context, payload alttext.Payload, level alttext.DetailLevel) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.text, nil
}

func (s *stubDescriber) Close() error { return nil }

func byField(changes []types.ChangeRecord, field string) []types.ChangeRecord {
	var out []types.ChangeRecord
	for _, c := range changes {
		if c.Field == field {
			out = append(out, c)
		}
	}
	return out
}

func brokenDeck(t *testing.T) *deck.Presentation {
	// ~2.3:1 on white, below the 3.0:1 large-text bar even after the rescale.
	midGray := types.RGB{R: 0xA0, G: 0xA0, B: 0xA0}
	return decktest.Build(t, decktest.SlideSpec{
		Texts: []decktest.TextSpec{
			{Name: "Body", Runs: []decktest.RunSpec{
				{Text: "small gray text", SizePt: 12, Color: &midGray},
			}},
		},
		Pictures: []decktest.PictureSpec{
			{Name: "Picture 1", Data: decktest.PNG(t, 8, 8, color.White), Ext: "png"},
		},
	})
}

func TestEnhance_FixesAllCategories(t *testing.T) {
	cfg := config.DefaultConfig()
	stub := &stubDescriber{text: "A white square."}
	o := enhance.New(cfg, stub)
	p := brokenDeck(t)

	outcome, err := o.Enhance(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, outcome.Skips)

	fontChanges := byField(outcome.Changes, types.FieldFontSize)
	require.Len(t, fontChanges, 1)
	assert.Equal(t, "12.0pt", fontChanges[0].OldValue)
	assert.Equal(t, "18.0pt", fontChanges[0].NewValue)

	colorChanges := byField(outcome.Changes, types.FieldFontColor)
	require.Len(t, colorChanges, 1)
	assert.Equal(t, "A0A0A0", colorChanges[0].OldValue)

	altChanges := byField(outcome.Changes, types.FieldAltText)
	require.Len(t, altChanges, 1)
	assert.Equal(t, "", altChanges[0].OldValue)
	assert.Equal(t, "A white square.", altChanges[0].NewValue)
}

func TestEnhance_DeckIsActuallyMutated(t *testing.T) {
	cfg := config.DefaultConfig()
	o := enhance.New(cfg, &stubDescriber{text: "A white square."})
	p := brokenDeck(t)

	_, err := o.Enhance(context.Background(), p)
	require.NoError(t, err)

	var ts *deck.TextShape
	var pic *deck.PictureShape
	for _, shape := range p.Slides()[0].Shapes() {
		switch s := shape.(type) {
		case *deck.TextShape:
			ts = s
		case *deck.PictureShape:
			pic = s
		}
	}
	require.NotNil(t, ts)
	require.NotNil(t, pic)

	run := ts.Runs()[0]
	assert.Equal(t, 18.0, run.SizePt())

	fg, ok := run.Color()
	require.True(t, ok)
	required := contrast.RequiredRatio(cfg, 18, false)
	assert.GreaterOrEqual(t,
		contrast.PairRatio(types.ColorPair{Foreground: fg, Background: types.RGB{R: 255, G: 255, B: 255}}),
		required)

	assert.Equal(t, "A white square.", pic.AltText())
}

func TestEnhance_SecondRunRecordsNothing(t *testing.T) {
	cfg := config.DefaultConfig()
	stub := &stubDescriber{text: "A white square."}
	o := enhance.New(cfg, stub)
	p := brokenDeck(t)

	first, err := o.Enhance(context.Background(), p)
	require.NoError(t, err)
	require.NotEmpty(t, first.Changes)

	second, err := o.Enhance(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, second.Changes)
	assert.Empty(t, second.Skips)
}

func TestEnhance_NilDescriberUsesFallback(t *testing.T) {
	cfg := config.DefaultConfig()
	o := enhance.New(cfg, nil)
	p := brokenDeck(t)

	outcome, err := o.Enhance(context.Background(), p)
	require.NoError(t, err)

	altChanges := byField(outcome.Changes, types.FieldAltText)
	require.Len(t, altChanges, 1)
	assert.Equal(t, cfg.FallbackAltText, altChanges[0].NewValue)
}

func TestEnhance_UnfixableContrastIsSkipped(t *testing.T) {
	cfg := config.DefaultConfig()
	o := enhance.New(cfg, nil)

	black := types.RGB{}
	p := decktest.Build(t, decktest.SlideSpec{
		Texts: []decktest.TextSpec{
			{Name: "Body", Fill: &black, Runs: []decktest.RunSpec{
				{Text: "black on black", SizePt: 24, Color: &black},
			}},
		},
	})

	outcome, err := o.Enhance(context.Background(), p)
	require.NoError(t, err)

	assert.Empty(t, byField(outcome.Changes, types.FieldFontColor))
	assert.Empty(t, byField(outcome.Changes, types.FieldFillColor))
	require.Len(t, outcome.Skips, 1)
	assert.Contains(t, outcome.Skips[0].Reason, "no compliant colors")
}

func TestEnhance_ComplexityOffByDefault(t *testing.T) {
	cfg := config.DefaultConfig()
	o := enhance.New(cfg, nil)

	dense := "Organizational representatives subsequently demonstrated comprehensive " +
		"methodological considerations regarding infrastructural heterogeneity throughout " +
		"multinational jurisdictional frameworks necessitating immediate recalibration."
	p := decktest.Build(t, decktest.SlideSpec{
		Texts: []decktest.TextSpec{
			{Name: "Body", Runs: []decktest.RunSpec{{Text: dense, SizePt: 24}}},
		},
	})

	outcome, err := o.Enhance(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, byField(outcome.Changes, types.FieldText))
}

func TestEnhance_ComplexityAutoApply(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ComplexityAutoApply = true
	o := enhance.New(cfg, nil)

	dense := "It is important to note that organizational representatives utilize " +
		"comprehensive methodological considerations regarding infrastructural " +
		"heterogeneity throughout multinational jurisdictional frameworks."
	p := decktest.Build(t, decktest.SlideSpec{
		Texts: []decktest.TextSpec{
			{Name: "Body", Runs: []decktest.RunSpec{{Text: dense, SizePt: 24}}},
		},
	})

	outcome, err := o.Enhance(context.Background(), p)
	require.NoError(t, err)

	textChanges := byField(outcome.Changes, types.FieldText)
	require.Len(t, textChanges, 1)
	assert.NotEqual(t, textChanges[0].OldValue, textChanges[0].NewValue)
	assert.NotContains(t, textChanges[0].NewValue, "utilize")
}

func TestEnhance_CancelledContext(t *testing.T) {
	o := enhance.New(config.DefaultConfig(), nil)
	p := brokenDeck(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Enhance(ctx, p)
	assert.ErrorIs(t, err, context.Canceled)
}
