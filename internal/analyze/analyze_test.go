package analyze_test

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/analyze"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/config"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/deck/decktest"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

func byCategory(issues []types.Issue, cat types.Category) []types.Issue {
	var out []types.Issue
	for _, issue := range issues {
		if issue.Category == cat {
			out = append(out, issue)
		}
	}
	return out
}

func titled(name, text string) decktest.TextSpec {
	return decktest.TextSpec{
		Name:  name,
		Title: true,
		Runs:  []decktest.RunSpec{{Text: text, SizePt: 24}},
	}
}

func TestAnalyze_MissingAltText(t *testing.T) {
	a := analyze.New(config.DefaultConfig())
	p := decktest.Build(t, decktest.SlideSpec{
		Texts: []decktest.TextSpec{titled("Title 1", "Overview")},
		Pictures: []decktest.PictureSpec{
			{Name: "Picture 1", Data: decktest.PNG(t, 8, 8, color.White), Ext: "png"},
		},
	})

	issues := byCategory(a.Analyze(p), types.CategoryAltText)
	require.Len(t, issues, 1)
	assert.Equal(t, types.SeverityHigh, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "no alternative text")
}

func TestAnalyze_PlaceholderAltText(t *testing.T) {
	a := analyze.New(config.DefaultConfig())
	p := decktest.Build(t, decktest.SlideSpec{
		Texts: []decktest.TextSpec{titled("Title 1", "Overview")},
		Pictures: []decktest.PictureSpec{
			{
				Name: "Picture 1",
				Alt:  "Chart, bar chart. Description automatically generated",
				Data: decktest.PNG(t, 8, 8, color.White),
				Ext:  "png",
			},
		},
	})

	issues := byCategory(a.Analyze(p), types.CategoryAltText)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "placeholder")
}

func TestAnalyze_GoodAltTextPasses(t *testing.T) {
	a := analyze.New(config.DefaultConfig())
	p := decktest.Build(t, decktest.SlideSpec{
		Texts: []decktest.TextSpec{titled("Title 1", "Overview")},
		Pictures: []decktest.PictureSpec{
			{Name: "Picture 1", Alt: "Bar chart of revenue by quarter", Data: decktest.PNG(t, 8, 8, color.White), Ext: "png"},
		},
	})

	assert.Empty(t, byCategory(a.Analyze(p), types.CategoryAltText))
}

func TestAnalyze_MetafileSuggestsFallback(t *testing.T) {
	a := analyze.New(config.DefaultConfig())
	p := decktest.Build(t, decktest.SlideSpec{
		Texts: []decktest.TextSpec{titled("Title 1", "Overview")},
		Pictures: []decktest.PictureSpec{
			{Name: "Diagram", Data: decktest.WMF(), Ext: "wmf"},
		},
	})

	issues := byCategory(a.Analyze(p), types.CategoryAltText)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].SuggestedFix, "fallback")
}

func TestAnalyze_FontSizeSeverityScalesWithDeficit(t *testing.T) {
	a := analyze.New(config.DefaultConfig())

	cases := []struct {
		sizePt float64
		want   types.Severity
	}{
		{14, types.SeverityLow},    // 78% of minimum
		{10, types.SeverityMedium}, // 56% of minimum
		{8, types.SeverityHigh},    // 44% of minimum
	}
	for _, tc := range cases {
		p := decktest.Build(t, decktest.SlideSpec{
			Texts: []decktest.TextSpec{
				titled("Title 1", "Overview"),
				{Name: "Body", Runs: []decktest.RunSpec{{Text: "note", SizePt: tc.sizePt}}},
			},
		})

		issues := byCategory(a.Analyze(p), types.CategoryFontSize)
		require.Len(t, issues, 1, "size %.0fpt", tc.sizePt)
		assert.Equal(t, tc.want, issues[0].Severity, "size %.0fpt", tc.sizePt)
	}
}

func TestAnalyze_CompliantFontSizePasses(t *testing.T) {
	a := analyze.New(config.DefaultConfig())
	p := decktest.Build(t, decktest.SlideSpec{
		Texts: []decktest.TextSpec{
			titled("Title 1", "Overview"),
			{Name: "Body", Runs: []decktest.RunSpec{{Text: "fine", SizePt: 18}}},
		},
	})

	assert.Empty(t, byCategory(a.Analyze(p), types.CategoryFontSize))
}

func TestAnalyze_ContrastSeverity(t *testing.T) {
	a := analyze.New(config.DefaultConfig())

	midGray := types.RGB{R: 0xA0, G: 0xA0, B: 0xA0}   // ~2.3:1 on white
	lightGray := types.RGB{R: 0xD9, G: 0xD9, B: 0xD9} // ~1.4:1 on white

	p := decktest.Build(t,
		decktest.SlideSpec{Texts: []decktest.TextSpec{
			titled("Title 1", "One"),
			{Name: "Medium", Runs: []decktest.RunSpec{{Text: "text", SizePt: 24, Color: &midGray}}},
		}},
		decktest.SlideSpec{Texts: []decktest.TextSpec{
			titled("Title 2", "Two"),
			{Name: "Severe", Runs: []decktest.RunSpec{{Text: "text", SizePt: 24, Color: &lightGray}}},
		}},
	)

	issues := byCategory(a.Analyze(p), types.CategoryContrast)
	require.Len(t, issues, 2)
	assert.Equal(t, types.SeverityMedium, issues[0].Severity)
	assert.Equal(t, types.SeverityHigh, issues[1].Severity)
	assert.Contains(t, issues[0].SuggestedFix, "background")
}

func TestAnalyze_CompliantContrastPasses(t *testing.T) {
	a := analyze.New(config.DefaultConfig())

	black := types.RGB{}
	p := decktest.Build(t, decktest.SlideSpec{
		Texts: []decktest.TextSpec{
			titled("Title 1", "Overview"),
			{Name: "Body", Runs: []decktest.RunSpec{{Text: "text", SizePt: 24, Color: &black}}},
		},
	})

	assert.Empty(t, byCategory(a.Analyze(p), types.CategoryContrast))
}

func TestAnalyze_InheritedColorsAreSkipped(t *testing.T) {
	a := analyze.New(config.DefaultConfig())
	p := decktest.Build(t, decktest.SlideSpec{
		Texts: []decktest.TextSpec{
			titled("Title 1", "Overview"),
			{Name: "Body", Runs: []decktest.RunSpec{{Text: "theme colored", SizePt: 24}}},
		},
	})

	assert.Empty(t, byCategory(a.Analyze(p), types.CategoryContrast))
}

func TestAnalyze_ComplexTextSuggestsSimplification(t *testing.T) {
	a := analyze.New(config.DefaultConfig())

	dense := "Organizational representatives subsequently demonstrated comprehensive " +
		"methodological considerations regarding infrastructural heterogeneity throughout " +
		"multinational jurisdictional frameworks necessitating immediate recalibration."
	p := decktest.Build(t, decktest.SlideSpec{
		Texts: []decktest.TextSpec{
			titled("Title 1", "Overview"),
			{Name: "Body", Runs: []decktest.RunSpec{{Text: dense, SizePt: 24}}},
		},
	})

	issues := byCategory(a.Analyze(p), types.CategoryComplexity)
	require.Len(t, issues, 1)
	assert.Equal(t, types.SeverityMedium, issues[0].Severity)
	assert.NotEmpty(t, issues[0].SuggestedFix)
	assert.NotEqual(t, dense, issues[0].SuggestedFix)
}

func TestAnalyze_ComplexitySeverityScalesWithScore(t *testing.T) {
	a := analyze.New(config.DefaultConfig())

	// A wall of plain words: flagged for its run-on structure, but the
	// readability score itself passes, so the finding stays low.
	runOn := strings.TrimSpace(strings.Repeat("the small red fox ran fast ", 8))
	// Dense jargon scores far below the threshold.
	dense := "Organizational representatives subsequently demonstrated comprehensive " +
		"methodological considerations regarding infrastructural heterogeneity throughout " +
		"multinational jurisdictional frameworks necessitating immediate recalibration."

	cases := []struct {
		name string
		text string
		want types.Severity
	}{
		{"structural cue only", runOn, types.SeverityLow},
		{"score far below threshold", dense, types.SeverityMedium},
	}
	for _, tc := range cases {
		p := decktest.Build(t, decktest.SlideSpec{
			Texts: []decktest.TextSpec{
				titled("Title 1", "Overview"),
				{Name: "Body", Runs: []decktest.RunSpec{{Text: tc.text, SizePt: 24}}},
			},
		})

		issues := byCategory(a.Analyze(p), types.CategoryComplexity)
		require.Len(t, issues, 1, tc.name)
		assert.Equal(t, tc.want, issues[0].Severity, tc.name)
	}
}

func TestAnalyze_MissingTitleFlagged(t *testing.T) {
	a := analyze.New(config.DefaultConfig())
	p := decktest.Build(t, decktest.SlideSpec{
		Texts: []decktest.TextSpec{
			{Name: "Body", Runs: []decktest.RunSpec{{Text: "no title here", SizePt: 24}}},
		},
	})

	issues := byCategory(a.Analyze(p), types.CategoryStructure)
	require.Len(t, issues, 1)
	assert.Equal(t, types.SeverityLow, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "title")
}

func TestAnalyze_EmptyTextShapeFlagged(t *testing.T) {
	a := analyze.New(config.DefaultConfig())
	p := decktest.Build(t, decktest.SlideSpec{
		Texts: []decktest.TextSpec{
			titled("Title 1", "Overview"),
			{Name: "Empty", Runs: []decktest.RunSpec{{Text: "", SizePt: 24}}},
		},
	})

	issues := byCategory(a.Analyze(p), types.CategoryStructure)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "empty")
}

func TestAnalyze_DeterministicOrdering(t *testing.T) {
	a := analyze.New(config.DefaultConfig())
	lightGray := types.RGB{R: 0xD9, G: 0xD9, B: 0xD9}

	build := func() []types.Issue {
		p := decktest.Build(t,
			decktest.SlideSpec{
				Texts: []decktest.TextSpec{
					{Name: "Body", Runs: []decktest.RunSpec{{Text: "tiny", SizePt: 8, Color: &lightGray}}},
				},
				Pictures: []decktest.PictureSpec{
					{Name: "Picture 1", Data: decktest.PNG(t, 8, 8, color.White), Ext: "png"},
				},
			},
			decktest.SlideSpec{
				Texts: []decktest.TextSpec{
					{Name: "Other", Runs: []decktest.RunSpec{{Text: "small", SizePt: 10}}},
				},
			},
		)
		return a.Analyze(p)
	}

	first := build()
	second := build()
	assert.Equal(t, first, second)

	// Slides in order, and a shape's font issue precedes its contrast issue.
	require.NotEmpty(t, first)
	lastSlide := 0
	for _, issue := range first {
		assert.GreaterOrEqual(t, issue.SlideIndex, lastSlide)
		lastSlide = issue.SlideIndex
	}

	fontIdx, contrastIdx := -1, -1
	for i, issue := range first {
		if issue.SlideIndex != 0 {
			continue
		}
		switch issue.Category {
		case types.CategoryFontSize:
			fontIdx = i
		case types.CategoryContrast:
			contrastIdx = i
		}
	}
	require.GreaterOrEqual(t, fontIdx, 0)
	require.GreaterOrEqual(t, contrastIdx, 0)
	assert.Less(t, fontIdx, contrastIdx)
}
