package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validReport = `{
  "source": "deck.pptx",
  "generated_at": "2026-08-29T12:00:00Z",
  "report": {
    "overall": 89.0,
    "category_scores": {
      "alt_text": 75, "font_size": 86, "contrast": 100, "complexity": 100, "structure": 100
    },
    "issues": [
      {
        "slide_index": 0,
        "shape_id": "slide1/2",
        "category": "alt_text",
        "severity": "high",
        "message": "picture has no alternative text"
      }
    ],
    "summary": "Good accessibility, minor issues remain"
  }
}`

func TestValidateReport_Valid(t *testing.T) {
	assert.NoError(t, ValidateReport([]byte(validReport)))
}

func TestValidateReport_MissingRequiredField(t *testing.T) {
	doc := `{"generated_at": "2026-08-29T12:00:00Z", "report": {"overall": 100, "category_scores": {}, "summary": "ok"}}`

	err := ValidateReport([]byte(doc))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.NotEmpty(t, verr.Errors)
	assert.Contains(t, err.Error(), "source")
}

func TestValidateReport_RejectsUnknownSeverity(t *testing.T) {
	doc := `{
  "source": "deck.pptx",
  "generated_at": "now",
  "report": {
    "overall": 100,
    "category_scores": {},
    "issues": [
      {"slide_index": 0, "shape_id": "slide1/2", "category": "alt_text", "severity": "critical", "message": "m"}
    ],
    "summary": "ok"
  }
}`

	err := ValidateReport([]byte(doc))
	require.Error(t, err)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestValidateReport_RejectsMalformedJSON(t *testing.T) {
	err := ValidateReport([]byte("{not json"))
	assert.Error(t, err)
}

func TestValidateReport_RejectsOutOfRangeScore(t *testing.T) {
	doc := `{
  "source": "deck.pptx",
  "generated_at": "now",
  "report": {"overall": 120, "category_scores": {}, "summary": "ok"}
}`

	err := ValidateReport([]byte(doc))
	require.Error(t, err)
}
