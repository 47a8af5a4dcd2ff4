package types

// ScoreReport is the outcome of one analysis pass: a weighted overall score,
// per-category scores, and the ordered issue list that produced them.
// Reports are regenerated on every pass and never mutated after creation.
type ScoreReport struct {
	Overall        float64              `json:"overall"`
	CategoryScores map[Category]float64 `json:"category_scores"`
	Issues         []Issue              `json:"issues"`
	Summary        string               `json:"summary"`
}

// ReportDiff compares two ScoreReports taken before and after enhancement.
type ReportDiff struct {
	Before *ScoreReport `json:"before"`
	After  *ScoreReport `json:"after"`

	// CategoryDeltas holds after minus before for each category.
	CategoryDeltas map[Category]float64 `json:"category_deltas"`

	// Resolved are issues present before but absent after (same shape and category).
	Resolved []Issue `json:"resolved"`
	// Remaining are issues present in both passes.
	Remaining []Issue `json:"remaining"`
	// Introduced are issues that appear only after enhancement.
	Introduced []Issue `json:"introduced"`
}

// ChangeRecord documents a single applied fix. The orchestrator appends one
// record per mutated field; together they form the audit trail for the report.
type ChangeRecord struct {
	SlideIndex int    `json:"slide_index"`
	ShapeID    string `json:"shape_id"`
	Field      string `json:"field"`
	OldValue   string `json:"old_value"`
	NewValue   string `json:"new_value"`
}

// Change record field names
const (
	FieldFontSize  = "font_size"
	FieldFontColor = "font_color"
	FieldFillColor = "fill_color"
	FieldAltText   = "alt_text"
	FieldText      = "text"
)
