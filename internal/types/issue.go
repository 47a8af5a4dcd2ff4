// Package types provides type definitions for structured data used throughout the accessibility pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Category identifies the accessibility concern an issue belongs to
type Category string

// Issue categories, in report order
const (
	CategoryAltText    Category = "alt_text"
	CategoryFontSize   Category = "font_size"
	CategoryContrast   Category = "contrast"
	CategoryComplexity Category = "complexity"
	CategoryStructure  Category = "structure"
)

// Categories lists every issue category in the fixed report order
var Categories = []Category{
	CategoryAltText,
	CategoryFontSize,
	CategoryContrast,
	CategoryComplexity,
	CategoryStructure,
}

// Rank returns the ordering position of a category within a shape's issue list.
// Unknown categories sort last.
func (c Category) Rank() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return len(Categories)
}

// Severity expresses how strongly an issue impacts accessibility
type Severity string

// Severity levels
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Issue represents a single accessibility finding for one element.
// Issues are immutable once created; analysis passes replace them wholesale.
type Issue struct {
	SlideIndex   int      `json:"slide_index"`
	ShapeID      string   `json:"shape_id"`
	Category     Category `json:"category"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	SuggestedFix string   `json:"suggested_fix,omitempty"`
}

// Key returns the identity used for before/after matching: an issue is
// "resolved" when no issue with the same key appears after enhancement.
func (i Issue) Key() string {
	return i.ShapeID + "|" + string(i.Category)
}
