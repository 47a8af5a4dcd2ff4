// Package report serializes analysis results as schema-validated JSON and a
// self-contained HTML page.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/deck"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/enhance"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/schemas"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

// Export is the complete serializable outcome of a run. Analysis-only runs
// carry just the report; enhancement runs add the diff, change log, and skips.
type Export struct {
	Source      string             `json:"source"`
	GeneratedAt time.Time          `json:"generated_at"`
	RunID       string             `json:"run_id,omitempty"`
	Report      *types.ScoreReport `json:"report"`

	Diff    *types.ReportDiff    `json:"diff,omitempty"`
	Changes []types.ChangeRecord `json:"changes,omitempty"`
	Skips   []enhance.Skip       `json:"skips,omitempty"`

	// UnsupportedImageCount is the number of embedded metafiles (WMF/EMF)
	// that could not be described and received fallback text.
	UnsupportedImageCount int `json:"unsupported_image_count"`
}

// CountUnsupportedImages returns how many pictures in the deck embed a
// metafile format.
func CountUnsupportedImages(p *deck.Presentation) int {
	count := 0
	for _, slide := range p.Slides() {
		for _, shape := range slide.Shapes() {
			pic, ok := shape.(*deck.PictureShape)
			if !ok {
				continue
			}
			if format, _ := pic.Image(); format.IsMetafile() {
				count++
			}
		}
	}
	return count
}

// WriteJSON serializes the export and validates it against the report schema
// before writing, so a malformed export never reaches disk.
func WriteJSON(w io.Writer, export *Export) error {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	if err := schemas.ValidateReport(data); err != nil {
		return fmt.Errorf("report does not conform to schema: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
