// Package deck loads PowerPoint presentations into an addressable tree of
// slides, shapes, and text runs, and re-serializes them wholesale on export.
package deck

import "fmt"

// OpenError represents a document-level failure: the file cannot be read or
// parsed at all. It is surfaced before any analysis begins.
type OpenError struct {
	Path    string
	Message string
	Cause   error
}

func (e *OpenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to open presentation %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to open presentation %s: %s", e.Path, e.Message)
}

func (e *OpenError) Unwrap() error {
	return e.Cause
}

// PartError represents a failure reading or writing a single package part.
type PartError struct {
	Part    string
	Message string
	Cause   error
}

func (e *PartError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("package part %s: %s: %v", e.Part, e.Message, e.Cause)
	}
	return fmt.Sprintf("package part %s: %s", e.Part, e.Message)
}

func (e *PartError) Unwrap() error {
	return e.Cause
}
