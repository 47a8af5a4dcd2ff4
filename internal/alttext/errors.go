package alttext

import "fmt"

// DescribeError reports that a picture could not be described after the
// configured number of attempts and the fallback text was used instead.
type DescribeError struct {
	ShapeID  string
	Attempts int
	Cause    error
}

func (e *DescribeError) Error() string {
	return fmt.Sprintf("describe %s: %d attempts failed: %v", e.ShapeID, e.Attempts, e.Cause)
}

func (e *DescribeError) Unwrap() error { return e.Cause }
