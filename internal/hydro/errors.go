package hydro

import (
	"fmt"
	"strings"
)

// IncompleteContextError reports that a segment is missing inputs the
// solvers need. The caller keeps whatever results it already has.
type IncompleteContextError struct {
	Missing []string
}

func (e *IncompleteContextError) Error() string {
	return "incomplete context: missing " + strings.Join(e.Missing, ", ")
}

// InvalidGeometryError reports a non-positive dimension: velocity and
// Reynolds-number calculations are withheld until the user fixes it.
type InvalidGeometryError struct {
	Field string
	Value float64
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: %s = %g", e.Field, e.Value)
}
