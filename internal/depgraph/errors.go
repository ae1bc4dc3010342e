package depgraph

import (
	"fmt"
	"strings"
)

// CycleError reports that registering a formula would create a circular
// reference. It is an expected validation outcome, not an internal failure:
// the owning system surfaces it to whoever edited the formula.
type CycleError struct {
	// Field is the field whose registration was rejected.
	Field string
	// Path is the loop the registration would have closed, starting and
	// ending at Field, e.g. ["A", "B", "C", "A"].
	Path []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("circular reference: %s", strings.Join(e.Path, " -> "))
}
