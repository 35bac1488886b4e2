package course

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for lookups against an empty graph or unknown nodes.
var ErrNotFound = errors.New("course: node not found")

// UnreachableError reports that no path exists between two nodes.
// It is distinct from generic errors so callers can handle disconnected
// topology explicitly instead of silently picking an arbitrary path.
type UnreachableError struct {
	From NodeID
	To   NodeID
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("course: no path from node %d to node %d", e.From, e.To)
}
