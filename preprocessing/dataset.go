package preprocessing

import (
	"fmt"
	"sort"

	"bus-route-server/routing"
)

// Dataset maps a line id to its ordered stop coordinates.
type Dataset map[string][]routing.Coordinate

// DatasetError reports a malformed entry in a dataset source. Index is the
// stop position within Line, or -1 when the problem is the line itself.
type DatasetError struct {
	Source string
	Line   string
	Index  int
	Reason string
}

func (e *DatasetError) Error() string {
	switch {
	case e.Line == "" && e.Index < 0:
		return fmt.Sprintf("%s: %s", e.Source, e.Reason)
	case e.Index < 0:
		return fmt.Sprintf("%s: line %q: %s", e.Source, e.Line, e.Reason)
	default:
		return fmt.Sprintf("%s: line %q stop %d: %s", e.Source, e.Line, e.Index, e.Reason)
	}
}

// LineIDs returns the line ids in ascending order.
func (d Dataset) LineIDs() []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (d Dataset) StopCount() int {
	n := 0
	for _, stops := range d {
		n += len(stops)
	}
	return n
}

// Validate checks every line id and stop coordinate. Lines with fewer than
// two stops are accepted; they simply contribute no edges.
func (d Dataset) Validate(source string) error {
	if len(d) == 0 {
		return &DatasetError{Source: source, Index: -1, Reason: "no lines"}
	}
	for _, id := range d.LineIDs() {
		if id == "" {
			return &DatasetError{Source: source, Index: -1, Reason: "empty line id"}
		}
		for i, c := range d[id] {
			if err := c.Validate(); err != nil {
				return &DatasetError{Source: source, Line: id, Index: i, Reason: err.Error()}
			}
		}
	}
	return nil
}
