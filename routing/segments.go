package routing

// Segment is a maximal run of path edges sharing one mode and, for bus
// runs, one line. Consecutive segments share their boundary coordinate.
type Segment struct {
	Mode           Mode         `json:"mode"`
	Line           string       `json:"line,omitempty"`
	Coordinates    []Coordinate `json:"coordinates"`
	DistanceMeters float64      `json:"distanceMeters"`
}

type segmentRun struct {
	mode     Mode
	line     string
	nodes    []NodeID
	distance float64
}

func edgeLine(e Edge) string {
	if be, ok := e.(BusEdge); ok {
		return be.Line
	}
	return ""
}

// extractSegments groups a reconstructed path into segments. Portal
// coordinates are dropped unless that would leave a segment empty. A
// trailing walking segment no longer than trimWalkM is dropped when other
// segments remain; trimWalkM 0 keeps every run. The leading walk is always
// kept.
func extractSegments(g *overlay, path []pathEdge, trimWalkM float64) []Segment {
	var runs []segmentRun
	for _, pe := range path {
		mode, line := pe.Edge.Mode(), edgeLine(pe.Edge)
		if n := len(runs); n > 0 && runs[n-1].mode == mode && runs[n-1].line == line {
			runs[n-1].nodes = append(runs[n-1].nodes, pe.Edge.Target())
			runs[n-1].distance += pe.Edge.Distance()
			continue
		}
		runs = append(runs, segmentRun{
			mode:     mode,
			line:     line,
			nodes:    []NodeID{pe.From, pe.Edge.Target()},
			distance: pe.Edge.Distance(),
		})
	}

	if n := len(runs); trimWalkM > 0 && n > 1 && runs[n-1].mode == Walk && runs[n-1].distance <= trimWalkM {
		runs = runs[:n-1]
	}

	segments := make([]Segment, 0, len(runs))
	for _, r := range runs {
		coords := make([]Coordinate, 0, len(r.nodes))
		for _, id := range r.nodes {
			if !g.isPortal(id) {
				coords = append(coords, g.coordinate(id))
			}
		}
		if len(coords) == 0 {
			for _, id := range r.nodes {
				coords = append(coords, g.coordinate(id))
			}
		}
		segments = append(segments, Segment{
			Mode:           r.mode,
			Line:           r.line,
			Coordinates:    coords,
			DistanceMeters: r.distance,
		})
	}
	return segments
}
