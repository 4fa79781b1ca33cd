package routing

// Summary aggregates the totals of a route.
type Summary struct {
	TotalDistanceM float64  `json:"totalDistanceM"`
	WalkDistanceM  float64  `json:"walkDistanceM"`
	BusDistanceM   float64  `json:"busDistanceM"`
	Transfers      int      `json:"transfers"`
	Lines          []string `json:"lines"`
}

// Summarize totals the segments of a route. Transfers counts changes from
// one bus line to another, with or without a walk in between.
func Summarize(segments []Segment) Summary {
	s := Summary{Lines: []string{}}
	lastLine := ""
	for _, seg := range segments {
		s.TotalDistanceM += seg.DistanceMeters
		switch seg.Mode {
		case Walk:
			s.WalkDistanceM += seg.DistanceMeters
		case Bus:
			s.BusDistanceM += seg.DistanceMeters
			if lastLine != "" && seg.Line != lastLine {
				s.Transfers++
			}
			lastLine = seg.Line
			s.Lines = append(s.Lines, seg.Line)
		}
	}
	return s
}
