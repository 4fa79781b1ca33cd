package models

import "bus-route-server/routing"

type RouteSegment struct {
	Mode        TransportMode `json:"mode"`
	Line        string        `json:"line,omitempty"`
	Origin      Location      `json:"origin"`
	Destination Location      `json:"destination"`
	Distance    float64       `json:"distance_m"`
	Coordinates []Location    `json:"coordinates"`
}

func NewRouteSegment(s routing.Segment) RouteSegment {
	coords := make([]Location, len(s.Coordinates))
	for i, c := range s.Coordinates {
		coords[i] = LocationFromCoordinate(c)
	}
	seg := RouteSegment{
		Mode:        ModeFromRouting(s.Mode),
		Line:        s.Line,
		Distance:    s.DistanceMeters,
		Coordinates: coords,
	}
	if len(coords) > 0 {
		seg.Origin = coords[0]
		seg.Destination = coords[len(coords)-1]
	}
	return seg
}
