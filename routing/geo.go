package routing

import (
	"fmt"
	"math"
)

// EarthRadiusMeters is the sphere radius every distance in the engine is
// computed with.
const EarthRadiusMeters = 6371000.0

// Coordinate is a WGS84 position in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lon)
}

// Validate reports an *InputError when c cannot be placed on the globe.
func (c Coordinate) Validate() error {
	switch {
	case math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0):
		return &InputError{Field: "lat", Value: c.Lat, Reason: "not a finite number"}
	case math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0):
		return &InputError{Field: "lon", Value: c.Lon, Reason: "not a finite number"}
	case c.Lat < -90 || c.Lat > 90:
		return &InputError{Field: "lat", Value: c.Lat, Reason: "outside [-90, 90]"}
	case c.Lon < -180 || c.Lon > 180:
		return &InputError{Field: "lon", Value: c.Lon, Reason: "outside [-180, 180]"}
	}
	return nil
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Distance returns the haversine great-circle distance between a and b in
// meters.
func Distance(a, b Coordinate) float64 {
	phi1 := toRadians(a.Lat)
	phi2 := toRadians(b.Lat)
	deltaPhi := toRadians(b.Lat - a.Lat)
	deltaLambda := toRadians(b.Lon - a.Lon)

	x := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	if x > 1 {
		x = 1
	}
	c := 2 * math.Atan2(math.Sqrt(x), math.Sqrt(1-x))

	return EarthRadiusMeters * c
}

// latitudeSpan converts a ground distance into the latitude band that must
// contain every point within that distance. Haversine distance is never
// smaller than R*|dPhi|, so the band is a sound filter.
func latitudeSpan(meters float64) float64 {
	return meters / EarthRadiusMeters * 180 / math.Pi
}
