package models

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func (l Location) Point() orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}

// FeatureCollection renders a route as GeoJSON: a point for each endpoint
// and one feature per segment, a LineString, or a Point when the segment
// collapsed to a single stop.
func (r RouteResponse) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	origin := geojson.NewFeature(r.Origin.Point())
	origin.Properties["role"] = "origin"
	fc.Append(origin)

	for i, s := range r.Segments {
		var geom orb.Geometry
		if len(s.Coordinates) == 1 {
			geom = s.Coordinates[0].Point()
		} else {
			ls := make(orb.LineString, len(s.Coordinates))
			for j, c := range s.Coordinates {
				ls[j] = c.Point()
			}
			geom = ls
		}
		f := geojson.NewFeature(geom)
		f.Properties["role"] = "segment"
		f.Properties["index"] = i
		f.Properties["mode"] = string(s.Mode)
		f.Properties["distance_m"] = s.Distance
		if s.Line != "" {
			f.Properties["line"] = s.Line
		}
		fc.Append(f)
	}

	destination := geojson.NewFeature(r.Destination.Point())
	destination.Properties["role"] = "destination"
	fc.Append(destination)
	return fc
}
