package models

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus-route-server/routing"
)

func TestParseLocation(t *testing.T) {
	l, err := ParseLocation("39.905975, 41.256332")
	require.NoError(t, err)
	assert.Equal(t, Location{Latitude: 39.905975, Longitude: 41.256332}, l)

	for _, bad := range []string{"", "39.9", "39.9,41.2,0", "north,41.2", "39.9,east"} {
		_, err := ParseLocation(bad)
		assert.Error(t, err, bad)
	}
}

func TestModeFromRouting(t *testing.T) {
	assert.Equal(t, Walking, ModeFromRouting(routing.Walk))
	assert.Equal(t, Bus, ModeFromRouting(routing.Bus))
	assert.Equal(t, Unknown, ModeFromRouting(routing.Mode(99)))
}

func samplePlan() *routing.Plan {
	return &routing.Plan{
		Segments: []routing.Segment{
			{Mode: routing.Walk, Coordinates: []routing.Coordinate{{Lat: 0, Lon: 0}}, DistanceMeters: 111},
			{Mode: routing.Bus, Line: "A", Coordinates: []routing.Coordinate{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.01}}, DistanceMeters: 1112},
		},
		Cost:     1300,
		Explored: 7,
	}
}

func TestNewRouteResponse(t *testing.T) {
	origin := Location{Latitude: 0.001, Longitude: 0}
	dest := Location{Latitude: 0, Longitude: 0.01}
	resp := NewRouteResponse(origin, dest, samplePlan())

	assert.True(t, resp.Found)
	require.Len(t, resp.Segments, 2)
	assert.Equal(t, Walking, resp.Segments[0].Mode)
	assert.Equal(t, Location{}, resp.Segments[0].Origin)
	assert.Equal(t, Location{Latitude: 0, Longitude: 0.01}, resp.Segments[1].Destination)
	assert.Equal(t, "A", resp.Segments[1].Line)
	assert.InDelta(t, 1223, resp.Summary.TotalDistanceM, 1e-9)
	assert.Equal(t, 7, resp.Explored)

	empty := NewRouteResponse(origin, dest, &routing.Plan{Segments: []routing.Segment{}})
	assert.False(t, empty.Found)
	body, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"segments":[]`)
}

func TestFeatureCollection(t *testing.T) {
	resp := NewRouteResponse(Location{Latitude: 0.001}, Location{Longitude: 0.01}, samplePlan())
	fc := resp.FeatureCollection()

	require.Len(t, fc.Features, 4)
	assert.Equal(t, "origin", fc.Features[0].Properties["role"])
	assert.Equal(t, orb.Point{0, 0.001}, fc.Features[0].Geometry)

	assert.Equal(t, orb.Point{0, 0}, fc.Features[1].Geometry, "single stop segment")
	assert.Equal(t, "walk", fc.Features[1].Properties["mode"])

	assert.Equal(t, orb.LineString{{0, 0}, {0.01, 0}}, fc.Features[2].Geometry)
	assert.Equal(t, "A", fc.Features[2].Properties["line"])
	assert.Equal(t, "destination", fc.Features[3].Properties["role"])

	_, err := fc.MarshalJSON()
	assert.NoError(t, err)
}
