package routing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceSymmetricAndZero(t *testing.T) {
	points := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 39.905975, Lon: 41.256332},
		{Lat: 39.951605, Lon: 41.310482},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 89.9, Lon: -179.9},
	}
	for _, a := range points {
		assert.Zero(t, Distance(a, a), "distance of %v to itself", a)
		for _, b := range points {
			assert.Equal(t, Distance(a, b), Distance(b, a), "%v <-> %v", a, b)
			if a != b {
				assert.Greater(t, Distance(a, b), 0.0)
			}
		}
	}
}

func TestDistanceOneDegreeOfLatitude(t *testing.T) {
	want := EarthRadiusMeters * math.Pi / 180
	assert.InDelta(t, want, Distance(Coordinate{0, 0}, Coordinate{1, 0}), 1e-6)
}

func TestDistanceKnownPair(t *testing.T) {
	// the two example endpoints in Erzurum are roughly 6.9 km apart
	d := Distance(Coordinate{39.905975, 41.256332}, Coordinate{39.951605, 41.310482})
	assert.InDelta(t, 6860.27, d, 0.01)
}

func TestCoordinateValidate(t *testing.T) {
	tests := []struct {
		name  string
		c     Coordinate
		field string
	}{
		{"valid", Coordinate{39.9, 41.2}, ""},
		{"poles and antimeridian", Coordinate{-90, 180}, ""},
		{"lat too large", Coordinate{90.5, 0}, "lat"},
		{"lon too small", Coordinate{0, -180.01}, "lon"},
		{"lat nan", Coordinate{math.NaN(), 0}, "lat"},
		{"lon inf", Coordinate{0, math.Inf(1)}, "lon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ie *InputError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.field, ie.Field)
			assert.True(t, IsInputError(err))
		})
	}
}
