package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]Segment{
		{Mode: Walk, DistanceMeters: 100},
		{Mode: Bus, Line: "A", DistanceMeters: 2000},
		{Mode: Walk, DistanceMeters: 50},
		{Mode: Bus, Line: "B", DistanceMeters: 1000},
		{Mode: Bus, Line: "B", DistanceMeters: 10},
	})
	assert.InDelta(t, 3160, s.TotalDistanceM, 1e-9)
	assert.InDelta(t, 150, s.WalkDistanceM, 1e-9)
	assert.InDelta(t, 3010, s.BusDistanceM, 1e-9)
	assert.Equal(t, 1, s.Transfers)
	assert.Equal(t, []string{"A", "B", "B"}, s.Lines)

	assert.Equal(t, Summary{Lines: []string{}}, Summarize(nil))
}
