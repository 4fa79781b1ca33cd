package models

import (
	"fmt"
	"strconv"
	"strings"

	"bus-route-server/routing"
)

type Location struct {
	Latitude  float64 `json:"latitude" binding:"latitude"`
	Longitude float64 `json:"longitude" binding:"longitude"`
}

func LocationFromCoordinate(c routing.Coordinate) Location {
	return Location{Latitude: c.Lat, Longitude: c.Lon}
}

func (l Location) Coordinate() routing.Coordinate {
	return routing.Coordinate{Lat: l.Latitude, Lon: l.Longitude}
}

// ParseLocation reads a "lat,lon" query value.
func ParseLocation(s string) (Location, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Location{}, fmt.Errorf("expected \"lat,lon\", got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Location{}, fmt.Errorf("bad latitude %q: %w", parts[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Location{}, fmt.Errorf("bad longitude %q: %w", parts[1], err)
	}
	return Location{Latitude: lat, Longitude: lon}, nil
}
