package preprocessing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"bus-route-server/routing"
)

// reverseSuffix names the reversed variant of a line built from stops.
const reverseSuffix = "Ters"

// stopRecord is one entry of all_stops.json. Coordinates arrive as numbers
// or numeric strings.
type stopRecord struct {
	StopID   string          `json:"stopId"`
	StopName string          `json:"stopName"`
	Lat      json.RawMessage `json:"lat"`
	Lng      json.RawMessage `json:"lng"`
	Routes   []string        `json:"routes"`
}

func parseStopNumber(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, fmt.Errorf("missing value")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	return strconv.ParseFloat(string(raw), 64)
}

// DecodeStops reads a stop-centric all_stops.json document:
//
//	[{"stopId": "12", "stopName": "Meydan", "lat": "39.90", "lng": "41.26", "routes": ["K7", "B3"]}, ...]
//
// Each route becomes a line made of the stops listing it, in file order,
// plus a reversed "<route>Ters" line.
func DecodeStops(r io.Reader, source string) (Dataset, error) {
	var records []stopRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse stops JSON from %s: %w", source, err)
	}

	d := Dataset{}
	for i, rec := range records {
		lat, err := parseStopNumber(rec.Lat)
		if err != nil {
			return nil, &DatasetError{Source: source, Index: -1,
				Reason: fmt.Sprintf("stop record %d (id %q): bad lat: %v", i, rec.StopID, err)}
		}
		lng, err := parseStopNumber(rec.Lng)
		if err != nil {
			return nil, &DatasetError{Source: source, Index: -1,
				Reason: fmt.Sprintf("stop record %d (id %q): bad lng: %v", i, rec.StopID, err)}
		}

		seen := make(map[string]bool, len(rec.Routes))
		for _, route := range rec.Routes {
			if route == "" || seen[route] {
				continue
			}
			seen[route] = true
			d[route] = append(d[route], routing.Coordinate{Lat: lat, Lon: lng})
		}
	}

	for _, id := range d.LineIDs() {
		reversed := id + reverseSuffix
		if _, clash := d[reversed]; clash {
			return nil, &DatasetError{Source: source, Line: reversed, Index: -1,
				Reason: "reversed line name collides with a route"}
		}
		stops := d[id]
		rev := make([]routing.Coordinate, len(stops))
		for i, c := range stops {
			rev[len(stops)-1-i] = c
		}
		d[reversed] = rev
	}
	return d, nil
}

func LoadStops(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stops file %s: %w", path, err)
	}
	defer f.Close()
	return DecodeStops(f, path)
}

// isStopList reports whether the JSON file at path holds a top-level array,
// the all_stops.json shape; bus_lines.json is an object.
func isStopList(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	head := bytes.TrimLeft(buf[:n], "\ufeff \t\r\n")
	return len(head) > 0 && head[0] == '[', nil
}
