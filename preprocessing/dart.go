package preprocessing

import (
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"bus-route-server/routing"
)

var (
	dartListPattern   = regexp.MustCompile(`(?s)final\s+List<LatLng>\s+([A-Za-z0-9_]+)\s*=\s*\[(.*?)\];`)
	dartLatLngPattern = regexp.MustCompile(`LatLng\(([^,]+),\s*([^)]+)\)`)
	// direction suffixes carried by the generated variable names
	dartSuffixPattern = regexp.MustCompile(`(?i)dogru|donus|a$`)
)

// CleanLineName strips the direction markers from a polyline variable
// name, so "K6Dogru" becomes "K6".
func CleanLineName(name string) string {
	return dartSuffixPattern.ReplaceAllString(name, "")
}

// DecodeDart extracts every `final List<LatLng> Name = [LatLng(lat, lon), ...];`
// declaration. Declarations without coordinates are skipped; when two names
// clean to the same line id the later declaration wins.
func DecodeDart(r io.Reader, source string) (Dataset, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}

	d := make(Dataset)
	for _, m := range dartListPattern.FindAllStringSubmatch(string(body), -1) {
		name := m[1]
		var stops []routing.Coordinate
		for i, c := range dartLatLngPattern.FindAllStringSubmatch(m[2], -1) {
			lat, err := strconv.ParseFloat(strings.TrimSpace(c[1]), 64)
			if err != nil {
				return nil, &DatasetError{Source: source, Line: name, Index: i, Reason: "bad latitude " + strconv.Quote(c[1])}
			}
			lon, err := strconv.ParseFloat(strings.TrimSpace(c[2]), 64)
			if err != nil {
				return nil, &DatasetError{Source: source, Line: name, Index: i, Reason: "bad longitude " + strconv.Quote(c[2])}
			}
			stops = append(stops, routing.Coordinate{Lat: lat, Lon: lon})
		}
		if len(stops) == 0 {
			continue
		}

		id := CleanLineName(name)
		if id == "" {
			return nil, &DatasetError{Source: source, Line: name, Index: -1, Reason: "name is empty once direction markers are removed"}
		}
		if _, dup := d[id]; dup {
			log.Printf("WARNING: %s: %s replaces an earlier declaration of line %s", source, name, id)
		}
		d[id] = stops
	}
	return d, nil
}

func LoadDart(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Dart file %s: %w", path, err)
	}
	defer f.Close()
	return DecodeDart(f, path)
}
