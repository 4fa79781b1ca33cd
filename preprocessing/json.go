package preprocessing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bus-route-server/routing"
)

// jsonLine is one entry of bus_lines.json. Stops are [lat, lon] pairs.
type jsonLine struct {
	Line  string       `json:"line,omitempty"`
	Stops [][]float64 `json:"stops"`
}

// DecodeJSON reads a bus_lines.json document:
//
//	{"K7": {"line": "K7", "stops": [[39.90, 41.26], ...]}, ...}
//
// A line may also be given as a bare array of pairs.
func DecodeJSON(r io.Reader, source string) (Dataset, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from %s: %w", source, err)
	}

	d := make(Dataset, len(raw))
	for id, msg := range raw {
		if id == "" {
			return nil, &DatasetError{Source: source, Index: -1, Reason: "empty line id"}
		}

		var pairs [][]float64
		trimmed := bytes.TrimSpace(msg)
		switch {
		case len(trimmed) > 0 && trimmed[0] == '[':
			if err := json.Unmarshal(trimmed, &pairs); err != nil {
				return nil, &DatasetError{Source: source, Line: id, Index: -1, Reason: err.Error()}
			}
		case len(trimmed) > 0 && trimmed[0] == '{':
			var entry jsonLine
			if err := json.Unmarshal(trimmed, &entry); err != nil {
				return nil, &DatasetError{Source: source, Line: id, Index: -1, Reason: err.Error()}
			}
			if entry.Stops == nil {
				return nil, &DatasetError{Source: source, Line: id, Index: -1, Reason: "missing stop list"}
			}
			pairs = entry.Stops
		default:
			return nil, &DatasetError{Source: source, Line: id, Index: -1, Reason: "expected an object or an array of stops"}
		}

		stops := make([]routing.Coordinate, 0, len(pairs))
		for i, p := range pairs {
			if len(p) != 2 {
				return nil, &DatasetError{Source: source, Line: id, Index: i,
					Reason: fmt.Sprintf("expected [lat, lon], got %d values", len(p))}
			}
			stops = append(stops, routing.Coordinate{Lat: p[0], Lon: p[1]})
		}
		d[id] = stops
	}
	return d, nil
}

func LoadJSON(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON file %s: %w", path, err)
	}
	defer f.Close()
	return DecodeJSON(f, path)
}

// EncodeJSON writes d in the object form DecodeJSON reads.
func EncodeJSON(w io.Writer, d Dataset) error {
	out := make(map[string]jsonLine, len(d))
	for id, stops := range d {
		pairs := make([][]float64, len(stops))
		for i, c := range stops {
			pairs[i] = []float64{c.Lat, c.Lon}
		}
		out[id] = jsonLine{Line: id, Stops: pairs}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func SaveJSON(path string, d Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file %s: %w", path, err)
	}
	if err := encodeAndClose(f, func(w io.Writer) error { return EncodeJSON(w, d) }); err != nil {
		return fmt.Errorf("failed to write JSON to %s: %w", path, err)
	}
	return nil
}
