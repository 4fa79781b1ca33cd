package preprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"bus-route-server/routing"
)

type GTFSStop struct {
	ID   string
	Name string
	routing.Coordinate
}

type GTFSStopTime struct {
	TripID       string
	StopID       string
	StopSequence int
}

type GTFSTrip struct {
	ID          string
	RouteID     string
	DirectionID int // 0/1
}

type GTFSIndex struct {
	StopsByID       map[string]GTFSStop
	TripsByID       map[string]GTFSTrip
	StopTimesByTrip map[string][]GTFSStopTime   // sorted by StopSequence asc
	RouteTripsByDir map[string]map[int][]string // route_id -> dir -> []trip_id
}

// LoadGTFS builds an in-memory index from a GTFS directory.
// Required files: stops.txt, trips.txt, stop_times.txt
func LoadGTFS(dir string) (*GTFSIndex, error) {
	idx := &GTFSIndex{
		StopsByID:       make(map[string]GTFSStop),
		TripsByID:       make(map[string]GTFSTrip),
		StopTimesByTrip: make(map[string][]GTFSStopTime),
		RouteTripsByDir: make(map[string]map[int][]string),
	}

	if err := readCSV(filepath.Join(dir, "stops.txt"), idx.addStop); err != nil {
		return nil, err
	}
	if err := readCSV(filepath.Join(dir, "trips.txt"), idx.addTrip); err != nil {
		return nil, err
	}
	if err := readCSV(filepath.Join(dir, "stop_times.txt"), idx.addStopTime); err != nil {
		return nil, err
	}

	for tripID, st := range idx.StopTimesByTrip {
		sort.SliceStable(st, func(i, j int) bool { return st[i].StopSequence < st[j].StopSequence })
		idx.StopTimesByTrip[tripID] = st
	}
	return idx, nil
}

// csvRow looks up a column of the current row by header name.
type csvRow func(column string) string

// readCSV calls fn for every data row of a headered CSV file. row is the
// 1-based data row number, used in error messages.
func readCSV(path string, fn func(path string, row int, get csvRow) error) error {
	name := filepath.Base(path)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read %s header: %w", name, err)
	}
	h := headerIndex(header)

	for n := 1; ; n++ {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s row: %w", name, err)
		}
		get := func(k string) string {
			i, ok := h[k]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if err := fn(path, n, get); err != nil {
			return err
		}
	}
}

func headerIndex(hdr []string) map[string]int {
	m := make(map[string]int, len(hdr))
	for i, k := range hdr {
		// stops.txt exported from spreadsheets often starts with a BOM
		m[strings.TrimPrefix(strings.TrimSpace(k), "\ufeff")] = i
	}
	return m
}

func (idx *GTFSIndex) addStop(path string, row int, get csvRow) error {
	id := get("stop_id")
	if id == "" {
		return nil
	}
	lat, err := strconv.ParseFloat(get("stop_lat"), 64)
	if err != nil {
		return &DatasetError{Source: path, Line: id, Index: row, Reason: "bad stop_lat: " + err.Error()}
	}
	lon, err := strconv.ParseFloat(get("stop_lon"), 64)
	if err != nil {
		return &DatasetError{Source: path, Line: id, Index: row, Reason: "bad stop_lon: " + err.Error()}
	}
	idx.StopsByID[id] = GTFSStop{
		ID:         id,
		Name:       get("stop_name"),
		Coordinate: routing.Coordinate{Lat: lat, Lon: lon},
	}
	return nil
}

func (idx *GTFSIndex) addTrip(path string, row int, get csvRow) error {
	trip := GTFSTrip{
		ID:      get("trip_id"),
		RouteID: get("route_id"),
	}
	if trip.ID == "" {
		return nil
	}
	if v := get("direction_id"); v != "" {
		dir, err := strconv.Atoi(v)
		if err != nil {
			return &DatasetError{Source: path, Line: trip.ID, Index: row, Reason: "bad direction_id: " + err.Error()}
		}
		trip.DirectionID = dir
	}

	idx.TripsByID[trip.ID] = trip
	if _, ok := idx.RouteTripsByDir[trip.RouteID]; !ok {
		idx.RouteTripsByDir[trip.RouteID] = map[int][]string{}
	}
	idx.RouteTripsByDir[trip.RouteID][trip.DirectionID] =
		append(idx.RouteTripsByDir[trip.RouteID][trip.DirectionID], trip.ID)
	return nil
}

func (idx *GTFSIndex) addStopTime(path string, row int, get csvRow) error {
	tripID := get("trip_id")
	stopID := get("stop_id")
	if tripID == "" || stopID == "" {
		return nil
	}
	seq, err := strconv.Atoi(get("stop_sequence"))
	if err != nil {
		return &DatasetError{Source: path, Line: tripID, Index: row, Reason: "bad stop_sequence: " + err.Error()}
	}
	idx.StopTimesByTrip[tripID] = append(idx.StopTimesByTrip[tripID], GTFSStopTime{
		TripID:       tripID,
		StopID:       stopID,
		StopSequence: seq,
	})
	return nil
}

// CanonicalTrip picks the trip of a route and direction with the longest
// stop list, the most complete stop pattern. Ties go to the smaller trip id.
func (idx *GTFSIndex) CanonicalTrip(routeID string, direction int) (string, error) {
	tripIDs := idx.RouteTripsByDir[routeID][direction]
	if len(tripIDs) == 0 {
		return "", fmt.Errorf("no trips for route_id=%s direction_id=%d", routeID, direction)
	}

	var best string
	bestLen := 0
	for _, tID := range tripIDs {
		n := len(idx.StopTimesByTrip[tID])
		if n > bestLen || (n == bestLen && n > 0 && tID < best) {
			bestLen = n
			best = tID
		}
	}
	if best == "" {
		return "", fmt.Errorf("no trip of route_id=%s direction_id=%d has stop_times", routeID, direction)
	}
	return best, nil
}

// Lines turns the index into a dataset with one line per route and
// direction, named "<route_id>-<direction_id>".
func (idx *GTFSIndex) Lines() Dataset {
	d := make(Dataset)
	routes := make([]string, 0, len(idx.RouteTripsByDir))
	for r := range idx.RouteTripsByDir {
		routes = append(routes, r)
	}
	sort.Strings(routes)

	for _, routeID := range routes {
		dirs := make([]int, 0, 2)
		for dir := range idx.RouteTripsByDir[routeID] {
			dirs = append(dirs, dir)
		}
		sort.Ints(dirs)

		for _, dir := range dirs {
			tripID, err := idx.CanonicalTrip(routeID, dir)
			if err != nil {
				log.Printf("WARNING: skipping route %s: %v", routeID, err)
				continue
			}
			var stops []routing.Coordinate
			for _, st := range idx.StopTimesByTrip[tripID] {
				s, ok := idx.StopsByID[st.StopID]
				if !ok {
					log.Printf("WARNING: trip %s references unknown stop %s", tripID, st.StopID)
					continue
				}
				stops = append(stops, s.Coordinate)
			}
			d[fmt.Sprintf("%s-%d", routeID, dir)] = stops
		}
	}
	return d
}

// LoadGTFSDataset loads a GTFS directory straight into a dataset.
func LoadGTFSDataset(dir string) (Dataset, error) {
	idx, err := LoadGTFS(dir)
	if err != nil {
		return nil, err
	}
	log.Printf("GTFS index: %d stops, %d trips, %d routes",
		len(idx.StopsByID), len(idx.TripsByID), len(idx.RouteTripsByDir))
	return idx.Lines(), nil
}
