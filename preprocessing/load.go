package preprocessing

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Format names a dataset source encoding.
type Format string

const (
	FormatAuto  Format = ""
	FormatJSON  Format = "json"
	FormatGob   Format = "gob"
	FormatGTFS  Format = "gtfs"
	FormatDart  Format = "dart"
	FormatStops Format = "stops"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatJSON, FormatGob, FormatGTFS, FormatDart, FormatStops:
		return f, nil
	default:
		return "", fmt.Errorf("unknown dataset format %q (want json, stops, gob, gtfs or dart)", s)
	}
}

// DetectFormat guesses the format of path: a directory is GTFS, otherwise
// the file extension decides, defaulting to JSON. A JSON file whose top
// level is an array is a stop list.
func DetectFormat(path string) (Format, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat dataset %s: %w", path, err)
	}
	if info.IsDir() {
		return FormatGTFS, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gob":
		return FormatGob, nil
	case ".dart":
		return FormatDart, nil
	default:
		stops, err := isStopList(path)
		if err != nil {
			return "", err
		}
		if stops {
			return FormatStops, nil
		}
		return FormatJSON, nil
	}
}

type LoadOptions struct {
	Format     Format
	SplitLoops bool
}

// Load reads and validates the dataset at path.
func Load(path string, opts LoadOptions) (Dataset, error) {
	start := time.Now()
	format := opts.Format
	if format == FormatAuto {
		f, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	var (
		d   Dataset
		err error
	)
	switch format {
	case FormatJSON:
		d, err = LoadJSON(path)
	case FormatGob:
		d, err = LoadSnapshot(path)
	case FormatGTFS:
		d, err = LoadGTFSDataset(path)
	case FormatDart:
		d, err = LoadDart(path)
	case FormatStops:
		d, err = LoadStops(path)
	default:
		return nil, fmt.Errorf("unknown dataset format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if opts.SplitLoops {
		d = SplitLoops(d)
	}
	if err := d.Validate(path); err != nil {
		return nil, err
	}

	log.Printf("Loaded %d lines (%d stops) from %s [%s] in %v",
		len(d), d.StopCount(), path, format, time.Since(start))
	return d, nil
}
