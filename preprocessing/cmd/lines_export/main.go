package main

import (
	"fmt"
	"log"

	"github.com/spf13/pflag"

	"bus-route-server/preprocessing"
)

func main() {
	var (
		in         string
		out        string
		format     string
		splitLoops bool
	)
	pflag.StringVarP(&in, "in", "i", "data", "GTFS directory, Dart polyline file or bus_lines.json to read")
	pflag.StringVarP(&out, "out", "o", "data/bus_lines.json", "Path to write bus_lines.json")
	pflag.StringVarP(&format, "format", "f", "", "Input format: json, stops, gob, gtfs or dart (detected when empty)")
	pflag.BoolVar(&splitLoops, "split-loops", false, "Split out-and-back lines into Gidis/Donus halves")
	pflag.Parse()

	f, err := preprocessing.ParseFormat(format)
	if err != nil {
		log.Fatalf("invalid --format: %v", err)
	}

	log.Printf("Loading lines from %s...", in)
	d, err := preprocessing.Load(in, preprocessing.LoadOptions{Format: f, SplitLoops: splitLoops})
	if err != nil {
		log.Fatalf("failed to load lines: %v", err)
	}

	if err := preprocessing.SaveJSON(out, d); err != nil {
		log.Fatalf("failed to write lines: %v", err)
	}

	inert := 0
	for _, stops := range d {
		if len(stops) < 2 {
			inert++
		}
	}
	fmt.Printf("Lines written to %s\n", out)
	fmt.Printf("Summary: lines=%d stops=%d inert=%d\n", len(d), d.StopCount(), inert)
}
