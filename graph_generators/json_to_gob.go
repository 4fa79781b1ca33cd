package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"bus-route-server/preprocessing"
)

// defaultOutputPath swaps the input's extension for .gob.
func defaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)
	return filepath.Join(filepath.Dir(inputPath), base+".gob")
}

func convertJSONToGOB(inputPath, outputPath string, splitLoops bool) error {
	lines, err := preprocessing.Load(inputPath, preprocessing.LoadOptions{
		Format:     preprocessing.FormatJSON,
		SplitLoops: splitLoops,
	})
	if err != nil {
		return err
	}

	if err := preprocessing.SaveSnapshot(outputPath, lines); err != nil {
		return err
	}

	fmt.Printf("Successfully converted %s to %s\n", inputPath, outputPath)
	fmt.Printf("Lines: %d, Stops: %d\n", len(lines), lines.StopCount())
	return nil
}

func main() {
	var splitLoops bool
	pflag.BoolVar(&splitLoops, "split-loops", false, "Split out-and-back lines before writing the snapshot")
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: json_to_gob [--split-loops] <bus_lines.json> [output.gob]")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() < 1 {
		pflag.Usage()
		os.Exit(1)
	}

	inputPath := pflag.Arg(0)
	outputPath := defaultOutputPath(inputPath)
	if pflag.NArg() > 1 {
		outputPath = pflag.Arg(1)
	}

	if err := convertJSONToGOB(inputPath, outputPath, splitLoops); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
