package preprocessing

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const snapshotVersion = 1

type snapshot struct {
	Version int
	Lines   Dataset
}

// EncodeSnapshot writes d as a versioned gob stream.
func EncodeSnapshot(w io.Writer, d Dataset) error {
	return gob.NewEncoder(w).Encode(snapshot{Version: snapshotVersion, Lines: d})
}

func DecodeSnapshot(r io.Reader, source string) (Dataset, error) {
	var s snapshot
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode GOB from %s: %w", source, err)
	}
	if s.Version != snapshotVersion {
		return nil, &DatasetError{Source: source, Index: -1,
			Reason: fmt.Sprintf("snapshot version %d, want %d", s.Version, snapshotVersion)}
	}
	if s.Lines == nil {
		s.Lines = Dataset{}
	}
	return s.Lines, nil
}

func SaveSnapshot(path string, d Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create GOB file %s: %w", path, err)
	}
	if err := encodeAndClose(f, func(w io.Writer) error { return EncodeSnapshot(w, d) }); err != nil {
		return fmt.Errorf("failed to encode GOB to %s: %w", path, err)
	}
	return nil
}

// encodeAndClose runs encode on w and always closes it. A close failure
// is reported when encode succeeded, so a truncated file never passes as
// written.
func encodeAndClose(w io.WriteCloser, encode func(io.Writer) error) error {
	err := encode(w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

func LoadSnapshot(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open GOB file %s: %w", path, err)
	}
	defer f.Close()
	return DecodeSnapshot(f, path)
}
