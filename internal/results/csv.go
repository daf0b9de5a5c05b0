package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// PageSize is the number of records per page when reading result files.
const PageSize = 10

// CSVStore appends records to one CSV file per mode under a directory.
// Each line is: timestamp,modeName,value
type CSVStore struct {
	dir string
}

// NewCSVStore stores files under dir; a leading ~ expands to the home directory.
func NewCSVStore(dir string) (*CSVStore, error) {
	dir, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	return &CSVStore{dir: dir}, nil
}

// Dir returns the resolved directory.
func (s *CSVStore) Dir() string {
	return s.dir
}

// Path returns the file a mode's records go to.
func (s *CSVStore) Path(stem string) string {
	return filepath.Join(s.dir, stem+".csv")
}

// Save appends one line for rec. Failed records are skipped so the file
// only holds rankable results.
func (s *CSVStore) Save(rec Record) error {
	if !rec.Ranked() {
		return nil
	}
	if rec.File == "" {
		return fmt.Errorf("results: record for mode %q has no file", rec.Mode)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("results: cannot create directory %s: %w", s.dir, err)
	}

	path := s.Path(rec.File)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("results: cannot open %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	//nolint:errcheck // error surfaced by w.Error below
	w.Write([]string{rec.At.Format(TimestampLayout), rec.ModeName, rec.Value()})
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("results: cannot write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("results: cannot close %s: %w", path, err)
	}
	return nil
}

// ReadPage returns page (1-based) of a mode's records in file order,
// PageSize at a time. A page past the end yields the last PageSize records.
// A missing file is not an error.
func (s *CSVStore) ReadPage(stem string, timed bool, page int) ([]Record, error) {
	all, err := s.ReadAll(stem, timed)
	if err != nil || len(all) == 0 {
		return nil, err
	}

	page = max(page, 1)
	start := (page - 1) * PageSize
	if start >= len(all) {
		start = max(len(all)-PageSize, 0)
	}
	end := min(start+PageSize, len(all))
	return all[start:end], nil
}

// ReadAll returns every record of a mode in file order.
func (s *CSVStore) ReadAll(stem string, timed bool) ([]Record, error) {
	path := s.Path(stem)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("results: cannot open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3

	var out []Record
	for line := 1; ; line++ {
		fields, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("results: %s line %d: %w", path, line, err)
		}
		rec, err := parseFields(fields, stem, timed)
		if err != nil {
			return nil, fmt.Errorf("results: %s line %d: %w", path, line, err)
		}
		out = append(out, rec)
	}
}

func parseFields(fields []string, stem string, timed bool) (Record, error) {
	at, err := time.ParseInLocation(TimestampLayout, fields[0], time.Local)
	if err != nil {
		return Record{}, fmt.Errorf("bad timestamp %q: %w", fields[0], err)
	}
	rec := Record{At: at, ModeName: fields[1], File: stem, Timed: timed}

	if timed {
		secs, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return Record{}, fmt.Errorf("bad time %q: %w", fields[2], err)
		}
		rec.Elapsed = time.Duration(secs * float64(time.Second))
		return rec, nil
	}

	score, err := strconv.Atoi(fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("bad score %q: %w", fields[2], err)
	}
	rec.Score = score
	return rec, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("results: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
