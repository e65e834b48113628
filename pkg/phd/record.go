// Package phd defines the dissertation record shared by the fetch,
// analysis, and rendering stages, and its JSON persistence format.
package phd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Record is one row of the source table after date repair and name
// normalization. Records are treated as immutable once produced.
type Record struct {
	// Number is the running id from the first table column.
	// Zero when the cell doesn't hold a number.
	Number int `json:"number" bson:"number"`

	// Name is the candidate's name, normalized to canonical form.
	Name string `json:"name" bson:"name"`

	// Supervisors is the raw free-text supervisor field. Individual names
	// are extracted during graph construction, not here.
	Supervisors string `json:"supervisors" bson:"supervisors"`

	// DateRaw is the defense date exactly as published.
	DateRaw string `json:"date_raw,omitempty" bson:"date_raw,omitempty"`

	// Date is the ISO-normalized defense date (YYYY-MM-DD), or the repaired
	// raw string when it doesn't parse.
	Date string `json:"date,omitempty" bson:"date,omitempty"`

	// Year is the defense year, nil when the date was unparseable.
	Year *int `json:"year" bson:"year"`

	// Title is the dissertation title.
	Title string `json:"title" bson:"title"`
}

// ReadRecords decodes a JSON array of records from r.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

// ReadRecordsFile reads a records file written by WriteRecordsFile.
func ReadRecordsFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadRecords(f)
}

// WriteRecords encodes records as indented JSON to w.
func WriteRecords(records []Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return nil
}

// WriteRecordsFile writes records as JSON to path, creating parent
// directories as needed.
func WriteRecordsFile(records []Record, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteRecords(records, f)
}
