// Package sink renders an assembled Analysis into static artifacts:
// a JSON document, a self-contained interactive HTML page, and DOT/SVG/PNG
// visualizations of the supervision graph.
package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/daimidata/daimidata/pkg/report"
)

// MarshalJSON renders the analysis as indented JSON bytes.
func MarshalJSON(a *report.Analysis) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(a, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON encodes the analysis as indented JSON to w.
func WriteJSON(a *report.Analysis, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	return nil
}

// ReadJSONFile reads an analysis document written by WriteJSON.
func ReadJSONFile(path string) (*report.Analysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var a report.Analysis
	if err := json.NewDecoder(f).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &a, nil
}
