package phd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func intp(v int) *int { return &v }

func TestRecordsRoundTrip(t *testing.T) {
	records := []Record{
		{Number: 1, Name: "Anders Andersen", Supervisors: "Mogens Nielsen", Date: "1975-06-01", Year: intp(1975), Title: "On Things"},
		{Number: 2, Name: "Bente Bentsen", Supervisors: "", DateRaw: "ukendt", Year: nil, Title: "Uden år"},
	}

	var buf bytes.Buffer
	if err := WriteRecords(records, &buf); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}

	got, err := ReadRecords(&buf)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].Name != "Anders Andersen" || *got[0].Year != 1975 {
		t.Errorf("first record mangled: %+v", got[0])
	}
	if got[1].Year != nil {
		t.Errorf("missing year should stay nil, got %v", *got[1].Year)
	}
}

func TestWriteRecordsDoesNotEscapeHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords([]Record{{Name: "A", Title: "P & NP"}}, &buf); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	if !strings.Contains(buf.String(), "P & NP") {
		t.Errorf("ampersand should not be escaped: %s", buf.String())
	}
}

func TestReadRecordsNullYear(t *testing.T) {
	in := `[{"number": 3, "name": "C", "supervisors": "A", "year": null, "title": "T"}]`
	got, err := ReadRecords(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if got[0].Year != nil {
		t.Error("null year should decode to nil")
	}
}

func TestRecordsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phds.json")
	records := []Record{{Number: 1, Name: "A", Year: intp(2000)}}

	if err := WriteRecordsFile(records, path); err != nil {
		t.Fatalf("WriteRecordsFile: %v", err)
	}
	got, err := ReadRecordsFile(path)
	if err != nil {
		t.Fatalf("ReadRecordsFile: %v", err)
	}
	if len(got) != 1 || got[0].Name != "A" {
		t.Errorf("round trip mangled records: %+v", got)
	}
}

func TestWriteRecordsFileCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "phd_data.json")
	records := []Record{{Number: 1, Name: "A"}}

	if err := WriteRecordsFile(records, path); err != nil {
		t.Fatalf("WriteRecordsFile: %v", err)
	}
	got, err := ReadRecordsFile(path)
	if err != nil {
		t.Fatalf("ReadRecordsFile: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d records, want 1", len(got))
	}
}

func TestReadRecordsFileMissing(t *testing.T) {
	if _, err := ReadRecordsFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
