package sink

import (
	"strings"
	"testing"

	"github.com/daimidata/daimidata/pkg/genealogy"
	"github.com/daimidata/daimidata/pkg/names"
	"github.com/daimidata/daimidata/pkg/phd"
	"github.com/daimidata/daimidata/pkg/report"
)

func intp(v int) *int { return &v }

func testAnalysis(t *testing.T) (*report.Analysis, *genealogy.Graph) {
	t.Helper()
	records := []phd.Record{
		{Number: 1, Name: "Anna Holm", Supervisors: "Brian Mayoh", Date: "1988-06-01", Year: intp(1988), Title: "Graph Rewriting"},
		{Number: 2, Name: "Carl Berg", Supervisors: "Anna Holm", Date: "1995-03-15", Year: intp(1995), Title: "Type Systems"},
		{Number: 3, Name: "Dina Skov", Supervisors: "Anna Holm", Date: "2001-11-02", Year: intp(2001), Title: "Model Checking"},
	}
	g := genealogy.Build(records, names.Default())
	a := report.Assemble(records, g, g.Chains(), g.DescendantCounts(), report.Options{})
	return a, g
}

func TestWriteHTML(t *testing.T) {
	a, _ := testAnalysis(t)

	var sb strings.Builder
	if err := WriteHTML(a, &sb); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}
	page := sb.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"ph.d.-statistik",
		`"Anna Holm"`,
		`"total_phds":3`,
		"Brian Mayoh",
		a.ID,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
	if strings.Contains(page, "[[") {
		t.Error("rendered page contains unexpanded template delimiters")
	}
}

func TestMarshalHTMLEscapesScriptClose(t *testing.T) {
	a, _ := testAnalysis(t)
	a.FirstPhDs[0].Title = "On </script> injection"

	data, err := MarshalHTML(a)
	if err != nil {
		t.Fatalf("MarshalHTML() error = %v", err)
	}
	if strings.Contains(string(data), "</script> injection") {
		t.Error("script close sequence not escaped in panel payload")
	}
	if !strings.Contains(string(data), `\u003c/script> injection`) {
		t.Error("expected escaped script close sequence")
	}
}

func TestToDOT(t *testing.T) {
	_, g := testAnalysis(t)

	dot := ToDOT(g)
	for _, want := range []string{
		"digraph supervision",
		`"Brian Mayoh" -> "Anna Holm"`,
		`"Anna Holm" -> "Carl Berg"`,
		`label="1995"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	a, _ := testAnalysis(t)

	data, err := MarshalJSON(a)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if !strings.Contains(string(data), `"total_phds": 3`) {
		t.Errorf("JSON output missing stats:\n%s", data)
	}
}
