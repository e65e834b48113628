package report

import (
	"reflect"
	"testing"

	"github.com/daimidata/daimidata/pkg/genealogy"
	"github.com/daimidata/daimidata/pkg/names"
	"github.com/daimidata/daimidata/pkg/phd"
)

func intp(v int) *int { return &v }

func rec(name, supervisors string, year *int) phd.Record {
	return phd.Record{Name: name, Supervisors: supervisors, Year: year}
}

func analyze(records []phd.Record, opts Options) *Analysis {
	g := genealogy.Build(records, names.Default())
	return Assemble(records, g, g.Chains(), g.DescendantCounts(), opts)
}

func TestFirstRecordsChronological(t *testing.T) {
	records := []phd.Record{
		rec("C", "", intp(1990)),
		rec("A", "", intp(1975)),
		rec("NoYear", "", nil),
		rec("B", "", intp(1975)),
	}
	a := analyze(records, Options{FirstN: 3})

	var got []string
	for _, r := range a.FirstPhDs {
		got = append(got, r.Name)
	}
	// 1975 ties break on name; missing year sorts last and is cut off
	if !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("FirstPhDs = %v, want [A B C]", got)
	}
}

func TestMissingYearSortsLast(t *testing.T) {
	records := []phd.Record{
		rec("NoYear", "", nil),
		rec("A", "", intp(2000)),
	}
	a := analyze(records, Options{FirstN: 10})

	if a.FirstPhDs[len(a.FirstPhDs)-1].Name != "NoYear" {
		t.Errorf("record without year should sort last: %+v", a.FirstPhDs)
	}
}

func TestTopSupervisorsRanking(t *testing.T) {
	// A:5, B:5, C:3; both A and B must make top-2, deterministically A first.
	var records []phd.Record
	students := 0
	addStudents := func(supervisor string, n int) {
		for i := 0; i < n; i++ {
			students++
			records = append(records, rec(string(rune('a'+students)), supervisor, intp(1990+students)))
		}
	}
	addStudents("C", 3)
	addStudents("A", 5)
	addStudents("B", 5)

	a := analyze(records, Options{TopSupervisors: 2})

	if len(a.TopSupervisors) != 2 {
		t.Fatalf("got %d supervisors, want 2", len(a.TopSupervisors))
	}
	// Equal counts tie-break on name ascending
	if a.TopSupervisors[0].Name != "A" || a.TopSupervisors[1].Name != "B" {
		t.Errorf("TopSupervisors = %+v, want A then B", a.TopSupervisors)
	}
	if a.TopSupervisors[0].Count != 5 {
		t.Errorf("Count = %d, want 5", a.TopSupervisors[0].Count)
	}
}

func TestTopDescendantsRanking(t *testing.T) {
	records := []phd.Record{
		rec("B", "A", intp(1980)),
		rec("C", "B", intp(1990)),
		rec("D", "C", intp(2000)),
		rec("F", "E", intp(1995)),
	}
	a := analyze(records, Options{TopDescendants: 2})

	want := []DescendantCount{
		{Name: "A", Descendants: 3},
		{Name: "B", Descendants: 2},
	}
	if !reflect.DeepEqual(a.TopDescendants, want) {
		t.Errorf("TopDescendants = %+v, want %+v", a.TopDescendants, want)
	}
}

func TestLongestChainsTruncated(t *testing.T) {
	records := []phd.Record{
		rec("B", "A", intp(1980)),
		rec("C", "B", intp(1990)),
		rec("D", "C", intp(2000)),
	}
	a := analyze(records, Options{TopChains: 1})

	if len(a.LongestChains) != 1 {
		t.Fatalf("got %d chains, want 1", len(a.LongestChains))
	}
	if !reflect.DeepEqual(a.LongestChains[0].Path, []string{"A", "B", "C", "D"}) {
		t.Errorf("longest chain = %v", a.LongestChains[0].Path)
	}
}

func TestStats(t *testing.T) {
	records := []phd.Record{
		rec("B", "A", intp(1971)),
		rec("C", "A og B", intp(2024)),
		rec("NoYear", "", nil),
	}
	a := analyze(records, Options{})

	if a.Stats.TotalPhDs != 3 {
		t.Errorf("TotalPhDs = %d, want 3", a.Stats.TotalPhDs)
	}
	if a.Stats.TotalSupervisors != 2 {
		t.Errorf("TotalSupervisors = %d, want 2", a.Stats.TotalSupervisors)
	}
	if a.Stats.YearSpan != "1971-2024" {
		t.Errorf("YearSpan = %q, want 1971-2024", a.Stats.YearSpan)
	}
}

func TestStatsNoYears(t *testing.T) {
	a := analyze([]phd.Record{rec("A", "", nil)}, Options{})
	if a.Stats.YearSpan != "" {
		t.Errorf("YearSpan = %q, want empty", a.Stats.YearSpan)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	records := []phd.Record{
		rec("B", "A", intp(1980)),
		rec("C", "A", intp(1990)),
		rec("D", "B", intp(2000)),
	}
	g := genealogy.Build(records, names.Default())

	a1 := Assemble(records, g, g.Chains(), g.DescendantCounts(), Options{})
	a2 := Assemble(records, g, g.Chains(), g.DescendantCounts(), Options{})

	if !reflect.DeepEqual(a1.TopSupervisors, a2.TopSupervisors) {
		t.Error("TopSupervisors not deterministic")
	}
	if !reflect.DeepEqual(a1.LongestChains, a2.LongestChains) {
		t.Error("LongestChains not deterministic")
	}
	if !reflect.DeepEqual(a1.TopDescendants, a2.TopDescendants) {
		t.Error("TopDescendants not deterministic")
	}
}

func TestAssembleDoesNotMutateInput(t *testing.T) {
	records := []phd.Record{
		rec("Z", "", intp(2000)),
		rec("A", "", intp(1990)),
	}
	analyze(records, Options{})

	if records[0].Name != "Z" || records[1].Name != "A" {
		t.Error("Assemble must not reorder the input slice")
	}
}
