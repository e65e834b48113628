package genealogy

import (
	"reflect"
	"testing"

	"github.com/daimidata/daimidata/pkg/names"
	"github.com/daimidata/daimidata/pkg/phd"
)

func intp(v int) *int { return &v }

func rec(name, supervisors string, year *int) phd.Record {
	return phd.Record{Name: name, Supervisors: supervisors, Year: year}
}

func TestBuildEdgeCountMatchesParsedSupervisors(t *testing.T) {
	records := []phd.Record{
		rec("A", "", intp(1980)),
		rec("B", "A", intp(1990)),
		rec("C", "A and B", intp(1995)),
		rec("D", "A, B og C", intp(2000)),
	}
	g := Build(records, names.Default())

	// Edge total equals the sum of parsed supervisor names per record: 0+1+2+3
	if got := g.EdgeCount(); got != 6 {
		t.Errorf("EdgeCount = %d, want 6", got)
	}
	if got := g.SupervisorCount(); got != 3 {
		t.Errorf("SupervisorCount = %d, want 3", got)
	}
}

func TestBuildNormalizesVariantsToOneNode(t *testing.T) {
	// Two alias spellings of the same supervisor must land on one node.
	records := []phd.Record{
		rec("X", "Ivan Damgaard", intp(2000)),
		rec("Y", "Ivan Damgård", intp(2005)),
	}
	g := Build(records, names.Default())

	if got := g.SupervisorCount(); got != 1 {
		t.Fatalf("SupervisorCount = %d, want 1 (variants should merge)", got)
	}
	students := g.Students("Ivan Bjerre Damgård")
	if len(students) != 2 {
		t.Errorf("canonical node has %d students, want 2", len(students))
	}
}

func TestBuildAdjacencyPreservesRecordOrder(t *testing.T) {
	records := []phd.Record{
		rec("B", "A", intp(1990)),
		rec("C", "A", intp(1985)),
		rec("D", "A", intp(1995)),
	}
	g := Build(records, names.Default())

	var got []string
	for _, st := range g.Students("A") {
		got = append(got, st.Name)
	}
	if !reflect.DeepEqual(got, []string{"B", "C", "D"}) {
		t.Errorf("adjacency order = %v, want input record order", got)
	}
}

func TestRoots(t *testing.T) {
	records := []phd.Record{
		rec("B", "A", intp(1990)),
		rec("C", "B", intp(2000)),
	}
	g := Build(records, names.Default())

	if got := g.Roots(); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("Roots = %v, want [A]", got)
	}
	if g.IsKnownStudent("A") {
		t.Error("A appears only as supervisor, should not be a known student")
	}
	if !g.IsSupervisor("B") || !g.IsKnownStudent("B") {
		t.Error("B should be both supervisor and known student")
	}
}

func TestEmptySupervisorFieldYieldsNoEdges(t *testing.T) {
	records := []phd.Record{rec("A", "   ", intp(1975))}
	g := Build(records, names.Default())

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0", g.EdgeCount())
	}
	if !g.IsKnownStudent("A") {
		t.Error("candidate without supervisors is still a known person")
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", g.NodeCount())
	}
}
