// Package genealogy builds and traverses the supervision graph derived
// from the dissertation records.
//
// The graph is directed (supervisor -> student) and rebuilt fresh from the
// full record list on every run; nothing is mutated after Build returns.
// Because supervisor fields are noisy free text, the graph may contain
// self-loops, cycles, and disconnected components. All traversals guard
// against those with path-local visited sets, so they terminate on any
// finite input.
package genealogy

import (
	"github.com/daimidata/daimidata/pkg/names"
	"github.com/daimidata/daimidata/pkg/phd"
)

// Student is one supervision edge target: a student together with the year
// of their defense (nil when the date was unparseable).
type Student struct {
	Name string `json:"name"`
	Year *int   `json:"year"`
}

// Graph is the supervision graph. Adjacency lists preserve record order,
// which carries no meaning beyond stable tie-breaking in derived output.
type Graph struct {
	adj         map[string][]Student
	supervisors []string // supervisor keys in first-appearance order
	known       map[string]bool
	supervised  map[string]bool
	years       map[string]*int
}

// Build constructs the supervision graph from records. Candidate and
// supervisor names are normalized with norm before they become nodes, so
// every spelling variant collapses onto one node. A record with an empty
// supervisor field contributes no edges but its candidate is still a known
// person.
func Build(records []phd.Record, norm *names.Normalizer) *Graph {
	g := &Graph{
		adj:        make(map[string][]Student),
		known:      make(map[string]bool),
		supervised: make(map[string]bool),
		years:      make(map[string]*int),
	}

	for _, r := range records {
		student := norm.Normalize(r.Name)
		g.known[student] = true
		g.years[student] = r.Year

		for _, raw := range names.ParseSupervisors(r.Supervisors) {
			supervisor := norm.Normalize(raw)
			if _, seen := g.adj[supervisor]; !seen {
				g.supervisors = append(g.supervisors, supervisor)
			}
			g.adj[supervisor] = append(g.adj[supervisor], Student{Name: student, Year: r.Year})
			g.supervised[student] = true
		}
	}

	return g
}

// Supervisors returns all supervisor names in first-appearance order.
func (g *Graph) Supervisors() []string {
	return g.supervisors
}

// Students returns the adjacency list for a supervisor, in record order.
// Returns nil for a person with no outgoing edges.
func (g *Graph) Students(supervisor string) []Student {
	return g.adj[supervisor]
}

// IsSupervisor reports whether name has at least one outgoing edge.
func (g *Graph) IsSupervisor(name string) bool {
	return len(g.adj[name]) > 0
}

// IsKnownStudent reports whether name appears as a candidate in the
// dataset. Names that only ever show up in supervisor fields are not
// known students.
func (g *Graph) IsKnownStudent(name string) bool {
	return g.known[name]
}

// Year returns the defense year recorded for a known student, or nil.
func (g *Graph) Year(name string) *int {
	return g.years[name]
}

// Roots returns supervisors that were never themselves supervised within
// the dataset, in first-appearance order.
func (g *Graph) Roots() []string {
	var roots []string
	for _, s := range g.supervisors {
		if !g.supervised[s] {
			roots = append(roots, s)
		}
	}
	return roots
}

// Reentrants returns every person that is both a known student and a
// supervisor, in supervisor first-appearance order. Chains are also seeded
// from these nodes so sub-chains starting mid-tree are surfaced.
func (g *Graph) Reentrants() []string {
	var out []string
	for _, s := range g.supervisors {
		if g.known[s] {
			out = append(out, s)
		}
	}
	return out
}

// NodeCount returns the number of distinct persons in the graph: everyone
// who appears as a candidate or as a supervisor.
func (g *Graph) NodeCount() int {
	seen := make(map[string]bool, len(g.known))
	for name := range g.known {
		seen[name] = true
	}
	for _, s := range g.supervisors {
		seen[s] = true
	}
	return len(seen)
}

// EdgeCount returns the total number of supervision edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, students := range g.adj {
		n += len(students)
	}
	return n
}

// SupervisorCount returns the number of distinct supervisors.
func (g *Graph) SupervisorCount() int {
	return len(g.supervisors)
}
