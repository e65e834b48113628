package genealogy

import (
	"sort"
	"strings"
)

// Chain is a directed path of supervision edges: each consecutive pair in
// Path is supervisor -> student. Years runs parallel to Path; the first
// entry is nil when the seed's own defense year is unknown (root
// supervisors have none by definition).
type Chain struct {
	Path   []string `json:"path"`
	Years  []*int   `json:"years"`
	Length int      `json:"length"`
}

// key returns the dedup identity of a chain: the exact node sequence.
func (c Chain) key() string {
	return strings.Join(c.Path, "\x1f")
}

// Chains enumerates every supervision chain of length >= 2 in the graph,
// deduplicated by path, sorted by descending length (stable, so equal
// lengths keep discovery order).
//
// Traversal is seeded from root supervisors and from every person who is
// both a student and a supervisor. From each seed, a depth-first walk
// extends the path one edge at a time, recording every prefix of length
// >= 2 as a chain. A student is only entered if they are a known candidate
// in the dataset and not already on the current path; the path-local
// visited check is what guarantees termination on cyclic or self-referential
// data. The walk uses an explicit stack, so pathological inputs cannot
// overflow the goroutine stack.
func (g *Graph) Chains() []Chain {
	var chains []Chain
	seen := make(map[string]bool)

	emit := func(path []string, years []*int) {
		c := Chain{
			Path:   append([]string(nil), path...),
			Years:  append([]*int(nil), years...),
			Length: len(path),
		}
		if k := c.key(); !seen[k] {
			seen[k] = true
			chains = append(chains, c)
		}
	}

	for _, root := range g.Roots() {
		g.walk(root, nil, emit)
	}
	for _, person := range g.Reentrants() {
		g.walk(person, g.years[person], emit)
	}

	sort.SliceStable(chains, func(i, j int) bool {
		return chains[i].Length > chains[j].Length
	})
	return chains
}

// walk runs an iterative depth-first traversal from seed, invoking emit for
// every path extension of length >= 2. frame i corresponds to path[i]; the
// two structures grow and shrink together.
func (g *Graph) walk(seed string, seedYear *int, emit func(path []string, years []*int)) {
	type frame struct {
		node string
		next int // index of the next adjacency entry to try
	}

	path := []string{seed}
	years := []*int{seedYear}
	onPath := map[string]bool{seed: true}
	stack := []frame{{node: seed}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		students := g.adj[top.node]

		if top.next >= len(students) {
			onPath[top.node] = false
			stack = stack[:len(stack)-1]
			path = path[:len(path)-1]
			years = years[:len(years)-1]
			continue
		}

		st := students[top.next]
		top.next++

		// Only extend into recorded candidates, and never back into the
		// current path. The prefix up to here was already emitted, so a
		// pruned revisit loses nothing.
		if onPath[st.Name] || !g.known[st.Name] {
			continue
		}

		path = append(path, st.Name)
		years = append(years, st.Year)
		onPath[st.Name] = true
		emit(path, years)
		stack = append(stack, frame{node: st.Name})
	}
}
