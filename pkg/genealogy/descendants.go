package genealogy

import "maps"

// Descendants returns the set of every person transitively reachable from
// name via supervision edges.
//
// Visited tracking is path-local: each branch carries its own snapshot of
// the nodes already on its path, so a node reachable through several
// independent routes is still found (the result set deduplicates), while a
// route that would re-enter its own path is cut off. This is what makes
// the computation terminate on cycles and keeps the origin out of its own
// descendant set: for edges A->B->C->A, Descendants("A") is exactly {B, C}.
//
// The traversal is iterative with an explicit stack. Worst-case cost is
// exponential on dense cyclic inputs, which is acceptable at the dataset's
// scale (a few hundred nodes, tree-like in practice).
func (g *Graph) Descendants(name string) map[string]bool {
	type frame struct {
		node    string
		visited map[string]bool // snapshot of nodes on this branch's path
	}

	result := make(map[string]bool)
	stack := []frame{{node: name, visited: map[string]bool{name: true}}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, st := range g.adj[f.node] {
			if f.visited[st.Name] {
				continue
			}
			result[st.Name] = true
			branch := maps.Clone(f.visited)
			branch[st.Name] = true
			stack = append(stack, frame{node: st.Name, visited: branch})
		}
	}

	return result
}

// DescendantCounts returns the descendant-set size for every supervisor
// with at least one descendant, keyed by name. Iterate g.Supervisors() for
// a deterministic order.
func (g *Graph) DescendantCounts() map[string]int {
	counts := make(map[string]int)
	for _, supervisor := range g.supervisors {
		if n := len(g.Descendants(supervisor)); n > 0 {
			counts[supervisor] = n
		}
	}
	return counts
}
