package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/daimidata/daimidata/pkg/genealogy"
)

// ToDOT converts the supervision graph to Graphviz DOT format. Supervisors
// that were never themselves students are drawn with a filled box to make
// the roots of each academic family stand out. Edges are labeled with the
// student's defense year where known.
func ToDOT(g *genealogy.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph supervision {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	roots := make(map[string]bool)
	for _, r := range g.Roots() {
		roots[r] = true
	}

	seen := make(map[string]bool)
	node := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		if roots[name] {
			fmt.Fprintf(&buf, "  %q [style=\"rounded,filled\", fillcolor=lightblue];\n", name)
		} else {
			fmt.Fprintf(&buf, "  %q;\n", name)
		}
	}

	for _, supervisor := range g.Supervisors() {
		node(supervisor)
		for _, st := range g.Students(supervisor) {
			node(st.Name)
		}
	}

	buf.WriteString("\n")
	for _, supervisor := range g.Supervisors() {
		for _, st := range g.Students(supervisor) {
			if st.Year != nil {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q, fontsize=9];\n", supervisor, st.Name, fmt.Sprint(*st.Year))
			} else {
				fmt.Fprintf(&buf, "  %q -> %q;\n", supervisor, st.Name)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
