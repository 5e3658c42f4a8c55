package graph

import (
	"fmt"
	"io"
	"strings"
)

// Visualizer provides methods to visualize the graph
type Visualizer struct {
	graph *Graph
}

// NewVisualizer creates a new graph visualizer
func NewVisualizer(graph *Graph) *Visualizer {
	return &Visualizer{graph: graph}
}

// WriteDOT writes the graph in Graphviz DOT format. Dependency edges are
// solid and labelled with the argument position; parent edges are dashed.
func (v *Visualizer) WriteDOT(w io.Writer) error {
	var b strings.Builder

	b.WriteString("digraph registry {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box];\n")

	ids := make(map[string]string)
	for i, node := range v.graph.Nodes() {
		id := fmt.Sprintf("n%d", i)
		ids[node.Name] = id
		fmt.Fprintf(&b, "  %s [label=%q, fillcolor=%q, style=filled];\n",
			id, v.formatNodeLabel(node), v.getNodeColor(node))
	}

	for _, e := range v.graph.Edges() {
		switch e.Kind {
		case Parent:
			fmt.Fprintf(&b, "  %s -> %s [style=dashed, label=\"extends\"];\n", ids[e.From], ids[e.To])
		default:
			fmt.Fprintf(&b, "  %s -> %s [label=\"%d\"];\n", ids[e.From], ids[e.To], e.Position)
		}
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteText writes an adjacency list, one line per node.
func (v *Visualizer) WriteText(w io.Writer) error {
	deps := make(map[string][]string)
	parents := make(map[string]string)
	for _, e := range v.graph.Edges() {
		if e.Kind == Parent {
			parents[e.From] = e.To
			continue
		}
		deps[e.From] = append(deps[e.From], e.To)
	}

	var b strings.Builder
	for _, node := range v.graph.Nodes() {
		fmt.Fprintf(&b, "%s -> [%s]", node.Name, strings.Join(deps[node.Name], ", "))
		if p, ok := parents[node.Name]; ok {
			fmt.Fprintf(&b, " extends %s", p)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// formatNodeLabel creates a label for a node
func (v *Visualizer) formatNodeLabel(node *Node) string {
	var flags []string
	if node.Singleton {
		flags = append(flags, "singleton")
	}
	if node.Interceptors > 0 {
		flags = append(flags, fmt.Sprintf("interceptors:%d", node.Interceptors))
	}

	if len(flags) == 0 {
		return node.Name
	}
	return node.Name + "\n" + strings.Join(flags, " ")
}

// getNodeColor determines the color for a node based on its properties
func (v *Visualizer) getNodeColor(node *Node) string {
	switch {
	case node.Singleton && node.Constructed:
		return "lightblue"
	case node.Singleton:
		return "lightcyan"
	case node.Interceptors > 0:
		return "lightyellow"
	default:
		return "white"
	}
}
