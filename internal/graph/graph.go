// Package graph holds a read-only snapshot of type relationships and
// renders it for debugging.
package graph

import "sort"

// EdgeKind distinguishes the relationships drawn between nodes.
type EdgeKind int

const (
	// Dependency is a constructor dependency, labelled with its position.
	Dependency EdgeKind = iota

	// Parent links a type to the type it extends.
	Parent
)

func (k EdgeKind) String() string {
	switch k {
	case Dependency:
		return "dependency"
	case Parent:
		return "parent"
	default:
		return "unknown"
	}
}

// Node represents a type in the graph.
type Node struct {
	Name         string
	Singleton    bool
	Constructed  bool
	Interceptors int
}

// Edge is a directed relationship between two nodes.
type Edge struct {
	From     string
	To       string
	Kind     EdgeKind
	Position int
}

// Graph is a set of named nodes and the edges between them.
type Graph struct {
	nodes map[string]*Node
	edges []Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode adds or replaces a node.
func (g *Graph) AddNode(n Node) {
	node := n
	g.nodes[n.Name] = &node
}

// AddEdge adds an edge, creating bare nodes for unknown endpoints.
func (g *Graph) AddEdge(from, to string, kind EdgeKind, position int) {
	for _, name := range []string{from, to} {
		if _, ok := g.nodes[name]; !ok {
			g.nodes[name] = &Node{Name: name}
		}
	}
	g.edges = append(g.edges, Edge{From: from, To: to, Kind: kind, Position: position})
}

// Nodes returns the nodes sorted by name.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Name < nodes[j].Name
	})
	return nodes
}

// Edges returns the edges sorted by source, kind and position.
func (g *Graph) Edges() []Edge {
	edges := append([]Edge(nil), g.edges...)
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].Kind != edges[j].Kind {
			return edges[i].Kind < edges[j].Kind
		}
		return edges[i].Position < edges[j].Position
	})
	return edges
}

// Leaves returns the names of nodes without outgoing dependency edges.
func (g *Graph) Leaves() []string {
	hasDeps := make(map[string]bool)
	for _, e := range g.edges {
		if e.Kind == Dependency {
			hasDeps[e.From] = true
		}
	}

	var leaves []string
	for _, n := range g.Nodes() {
		if !hasDeps[n.Name] {
			leaves = append(leaves, n.Name)
		}
	}
	return leaves
}
