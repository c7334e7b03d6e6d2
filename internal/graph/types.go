package graph

import (
	"github.com/vk/pipeconf/internal/dag"
	"github.com/vk/pipeconf/internal/model"
)

// NodeKind distinguishes component nodes from level nodes.
type NodeKind string

const (
	NodeComponent NodeKind = "component"
	NodeLevel     NodeKind = "level"
)

// EdgeKind classifies an edge by the relationship it represents.
type EdgeKind string

const (
	// EdgeRead runs from a level to a component that reads it.
	EdgeRead EdgeKind = "read"
	// EdgeWrite runs from a component to a level it writes.
	EdgeWrite EdgeKind = "write"
	// EdgeDataflow runs from writer to reader through a collapsed level.
	EdgeDataflow EdgeKind = "dataflow"
	// EdgeMessage runs from a sender to a message target.
	EdgeMessage EdgeKind = "message"
)

// Display shapes and classes.
const (
	ShapeRect    = "rect"
	ShapeEllipse = "ellipse"

	ClassComponent = "component"
	ClassLevel     = "level"
	ClassMessages  = "messages"

	ArrowheadDefault  = "arrowhead"
	ArrowheadMessages = "arrowheadMessages"
)

// Node is a vertex of the dependency graph.
type Node struct {
	ID    string
	Kind  NodeKind
	Label string
	Shape string
	Class string

	// Component nodes only.
	Instance   string
	TypeName   string
	Role       string
	Definition *model.SectionHeader

	// Level nodes only.
	Level    string
	Readers  []string
	Writers  []string
	Orphaned bool
}

// Edge is a directed relationship between two nodes.
type Edge struct {
	From           string
	To             string
	Kind           EdgeKind
	Label          string
	Class          string
	ArrowheadClass string
}

// Name identifies the edge among parallel edges between the same nodes.
func (e *Edge) Name() string {
	if e.Label == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ":" + e.Label
}

// Graph is a built dependency graph. It is read-only once Build returns.
type Graph struct {
	store     *dag.Graph[*Node, *Edge]
	collapsed bool
}

func newGraph(collapsed bool) *Graph {
	return &Graph{store: dag.New[*Node, *Edge](), collapsed: collapsed}
}

// Collapsed reports whether level nodes were elided.
func (g *Graph) Collapsed() bool {
	return g.collapsed
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	return g.store.Node(id)
}

// Nodes returns every node, components first in instance order, then
// levels in the order they were first referenced.
func (g *Graph) Nodes() []*Node {
	ids := g.store.Nodes()
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		n, _ := g.store.Node(id)
		out = append(out, n)
	}
	return out
}

// NodesOf returns the nodes of one kind.
func (g *Graph) NodesOf(kind NodeKind) []*Node {
	var out []*Node
	for _, n := range g.Nodes() {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns every edge in insertion order.
func (g *Graph) Edges() []*Edge {
	edges := g.store.Edges()
	out := make([]*Edge, len(edges))
	for i, e := range edges {
		out[i] = e.Value
	}
	return out
}

// EdgesFrom returns the edges leaving id.
func (g *Graph) EdgesFrom(id string) []*Edge {
	edges, err := g.store.OutEdges(id)
	if err != nil {
		return nil
	}
	out := make([]*Edge, len(edges))
	for i, e := range edges {
		out[i] = e.Value
	}
	return out
}

// EdgesTo returns the edges entering id.
func (g *Graph) EdgesTo(id string) []*Edge {
	edges, err := g.store.InEdges(id)
	if err != nil {
		return nil
	}
	out := make([]*Edge, len(edges))
	for i, e := range edges {
		out[i] = e.Value
	}
	return out
}

// DataflowCycle reports the first cycle formed by dataflow through levels,
// ignoring message edges. It returns nil when the data path is acyclic.
func (g *Graph) DataflowCycle() *dag.CycleError {
	err := g.store.DetectCycles(func(e dag.Edge[*Edge]) bool {
		return e.Value.Kind != EdgeMessage
	})
	if err == nil {
		return nil
	}
	cycleErr, _ := err.(*dag.CycleError)
	return cycleErr
}

// ComponentID is the node ID of an instance.
func ComponentID(instance string) string {
	return "component_" + instance
}

// LevelID is the node ID of a level.
func LevelID(level string) string {
	return "level_" + level
}
