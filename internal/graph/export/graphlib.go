package export

import (
	"github.com/vk/pipeconf/internal/graph"
)

// Graphlib is the JSON graph exchange format read by graphlib-based layout
// engines: `{"options":{...},"nodes":[{"v","value"}],"edges":[{"v","w","name","value"}],"value":{...}}`.
type Graphlib struct {
	Options GraphlibOptions `json:"options" yaml:"options"`
	Nodes   []GraphlibNode  `json:"nodes" yaml:"nodes"`
	Edges   []GraphlibEdge  `json:"edges" yaml:"edges"`
	Value   GraphLabel      `json:"value" yaml:"value"`
}

type GraphlibOptions struct {
	Directed   bool `json:"directed" yaml:"directed"`
	Multigraph bool `json:"multigraph" yaml:"multigraph"`
	Compound   bool `json:"compound" yaml:"compound"`
}

// GraphLabel carries graph-wide layout hints.
type GraphLabel struct {
	RankDir string `json:"rankdir,omitempty" yaml:"rankdir,omitempty"`
}

type GraphlibNode struct {
	V     string    `json:"v" yaml:"v"`
	Value NodeLabel `json:"value" yaml:"value"`
}

type NodeLabel struct {
	Label      string    `json:"label" yaml:"label"`
	Shape      string    `json:"shape" yaml:"shape"`
	Class      string    `json:"class" yaml:"class"`
	Orphaned   bool      `json:"orphaned,omitempty" yaml:"orphaned,omitempty"`
	Definition *Location `json:"definition,omitempty" yaml:"definition,omitempty"`
}

// Location points at the section header that defines a component.
type Location struct {
	Path  string `json:"path" yaml:"path"`
	Line  int    `json:"line" yaml:"line"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
}

type GraphlibEdge struct {
	V     string    `json:"v" yaml:"v"`
	W     string    `json:"w" yaml:"w"`
	Name  string    `json:"name,omitempty" yaml:"name,omitempty"`
	Value EdgeLabel `json:"value" yaml:"value"`
}

type EdgeLabel struct {
	Label          string `json:"label,omitempty" yaml:"label,omitempty"`
	Class          string `json:"class,omitempty" yaml:"class,omitempty"`
	ArrowheadClass string `json:"arrowheadClass,omitempty" yaml:"arrowheadClass,omitempty"`
}

// NodeClass returns the display classes of n, space separated. Component
// nodes add their role to the base class.
func NodeClass(n *graph.Node) string {
	if n.Kind == graph.NodeComponent && n.Role != "" {
		return n.Class + " " + n.Role
	}
	if n.Orphaned {
		return n.Class + " orphaned"
	}
	return n.Class
}

// FromGraph converts g into graphlib form.
func FromGraph(g *graph.Graph, rankDir string) Graphlib {
	out := Graphlib{
		Options: GraphlibOptions{Directed: true, Multigraph: true},
		Nodes:   []GraphlibNode{},
		Edges:   []GraphlibEdge{},
		Value:   GraphLabel{RankDir: rankDir},
	}
	for _, n := range g.Nodes() {
		label := NodeLabel{
			Label:    n.Label,
			Shape:    n.Shape,
			Class:    NodeClass(n),
			Orphaned: n.Orphaned,
		}
		if d := n.Definition; d != nil {
			label.Definition = &Location{
				Path:  d.Path(),
				Line:  d.Line,
				Start: d.InstanceSpan.Start,
				End:   d.InstanceSpan.End,
			}
		}
		out.Nodes = append(out.Nodes, GraphlibNode{V: n.ID, Value: label})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, GraphlibEdge{
			V:    e.From,
			W:    e.To,
			Name: e.Name(),
			Value: EdgeLabel{
				Label:          e.Label,
				Class:          e.Class,
				ArrowheadClass: e.ArrowheadClass,
			},
		})
	}
	return out
}
