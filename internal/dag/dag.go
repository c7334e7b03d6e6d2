package dag

import (
	"fmt"
	"strings"
)

// New creates and returns an initialized, empty Graph.
func New[N, E any]() *Graph[N, E] {
	return &Graph[N, E]{
		nodes: make(map[string]*node[N, E]),
		byKey: make(map[edgeKey]*Edge[E]),
	}
}

// AddNode adds a new node with the given ID and payload. If a node with
// the same ID already exists, the function does nothing and returns false.
func (g *Graph[N, E]) AddNode(id string, value N) bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return false
	}

	g.nodes[id] = &node[N, E]{id: id, value: value}
	g.order = append(g.order, id)
	return true
}

// HasNode reports whether id is in the graph.
func (g *Graph[N, E]) HasNode(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	_, ok := g.nodes[id]
	return ok
}

// Node returns the payload of node id.
func (g *Graph[N, E]) Node(id string) (N, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		var zero N
		return zero, false
	}
	return n.value, true
}

// Nodes returns node IDs in insertion order.
func (g *Graph[N, E]) Nodes() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node
// named name. Adding an edge whose triple already exists replaces its
// payload and keeps its position. An error is returned if either node does
// not exist.
func (g *Graph[N, E]) AddEdge(fromID, toID, name string, value E) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	key := edgeKey{from: fromID, to: toID, name: name}
	if e, ok := g.byKey[key]; ok {
		e.Value = value
		return nil
	}

	e := &Edge[E]{From: fromID, To: toID, Name: name, Value: value}
	g.byKey[key] = e
	g.edges = append(g.edges, e)
	fromNode.out = append(fromNode.out, e)
	toNode.in = append(toNode.in, e)

	return nil
}

// Edges returns a copy of every edge in insertion order.
func (g *Graph[N, E]) Edges() []Edge[E] {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return copyEdges(g.edges)
}

// OutEdges returns the edges leaving id.
func (g *Graph[N, E]) OutEdges(id string) ([]Edge[E], error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return copyEdges(n.out), nil
}

// InEdges returns the edges entering id.
func (g *Graph[N, E]) InEdges(id string) ([]Edge[E], error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return copyEdges(n.in), nil
}

// Dependencies returns the distinct IDs with an edge into id.
func (g *Graph[N, E]) Dependencies(id string) ([]string, error) {
	in, err := g.InEdges(id)
	if err != nil {
		return nil, err
	}
	return distinct(in, func(e Edge[E]) string { return e.From }), nil
}

// Dependents returns the distinct IDs id has an edge to.
func (g *Graph[N, E]) Dependents(id string) ([]string, error) {
	out, err := g.OutEdges(id)
	if err != nil {
		return nil, err
	}
	return distinct(out, func(e Edge[E]) string { return e.To }), nil
}

// CycleError describes a cycle found by DetectCycles.
type CycleError struct {
	// Path lists the nodes on the cycle, starting and ending with the same ID.
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected involving node '%s' (%s)", e.Path[0], strings.Join(e.Path, " -> "))
}

// DetectCycles checks the subgraph formed by the edges keep accepts for
// cycles. A nil keep accepts every edge. It returns a *CycleError for the
// first cycle found, visiting nodes in insertion order.
func (g *Graph[N, E]) DetectCycles(keep func(Edge[E]) bool) error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Use classic depth-first search with three sets of nodes:
	// permanent: nodes that have been fully visited and are not part of a cycle.
	// temporary: nodes currently in the recursion stack for the current traversal.
	// unvisited: all other nodes.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)
	var stack []string

	var visit func(n *node[N, E]) error
	visit = func(n *node[N, E]) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return &CycleError{Path: cyclePath(stack, n.id)}
		}

		temporary[n.id] = true
		stack = append(stack, n.id)

		for _, e := range n.out {
			if keep != nil && !keep(*e) {
				continue
			}
			if err := visit(g.nodes[e.To]); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(temporary, n.id)
		permanent[n.id] = true
		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}
	return nil
}

func cyclePath(stack []string, closing string) []string {
	for i, id := range stack {
		if id == closing {
			path := append([]string{}, stack[i:]...)
			return append(path, closing)
		}
	}
	return []string{closing, closing}
}

func copyEdges[E any](in []*Edge[E]) []Edge[E] {
	out := make([]Edge[E], len(in))
	for i, e := range in {
		out[i] = *e
	}
	return out
}

func distinct[E any](edges []Edge[E], pick func(Edge[E]) string) []string {
	seen := make(map[string]bool, len(edges))
	var out []string
	for _, e := range edges {
		id := pick(e)
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
