package dag

import "sync"

// Graph is a collection of nodes and named, directed edges.
// All operations on the graph are concurrency-safe.
type Graph[N, E any] struct {
	// mutex protects every field below during concurrent access.
	mutex sync.RWMutex
	// order records node IDs in insertion order.
	order []string
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node[N, E]
	// edges stores every edge in insertion order.
	edges []*Edge[E]
	// byKey indexes edges by their (from, to, name) triple.
	byKey map[edgeKey]*Edge[E]
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node[N, E any] struct {
	id    string
	value N
	// out holds edges leaving this node, in insertion order.
	out []*Edge[E]
	// in holds edges entering this node, in insertion order.
	in []*Edge[E]
}

// Edge is a directed edge. Name distinguishes parallel edges.
type Edge[E any] struct {
	From  string
	To    string
	Name  string
	Value E
}

type edgeKey struct {
	from, to, name string
}
