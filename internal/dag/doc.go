// Package dag is a small directed multigraph store used to hold the
// dependency graph of a pipeline configuration.
//
// Nodes and edges carry caller-defined payloads. Nodes keep insertion
// order, so anything rendered from the graph is deterministic. Parallel
// edges between the same pair of nodes are told apart by a name; adding an
// edge with an existing (from, to, name) triple replaces its payload.
//
// Cycles are permitted. DetectCycles reports them on the subset of edges a
// caller selects.
package dag
