package graph

// Options controls graph construction.
type Options struct {
	// Collapse replaces level nodes with direct writer to reader edges.
	Collapse bool
	// SkipTypes lists infrastructure types that get no component node.
	SkipTypes []string
	// Roles lists the ancestor types that give a component its role, in
	// priority order along the base chain.
	Roles []string
	// DefaultRole is used when no ancestor is in Roles.
	DefaultRole string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		SkipTypes:   []string{"cComponentManager", "cDataMemory"},
		Roles:       []string{"cDataSource", "cDataSink", "cDataProcessor"},
		DefaultRole: "generic",
	}
}
