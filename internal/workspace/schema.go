package workspace

// --- Workspace file schema ---
//
// Every attribute is optional. Pointer fields stay nil when the attribute
// is absent so that defaults survive a partial block.

// fileRoot is the top-level structure of a workspace file.
type fileRoot struct {
	Catalog *catalogBlock `hcl:"catalog,block"`
	Graph   *graphBlock   `hcl:"graph,block"`
	Layout  *layoutBlock  `hcl:"layout,block"`
	Check   *checkBlock   `hcl:"check,block"`
}

// catalogBlock locates the type catalog and configures discovery.
type catalogBlock struct {
	Path      *string           `hcl:"path,optional"`
	Tool      *string           `hcl:"tool,optional"`
	BaseTypes map[string]string `hcl:"base_types,optional"`
}

// graphBlock configures dependency graph construction and export.
type graphBlock struct {
	SkipTypes   *[]string `hcl:"skip_types,optional"`
	Roles       *[]string `hcl:"roles,optional"`
	DefaultRole *string   `hcl:"default_role,optional"`
	Collapse    *bool     `hcl:"collapse,optional"`
	RankDir     *string   `hcl:"rankdir,optional"`
}

// layoutBlock points at the layout service.
type layoutBlock struct {
	URL       *string `hcl:"url,optional"`
	Namespace *string `hcl:"namespace,optional"`
	Timeout   *string `hcl:"timeout,optional"`
}

// checkBlock configures batch validation.
type checkBlock struct {
	Extensions *[]string `hcl:"extensions,optional"`
	Workers    *int      `hcl:"workers,optional"`
}
