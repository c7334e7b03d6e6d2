// Package resolver resolves field expressions against a type catalog,
// following base-type inheritance and descending into struct-typed fields.
package resolver

import (
	"github.com/vk/pipeconf/internal/catalog"
	"github.com/vk/pipeconf/internal/fieldexpr"
)

// ResolveFieldExpression returns the FieldInfo addressed by expr on
// rootType. Each field name part is looked up, with inheritance, on the
// type the previous part declared; index parts are skipped. It returns
// false for a malformed expression, an unknown type, or a name missing at
// every level of the chain.
func ResolveFieldExpression(cat *catalog.Catalog, rootType, expr string) (*catalog.FieldInfo, bool) {
	parts, err := fieldexpr.Parse(expr)
	if err != nil {
		return nil, false
	}
	return ResolveParts(cat, rootType, parts)
}

// ResolveParts is ResolveFieldExpression for an already tokenized expression.
func ResolveParts(cat *catalog.Catalog, rootType string, parts []fieldexpr.Part) (*catalog.FieldInfo, bool) {
	var result *catalog.FieldInfo
	current := rootType
	for _, p := range parts {
		if p.IsIndex() {
			continue
		}
		f, ok := cat.LookupField(current, p.Value, true)
		if !ok {
			return nil, false
		}
		result = f
		current = f.Type
	}
	return result, result != nil
}

// Resolver binds resolution to a catalog handle. Each call resolves
// against the catalog current at the time of the call.
type Resolver struct {
	handle *catalog.Handle
}

// New returns a Resolver reading from h.
func New(h *catalog.Handle) *Resolver {
	return &Resolver{handle: h}
}

// Resolve resolves expr on rootType against the current catalog.
func (r *Resolver) Resolve(rootType, expr string) (*catalog.FieldInfo, bool) {
	return ResolveFieldExpression(r.handle.Load(), rootType, expr)
}
