package catalog

import (
	"iter"
	"slices"
	"sort"
)

// maxBaseDepth bounds every walk up a base-type chain. Catalogs are
// hand-editable, so a chain may loop back on itself.
const maxBaseDepth = 64

// Catalog is an immutable set of type descriptions keyed by type name.
// A Catalog and the TypeInfo values it holds must not be modified after
// New returns; replace the whole catalog through a Handle instead.
type Catalog struct {
	types map[string]*TypeInfo
}

// New builds a catalog from the given types. Later duplicates of a name
// replace earlier ones.
func New(types ...*TypeInfo) *Catalog {
	c := &Catalog{types: make(map[string]*TypeInfo, len(types))}
	for _, t := range types {
		if t == nil || t.Name == "" {
			continue
		}
		if t.Fields == nil {
			t.Fields = map[string]*FieldInfo{}
		}
		c.types[t.Name] = t
	}
	return c
}

// Len returns the number of types in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.types)
}

// Type looks up a type by exact name.
func (c *Catalog) Type(name string) (*TypeInfo, bool) {
	if c == nil {
		return nil, false
	}
	t, ok := c.types[name]
	return t, ok
}

// Types returns every type sorted by name.
func (c *Catalog) Types() []*TypeInfo {
	if c == nil {
		return nil
	}
	out := make([]*TypeInfo, 0, len(c.types))
	for _, t := range c.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// BaseChain returns typeName followed by its ancestors, nearest first.
// The walk stops at the first unknown type, at a repeated type, or after
// maxBaseDepth steps. An unknown typeName yields an empty chain.
func (c *Catalog) BaseChain(typeName string) []*TypeInfo {
	var chain []*TypeInfo
	seen := make(map[string]bool)
	name := typeName
	for depth := 0; name != "" && depth < maxBaseDepth; depth++ {
		if seen[name] {
			break
		}
		seen[name] = true
		t, ok := c.Type(name)
		if !ok {
			break
		}
		chain = append(chain, t)
		name = t.BaseType
	}
	return chain
}

// LookupField finds fieldName on typeName. With includeBase it walks the
// base chain and returns the nearest declaration.
func (c *Catalog) LookupField(typeName, fieldName string, includeBase bool) (*FieldInfo, bool) {
	chain := c.BaseChain(typeName)
	if !includeBase && len(chain) > 1 {
		chain = chain[:1]
	}
	for _, t := range chain {
		if f, ok := t.Field(fieldName); ok {
			return f, true
		}
	}
	return nil, false
}

// EnumerateFields yields the fields of typeName. Own fields come first in
// name order; with includeBase each ancestor's fields follow, skipping any
// name already yielded by a more derived type.
func (c *Catalog) EnumerateFields(typeName string, includeBase bool) iter.Seq[*FieldInfo] {
	return func(yield func(*FieldInfo) bool) {
		chain := c.BaseChain(typeName)
		if !includeBase && len(chain) > 1 {
			chain = chain[:1]
		}
		seen := make(map[string]bool)
		for _, t := range chain {
			names := make([]string, 0, len(t.Fields))
			for name := range t.Fields {
				if !seen[name] {
					names = append(names, name)
				}
			}
			slices.Sort(names)
			for _, name := range names {
				seen[name] = true
				if !yield(t.Fields[name]) {
					return
				}
			}
		}
	}
}

// NearestAncestor walks the base chain of typeName, including typeName
// itself, and returns the first name contained in candidates.
func (c *Catalog) NearestAncestor(typeName string, candidates []string) (string, bool) {
	for _, t := range c.BaseChain(typeName) {
		if slices.Contains(candidates, t.Name) {
			return t.Name, true
		}
	}
	return "", false
}

// InheritedList returns the first non-nil list produced by pick along the
// base chain of typeName.
func (c *Catalog) InheritedList(typeName string, pick func(*TypeInfo) []string) []string {
	for _, t := range c.BaseChain(typeName) {
		if l := pick(t); l != nil {
			return l
		}
	}
	return nil
}
