package catalog

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Visibility controls whether a field is surfaced to users by tooling.
type Visibility string

const (
	VisibilityPrimary   Visibility = "primary"
	VisibilitySecondary Visibility = "secondary"
	VisibilityHidden    Visibility = "hidden"
)

// Type hints classify what a string field refers to.
const (
	HintLevelReference             = "levelReference"
	HintComponentInstanceReference = "componentInstanceReference"
	HintComponentTypeReference     = "componentTypeReference"
)

// FieldInfo describes one field of a component or struct type.
type FieldInfo struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Visibility  Visibility
	TypeHint    string

	// Default is nil when the field declares no default. A declared null
	// default is a non-nil pointer to a null value.
	Default *cty.Value

	SuggestedValues  []cty.Value
	AllowedValues    []cty.Value
	RecommendedValue *cty.Value
}

// HasDefault reports whether the field declares a default (possibly null).
func (f *FieldInfo) HasDefault() bool {
	return f.Default != nil
}

// TypeInfo describes a component type or a struct type.
type TypeInfo struct {
	Name        string
	Description string
	BaseType    string
	IsStruct    bool
	Fields      map[string]*FieldInfo

	// Field expressions whose values name the levels this type reads from,
	// writes to, and the instances it sends messages to.
	ReadsFromLevelFields []string
	WritesToLevelFields  []string
	SendsMessagesFields  []string
}

// Field returns the type's own field named name, ignoring inheritance.
func (t *TypeInfo) Field(name string) (*FieldInfo, bool) {
	if t == nil || t.Fields == nil {
		return nil, false
	}
	f, ok := t.Fields[name]
	return f, ok
}

// SortedFields returns the type's own fields in name order.
func (t *TypeInfo) SortedFields() []*FieldInfo {
	out := make([]*FieldInfo, 0, len(t.Fields))
	for _, f := range t.Fields {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
