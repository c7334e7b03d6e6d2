package fieldexpr

// Kind tags a Part as a field name or an index.
type Kind int

const (
	// KindField is a bare field name segment, e.g. `reader`.
	KindField Kind = iota
	// KindIndex is a bracketed index segment, e.g. `[0]`.
	KindIndex
)

// Part is a single component of a field expression.
type Part struct {
	Kind Kind
	// Value is the field name, or the identifier between the brackets.
	Value string
}

// Field creates a field name part.
func Field(name string) Part {
	return Part{Kind: KindField, Value: name}
}

// Index creates an index part.
func Index(id string) Part {
	return Part{Kind: KindIndex, Value: id}
}

// IsIndex returns true if the part is an index segment.
func (p Part) IsIndex() bool {
	return p.Kind == KindIndex
}
