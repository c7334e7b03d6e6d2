package syntax

import "strings"

// Span locates a substring of one source line. Line is zero-based; Start
// and End are byte offsets into the line, End exclusive.
type Span struct {
	Line  int
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether the byte offset col on line falls inside s.
func (s Span) Contains(line, col int) bool {
	return line == s.Line && col >= s.Start && col < s.End
}

// Token is the classification of a single line. The set of
// implementations is closed: SectionHeader, FieldAssignment,
// IncludeDirective, BlockCommentStart, BlockCommentEnd and Plain.
// Consumers switch on the concrete type.
type Token interface {
	// LineNo returns the zero-based line the token was classified from.
	LineNo() int
	token()
}

// SectionHeader opens or reopens a component instance: `[name:cType]`.
type SectionHeader struct {
	Line         int
	InstanceName string
	InstanceSpan Span
	TypeName     string
	TypeSpan     Span
}

// FieldAssignment sets a field of the current instance: `expr = value`.
// Value excludes surrounding whitespace.
type FieldAssignment struct {
	Line      int
	FieldExpr string
	FieldSpan Span
	Value     string
	ValueSpan Span
}

// IncludeDirective inlines another document: `\{path}`.
//
// Expr is the whole text between the braces. Target is the path to load:
// equal to Expr for a plain path, or the default value of a
// `\cm[name(tag){default}:description]` expression. Target is empty when
// such an expression has no default.
type IncludeDirective struct {
	Line       int
	Expr       string
	ExprSpan   Span
	Target     string
	TargetSpan Span
}

// Parameterized reports whether the path comes from a `\cm[...]` expression.
func (d IncludeDirective) Parameterized() bool {
	return strings.HasPrefix(d.Expr, `\cm[`)
}

// BlockCommentStart marks a line beginning with `/*`. SameLineEnd is set
// when the same line also closes the comment with a trailing `*/`.
type BlockCommentStart struct {
	Line        int
	SameLineEnd bool
}

// BlockCommentEnd marks a line ending with `*/`.
type BlockCommentEnd struct {
	Line int
}

// Plain is any line that matches no other pattern: blank lines, line
// comments, and text the language does not recognize.
type Plain struct {
	Line int
}

func (t SectionHeader) LineNo() int     { return t.Line }
func (t FieldAssignment) LineNo() int   { return t.Line }
func (t IncludeDirective) LineNo() int  { return t.Line }
func (t BlockCommentStart) LineNo() int { return t.Line }
func (t BlockCommentEnd) LineNo() int   { return t.Line }
func (t Plain) LineNo() int             { return t.Line }

func (SectionHeader) token()     {}
func (FieldAssignment) token()   {}
func (IncludeDirective) token()  {}
func (BlockCommentStart) token() {}
func (BlockCommentEnd) token()   {}
func (Plain) token()             {}
