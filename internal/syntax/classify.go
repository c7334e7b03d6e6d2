// Package syntax classifies single lines of pipeline configuration text
// into tokens.
//
// Classification is a pure function of one line. Patterns are tried in a
// fixed priority order and the first match wins:
//
//  1. block comment start, a line whose indented prefix is `/*`
//  2. block comment end, a line whose suffix is `*/`
//  3. field assignment, `field.expr[0] = value`
//  4. section header, `[instance:cType]`
//  5. include directive, `\{path}` or `\{\cm[name(tag){default}:desc]}`
//
// Every other line is Plain.
package syntax

import (
	"regexp"
	"strings"
)

var (
	commentStartRegex = regexp.MustCompile(`^\s*/\*`)
	commentEndRegex   = regexp.MustCompile(`\*/\s*$`)
	assignmentRegex   = regexp.MustCompile(`^(\s*)([a-zA-Z0-9_.\[\]]+)(\s*=\s*)(.*?)\s*$`)
	headerRegex       = regexp.MustCompile(`^(\s*\[\s*)([a-zA-Z0-9_]+)(\s*:\s*)([a-zA-Z0-9_]+)\s*\]`)
	includeRegex      = regexp.MustCompile(`^\s*\\\{(.+)\}`)
	commandLineRegex  = regexp.MustCompile(`^\\cm\[([a-zA-Z0-9_]+)(\(([a-zA-Z0-9_]+)\))?(\{([^}]*)\})?(:(.*))?\]`)
)

// Classify returns the token for text, the content of line lineNo. A
// trailing carriage return is ignored.
func Classify(text string, lineNo int) Token {
	text = strings.TrimSuffix(text, "\r")

	if loc := commentStartRegex.FindStringIndex(text); loc != nil {
		rest := text[loc[1]:]
		return BlockCommentStart{Line: lineNo, SameLineEnd: commentEndRegex.MatchString(rest)}
	}
	if commentEndRegex.MatchString(text) {
		return BlockCommentEnd{Line: lineNo}
	}
	if m := assignmentRegex.FindStringSubmatchIndex(text); m != nil {
		return FieldAssignment{
			Line:      lineNo,
			FieldExpr: text[m[4]:m[5]],
			FieldSpan: Span{Line: lineNo, Start: m[4], End: m[5]},
			Value:     text[m[8]:m[9]],
			ValueSpan: Span{Line: lineNo, Start: m[8], End: m[9]},
		}
	}
	if m := headerRegex.FindStringSubmatchIndex(text); m != nil {
		return SectionHeader{
			Line:         lineNo,
			InstanceName: text[m[4]:m[5]],
			InstanceSpan: Span{Line: lineNo, Start: m[4], End: m[5]},
			TypeName:     text[m[8]:m[9]],
			TypeSpan:     Span{Line: lineNo, Start: m[8], End: m[9]},
		}
	}
	if m := includeRegex.FindStringSubmatchIndex(text); m != nil {
		return includeDirective(text, lineNo, m[2], m[3])
	}
	return Plain{Line: lineNo}
}

func includeDirective(text string, lineNo, start, end int) IncludeDirective {
	expr := text[start:end]
	d := IncludeDirective{
		Line:       lineNo,
		Expr:       expr,
		ExprSpan:   Span{Line: lineNo, Start: start, End: end},
		Target:     expr,
		TargetSpan: Span{Line: lineNo, Start: start, End: end},
	}
	if !strings.HasPrefix(expr, `\cm[`) {
		return d
	}

	d.Target = ""
	d.TargetSpan = Span{Line: lineNo, Start: start, End: start}
	m := commandLineRegex.FindStringSubmatchIndex(expr)
	if m == nil || m[8] < 0 {
		return d
	}
	d.Target = expr[m[10]:m[11]]
	d.TargetSpan = Span{Line: lineNo, Start: start + m[10], End: start + m[11]}
	return d
}
