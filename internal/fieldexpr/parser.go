package fieldexpr

import (
	"fmt"
	"strings"
)

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// Parse splits expr into parts, scanning left to right. It fails on the
// first character that is neither an identifier character, a dot, nor a
// well-formed `[ident]` index.
func Parse(expr string) ([]Part, error) {
	var parts []Part
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == '.':
			i++
		case isIdentByte(c):
			start := i
			for i < len(expr) && isIdentByte(expr[i]) {
				i++
			}
			parts = append(parts, Field(expr[start:i]))
		case c == '[':
			start := i + 1
			end := start
			for end < len(expr) && isIdentByte(expr[end]) {
				end++
			}
			if end == start || end >= len(expr) || expr[end] != ']' {
				return nil, fmt.Errorf("malformed index at offset %d in %q", i, expr)
			}
			parts = append(parts, Index(expr[start:end]))
			i = end + 1
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d in %q", c, i, expr)
		}
	}
	return parts, nil
}

// String renders parts in canonical form: field names joined by dots,
// indexes attached to the preceding part.
func String(parts []Part) string {
	var sb strings.Builder
	for i, p := range parts {
		if p.IsIndex() {
			sb.WriteString("[" + p.Value + "]")
			continue
		}
		if i > 0 {
			sb.WriteRune('.')
		}
		sb.WriteString(p.Value)
	}
	return sb.String()
}

// FieldNames returns only the field name parts, in order.
func FieldNames(parts []Part) []string {
	var out []string
	for _, p := range parts {
		if !p.IsIndex() {
			out = append(out, p.Value)
		}
	}
	return out
}
