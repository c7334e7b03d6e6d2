// Package value coerces raw configuration text into typed cty values
// according to a field's declared type.
//
// Coercion is strict: text either converts in full or the call reports
// failure. Callers decide whether to fall back to the raw string.
package value

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Declared primitive type names as they appear in the catalog.
const (
	TypeString  = "string"
	TypeNumeric = "numeric"
	TypeChar    = "char"
)

// ArraySeparator delimits elements of level-list values such as "wave;energy".
const ArraySeparator = ";"

// IsPrimitive reports whether typeName is one of the scalar types this
// package knows how to coerce.
func IsPrimitive(typeName string) bool {
	switch typeName {
	case TypeString, TypeNumeric, TypeChar:
		return true
	}
	return false
}

// ParseScalar converts raw according to declaredType.
//
// Strings are returned unchanged. Numerics must consume the whole trimmed
// text; empty text and infinities are not numbers. Chars must be exactly
// one character. Every other declared type fails.
func ParseScalar(raw, declaredType string) (cty.Value, bool) {
	switch declaredType {
	case TypeString:
		return cty.StringVal(raw), true
	case TypeNumeric:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return cty.NilVal, false
		}
		v, err := convert.Convert(cty.StringVal(trimmed), cty.Number)
		if err != nil || v.AsBigFloat().IsInf() {
			return cty.NilVal, false
		}
		return v, true
	case TypeChar:
		if utf8.RuneCountInString(raw) != 1 {
			return cty.NilVal, false
		}
		return cty.StringVal(raw), true
	default:
		return cty.NilVal, false
	}
}

// ParseArray splits raw on ";" and coerces every trimmed element with
// ParseScalar. A trailing separator does not produce an empty final
// element. If any element fails, the whole array fails.
func ParseArray(raw, elementType string) ([]cty.Value, bool) {
	parts := strings.Split(raw, ArraySeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	out := make([]cty.Value, 0, len(parts))
	for _, p := range parts {
		v, ok := ParseScalar(p, elementType)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// ParseList splits raw on any of the given separators, trims each part and
// drops empty parts. It is used for lists of names where neither order of
// delimiters nor stray separators carry meaning.
func ParseList(raw string, separators ...rune) []string {
	if len(separators) == 0 {
		separators = []rune{','}
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		for _, s := range separators {
			if r == s {
				return true
			}
		}
		return false
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Text renders v the way it would be written in a configuration file.
// Null and unknown values render as the empty string.
func Text(v cty.Value) string {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return ""
	}
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Number:
		return v.AsBigFloat().Text('g', -1)
	case cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	}
	return v.GoString()
}

// Equal compares two scalar values. Numbers compare by magnitude, strings
// by content, and nulls are equal only to other nulls. Values of differing
// types are never equal.
func Equal(a, b cty.Value) bool {
	aNull := a == cty.NilVal || a.IsNull()
	bNull := b == cty.NilVal || b.IsNull()
	if aNull || bNull {
		return aNull && bNull
	}
	if !a.IsKnown() || !b.IsKnown() {
		return false
	}
	if !a.Type().Equals(b.Type()) {
		return false
	}
	switch a.Type() {
	case cty.Number:
		return a.AsBigFloat().Cmp(b.AsBigFloat()) == 0
	case cty.String:
		return a.AsString() == b.AsString()
	case cty.Bool:
		return a.True() == b.True()
	}
	return a.RawEquals(b)
}

// FromJSON converts a JSON scalar into a cty value. JSON null becomes a
// null of dynamic type. Objects and arrays are rejected.
func FromJSON(raw json.RawMessage) (cty.Value, error) {
	var decoded any
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return cty.NilVal, fmt.Errorf("decoding JSON scalar: %w", err)
	}
	return FromGo(decoded)
}

// FromGo converts a decoded JSON scalar into a cty value.
func FromGo(v any) (cty.Value, error) {
	switch t := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(t), nil
	case bool:
		return cty.BoolVal(t), nil
	case json.Number:
		return cty.ParseNumberVal(t.String())
	case float64:
		return cty.NumberFloatVal(t), nil
	case int:
		return cty.NumberIntVal(int64(t)), nil
	case int64:
		return cty.NumberIntVal(t), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported scalar of type %T", v)
	}
}

// ToGo converts a scalar cty value into a value encoding/json can marshal.
func ToGo(v cty.Value) any {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return nil
	}
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Bool:
		return v.True()
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i
			}
		}
		f, _ := bf.Float64()
		return f
	}
	return v.GoString()
}
