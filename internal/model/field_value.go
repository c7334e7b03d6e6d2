// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements effective field value lookup on an instance.
package model

import (
	"github.com/vk/pipeconf/internal/catalog"
	"github.com/vk/pipeconf/internal/resolver"
	"github.com/vk/pipeconf/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// FieldValue is the effective value of a field on an instance.
type FieldValue struct {
	Value cty.Value
	// Field is the catalog entry the expression resolved to.
	Field *catalog.FieldInfo
	// Assignment is the assignment the value came from, or nil when the
	// value is the field's default.
	Assignment *FieldAssignment
	// Coerced is false when the assignment text did not match the field's
	// declared type and Value holds the raw text instead.
	Coerced bool
}

// FromDefault reports whether the value is the field's declared default.
func (v FieldValue) FromDefault() bool {
	return v.Assignment == nil
}

// FieldValue returns the effective value of expr on the instance.
//
// expr is resolved against the instance type; an unresolvable expression
// has no value. The last assignment whose expression matches exactly wins
// and is coerced to the declared type, falling back to the raw text when
// coercion fails. Without an assignment the declared default is used. The
// lookup never modifies the instance.
func (i *Instance) FieldValue(cat *catalog.Catalog, expr string) (FieldValue, bool) {
	field, ok := resolver.ResolveFieldExpression(cat, i.TypeName, expr)
	if !ok {
		return FieldValue{}, false
	}

	if a, ok := i.LastAssignment(expr); ok {
		v, coerced := value.ParseScalar(a.Value, field.Type)
		if !coerced {
			v = cty.StringVal(a.Value)
		}
		return FieldValue{Value: v, Field: field, Assignment: a, Coerced: coerced}, true
	}

	if field.Default == nil {
		return FieldValue{}, false
	}
	return FieldValue{Value: *field.Default, Field: field, Coerced: true}, true
}
