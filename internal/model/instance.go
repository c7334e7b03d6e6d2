// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file models a component instance and the located tokens it owns.
package model

import (
	"github.com/vk/pipeconf/internal/syntax"
)

// SectionHeader is a section header token together with its source file.
type SectionHeader struct {
	syntax.SectionHeader
	FS *FSInfo
}

// FieldAssignment is a field assignment token together with its source file.
type FieldAssignment struct {
	syntax.FieldAssignment
	FS *FSInfo
}

// Path returns the source file of the header, or "" when unknown.
func (h *SectionHeader) Path() string {
	if h == nil || h.FS == nil {
		return ""
	}
	return h.FS.FilePath
}

// Path returns the source file of the assignment, or "" when unknown.
func (a *FieldAssignment) Path() string {
	if a == nil || a.FS == nil {
		return ""
	}
	return a.FS.FilePath
}

// Instance is one named component. Name and TypeName come from the first
// section header that declared it.
type Instance struct {
	Name        string
	TypeName    string
	Headers     []*SectionHeader
	Assignments []*FieldAssignment
}

// Definition returns the first section header of the instance.
func (i *Instance) Definition() *SectionHeader {
	if len(i.Headers) == 0 {
		return nil
	}
	return i.Headers[0]
}

// LastAssignment returns the assignment with the highest source order whose
// field expression equals expr exactly.
func (i *Instance) LastAssignment(expr string) (*FieldAssignment, bool) {
	for n := len(i.Assignments) - 1; n >= 0; n-- {
		if a := i.Assignments[n]; a.FieldExpr == expr {
			return a, true
		}
	}
	return nil, false
}
