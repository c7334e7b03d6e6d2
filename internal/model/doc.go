// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the in-memory representation of a parsed pipeline
// configuration: the component instances declared by section headers and
// the field assignments that configure them.
//
// # Core Concepts
//
//   - Config: the ordered result of parsing one root document with all of
//     its includes. Instances appear in the order their name was first seen.
//
//   - Instance: a named component of a declared type. An instance may be
//     reopened by later section headers, possibly in other files; its type
//     is fixed by the first header and every header is kept in source order.
//
//   - SectionHeader / FieldAssignment: syntax tokens annotated with the
//     file they came from, so every definition can be traced back to disk.
//
// Why a separate model package?
//
// The parser only knows how to turn lines into instances, and the graph
// builder and linter only know how to read instances. Keeping the shared
// structures here lets both sides evolve independently, and keeps field
// value lookup (last assignment wins, default fallback, lenient coercion)
// in one place.
package model
