// Package parser walks configuration documents line by line and assembles
// the component instances they declare.
//
// A Walker classifies each line with the syntax package, skips block
// comments, and, when asked to, descends into included documents at the
// position of their include directive. Traversal is sequential and
// depth-first, so the visit order is a pre-order traversal of the include
// tree. Block comment state belongs to a single document and never spans
// an include boundary.
//
// Loading an included document is the only blocking step. The context is
// checked before and after each load, and a cancelled traversal returns
// the context's error. Missing include targets are skipped; reporting them
// is left to the lint package.
package parser
