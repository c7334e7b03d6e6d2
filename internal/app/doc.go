// Package app wires the parser, catalog, graph builder, linter and layout
// client into the operations the command line exposes. It owns the
// catalog handle, the workspace settings and the logger, decoupled from
// any specific entrypoint like a CLI or server.
package app
