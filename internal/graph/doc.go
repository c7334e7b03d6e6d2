// Package graph builds the dependency graph of a parsed pipeline
// configuration.
//
// # What the Graph Shows
//
// Components in a pipeline never reference each other directly for data.
// They write frames into named levels of a shared data memory and read
// frames out of levels written by others. Some components also send
// messages straight to other instances by name. The graph makes both
// relationships visible:
//
//	  ┌──────────────┐  write  ┌────────────┐  read  ┌───────────────┐
//	  │ component_src│ ──────▶ │ level_wave │ ─────▶ │ component_sink│
//	  └──────────────┘         └────────────┘        └───────────────┘
//	          │                                               ▲
//	          └──────────────────── message ──────────────────┘
//
// Which fields carry level names or message targets is catalog data: each
// type lists the field expressions it reads from, writes to, and sends
// messages through. A type that lists none inherits the lists of its
// nearest ancestor that does.
//
// # Collapsed Graphs
//
// With Options.Collapse the level nodes disappear. Every writer of a level
// gets a direct edge to every reader of it, labeled with the level name,
// and levels with no writer or no reader contribute nothing.
//
// # Failure Semantics
//
// Building never fails. A field that does not resolve, has no value, or
// names a missing instance is skipped and logged at Debug level, so one bad
// line cannot hide the rest of the pipeline.
package graph
