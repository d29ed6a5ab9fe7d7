// Package provenance renders asset derivation graphs.
//
// Every derived asset records the ID of the asset it came from. This
// package follows those links to build a Graphviz DOT graph: imports
// are roots, extracts and edit results hang off their parents. The
// graph can be rendered to SVG or PNG for the graph command and the
// HTTP API.
//
// Dangling parent references (the parent was removed or undone away)
// are silently skipped; the child still appears as a root.
package provenance
