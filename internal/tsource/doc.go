// Package tsource is a structural scanner for Angular TypeScript sources.
//
// It is not a TypeScript parser. It tokenizes a file (skipping comments,
// strings and template literals correctly) and recovers the few structures a
// generated Angular component or module is built from: import declarations,
// decorator calls with their object-literal argument, and classes with their
// body and constructor. Positions are byte offsets into the source, and
// changes are expressed as Edits applied in one pass.
package tsource
