// Package model reads, classifies, edits and writes a widget definition
// document (model.xml).
//
// A document has a root element wrapping one entity (usually <widget>) that
// carries a <name> and a <properties> list. Each property is a preference
// with a typed <value>. Preferences fall into exactly one of three
// categories: reserved item settings, outputs (named "output.<event>"), and
// inputs (everything else).
//
// Namespaced documents are not supported: namespace declarations and prefixes
// are dropped when a document is parsed.
package model
