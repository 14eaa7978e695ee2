// Package manifest reads and writes extension.yaml, the provenance record
// placed next to a generated wrapper library. It names the widget the
// library extends, the identifiers the wrapper was wired to and the
// preferences it exposes, and is validated against an embedded JSON Schema.
package manifest
