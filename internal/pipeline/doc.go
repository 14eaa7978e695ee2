// Package pipeline extends an installed widget into a new wrapper library.
//
// An Orchestrator runs the extension as a graph of tasks: it loads the
// widget's metadata, generates the library skeleton, then copies the
// widget's item files and composes the wrapper template side by side. Once
// both are in place the definition document is transformed, after which the
// component and module sources are patched and the extension manifest is
// written. Progress is reported as State transitions on the logger.
package pipeline
