// Package patch rewires a generated Angular wrapper around the widget it
// extends. Each operation takes the current source text and returns the
// patched text. TypeScript patches work on the structure recovered by
// package tsource, so anchors are declarations (the @NgModule decorator, the
// imports array, the component constructor) rather than literal substrings.
//
// A missing required anchor is an *AnchorError. Operations skip work that is
// already present, so applying one twice leaves the source unchanged.
package patch
