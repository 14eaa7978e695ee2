// Package scaffold generates an Angular library skeleton from embedded
// templates. It is the built-in alternative to running the Angular CLI and
// produces the same layout: a package manifest, an ng-packagr config, a public
// API barrel and a component and module under src/lib.
package scaffold
