// Package generator produces the wrapper library skeleton. A Generator is
// either an external command (the Angular CLI by default) run in the
// workspace, or the built-in scaffold. Both leave the component and module
// sources at the paths package scaffold describes.
package generator
