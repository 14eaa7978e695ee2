// Package registry discovers the widget packages installed below a
// distribution directory and copies a widget's auxiliary item files into a
// generated library.
package registry
