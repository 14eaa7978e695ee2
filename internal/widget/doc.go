// Package widget reads the metadata of an installed widget package: its
// on-disk layout, the package.json descriptor, the exported Angular module and
// component identifiers, and the custom element tag the widget is invoked
// under. It also checks the widget's peer dependencies against what is
// installed next to it.
package widget
