// Package markup pulls customizable template fragments out of a widget's
// compiled bundle and composes the wrapper component's template from them.
package markup
