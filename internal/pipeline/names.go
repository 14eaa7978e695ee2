package pipeline

import (
	"fmt"
	"regexp"

	"github.com/bbext-labs/bbext/internal/widget"
)

var modulePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// ValidModuleName reports whether name can be used as the extension's
// library name: lowercase words separated by single dashes.
func ValidModuleName(name string) bool {
	return modulePattern.MatchString(name)
}

// checkNames rejects a module name or widget id the generated library and
// manifest could not carry. It runs before anything is written.
func checkNames(opts Options) error {
	if !ValidModuleName(opts.Module) {
		return fmt.Errorf("invalid module name %q: use lowercase words separated by dashes", opts.Module)
	}
	if tag := widget.TagName(opts.Widget); !widget.ValidTagName(tag) {
		return fmt.Errorf("widget %q does not map to a valid element name (got %q)", opts.Widget, tag)
	}
	return nil
}
