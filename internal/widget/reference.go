package widget

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

const (
	moduleSuffix    = "Module"
	componentSuffix = "Component"

	// PlaceholderModule stands in when the export surface names no module.
	PlaceholderModule = "WidgetModule"
)

// exportedIdent matches identifiers on export lines of a declaration file.
var exportedIdent = regexp.MustCompile(`\b[A-Za-z_$][A-Za-z0-9_$]*\b`)

// Reference identifies the widget's exported Angular module and component.
type Reference struct {
	Package     string // npm package name the identifiers are imported from
	Module      string
	Component   string
	Placeholder bool // Module is PlaceholderModule because none was found
}

// LoadReference scans the package's type-export surface for the exported
// module and component identifiers. A missing surface or a surface without a
// module yields the placeholder module rather than an error.
func LoadReference(p *Package, packageName string) (*Reference, error) {
	ref := &Reference{Package: packageName}

	for _, path := range p.TypeExportPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading type exports %s: %w", path, err)
		}
		if ref.Module == "" {
			ref.Module = findExport(string(data), moduleSuffix)
		}
		if ref.Component == "" {
			ref.Component = findExport(string(data), componentSuffix)
		}
		if ref.Module != "" && ref.Component != "" {
			break
		}
	}

	if ref.Module == "" {
		ref.Module = PlaceholderModule
		ref.Placeholder = true
	}
	if ref.Component == "" {
		ref.Component = strings.TrimSuffix(ref.Module, moduleSuffix) + componentSuffix
	}
	return ref, nil
}

// findExport returns the first identifier ending in suffix that appears on a
// line containing an export statement.
func findExport(src, suffix string) string {
	for _, line := range strings.Split(src, "\n") {
		if !strings.Contains(line, "export") {
			continue
		}
		for _, ident := range exportedIdent.FindAllString(line, -1) {
			if ident != suffix && strings.HasSuffix(ident, suffix) {
				return ident
			}
		}
	}
	return ""
}
