package patch

import (
	"fmt"
	"strings"

	"github.com/bbext-labs/bbext/internal/tsource"
	"github.com/bbext-labs/bbext/internal/widget"
)

// Backbase foundation identifiers the wrapper depends on.
const (
	CorePackage = "@backbase/foundation-ang/core"
	BaseModule  = "BackbaseCoreModule"
	RouteCopier = "CopyRoutes"
)

const ngModule = "NgModule"

// InjectModuleImports adds imports for the base module and the widget's
// module immediately before the @NgModule declaration.
func InjectModuleImports(src string, ref *widget.Reference) (string, error) {
	f, err := tsource.Parse(src)
	if err != nil {
		return "", fmt.Errorf("scanning module source: %w", err)
	}
	dec := f.Decorator(ngModule)
	if dec == nil {
		return "", &AnchorError{Anchor: "@" + ngModule}
	}

	e := newEditor(f, tsource.LineStart(src, dec.Span.Start), true)
	e.ensureImport(CorePackage, BaseModule, BaseModule)
	e.ensureImport(ref.Package, ref.Module, localName(f, ref.Module))
	return e.result(), nil
}

// RegisterDependencies adds the widget's module and the base module,
// configured with the wrapper component's class map, to the @NgModule
// imports array. The array is created when the declaration has none.
func RegisterDependencies(src string, ref *widget.Reference, componentType string) (string, error) {
	f, err := tsource.Parse(src)
	if err != nil {
		return "", fmt.Errorf("scanning module source: %w", err)
	}
	dec := f.Decorator(ngModule)
	if dec == nil || dec.Object == nil {
		return "", &AnchorError{Anchor: "@" + ngModule + "({...})"}
	}

	module := localName(f, ref.Module)
	withConfig := fmt.Sprintf("%s.withConfig({ classMap: { %s } })", BaseModule, componentType)

	e := newEditor(f, 0, false)
	prop := dec.Object.Property("imports")
	switch {
	case prop == nil:
		indent := "  "
		if len(dec.Object.Properties) > 0 {
			indent = tsource.Indent(src, dec.Object.Properties[0].Span.Start)
		}
		e.insert(dec.Object.Span.Start+1, fmt.Sprintf("\n%simports: [%s, %s],", indent, module, withConfig))
	case strings.HasPrefix(f.Text(prop.Value), "["):
		existing := f.Text(prop.Value)
		var items []string
		if !containsIdent(existing, module) {
			items = append(items, module)
		}
		if !strings.Contains(existing, BaseModule+".withConfig") {
			items = append(items, withConfig)
		}
		if len(items) > 0 {
			appendToArray(e, prop, items)
		}
	default:
		return "", &AnchorError{Anchor: "@" + ngModule + " imports array"}
	}
	return e.result(), nil
}

// appendToArray adds items at the end of an array literal property value,
// following its single-line or multi-line layout.
func appendToArray(e *editor, prop *tsource.Property, items []string) {
	src := e.f.Src
	v := prop.Value
	inner := src[v.Start+1 : v.End-1]
	propIndent := tsource.Indent(src, prop.Span.Start)
	itemIndent := propIndent + "  "

	if strings.TrimSpace(inner) == "" {
		e.replace(tsource.Span{Start: v.Start + 1, End: v.End - 1},
			"\n"+itemIndent+strings.Join(items, ",\n"+itemIndent)+"\n"+propIndent)
		return
	}

	trimmed := strings.TrimRight(inner, " \t\r\n")
	pos := v.Start + 1 + len(trimmed)
	sep := ","
	if strings.HasSuffix(trimmed, ",") {
		sep = ""
	}
	if strings.Contains(inner, "\n") {
		e.insert(pos, sep+"\n"+itemIndent+strings.Join(items, ",\n"+itemIndent))
		return
	}
	e.insert(pos, sep+" "+strings.Join(items, ", "))
}
