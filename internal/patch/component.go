package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bbext-labs/bbext/internal/tsource"
	"github.com/bbext-labs/bbext/internal/widget"
)

const (
	ngComponent = "Component"
	angularCore = "@angular/core"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// AddRouteCopy imports the route copier and the widget's component, and
// decorates the wrapper with @CopyRoutes(<component>) ahead of @Component.
func AddRouteCopy(src string, ref *widget.Reference) (string, error) {
	f, err := tsource.Parse(src)
	if err != nil {
		return "", fmt.Errorf("scanning component source: %w", err)
	}
	dec := f.Decorator(ngComponent)
	if dec == nil {
		return "", &AnchorError{Anchor: "@" + ngComponent}
	}
	if f.Decorator(RouteCopier) != nil {
		return src, nil
	}

	component := localName(f, ref.Component)
	pos, blank := importPosAfterImports(f, dec.Span.Start)
	e := newEditor(f, pos, blank)
	e.ensureImport(CorePackage, RouteCopier, RouteCopier)
	e.ensureImport(ref.Package, ref.Component, component)

	line := tsource.LineStart(src, dec.Span.Start)
	e.insert(line, fmt.Sprintf("%s@%s(%s)\n", tsource.Indent(src, dec.Span.Start), RouteCopier, component))
	return e.result(), nil
}

// WireOutputs declares an @Output emitter per output and a handler that
// forwards the original widget's event to it. Emitters go before the
// constructor and handlers after it. No outputs leaves src unchanged.
func WireOutputs(src string, outputs []string) (string, error) {
	if len(outputs) == 0 {
		return src, nil
	}
	f, err := tsource.Parse(src)
	if err != nil {
		return "", fmt.Errorf("scanning component source: %w", err)
	}
	c := f.ClassDecoratedBy(ngComponent)
	if c == nil {
		return "", &AnchorError{Anchor: "@" + ngComponent + " class"}
	}
	if c.Constructor == nil {
		return "", &AnchorError{Anchor: "constructor() { }"}
	}

	dec := f.Decorator(ngComponent)
	pos, blank := importPosAfterImports(f, dec.Span.Start)
	e := newEditor(f, pos, blank)
	e.ensureImport(angularCore, "Output", "Output")
	e.ensureImport(angularCore, "EventEmitter", "EventEmitter")

	// A constructor sharing its line with the class body opening gets
	// moved to a line of its own below the emitters.
	start := c.Constructor.Span.Start
	line := tsource.LineStart(src, start)
	indent := tsource.Indent(src, start)
	ownLine := strings.TrimSpace(src[line:start]) == ""
	if !ownLine {
		indent += "  "
	}
	var decls, handlers strings.Builder
	for _, event := range unique(outputs) {
		prop := EmitterName(event)
		handler := HandlerName(event)
		if !c.HasMember(prop) {
			decorator := "@Output()"
			if prop != event {
				decorator = fmt.Sprintf("@Output('%s')", event)
			}
			fmt.Fprintf(&decls, "%s%s %s = new EventEmitter<any>();\n", indent, decorator, prop)
		}
		if !c.HasMember(handler) {
			fmt.Fprintf(&handlers, "\n\n%s%s(event: any) {\n%s  this.%s.emit(event);\n%s}",
				indent, handler, indent, prop, indent)
		}
	}

	switch {
	case decls.Len() == 0:
	case ownLine:
		e.insert(line, decls.String()+"\n")
	default:
		gap := start
		for gap > line && (src[gap-1] == ' ' || src[gap-1] == '\t') {
			gap--
		}
		e.replace(tsource.Span{Start: gap, End: start}, "\n"+decls.String()+"\n"+indent)
	}
	if handlers.Len() > 0 {
		e.insert(c.Constructor.Span.End, handlers.String())
	}
	return e.result(), nil
}

// RewriteTemplateURL replaces the component's inline template (or existing
// templateUrl) with a templateUrl pointing at path.
func RewriteTemplateURL(src, path string) (string, error) {
	f, err := tsource.Parse(src)
	if err != nil {
		return "", fmt.Errorf("scanning component source: %w", err)
	}
	dec := f.Decorator(ngComponent)
	if dec == nil {
		return "", &AnchorError{Anchor: "@" + ngComponent}
	}
	prop := dec.Object.Property("template")
	if prop == nil {
		prop = dec.Object.Property("templateUrl")
	}
	if prop == nil {
		return "", &AnchorError{Anchor: "@" + ngComponent + " template"}
	}

	e := newEditor(f, 0, false)
	e.replace(prop.Span, fmt.Sprintf("templateUrl: '%s'", path))
	return e.result(), nil
}

// EmitterName returns the component property emitting event. Event names
// that are not identifiers are camel-cased.
func EmitterName(event string) string {
	if identPattern.MatchString(event) {
		return event
	}
	class := widget.ClassName(event, "")
	if class == "" {
		return "output"
	}
	return strings.ToLower(class[:1]) + class[1:]
}

// HandlerName returns the wrapper method forwarding event.
func HandlerName(event string) string {
	return "on" + widget.ClassName(EmitterName(event), "")
}

// unique returns names without repetitions, keeping first occurrences.
func unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
