package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bbext-labs/bbext/internal/tsource"
)

// editor collects edits against one parsed file. New import declarations are
// gathered into a single block inserted at importPos.
type editor struct {
	f         *tsource.File
	edits     []tsource.Edit
	importPos int
	blankLine bool // follow the import block with an empty line
	lines     []string
	merged    map[*tsource.Import][]string
}

func newEditor(f *tsource.File, importPos int, blankLine bool) *editor {
	return &editor{
		f:         f,
		importPos: importPos,
		blankLine: blankLine,
		merged:    make(map[*tsource.Import][]string),
	}
}

func (e *editor) insert(pos int, text string) {
	e.edits = append(e.edits, tsource.Insert(pos, text))
}

func (e *editor) replace(s tsource.Span, text string) {
	e.edits = append(e.edits, tsource.Replace(s, text))
}

// ensureImport makes name (bound as local) importable from module. An
// existing brace import of module gains the specifier; otherwise a new
// declaration is added to the import block.
func (e *editor) ensureImport(module, name, local string) {
	if e.f.Binds(local) {
		return
	}
	spec := name
	if local != name {
		spec = name + " as " + local
	}
	if imp := e.f.ImportFrom(module); imp != nil && imp.Braces != nil {
		e.merged[imp] = append(e.merged[imp], spec)
		return
	}
	for i, line := range e.lines {
		if strings.HasSuffix(line, "from '"+module+"';") {
			e.lines[i] = strings.Replace(line, " }", ", "+spec+" }", 1)
			return
		}
	}
	e.lines = append(e.lines, fmt.Sprintf("import { %s } from '%s';", spec, module))
}

// result applies all collected edits.
func (e *editor) result() string {
	src := e.f.Src
	for i := range e.f.Imports {
		imp := &e.f.Imports[i]
		specs, ok := e.merged[imp]
		if !ok {
			continue
		}
		inner := src[imp.Braces.Start+1 : imp.Braces.End-1]
		trimmed := strings.TrimRight(inner, " \t\r\n")
		pos := imp.Braces.Start + 1 + len(trimmed)
		text := ", " + strings.Join(specs, ", ")
		switch {
		case strings.TrimSpace(trimmed) == "":
			text = " " + strings.Join(specs, ", ")
		case strings.HasSuffix(trimmed, ","):
			text = " " + strings.Join(specs, ", ") + ","
		}
		e.insert(pos, text)
	}
	if len(e.lines) > 0 {
		block := strings.Join(e.lines, "\n") + "\n"
		if e.blankLine {
			block += "\n"
		}
		// The block goes before other insertions at the same offset.
		e.edits = append([]tsource.Edit{tsource.Insert(e.importPos, block)}, e.edits...)
	}
	return tsource.Apply(src, e.edits)
}

// importPosAfterImports returns where a new import block goes: after the last
// import declaration, or before anchor when the file has none. The boolean
// reports whether the block needs a trailing blank line.
func importPosAfterImports(f *tsource.File, anchor int) (int, bool) {
	if end := f.ImportsEnd(); end >= 0 {
		return tsource.LineEnd(f.Src, end), false
	}
	return tsource.LineStart(f.Src, anchor), true
}

// localName returns the local binding for an imported identifier, aliasing
// it when the file declares a class of the same name.
func localName(f *tsource.File, name string) string {
	for _, c := range f.Classes {
		if c.Name == name {
			return "Original" + name
		}
	}
	return name
}

func containsIdent(text, ident string) bool {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(ident) + `\b`).MatchString(text)
}
