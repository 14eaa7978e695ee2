package markup

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	openTag  = "<ng-template"
	closeTag = "</ng-template>"
)

// unescape reverses the string escaping the compiler applied when it inlined
// the templates into the bundle. Newlines are restored before quotes.
var (
	unescapeNewlines = strings.NewReplacer(`\n`, "\n")
	unescapeQuotes   = strings.NewReplacer(`\"`, `"`)
)

// ExtractionError reports a bundle without customizable markup.
type ExtractionError struct {
	Marker    string
	Fragments int // fragments found, none of which carried the marker
}

func (e *ExtractionError) Error() string {
	if e.Fragments == 0 {
		return "no ng-template fragments found in bundle"
	}
	return fmt.Sprintf("none of %d ng-template fragments carries the %q marker", e.Fragments, e.Marker)
}

// Fragment is a top-level ng-template element found in a bundle.
type Fragment struct {
	Text         string
	Customizable bool
}

// Fragments returns the top-level ng-template elements of src in source order.
// A template nested inside another belongs to its outer fragment. An opening
// tag without a matching close is ignored, as is text that only looks like an
// opening tag because a string literal ends inside it.
func Fragments(src, marker string) []Fragment {
	markerAttr := markerPattern(marker)

	type open struct {
		start int
		attrs string
	}
	type pair struct {
		start, end int
		attrs      string
	}

	var (
		stack []open
		pairs []pair
	)
	for i := 0; i < len(src); {
		switch {
		case strings.HasPrefix(src[i:], closeTag):
			end := i + len(closeTag)
			if n := len(stack); n > 0 {
				o := stack[n-1]
				stack = stack[:n-1]
				pairs = append(pairs, pair{start: o.start, end: end, attrs: o.attrs})
			}
			i = end
		case strings.HasPrefix(src[i:], openTag):
			end, attrs, ok := scanOpenTag(src, i)
			if !ok {
				i += len(openTag)
				continue
			}
			stack = append(stack, open{start: i, attrs: attrs})
			i = end
		default:
			i++
		}
	}

	// Pairs close innermost first; keep the outermost ones in source order.
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].start < pairs[b].start })
	var out []Fragment
	last := -1
	for _, p := range pairs {
		if p.start < last {
			continue
		}
		out = append(out, Fragment{
			Text:         src[p.start:p.end],
			Customizable: markerAttr.MatchString(unescape(p.attrs)),
		})
		last = p.end
	}
	return out
}

// scanOpenTag reads the opening tag starting at src[i:], skipping quoted
// attribute values, which may be escaped as \"...\" inside a string literal.
// It returns the offset just past '>' and the attribute text. A quote outside
// a value or a '<' means the candidate is not a tag.
func scanOpenTag(src string, i int) (end int, attrs string, ok bool) {
	j := i + len(openTag)
	if j < len(src) && !strings.ContainsRune(" \t\r\n\\/>", rune(src[j])) {
		return 0, "", false // e.g. <ng-templates
	}

	var prev byte // last significant byte, escapes excluded
	for j < len(src) {
		c := src[j]
		switch {
		case c == '>':
			return j + 1, src[i+len(openTag) : j], true
		case c == '<':
			return 0, "", false
		case c == '\\' && j+1 < len(src) && src[j+1] == '"':
			if prev != '=' {
				return 0, "", false
			}
			k := strings.Index(src[j+2:], `\"`)
			if k < 0 {
				return 0, "", false
			}
			j += 2 + k + 2
			prev = '"'
			continue
		case c == '\\':
			j += 2 // \n, \t and similar escapes are whitespace
			continue
		case c == '"' || c == '\'':
			if prev != '=' {
				return 0, "", false
			}
			k := strings.IndexByte(src[j+1:], c)
			if k < 0 {
				return 0, "", false
			}
			j += 1 + k + 1
			prev = c
			continue
		case c != ' ' && c != '\t' && c != '\r' && c != '\n':
			prev = c
		}
		j++
	}
	return 0, "", false
}

// Extract returns the customizable markup of a bundle: all top-level
// fragments joined by newlines, with the bundle's string escapes reversed.
// At least one fragment must carry marker.
func Extract(bundle, marker string) (string, error) {
	frags := Fragments(bundle, marker)

	customizable := false
	texts := make([]string, 0, len(frags))
	for _, f := range frags {
		customizable = customizable || f.Customizable
		texts = append(texts, f.Text)
	}
	if !customizable {
		return "", &ExtractionError{Marker: marker, Fragments: len(frags)}
	}

	return unescape(strings.Join(texts, "\n")), nil
}

func unescape(s string) string {
	return unescapeQuotes.Replace(unescapeNewlines.Replace(s))
}

// markerPattern matches marker as a standalone attribute name, with or without
// a value.
func markerPattern(marker string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|\s)` + regexp.QuoteMeta(marker) + `(?:\s|=|/|$)`)
}
