package tsource

import (
	"sort"
	"strings"
)

// Edit replaces src[Start:End] with Text. Start == End inserts.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Insert returns an edit inserting text at pos.
func Insert(pos int, text string) Edit {
	return Edit{Start: pos, End: pos, Text: text}
}

// Replace returns an edit replacing span with text.
func Replace(s Span, text string) Edit {
	return Edit{Start: s.Start, End: s.End, Text: text}
}

// Apply applies non-overlapping edits to src. Insertions at the same offset
// keep the order in which they were given.
func Apply(src string, edits []Edit) string {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var b strings.Builder
	b.Grow(len(src))
	pos := 0
	for _, e := range sorted {
		if e.Start < pos {
			continue // overlaps a previous edit
		}
		b.WriteString(src[pos:e.Start])
		b.WriteString(e.Text)
		pos = e.End
	}
	b.WriteString(src[pos:])
	return b.String()
}

// LineStart returns the offset of the beginning of the line containing pos.
func LineStart(src string, pos int) int {
	return strings.LastIndexByte(src[:pos], '\n') + 1
}

// LineEnd returns the offset just past the newline ending the line that
// contains pos, or len(src) on the last line.
func LineEnd(src string, pos int) int {
	if i := strings.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(src)
}

// Indent returns the leading whitespace of the line containing pos.
func Indent(src string, pos int) string {
	start := LineStart(src, pos)
	end := start
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return src[start:end]
}
