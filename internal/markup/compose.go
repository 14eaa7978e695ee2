package markup

import "strings"

var commentEscaper = strings.NewReplacer("<!--", "&lt;!--", "-->", "--&gt;")

// EscapeComment neutralizes comment delimiters so s can sit inside an HTML
// comment. The result contains no delimiters, so escaping it again changes
// nothing.
func EscapeComment(s string) string {
	return commentEscaper.Replace(s)
}

// Compose builds the wrapper template: a usage tag for the original widget,
// a blank line, then the extracted fragments. Unless slots is set the
// fragments are disabled by wrapping them in a comment.
func Compose(tag, fragments string, slots bool) string {
	var b strings.Builder
	b.WriteString("<" + tag + " />\n\n")
	if slots {
		b.WriteString(fragments)
	} else {
		b.WriteString("<!--\n")
		b.WriteString(EscapeComment(fragments))
		b.WriteString("\n-->")
	}
	b.WriteString("\n")
	return b.String()
}
