package patch

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// WireTemplateOutputs binds each output of the usage tag in markup to its
// handler, as in (name)="onName($event)". The boolean is false when markup
// has no such tag, in which case markup is returned unchanged. Tags inside
// comments are not considered.
func WireTemplateOutputs(markup, tag string, outputs []string) (string, bool) {
	z := html.NewTokenizer(strings.NewReader(markup))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return markup, false // io.EOF or malformed input
		}
		raw := string(z.Raw())
		start := offset
		offset += len(raw)
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, _ := z.TagName()
		if string(name) != tag {
			continue
		}

		var attrs strings.Builder
		for _, event := range unique(outputs) {
			binding := "(" + event + ")"
			if strings.Contains(raw, binding+"=") {
				continue
			}
			fmt.Fprintf(&attrs, " %s=\"%s($event)\"", binding, HandlerName(event))
		}
		if attrs.Len() == 0 {
			return markup, true
		}

		end := len(raw) - 1 // '>'
		if tt == html.SelfClosingTagToken {
			end--
		}
		for end > 0 && (raw[end-1] == ' ' || raw[end-1] == '\t' || raw[end-1] == '\n') {
			end--
		}
		pos := start + end
		return markup[:pos] + attrs.String() + markup[pos:], true
	}
}
