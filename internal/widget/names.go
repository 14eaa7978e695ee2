package widget

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	idSuffix  = "-ang"
	tagPrefix = "bb-"
)

// TagName derives the custom element tag the widget is invoked under:
// "foo-bar-widget-ang" becomes "bb-foo-bar-widget".
func TagName(id string) string {
	return tagPrefix + strings.TrimSuffix(id, idSuffix)
}

// tagPattern accepts the custom element names TagName yields for lowercase
// package ids: a leading letter, at least one dash, no uppercase.
var tagPattern = regexp.MustCompile(`^[a-z][a-z0-9._-]*-[a-z0-9._-]*$`)

// ValidTagName reports whether tag can be used as a custom element name.
func ValidTagName(tag string) bool {
	return tagPattern.MatchString(tag)
}

// ClassName converts a dashed name to an exported TypeScript class name with
// the given suffix: ClassName("my-widget", "Component") is "MyWidgetComponent".
func ClassName(name, suffix string) string {
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, part := range strings.FieldsFunc(name, isSeparator) {
		b.WriteString(title.String(part))
	}
	return b.String() + suffix
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || r == '.' || r == ' '
}
