package model

import "strings"

// OutputPrefix marks a preference as an output event.
const OutputPrefix = "output."

// reserved preferences are item settings, never surfaced as inputs or outputs.
var reserved = map[string]bool{
	PropClassID:       true,
	"src":             true,
	"render.requires": true,
	PropTitle:         true,
	"thumbnailUrl":    true,
}

// Category is the classification of a preference.
type Category int

const (
	CategoryInput Category = iota
	CategoryOutput
	CategoryReserved
	CategoryDropped // unnamed, or "output." with nothing after the prefix
)

func (c Category) String() string {
	switch c {
	case CategoryInput:
		return "input"
	case CategoryOutput:
		return "output"
	case CategoryReserved:
		return "reserved"
	default:
		return "dropped"
	}
}

// Categorize classifies a preference name. For outputs it also returns the
// event name.
func Categorize(name string) (Category, string) {
	if strings.TrimSpace(name) == "" {
		return CategoryDropped, ""
	}
	if reserved[name] {
		return CategoryReserved, ""
	}
	if event, ok := strings.CutPrefix(name, OutputPrefix); ok {
		if event == "" {
			return CategoryDropped, ""
		}
		return CategoryOutput, event
	}
	return CategoryInput, ""
}

// Classify splits the document's preferences into input names and output
// event names, each in document order.
func Classify(doc *Document) (inputs, outputs []string) {
	for _, p := range doc.Entity().Properties {
		switch cat, event := Categorize(p.Name); cat {
		case CategoryInput:
			inputs = append(inputs, p.Name)
		case CategoryOutput:
			outputs = append(outputs, event)
		}
	}
	return inputs, outputs
}
