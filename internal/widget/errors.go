package widget

import "fmt"

// NotFoundError reports a widget file or directory that does not exist.
type NotFoundError struct {
	What string // e.g., "descriptor", "bundle", "definition document"
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found at %s", e.What, e.Path)
}
