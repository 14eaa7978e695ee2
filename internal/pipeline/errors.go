package pipeline

import "fmt"

// ExistsError reports a destination library directory that already exists.
type ExistsError struct {
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("destination %s already exists; choose another module name or remove it", e.Path)
}
