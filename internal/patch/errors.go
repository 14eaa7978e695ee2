package patch

import "fmt"

// AnchorError reports that a required anchor is absent from a source.
type AnchorError struct {
	Anchor string
	File   string // set by Rewrite; empty when patching in memory
}

func (e *AnchorError) Error() string {
	where := "source"
	if e.File != "" {
		where = e.File
	}
	return fmt.Sprintf("required anchor %s not found in %s", e.Anchor, where)
}
