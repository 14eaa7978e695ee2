package widget

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Descriptor holds the package.json fields the pipeline needs.
type Descriptor struct {
	Name             string            `json:"name"`
	Title            string            `json:"description"`
	Version          string            `json:"version"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`
}

// LoadDescriptor reads and parses the package's package.json. Title falls
// back to the package name when the description is empty.
func LoadDescriptor(p *Package) (*Descriptor, error) {
	path := p.DescriptorPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{What: "descriptor", Path: path}
		}
		return nil, fmt.Errorf("reading descriptor %s: %w", path, err)
	}

	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing descriptor %s: %w", path, err)
	}
	if d.Name == "" {
		return nil, fmt.Errorf("descriptor %s has no name", path)
	}
	if strings.TrimSpace(d.Title) == "" {
		d.Title = d.Name
	}
	return &d, nil
}
