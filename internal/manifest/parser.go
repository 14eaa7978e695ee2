package manifest

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Parse reads an extension manifest.
func Parse(path string) (*Extension, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var m Extension
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// Write validates m and writes it to path. Nothing is written when the
// manifest does not satisfy the schema.
func Write(path string, m *Extension) error {
	if m.SchemaVersion == 0 {
		m.SchemaVersion = SchemaVersion
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	result, err := Validate(data)
	if err != nil {
		return err
	}
	if !result.Valid {
		return &InvalidError{Issues: result.Issues}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// InvalidError reports a manifest rejected by the schema.
type InvalidError struct {
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msg := issue.Message
		if issue.Path != "" {
			msg = issue.Path + ": " + msg
		}
		msgs = append(msgs, msg)
	}
	return "invalid extension manifest: " + strings.Join(msgs, "; ")
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
