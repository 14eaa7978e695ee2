package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bbext-labs/bbext/internal/widget"
)

// Item files copied from a widget's item directory into a generated library.
const (
	DefinitionFile = "model.xml"
	OptionsFile    = "options.json"
	IconFile       = "icon.png"
)

// ArtifactFiles lists the item files CopyArtifacts looks for, in copy order.
var ArtifactFiles = []string{DefinitionFile, OptionsFile, IconFile}

// CopyResult is the outcome of copying one item file.
type CopyResult struct {
	Name string
	Dest string // empty when the file was not copied
	Err  error
}

// CopyArtifacts copies each of ArtifactFiles found in the package's item
// directory into dstDir. Copying is best-effort per file: a missing or
// unreadable file is recorded in its result and the rest are still copied.
func CopyArtifacts(p *widget.Package, dstDir string) []CopyResult {
	results := make([]CopyResult, 0, len(ArtifactFiles))
	for _, name := range ArtifactFiles {
		res := CopyResult{Name: name}
		src, err := p.FindItemFile(name)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		dst := filepath.Join(dstDir, name)
		if err := copyFile(src, dst); err != nil {
			res.Err = fmt.Errorf("copying %s to %s: %w", src, dst, err)
		} else {
			res.Dest = dst
		}
		results = append(results, res)
	}
	return results
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, srcInfo.Mode())
}
