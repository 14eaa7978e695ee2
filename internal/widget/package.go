package widget

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	descriptorFile = "package.json"
	itemDirName    = "backbase-items"

	// itemSearchDepth bounds the walk for item files below backbase-items.
	itemSearchDepth = 2
)

// Package is an installed widget package on disk.
type Package struct {
	ID   string // e.g., "product-summary-widget-ang"
	Root string // e.g., "node_modules/@backbase/product-summary-widget-ang"
}

// Open returns the package for id below distPath. The package directory must
// exist.
func Open(distPath, id string) (*Package, error) {
	root := filepath.Join(distPath, id)
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, &NotFoundError{What: "widget package " + id, Path: root}
	}
	return &Package{ID: id, Root: root}, nil
}

// DescriptorPath returns the path of package.json.
func (p *Package) DescriptorPath() string {
	return filepath.Join(p.Root, descriptorFile)
}

// ItemDir returns the directory holding the widget's item files.
func (p *Package) ItemDir() string {
	return filepath.Join(p.Root, itemDirName)
}

// TypeExportPaths returns the candidate type-export surface files in lookup
// order. Candidates that do not exist are omitted.
func (p *Package) TypeExportPaths() []string {
	candidates := []string{
		p.ID + ".d.ts",
		"backbase-" + p.ID + ".d.ts",
		"index.d.ts",
		"public_api.d.ts",
		"public-api.d.ts",
	}
	return existing(p.Root, candidates)
}

// BundlePath returns the compiled bundle searched for customizable markup.
func (p *Package) BundlePath() (string, error) {
	name := "backbase-" + p.ID + ".js"
	candidates := []string{
		filepath.Join("esm5", name),
		filepath.Join("fesm5", name),
		filepath.Join("esm2015", name),
		filepath.Join("fesm2015", name),
	}
	found := existing(p.Root, candidates)
	if len(found) == 0 {
		return "", &NotFoundError{What: "bundle", Path: filepath.Join(p.Root, candidates[0])}
	}
	return found[0], nil
}

// FindItemFile walks the item directory (at most two levels deep) and returns
// the first regular file named name.
func (p *Package) FindItemFile(name string) (string, error) {
	root := p.ItemDir()
	var found string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if d.IsDir() {
			if depth(root, path) >= itemSearchDepth {
				return fs.SkipDir
			}
			return nil
		}
		if d.Name() == name && d.Type().IsRegular() {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil || found == "" {
		return "", &NotFoundError{What: name, Path: root}
	}
	return found, nil
}

func existing(root string, names []string) []string {
	var out []string
	for _, n := range names {
		path := filepath.Join(root, n)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			out = append(out, path)
		}
	}
	return out
}

// depth returns how many path segments path lies below root.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
