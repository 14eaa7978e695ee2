package registry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bbext-labs/bbext/internal/widget"
)

// DiscoveredWidget is an installed widget package, enriched with its
// descriptor when one can be read.
type DiscoveredWidget struct {
	ID      string `json:"id"`                // directory name, e.g. "product-summary-widget-ang"
	Package string `json:"package,omitempty"` // npm package name from the descriptor
	Title   string `json:"title,omitempty"`
	Version string `json:"version,omitempty"`
}

// Discover lists the directories directly below distPath whose name contains
// pattern, sorted by name. A missing distPath is a *widget.NotFoundError; no
// matches is an empty result.
func Discover(distPath, pattern string) ([]DiscoveredWidget, error) {
	entries, err := os.ReadDir(distPath)
	if err != nil {
		return nil, &widget.NotFoundError{What: "widget distribution directory", Path: distPath}
	}

	var result []DiscoveredWidget
	for _, entry := range entries {
		if !isPackageDir(distPath, entry) || !strings.Contains(entry.Name(), pattern) {
			continue
		}

		dw := DiscoveredWidget{ID: entry.Name()}

		// Enrich with descriptor metadata if parseable.
		p := &widget.Package{ID: entry.Name(), Root: filepath.Join(distPath, entry.Name())}
		if d, err := widget.LoadDescriptor(p); err == nil {
			dw.Package = d.Name
			dw.Title = d.Title
			dw.Version = d.Version
		}

		result = append(result, dw)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// isPackageDir reports whether entry is a directory, following symlinks as
// package managers link workspace packages.
func isPackageDir(parent string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(parent, entry.Name()))
	return err == nil && info.IsDir()
}
