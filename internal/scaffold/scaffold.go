package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/bbext-labs/bbext/internal/widget"
)

//go:embed all:templates
var templateFS embed.FS

const (
	templateSet     = "library"
	namePlaceholder = "__name__"
	selectorPrefix  = "lib-"
)

// Data holds all template variables available to the library templates.
type Data struct {
	Name        string // library name, e.g. "product-summary-ext"
	Selector    string // e.g. "lib-product-summary-ext"
	ClassPrefix string // e.g. "ProductSummaryExt"
	RootPath    string // relative path from the library back to the workspace root
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string // slash-separated, relative to OutputDir
}

// NewData creates Data for a library called name placed under libsRoot.
func NewData(name, libsRoot string) *Data {
	return &Data{
		Name:        name,
		Selector:    selectorPrefix + name,
		ClassPrefix: widget.ClassName(name, ""),
		RootPath:    rootPath(filepath.Join(libsRoot, name)),
	}
}

// ComponentType returns the class name of the library's component.
func (d *Data) ComponentType() string {
	return d.ClassPrefix + "Component"
}

// Paths of the generated sources relative to the library directory. These
// match what the Angular CLI produces for a library.

// ComponentPath returns the component source of library name.
func ComponentPath(name string) string {
	return filepath.Join("src", "lib", name+".component.ts")
}

// ModulePath returns the module source of library name.
func ModulePath(name string) string {
	return filepath.Join("src", "lib", name+".module.ts")
}

// TemplatePath returns the component template of library name.
func TemplatePath(name string) string {
	return filepath.Join("src", "lib", name+".component.html")
}

// Generate renders the library templates into outputDir, which must be
// empty or absent.
func Generate(data *Data, outputDir string) (*Result, error) {
	root := path.Join("templates", templateSet)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Check for existing files to prevent accidental overwrites.
	existingEntries, err := os.ReadDir(outputDir)
	if err == nil && len(existingEntries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	result := &Result{OutputDir: outputDir}

	err = fs.WalkDir(templateFS, root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}

		tmplBytes, err := fs.ReadFile(templateFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		rel := strings.TrimPrefix(p, root+"/")
		rel = strings.TrimSuffix(rel, ".tmpl")
		rel = strings.ReplaceAll(rel, namePlaceholder, data.Name)
		outPath := filepath.Join(outputDir, filepath.FromSlash(rel))

		tmpl, err := template.New(entry.Name()).Parse(string(tmplBytes))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("executing template %s: %w", entry.Name(), err)
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
		}
		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// rootPath returns the "../.." path leading from dir back to its root.
func rootPath(dir string) string {
	depth := len(strings.Split(filepath.ToSlash(filepath.Clean(dir)), "/"))
	return strings.TrimSuffix(strings.Repeat("../", depth), "/")
}
