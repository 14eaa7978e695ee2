package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func validExtension() *Extension {
	return &Extension{
		Name:      "product-summary-ext",
		Title:     "Product summary",
		Component: "ProductSummaryExtComponent",
		Tag:       "bb-product-summary-widget",
		Generator: "builtin",
		Source: Source{
			ID:        "product-summary-widget-ang",
			Package:   "@backbase/product-summary-widget-ang",
			Version:   "2.3.0",
			Module:    "ProductSummaryWidgetModule",
			Component: "ProductSummaryWidgetComponent",
		},
		Inputs:  []string{"pageSize"},
		Outputs: []string{"navigate"},
		Files:   []string{"model.xml", "src/lib/product-summary-ext.component.ts"},
	}
}

func TestWriteAndParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	m := validExtension()
	if err := Write(path, m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if m.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", m.SchemaVersion, SchemaVersion)
	}

	got, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	result, err := ValidateFile(path)
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !result.Valid {
		t.Errorf("written manifest invalid: %+v", result.Issues)
	}
}

func TestWriteRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Extension)
		path   string
	}{
		{"bad name", func(m *Extension) { m.Name = "Product Summary" }, "/name"},
		{"bad component", func(m *Extension) { m.Component = "productSummary" }, "/component"},
		{"unknown generator", func(m *Extension) { m.Generator = "yeoman" }, "/generator"},
		{"module not an identifier", func(m *Extension) { m.Source.Module = "not an identifier" }, "/source/module"},
		{"empty output", func(m *Extension) { m.Outputs = []string{"navigate", ""} }, "/outputs/1"},
		{"no files", func(m *Extension) { m.Files = nil }, "/files"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			m := validExtension()
			tt.mutate(m)

			err := Write(path, m)
			var ie *InvalidError
			if !errors.As(err, &ie) {
				t.Fatalf("err = %v, want *InvalidError", err)
			}
			found := false
			for _, issue := range ie.Issues {
				if issue.Path == tt.path {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue at %s in %+v", tt.path, ie.Issues)
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Error("invalid manifest was written")
			}
		})
	}
}

func TestWriteAcceptsPackageIDTags(t *testing.T) {
	for _, tag := range []string{"bb-product_summary-widget", "bb-product.summary-widget", "bb-summary"} {
		m := validExtension()
		m.Tag = tag
		if err := Write(filepath.Join(t.TempDir(), FileName), m); err != nil {
			t.Errorf("Write with tag %q: %v", tag, err)
		}
	}
}

func TestValidateInvalidYAML(t *testing.T) {
	if _, err := Validate([]byte("name: [unclosed")); err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}

func TestValidateFileNotFound(t *testing.T) {
	if _, err := ValidateFile(filepath.Join(t.TempDir(), "nonexistent.yaml")); err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestValidateMissingRequired(t *testing.T) {
	result, err := Validate([]byte("schemaVersion: 1\nname: x-ext\n"))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	for _, issue := range result.Issues {
		if issue.Message == "" {
			t.Errorf("issue without message: %+v", issue)
		}
	}
}

func TestSchemaCompiles(t *testing.T) {
	schema, err := getSchema()
	if err != nil {
		t.Fatalf("getSchema() error: %v", err)
	}
	if schema == nil {
		t.Fatal("getSchema() returned nil schema")
	}
}

func TestValidateReportsLines(t *testing.T) {
	doc := `schemaVersion: 1
name: product-summary-ext
title: Product summary
component: productSummary
tag: bb-product-summary-widget
extensionSlots: false
generator: builtin
source:
  id: product-summary-widget-ang
  package: "@backbase/product-summary-widget-ang"
  module: ProductSummaryWidgetModule
  component: ProductSummaryWidgetComponent
files:
  - model.xml
`
	result, err := Validate([]byte(doc))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	want := []ValidationIssue{{Path: "/component", Line: 4, Keyword: "pattern"}}
	got := make([]ValidationIssue, len(result.Issues))
	for i, issue := range result.Issues {
		issue.Message = ""
		got[i] = issue
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
}
