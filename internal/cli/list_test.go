package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bbext-labs/bbext/internal/config"
	"github.com/bbext-labs/bbext/internal/manifest"
	"github.com/bbext-labs/bbext/internal/registry"
	"github.com/google/go-cmp/cmp"
)

// writeFiles creates files (relative path → content) below root.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// testSettings returns default settings pointing at a populated dist.
func testSettings(t *testing.T) config.Settings {
	t.Helper()
	dist := t.TempDir()
	writeFiles(t, dist, map[string]string{
		"product-summary-widget-ang/package.json": `{
  "name": "@backbase/product-summary-widget-ang",
  "description": "Product summary",
  "version": "2.3.0",
  "peerDependencies": {"@backbase/foundation-ang": "^6.0.0"}
}`,
		"accounts-widget-ang/package.json": `{"name": "@backbase/accounts-widget-ang", "version": "1.0.0"}`,
		"foundation-ang/package.json":      `{"name": "@backbase/foundation-ang", "version": "5.2.0"}`,
	})
	return config.Settings{
		DistPath:         dist,
		WidgetPattern:    config.DefaultWidgetPattern,
		Marker:           config.DefaultMarker,
		LibsRoot:         config.DefaultLibsRoot,
		Generator:        "builtin",
		GeneratorCommand: config.DefaultGeneratorCommand,
	}
}

func TestListWidgetsTable(t *testing.T) {
	var out bytes.Buffer
	if err := listWidgets(&out, testSettings(t), false); err != nil {
		t.Fatalf("listWidgets: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out.String())
	}
	for i, want := range [][]string{
		{"WIDGET", "VERSION", "TITLE"},
		{"accounts-widget-ang", "1.0.0", "@backbase/accounts-widget-ang"},
		{"product-summary-widget-ang", "2.3.0", "Product", "summary"},
	} {
		if diff := cmp.Diff(want, strings.Fields(lines[i])); diff != "" {
			t.Errorf("line %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestListWidgetsJSON(t *testing.T) {
	var out bytes.Buffer
	if err := listWidgets(&out, testSettings(t), true); err != nil {
		t.Fatalf("listWidgets: %v", err)
	}

	var got []registry.DiscoveredWidget
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(got) != 2 || got[1].ID != "product-summary-widget-ang" || got[1].Version != "2.3.0" {
		t.Errorf("got %+v", got)
	}
}

func TestListWidgetsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		distPath func(t *testing.T) string
		asJSON   bool
		want     string
	}{
		{"missing dist", func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent") }, false, "does not exist"},
		{"no matches", func(t *testing.T) string { return t.TempDir() }, false, "No widgets matching"},
		{"json", func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent") }, true, "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := config.Settings{DistPath: tt.distPath(t), WidgetPattern: config.DefaultWidgetPattern}
			var out bytes.Buffer
			if err := listWidgets(&out, s, tt.asJSON); err != nil {
				t.Fatalf("listWidgets: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output = %q, want it to contain %q", out.String(), tt.want)
			}
		})
	}
}

func TestResolveTarget(t *testing.T) {
	s := testSettings(t)

	t.Run("menu and defaults", func(t *testing.T) {
		var out bytes.Buffer
		reader := bufio.NewReader(strings.NewReader("2\n\n\n"))
		got, err := resolveTarget(reader, &out, s, "", "", "")
		if err != nil {
			t.Fatalf("resolveTarget: %v", err)
		}
		want := &extendTarget{Widget: "product-summary-widget-ang", Title: "Product summary", Module: "product-summary-widget-ang"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("target mismatch (-want +got):\n%s", diff)
		}
		if !strings.Contains(out.String(), "  2) product-summary-widget-ang - Product summary\n") {
			t.Errorf("menu = %q", out.String())
		}
	})

	t.Run("flags skip prompts", func(t *testing.T) {
		var out bytes.Buffer
		got, err := resolveTarget(bufio.NewReader(strings.NewReader("")), &out, s, "accounts-widget-ang", "Accounts", "accounts-ext")
		if err != nil {
			t.Fatalf("resolveTarget: %v", err)
		}
		if got.Module != "accounts-ext" || got.Title != "Accounts" {
			t.Errorf("got %+v", got)
		}
		if out.Len() != 0 {
			t.Errorf("unexpected prompt output %q", out.String())
		}
	})

	t.Run("invalid module name", func(t *testing.T) {
		_, err := resolveTarget(bufio.NewReader(strings.NewReader("")), &bytes.Buffer{}, s, "accounts-widget-ang", "Accounts", "Accounts Ext")
		if err == nil {
			t.Error("expected error for invalid module name")
		}
	})

	t.Run("no widgets", func(t *testing.T) {
		empty := s
		empty.DistPath = t.TempDir()
		_, err := resolveTarget(bufio.NewReader(strings.NewReader("1\n")), &bytes.Buffer{}, empty, "", "", "")
		if err == nil || !strings.Contains(err.Error(), "no widgets") {
			t.Errorf("err = %v, want no widgets error", err)
		}
	})
}

func TestRunWidgetCheck(t *testing.T) {
	var out bytes.Buffer
	runWidgetCheck(&out, testSettings(t))

	got := out.String()
	for _, want := range []string{
		"[ OK ] accounts-widget-ang 1.0.0",
		"[WARN] product-summary-widget-ang: @backbase/foundation-ang 5.2.0 is installed but ^6.0.0 is required",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunManifestCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, manifest.FileName)
	m := &manifest.Extension{
		Name:      "product-summary-ext",
		Title:     "Product summary",
		Component: "ProductSummaryExtComponent",
		Tag:       "bb-product-summary-widget",
		Generator: "builtin",
		Source: manifest.Source{
			ID:        "product-summary-widget-ang",
			Package:   "@backbase/product-summary-widget-ang",
			Module:    "ProductSummaryWidgetModule",
			Component: "ProductSummaryWidgetComponent",
		},
		Files: []string{"model.xml"},
	}
	if err := manifest.Write(path, m); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var out bytes.Buffer
	if err := runManifestCheck(&out, path); err != nil {
		t.Fatalf("runManifestCheck: %v", err)
	}
	if !strings.Contains(out.String(), "[ OK ] product-summary-ext extends product-summary-widget-ang") {
		t.Errorf("output = %q", out.String())
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFiles(t, dir, map[string]string{"bad.yaml": "schemaVersion: 1\nname: Bad Name\n"})
	out.Reset()
	if err := runManifestCheck(&out, bad); err == nil {
		t.Error("expected error for invalid manifest")
	}
	if !strings.Contains(out.String(), "validation issue(s)") {
		t.Errorf("output = %q", out.String())
	}
}
