//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const widgetID = "product-summary-widget-ang"

// testEnv holds paths to an isolated workspace.
type testEnv struct {
	HomeDir  string // HOME, so no real user config is read
	WorkDir  string // Angular workspace root
	DistPath string // installed widgets, relative to WorkDir
}

// setupTestEnv creates a workspace with one widget installed in
// node_modules/@backbase.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:  t.TempDir(),
		WorkDir:  t.TempDir(),
		DistPath: filepath.Join("node_modules", "@backbase"),
	}
	t.Setenv("HOME", env.HomeDir)

	dist := filepath.Join(env.WorkDir, env.DistPath)
	widgetDir := filepath.Join(dist, widgetID)
	writeFile(t, filepath.Join(widgetDir, "package.json"), `{
  "name": "@backbase/product-summary-widget-ang",
  "description": "Product summary",
  "version": "2.3.0",
  "peerDependencies": {"@backbase/foundation-ang": "^6.0.0", "@angular/core": "^8.0.0"}
}`)
	writeFile(t, filepath.Join(widgetDir, "index.d.ts"), "export * from './public_api';\n")
	writeFile(t, filepath.Join(widgetDir, "public_api.d.ts"),
		"export { ProductSummaryWidgetModule } from './product-summary-widget.module';\n"+
			"export { ProductSummaryWidgetComponent } from './product-summary-widget.component';\n")
	writeFile(t, filepath.Join(widgetDir, "fesm2015", "backbase-product-summary-widget-ang.js"), `ProductSummaryWidgetComponent.decorators = [
    { type: Component, args: [{
                selector: 'bb-product-summary-widget',
                template: "<div bbCustomizable=\"header\"><h2>{{ title }}</h2></div>\n<ng-template bbCustomizable=\"row\" let-item><span>{{ item.name }}</span></ng-template>"
            }] }
];
`)
	writeFile(t, filepath.Join(widgetDir, "backbase-items", "product-summary-widget", "model.xml"), `<?xml version="1.0" encoding="UTF-8"?>
<catalog>
  <widget>
    <name>product-summary-widget-ang</name>
    <properties>
      <property name="classId" viewHint="designModeOnly">
        <value type="string">ProductSummaryWidgetComponent</value>
      </property>
      <property name="title" label="Title">
        <value type="string">Product Summary</value>
      </property>
      <property name="route" label="Route">
        <value type="string">summary</value>
      </property>
      <property name="output.itemSelected">
        <value type="string">product-summary-widget-ang.itemSelected</value>
      </property>
      <property name="output.item-opened">
        <value type="string">product-summary-widget-ang.itemOpened</value>
      </property>
    </properties>
  </widget>
</catalog>
`)
	writeFile(t, filepath.Join(widgetDir, "backbase-items", "product-summary-widget", "options.json"), `{"pageSize": 10}`)
	writeFile(t, filepath.Join(widgetDir, "backbase-items", "icon.png"), "png")
	writeFile(t, filepath.Join(dist, "foundation-ang", "package.json"), `{"name": "@backbase/foundation-ang", "version": "6.1.0"}`)

	return env
}

// fakeAngularCLI writes a shell script that answers `generate library <name>`
// with the Angular CLI's library layout for "savings-ext".
func fakeAngularCLI(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}
	path := filepath.Join(t.TempDir(), "ng")
	writeFile(t, path, `#!/bin/sh
[ "$1" = generate ] && [ "$2" = library ] || { echo "unexpected arguments: $*" >&2; exit 1; }
dir=libs/$3/src/lib
mkdir -p "$dir"
cat > "$dir/$3.component.ts" <<'EOF'
import { Component, OnInit } from '@angular/core';

@Component({
  selector: 'lib-savings-ext',
  template: `+"`"+`
    <p>
      savings-ext works!
    </p>
  `+"`"+`,
  styles: []
})
export class SavingsExtComponent implements OnInit {

  constructor() { }

  ngOnInit() {
  }

}
EOF
cat > "$dir/$3.module.ts" <<'EOF'
import { NgModule } from '@angular/core';
import { SavingsExtComponent } from './savings-ext.component';

@NgModule({
  declarations: [SavingsExtComponent],
  imports: [
  ],
  exports: [SavingsExtComponent]
})
export class SavingsExtModule { }
EOF
echo "CREATE libs/$3"
`)
	if err := os.Chmod(path, 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
