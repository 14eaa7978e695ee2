package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func setup(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestCurrentDefaults(t *testing.T) {
	setup(t)
	Load()

	s := Current()
	if s.DistPath != DefaultDistPath {
		t.Errorf("DistPath = %q, want %q", s.DistPath, DefaultDistPath)
	}
	if s.WidgetPattern != DefaultWidgetPattern {
		t.Errorf("WidgetPattern = %q, want %q", s.WidgetPattern, DefaultWidgetPattern)
	}
	if s.ExtensionSlots {
		t.Error("ExtensionSlots should default to false")
	}
	if s.LibsRoot != DefaultLibsRoot {
		t.Errorf("LibsRoot = %q, want %q", s.LibsRoot, DefaultLibsRoot)
	}
}

func TestEnvOverridesDefault(t *testing.T) {
	setup(t)
	t.Setenv("BBEXT_DIST_PATH", "/opt/widgets")
	t.Setenv("BBEXT_ENABLE_EXTENSION_SLOTS", "true")
	Load()

	s := Current()
	if s.DistPath != "/opt/widgets" {
		t.Errorf("DistPath = %q, want %q", s.DistPath, "/opt/widgets")
	}
	if !s.ExtensionSlots {
		t.Error("ExtensionSlots should be true from env")
	}
}

func TestFlagOverridesEnv(t *testing.T) {
	setup(t)
	t.Setenv("BBEXT_MARKER", "fromEnv")
	Load()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(KeyMarker, DefaultMarker, "")
	if err := fs.Parse([]string{"--marker", "fromFlag"}); err != nil {
		t.Fatal(err)
	}
	if err := BindFlags(fs); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	if got := Current().Marker; got != "fromFlag" {
		t.Errorf("Marker = %q, want %q", got, "fromFlag")
	}
}

func TestSetPersists(t *testing.T) {
	home := setup(t)
	Load()

	if err := Set(KeyProject, "retail-app"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, ".bbext", "config.yaml"))
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	if want := "project: retail-app"; !strings.Contains(string(data), want) {
		t.Errorf("config file = %q, want it to contain %q", data, want)
	}
	if got := Get(KeyProject); got != "retail-app" {
		t.Errorf("Get() = %q, want %q", got, "retail-app")
	}
}
