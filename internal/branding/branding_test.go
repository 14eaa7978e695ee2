package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "bbext" {
		t.Errorf("CLIName() = %q, want %q", got, "bbext")
	}
	if got := HomeDir(); got != ".bbext" {
		t.Errorf("HomeDir() = %q, want %q", got, ".bbext")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("dist_path"); got != "BBEXT_DIST_PATH" {
		t.Errorf("EnvVar() = %q, want %q", got, "BBEXT_DIST_PATH")
	}
}
