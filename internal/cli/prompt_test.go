package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestSelectFromList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"first", "1\n", 0, false},
		{"last with spaces", "  3 \n", 2, false},
		{"no trailing newline", "2", 1, false},
		{"zero", "0\n", 0, true},
		{"out of range", "4\n", 0, true},
		{"not a number", "accounts\n", 0, true},
		{"empty input", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := selectFromList(bufio.NewReader(strings.NewReader(tt.input)), &out, "Pick:", []string{"a", "b", "c"})
			if tt.wantErr {
				if err == nil {
					t.Errorf("selectFromList(%q) = %d, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("selectFromList(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("selectFromList(%q) = %d, want %d", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "  2) b\n") || !strings.Contains(out.String(), "Enter number [1-3]: ") {
				t.Errorf("menu output = %q", out.String())
			}
		})
	}
}

func TestAskWithDefault(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		def        string
		want       string
		wantPrompt string
	}{
		{"answer", "Savings\n", "Product summary", "Savings", "Title [Product summary]: "},
		{"empty accepts default", "\n", "Product summary", "Product summary", "Title [Product summary]: "},
		{"eof accepts default", "", "Product summary", "Product summary", "Title [Product summary]: "},
		{"no default", "  Savings  \n", "", "Savings", "Title: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := askWithDefault(bufio.NewReader(strings.NewReader(tt.input)), &out, "Title", tt.def)
			if err != nil {
				t.Fatalf("askWithDefault: %v", err)
			}
			if got != tt.want {
				t.Errorf("askWithDefault = %q, want %q", got, tt.want)
			}
			if out.String() != tt.wantPrompt {
				t.Errorf("prompt = %q, want %q", out.String(), tt.wantPrompt)
			}
		})
	}
}
