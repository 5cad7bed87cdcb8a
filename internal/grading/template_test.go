package grading

import (
	"os"
	"path/filepath"
	"testing"
)

// --- DefaultTemplate ---

func TestDefaultTemplate_SumsTo100(t *testing.T) {
	tmpl := DefaultTemplate()

	total := 0.0
	for _, max := range tmpl.Categories {
		total += max
	}
	if total != 100 {
		t.Errorf("default template budget sums to %v, want 100", total)
	}
	if tmpl.Version != DefaultTemplateVersion {
		t.Errorf("version = %q, want %q", tmpl.Version, DefaultTemplateVersion)
	}
}

// --- LoadTemplate ---

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing template fixture: %v", err)
	}
	return path
}

func TestLoadTemplate_EmptyPathReturnsDefault(t *testing.T) {
	tmpl, err := LoadTemplate("")
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if tmpl.Hash() != DefaultTemplate().Hash() {
		t.Error("empty path must yield the default template")
	}
}

func TestLoadTemplate_Valid(t *testing.T) {
	path := writeTemplate(t, `
version: "3.0.0"
categories:
  naming: 50
  security: 50
`)
	tmpl, err := LoadTemplate(path)
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if tmpl.Version != "3.0.0" {
		t.Errorf("version = %q, want 3.0.0", tmpl.Version)
	}
	if tmpl.Categories["naming"] != 50 {
		t.Errorf("naming budget = %v, want 50", tmpl.Categories["naming"])
	}
}

func TestLoadTemplate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no version", "categories:\n  naming: 10\n"},
		{"no categories", "version: \"3.0.0\"\n"},
		{"zero budget", "version: \"3.0.0\"\ncategories:\n  naming: 0\n"},
		{"negative budget", "version: \"3.0.0\"\ncategories:\n  naming: -5\n"},
		{"not yaml", "{{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTemplate(writeTemplate(t, tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadTemplate_MissingFile(t *testing.T) {
	if _, err := LoadTemplate(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

// --- Hash ---

func TestTemplateHash_KeyOrderIndependent(t *testing.T) {
	a := Template{Version: "1", Categories: map[string]float64{"naming": 10, "http": 15}}
	b := Template{Version: "1", Categories: map[string]float64{"http": 15, "naming": 10}}

	if a.Hash() != b.Hash() {
		t.Error("map construction order must not change the template hash")
	}
}

func TestTemplateHash_ContentSensitive(t *testing.T) {
	a := Template{Version: "1", Categories: map[string]float64{"naming": 10}}
	b := Template{Version: "1", Categories: map[string]float64{"naming": 20}}
	c := Template{Version: "2", Categories: map[string]float64{"naming": 10}}

	if a.Hash() == b.Hash() {
		t.Error("budget change must change the hash")
	}
	if a.Hash() == c.Hash() {
		t.Error("version change must change the hash")
	}
}
