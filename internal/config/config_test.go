package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFormats(t *testing.T) {
	want := DefaultConfig()
	want.Emitter = "go"
	want.Jobs = 4
	want.Rule.Namespace = `Acme\Rules`

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "cfg.yaml", "emitter: go\njobs: 4\nrule:\n  namespace: 'Acme\\Rules'\n"},
		{"toml", "cfg.toml", "emitter = \"go\"\njobs = 4\n[rule]\nnamespace = 'Acme\\Rules'\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"bad emitter", "a.yaml", "emitter: rust\n"},
		{"bad dialect", "b.yaml", "dialect: html\n"},
		{"negative jobs", "c.toml", "jobs = -1\n"},
		{"bad yaml", "d.yaml", "emitter: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.file, tt.content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
