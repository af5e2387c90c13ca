package template

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validTemplate = `name: template/test
version: 1.0.0
description: Publishes the template yaml from sd-template.yaml
maintainer: foo@example.com
config:
  image: node:18
  steps:
    - publish: node ./publish.js
`

func writeTemplate(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sd-template.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeTemplate(t, validTemplate)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error = %v", err)
	}

	if cfg.Name != "template/test" {
		t.Errorf("Name = %q, want %q", cfg.Name, "template/test")
	}
	if cfg.Version != "1.0.0" {
		t.Errorf("Version = %q, want %q", cfg.Version, "1.0.0")
	}
	if cfg.Namespace != "" {
		t.Errorf("Namespace = %q, want empty", cfg.Namespace)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
	if _, ok := cfg.Document["config"]; !ok {
		t.Error("Document is missing the config section")
	}
}

func TestLoadConfig_NumericVersion(t *testing.T) {
	path := writeTemplate(t, "name: foo\nnamespace: bar\nversion: 2.1\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error = %v", err)
	}

	if cfg.Version != "2.1" {
		t.Errorf("Version = %q, want %q", cfg.Version, "2.1")
	}
	if cfg.Namespace != "bar" {
		t.Errorf("Namespace = %q, want %q", cfg.Namespace, "bar")
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		content *string
		wantErr error
	}{
		{
			name:    "missing file",
			path:    filepath.Join(dir, "missing.yaml"),
			wantErr: ErrRead,
		},
		{
			name:    "directory",
			path:    dir,
			wantErr: ErrRead,
		},
		{
			name:    "malformed yaml",
			path:    filepath.Join(dir, "bad.yaml"),
			content: strPtr("name: [unclosed\n"),
			wantErr: ErrParse,
		},
		{
			name:    "empty document",
			path:    filepath.Join(dir, "empty.yaml"),
			content: strPtr(""),
			wantErr: ErrParse,
		},
		{
			name:    "top level list",
			path:    filepath.Join(dir, "list.yaml"),
			content: strPtr("- a\n- b\n"),
			wantErr: ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.content != nil {
				if err := os.WriteFile(tt.path, []byte(*tt.content), 0o600); err != nil {
					t.Fatalf("failed to write file: %v", err)
				}
			}

			_, err := LoadConfig(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Serialize(t *testing.T) {
	cfg, err := Parse([]byte("name: foo\nversion: 1.0.0\nlabels:\n  1: one\nconfig:\n  steps:\n    - a: echo\n"))
	if err != nil {
		t.Fatalf("Parse() unexpected error = %v", err)
	}

	payload, err := cfg.Serialize()
	if err != nil {
		t.Fatalf("Serialize() unexpected error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("Serialize() produced invalid JSON: %v", err)
	}

	if decoded["name"] != "foo" {
		t.Errorf("decoded name = %v, want foo", decoded["name"])
	}
	labels, ok := decoded["labels"].(map[string]any)
	if !ok || labels["1"] != "one" {
		t.Errorf("non-string keys were not normalized: %v", decoded["labels"])
	}
}

func strPtr(s string) *string {
	return &s
}
