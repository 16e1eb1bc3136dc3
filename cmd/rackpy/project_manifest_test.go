package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFindRackpyTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, manifestName), "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := findRackpyToml(nested)
	if err != nil || !ok {
		t.Fatalf("findRackpyToml: ok=%v err=%v", ok, err)
	}
	if path != filepath.Join(root, manifestName) {
		t.Errorf("path = %q", path)
	}

	manifest, ok, err := loadProjectManifest(nested)
	if err != nil || !ok {
		t.Fatalf("loadProjectManifest: ok=%v err=%v", ok, err)
	}
	if manifest.Root != root || manifest.Config.Package.Name != "demo" {
		t.Errorf("manifest = %+v", manifest)
	}
	if !manifest.Config.Transpile.Cache || !manifest.Config.Transpile.Lint {
		t.Error("cache and lint must default to true")
	}
}

func TestLoadProjectConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
		check   func(t *testing.T, cfg projectConfig)
	}{
		{
			name:    "full",
			content: "[package]\nname = \"demo\"\n[transpile]\nindent = \"\\t\"\nnone = \"0\"\nextension = \".scm\"\njobs = 3\ncache = false\nlint = false\n",
			check: func(t *testing.T, cfg projectConfig) {
				want := transpileConfig{Indent: "\t", None: "0", Extension: ".scm", Jobs: 3, Cache: false, Lint: false}
				if cfg.Transpile != want {
					t.Errorf("transpile = %+v, want %+v", cfg.Transpile, want)
				}
			},
		},
		{name: "missing package", content: "[transpile]\njobs = 1\n", wantErr: "missing [package]"},
		{name: "missing name", content: "[package]\nname = \"  \"\n", wantErr: "missing [package].name"},
		{name: "bad indent", content: "[package]\nname = \"x\"\n[transpile]\nindent = \"ab\"\n", wantErr: "indent"},
		{name: "bad extension", content: "[package]\nname = \"x\"\n[transpile]\nextension = \"rkt\"\n", wantErr: "extension"},
		{name: "negative jobs", content: "[package]\nname = \"x\"\n[transpile]\njobs = -1\n", wantErr: "jobs"},
		{name: "unknown key", content: "[package]\nname = \"x\"\n[transpile]\nindnet = \" \"\n", wantErr: "unknown key transpile.indnet"},
		{name: "broken toml", content: "[package\n", wantErr: "failed to parse TOML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), manifestName)
			writeTestFile(t, path, tt.content)
			cfg, err := loadProjectConfig(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadProjectConfig: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestRunInitWritesLoadableManifest(t *testing.T) {
	target := filepath.Join(t.TempDir(), "demo")
	var out strings.Builder
	if err := runInit(&out, target); err != nil {
		t.Fatalf("runInit: %v", err)
	}
	if !strings.Contains(out.String(), "rackpy.toml") || !strings.Contains(out.String(), "main.rkt\n") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	cfg, err := loadProjectConfig(filepath.Join(target, manifestName))
	if err != nil {
		t.Fatalf("generated manifest does not load: %v", err)
	}
	if cfg.Package.Name != "demo" || cfg.Transpile.Indent != "    " || !cfg.Transpile.Cache {
		t.Errorf("config = %+v", cfg)
	}
	if _, err := os.Stat(filepath.Join(target, "main.rkt")); err != nil {
		t.Errorf("main.rkt missing: %v", err)
	}

	if err := runInit(&out, target); err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Errorf("second init should fail, got %v", err)
	}
}
