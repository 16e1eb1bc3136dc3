package main

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const manifestName = "rackpy.toml"

// projectManifest is a loaded rackpy.toml; Root is the directory holding it.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package   packageConfig   `toml:"package"`
	Transpile transpileConfig `toml:"transpile"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

// transpileConfig is [transpile]; command-line flags win over it.
type transpileConfig struct {
	Indent    string `toml:"indent"`
	None      string `toml:"none"`
	Extension string `toml:"extension"`
	Jobs      int    `toml:"jobs"`
	Cache     bool   `toml:"cache"`
	Lint      bool   `toml:"lint"`
}

func defaultTranspileConfig() transpileConfig {
	return transpileConfig{Cache: true, Lint: true}
}

// findRackpyToml walks from startDir up to the filesystem root.
func findRackpyToml(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(cmp.Or(startDir, "."))
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		_, err := os.Stat(candidate)
		switch {
		case err == nil:
			return candidate, true, nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// loadProjectManifest reports ok=false with a nil error when no manifest
// exists above startDir.
func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	path, ok, err := findRackpyToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// manifestRule checks one key; key is only consulted when set in the file.
type manifestRule struct {
	key  []string
	bad  func(projectConfig) bool
	what string
}

var manifestRules = []manifestRule{
	{nil, func(c projectConfig) bool { return strings.TrimSpace(c.Package.Name) == "" }, "missing [package].name"},
	{[]string{"transpile", "indent"}, func(c projectConfig) bool {
		return c.Transpile.Indent == "" || strings.Trim(c.Transpile.Indent, " \t") != ""
	}, "[transpile].indent must be non-empty spaces or tabs"},
	{[]string{"transpile", "extension"}, func(c projectConfig) bool {
		return !strings.HasPrefix(c.Transpile.Extension, ".")
	}, "[transpile].extension must start with '.'"},
	{nil, func(c projectConfig) bool { return c.Transpile.Jobs < 0 }, "[transpile].jobs must be >= 0"},
}

func loadProjectConfig(path string) (projectConfig, error) {
	cfg := projectConfig{Transpile: defaultTranspileConfig()}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return projectConfig{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	for _, r := range manifestRules {
		if r.key != nil && !meta.IsDefined(r.key...) {
			continue
		}
		if r.bad(cfg) {
			return projectConfig{}, fmt.Errorf("%s: %s", path, r.what)
		}
	}
	return cfg, nil
}
