package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new rackpy project",
	Long: `Initialize a new rackpy project by creating a project manifest (rackpy.toml)
and a sample program (main.rkt). If [path|name] is omitted, initializes the
current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		return runInit(cmd.OutOrStdout(), arg)
	},
}

// runInit creates rackpy.toml and main.rkt in target (the working directory
// when target is empty or "."). An existing manifest is an error; an existing
// main.rkt is kept.
func runInit(out io.Writer, target string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	switch {
	case target == "" || target == ".":
		target = wd
	case !filepath.IsAbs(target):
		target = filepath.Join(wd, target)
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "rackpy-project"
	}

	manifestPath := filepath.Join(target, manifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, "main.rkt")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainRkt), 0o600); err != nil {
			return fmt.Errorf("failed to write main.rkt: %w", err)
		}
		createdMain = true
	}

	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	fmt.Fprintf(out, "Initialized rackpy project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", manifestName)
	if createdMain {
		fmt.Fprintf(out, "  - main.rkt\n")
	} else {
		fmt.Fprintf(out, "  - main.rkt (existing)\n")
	}
	return nil
}

// buildDefaultManifest returns a manifest with every [transpile] key at its default.
func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# rackpy project manifest
[package]
name = %q

[transpile]
indent = "    "
none = "None"
extension = ".rkt"
jobs = 0
cache = true
lint = true
`, name)
}

// Каждая строка - самостоятельная форма, так что файл годится и для `rackpy run`.
const defaultMainRkt = `(define (square n) (* n n))
(define (fact n) (if (<= n 1) 1 (* n (fact (- n 1)))))
(let ((x 3) (y 4)) (+ (square x) (square y)))
(cons 1 '(2 3))
`
