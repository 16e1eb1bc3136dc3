package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rackpy/internal/diag"
	"rackpy/internal/diagfmt"
	"rackpy/internal/driver"
	"rackpy/internal/observ"
	"rackpy/internal/parser"
	"rackpy/internal/source"
	"rackpy/internal/translate"
)

// globalFlags - persistent flags of the root command.
type globalFlags struct {
	color          string
	quiet          bool
	timings        bool
	maxDiagnostics int
	minSeverity    diag.Severity
}

func readGlobalFlags(cmd *cobra.Command) (globalFlags, error) {
	pf := cmd.Root().PersistentFlags()
	var g globalFlags
	var err error
	if g.color, err = pf.GetString("color"); err != nil {
		return g, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch g.color {
	case "auto", "on", "off":
	default:
		return g, fmt.Errorf("invalid --color value %q (expected auto|on|off)", g.color)
	}
	if g.quiet, err = pf.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = pf.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	minSeverity, err := pf.GetString("min-severity")
	if err != nil {
		return g, fmt.Errorf("failed to get min-severity flag: %w", err)
	}
	if g.minSeverity, err = diag.ParseSeverity(minSeverity); err != nil {
		return g, fmt.Errorf("invalid --min-severity: %w", err)
	}
	return g, nil
}

// useColor: цвет только для терминала, если не задан явно.
func (g globalFlags) useColor(w io.Writer) bool {
	if g.color != "auto" {
		return g.color == "on"
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// reportable: есть ли в bag что-то не ниже --min-severity.
func (g globalFlags) reportable(bag *diag.Bag) bool {
	return bag != nil && bag.Filter(g.minSeverity).Len() > 0
}

// printDiagnostics пишет диагностику в w; без диагностики печатает саму ошибку.
func printDiagnostics(w io.Writer, g globalFlags, bag *diag.Bag, fs *source.FileSet, err error) {
	color := g.useColor(w)
	if bag != nil {
		bag = bag.Filter(g.minSeverity)
	}
	if bag != nil && bag.Len() > 0 {
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     color,
			Context:   2,
			ShowNotes: true,
			ShowFixes: true,
		})
		if bag.HasErrors() {
			return
		}
	}
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
	}
}

// describeError is the one-line form used by per-line and REPL output.
func describeError(err error) string {
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		return fmt.Sprintf("syntax error at line %d, column %d: %s", se.Pos.Line, se.Pos.Col, se.Message)
	}
	return err.Error()
}

// addTranslateFlags регистрирует флаги, перекрывающие [transpile] манифеста.
func addTranslateFlags(cmd *cobra.Command) {
	cmd.Flags().String("indent", "", "indentation of function bodies (default from rackpy.toml or four spaces)")
	cmd.Flags().String("none", "", "literal for an if without else (default None)")
}

func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().Int("jobs", 0, "max parallel units (0=auto)")
	addUIFlag(cmd.Flags())
}

// commandSettings собирает driver.Options из манифеста и флагов команды.
type commandSettings struct {
	global   globalFlags
	manifest *projectManifest
	driver   driver.Options
	useCache bool
}

func loadSettings(cmd *cobra.Command) (*commandSettings, error) {
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return nil, err
	}
	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return nil, err
	}

	cfg := defaultTranspileConfig()
	if manifest != nil {
		cfg = manifest.Config.Transpile
	}
	s := &commandSettings{
		global:   g,
		manifest: manifest,
		useCache: cfg.Cache,
		driver: driver.Options{
			MaxDiagnostics: g.maxDiagnostics,
			Jobs:           cfg.Jobs,
			Extension:      cfg.Extension,
			Translate:      translate.Options{Indent: cfg.Indent, NoneLiteral: cfg.None},
			NoLint:         !cfg.Lint,
		},
	}

	flags := cmd.Flags()
	if f := flags.Lookup("indent"); f != nil && f.Changed {
		s.driver.Translate.Indent = f.Value.String()
	}
	if f := flags.Lookup("none"); f != nil && f.Changed {
		s.driver.Translate.NoneLiteral = f.Value.String()
	}
	if f := flags.Lookup("jobs"); f != nil && f.Changed {
		if s.driver.Jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if f := flags.Lookup("ext"); f != nil && f.Changed {
		s.driver.Extension = f.Value.String()
	}
	if f := flags.Lookup("no-cache"); f != nil && f.Changed {
		noCache, err := flags.GetBool("no-cache")
		if err != nil {
			return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
		}
		s.useCache = !noCache
	}
	if f := flags.Lookup("no-lint"); f != nil && f.Changed {
		noLint, err := flags.GetBool("no-lint")
		if err != nil {
			return nil, fmt.Errorf("failed to get no-lint flag: %w", err)
		}
		s.driver.NoLint = noLint
	}
	// пустые значения translate заменяет умолчаниями
	s.driver.Translate = translate.New(s.driver.Translate).Options()

	if g.timings {
		s.driver.Timer = observ.NewTimer()
	}
	return s, nil
}

// openCache подключает дисковый кэш; сбой открытия не фатален.
func (s *commandSettings) openCache(errOut io.Writer) {
	if !s.useCache {
		return
	}
	cache, err := driver.OpenDiskCache("rackpy")
	if err != nil {
		if !s.global.quiet {
			fmt.Fprintf(errOut, "warning: cache disabled: %v\n", err)
		}
		return
	}
	s.driver.Cache = cache
}

func (s *commandSettings) printTimings(out io.Writer) {
	if s.driver.Timer == nil {
		return
	}
	fmt.Fprint(out, s.driver.Timer.Summary())
}

const stdinArg = "-"

// readInput читает файл или stdin для "-"; name - имя единицы в диагностике.
func readInput(cmd *cobra.Command, path string) (string, []byte, error) {
	if path == stdinArg {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", src, nil
	}
	// #nosec G304 -- path is provided by the user
	src, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	return path, src, nil
}
