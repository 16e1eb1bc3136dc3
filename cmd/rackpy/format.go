package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rackpy/internal/driver"
	"rackpy/internal/format"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path|-> [path...]",
	Short: "Format Racket source files",
	Long: `Format rewrites Racket sources in canonical layout. Directories are walked
for --ext files. With --check nothing is written and the command fails when any
file would change.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Int("width", 80, "target line width")
	fmtCmd.Flags().String("ext", "", "source file extension for directories (default .rkt)")
}

var (
	errFmtFailed  = errors.New("fmt: failed to format some files")
	errFmtChanges = errors.New("fmt: formatting changes required")
)

// fmtFlags are the fmt-only flags.
type fmtFlags struct {
	check  bool
	stdout bool
	output string
	width  int
}

func readFmtFlags(cmd *cobra.Command) (f fmtFlags, err error) {
	fl := cmd.Flags()
	if f.check, err = fl.GetBool("check"); err != nil {
		return f, fmt.Errorf("failed to get check flag: %w", err)
	}
	if f.stdout, err = fl.GetBool("stdout"); err != nil {
		return f, fmt.Errorf("failed to get stdout flag: %w", err)
	}
	if f.output, err = fl.GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	if f.width, err = fl.GetInt("width"); err != nil {
		return f, fmt.Errorf("failed to get width flag: %w", err)
	}
	switch {
	case f.output != "text" && f.output != "json":
		return f, fmt.Errorf("fmt: unsupported output format %q", f.output)
	case f.stdout && f.check:
		return f, errors.New("fmt: --stdout cannot be used with --check")
	case f.stdout && f.output != "text":
		return f, errors.New("fmt: --stdout is only supported with text output")
	}
	return f, nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	flags, err := readFmtFlags(cmd)
	if err != nil {
		return err
	}
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	opts := driver.FormatOptions{
		Options: settings.driver,
		Format:  format.Options{Width: flags.width},
		Check:   flags.check,
		Stdout:  flags.stdout,
	}

	var results []driver.FormatResult
	if len(args) == 1 && args[0] == stdinArg {
		name, src, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		results = []driver.FormatResult{driver.FormatSource(cmd.Context(), name, src, opts)}
		// stdin некуда переписывать
		flags.stdout = !flags.check
	} else if results, err = driver.FormatPaths(cmd.Context(), args, opts); err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var failed, changed bool
	switch {
	case flags.output == "json":
		if err := renderFmtJSON(out, results, flags.check); err != nil {
			return err
		}
		failed, changed = fmtOutcome(results)
	case flags.stdout:
		failed = renderFmtStdout(out, errOut, results)
	default:
		failed, changed = renderFmtText(out, errOut, results, flags.check, settings.global.quiet)
	}

	if failed {
		return errFmtFailed
	}
	if flags.check && changed {
		return errFmtChanges
	}
	return nil
}

func fmtOutcome(results []driver.FormatResult) (failed, changed bool) {
	for _, res := range results {
		failed = failed || res.Err != nil
		changed = changed || res.Changed
	}
	return failed, changed
}

func reportFmtError(errOut io.Writer, res driver.FormatResult) {
	fmt.Fprintf(errOut, "fmt: %s: %s\n", res.Path, describeError(res.Err))
}

func renderFmtStdout(out, errOut io.Writer, results []driver.FormatResult) (failed bool) {
	for _, res := range results {
		if res.Err != nil {
			failed = true
			reportFmtError(errOut, res)
			continue
		}
		out.Write(res.Formatted)
	}
	return failed
}

// renderFmtText lists changed files: bare paths under --check, "reformatted"
// lines otherwise.
func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, check, quiet bool) (failed, changed bool) {
	verb := "reformatted "
	if check {
		verb = ""
	}
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed = true
			reportFmtError(errOut, res)
		case res.Changed:
			changed = true
			if !quiet {
				fmt.Fprintf(out, "%s%s\n", verb, res.Path)
			}
		}
	}
	return failed, changed
}

type fmtFileJSON struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	Error   string `json:"error,omitempty"`
}

type fmtReportJSON struct {
	Check   bool          `json:"check"`
	Changed int           `json:"changed"`
	Failed  int           `json:"failed"`
	Files   []fmtFileJSON `json:"files"`
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	report := fmtReportJSON{Check: check, Files: make([]fmtFileJSON, len(results))}
	for i, res := range results {
		report.Files[i] = fmtFileJSON{Path: res.Path, Changed: res.Changed}
		if res.Err != nil {
			report.Files[i].Error = res.Err.Error()
			report.Failed++
		} else if res.Changed {
			report.Changed++
		}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
