package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rackpy/internal/driver"
)

var transpileCmd = &cobra.Command{
	Use:   "transpile [flags] file.rkt|-",
	Short: "Translate a Racket file into Python",
	Long: `Transpile reads every top-level form of a file (or stdin for "-") and
prints the Python translation, one statement group per form.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranspile,
}

func init() {
	addTranslateFlags(transpileCmd)
	transpileCmd.Flags().StringP("output", "o", "", "write Python to this file instead of stdout")
	transpileCmd.Flags().Bool("no-cache", false, "do not use the translation cache")
	transpileCmd.Flags().Bool("no-lint", false, "do not report lint warnings")
}

func runTranspile(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	var res *driver.FileResult
	if args[0] == stdinArg {
		name, src, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		res, err = driver.TranspileSource(cmd.Context(), name, src, settings.driver)
		if err != nil {
			return err
		}
	} else {
		settings.openCache(cmd.ErrOrStderr())
		res, err = driver.TranspileFile(cmd.Context(), args[0], settings.driver)
		if err != nil {
			return err
		}
	}

	if !res.OK() {
		printDiagnostics(cmd.ErrOrStderr(), settings.global, res.Bag, res.FileSet, res.Err)
		return fmt.Errorf("transpile %s failed", args[0])
	}
	if !settings.global.quiet && settings.global.reportable(res.Bag) {
		printDiagnostics(cmd.ErrOrStderr(), settings.global, res.Bag, res.FileSet, nil)
	}

	if err := writePython(cmd.OutOrStdout(), output, res.Python); err != nil {
		return err
	}
	if settings.global.timings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
		settings.printTimings(cmd.ErrOrStderr())
	}
	return nil
}

func writePython(out io.Writer, path, python string) error {
	text := python
	if text != "" {
		text += "\n"
	}
	if path == "" {
		_, err := io.WriteString(out, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
