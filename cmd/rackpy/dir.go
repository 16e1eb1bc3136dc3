package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rackpy/internal/driver"
)

var dirCmd = &cobra.Command{
	Use:   "dir [flags] directory",
	Short: "Translate every source file of a directory",
	Long: `Dir translates every file with the source extension under the directory
(recursively) in parallel. With --out each file is written to the mirrored
path with a .py extension; otherwise the translations are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runDir,
}

func init() {
	addTranslateFlags(dirCmd)
	addBatchFlags(dirCmd)
	dirCmd.Flags().String("out", "", "output directory for .py files")
	dirCmd.Flags().String("ext", "", "source extension (default from rackpy.toml or .rkt)")
	dirCmd.Flags().Bool("no-cache", false, "do not use the translation cache")
	dirCmd.Flags().Bool("no-lint", false, "do not report lint warnings")
}

func runDir(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	useTUI, err := wantTUI(cmd, settings.global.quiet)
	if err != nil {
		return err
	}
	settings.openCache(cmd.ErrOrStderr())

	dir := args[0]
	var results []driver.DirResult
	if useTUI {
		files, err := driver.ListFiles(dir, settings.driver.Extension, true)
		if err != nil {
			return fmt.Errorf("list %s: %w", dir, err)
		}
		results, err = runWithUI(cmd.Context(), "dir "+dir, files, settings.driver,
			func(ctx context.Context, opts driver.Options) ([]driver.DirResult, error) {
				return driver.TranspileDir(ctx, dir, outDir, opts)
			})
		if err != nil {
			return err
		}
	} else {
		results, err = driver.TranspileDir(cmd.Context(), dir, outDir, settings.driver)
		if err != nil {
			return err
		}
	}

	summary := writeDirResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), settings.global, results)
	if !settings.global.quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), summary)
	}
	if settings.global.timings {
		settings.printTimings(cmd.ErrOrStderr())
	}
	if summary.failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.failed, summary.total)
	}
	return nil
}

type dirSummary struct {
	total, written, cached, failed int
}

func (s dirSummary) String() string {
	return fmt.Sprintf("%d files: %d ok (%d cached, %d written), %d failed",
		s.total, s.total-s.failed, s.cached, s.written, s.failed)
}

// writeDirResults печатает трансляции (без --out), диагностику упавших файлов
// и предупреждения остальных.
func writeDirResults(out, errOut io.Writer, g globalFlags, results []driver.DirResult) dirSummary {
	summary := dirSummary{total: len(results)}
	for _, r := range results {
		switch {
		case r.LoadErr != nil:
			summary.failed++
			printDiagnostics(errOut, g, nil, nil, r.LoadErr)
			continue
		case r.FileResult == nil:
			continue
		case !r.OK():
			summary.failed++
			printDiagnostics(errOut, g, r.Bag, r.FileSet, r.Err)
			continue
		}
		if !g.quiet && g.reportable(r.Bag) {
			printDiagnostics(errOut, g, r.Bag, r.FileSet, nil)
		}
		if r.Cached {
			summary.cached++
		}
		if r.OutPath != "" {
			summary.written++
			continue
		}
		fmt.Fprintf(out, "# %s\n", r.Path)
		if r.Python != "" {
			fmt.Fprintln(out, r.Python)
		}
	}
	return summary
}
