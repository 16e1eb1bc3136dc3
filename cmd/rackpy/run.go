package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rackpy/internal/driver"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] file.rkt|-",
	Short: "Translate a file line by line",
	Long: `Run treats every non-blank line of the file as an independent program,
translates the lines in parallel and prints the result of each line in file
order. A failing line does not stop the others.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	addTranslateFlags(runCmd)
	addBatchFlags(runCmd)
	runCmd.Flags().Bool("show-tree", false, "print the parse tree of every line")
}

func runRun(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	showTree, err := cmd.Flags().GetBool("show-tree")
	if err != nil {
		return fmt.Errorf("failed to get show-tree flag: %w", err)
	}
	useTUI, err := wantTUI(cmd, settings.global.quiet)
	if err != nil {
		return err
	}

	name, src, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	var results []driver.LineResult
	if useTUI {
		lines := driver.SplitLines(src)
		units := make([]string, 0, len(lines))
		for _, line := range lines {
			units = append(units, fmt.Sprintf("%s:%d", name, line.Line))
		}
		results, err = runWithUI(cmd.Context(), "run "+name, units, settings.driver,
			func(ctx context.Context, opts driver.Options) ([]driver.LineResult, error) {
				return driver.TranspileLinesSource(ctx, name, src, opts)
			})
	} else {
		results, err = driver.TranspileLinesSource(cmd.Context(), name, src, settings.driver)
	}
	if err != nil {
		return err
	}

	failed := writeLineResults(cmd.OutOrStdout(), results, showTree)
	if settings.global.timings {
		settings.printTimings(cmd.ErrOrStderr())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d lines failed", failed, len(results))
	}
	return nil
}
