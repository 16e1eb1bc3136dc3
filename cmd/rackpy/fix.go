package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rackpy/internal/driver"
	"rackpy/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.rkt|directory>",
	Short: "Apply suggested fixes for unbalanced parentheses",
	Long:  "Parse the sources, collect the fixes attached to syntax diagnostics, and apply them according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all non-conflicting fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "print the fixed source instead of writing it")
	fixCmd.Flags().String("ext", "", "source file extension for directories (default .rkt)")
}

func readFixOptions(cmd *cobra.Command) (fix.ApplyOptions, error) {
	var (
		opts           fix.ApplyOptions
		applyAll, once bool
		err            error
	)
	flags := cmd.Flags()
	if applyAll, err = flags.GetBool("all"); err != nil {
		return opts, fmt.Errorf("failed to get all flag: %w", err)
	}
	if once, err = flags.GetBool("once"); err != nil {
		return opts, fmt.Errorf("failed to get once flag: %w", err)
	}
	if opts.TargetID, err = flags.GetString("id"); err != nil {
		return opts, fmt.Errorf("failed to get id flag: %w", err)
	}
	if opts.DryRun, err = flags.GetBool("dry-run"); err != nil {
		return opts, fmt.Errorf("failed to get dry-run flag: %w", err)
	}

	switch {
	case opts.TargetID != "" && (applyAll || once):
		return opts, errors.New("--id cannot be combined with --all or --once")
	case applyAll && once:
		return opts, errors.New("--all and --once are mutually exclusive")
	case opts.TargetID != "":
		opts.Mode = fix.ApplyModeID
	case applyAll:
		opts.Mode = fix.ApplyModeAll
	default:
		opts.Mode = fix.ApplyModeOnce
	}
	return opts, nil
}

func runFix(cmd *cobra.Command, args []string) error {
	opts, err := readFixOptions(cmd)
	if err != nil {
		return err
	}
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// id уникален только в пределах одного файла
	if info.IsDir() && opts.Mode == fix.ApplyModeID {
		return fmt.Errorf("fix: --id can only be used with a single file")
	}

	paths := []string{args[0]}
	if info.IsDir() {
		if paths, err = driver.ListFiles(args[0], settings.driver.Extension, true); err != nil {
			return fmt.Errorf("fix: %w", err)
		}
	}

	total := &fix.ApplyResult{}
	for _, path := range paths {
		res, err := fixFile(ctx, path, settings.driver, opts)
		total.Merge(res)
		if err != nil && !errors.Is(err, fix.ErrNoFixes) {
			return err
		}
	}
	if total.Empty() {
		if !settings.global.quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "fix: no applicable fixes found")
		}
		return nil
	}
	return reportFixes(cmd.OutOrStdout(), total, opts.DryRun)
}

func fixFile(ctx context.Context, path string, dopts driver.Options, opts fix.ApplyOptions) (*fix.ApplyResult, error) {
	res, err := driver.Parse(ctx, path, dopts)
	if err != nil {
		return nil, fmt.Errorf("fix: %w", err)
	}
	res.Bag.Sort()
	return fix.Apply(res.FileSet, res.Bag.Items(), opts)
}

func reportFixes(w io.Writer, res *fix.ApplyResult, dryRun bool) error {
	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(w, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(w, "  %s [%s] %s (%d edits)\n", item.Title, item.ID, location, item.EditCount)
		}
	}

	if len(res.FileChanges) > 0 {
		if dryRun {
			for _, change := range res.FileChanges {
				fmt.Fprintf(w, "--- %s\n%s", change.Path, change.Content)
				if n := len(change.Content); n > 0 && change.Content[n-1] != '\n' {
					fmt.Fprintln(w)
				}
			}
		} else {
			fmt.Fprintln(w, "Updated files:")
			for _, change := range res.FileChanges {
				fmt.Fprintf(w, "  %s (%d edits)\n", change.Path, change.EditCount)
			}
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(w, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(w, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}
	return nil
}
