package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rackpy/internal/diag"
	"rackpy/internal/diagfmt"
	"rackpy/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.rkt|-",
	Short: "Parse a Racket source file and print its tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|tree)")
	parseCmd.Flags().String("diagnostics", "pretty", "diagnostics format (pretty|json|short)")
	parseCmd.Flags().String("path-mode", "auto", "paths in diagnostics (auto|absolute|relative|basename)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	diagFormat, err := cmd.Flags().GetString("diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	pathMode, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	switch format {
	case "pretty", "json", "tree":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	name, src, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	res, err := driver.ParseSource(cmd.Context(), name, src, settings.driver)
	if err != nil {
		return err
	}

	if res.Bag.Len() > 0 {
		switch diagFormat {
		case "short":
			fmt.Fprintln(cmd.ErrOrStderr(), diag.FormatShort(res.Bag.Items(), res.FileSet, true))
		case "json":
			if err := diagfmt.JSON(cmd.ErrOrStderr(), res.Bag, res.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
				IncludeFixes:     true,
				PathMode:         diagfmt.ParsePathMode(pathMode),
				Max:              settings.global.maxDiagnostics,
			}); err != nil {
				return err
			}
		default:
			diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.FileSet, diagfmt.PrettyOpts{
				Color:     settings.global.useColor(cmd.ErrOrStderr()),
				Context:   2,
				PathMode:  diagfmt.ParsePathMode(pathMode),
				ShowNotes: true,
				ShowFixes: true,
			})
		}
	}
	if res.Err() != nil {
		return fmt.Errorf("parse %s failed", name)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return diagfmt.FormatASTJSON(out, res.Builder, res.Roots)
	case "tree":
		return diagfmt.FormatASTTree(out, res.Builder, res.Roots, res.FileSet)
	default:
		return diagfmt.FormatASTPretty(out, res.Builder, res.Roots, res.FileSet)
	}
}
