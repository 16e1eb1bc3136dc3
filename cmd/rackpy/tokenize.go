package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rackpy/internal/diagfmt"
	"rackpy/internal/driver"
	"rackpy/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.rkt|-",
	Short: "Tokenize a Racket source file",
	Long:  `Tokenize breaks down a source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}

	var result *driver.TokenizeResult
	if args[0] == stdinArg {
		name, src, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		result = driver.TokenizeSource(name, src, g.maxDiagnostics)
	} else {
		result, err = driver.Tokenize(args[0], g.maxDiagnostics)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	}

	// offsets относятся к нормализованному тексту
	if changed := result.File.Flags &^ source.FileVirtual; changed != 0 && !g.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: %s was normalized before lexing (%s)\n", result.File.Path, changed)
	}
	// Диагностику в stderr, токены в stdout
	if g.reportable(result.Bag) {
		printDiagnostics(cmd.ErrOrStderr(), g, result.Bag, result.FileSet, nil)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
