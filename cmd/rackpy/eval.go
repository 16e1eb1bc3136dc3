package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rackpy/internal/driver"
	"rackpy/internal/eval"
	"rackpy/internal/source"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] [file.rkt|-]",
	Short: "Evaluate Racket forms with the reference interpreter",
	Long: `Eval runs the forms of a file (or of --expr) in one environment and prints
every value that is not void. With --python values are printed the way the
translated Python would print them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringP("expr", "e", "", "evaluate this source text instead of a file")
	evalCmd.Flags().Bool("python", false, "print values in Python notation")
	evalCmd.Flags().Int("max-depth", eval.DefaultMaxDepth, "maximum call depth")
}

func runEval(cmd *cobra.Command, args []string) error {
	expr, err := cmd.Flags().GetString("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}
	python, err := cmd.Flags().GetBool("python")
	if err != nil {
		return fmt.Errorf("failed to get python flag: %w", err)
	}
	maxDepth, err := cmd.Flags().GetInt("max-depth")
	if err != nil {
		return fmt.Errorf("failed to get max-depth flag: %w", err)
	}
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var name string
	var src []byte
	switch {
	case expr != "" && len(args) > 0:
		return errors.New("eval takes either --expr or a file, not both")
	case expr != "":
		name, src = "<expr>", []byte(expr)
	case len(args) == 1:
		if name, src, err = readInput(cmd, args[0]); err != nil {
			return err
		}
	default:
		return errors.New("eval needs a file, - or --expr")
	}

	res, err := driver.ParseSource(cmd.Context(), name, src, settings.driver)
	if err != nil {
		return err
	}
	if perr := res.Err(); perr != nil {
		printDiagnostics(cmd.ErrOrStderr(), settings.global, res.Bag, res.FileSet, perr)
		return fmt.Errorf("parse %s failed", name)
	}
	return evalForms(cmd.OutOrStdout(), res, eval.Options{MaxDepth: maxDepth}, python)
}

// evalForms вычисляет формы по порядку и печатает значения до первой ошибки.
func evalForms(out io.Writer, res *driver.ParseResult, opts eval.Options, python bool) error {
	env := eval.NewEnv()
	for _, id := range res.Roots {
		v, err := eval.EvalWith(res.Builder, id, env, opts)
		if err != nil {
			return evalFailure(res.FileSet, err)
		}
		if v.IsVoid() {
			continue
		}
		if python {
			fmt.Fprintln(out, v.Python())
		} else {
			fmt.Fprintln(out, v.String())
		}
	}
	return nil
}

func evalFailure(fs *source.FileSet, err error) error {
	var ee *eval.Error
	if !errors.As(err, &ee) || fs == nil || int(ee.Span.File) >= fs.Len() {
		return err
	}
	start, _ := fs.Resolve(ee.Span)
	return fmt.Errorf("%s:%s: %w", fs.Get(ee.Span.File).Path, start, err)
}
