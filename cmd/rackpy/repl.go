package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rackpy/internal/driver"
)

const replPrompt = "Enter Racket code, type 'FILES' to see all sample files to test parser, or type 'STOP' to exit: "

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive translation loop",
	Long: `Repl reads one command per line. STOP exits, FILES lists the source files
of the current directory, a file name ending in the source extension is run
line by line, and anything else is translated as a program.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	addTranslateFlags(replCmd)
	replCmd.Flags().Bool("show-tree", false, "print the parse tree before the translation")
}

func runREPL(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	showTree, err := cmd.Flags().GetBool("show-tree")
	if err != nil {
		return fmt.Errorf("failed to get show-tree flag: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	session := &replSession{
		out:      cmd.OutOrStdout(),
		opts:     settings.driver,
		showTree: showTree,
		dir:      ".",
	}
	if !settings.global.quiet {
		session.prompt = replPrompt
	}
	return session.run(ctx, cmd.InOrStdin())
}

type replSession struct {
	out      io.Writer
	opts     driver.Options
	showTree bool
	dir      string // каталог для FILES
	prompt   string
}

// run читает команды до STOP, конца ввода или отмены ctx.
func (r *replSession) run(ctx context.Context, in io.Reader) error {
	// cancel отпускает читающую горутину после STOP
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-readCtx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		fmt.Fprint(r.out, r.prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out, "\nExiting...")
			return nil
		case line, ok := <-lines:
			if !ok {
				if r.prompt != "" {
					fmt.Fprintln(r.out)
				}
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if r.handle(ctx, line) {
				return nil
			}
		}
	}
}

// handle выполняет одну команду; true означает выход.
func (r *replSession) handle(ctx context.Context, line string) bool {
	command := strings.TrimSpace(line)
	switch {
	case command == "":
	case strings.EqualFold(command, "STOP"):
		return true
	case strings.EqualFold(command, "FILES"):
		if err := listFiles(r.out, r.dir, r.opts.Extension, false, true); err != nil {
			fmt.Fprintln(r.out, "An error occurred:", err)
		}
	case strings.EqualFold(filepath.Ext(command), r.extension()):
		r.runFile(ctx, command)
	default:
		opts := r.opts
		opts.Single = true
		res, err := driver.TranspileSource(ctx, "<repl>", []byte(command), opts)
		if err != nil {
			fmt.Fprintln(r.out, "An error occurred:", err)
			return false
		}
		if err := writeTranslation(r.out, res, r.showTree); err != nil {
			fmt.Fprintf(r.out, "Error: %s\n", describeError(err))
		}
	}
	return false
}

func (r *replSession) runFile(ctx context.Context, path string) {
	if st, err := os.Stat(path); err != nil || st.IsDir() {
		fmt.Fprintln(r.out, "File not found.")
		return
	}
	results, err := driver.TranspileLines(ctx, path, r.opts)
	if err != nil {
		fmt.Fprintln(r.out, "An error occurred:", err)
		return
	}
	writeLineResults(r.out, results, r.showTree)
}

func (r *replSession) extension() string {
	if r.opts.Extension == "" {
		return driver.DefaultExtension
	}
	return r.opts.Extension
}
