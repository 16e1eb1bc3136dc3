package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"rackpy/internal/format"
	"rackpy/internal/trace"
)

// FormatOptions configure FormatPaths.
type FormatOptions struct {
	Options
	Format format.Options
	Check  bool // только сообщить об изменениях
	Stdout bool // не переписывать файлы
}

// FormatResult describes one formatted file.
type FormatResult struct {
	Path      string
	Changed   bool
	Formatted []byte
	Err       error
}

// FormatPaths formats files and directories (recursively, by extension).
// Files are rewritten in place unless Check or Stdout is set. Per-file
// failures are reported in FormatResult.Err.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		list, err := ListFiles(path, opts.extension(), true)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", path, err)
		}
		files = append(files, list...)
	}
	if len(files) == 0 {
		return nil, nil
	}

	span, ctx := trace.BeginCtx(ctx, trace.ScopeDriver, "fmt")
	defer span.WithExtra("files", fmt.Sprint(len(files))).End("")

	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatOne(trace.WithUnit(gctx, path), path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOne(ctx context.Context, path string, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}
	parsed, err := Parse(ctx, path, opts.Options)
	if err != nil {
		res.Err = err
		return res
	}
	if err := parsed.Err(); err != nil {
		res.Err = err
		return res
	}
	if opts.Check {
		if ok, msg := format.CheckRoundTrip(parsed.File, opts.Format, opts.MaxDiagnostics); !ok {
			res.Err = errors.New(msg)
			return res
		}
	}

	out, err := format.FormatFile(parsed.File, parsed.Builder, parsed.Roots, opts.Format)
	if err != nil {
		res.Err = err
		return res
	}
	res.Formatted = out
	res.Changed = !bytes.Equal(out, parsed.File.Content)
	if res.Changed && !opts.Check && !opts.Stdout {
		info, err := os.Stat(path)
		if err != nil {
			res.Err = err
			return res
		}
		if err := os.WriteFile(path, out, info.Mode()); err != nil {
			res.Err = fmt.Errorf("write %s: %w", path, err)
		}
	}
	return res
}

// FormatSource formats src held in memory (stdin).
func FormatSource(ctx context.Context, name string, src []byte, opts FormatOptions) FormatResult {
	res := FormatResult{Path: name}
	parsed, err := ParseSource(ctx, name, src, opts.Options)
	if err != nil {
		res.Err = err
		return res
	}
	if err := parsed.Err(); err != nil {
		res.Err = err
		return res
	}
	out, err := format.FormatFile(parsed.File, parsed.Builder, parsed.Roots, opts.Format)
	if err != nil {
		res.Err = err
		return res
	}
	res.Formatted = out
	res.Changed = !bytes.Equal(out, parsed.File.Content)
	return res
}
