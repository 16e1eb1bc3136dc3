package driver

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"rackpy/internal/trace"
)

// LineResult is the outcome of one non-blank line of a batch file.
type LineResult struct {
	Line   int // 1-based
	Source string
	*FileResult
}

// SourceLine is one non-blank, trimmed input line.
type SourceLine struct {
	Line int
	Text string
}

// SplitLines returns the non-blank lines of src, trimmed, with their numbers.
func SplitLines(src []byte) []SourceLine {
	var out []SourceLine
	sc := bufio.NewScanner(bytes.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<24)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		out = append(out, SourceLine{Line: n, Text: text})
	}
	return out
}

// TranspileLines treats every non-blank line of path as one independent
// expression and translates the lines in parallel. A line holding a second
// form is a syntax error. Results keep file order.
func TranspileLines(ctx context.Context, path string, opts Options) ([]LineResult, error) {
	// #nosec G304 -- path is provided by the caller
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return TranspileLinesSource(ctx, path, src, opts)
}

// TranspileLinesSource is TranspileLines over an in-memory file named name.
func TranspileLinesSource(ctx context.Context, name string, src []byte, opts Options) ([]LineResult, error) {
	lines := SplitLines(src)
	if len(lines) == 0 {
		return nil, nil
	}

	span, ctx := trace.BeginCtx(ctx, trace.ScopeDriver, "lines")
	defer span.WithExtra("lines", fmt.Sprint(len(lines))).End(name)

	// строки короткие и уникальные, кэшировать их нет смысла
	lineOpts := opts
	lineOpts.Cache = nil
	lineOpts.Single = true

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]LineResult, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(lines)))

	for i, line := range lines {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			unit := fmt.Sprintf("%s:%d", name, line.Line)
			res, err := TranspileSource(gctx, unit, []byte(line.Text), lineOpts)
			if err != nil {
				return err
			}
			results[i] = LineResult{Line: line.Line, Source: line.Text, FileResult: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
