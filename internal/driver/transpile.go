package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"rackpy/internal/ast"
	"rackpy/internal/diag"
	"rackpy/internal/pipeline"
	"rackpy/internal/source"
	"rackpy/internal/trace"
	"rackpy/internal/translate"
)

// FileResult is the outcome of transpiling one unit (file, stdin or batch line).
// Err is nil, a *parser.SyntaxError or a *translate.UnsupportedFormError.
type FileResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder // nil для результата из кэша
	Roots   []ast.ExprID
	Bag     *diag.Bag
	Python  string
	Err     error
	Cached  bool
	Timings pipeline.Timings
}

// OK reports whether the unit produced Python text.
func (r *FileResult) OK() bool { return r != nil && r.Err == nil }

// TranspileFile reads path and translates every top-level form in it.
// The returned error covers I/O only; language errors land in FileResult.Err.
func TranspileFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	fs := source.NewFileSet()
	start := time.Now()
	fileID, err := fs.Load(path)
	if err != nil {
		pipeline.Emit(opts.Sink, pipeline.Event{Unit: path, Stage: pipeline.StageRead, Status: pipeline.StatusError, Err: err})
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	res, err := transpileLoaded(ctx, path, fs, fs.Get(fileID), opts)
	if res != nil {
		res.Timings.Add(pipeline.StageRead, time.Since(start)-res.Timings.Sum(pipeline.StageParse, pipeline.StageTranslate))
	}
	return res, err
}

// TranspileSource translates src registered as the virtual file name.
func TranspileSource(ctx context.Context, name string, src []byte, opts Options) (*FileResult, error) {
	fs := source.NewFileSet()
	return transpileLoaded(ctx, name, fs, fs.Get(fs.AddVirtual(name, src)), opts)
}

// unit - имя единицы в событиях прогресса, совпадает с тем, что видел вызывающий.
func transpileLoaded(ctx context.Context, unit string, fs *source.FileSet, file *source.File, opts Options) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	span, ctx := trace.BeginCtx(trace.WithUnit(ctx, unit), trace.ScopeFile, "transpile")
	res := &FileResult{Path: file.Path, FileSet: fs, File: file}
	defer func() {
		status := "ok"
		switch {
		case res.Cached:
			status = "cached"
		case res.Err != nil:
			status = "error"
		}
		span.WithExtra("status", status).End("")
	}()

	key := CacheKey(file.Hash, opts)
	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			trace.PointCtx(ctx, trace.ScopeFile, "cache", err.Error())
		}
		if hit && payload.SourceHash == file.Hash {
			res.Python = payload.Python
			res.Cached = true
			res.Bag = diag.NewBag(opts.MaxDiagnostics)
			for _, d := range payload.Warnings {
				res.Bag.Add(d)
			}
			pipeline.Emit(opts.Sink, pipeline.Event{Unit: unit, Stage: pipeline.StageTranslate, Status: pipeline.StatusCached})
			return res, nil
		}
	}

	pipeline.Emit(opts.Sink, pipeline.Event{Unit: unit, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	started := time.Now()
	var parsed *ParseResult
	err := opts.measure("parse", func() error {
		var perr error
		parsed, perr = parseFile(ctx, fs, file, opts)
		return perr
	})
	if err != nil {
		return nil, err
	}
	res.Builder, res.Roots, res.Bag = parsed.Builder, parsed.Roots, parsed.Bag
	res.Timings.Add(pipeline.StageParse, time.Since(started))

	if res.Err = parsed.Err(); res.Err != nil {
		pipeline.Emit(opts.Sink, pipeline.Event{Unit: unit, Stage: pipeline.StageParse, Status: pipeline.StatusError, Err: res.Err, Elapsed: time.Since(started)})
		return res, nil
	}

	if !opts.NoLint {
		lint, _ := trace.BeginCtx(ctx, trace.ScopePass, "lint")
		before := res.Bag.Len()
		translate.Lint(res.Builder, res.Roots, diag.BagReporter{Bag: res.Bag})
		lint.WithExtra("warnings", strconv.Itoa(res.Bag.Len()-before)).End(file.Path)
	}

	pipeline.Emit(opts.Sink, pipeline.Event{Unit: unit, Stage: pipeline.StageTranslate, Status: pipeline.StatusWorking})
	started = time.Now()
	pass, _ := trace.BeginCtx(ctx, trace.ScopePass, "translate")
	tr := translate.New(opts.Translate)
	_ = opts.measure("translate", func() error {
		res.Python, res.Err = tr.TranslateAll(res.Builder, res.Roots)
		return res.Err
	})
	pass.End(file.Path)
	elapsed := time.Since(started)
	res.Timings.Add(pipeline.StageTranslate, elapsed)

	if res.Err != nil {
		pipeline.Emit(opts.Sink, pipeline.Event{Unit: unit, Stage: pipeline.StageTranslate, Status: pipeline.StatusError, Err: res.Err, Elapsed: elapsed})
		return res, nil
	}

	if opts.Cache != nil {
		payload := &DiskPayload{
			Path:       file.Path,
			SourceHash: file.Hash,
			Forms:      len(res.Roots),
			Python:     res.Python,
			Warnings:   res.Bag.Items(),
		}
		if err := opts.Cache.Put(key, payload); err != nil {
			trace.PointCtx(ctx, trace.ScopeFile, "cache", err.Error())
		}
	}
	pipeline.Emit(opts.Sink, pipeline.Event{Unit: unit, Stage: pipeline.StageTranslate, Status: pipeline.StatusDone, Elapsed: res.Timings.Sum(pipeline.StageParse, pipeline.StageTranslate)})
	return res, nil
}
