package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"rackpy/internal/pipeline"
	"rackpy/internal/trace"
)

// DirResult содержит результат трансляции одного файла каталога.
type DirResult struct {
	Path    string // путь к исходнику
	OutPath string // куда записан .py, если задан outDir
	LoadErr error  // сбой чтения или записи; при сбое чтения FileResult == nil
	*FileResult
}

// ListFiles возвращает отсортированный список файлов с расширением ext.
// Без recursive смотрит только сам каталог.
func ListFiles(dir, ext string, recursive bool) ([]string, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	var files []string
	match := func(name string) bool {
		return strings.EqualFold(filepath.Ext(name), ext)
	}

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && match(e.Name()) {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
		sort.Strings(files)
		return files, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && match(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// OutputPath maps src under dir onto outDir with a .py extension.
func OutputPath(dir, outDir, src string) (string, error) {
	rel, err := filepath.Rel(dir, src)
	if err != nil {
		return "", err
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".py"
	return filepath.Join(outDir, rel), nil
}

// TranspileDir транслирует все файлы каталога (рекурсивно) параллельно.
// Ошибки отдельных файлов не прерывают остальные; возвращаемая ошибка -
// только отмена контекста или сбой обхода каталога.
func TranspileDir(ctx context.Context, dir, outDir string, opts Options) ([]DirResult, error) {
	files, err := ListFiles(dir, opts.extension(), true)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	span, ctx := trace.BeginCtx(ctx, trace.ScopeDriver, "dir")
	defer span.WithExtra("files", fmt.Sprint(len(files))).End(dir)

	for _, path := range files {
		pipeline.Emit(opts.Sink, pipeline.Event{Unit: path, Stage: pipeline.StageRead, Status: pipeline.StatusQueued})
	}

	results := make([]DirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i].Path = path
			res, err := TranspileFile(gctx, path, opts)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				results[i].LoadErr = err
				return nil
			}
			results[i].FileResult = res
			if outDir == "" || !res.OK() {
				return nil
			}

			started := time.Now()
			out, err := OutputPath(dir, outDir, path)
			if err == nil {
				err = writeOutput(out, res.Python)
			}
			if err != nil {
				results[i].LoadErr = fmt.Errorf("write %s: %w", out, err)
				pipeline.Emit(opts.Sink, pipeline.Event{Unit: path, Stage: pipeline.StageWrite, Status: pipeline.StatusError, Err: err})
				return nil
			}
			results[i].OutPath = out
			res.Timings.Add(pipeline.StageWrite, time.Since(started))
			pipeline.Emit(opts.Sink, pipeline.Event{Unit: path, Stage: pipeline.StageWrite, Status: pipeline.StatusDone, Elapsed: time.Since(started)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func writeOutput(path, python string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data := python
	if data != "" && !strings.HasSuffix(data, "\n") {
		data += "\n"
	}
	return os.WriteFile(path, []byte(data), 0o644)
}
