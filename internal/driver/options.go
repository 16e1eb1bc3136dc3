package driver

import (
	"fmt"
	"runtime"

	"fortio.org/safecast"

	"rackpy/internal/observ"
	"rackpy/internal/pipeline"
	"rackpy/internal/translate"
)

// DefaultExtension is the suffix of source files picked up by directory runs.
const DefaultExtension = ".rkt"

// Options configure every driver entry point. The zero value is usable.
type Options struct {
	MaxDiagnostics int // 0 - без ограничения
	Jobs           int // 0 - GOMAXPROCS
	Extension      string
	Translate      translate.Options
	Cache          *DiskCache            // nil отключает кэш
	Sink           pipeline.ProgressSink // события прогресса, может быть nil
	Timer          *observ.Timer         // фазы для --timings, может быть nil
	NoLint         bool                  // не проверять формы после разбора
	Single         bool                  // единица - ровно одно выражение (строка пакета, ввод REPL)
}

func (o Options) jobs(units int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, units))
}

func (o Options) extension() string {
	if o.Extension == "" {
		return DefaultExtension
	}
	return o.Extension
}

func (o Options) maxErrors() (uint, error) {
	if o.MaxDiagnostics <= 0 {
		return 0, nil
	}
	n, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		return 0, fmt.Errorf("maxDiagnostics overflow: %w", err)
	}
	return n, nil
}

func (o Options) measure(name string, fn func() error) error {
	if o.Timer == nil {
		return fn()
	}
	return o.Timer.Measure(name, fn)
}
