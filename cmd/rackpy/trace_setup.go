package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"rackpy/internal/trace"
)

// traceFlags is the parsed --trace* family.
type traceFlags struct {
	output   string
	level    trace.Level
	mode     trace.StorageMode
	format   trace.Format
	ringSize int
	unit     string
}

func readTraceFlags(pf *pflag.FlagSet) (traceFlags, error) {
	var (
		tf                      traceFlags
		levelStr, modeStr, fStr string
		err                     error
	)
	for _, s := range []struct {
		name string
		dst  *string
	}{
		{"trace", &tf.output},
		{"trace-level", &levelStr},
		{"trace-mode", &modeStr},
		{"trace-format", &fStr},
		{"trace-unit", &tf.unit},
	} {
		if *s.dst, err = pf.GetString(s.name); err != nil {
			return tf, fmt.Errorf("failed to get %s flag: %w", s.name, err)
		}
	}
	if tf.ringSize, err = pf.GetInt("trace-ring-size"); err != nil {
		return tf, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	if tf.level, err = trace.ParseLevel(levelStr); err != nil {
		return tf, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if tf.level == trace.LevelOff && tf.output != "" && !pf.Changed("trace-level") {
		tf.level = trace.LevelPhase
	}
	if tf.mode, err = trace.ParseMode(modeStr); err != nil {
		return tf, fmt.Errorf("invalid trace mode: %w", err)
	}
	if tf.format, err = trace.ParseFormat(fStr); err != nil {
		return tf, err
	}
	return tf, nil
}

// setupTracing installs the tracer described by the root flags into the
// command context. The returned cleanup dumps ring mode and closes outputs.
func setupTracing(cmd *cobra.Command) (func(), error) {
	tf, err := readTraceFlags(cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}
	if tf.level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	tracer, err := trace.New(trace.Config{
		Level:      tf.level,
		Mode:       tf.mode,
		Format:     tf.format,
		OutputPath: tf.output,
		RingSize:   tf.ringSize,
		Unit:       tf.unit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	report := func(what string, err error) {
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %s error: %v\n", what, err)
		}
	}
	return func() {
		// кольцо без потока выгружаем целиком в конце
		if ring, ok := tracer.(*trace.RingTracer); ok {
			report("dump", dumpRing(ring, tf.output, tf.format))
		}
		report("flush", tracer.Flush())
		report("close", tracer.Close())
	}, nil
}

func dumpRing(ring *trace.RingTracer, path string, format trace.Format) error {
	var w io.Writer = os.Stderr
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return ring.Dump(w, trace.ResolveFormat(format, path))
}
