package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives events from spans and points. Implementations must be safe
// for the driver's parallel workers.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled is Level() > LevelOff.
	Enabled() bool
}

// StorageMode determines how events are stored.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // write each event as it happens
	ModeRing                          // keep the tail in memory, dump on exit
	ModeBoth
)

var modeNames = [...]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string { return nameOf(modeNames[:], int(m)) }

// ParseMode converts a --trace-mode value.
func ParseMode(s string) (StorageMode, error) {
	if i := indexOf(modeNames[:], strings.ToLower(s)); i >= 0 {
		return StorageMode(i), nil
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: %s)", s, strings.Join(modeNames[1:], "|"))
}

// Config mirrors the --trace* flags.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto picks NDJSON for *.ndjson and *.jsonl outputs
	Output     io.Writer // wins over OutputPath
	OutputPath string    // "-" or "" is stderr
	RingSize   int       // default 4096
	Unit       string    // keep only this unit plus command-wide events
}

// unitFilter keeps command-wide events and the events of one unit.
type unitFilter string

func (f unitFilter) accept(ev *Event) bool {
	return f == "" || ev.Unit == "" || ev.Unit == string(f)
}

// New creates a Tracer based on Config.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}

	format := ResolveFormat(cfg.Format, cfg.OutputPath)
	stream := func() (*StreamTracer, error) {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		st := NewStreamTracer(w, cfg.Level, format)
		st.only = unitFilter(cfg.Unit)
		return st, nil
	}
	ring := func() *RingTracer {
		rt := NewRingTracer(cfg.RingSize, cfg.Level)
		rt.only = unitFilter(cfg.Unit)
		return rt
	}

	switch cfg.Mode {
	case ModeStream:
		return stream()
	case ModeRing:
		return ring(), nil
	case ModeBoth:
		st, err := stream()
		if err != nil {
			return nil, err
		}
		return NewMultiTracer(cfg.Level, st, ring()), nil
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
}

// ResolveFormat turns FormatAuto into a concrete format for path.
func ResolveFormat(format Format, path string) Format {
	if format != FormatAuto {
		return format
	}
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return nopCloser{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// nopCloser keeps Close from closing stderr.
type nopCloser struct{ io.Writer }
