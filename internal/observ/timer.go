package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// phaseStat aggregates every run of one named phase; directory mode runs
// "parse" once per file from several workers.
type phaseStat struct {
	name   string
	runs   int
	failed int
	total  time.Duration
	max    time.Duration
	last   string // текст последней ошибки
}

// Timer collects phase durations for --timings. Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	order  []*phaseStat
	byName map[string]*phaseStat
	start  time.Time
}

func NewTimer() *Timer {
	return &Timer{byName: make(map[string]*phaseStat), start: time.Now()}
}

// Observe records one run of phase name.
func (t *Timer) Observe(name string, d time.Duration, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.byName[name]
	if !ok {
		st = &phaseStat{name: name}
		t.byName[name] = st
		t.order = append(t.order, st)
	}
	st.runs++
	st.total += d
	st.max = max(st.max, d)
	if err != nil {
		st.failed++
		st.last = err.Error()
	}
}

// Measure runs fn as one run of phase name and returns its error unchanged.
func (t *Timer) Measure(name string, fn func() error) error {
	began := time.Now()
	err := fn()
	t.Observe(name, time.Since(began), err)
	return err
}

// PhaseReport is one aggregated phase, in order of first appearance.
type PhaseReport struct {
	Name      string  `json:"name"`
	Runs      int     `json:"runs"`
	Failed    int     `json:"failed,omitempty"`
	TotalMS   float64 `json:"total_ms"`
	MaxMS     float64 `json:"max_ms"`
	LastError string  `json:"last_error,omitempty"`
}

// Report is a snapshot of the timer. WallMS is time since NewTimer; with
// parallel workers the phase totals may exceed it.
type Report struct {
	WallMS float64       `json:"wall_ms"`
	Phases []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	rep := Report{WallMS: millis(time.Since(t.start))}
	for _, st := range t.order {
		rep.Phases = append(rep.Phases, PhaseReport{
			Name:      st.name,
			Runs:      st.runs,
			Failed:    st.failed,
			TotalMS:   millis(st.total),
			MaxMS:     millis(st.max),
			LastError: st.last,
		})
	}
	return rep
}

// Summary renders Report as the table printed by --timings.
func (t *Timer) Summary() string {
	rep := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range rep.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms  x%-5d max %8.2f ms", p.Name, p.TotalMS, p.Runs, p.MaxMS)
		if p.Failed > 0 {
			fmt.Fprintf(&sb, "  %d failed, last: %s", p.Failed, p.LastError)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "wall", rep.WallMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
