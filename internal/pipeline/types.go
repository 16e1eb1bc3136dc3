package pipeline

import "time"

// Stage is a phase of transpiling one unit (file or batch line), in the
// order a unit passes through them.
type Stage uint8

const (
	StageRead Stage = iota + 1
	StageParse
	StageTranslate
	StageWrite
)

var stageInfo = [...]struct {
	name     string
	verb     string  // пока стадия идёт
	progress float64 // доля работы единицы к началу стадии
}{
	StageRead:      {"read", "reading", 0.1},
	StageParse:     {"parse", "parsing", 0.3},
	StageTranslate: {"translate", "translating", 0.7},
	StageWrite:     {"write", "writing", 0.9},
}

// Stages lists every stage in order.
func Stages() []Stage {
	return []Stage{StageRead, StageParse, StageTranslate, StageWrite}
}

func (s Stage) valid() bool { return s >= StageRead && s <= StageWrite }

func (s Stage) String() string {
	if !s.valid() {
		return "unknown"
	}
	return stageInfo[s].name
}

// Verb labels a unit while s runs, e.g. "parsing".
func (s Stage) Verb() string {
	if !s.valid() {
		return ""
	}
	return stageInfo[s].verb
}

// Progress is the share of a unit's work behind it once s has started.
func (s Stage) Progress() float64 {
	if !s.valid() {
		return 0
	}
	return stageInfo[s].progress
}

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusCached  Status = "cached" // результат взят из дискового кэша
	StatusError   Status = "error"
)

// Terminal reports whether no further events follow for the unit.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusCached || s == StatusError
}

// Label is what progress output shows: the stage verb while working,
// otherwise the status itself.
func (s Status) Label(stage Stage) string {
	if s == StatusWorking {
		return stage.Verb()
	}
	return string(s)
}

// Event reports progress for a unit, or for the whole run when Unit is empty.
type Event struct {
	Unit    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Workers report from several
// goroutines, so implementations must be safe for concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings sums stage durations over all units. The zero value is ready.
type Timings struct {
	dur  [len(stageInfo)]time.Duration
	seen [len(stageInfo)]bool
}

// Add ignores unknown stages.
func (t *Timings) Add(stage Stage, d time.Duration) {
	if t == nil || !stage.valid() {
		return
	}
	t.dur[stage] += d
	t.seen[stage] = true
}

func (t Timings) Has(stage Stage) bool {
	return stage.valid() && t.seen[stage]
}

func (t Timings) Duration(stage Stage) time.Duration {
	if !stage.valid() {
		return 0
	}
	return t.dur[stage]
}

// Sum adds up the given stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, s := range stages {
		total += t.Duration(s)
	}
	return total
}
