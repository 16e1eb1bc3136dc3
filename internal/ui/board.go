package ui

import (
	"fmt"

	"rackpy/internal/pipeline"
)

// row is one unit on the board.
type row struct {
	name   string
	label  string // stage verb while working, status afterwards
	status pipeline.Status
	stage  pipeline.Stage
	final  bool
}

// board folds pipeline events into per-unit rows. It knows nothing about
// terminals; progressModel renders it.
type board struct {
	rows     []row
	byName   map[string]int
	runLabel string // last run-wide stage, e.g. "reading"
}

func newBoard(names []string) board {
	b := board{rows: make([]row, len(names)), byName: make(map[string]int, len(names))}
	for i, name := range names {
		b.rows[i] = row{name: name, label: string(pipeline.StatusQueued), status: pipeline.StatusQueued}
		b.byName[name] = i
	}
	return b
}

// sticky: an error never changes, and the write after a cache hit keeps the
// "cached" label.
func (r *row) sticky(ev pipeline.Event) bool {
	if r.status == pipeline.StatusError {
		return true
	}
	return r.status == pipeline.StatusCached && ev.Stage == pipeline.StageWrite && ev.Status == pipeline.StatusDone
}

func (b *board) apply(ev pipeline.Event) {
	label := ev.Status.Label(ev.Stage)
	if ev.Unit == "" {
		if label != "" {
			b.runLabel = label
		}
		return
	}
	i, ok := b.byName[ev.Unit]
	if !ok {
		return
	}
	r := &b.rows[i]
	if r.sticky(ev) {
		return
	}
	// после финала "working" (запись файла) строку не откатывает
	if label != "" && !(r.final && ev.Status == pipeline.StatusWorking) {
		r.label, r.status, r.stage = label, ev.Status, ev.Stage
	}
	r.final = r.final || ev.Status.Terminal()
}

// fraction is the mean per-unit progress in [0, 1].
func (b *board) fraction() float64 {
	if len(b.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range b.rows {
		if r.final {
			sum++
		} else {
			sum += r.stage.Progress()
		}
	}
	return sum / float64(len(b.rows))
}

func (b *board) summary() string {
	n := map[pipeline.Status]int{}
	for _, r := range b.rows {
		n[r.status]++
	}
	done := n[pipeline.StatusDone] + n[pipeline.StatusCached]
	return fmt.Sprintf("%d/%d ok, %d cached, %d failed", done, len(b.rows), n[pipeline.StatusCached], n[pipeline.StatusError])
}

// tail returns the last limit rows and how many were cut off.
func (b *board) tail(limit int) ([]row, int) {
	if hidden := len(b.rows) - limit; hidden > 0 {
		return b.rows[hidden:], hidden
	}
	return b.rows, 0
}
