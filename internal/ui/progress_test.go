package ui

import (
	"errors"
	"strings"
	"testing"

	"rackpy/internal/pipeline"
)

func newTestModel(units ...string) *progressModel {
	events := make(chan pipeline.Event)
	return NewProgressModel("transpile", units, events).(*progressModel)
}

func TestBoardTracksStatus(t *testing.T) {
	m := newTestModel("a.rkt", "b.rkt", "c.rkt")

	steps := []pipeline.Event{
		{Unit: "a.rkt", Stage: pipeline.StageParse, Status: pipeline.StatusWorking},
		{Unit: "a.rkt", Stage: pipeline.StageTranslate, Status: pipeline.StatusDone},
		{Unit: "a.rkt", Stage: pipeline.StageWrite, Status: pipeline.StatusWorking},
		{Unit: "b.rkt", Stage: pipeline.StageParse, Status: pipeline.StatusError, Err: errors.New("boom")},
		{Unit: "b.rkt", Stage: pipeline.StageWrite, Status: pipeline.StatusDone},
		{Unit: "c.rkt", Stage: pipeline.StageTranslate, Status: pipeline.StatusCached},
		{Unit: "c.rkt", Stage: pipeline.StageWrite, Status: pipeline.StatusDone},
		{Unit: "unknown.rkt", Stage: pipeline.StageParse, Status: pipeline.StatusWorking},
	}
	for _, ev := range steps {
		m.board.apply(ev)
	}

	want := map[string]string{"a.rkt": "done", "b.rkt": "error", "c.rkt": "cached"}
	for _, r := range m.board.rows {
		if r.label != want[r.name] {
			t.Errorf("%s: label %q, want %q", r.name, r.label, want[r.name])
		}
		if !r.final {
			t.Errorf("%s should be final", r.name)
		}
	}
	if got := m.board.fraction(); got != 1.0 {
		t.Errorf("fraction = %v, want 1", got)
	}
	if got := m.board.summary(); got != "2/3 ok, 1 cached, 1 failed" {
		t.Errorf("summary = %q", got)
	}
}

func TestBoardFractionFollowsStages(t *testing.T) {
	m := newTestModel("a", "b")
	m.board.apply(pipeline.Event{Unit: "a", Stage: pipeline.StageTranslate, Status: pipeline.StatusWorking})
	if got := m.board.fraction(); got != 0.35 {
		t.Errorf("fraction = %v, want 0.35", got)
	}
	if r := m.board.rows[0]; r.label != pipeline.StageTranslate.Verb() {
		t.Errorf("working label = %q", r.label)
	}
}

func TestViewCollapsesLongLists(t *testing.T) {
	units := make([]string, 0, maxVisible+5)
	for i := range maxVisible + 5 {
		units = append(units, strings.Repeat("x", i+1)+".rkt")
	}
	m := newTestModel(units...)
	m.board.apply(pipeline.Event{Stage: pipeline.StageRead, Status: pipeline.StatusWorking})
	view := m.View()

	if !strings.Contains(view, "… 5 more") {
		t.Errorf("expected collapsed counter in view:\n%s", view)
	}
	if !strings.Contains(view, "(reading)") {
		t.Errorf("run-level stage label missing:\n%s", view)
	}
	if strings.Contains(view, "\n  "+strings.Repeat(" ", 6)+"queued x.rkt\n") {
		t.Errorf("first unit should be hidden:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"averyveryverylongname", 10, "aver..."},
		{"日本語ファイル", 8, "日..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestDoneMsgQuits(t *testing.T) {
	m := newTestModel("a")
	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Fatal("doneMsg must mark the model done and return tea.Quit")
	}
}
