package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func traced(t Tracer) context.Context {
	return WithTracer(context.Background(), t)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"off", LevelOff, true},
		{"PHASE", LevelPhase, true},
		{"Detail", LevelDetail, true},
		{"debug", LevelDebug, true},
		{"loud", LevelOff, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestLevel_ShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeForm, false},
		{LevelDebug, ScopeForm, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestNew_OffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff, Mode: ModeStream})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("off tracer must be disabled")
	}
	if span, _ := BeginCtx(traced(tr), ScopeDriver, "x"); span.ID() != 0 {
		t.Fatal("disabled span must have zero ID")
	}
}

func TestStreamTracer_Text(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root, ctx := BeginCtx(traced(tr), ScopeDriver, "dir")
	file, fileCtx := BeginCtx(ctx, ScopeFile, "file:a.rkt")
	file.WithExtra("forms", "3").WithExtra("bytes", "42")
	file.End("ok")
	form, _ := BeginCtx(fileCtx, ScopeForm, "form") // отфильтровано уровнем
	form.End("")
	root.End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "\u2192 dir") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[2], "\u2190 file:a.rkt (ok) {bytes=42, forms=3}") {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestStreamTracer_NDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	PointCtx(traced(tr), ScopePass, "parse", "3 forms")

	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if ev["kind"] != "point" || ev["scope"] != "pass" || ev["detail"] != "3 forms" {
		t.Errorf("unexpected event %v", ev)
	}
}

func TestRingTracer_Wraps(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		PointCtx(traced(tr), ScopeForm, name, "")
	}
	snap := tr.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot len = %d", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("snap[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}

	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("dump:\n%s", buf.String())
	}
}

func TestNew_Both(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	span, _ := BeginCtx(traced(tr), ScopePass, "translate")
	span.End("")

	multi, ok := tr.(*MultiTracer)
	if !ok {
		t.Fatalf("expected *MultiTracer, got %T", tr)
	}
	ring, ok := multi.Ring()
	if !ok || len(ring.Snapshot()) != 2 {
		t.Fatal("ring tracer did not record both events")
	}
	if strings.Count(buf.String(), "translate") != 2 {
		t.Errorf("stream output:\n%s", buf.String())
	}
}

func TestContextPropagation(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	outer, ctx := BeginCtx(ctx, ScopeDriver, "outer")
	inner, _ := BeginCtx(ctx, ScopePass, "inner")
	inner.End("")
	outer.End("")

	snap := ring.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("expected 4 events, got %d", len(snap))
	}
	if snap[1].ParentID != outer.ID() {
		t.Errorf("inner parent = %d, want %d", snap[1].ParentID, outer.ID())
	}
	if FromContext(context.Background()) != Nop {
		t.Error("empty context must yield Nop")
	}
}

func TestWithUnit(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	driver, ctx := BeginCtx(ctx, ScopeDriver, "dir")
	fileCtx := WithUnit(ctx, "a.rkt")
	file, fileCtx := BeginCtx(fileCtx, ScopeFile, "transpile")
	PointCtx(fileCtx, ScopeFile, "cache", "miss")
	file.End("")
	driver.End("")

	if got := UnitFromContext(fileCtx); got != "a.rkt" {
		t.Fatalf("UnitFromContext = %q", got)
	}
	if UnitFromContext(ctx) != "" {
		t.Fatal("WithUnit must not change the parent context")
	}

	snap := ring.Snapshot()
	want := []struct {
		name string
		unit string
	}{
		{"dir", ""},
		{"transpile", "a.rkt"},
		{"cache", "a.rkt"},
		{"transpile", "a.rkt"},
		{"dir", ""},
	}
	if len(snap) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(snap))
	}
	for i, w := range want {
		if snap[i].Name != w.name || snap[i].Unit != w.unit {
			t.Errorf("event %d = %s <%s>, want %s <%s>", i, snap[i].Name, snap[i].Unit, w.name, w.unit)
		}
	}
	if snap[1].ParentID != driver.ID() {
		t.Errorf("file parent = %d, want %d", snap[1].ParentID, driver.ID())
	}
	if snap[2].ParentID != file.ID() {
		t.Errorf("point parent = %d, want %d", snap[2].ParentID, file.ID())
	}
	if len(ring.SnapshotUnit("a.rkt")) != 3 {
		t.Errorf("SnapshotUnit(a.rkt) = %v", ring.SnapshotUnit("a.rkt"))
	}
}

func TestNew_UnitFilter(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Mode: ModeStream, Format: FormatText, Output: &buf, Unit: "b.rkt"})
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithTracer(context.Background(), tr)
	root, ctx := BeginCtx(ctx, ScopeDriver, "dir")
	for _, unit := range []string{"a.rkt", "b.rkt", "c.rkt"} {
		s, _ := BeginCtx(WithUnit(ctx, unit), ScopeFile, "transpile")
		s.End("")
	}
	root.End("")

	out := buf.String()
	if strings.Count(out, "\n") != 4 {
		t.Fatalf("expected dir pair plus b.rkt pair:\n%s", out)
	}
	if !strings.Contains(out, "<b.rkt> transpile") {
		t.Errorf("missing unit prefix:\n%s", out)
	}
	if strings.Contains(out, "a.rkt") || strings.Contains(out, "c.rkt") {
		t.Errorf("other units leaked:\n%s", out)
	}
}

type failingTracer struct {
	Tracer
	err error
}

func (f failingTracer) Flush() error { return f.err }
func (f failingTracer) Close() error { return f.err }

func TestMultiTracer_JoinsErrors(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	multi := NewMultiTracer(LevelPhase, failingTracer{Nop, errA}, NewRingTracer(4, LevelPhase), failingTracer{Nop, errB})

	err := multi.Close()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("Close() = %v, want both errors", err)
	}
	if _, ok := multi.Ring(); !ok {
		t.Error("Ring() must find the ring tracer")
	}
}
