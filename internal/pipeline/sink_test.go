package pipeline

import (
	"sync"
	"testing"
	"time"
)

func TestCollector_ConcurrentEvents(t *testing.T) {
	var c Collector
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.OnEvent(Event{Unit: "a.rkt", Stage: StageParse, Status: StatusDone, Elapsed: time.Millisecond})
		}()
	}
	wg.Wait()

	if got := len(c.Events()); got != 8 {
		t.Fatalf("events = %d, want 8", got)
	}
	if got := c.Timings().Duration(StageParse); got != 8*time.Millisecond {
		t.Errorf("parse duration = %v", got)
	}
}

func TestFanoutAndChannel(t *testing.T) {
	ch := make(chan Event, 2)
	var seen []Stage
	sink := Fanout{ChannelSink{Ch: ch}, FuncSink(func(e Event) { seen = append(seen, e.Stage) }), nil}

	Emit(sink, Event{Stage: StageRead, Status: StatusWorking})
	Emit(sink, Event{Stage: StageWrite, Status: StatusDone})
	Emit(nil, Event{Stage: StageParse})

	if len(ch) != 2 || len(seen) != 2 || seen[1] != StageWrite {
		t.Fatalf("channel=%d func=%v", len(ch), seen)
	}
}

func TestTimings(t *testing.T) {
	var tm Timings
	tm.Add(StageParse, time.Second)
	tm.Add(StageTranslate, 2*time.Second)
	tm.Add(StageParse, time.Second)
	if !tm.Has(StageParse) || tm.Has(StageWrite) {
		t.Error("Has broken")
	}
	if got := tm.Sum(StageParse, StageTranslate); got != 4*time.Second {
		t.Errorf("Sum = %v", got)
	}
	if !StatusCached.Terminal() || StatusWorking.Terminal() {
		t.Error("Terminal broken")
	}
}

func TestStageLabels(t *testing.T) {
	tests := []struct {
		stage  Stage
		status Status
		want   string
	}{
		{StageParse, StatusWorking, "parsing"},
		{StageWrite, StatusWorking, "writing"},
		{StageParse, StatusCached, "cached"},
		{Stage(0), StatusWorking, ""},
	}
	for _, tt := range tests {
		if got := tt.status.Label(tt.stage); got != tt.want {
			t.Errorf("%s.Label(%v) = %q, want %q", tt.status, tt.stage, got, tt.want)
		}
	}
	var tm Timings
	tm.Add(Stage(9), time.Second)
	if tm.Sum(Stages()...) != 0 || Stage(9).String() != "unknown" {
		t.Error("unknown stages must be ignored")
	}
}
