package trace

import (
	"context"
	"sync/atomic"
	"time"
)

// Span and sequence counters are process-wide, so a stream and a ring fed by
// one MultiTracer agree on IDs.
var seqCounter, spanCounter atomic.Uint64

// NextSeq returns the next event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// Span is an open begin/end pair. A span the tracer filtered out has ID 0
// and ignores End and WithExtra.
type Span struct {
	at      frame // tracer, parent span and unit when the span began
	id      uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

func admits(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// BeginCtx opens a span under the tracer, span and unit carried by ctx and
// returns a context in which the new span is the parent.
func BeginCtx(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	f := frameOf(ctx)
	if !admits(f.tracer, scope) {
		return &Span{}, ctx
	}
	s := &Span{at: f, id: spanCounter.Add(1), scope: scope, name: name, started: time.Now()}
	f.tracer.Emit(s.event(KindSpanBegin, s.started, ""))
	return s, withSpan(ctx, s.id)
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.at.span,
		Unit:     s.at.unit,
		Name:     s.name,
		Detail:   detail,
	}
}

// End emits the closing event with detail and any extras.
func (s *Span) End(detail string) {
	if s.ID() == 0 {
		return
	}
	ev := s.event(KindSpanEnd, time.Now(), detail)
	ev.Extra = s.extra
	s.at.tracer.Emit(ev)
}

// WithExtra attaches key=value to the closing event.
func (s *Span) WithExtra(key, value string) *Span {
	if s.ID() == 0 {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// PointCtx emits an instant event under the span and unit carried by ctx.
func PointCtx(ctx context.Context, scope Scope, name, detail string) {
	f := frameOf(ctx)
	if !admits(f.tracer, scope) {
		return
	}
	f.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: f.span,
		Unit:     f.unit,
		Name:     name,
		Detail:   detail,
	})
}
