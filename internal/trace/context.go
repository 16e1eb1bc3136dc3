package trace

import "context"

type ctxKey struct{}

// frame is everything tracing keeps in a context: the tracer, the innermost
// open span and the unit (source file or batch line) being processed.
// Parallel workers derive their own frame, so their spans never share a parent
// by accident.
type frame struct {
	tracer Tracer
	span   uint64
	unit   string
}

func frameOf(ctx context.Context) frame {
	if ctx == nil {
		return frame{tracer: Nop}
	}
	if f, ok := ctx.Value(ctxKey{}).(frame); ok {
		return f
	}
	return frame{tracer: Nop}
}

// FromContext extracts the Tracer from context, or Nop.
func FromContext(ctx context.Context) Tracer {
	return frameOf(ctx).tracer
}

// WithTracer attaches a Tracer to context. Span and unit are reset.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, frame{tracer: t})
}

// WithUnit marks every event started under ctx as belonging to unit.
func WithUnit(ctx context.Context, unit string) context.Context {
	f := frameOf(ctx)
	if f.unit == unit {
		return ctx
	}
	f.unit = unit
	return context.WithValue(ctx, ctxKey{}, f)
}

// UnitFromContext returns the unit set by WithUnit, or "".
func UnitFromContext(ctx context.Context) string {
	return frameOf(ctx).unit
}

// CurrentSpanID is the innermost span started with BeginCtx, or 0.
func CurrentSpanID(ctx context.Context) uint64 {
	return frameOf(ctx).span
}

func withSpan(ctx context.Context, id uint64) context.Context {
	f := frameOf(ctx)
	f.span = id
	return context.WithValue(ctx, ctxKey{}, f)
}
