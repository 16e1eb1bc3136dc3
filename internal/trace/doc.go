// Package trace records what rackpy is doing while it transpiles.
//
// Enable tracing via command-line flags:
//
//	rackpy dir --trace=- --trace-level=detail examples/
//	rackpy dir --trace=- --trace-level=detail --trace-unit=examples/a.rkt examples/
//
// Tracers:
//
//   - Nop: used when tracing is off
//   - StreamTracer: writes each event immediately (file or stderr)
//   - RingTracer: keeps the last N events in memory for dumping on failure
//   - MultiTracer: fans events out to several tracers
//
// Levels and the scopes they admit:
//
//   - LevelOff: nothing
//   - LevelError: only explicit failure dumps
//   - LevelPhase: ScopeDriver, ScopePass
//   - LevelDetail: adds ScopeFile
//   - LevelDebug: adds ScopeForm (one event per top-level form)
//
// Tracers travel through the pipeline in a context together with the open
// span and the unit (file or batch line) a worker is on:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx = trace.WithUnit(ctx, "examples/a.rkt")
//	span, ctx := trace.BeginCtx(ctx, trace.ScopePass, "parse")
//	defer span.End("")
//
// --trace-unit keeps the events of one unit and drops the other workers'.
package trace
