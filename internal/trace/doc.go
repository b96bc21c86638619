// Package trace is the logging layer of sysyc.
//
// Events are leveled and scoped; a Tracer decides whether to write them.
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: failures only
//   - LevelPhase: command boundaries and passes (load, dump)
//   - LevelDetail: per-unit events
//   - LevelDebug: everything including one event per dumped node
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "dump", 0)
//	defer span.End("")
package trace
