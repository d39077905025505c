// Package trace provides a tracing subsystem for the sqleibniz analyzer
// pipeline.
//
// The trace package enables tracking of lex/parse/hook phases, per-file
// processing, and other operations to help diagnose performance issues
// and hangs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	sqleibniz diagnose --trace=- --trace-level=phase myfile.sql
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - NopTracer: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer for crash dumps
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: Only crash dumps
//   - LevelPhase: Driver and pass boundaries
//   - LevelDetail: File-level events
//   - LevelDebug: Everything including AST nodes
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: Top-level CLI operations
//   - ScopeFile: Per-file processing
//   - ScopePass: Analysis phases (lex, parse, hook evaluation)
//   - ScopeNode: AST node level (future)
//
// # Context Propagation
//
// Tracers are propagated through the compilation pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
//
// internal/driver.AnalyzeFiles wraps the whole run in a ScopeDriver span
// and each file's Analyze call in a ScopeFile span; cmd/sqleibniz wires
// --trace/--trace-level/--trace-mode to trace.New and attaches the
// result to the run's context.
package trace
