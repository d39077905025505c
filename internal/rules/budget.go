package rules

import "time"

// HookBudget bounds how much work a single hook invocation is allowed to
// do before the hook runtime aborts it and raises a Hook diagnostic in its
// place (spec.md §4.4: hooks must not be able to hang or runaway-loop the
// analyzer). Both limits are enforced independently; whichever is hit
// first wins.
type HookBudget struct {
	// Wall clamps real time spent inside a single hook call, checked by the
	// Starlark thread's cancellation callback.
	Wall time.Duration
	// Steps clamps the Starlark interpreter's own step counter
	// (thread.SetMaxExecutionSteps), which catches CPU-bound infinite loops
	// even under a stopped clock (e.g. a debugger attached to the process).
	Steps uint64
}

// DefaultHookBudget is deliberately generous for a single AST-node
// callback — most hooks are a handful of comparisons — while still
// bounding worst case so a config file with a runaway hook cannot stall
// a whole analysis run (spec.md §9 open question: budget must be
// configurable but safe-by-default).
var DefaultHookBudget = HookBudget{
	Wall:  50 * time.Millisecond,
	Steps: 500_000,
}
