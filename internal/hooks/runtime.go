package hooks

import (
	"context"
	"strings"

	"github.com/xnacly/sqleibniz/internal/ast"
	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
	"go.starlark.net/starlark"
)

// Sink is the diagnostic surface the hook runtime needs; satisfied by
// *diag.Sink.
type Sink interface {
	Emit(diag.Diagnostic)
}

// Runtime dispatches a fixed set of hooks over one file's AST. A Runtime
// is scoped to a single file and discarded after: spec.md §4.4 requires
// hooks to run in a fresh interpreter per file, so nothing here is
// reused across files the way ThreadPool reuses threads across template
// renders.
type Runtime struct {
	hooks  []rules.HookDescriptor
	budget rules.HookBudget
	fs     *source.FileSet
	sink   Sink

	// exhausted latches once any hook invocation overruns its budget:
	// spec.md §4.4 says an overrun "skips further hook execution for
	// that file", not just for that hook.
	exhausted bool
}

// New builds a Runtime bound to fs's contents, invoking hooks under
// budget and reporting to sink.
func New(hooks []rules.HookDescriptor, budget rules.HookBudget, fs *source.FileSet, sink Sink) *Runtime {
	return &Runtime{hooks: hooks, budget: budget, fs: fs, sink: sink}
}

// Walk visits prog's statements in pre-order, invoking every hook whose
// NodeKind matches the visited node's kind (or rules.AnyNodeKind).
func (r *Runtime) Walk(prog *ast.Program) {
	for _, stmt := range prog.Stmts {
		ast.Walk(stmt, r.visit)
		if r.exhausted {
			return
		}
	}
}

func (r *Runtime) visit(n ast.Node) {
	if r.exhausted {
		return
	}
	kind := n.Kind().String()
	for _, h := range r.hooks {
		if h.NodeKind != kind && h.NodeKind != rules.AnyNodeKind {
			continue
		}
		if r.invoke(h, n) {
			return
		}
	}
}

// invoke runs one hook against one node. It reports whether the file's
// hook budget was exhausted, in which case the caller (Walk, via visit)
// stops visiting entirely.
func (r *Runtime) invoke(h rules.HookDescriptor, n ast.Node) (exhausted bool) {
	fn, ok := h.Body.(starlark.Callable)
	if !ok {
		return false
	}

	thread := &starlark.Thread{
		Name: h.Name,
		Print: func(*starlark.Thread, string) {
			// Hooks are validators, not template renderers: prints are
			// silently discarded rather than surfaced anywhere.
		},
	}
	thread.SetMaxExecutionSteps(r.budget.Steps)

	proj := newProjection(n, r.fs)

	ctx, cancel := context.WithTimeout(context.Background(), r.budget.Wall)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := starlark.Call(thread, fn, starlark.Tuple{proj}, nil)
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			return false
		}
		if isBudgetError(err) {
			r.reportBudgetExceeded(h, n)
			return true
		}
		r.sink.Emit(diag.NewHookError(h.Name, n.Span(), err.Error()))
		return false
	case <-ctx.Done():
		thread.Cancel("hook exceeded wall-clock budget")
		<-done // wait for the goroutine to observe the cancellation and return
		r.reportBudgetExceeded(h, n)
		return true
	}
}

func (r *Runtime) reportBudgetExceeded(h rules.HookDescriptor, n ast.Node) {
	r.exhausted = true
	r.sink.Emit(diag.NewHookError(h.Name, n.Span(), "hook exceeded budget"))
}

// isBudgetError reports whether err is go.starlark.net's step-limit or
// cancellation error rather than an ordinary script failure (a fail()
// call, a type error, ...). Both spellings surface through *starlark.
// EvalError's message text; there is no distinct error type to assert
// against.
func isBudgetError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "too many steps") || strings.Contains(msg, "cancelled")
}
