// Package testkit holds span-invariant checks shared across
// internal/parser and internal/driver's test suites, so a fuzz or table
// test can assert "every node's span makes sense" in one call instead of
// duplicating the walk in each package.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/xnacly/sqleibniz/internal/ast"
	"github.com/xnacly/sqleibniz/internal/source"
)

// CheckSpanInvariants walks prog and verifies, for every node reachable
// from it, that the node's span is non-empty, anchored to file, and
// within file's content bounds.
//
// Grounded on the teacher's internal/testkit/invariants.go, which checks
// the analogous property against Surge's arena-indexed ast.Builder and
// additionally asserts that an item's span is contained within its
// file's span. That containment check doesn't carry over: a node's
// Span() here is its anchor token's own span (spec.md §3), not a range
// computed to cover its children (in a parsed `EXPLAIN COMMIT;`,
// EXPLAIN's anchor span [0,7) and its child COMMIT's anchor span [8,14)
// don't nest), so only the per-node bounds
// check is meaningful in this AST shape.
func CheckSpanInvariants(prog *ast.Program, file *source.File) error {
	if prog == nil || file == nil {
		return fmt.Errorf("nil program or file")
	}
	limit, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("content length overflow: %w", err)
	}
	for _, stmt := range prog.Stmts {
		if err := checkNode(stmt, file.ID, limit); err != nil {
			return err
		}
	}
	return nil
}

func checkNode(n ast.Node, fileID source.FileID, limit uint32) error {
	if n == nil {
		return fmt.Errorf("nil node in tree")
	}
	sp := n.Span()
	if sp.Empty() {
		return fmt.Errorf("%s: empty span %v", n.Kind(), sp)
	}
	if sp.File != fileID {
		return fmt.Errorf("%s: span points to file %d, want %d", n.Kind(), sp.File, fileID)
	}
	if sp.End > limit {
		return fmt.Errorf("%s: span end %d beyond content length %d", n.Kind(), sp.End, limit)
	}
	for _, child := range n.Children() {
		if err := checkNode(child, fileID, limit); err != nil {
			return err
		}
	}
	return nil
}
