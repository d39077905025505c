// Package hooks implements the Starlark hook runtime: a pre-order AST
// walk that invokes user-configured hooks against a lazy, read-only
// scripting projection of each node (spec.md §4.4), turning a raising
// hook body into a Hook diagnostic.
package hooks

import (
	"fmt"

	"github.com/xnacly/sqleibniz/internal/ast"
	"github.com/xnacly/sqleibniz/internal/source"
	"go.starlark.net/starlark"
)

// projection is the Starlark-visible view of one ast.Node: exactly three
// attributes, kind/content/children, matching spec.md §4.4's contract.
// children is materialized lazily on first access so hooks that never
// inspect a subtree never pay for projecting it.
type projection struct {
	node     ast.Node
	fs       *source.FileSet
	children *starlark.List
}

func newProjection(node ast.Node, fs *source.FileSet) *projection {
	return &projection{node: node, fs: fs}
}

var (
	_ starlark.Value    = (*projection)(nil)
	_ starlark.HasAttrs = (*projection)(nil)
)

func (p *projection) String() string       { return fmt.Sprintf("<node %s>", p.node.Kind()) }
func (p *projection) Type() string         { return "node" }
func (p *projection) Freeze()              {}
func (p *projection) Truth() starlark.Bool { return starlark.True }
func (p *projection) Hash() (uint32, error) {
	return 0, fmt.Errorf("node values are unhashable")
}

// Attr implements starlark.HasAttrs. Per the interface contract, an
// unknown name returns (nil, nil), not an error.
func (p *projection) Attr(name string) (starlark.Value, error) {
	switch name {
	case "kind":
		return starlark.String(p.node.Kind().String()), nil
	case "content":
		return starlark.String(p.content()), nil
	case "children":
		return p.childrenList(), nil
	default:
		return nil, nil
	}
}

func (p *projection) AttrNames() []string {
	return []string{"kind", "content", "children"}
}

// content is the anchor token's text for literals and identifiers, and
// the raw source slice of the node's span for everything else (spec.md
// §4.4).
func (p *projection) content() string {
	switch p.node.(type) {
	case *ast.Ident, *ast.NumberLit, *ast.StringLit, *ast.BlobLit, *ast.BoolLit, *ast.NullLit:
		return p.node.Anchor().Text
	default:
		return string(p.fs.Slice(p.node.Span()))
	}
}

func (p *projection) childrenList() *starlark.List {
	if p.children == nil {
		kids := p.node.Children()
		vals := make([]starlark.Value, 0, len(kids))
		for _, k := range kids {
			if k == nil {
				continue
			}
			vals = append(vals, newProjection(k, p.fs))
		}
		p.children = starlark.NewList(vals)
		p.children.Freeze()
	}
	return p.children
}
