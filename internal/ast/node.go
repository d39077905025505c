// Package ast defines the typed AST produced by internal/parser: a tagged
// variant over statement and expression forms, each carrying an "anchor"
// token that provides its primary span (spec.md §3).
//
// Node kinds are represented as distinct Go struct types rather than one
// arena-indexed union: unlike a multi-pass compiler frontend, nothing in
// this analyzer needs to hold a stable node ID across passes (there is no
// separate semantic pass here that resolves symbols by ID), so a plain
// pointer tree is the right amount of machinery.
package ast

import (
	"github.com/xnacly/sqleibniz/internal/source"
	"github.com/xnacly/sqleibniz/internal/token"
)

// Node is implemented by every AST node. Anchor is the node's primary
// token, whose span is authoritative for diagnostics anchored to the
// whole node.
type Node interface {
	Kind() Kind
	Anchor() token.Token
	Span() source.Span
	// Children returns the node's immediate children in source order, for
	// pre-order AST walks (parser recovery dumps, the hook runtime's
	// projection). Leaf nodes return nil.
	Children() []Node
}

// base is embedded by every concrete node type to provide Anchor/Span
// without repeating the field and method on each struct.
type base struct {
	anchor token.Token
}

func (b base) Anchor() token.Token { return b.anchor }
func (b base) Span() source.Span   { return b.anchor.Span }

// Program is the root of a parsed file: the sequence of top-level
// statements, in source order.
type Program struct {
	Stmts []Node
}
