package ast

import "github.com/xnacly/sqleibniz/internal/token"

// Ident is a bare identifier, quoted or not; Anchor.Text carries the
// unquoted spelling (quote stripping happens in the lexer).
type Ident struct {
	base
}

func (n *Ident) Kind() Kind       { return KindIdent }
func (n *Ident) Children() []Node { return nil }
func (n *Ident) Name() string     { return n.anchor.Text }

func NewIdent(anchor token.Token) *Ident { return &Ident{base{anchor}} }

// QualifiedName is `schema.object`; Schema is nil for a bare name.
type QualifiedName struct {
	base
	Schema *Ident
	Object *Ident
}

func (n *QualifiedName) Kind() Kind { return KindQualifiedName }

func (n *QualifiedName) Children() []Node {
	if n.Schema == nil {
		return []Node{n.Object}
	}
	return []Node{n.Schema, n.Object}
}

// String renders the dotted form, "schema.object" or just "object".
func (n *QualifiedName) String() string {
	if n.Schema == nil {
		return n.Object.Name()
	}
	return n.Schema.Name() + "." + n.Object.Name()
}

func NewQualifiedName(anchor token.Token, schema, object *Ident) *QualifiedName {
	return &QualifiedName{base{anchor}, schema, object}
}

// NumberLit is a numeric literal; Value is the decoded float64 payload.
type NumberLit struct {
	base
	Value float64
}

func (n *NumberLit) Kind() Kind       { return KindNumber }
func (n *NumberLit) Children() []Node { return nil }

func NewNumberLit(anchor token.Token, v float64) *NumberLit { return &NumberLit{base{anchor}, v} }

// StringLit is a decoded string literal (quotes stripped, '' unescaped).
type StringLit struct {
	base
	Value string
}

func (n *StringLit) Kind() Kind       { return KindString }
func (n *StringLit) Children() []Node { return nil }

func NewStringLit(anchor token.Token, v string) *StringLit { return &StringLit{base{anchor}, v} }

// BlobLit is a decoded x'...' blob literal.
type BlobLit struct {
	base
	Value []byte
}

func (n *BlobLit) Kind() Kind       { return KindBlob }
func (n *BlobLit) Children() []Node { return nil }

func NewBlobLit(anchor token.Token, v []byte) *BlobLit { return &BlobLit{base{anchor}, v} }

// BoolLit is a TRUE/FALSE keyword literal.
type BoolLit struct {
	base
	Value bool
}

func (n *BoolLit) Kind() Kind       { return KindBoolean }
func (n *BoolLit) Children() []Node { return nil }

func NewBoolLit(anchor token.Token, v bool) *BoolLit { return &BoolLit{base{anchor}, v} }

// NullLit is the NULL keyword literal.
type NullLit struct {
	base
}

func (n *NullLit) Kind() Kind       { return KindNull }
func (n *NullLit) Children() []Node { return nil }

func NewNullLit(anchor token.Token) *NullLit { return &NullLit{base{anchor}} }
