package ast

import (
	"encoding/json"

	"github.com/xnacly/sqleibniz/internal/token"
)

// tokenJSON renders a token per spec.md §6's AST dump schema: an object
// with exactly one key, the token's Kind spelling, holding its decoded
// payload. Keyword and punctuation tokens carry no payload beyond their
// own identity, so their content is null.
func tokenJSON(t token.Token) map[string]any {
	var content any
	switch t.Kind {
	case token.String:
		if v, ok := t.StringValue(); ok {
			content = v
		}
	case token.Number:
		if v, ok := t.NumberValue(); ok {
			content = v
		}
	case token.Blob:
		if v, ok := t.BlobValue(); ok {
			content = v
		}
	case token.Ident:
		content = t.Text
	}
	return map[string]any{t.Kind.String(): content}
}

// nodeOrNull marshals n, or JSON null for a nil interface or nil pointer
// held in a Node-typed field (Filename, Schema, Arg, ... are frequently
// unset).
func nodeOrNull(n Node) any {
	if n == nil {
		return nil
	}
	return n
}

func (n *Ident) MarshalJSON() ([]byte, error)     { return json.Marshal(tokenJSON(n.anchor)) }
func (n *NumberLit) MarshalJSON() ([]byte, error) { return json.Marshal(tokenJSON(n.anchor)) }
func (n *StringLit) MarshalJSON() ([]byte, error) { return json.Marshal(tokenJSON(n.anchor)) }
func (n *BlobLit) MarshalJSON() ([]byte, error)   { return json.Marshal(tokenJSON(n.anchor)) }
func (n *BoolLit) MarshalJSON() ([]byte, error)   { return json.Marshal(tokenJSON(n.anchor)) }
func (n *NullLit) MarshalJSON() ([]byte, error)   { return json.Marshal(tokenJSON(n.anchor)) }

func (n *QualifiedName) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string `json:"type"`
		Schema any    `json:"Schema"`
		Object any    `json:"Object"`
	}{"QualifiedName", nodeOrNull(n.Schema), nodeOrNull(n.Object)})
}

func (n *Explain) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string `json:"type"`
		QueryPlan bool   `json:"QueryPlan"`
		Child     any    `json:"Child"`
	}{"Explain", n.QueryPlan, nodeOrNull(n.Child)})
}

func (n *Vacuum) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Schema   any    `json:"Schema"`
		Filename any    `json:"Filename"`
	}{"Vacuum", nodeOrNull(n.Schema), nodeOrNull(n.Filename)})
}

func (n *Begin) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string `json:"type"`
		TxKind string `json:"TxKind"`
	}{"Begin", n.TxKind.String()})
}

func (n *Commit) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{"Commit"})
}

func (n *Rollback) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string `json:"type"`
		Savepoint any    `json:"Savepoint"`
	}{"Rollback", nodeOrNull(n.Savepoint)})
}

func (n *Savepoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Name any    `json:"Name"`
	}{"Savepoint", nodeOrNull(n.Name)})
}

func (n *Release) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Name any    `json:"Name"`
	}{"Release", nodeOrNull(n.Name)})
}

func (n *Detach) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string `json:"type"`
		Schema any    `json:"Schema"`
	}{"Detach", nodeOrNull(n.Schema)})
}

func (n *Attach) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string `json:"type"`
		Source any    `json:"Source"`
		Alias  any    `json:"Alias"`
	}{"Attach", nodeOrNull(n.Source), nodeOrNull(n.Alias)})
}

func (n *Analyze) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string `json:"type"`
		Target any    `json:"Target"`
	}{"Analyze", nodeOrNull(n.Target)})
}

func (n *Reindex) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string `json:"type"`
		Target any    `json:"Target"`
	}{"Reindex", nodeOrNull(n.Target)})
}

func (n *Drop) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		DropKind string `json:"DropKind"`
		IfExists bool   `json:"IfExists"`
		Name     any    `json:"Name"`
	}{"Drop", n.DropKind.String(), n.IfExists, nodeOrNull(n.Name)})
}

func (n *Pragma) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Name any    `json:"Name"`
		Arg  any    `json:"Arg"`
	}{"Pragma", nodeOrNull(n.Name), nodeOrNull(n.Arg)})
}

func (n *AlterTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string `json:"type"`
		Target    any    `json:"Target"`
		Op        string `json:"Op"`
		OldName   any    `json:"OldName"`
		NewName   any    `json:"NewName"`
		ColumnDef any    `json:"ColumnDef"`
	}{"AlterTable", nodeOrNull(n.Target), n.Op.String(), nodeOrNull(n.OldName), nodeOrNull(n.NewName), nodeOrNull(n.ColumnDef)})
}

func (n *Unimplemented) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Lead string `json:"Lead"`
	}{"Unimplemented", n.Lead})
}

// MarshalJSON renders the program as a "Program"-tagged object whose
// Stmts field holds the statement list, in the same tagged form as every
// other node.
func (p *Program) MarshalJSON() ([]byte, error) {
	stmts := make([]any, len(p.Stmts))
	for i, s := range p.Stmts {
		stmts[i] = nodeOrNull(s)
	}
	return json.Marshal(struct {
		Type  string `json:"type"`
		Stmts []any  `json:"Stmts"`
	}{"Program", stmts})
}
