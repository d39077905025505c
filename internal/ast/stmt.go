package ast

import "github.com/xnacly/sqleibniz/internal/token"

// TxKind is BEGIN's transaction mode.
type TxKind uint8

const (
	TxDeferred TxKind = iota
	TxImmediate
	TxExclusive
)

func (k TxKind) String() string {
	switch k {
	case TxImmediate:
		return "immediate"
	case TxExclusive:
		return "exclusive"
	default:
		return "deferred"
	}
}

// Explain wraps exactly one inner statement, optionally with QUERY PLAN.
type Explain struct {
	base
	QueryPlan bool
	Child     Node
}

func (n *Explain) Kind() Kind       { return KindExplain }
func (n *Explain) Children() []Node { return []Node{n.Child} }

func NewExplain(anchor token.Token, queryPlan bool, child Node) *Explain {
	return &Explain{base{anchor}, queryPlan, child}
}

// Vacuum is `VACUUM [schema] [INTO filename]`.
type Vacuum struct {
	base
	Schema   *Ident
	Filename *StringLit
}

func (n *Vacuum) Kind() Kind { return KindVacuum }

func (n *Vacuum) Children() []Node {
	var out []Node
	if n.Schema != nil {
		out = append(out, n.Schema)
	}
	if n.Filename != nil {
		out = append(out, n.Filename)
	}
	return out
}

func NewVacuum(anchor token.Token, schema *Ident, filename *StringLit) *Vacuum {
	return &Vacuum{base{anchor}, schema, filename}
}

// Begin is `BEGIN [DEFERRED|IMMEDIATE|EXCLUSIVE] [TRANSACTION]`.
type Begin struct {
	base
	TxKind TxKind
}

func (n *Begin) Kind() Kind       { return KindBegin }
func (n *Begin) Children() []Node { return nil }

func NewBegin(anchor token.Token, kind TxKind) *Begin { return &Begin{base{anchor}, kind} }

// Commit is `COMMIT|END [TRANSACTION]`.
type Commit struct{ base }

func (n *Commit) Kind() Kind       { return KindCommit }
func (n *Commit) Children() []Node { return nil }

func NewCommit(anchor token.Token) *Commit { return &Commit{base{anchor}} }

// Rollback is `ROLLBACK [TRANSACTION] [TO [SAVEPOINT] name]`.
type Rollback struct {
	base
	Savepoint *Ident
}

func (n *Rollback) Kind() Kind { return KindRollback }

func (n *Rollback) Children() []Node {
	if n.Savepoint == nil {
		return nil
	}
	return []Node{n.Savepoint}
}

func NewRollback(anchor token.Token, savepoint *Ident) *Rollback {
	return &Rollback{base{anchor}, savepoint}
}

// Savepoint is `SAVEPOINT name`.
type Savepoint struct {
	base
	Name *Ident
}

func (n *Savepoint) Kind() Kind       { return KindSavepoint }
func (n *Savepoint) Children() []Node { return []Node{n.Name} }

func NewSavepoint(anchor token.Token, name *Ident) *Savepoint {
	return &Savepoint{base{anchor}, name}
}

// Release is `RELEASE [SAVEPOINT] name`.
type Release struct {
	base
	Name *Ident
}

func (n *Release) Kind() Kind       { return KindRelease }
func (n *Release) Children() []Node { return []Node{n.Name} }

func NewRelease(anchor token.Token, name *Ident) *Release { return &Release{base{anchor}, name} }

// Detach is `DETACH [DATABASE] schema`.
type Detach struct {
	base
	Schema *Ident
}

func (n *Detach) Kind() Kind       { return KindDetach }
func (n *Detach) Children() []Node { return []Node{n.Schema} }

func NewDetach(anchor token.Token, schema *Ident) *Detach { return &Detach{base{anchor}, schema} }

// Attach is `ATTACH [DATABASE] source AS alias`.
type Attach struct {
	base
	Source Node
	Alias  *Ident
}

func (n *Attach) Kind() Kind       { return KindAttach }
func (n *Attach) Children() []Node { return []Node{n.Source, n.Alias} }

func NewAttach(anchor token.Token, source Node, alias *Ident) *Attach {
	return &Attach{base{anchor}, source, alias}
}

// Analyze is `ANALYZE [target]`.
type Analyze struct {
	base
	Target *QualifiedName
}

func (n *Analyze) Kind() Kind { return KindAnalyze }

func (n *Analyze) Children() []Node {
	if n.Target == nil {
		return nil
	}
	return []Node{n.Target}
}

func NewAnalyze(anchor token.Token, target *QualifiedName) *Analyze {
	return &Analyze{base{anchor}, target}
}

// Reindex is `REINDEX [target]`.
type Reindex struct {
	base
	Target *QualifiedName
}

func (n *Reindex) Kind() Kind { return KindReindex }

func (n *Reindex) Children() []Node {
	if n.Target == nil {
		return nil
	}
	return []Node{n.Target}
}

func NewReindex(anchor token.Token, target *QualifiedName) *Reindex {
	return &Reindex{base{anchor}, target}
}

// DropKind distinguishes DROP INDEX/TABLE/TRIGGER/VIEW, which otherwise
// share an identical grammar (spec.md §4.2: "uniform across
// index/table/trigger/view").
type DropKind uint8

const (
	DropIndexKind DropKind = iota
	DropTableKind
	DropTriggerKind
	DropViewKind
)

func (k DropKind) String() string {
	switch k {
	case DropTableKind:
		return "table"
	case DropTriggerKind:
		return "trigger"
	case DropViewKind:
		return "view"
	default:
		return "index"
	}
}

// Drop is `DROP <kind> [IF EXISTS] qualified_name`.
type Drop struct {
	base
	DropKind DropKind
	IfExists bool
	Name     *QualifiedName
}

func (n *Drop) Kind() Kind {
	switch n.DropKind {
	case DropTableKind:
		return KindDropTable
	case DropTriggerKind:
		return KindDropTrigger
	case DropViewKind:
		return KindDropView
	default:
		return KindDropIndex
	}
}

func (n *Drop) Children() []Node { return []Node{n.Name} }

func NewDrop(anchor token.Token, kind DropKind, ifExists bool, name *QualifiedName) *Drop {
	return &Drop{base{anchor}, kind, ifExists, name}
}

// Pragma is `PRAGMA name [= value | (value)]`.
type Pragma struct {
	base
	Name *QualifiedName
	Arg  Node
}

func (n *Pragma) Kind() Kind { return KindPragma }

func (n *Pragma) Children() []Node {
	if n.Arg == nil {
		return []Node{n.Name}
	}
	return []Node{n.Name, n.Arg}
}

func NewPragma(anchor token.Token, name *QualifiedName, arg Node) *Pragma {
	return &Pragma{base{anchor}, name, arg}
}

// AlterOp is the operation carried by an ALTER TABLE statement.
type AlterOp uint8

const (
	AlterRenameTable AlterOp = iota
	AlterRenameColumn
	AlterAddColumn
	AlterDropColumn
)

func (op AlterOp) String() string {
	switch op {
	case AlterRenameColumn:
		return "rename_column"
	case AlterAddColumn:
		return "add_column"
	case AlterDropColumn:
		return "drop_column"
	default:
		return "rename_table"
	}
}

// AlterTable is `ALTER TABLE target <op>`. OldName/NewName/ColumnDef hold
// the operands relevant to Op; unused fields are nil.
type AlterTable struct {
	base
	Target    *QualifiedName
	Op        AlterOp
	OldName   *Ident
	NewName   *Ident
	ColumnDef *Ident
}

func (n *AlterTable) Kind() Kind { return KindAlterTable }

func (n *AlterTable) Children() []Node {
	out := []Node{n.Target}
	for _, id := range []*Ident{n.OldName, n.NewName, n.ColumnDef} {
		if id != nil {
			out = append(out, id)
		}
	}
	return out
}

func NewAlterTable(anchor token.Token, target *QualifiedName, op AlterOp) *AlterTable {
	return &AlterTable{base: base{anchor}, Target: target, Op: op}
}

// Unimplemented marks a recognized-but-unimplemented statement lead
// (SELECT, INSERT, CREATE TABLE, ...): the parser stops at the leading
// keyword and recovers to the next semicolon (spec.md §4.2).
type Unimplemented struct {
	base
	Lead string
}

func (n *Unimplemented) Kind() Kind       { return KindUnimplemented }
func (n *Unimplemented) Children() []Node { return nil }

func NewUnimplemented(anchor token.Token, lead string) *Unimplemented {
	return &Unimplemented{base{anchor}, lead}
}
