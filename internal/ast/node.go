package ast

import (
	"sysyc/internal/symbols"
	"sysyc/internal/types"
)

// NodeKind says which arena a NodeRef points into.
type NodeKind uint8

const (
	NodeNone NodeKind = iota
	NodeExpr
	NodeStmt
)

// NodeRef is a handle to any tree node: an expression or a statement.
type NodeRef struct {
	Kind NodeKind
	Expr ExprID
	Stmt StmtID
}

func ExprRef(id ExprID) NodeRef { return NodeRef{Kind: NodeExpr, Expr: id} }
func StmtRef(id StmtID) NodeRef { return NodeRef{Kind: NodeStmt, Stmt: id} }

func (r NodeRef) IsValid() bool {
	switch r.Kind {
	case NodeExpr:
		return r.Expr.IsValid()
	case NodeStmt:
		return r.Stmt.IsValid()
	}
	return false
}

// SymbolTable is what the tree needs from the symbol table: the textual form,
// type and scope depth of an entry, and type assignment for declarator lists.
// *symbols.Table implements it.
type SymbolTable interface {
	Label(id symbols.SymbolID) (string, error)
	TypeOf(id symbols.SymbolID) (types.TypeID, error)
	Scope(id symbols.SymbolID) (int, error)
	SetType(id symbols.SymbolID, typ types.TypeID) error
}

var _ SymbolTable = (*symbols.Table)(nil)
