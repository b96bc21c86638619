package ast

import "sysyc/internal/types"

type Hints struct{ Exprs, Stmts, Lists uint }

// Builder owns every node of one compilation unit. Children are stored by
// handle in per-kind arenas; a parent is the only holder of its children's
// handles. Symbol entries and types live outside and are referenced by ID.
type Builder struct {
	Exprs *Exprs
	Stmts *Stmts
	Lists *Lists

	seq  *Sequencer
	root NodeRef
}

func NewBuilder(hints Hints) *Builder {
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Lists == 0 {
		hints.Lists = 1 << 6
	}
	seq := &Sequencer{}
	return &Builder{
		Exprs: NewExprs(hints.Exprs, seq),
		Stmts: NewStmts(hints.Stmts, seq),
		Lists: NewLists(hints.Lists),
		seq:   seq,
	}
}

// SetRoot stores the top node of the program.
func (b *Builder) SetRoot(root NodeRef) {
	b.root = root
}

// Root returns the top node; Kind is NodeNone for an empty program.
func (b *Builder) Root() NodeRef {
	return b.root
}

// Seq returns the sequence number of the referenced node, 0 if the handle is dangling.
func (b *Builder) Seq(ref NodeRef) uint32 {
	switch ref.Kind {
	case NodeExpr:
		if e := b.Exprs.Get(ref.Expr); e != nil {
			return e.Seq
		}
	case NodeStmt:
		if s := b.Stmts.Get(ref.Stmt); s != nil {
			return s.Seq
		}
	}
	return 0
}

// Nodes reports how many nodes the builder has created.
func (b *Builder) Nodes() uint32 {
	return b.seq.Last()
}

// NewFuncAssignDeclared is Stmts.NewFuncAssignDeclared checked against this builder's expressions.
func (b *Builder) NewFuncAssignDeclared(typ types.TypeID, ident ExprID, body StmtID) (StmtID, error) {
	return b.Stmts.NewFuncAssignDeclared(b.Exprs, typ, ident, body)
}
