package testkit

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/symbols"
)

// TreeStats summarizes a checked tree.
type TreeStats struct {
	Reachable uint32 // nodes reachable from the root
	Allocated uint32 // nodes ever created by the builder
	Lists     int    // declarator lists reachable from the root
}

// CheckTree verifies the ownership invariants of a built tree:
// 1) every handle reachable from the root refers to an allocated node or list
// 2) no node or list is reachable through more than one parent
// 3) every InitIDList pairs names and initializers one to one
// 4) every referenced symbol exists in syms (skipped when syms is nil)
//
// Orphaned nodes (allocated but unreachable) are allowed.
func CheckTree(b *ast.Builder, syms ast.SymbolTable) (TreeStats, error) {
	if b == nil {
		return TreeStats{}, errors.New("nil builder")
	}
	c := &checker{
		b:     b,
		syms:  syms,
		exprs: make(map[ast.ExprID]struct{}),
		stmts: make(map[ast.StmtID]struct{}),
		lists: make(map[listKey]struct{}),
	}
	var err error
	switch root := b.Root(); root.Kind {
	case ast.NodeExpr:
		err = c.expr(root.Expr, 0)
	case ast.NodeStmt:
		err = c.stmt(root.Stmt, 0)
	}
	if err != nil {
		return TreeStats{}, err
	}
	reachable, err := safecast.Conv[uint32](len(c.exprs) + len(c.stmts))
	if err != nil {
		return TreeStats{}, fmt.Errorf("reachable count overflow: %w", err)
	}
	return TreeStats{Reachable: reachable, Allocated: b.Nodes(), Lists: len(c.lists)}, nil
}

type listKind uint8

const (
	listIDs listKind = iota + 1
	listInits
	listParams
)

type listKey struct {
	kind listKind
	id   uint32
}

type checker struct {
	b     *ast.Builder
	syms  ast.SymbolTable
	exprs map[ast.ExprID]struct{}
	stmts map[ast.StmtID]struct{}
	lists map[listKey]struct{}
}

func missing(what string, id, parent uint32) error {
	return diag.Errorf(diag.AstDanglingHandle, "%s #%d is not allocated", what, id).AtNode(parent)
}

func shared(what string, id, parent uint32) error {
	return diag.Errorf(diag.AstSharedChild, "%s #%d already has a parent", what, id).AtNode(parent)
}

func (c *checker) symbol(id symbols.SymbolID, seq uint32) error {
	if c.syms == nil {
		return nil
	}
	if _, err := c.syms.TypeOf(id); err != nil {
		var d *diag.Diagnostic
		if errors.As(err, &d) && d.Node == 0 {
			d.Node = seq
		}
		return err
	}
	return nil
}

func (c *checker) claimList(kind listKind, id, parent uint32) error {
	key := listKey{kind: kind, id: id}
	if _, dup := c.lists[key]; dup {
		return shared("list", id, parent)
	}
	c.lists[key] = struct{}{}
	return nil
}

func (c *checker) symbolList(entries []symbols.SymbolID, seq uint32) error {
	for _, sym := range entries {
		if err := c.symbol(sym, seq); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) idList(id ast.IDListID, seq uint32) error {
	list, ok := c.b.Lists.IDList(id)
	if !ok {
		return missing("declarator list", uint32(id), seq)
	}
	if err := c.claimList(listIDs, uint32(id), seq); err != nil {
		return err
	}
	return c.symbolList(list.Entries(), seq)
}

func (c *checker) expr(id ast.ExprID, parent uint32) error {
	e := c.b.Exprs.Get(id)
	if e == nil {
		return missing("expression", uint32(id), parent)
	}
	if _, dup := c.exprs[id]; dup {
		return shared("expression", uint32(id), parent)
	}
	c.exprs[id] = struct{}{}

	switch e.Kind {
	case ast.ExprBinary:
		data, _ := c.b.Exprs.Binary(id)
		if err := c.expr(data.Left, e.Seq); err != nil {
			return err
		}
		return c.expr(data.Right, e.Seq)
	case ast.ExprUnary:
		data, _ := c.b.Exprs.Unary(id)
		return c.expr(data.Operand, e.Seq)
	case ast.ExprConstant:
		data, _ := c.b.Exprs.Constant(id)
		return c.symbol(data.Symbol, e.Seq)
	case ast.ExprIdent:
		data, _ := c.b.Exprs.Ident(id)
		return c.symbol(data.Symbol, e.Seq)
	case ast.ExprCall:
		data, _ := c.b.Exprs.Call(id)
		if err := c.symbol(data.Callee, e.Seq); err != nil {
			return err
		}
		if !data.Args.IsValid() {
			return nil
		}
		return c.idList(data.Args, e.Seq)
	}
	return diag.Errorf(diag.AstBadChild, "unknown expression kind %d", e.Kind).AtNode(e.Seq)
}

func (c *checker) stmt(id ast.StmtID, parent uint32) error {
	s := c.b.Stmts.Get(id)
	if s == nil {
		return missing("statement", uint32(id), parent)
	}
	if _, dup := c.stmts[id]; dup {
		return shared("statement", uint32(id), parent)
	}
	c.stmts[id] = struct{}{}

	switch s.Kind {
	case ast.StmtCompound:
		data, _ := c.b.Stmts.Compound(id)
		if !data.Body.IsValid() {
			return nil
		}
		return c.stmt(data.Body, s.Seq)
	case ast.StmtSeq:
		data, _ := c.b.Stmts.Seq(id)
		if err := c.stmt(data.First, s.Seq); err != nil {
			return err
		}
		return c.stmt(data.Second, s.Seq)
	case ast.StmtDecl:
		data, _ := c.b.Stmts.Decl(id)
		return c.idList(data.List, s.Seq)
	case ast.StmtEmpty:
		data, _ := c.b.Stmts.Empty(id)
		if !data.Expr.IsValid() {
			return nil
		}
		return c.expr(data.Expr, s.Seq)
	case ast.StmtInit:
		data, _ := c.b.Stmts.Init(id)
		return c.initList(data.List, s.Seq)
	case ast.StmtIf, ast.StmtIfElse:
		data, _ := c.b.Stmts.If(id)
		if err := c.expr(data.Cond, s.Seq); err != nil {
			return err
		}
		if err := c.stmt(data.Then, s.Seq); err != nil {
			return err
		}
		if s.Kind == ast.StmtIf {
			return nil
		}
		return c.stmt(data.Else, s.Seq)
	case ast.StmtAssign:
		data, _ := c.b.Stmts.Assign(id)
		if err := c.expr(data.LValue, s.Seq); err != nil {
			return err
		}
		return c.expr(data.Value, s.Seq)
	case ast.StmtWhile:
		data, _ := c.b.Stmts.While(id)
		if err := c.expr(data.Cond, s.Seq); err != nil {
			return err
		}
		return c.stmt(data.Body, s.Seq)
	case ast.StmtReturn:
		data, _ := c.b.Stmts.Return(id)
		if data.Shape == ast.ReturnCall {
			call, err := data.CallStmt()
			if err != nil {
				return err
			}
			return c.stmt(call, s.Seq)
		}
		value, err := data.ValueExpr()
		if err != nil {
			return err
		}
		return c.expr(value, s.Seq)
	case ast.StmtFunctionDef:
		data, _ := c.b.Stmts.FunctionDef(id)
		if err := c.symbol(data.Symbol, s.Seq); err != nil {
			return err
		}
		if data.Params.IsValid() {
			params, ok := c.b.Lists.ParaList(data.Params)
			if !ok {
				return missing("parameter list", uint32(data.Params), s.Seq)
			}
			if err := c.claimList(listParams, uint32(data.Params), s.Seq); err != nil {
				return err
			}
			if err := c.symbolList(params.Entries(), s.Seq); err != nil {
				return err
			}
		}
		return c.stmt(data.Body, s.Seq)
	case ast.StmtFuncCall:
		data, _ := c.b.Stmts.FuncCall(id)
		if err := c.symbol(data.Callee, s.Seq); err != nil {
			return err
		}
		if !data.Args.IsValid() {
			return nil
		}
		return c.idList(data.Args, s.Seq)
	case ast.StmtFuncAssign:
		data, _ := c.b.Stmts.FuncAssign(id)
		var target ast.ExprID
		if data.Shape == ast.FuncAssignDeclared {
			_, ident, err := data.Declared()
			if err != nil {
				return err
			}
			target = ident
		} else {
			lv, err := data.LValue()
			if err != nil {
				return err
			}
			target = lv
		}
		if err := c.expr(target, s.Seq); err != nil {
			return err
		}
		return c.stmt(data.Body, s.Seq)
	}
	return diag.Errorf(diag.AstBadChild, "unknown statement kind %d", s.Kind).AtNode(s.Seq)
}

func (c *checker) initList(id ast.InitListID, seq uint32) error {
	list, ok := c.b.Lists.InitList(id)
	if !ok {
		return missing("initializer list", uint32(id), seq)
	}
	if err := c.claimList(listInits, uint32(id), seq); err != nil {
		return err
	}
	entries, inits := list.Entries(), list.Inits()
	if len(entries) != len(inits) {
		return diag.Errorf(diag.AstInitCountMismatch, "%d declarators but %d initializers", len(entries), len(inits)).AtNode(seq)
	}
	if err := c.symbolList(entries, seq); err != nil {
		return err
	}
	for _, init := range inits {
		if err := c.expr(init, seq); err != nil {
			return err
		}
	}
	return nil
}
