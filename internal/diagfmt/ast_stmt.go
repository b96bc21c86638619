package diagfmt

import (
	"sysyc/internal/ast"
	"sysyc/internal/diag"
)

func (p *tracePrinter) stmt(id ast.StmtID, level int, parent uint32) error {
	s := p.b.Stmts.Get(id)
	if s == nil {
		return dangling("statement handle", parent)
	}
	p.visit(s.Kind.String(), s.Seq)
	next := level + levelStep

	switch s.Kind {
	case ast.StmtCompound:
		data, _ := p.b.Stmts.Compound(id)
		p.line(level, "CompoundStmt")
		if !data.Body.IsValid() {
			return nil
		}
		return p.stmt(data.Body, next, s.Seq)

	case ast.StmtSeq:
		data, _ := p.b.Stmts.Seq(id)
		p.line(level, "Sequence")
		if err := p.stmt(data.First, next, s.Seq); err != nil {
			return err
		}
		return p.stmt(data.Second, next, s.Seq)

	case ast.StmtDecl:
		data, _ := p.b.Stmts.Decl(id)
		p.line(level, "DeclStmt")
		return p.idList(data.List, next, s.Seq)

	case ast.StmtEmpty:
		data, _ := p.b.Stmts.Empty(id)
		p.line(level, "EmptyStmt")
		if !data.Expr.IsValid() {
			return nil
		}
		return p.expr(data.Expr, next, s.Seq)

	case ast.StmtInit:
		data, _ := p.b.Stmts.Init(id)
		p.line(level, "InitStmt")
		return p.initList(data.List, next, s.Seq)

	case ast.StmtIf, ast.StmtIfElse:
		data, _ := p.b.Stmts.If(id)
		p.line(level, "%s", s.Kind)
		if err := p.expr(data.Cond, next, s.Seq); err != nil {
			return err
		}
		if err := p.stmt(data.Then, next, s.Seq); err != nil {
			return err
		}
		if s.Kind == ast.StmtIf {
			return nil
		}
		return p.stmt(data.Else, next, s.Seq)

	case ast.StmtAssign:
		data, _ := p.b.Stmts.Assign(id)
		p.line(level, "AssignStmt")
		if err := p.expr(data.LValue, next, s.Seq); err != nil {
			return err
		}
		return p.expr(data.Value, next, s.Seq)

	case ast.StmtWhile:
		data, _ := p.b.Stmts.While(id)
		p.line(level, "WhileStmt")
		if err := p.expr(data.Cond, next, s.Seq); err != nil {
			return err
		}
		return p.stmt(data.Body, next, s.Seq)

	case ast.StmtReturn:
		data, _ := p.b.Stmts.Return(id)
		p.line(level, "ReturnStmt")
		switch data.Shape {
		case ast.ReturnValue:
			value, err := data.ValueExpr()
			if err != nil {
				return atNode(err, s.Seq)
			}
			return p.expr(value, next, s.Seq)
		case ast.ReturnCall:
			call, err := data.CallStmt()
			if err != nil {
				return atNode(err, s.Seq)
			}
			return p.stmt(call, next, s.Seq)
		}
		return diag.Errorf(diag.AstVariantEmpty, "return statement has neither value nor call").AtNode(s.Seq)

	case ast.StmtFunctionDef:
		data, _ := p.b.Stmts.FunctionDef(id)
		name, typ, err := p.symbol(data.Symbol)
		if err != nil {
			return atNode(err, s.Seq)
		}
		p.line(level, "FunctionDefine function name: %s, type: %s", name, typ)
		if data.Params.IsValid() {
			if err := p.paraList(data.Params, next, s.Seq); err != nil {
				return err
			}
		}
		return p.stmt(data.Body, next, s.Seq)

	case ast.StmtFuncCall:
		data, _ := p.b.Stmts.FuncCall(id)
		return p.call(data.Callee, data.Args, level, s.Seq)

	case ast.StmtFuncAssign:
		data, _ := p.b.Stmts.FuncAssign(id)
		var target ast.ExprID
		switch data.Shape {
		case ast.FuncAssignLValue:
			lv, err := data.LValue()
			if err != nil {
				return atNode(err, s.Seq)
			}
			p.line(level, "FuncAssignStmt")
			target = lv
		case ast.FuncAssignDeclared:
			typ, ident, err := data.Declared()
			if err != nil {
				return atNode(err, s.Seq)
			}
			label, err := p.typeLabel(typ)
			if err != nil {
				return atNode(err, s.Seq)
			}
			p.line(level, "FuncAssignStmt\ttype: %s", label)
			target = ident
		default:
			return diag.Errorf(diag.AstVariantEmpty, "function assignment has no target").AtNode(s.Seq)
		}
		if err := p.expr(target, next, s.Seq); err != nil {
			return err
		}
		return p.stmt(data.Body, next, s.Seq)
	}
	return diag.Errorf(diag.AstBadChild, "unknown statement kind %d", s.Kind).AtNode(s.Seq)
}
