package diagfmt

import (
	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/symbols"
)

// expr renders an expression subtree. parent is the seq of the owning node,
// used in diagnostics for dangling handles.
func (p *tracePrinter) expr(id ast.ExprID, level int, parent uint32) error {
	e := p.b.Exprs.Get(id)
	if e == nil {
		return dangling("expression handle", parent)
	}
	p.visit(e.Kind.String(), e.Seq)

	switch e.Kind {
	case ast.ExprBinary:
		data, _ := p.b.Exprs.Binary(id)
		op, ok := data.Op.Mnemonic()
		if !ok {
			return diag.Errorf(diag.AstUnknownOperator, "binary operator %d is not in the operator set", data.Op).AtNode(e.Seq)
		}
		p.line(level, "BinaryExpr\top: %s", op)
		if err := p.expr(data.Left, level+levelStep, e.Seq); err != nil {
			return err
		}
		return p.expr(data.Right, level+levelStep, e.Seq)

	case ast.ExprUnary:
		data, _ := p.b.Exprs.Unary(id)
		op, ok := data.Op.Mnemonic()
		if !ok {
			return diag.Errorf(diag.AstUnknownOperator, "unary operator %d is not in the operator set", data.Op).AtNode(e.Seq)
		}
		p.line(level, "SingelExpr\top: %s", op)
		return p.expr(data.Operand, level+levelStep, e.Seq)

	case ast.ExprConstant:
		data, _ := p.b.Exprs.Constant(id)
		value, typ, err := p.symbol(data.Symbol)
		if err != nil {
			return atNode(err, e.Seq)
		}
		p.line(level, "IntegerLiteral\tvalue: %s\ttype: %s", value, typ)
		return nil

	case ast.ExprIdent:
		data, _ := p.b.Exprs.Ident(id)
		return atNode(p.idLine(data.Symbol, level), e.Seq)

	case ast.ExprCall:
		data, _ := p.b.Exprs.Call(id)
		return p.call(data.Callee, data.Args, level, e.Seq)
	}
	return diag.Errorf(diag.AstBadChild, "unknown expression kind %d", e.Kind).AtNode(e.Seq)
}

// symbol returns the textual form and type label of an entry.
func (p *tracePrinter) symbol(sym symbols.SymbolID) (label, typ string, err error) {
	label, err = p.syms.Label(sym)
	if err != nil {
		return "", "", err
	}
	t, err := p.syms.TypeOf(sym)
	if err != nil {
		return "", "", err
	}
	typ, err = p.typeLabel(t)
	if err != nil {
		return "", "", err
	}
	return label, typ, nil
}

// idLine writes the Id line shared by Id expressions and declarator lists.
func (p *tracePrinter) idLine(sym symbols.SymbolID, level int) error {
	name, typ, err := p.symbol(sym)
	if err != nil {
		return err
	}
	scope, err := p.syms.Scope(sym)
	if err != nil {
		return err
	}
	p.line(level, "Id\tname: %s\tscope: %d\ttype: %s", name, scope, typ)
	return nil
}

// call renders FuncCall and FuncExpr alike; the node kinds differ, the line does not.
func (p *tracePrinter) call(callee symbols.SymbolID, args ast.IDListID, level int, seq uint32) error {
	name, typ, err := p.symbol(callee)
	if err != nil {
		return atNode(err, seq)
	}
	p.line(level, "FunctionCall function name: %s, type: %s", name, typ)
	if !args.IsValid() {
		return nil
	}
	return p.idList(args, level+levelStep, seq)
}
