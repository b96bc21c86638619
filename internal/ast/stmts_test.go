package ast

import (
	"testing"

	"sysyc/internal/diag"
	"sysyc/internal/symbols"
	"sysyc/internal/types"
)

func TestReturnValueShape(t *testing.T) {
	b := NewBuilder(Hints{})
	val := b.Exprs.NewConstant(symbols.SymbolID(1))
	ret, err := b.Stmts.NewReturnValue(val)
	if err != nil {
		t.Fatal(err)
	}
	data, ok := b.Stmts.Return(ret)
	if !ok || data.Shape != ReturnValue {
		t.Fatalf("unexpected return data %+v", data)
	}
	if got, err := data.ValueExpr(); err != nil || got != val {
		t.Fatalf("ValueExpr = %d, %v", got, err)
	}
	if _, err := data.CallStmt(); diag.CodeOf(err) != diag.AstVariantEmpty {
		t.Fatalf("CallStmt on a value return must fail with AstVariantEmpty, got %v", err)
	}
}

func TestReturnCallShape(t *testing.T) {
	b := NewBuilder(Hints{})
	call := b.Stmts.NewFuncCall(symbols.SymbolID(1), NoIDListID)
	ret, err := b.Stmts.NewReturnCall(call)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := b.Stmts.Return(ret)
	if got, err := data.CallStmt(); err != nil || got != call {
		t.Fatalf("CallStmt = %d, %v", got, err)
	}
	if _, err := data.ValueExpr(); diag.CodeOf(err) != diag.AstVariantEmpty {
		t.Fatalf("ValueExpr on a call return must fail, got %v", err)
	}
}

func TestReturnRejectsMissingOrWrongChild(t *testing.T) {
	b := NewBuilder(Hints{})
	if _, err := b.Stmts.NewReturnValue(NoExprID); diag.CodeOf(err) != diag.AstVariantEmpty {
		t.Fatalf("want AstVariantEmpty, got %v", err)
	}
	if _, err := b.Stmts.NewReturnCall(NoStmtID); diag.CodeOf(err) != diag.AstVariantEmpty {
		t.Fatalf("want AstVariantEmpty, got %v", err)
	}
	notCall := b.Stmts.NewEmpty(NoExprID)
	if _, err := b.Stmts.NewReturnCall(notCall); diag.CodeOf(err) != diag.AstBadChild {
		t.Fatalf("want AstBadChild, got %v", err)
	}
	if b.Stmts.Returns.Len() != 0 {
		t.Fatal("rejected constructions must not allocate")
	}
}

func TestFuncAssignShapes(t *testing.T) {
	b := NewBuilder(Hints{})
	in := types.NewInterner()
	body := b.Stmts.NewEmpty(NoExprID)

	lval := b.Exprs.NewIdent(symbols.SymbolID(1))
	byLValue, err := b.Stmts.NewFuncAssignLValue(lval, body)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := b.Stmts.FuncAssign(byLValue)
	if got, err := data.LValue(); err != nil || got != lval {
		t.Fatalf("LValue = %d, %v", got, err)
	}
	if _, _, err := data.Declared(); diag.CodeOf(err) != diag.AstVariantEmpty {
		t.Fatalf("Declared on lvalue shape must fail, got %v", err)
	}

	ident := b.Exprs.NewIdent(symbols.SymbolID(2))
	body2 := b.Stmts.NewEmpty(NoExprID)
	byDecl, err := b.NewFuncAssignDeclared(in.Builtins().Int, ident, body2)
	if err != nil {
		t.Fatal(err)
	}
	data, _ = b.Stmts.FuncAssign(byDecl)
	typ, got, err := data.Declared()
	if err != nil || typ != in.Builtins().Int || got != ident || data.Body != body2 {
		t.Fatalf("Declared = %d, %d, %v", typ, got, err)
	}
	if _, err := data.LValue(); diag.CodeOf(err) != diag.AstVariantEmpty {
		t.Fatalf("LValue on declared shape must fail, got %v", err)
	}
}

func TestFuncAssignDeclaredRequiresIdent(t *testing.T) {
	b := NewBuilder(Hints{})
	lit := b.Exprs.NewConstant(symbols.SymbolID(1))
	if _, err := b.NewFuncAssignDeclared(types.NoTypeID, lit, NoStmtID); diag.CodeOf(err) != diag.AstBadChild {
		t.Fatalf("want AstBadChild, got %v", err)
	}
	if _, err := b.Stmts.NewFuncAssignLValue(NoExprID, NoStmtID); diag.CodeOf(err) != diag.AstVariantEmpty {
		t.Fatalf("want AstVariantEmpty, got %v", err)
	}
}

func TestFuncAssignDeclaredRequiresType(t *testing.T) {
	b := NewBuilder(Hints{})
	ident := b.Exprs.NewIdent(symbols.SymbolID(1))
	before := b.Stmts.Arena.Len()
	_, err := b.NewFuncAssignDeclared(types.NoTypeID, ident, b.Stmts.NewEmpty(NoExprID))
	if diag.CodeOf(err) != diag.AstVariantEmpty {
		t.Fatalf("want AstVariantEmpty, got %v", err)
	}
	if got := b.Stmts.Arena.Len(); got != before+1 {
		t.Fatalf("rejected statement was allocated: %d statements", got)
	}
}

func TestIfAccessorCoversBothKinds(t *testing.T) {
	b := NewBuilder(Hints{})
	cond := b.Exprs.NewIdent(symbols.SymbolID(1))
	then := b.Stmts.NewEmpty(NoExprID)
	els := b.Stmts.NewEmpty(NoExprID)
	ifStmt := b.Stmts.NewIf(cond, then)
	ifElse := b.Stmts.NewIfElse(cond, then, els)

	if data, ok := b.Stmts.If(ifStmt); !ok || data.Else.IsValid() {
		t.Fatalf("IfStmt: %+v ok=%v", data, ok)
	}
	if data, ok := b.Stmts.If(ifElse); !ok || data.Else != els {
		t.Fatalf("IfElseStmt: %+v ok=%v", data, ok)
	}
	if _, ok := b.Stmts.While(ifStmt); ok {
		t.Fatal("While accessor must reject an IfStmt")
	}
}
