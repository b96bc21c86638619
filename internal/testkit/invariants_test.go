package testkit

import (
	"testing"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/symbols"
)

func TestCheckTreeOK(t *testing.T) {
	u := ast.NewUnit(ast.Hints{})
	b := u.Builder
	intT := u.Types.Builtins().Int
	x := u.Symbols.NewIdentifier("x", intT, 1)

	orphan := b.Exprs.NewConstant(u.Symbols.NewConstant(9, intT))
	_ = orphan
	assign := b.Stmts.NewAssign(b.Exprs.NewIdent(x), b.Exprs.NewConstant(u.Symbols.NewConstant(1, intT)))
	decl := b.Stmts.NewDecl(b.Lists.NewIDList([]symbols.SymbolID{x}))
	b.SetRoot(ast.StmtRef(b.Stmts.NewCompound(b.Stmts.NewSeq(decl, assign))))

	stats, err := CheckTree(b, u.Symbols)
	if err != nil {
		t.Fatalf("CheckTree: %v", err)
	}
	if stats.Reachable != 6 || stats.Allocated != 7 || stats.Lists != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestCheckTreeEmpty(t *testing.T) {
	stats, err := CheckTree(ast.NewBuilder(ast.Hints{}), nil)
	if err != nil || stats.Reachable != 0 {
		t.Fatalf("empty tree: %+v %v", stats, err)
	}
}

func TestCheckTreeViolations(t *testing.T) {
	tests := []struct {
		name  string
		build func(u *ast.Unit) ast.NodeRef
		code  diag.Code
	}{
		{
			name: "shared expression",
			build: func(u *ast.Unit) ast.NodeRef {
				c := u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(1, u.Types.Builtins().Int))
				return ast.ExprRef(u.Builder.Exprs.NewBinary(ast.BinaryAdd, c, c))
			},
			code: diag.AstSharedChild,
		},
		{
			name: "shared declarator list",
			build: func(u *ast.Unit) ast.NodeRef {
				x := u.Symbols.NewIdentifier("x", u.Types.Builtins().Int, 0)
				list := u.Builder.Lists.NewIDList([]symbols.SymbolID{x})
				return ast.StmtRef(u.Builder.Stmts.NewSeq(u.Builder.Stmts.NewDecl(list), u.Builder.Stmts.NewDecl(list)))
			},
			code: diag.AstSharedChild,
		},
		{
			name: "dangling statement",
			build: func(u *ast.Unit) ast.NodeRef {
				return ast.StmtRef(u.Builder.Stmts.NewWhile(
					u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(1, u.Types.Builtins().Int)),
					ast.StmtID(40)))
			},
			code: diag.AstDanglingHandle,
		},
		{
			name: "unknown symbol",
			build: func(u *ast.Unit) ast.NodeRef {
				return ast.ExprRef(u.Builder.Exprs.NewIdent(symbols.SymbolID(12)))
			},
			code: diag.AstDanglingHandle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := ast.NewUnit(ast.Hints{})
			u.Builder.SetRoot(tt.build(u))
			_, err := CheckTree(u.Builder, u.Symbols)
			if code := diag.CodeOf(err); code != tt.code {
				t.Fatalf("want %s, got %v", tt.code.ID(), err)
			}
		})
	}
}
