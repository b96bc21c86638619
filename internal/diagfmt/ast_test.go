package diagfmt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/symbols"
	"sysyc/internal/trace"
	"sysyc/internal/types"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func dump(t *testing.T, u *ast.Unit) string {
	t.Helper()
	var buf bytes.Buffer
	if err := FormatUnitTrace(context.Background(), &buf, u); err != nil {
		t.Fatalf("FormatUnitTrace: %v", err)
	}
	return buf.String()
}

func TestEmptyProgram(t *testing.T) {
	u := ast.NewUnit(ast.Hints{})
	if got := dump(t, u); got != "program\n" {
		t.Fatalf("want %q, got %q", "program\n", got)
	}
}

func TestBinaryAdd(t *testing.T) {
	u := ast.NewUnit(ast.Hints{})
	intT := u.Types.Builtins().Int
	one := u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(1, intT))
	two := u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(2, intT))
	sum := u.Builder.Exprs.NewBinary(ast.BinaryAdd, one, two)
	u.Builder.SetRoot(ast.ExprRef(sum))

	want := lines(
		"program",
		"    BinaryExpr\top: add",
		"        IntegerLiteral\tvalue: 1\ttype: int",
		"        IntegerLiteral\tvalue: 2\ttype: int",
	)
	if got := dump(t, u); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func TestNodeLines(t *testing.T) {
	tests := []struct {
		name  string
		build func(u *ast.Unit) ast.NodeRef
		want  string
	}{
		{
			name: "unary minus",
			build: func(u *ast.Unit) ast.NodeRef {
				c := u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(5, u.Types.Builtins().Int))
				return ast.ExprRef(u.Builder.Exprs.NewUnary(ast.UnaryMinus, c))
			},
			want: lines("program", "    SingelExpr\top: minus", "        IntegerLiteral\tvalue: 5\ttype: int"),
		},
		{
			name: "identifier",
			build: func(u *ast.Unit) ast.NodeRef {
				x := u.Symbols.NewIdentifier("x", u.Types.Builtins().ConstInt, 2)
				return ast.ExprRef(u.Builder.Exprs.NewIdent(x))
			},
			want: lines("program", "    Id\tname: x\tscope: 2\ttype: const int"),
		},
		{
			name: "temporary literal",
			build: func(u *ast.Unit) ast.NodeRef {
				tmp := u.Symbols.NewTemporary(3, u.Types.Builtins().Int)
				return ast.ExprRef(u.Builder.Exprs.NewConstant(tmp))
			},
			want: lines("program", "    IntegerLiteral\tvalue: t3\ttype: int"),
		},
		{
			name: "declaration",
			build: func(u *ast.Unit) ast.NodeRef {
				intT := u.Types.Builtins().Int
				a := u.Symbols.NewIdentifier("a", intT, 0)
				b := u.Symbols.NewIdentifier("b", intT, 0)
				return ast.StmtRef(u.Builder.Stmts.NewDecl(u.Builder.Lists.NewIDList([]symbols.SymbolID{a, b})))
			},
			want: lines("program",
				"    DeclStmt",
				"        Id\tname: a\tscope: 0\ttype: int",
				"        Id\tname: b\tscope: 0\ttype: int",
			),
		},
		{
			name: "initialization",
			build: func(u *ast.Unit) ast.NodeRef {
				intT := u.Types.Builtins().Int
				a := u.Symbols.NewIdentifier("a", intT, 1)
				init := u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(7, intT))
				list, err := u.Builder.Lists.NewInitList([]symbols.SymbolID{a}, []ast.ExprID{init})
				if err != nil {
					panic(err)
				}
				return ast.StmtRef(u.Builder.Stmts.NewInit(list))
			},
			want: lines("program",
				"    InitStmt",
				"        Id\tname: a\tscope: 1\ttype: int",
				"            IntegerLiteral\tvalue: 7\ttype: int",
			),
		},
		{
			name: "empty statement",
			build: func(u *ast.Unit) ast.NodeRef {
				return ast.StmtRef(u.Builder.Stmts.NewEmpty(ast.NoExprID))
			},
			want: lines("program", "    EmptyStmt"),
		},
		{
			name: "while loop in compound",
			build: func(u *ast.Unit) ast.NodeRef {
				intT := u.Types.Builtins().Int
				i := u.Symbols.NewIdentifier("i", intT, 1)
				cond := u.Builder.Exprs.NewBinary(ast.BinaryLess,
					u.Builder.Exprs.NewIdent(i),
					u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(10, intT)))
				body := u.Builder.Stmts.NewAssign(u.Builder.Exprs.NewIdent(i),
					u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(0, intT)))
				loop := u.Builder.Stmts.NewWhile(cond, body)
				return ast.StmtRef(u.Builder.Stmts.NewCompound(loop))
			},
			want: lines("program",
				"    CompoundStmt",
				"        WhileStmt",
				"            BinaryExpr\top: less",
				"                Id\tname: i\tscope: 1\ttype: int",
				"                IntegerLiteral\tvalue: 10\ttype: int",
				"            AssignStmt",
				"                Id\tname: i\tscope: 1\ttype: int",
				"                IntegerLiteral\tvalue: 0\ttype: int",
			),
		},
		{
			name: "function definition and call",
			build: func(u *ast.Unit) ast.NodeRef {
				intT := u.Types.Builtins().Int
				fnT := u.Types.RegisterFn(intT)
				f := u.Symbols.NewIdentifier("f", fnT, 0)
				p := u.Symbols.NewIdentifier("p", intT, 1)
				params := u.Builder.Lists.NewParaList(p)
				call := u.Builder.Stmts.NewFuncCall(f, u.Builder.Lists.NewIDList([]symbols.SymbolID{p}))
				ret, err := u.Builder.Stmts.NewReturnCall(call)
				if err != nil {
					panic(err)
				}
				def := u.Builder.Stmts.NewFunctionDef(f, params, u.Builder.Stmts.NewCompound(ret))
				return ast.StmtRef(def)
			},
			want: lines("program",
				"    FunctionDefine function name: f, type: int()",
				"        Id\tname: p\tscope: 1\ttype: int",
				"        CompoundStmt",
				"            ReturnStmt",
				"                FunctionCall function name: f, type: int()",
				"                    Id\tname: p\tscope: 1\ttype: int",
			),
		},
		{
			name: "function without parameters",
			build: func(u *ast.Unit) ast.NodeRef {
				voidT := u.Types.Builtins().Void
				main := u.Symbols.NewIdentifier("main", u.Types.RegisterFn(voidT), 0)
				body := u.Builder.Stmts.NewCompound(u.Builder.Stmts.NewEmpty(ast.NoExprID))
				return ast.StmtRef(u.Builder.Stmts.NewFunctionDef(main, u.Builder.Lists.NewParaList(), body))
			},
			want: lines("program",
				"    FunctionDefine function name: main, type: void()",
				"        CompoundStmt",
				"            EmptyStmt",
			),
		},
		{
			name: "call expression",
			build: func(u *ast.Unit) ast.NodeRef {
				g := u.Symbols.NewIdentifier("g", u.Types.RegisterFn(u.Types.Builtins().Int), 0)
				return ast.ExprRef(u.Builder.Exprs.NewCall(g, ast.NoIDListID))
			},
			want: lines("program", "    FunctionCall function name: g, type: int()"),
		},
		{
			name: "function assignment with declared target",
			build: func(u *ast.Unit) ast.NodeRef {
				intT := u.Types.Builtins().Int
				g := u.Symbols.NewIdentifier("g", u.Types.RegisterFn(intT), 0)
				x := u.Symbols.NewIdentifier("x", intT, 1)
				call := u.Builder.Stmts.NewFuncCall(g, ast.NoIDListID)
				st, err := u.Builder.NewFuncAssignDeclared(intT, u.Builder.Exprs.NewIdent(x), call)
				if err != nil {
					panic(err)
				}
				return ast.StmtRef(st)
			},
			want: lines("program",
				"    FuncAssignStmt\ttype: int",
				"        Id\tname: x\tscope: 1\ttype: int",
				"        FunctionCall function name: g, type: int()",
			),
		},
		{
			name: "function assignment to lvalue",
			build: func(u *ast.Unit) ast.NodeRef {
				intT := u.Types.Builtins().Int
				g := u.Symbols.NewIdentifier("g", u.Types.RegisterFn(intT), 0)
				x := u.Symbols.NewIdentifier("x", intT, 1)
				call := u.Builder.Stmts.NewFuncCall(g, ast.NoIDListID)
				st, err := u.Builder.Stmts.NewFuncAssignLValue(u.Builder.Exprs.NewIdent(x), call)
				if err != nil {
					panic(err)
				}
				return ast.StmtRef(st)
			},
			want: lines("program",
				"    FuncAssignStmt",
				"        Id\tname: x\tscope: 1\ttype: int",
				"        FunctionCall function name: g, type: int()",
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := ast.NewUnit(ast.Hints{})
			u.Builder.SetRoot(tt.build(u))
			if got := dump(t, u); got != tt.want {
				t.Fatalf("want:\n%s\ngot:\n%s", tt.want, got)
			}
		})
	}
}

func TestIfElseChildOrder(t *testing.T) {
	u := ast.NewUnit(ast.Hints{})
	intT := u.Types.Builtins().Int
	x := u.Symbols.NewIdentifier("x", intT, 1)
	cond := u.Builder.Exprs.NewIdent(x)
	then := u.Builder.Stmts.NewAssign(u.Builder.Exprs.NewIdent(x), u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(1, intT)))
	els := u.Builder.Stmts.NewEmpty(ast.NoExprID)
	u.Builder.SetRoot(ast.StmtRef(u.Builder.Stmts.NewIfElse(cond, then, els)))

	want := lines("program",
		"    IfElseStmt",
		"        Id\tname: x\tscope: 1\ttype: int",
		"        AssignStmt",
		"            Id\tname: x\tscope: 1\ttype: int",
		"            IntegerLiteral\tvalue: 1\ttype: int",
		"        EmptyStmt",
	)
	if got := dump(t, u); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func TestReturnHasOneChild(t *testing.T) {
	u := ast.NewUnit(ast.Hints{})
	intT := u.Types.Builtins().Int
	ret, err := u.Builder.Stmts.NewReturnValue(u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(0, intT)))
	if err != nil {
		t.Fatalf("NewReturnValue: %v", err)
	}
	u.Builder.SetRoot(ast.StmtRef(ret))

	got := strings.Split(strings.TrimSuffix(dump(t, u), "\n"), "\n")
	if len(got) != 3 {
		t.Fatalf("want program, ReturnStmt and one child, got %q", got)
	}
	if got[1] != "    ReturnStmt" || !strings.HasPrefix(got[2], "        IntegerLiteral") {
		t.Fatalf("unexpected lines %q", got)
	}
}

func TestSequenceAndIf(t *testing.T) {
	u := ast.NewUnit(ast.Hints{})
	intT := u.Types.Builtins().Int
	c := u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(1, intT))
	ifs := u.Builder.Stmts.NewIf(c, u.Builder.Stmts.NewEmpty(ast.NoExprID))
	expr := u.Builder.Exprs.NewUnary(ast.UnaryNot, u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(0, intT)))
	seq := u.Builder.Stmts.NewSeq(ifs, u.Builder.Stmts.NewEmpty(expr))
	u.Builder.SetRoot(ast.StmtRef(seq))

	want := lines("program",
		"    Sequence",
		"        IfStmt",
		"            IntegerLiteral\tvalue: 1\ttype: int",
		"            EmptyStmt",
		"        EmptyStmt",
		"            SingelExpr\top: not",
		"                IntegerLiteral\tvalue: 0\ttype: int",
	)
	if got := dump(t, u); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func TestDumpIsIdempotent(t *testing.T) {
	u := ast.NewUnit(ast.Hints{})
	b := u.Builder
	intT := u.Types.Builtins().Int
	f := u.Symbols.NewIdentifier("f", u.Types.RegisterFn(intT), 0)
	p := u.Symbols.NewIdentifier("p", intT, 1)
	q := u.Symbols.NewIdentifier("q", intT, 1)
	a := u.Symbols.NewIdentifier("a", intT, 1)
	c := u.Symbols.NewIdentifier("c", intT, 1)

	decl := b.Stmts.NewDecl(b.Lists.NewIDList([]symbols.SymbolID{a}))
	inits, err := b.Lists.NewInitList([]symbols.SymbolID{c, a},
		[]ast.ExprID{b.Exprs.NewIdent(p), b.Exprs.NewConstant(u.Symbols.NewConstant(2, intT))})
	if err != nil {
		t.Fatalf("NewInitList: %v", err)
	}
	body := b.Stmts.NewCompound(b.Stmts.NewSeq(decl, b.Stmts.NewInit(inits)))
	b.SetRoot(ast.StmtRef(b.Stmts.NewFunctionDef(f, b.Lists.NewParaList(p, q), body)))

	want := lines("program",
		"    FunctionDefine function name: f, type: int()",
		"        Id\tname: p\tscope: 1\ttype: int",
		"        Id\tname: q\tscope: 1\ttype: int",
		"        CompoundStmt",
		"            Sequence",
		"                DeclStmt",
		"                    Id\tname: a\tscope: 1\ttype: int",
		"                InitStmt",
		"                    Id\tname: c\tscope: 1\ttype: int",
		"                        Id\tname: p\tscope: 1\ttype: int",
		"                    Id\tname: a\tscope: 1\ttype: int",
		"                        IntegerLiteral\tvalue: 2\ttype: int",
	)
	for i := 0; i < 3; i++ {
		if got := dump(t, u); got != want {
			t.Fatalf("dump %d:\nwant:\n%s\ngot:\n%s", i+1, want, got)
		}
	}
}

func TestIncompleteUnit(t *testing.T) {
	u := ast.NewUnit(ast.Hints{})
	c := u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(1, u.Types.Builtins().Int))
	u.Builder.SetRoot(ast.ExprRef(c))

	var buf bytes.Buffer
	if err := FormatTrace(context.Background(), &buf, u.Builder, nil, u.Types); err == nil {
		t.Fatalf("nil symbol table accepted")
	}
	if err := FormatTrace(context.Background(), &buf, u.Builder, u.Symbols, nil); err == nil {
		t.Fatalf("nil type registry accepted")
	}
	u.Symbols = nil
	if err := FormatUnitTrace(context.Background(), &buf, u); err == nil {
		t.Fatalf("unit without symbols accepted")
	}
	if buf.Len() != 0 {
		t.Fatalf("partial output written: %q", buf.String())
	}
}

func TestContractViolations(t *testing.T) {
	tests := []struct {
		name  string
		build func(u *ast.Unit) ast.NodeRef
		code  diag.Code
	}{
		{
			name: "unknown operator",
			build: func(u *ast.Unit) ast.NodeRef {
				c := u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(1, u.Types.Builtins().Int))
				return ast.ExprRef(u.Builder.Exprs.NewBinary(ast.BinaryOp(200), c, c))
			},
			code: diag.AstUnknownOperator,
		},
		{
			name: "scope of a constant",
			build: func(u *ast.Unit) ast.NodeRef {
				c := u.Symbols.NewConstant(1, u.Types.Builtins().Int)
				return ast.StmtRef(u.Builder.Stmts.NewDecl(u.Builder.Lists.NewIDList([]symbols.SymbolID{c})))
			},
			code: diag.AstNotIdentifier,
		},
		{
			name: "dangling child",
			build: func(u *ast.Unit) ast.NodeRef {
				return ast.StmtRef(u.Builder.Stmts.NewCompound(ast.StmtID(99)))
			},
			code: diag.AstDanglingHandle,
		},
		{
			name: "dangling symbol",
			build: func(u *ast.Unit) ast.NodeRef {
				return ast.ExprRef(u.Builder.Exprs.NewIdent(symbols.SymbolID(42)))
			},
			code: diag.AstDanglingHandle,
		},
		{
			name: "untyped declarator",
			build: func(u *ast.Unit) ast.NodeRef {
				a := u.Symbols.NewIdentifier("a", types.NoTypeID, 0)
				return ast.StmtRef(u.Builder.Stmts.NewDecl(u.Builder.Lists.NewIDList([]symbols.SymbolID{a})))
			},
			code: diag.AstDanglingHandle,
		},
		{
			name: "constant of unknown type",
			build: func(u *ast.Unit) ast.NodeRef {
				return ast.ExprRef(u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(7, types.TypeID(99))))
			},
			code: diag.AstDanglingHandle,
		},
		{
			name: "callee of unresolved function type",
			build: func(u *ast.Unit) ast.NodeRef {
				g := u.Symbols.NewIdentifier("g", u.Types.RegisterFn(types.NoTypeID), 0)
				return ast.StmtRef(u.Builder.Stmts.NewFuncCall(g, ast.NoIDListID))
			},
			code: diag.AstDanglingHandle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := ast.NewUnit(ast.Hints{})
			u.Builder.SetRoot(tt.build(u))
			var buf bytes.Buffer
			err := FormatUnitTrace(context.Background(), &buf, u)
			if err == nil {
				t.Fatalf("expected error, got output %q", buf.String())
			}
			if code := diag.CodeOf(err); code != tt.code {
				t.Fatalf("want %s, got %s (%v)", tt.code.ID(), code.ID(), err)
			}
			if buf.Len() != 0 {
				t.Fatalf("partial output written: %q", buf.String())
			}
		})
	}
}

func TestViolationCarriesNode(t *testing.T) {
	u := ast.NewUnit(ast.Hints{})
	c := u.Symbols.NewConstant(1, u.Types.Builtins().Int)
	decl := u.Builder.Stmts.NewDecl(u.Builder.Lists.NewIDList([]symbols.SymbolID{c}))
	u.Builder.SetRoot(ast.StmtRef(decl))

	err := FormatUnitTrace(context.Background(), &bytes.Buffer{}, u)
	d, ok := err.(*diag.Diagnostic)
	if !ok {
		t.Fatalf("want *diag.Diagnostic, got %T", err)
	}
	if want := u.Builder.Stmts.Get(decl).Seq; d.Node != want {
		t.Fatalf("want node #%d, got #%d", want, d.Node)
	}
}

func TestNodeEventsAtDebugLevel(t *testing.T) {
	var events bytes.Buffer
	tr := trace.NewStreamTracer(&events, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	u := ast.NewUnit(ast.Hints{})
	c := u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(3, u.Types.Builtins().Int))
	u.Builder.SetRoot(ast.ExprRef(c))

	if err := FormatUnitTrace(ctx, &bytes.Buffer{}, u); err != nil {
		t.Fatalf("FormatUnitTrace: %v", err)
	}
	if !strings.Contains(events.String(), "• Constant (#1)") {
		t.Fatalf("missing node event in:\n%s", events.String())
	}
}
