package snapshot

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/diagfmt"
	"sysyc/internal/symbols"
)

// sampleUnit builds
//
//	int f(int p) { int a = 1; if (a) a = f(p); else ; return f(p); }
func sampleUnit(t *testing.T) *ast.Unit {
	t.Helper()
	u := ast.NewUnit(ast.Hints{})
	b := u.Builder
	intT := u.Types.Builtins().Int
	fnT := u.Types.RegisterFn(intT)

	f := u.Symbols.NewIdentifier("f", fnT, 0)
	p := u.Symbols.NewIdentifier("p", intT, 1)
	a := u.Symbols.NewIdentifier("a", intT, 1)
	one := u.Symbols.NewConstant(1, u.Types.Builtins().ConstInt)

	initList, err := b.Lists.NewInitList([]symbols.SymbolID{a}, []ast.ExprID{b.Exprs.NewConstant(one)})
	if err != nil {
		t.Fatalf("NewInitList: %v", err)
	}
	call := b.Stmts.NewFuncCall(f, b.Lists.NewIDList([]symbols.SymbolID{p}))
	assign, err := b.NewFuncAssignDeclared(intT, b.Exprs.NewIdent(a), call)
	if err != nil {
		t.Fatalf("NewFuncAssignDeclared: %v", err)
	}
	ifs := b.Stmts.NewIfElse(b.Exprs.NewIdent(a), assign, b.Stmts.NewEmpty(ast.NoExprID))
	ret, err := b.Stmts.NewReturnCall(b.Stmts.NewFuncCall(f, b.Lists.NewIDList([]symbols.SymbolID{p})))
	if err != nil {
		t.Fatalf("NewReturnCall: %v", err)
	}
	body := b.Stmts.NewSeq(b.Stmts.NewInit(initList), b.Stmts.NewSeq(ifs, ret))
	def := b.Stmts.NewFunctionDef(f, b.Lists.NewParaList(p), b.Stmts.NewCompound(body))
	b.SetRoot(ast.StmtRef(def))
	return u
}

func render(t *testing.T, u *ast.Unit) string {
	t.Helper()
	var buf bytes.Buffer
	if err := diagfmt.FormatUnitTrace(context.Background(), &buf, u); err != nil {
		t.Fatalf("FormatUnitTrace: %v", err)
	}
	return buf.String()
}

func TestRoundTripPreservesTrace(t *testing.T) {
	u := sampleUnit(t)
	var buf bytes.Buffer
	if err := Encode(&buf, u); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if want, have := render(t, u), render(t, got); want != have {
		t.Fatalf("trace changed after round trip:\nwant:\n%s\ngot:\n%s", want, have)
	}
	if got.Symbols.Len() != u.Symbols.Len() {
		t.Fatalf("symbols: want %d, got %d", u.Symbols.Len(), got.Symbols.Len())
	}
	if got.Builder.Nodes() != u.Builder.Nodes() {
		t.Fatalf("nodes: want %d, got %d", u.Builder.Nodes(), got.Builder.Nodes())
	}
}

func TestEmptyUnit(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, ast.NewUnit(ast.Hints{})); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	u, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := render(t, u); got != "program\n" {
		t.Fatalf("want empty program, got %q", got)
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units", "main"+Ext)
	u := sampleUnit(t)
	if err := WriteFile(path, u); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if render(t, u) != render(t, got) {
		t.Fatalf("trace differs after file round trip")
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestDecodeErrors(t *testing.T) {
	encode := func(f *File) []byte {
		data, err := msgpack.Marshal(f)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		return data
	}

	tests := []struct {
		name string
		data []byte
		code diag.Code
	}{
		{name: "garbage", data: []byte{0xc1, 0x00}, code: diag.IOSnapshotRead},
		{name: "future schema", data: encode(&File{Schema: SchemaVersion + 1}), code: diag.IOSnapshotSchema},
		{
			name: "unknown node kind",
			data: encode(&File{Schema: SchemaVersion, Root: &Node{Kind: "GotoStmt"}}),
			code: diag.IOSnapshotSchema,
		},
		{
			name: "symbol out of range",
			data: encode(&File{Schema: SchemaVersion, Root: &Node{Kind: "Id", Sym: 3}}),
			code: diag.IOSnapshotSchema,
		},
		{
			name: "binary with one operand",
			data: encode(&File{
				Schema:  SchemaVersion,
				Symbols: []Symbol{{Kind: uint8(symbols.EntryConstant), Value: 1}},
				Root:    &Node{Kind: "BinaryExpr", Kids: []*Node{{Kind: "Constant", Sym: 1}}},
			}),
			code: diag.IOSnapshotSchema,
		},
		{
			name: "identifier with children",
			data: encode(&File{
				Schema:  SchemaVersion,
				Symbols: []Symbol{{Kind: uint8(symbols.EntryIdentifier), Name: "a"}},
				Root:    &Node{Kind: "Id", Sym: 1, Kids: []*Node{{Kind: "Id", Sym: 1}}},
			}),
			code: diag.IOSnapshotSchema,
		},
		{
			name: "declaration with children",
			data: encode(&File{
				Schema:  SchemaVersion,
				Symbols: []Symbol{{Kind: uint8(symbols.EntryIdentifier), Name: "a"}},
				Root: &Node{
					Kind: "DeclStmt",
					List: &List{Syms: []uint32{1}},
					Kids: []*Node{{Kind: "EmptyStmt"}},
				},
			}),
			code: diag.IOSnapshotSchema,
		},
		{
			name: "call statement with children",
			data: encode(&File{
				Schema:  SchemaVersion,
				Symbols: []Symbol{{Kind: uint8(symbols.EntryIdentifier), Name: "g"}},
				Root:    &Node{Kind: "FuncCall", Sym: 1, Kids: []*Node{{Kind: "Id", Sym: 1}}},
			}),
			code: diag.IOSnapshotSchema,
		},
		{
			name: "initializer count mismatch",
			data: encode(&File{
				Schema:  SchemaVersion,
				Symbols: []Symbol{{Kind: uint8(symbols.EntryIdentifier), Name: "a"}},
				Root:    &Node{Kind: "InitStmt", List: &List{Syms: []uint32{1}}},
			}),
			code: diag.AstInitCountMismatch,
		},
		{
			name: "return of a non-call",
			data: encode(&File{
				Schema: SchemaVersion,
				Root:   &Node{Kind: "ReturnStmt", Shape: uint8(ast.ReturnCall), Kids: []*Node{{Kind: "EmptyStmt"}}},
			}),
			code: diag.AstBadChild,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.data))
			if err == nil {
				t.Fatalf("expected error")
			}
			if code := diag.CodeOf(err); code != tt.code {
				t.Fatalf("want %s, got %s (%v)", tt.code.ID(), code.ID(), err)
			}
		})
	}
}

func TestEncodeRejectsDanglingChild(t *testing.T) {
	u := ast.NewUnit(ast.Hints{})
	u.Builder.SetRoot(ast.StmtRef(u.Builder.Stmts.NewCompound(ast.StmtID(77))))
	err := Encode(&bytes.Buffer{}, u)
	if code := diag.CodeOf(err); code != diag.AstDanglingHandle {
		t.Fatalf("want AST1005, got %v", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.mp")
	_, err := ReadFile(path)
	d, ok := err.(*diag.Diagnostic)
	if !ok || d.Code != diag.IOSnapshotRead || d.Unit != path {
		t.Fatalf("unexpected error %v", err)
	}
}
