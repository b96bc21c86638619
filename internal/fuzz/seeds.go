package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"sysyc/internal/ast"
	"sysyc/internal/snapshot"
	"sysyc/internal/symbols"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 64 << 10
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addBuiltSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.mp файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != snapshot.Ext {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// addBuiltSeeds encodes a few small units so the corpus starts from valid snapshots.
func addBuiltSeeds(f *testing.F) {
	f.Add([]byte{})
	for _, build := range []func(u *ast.Unit){buildEmpty, buildExpr, buildFunction} {
		u := ast.NewUnit(ast.Hints{})
		build(u)
		var buf bytes.Buffer
		if err := snapshot.Encode(&buf, u); err != nil {
			f.Fatalf("seed encode: %v", err)
		}
		f.Add(buf.Bytes())
	}
}

func buildEmpty(*ast.Unit) {}

func buildExpr(u *ast.Unit) {
	intT := u.Types.Builtins().Int
	x := u.Symbols.NewIdentifier("x", intT, 1)
	neg := u.Builder.Exprs.NewUnary(ast.UnaryMinus, u.Builder.Exprs.NewIdent(x))
	two := u.Builder.Exprs.NewConstant(u.Symbols.NewConstant(2, intT))
	u.Builder.SetRoot(ast.ExprRef(u.Builder.Exprs.NewBinary(ast.BinaryMul, neg, two)))
}

func buildFunction(u *ast.Unit) {
	b := u.Builder
	intT := u.Types.Builtins().Int
	f := u.Symbols.NewIdentifier("f", u.Types.RegisterFn(intT), 0)
	p := u.Symbols.NewIdentifier("p", intT, 1)
	cond := b.Exprs.NewBinary(ast.BinaryGreater, b.Exprs.NewIdent(p), b.Exprs.NewConstant(u.Symbols.NewConstant(0, intT)))
	loop := b.Stmts.NewWhile(cond, b.Stmts.NewAssign(b.Exprs.NewIdent(p),
		b.Exprs.NewBinary(ast.BinarySub, b.Exprs.NewIdent(p), b.Exprs.NewConstant(u.Symbols.NewConstant(1, intT)))))
	ret, err := b.Stmts.NewReturnValue(b.Exprs.NewIdent(p))
	if err != nil {
		panic(err)
	}
	body := b.Stmts.NewCompound(b.Stmts.NewSeq(loop, ret))
	b.SetRoot(ast.StmtRef(b.Stmts.NewFunctionDef(f, b.Lists.NewParaList([]symbols.SymbolID{p}...), body)))
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
