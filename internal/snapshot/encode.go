package snapshot

import (
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/symbols"
	"sysyc/internal/types"
)

// Encode writes u to w.
func Encode(w io.Writer, u *ast.Unit) error {
	f, err := FromUnit(u)
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(f)
}

// FromUnit converts a unit into its snapshot form. Dangling handles in the
// tree are reported, not stored.
func FromUnit(u *ast.Unit) (*File, error) {
	if u == nil || u.Builder == nil || u.Symbols == nil || u.Types == nil {
		return nil, fmt.Errorf("snapshot: incomplete unit")
	}
	f := &File{Schema: SchemaVersion}

	for i := 1; i < u.Types.Len(); i++ {
		id := types.TypeID(mustU32(i))
		tt := u.Types.MustLookup(id)
		rec := Type{Kind: uint8(tt.Kind), Width: uint8(tt.Width)}
		if tt.Kind == types.KindFn {
			if info, ok := u.Types.FnInfo(id); ok {
				rec.Result = uint32(info.Result)
			}
		}
		f.Types = append(f.Types, rec)
	}

	for i := 1; i <= u.Symbols.Len(); i++ {
		e := u.Symbols.Get(symbols.SymbolID(mustU32(i)))
		rec := Symbol{Kind: uint8(e.Kind), Type: uint32(e.Type)}
		switch e.Kind {
		case symbols.EntryConstant:
			rec.Value = e.Value
		case symbols.EntryIdentifier:
			rec.Name = u.Symbols.Strings.MustLookup(e.Name)
			rec.Depth = e.Depth
		case symbols.EntryTemporary:
			rec.Label = e.Label
		}
		f.Symbols = append(f.Symbols, rec)
	}

	enc := &encoder{b: u.Builder}
	root := u.Builder.Root()
	var err error
	switch root.Kind {
	case ast.NodeExpr:
		f.Root, err = enc.expr(root.Expr, 0)
	case ast.NodeStmt:
		f.Root, err = enc.stmt(root.Stmt, 0)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("snapshot index overflow: %w", err))
	}
	return v
}

type encoder struct {
	b *ast.Builder
}

func dangling(what string, parent uint32) error {
	return diag.Errorf(diag.AstDanglingHandle, "%s does not refer to an allocated node", what).AtNode(parent)
}

func (e *encoder) expr(id ast.ExprID, parent uint32) (*Node, error) {
	x := e.b.Exprs.Get(id)
	if x == nil {
		return nil, dangling("expression handle", parent)
	}
	n := &Node{Kind: x.Kind.String()}
	switch x.Kind {
	case ast.ExprBinary:
		data, _ := e.b.Exprs.Binary(id)
		n.Op = uint8(data.Op)
		return e.withExprs(n, x.Seq, data.Left, data.Right)
	case ast.ExprUnary:
		data, _ := e.b.Exprs.Unary(id)
		n.Op = uint8(data.Op)
		return e.withExprs(n, x.Seq, data.Operand)
	case ast.ExprConstant:
		data, _ := e.b.Exprs.Constant(id)
		n.Sym = uint32(data.Symbol)
	case ast.ExprIdent:
		data, _ := e.b.Exprs.Ident(id)
		n.Sym = uint32(data.Symbol)
	case ast.ExprCall:
		data, _ := e.b.Exprs.Call(id)
		n.Sym = uint32(data.Callee)
		list, err := e.idList(data.Args, x.Seq)
		if err != nil {
			return nil, err
		}
		n.List = list
	default:
		return nil, diag.Errorf(diag.AstBadChild, "unknown expression kind %d", x.Kind).AtNode(x.Seq)
	}
	return n, nil
}

func (e *encoder) withExprs(n *Node, seq uint32, ids ...ast.ExprID) (*Node, error) {
	for _, id := range ids {
		kid, err := e.expr(id, seq)
		if err != nil {
			return nil, err
		}
		n.Kids = append(n.Kids, kid)
	}
	return n, nil
}

func (e *encoder) withStmts(n *Node, seq uint32, ids ...ast.StmtID) (*Node, error) {
	for _, id := range ids {
		kid, err := e.stmt(id, seq)
		if err != nil {
			return nil, err
		}
		n.Kids = append(n.Kids, kid)
	}
	return n, nil
}

func (e *encoder) stmt(id ast.StmtID, parent uint32) (*Node, error) {
	s := e.b.Stmts.Get(id)
	if s == nil {
		return nil, dangling("statement handle", parent)
	}
	n := &Node{Kind: s.Kind.String()}
	switch s.Kind {
	case ast.StmtCompound:
		data, _ := e.b.Stmts.Compound(id)
		if !data.Body.IsValid() {
			return n, nil
		}
		return e.withStmts(n, s.Seq, data.Body)

	case ast.StmtSeq:
		data, _ := e.b.Stmts.Seq(id)
		return e.withStmts(n, s.Seq, data.First, data.Second)

	case ast.StmtDecl:
		data, _ := e.b.Stmts.Decl(id)
		list, ok := e.b.Lists.IDList(data.List)
		if !ok {
			return nil, dangling("declarator list", s.Seq)
		}
		n.List = &List{Syms: symIDs(list.Entries())}
		return n, nil

	case ast.StmtEmpty:
		data, _ := e.b.Stmts.Empty(id)
		if !data.Expr.IsValid() {
			return n, nil
		}
		return e.withExprs(n, s.Seq, data.Expr)

	case ast.StmtInit:
		data, _ := e.b.Stmts.Init(id)
		list, ok := e.b.Lists.InitList(data.List)
		if !ok {
			return nil, dangling("initializer list", s.Seq)
		}
		n.List = &List{Syms: symIDs(list.Entries())}
		for _, init := range list.Inits() {
			kid, err := e.expr(init, s.Seq)
			if err != nil {
				return nil, err
			}
			n.List.Inits = append(n.List.Inits, kid)
		}
		return n, nil

	case ast.StmtIf, ast.StmtIfElse:
		data, _ := e.b.Stmts.If(id)
		if _, err := e.withExprs(n, s.Seq, data.Cond); err != nil {
			return nil, err
		}
		if s.Kind == ast.StmtIf {
			return e.withStmts(n, s.Seq, data.Then)
		}
		return e.withStmts(n, s.Seq, data.Then, data.Else)

	case ast.StmtAssign:
		data, _ := e.b.Stmts.Assign(id)
		return e.withExprs(n, s.Seq, data.LValue, data.Value)

	case ast.StmtWhile:
		data, _ := e.b.Stmts.While(id)
		if _, err := e.withExprs(n, s.Seq, data.Cond); err != nil {
			return nil, err
		}
		return e.withStmts(n, s.Seq, data.Body)

	case ast.StmtReturn:
		data, _ := e.b.Stmts.Return(id)
		n.Shape = uint8(data.Shape)
		if data.Shape == ast.ReturnCall {
			call, err := data.CallStmt()
			if err != nil {
				return nil, err
			}
			return e.withStmts(n, s.Seq, call)
		}
		value, err := data.ValueExpr()
		if err != nil {
			return nil, err
		}
		return e.withExprs(n, s.Seq, value)

	case ast.StmtFunctionDef:
		data, _ := e.b.Stmts.FunctionDef(id)
		n.Sym = uint32(data.Symbol)
		if data.Params.IsValid() {
			params, ok := e.b.Lists.ParaList(data.Params)
			if !ok {
				return nil, dangling("parameter list", s.Seq)
			}
			n.List = &List{Syms: symIDs(params.Entries())}
		}
		return e.withStmts(n, s.Seq, data.Body)

	case ast.StmtFuncCall:
		data, _ := e.b.Stmts.FuncCall(id)
		n.Sym = uint32(data.Callee)
		list, err := e.idList(data.Args, s.Seq)
		if err != nil {
			return nil, err
		}
		n.List = list
		return n, nil

	case ast.StmtFuncAssign:
		data, _ := e.b.Stmts.FuncAssign(id)
		n.Shape = uint8(data.Shape)
		var target ast.ExprID
		if data.Shape == ast.FuncAssignDeclared {
			typ, ident, err := data.Declared()
			if err != nil {
				return nil, err
			}
			n.Type = uint32(typ)
			target = ident
		} else {
			lv, err := data.LValue()
			if err != nil {
				return nil, err
			}
			target = lv
		}
		if _, err := e.withExprs(n, s.Seq, target); err != nil {
			return nil, err
		}
		return e.withStmts(n, s.Seq, data.Body)
	}
	return nil, diag.Errorf(diag.AstBadChild, "unknown statement kind %d", s.Kind).AtNode(s.Seq)
}

// idList returns nil for an absent argument list.
func (e *encoder) idList(id ast.IDListID, seq uint32) (*List, error) {
	if !id.IsValid() {
		return nil, nil
	}
	list, ok := e.b.Lists.IDList(id)
	if !ok {
		return nil, dangling("argument list", seq)
	}
	return &List{Syms: symIDs(list.Entries())}, nil
}

func symIDs(ids []symbols.SymbolID) []uint32 {
	out := make([]uint32, len(ids))
	for i, id := range ids {
		out[i] = uint32(id)
	}
	return out
}
