package snapshot

import (
	"errors"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/symbols"
	"sysyc/internal/types"
)

// Decode reads one unit from r.
func Decode(r io.Reader) (*ast.Unit, error) {
	var f File
	if err := msgpack.NewDecoder(r).Decode(&f); err != nil {
		return nil, diag.Errorf(diag.IOSnapshotRead, "decode snapshot: %v", err)
	}
	return ToUnit(&f)
}

// ToUnit rebuilds a unit from its snapshot form.
func ToUnit(f *File) (*ast.Unit, error) {
	if f == nil {
		return nil, errors.New("snapshot: nil file")
	}
	if f.Schema != SchemaVersion {
		return nil, diag.Errorf(diag.IOSnapshotSchema, "schema %d, want %d", f.Schema, SchemaVersion)
	}
	u := ast.NewUnit(ast.Hints{})
	d := &decoder{u: u, f: f, typeMap: []types.TypeID{types.NoTypeID}}

	if err := d.types(); err != nil {
		return nil, err
	}
	if err := d.symbols(); err != nil {
		return nil, err
	}
	if f.Root != nil {
		root, err := d.node(f.Root)
		if err != nil {
			return nil, err
		}
		u.Builder.SetRoot(root)
	}
	return u, nil
}

type decoder struct {
	u       *ast.Unit
	f       *File
	typeMap []types.TypeID // snapshot TypeID -> unit TypeID
}

func schemaErr(format string, args ...any) error {
	return diag.Errorf(diag.IOSnapshotSchema, format, args...)
}

func (d *decoder) types() error {
	for i, rec := range d.f.Types {
		var id types.TypeID
		switch kind := types.Kind(rec.Kind); kind {
		case types.KindInt:
			id = d.u.Types.Intern(types.MakeInt(types.Width(rec.Width)))
		case types.KindConstInt:
			id = d.u.Types.Intern(types.MakeConstInt(types.Width(rec.Width)))
		case types.KindVoid:
			id = d.u.Types.Intern(types.MakeVoid())
		case types.KindFn:
			result, err := d.typ(rec.Result)
			if err != nil {
				return err
			}
			id = d.u.Types.RegisterFn(result)
		default:
			return schemaErr("type #%d has unknown kind %d", i+1, rec.Kind)
		}
		d.typeMap = append(d.typeMap, id)
	}
	return nil
}

// typ maps a snapshot TypeID; only already decoded slots are valid.
func (d *decoder) typ(id uint32) (types.TypeID, error) {
	if int(id) >= len(d.typeMap) {
		return types.NoTypeID, schemaErr("type #%d referenced before definition", id)
	}
	return d.typeMap[id], nil
}

func (d *decoder) symbols() error {
	tab := d.u.Symbols
	for i, rec := range d.f.Symbols {
		typ, err := d.typ(rec.Type)
		if err != nil {
			return err
		}
		switch symbols.EntryKind(rec.Kind) {
		case symbols.EntryConstant:
			tab.NewConstant(rec.Value, typ)
		case symbols.EntryIdentifier:
			tab.NewIdentifier(rec.Name, typ, rec.Depth)
		case symbols.EntryTemporary:
			tab.NewTemporary(rec.Label, typ)
		default:
			return schemaErr("symbol #%d has unknown kind %d", i+1, rec.Kind)
		}
	}
	return nil
}

func (d *decoder) sym(id uint32) (symbols.SymbolID, error) {
	if id == 0 || int(id) > len(d.f.Symbols) {
		return symbols.NoSymbolID, schemaErr("symbol #%d is not in the snapshot", id)
	}
	return symbols.SymbolID(id), nil
}

func (d *decoder) syms(ids []uint32) ([]symbols.SymbolID, error) {
	out := make([]symbols.SymbolID, len(ids))
	for i, id := range ids {
		sym, err := d.sym(id)
		if err != nil {
			return nil, err
		}
		out[i] = sym
	}
	return out, nil
}

func (d *decoder) node(n *Node) (ast.NodeRef, error) {
	if isExprKind(n.Kind) {
		id, err := d.expr(n)
		return ast.ExprRef(id), err
	}
	id, err := d.stmt(n)
	return ast.StmtRef(id), err
}

func isExprKind(kind string) bool {
	switch kind {
	case "BinaryExpr", "SingelExpr", "Constant", "Id", "FuncExpr":
		return true
	}
	return false
}

// kids checks the child count of n.
func kids(n *Node, want int) error {
	if len(n.Kids) != want {
		return schemaErr("%s has %d children, want %d", n.Kind, len(n.Kids), want)
	}
	return nil
}

func (d *decoder) exprs(nodes []*Node) ([]ast.ExprID, error) {
	out := make([]ast.ExprID, len(nodes))
	for i, n := range nodes {
		id, err := d.expr(n)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}

func (d *decoder) expr(n *Node) (ast.ExprID, error) {
	if n == nil {
		return ast.NoExprID, schemaErr("missing expression")
	}
	b := d.u.Builder
	switch n.Kind {
	case "BinaryExpr":
		if err := kids(n, 2); err != nil {
			return ast.NoExprID, err
		}
		ops, err := d.exprs(n.Kids)
		if err != nil {
			return ast.NoExprID, err
		}
		return b.Exprs.NewBinary(ast.BinaryOp(n.Op), ops[0], ops[1]), nil

	case "SingelExpr":
		if err := kids(n, 1); err != nil {
			return ast.NoExprID, err
		}
		operand, err := d.expr(n.Kids[0])
		if err != nil {
			return ast.NoExprID, err
		}
		return b.Exprs.NewUnary(ast.UnaryOp(n.Op), operand), nil

	case "Constant", "Id":
		if err := kids(n, 0); err != nil {
			return ast.NoExprID, err
		}
		sym, err := d.sym(n.Sym)
		if err != nil {
			return ast.NoExprID, err
		}
		if n.Kind == "Id" {
			return b.Exprs.NewIdent(sym), nil
		}
		return b.Exprs.NewConstant(sym), nil

	case "FuncExpr":
		if err := kids(n, 0); err != nil {
			return ast.NoExprID, err
		}
		callee, err := d.sym(n.Sym)
		if err != nil {
			return ast.NoExprID, err
		}
		args, err := d.idList(n.List)
		if err != nil {
			return ast.NoExprID, err
		}
		return b.Exprs.NewCall(callee, args), nil
	}
	return ast.NoExprID, schemaErr("unknown expression kind %q", n.Kind)
}

func (d *decoder) idList(l *List) (ast.IDListID, error) {
	if l == nil {
		return ast.NoIDListID, nil
	}
	entries, err := d.syms(l.Syms)
	if err != nil {
		return ast.NoIDListID, err
	}
	return d.u.Builder.Lists.NewIDList(entries), nil
}

func (d *decoder) stmts(nodes []*Node) ([]ast.StmtID, error) {
	out := make([]ast.StmtID, len(nodes))
	for i, n := range nodes {
		id, err := d.stmt(n)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}

func (d *decoder) stmt(n *Node) (ast.StmtID, error) {
	if n == nil {
		return ast.NoStmtID, schemaErr("missing statement")
	}
	b := d.u.Builder
	switch n.Kind {
	case "CompoundStmt":
		if len(n.Kids) == 0 {
			return b.Stmts.NewCompound(ast.NoStmtID), nil
		}
		if err := kids(n, 1); err != nil {
			return ast.NoStmtID, err
		}
		body, err := d.stmt(n.Kids[0])
		if err != nil {
			return ast.NoStmtID, err
		}
		return b.Stmts.NewCompound(body), nil

	case "SeqNode":
		if err := kids(n, 2); err != nil {
			return ast.NoStmtID, err
		}
		parts, err := d.stmts(n.Kids)
		if err != nil {
			return ast.NoStmtID, err
		}
		return b.Stmts.NewSeq(parts[0], parts[1]), nil

	case "DeclStmt":
		if err := kids(n, 0); err != nil {
			return ast.NoStmtID, err
		}
		if n.List == nil {
			return ast.NoStmtID, schemaErr("DeclStmt without declarators")
		}
		list, err := d.idList(n.List)
		if err != nil {
			return ast.NoStmtID, err
		}
		return b.Stmts.NewDecl(list), nil

	case "EmptyStmt":
		if len(n.Kids) == 0 {
			return b.Stmts.NewEmpty(ast.NoExprID), nil
		}
		if err := kids(n, 1); err != nil {
			return ast.NoStmtID, err
		}
		expr, err := d.expr(n.Kids[0])
		if err != nil {
			return ast.NoStmtID, err
		}
		return b.Stmts.NewEmpty(expr), nil

	case "InitStmt":
		if err := kids(n, 0); err != nil {
			return ast.NoStmtID, err
		}
		if n.List == nil {
			return ast.NoStmtID, schemaErr("InitStmt without declarators")
		}
		entries, err := d.syms(n.List.Syms)
		if err != nil {
			return ast.NoStmtID, err
		}
		inits, err := d.exprs(n.List.Inits)
		if err != nil {
			return ast.NoStmtID, err
		}
		list, err := b.Lists.NewInitList(entries, inits)
		if err != nil {
			return ast.NoStmtID, err
		}
		return b.Stmts.NewInit(list), nil

	case "IfStmt", "IfElseStmt":
		want := 2
		if n.Kind == "IfElseStmt" {
			want = 3
		}
		if err := kids(n, want); err != nil {
			return ast.NoStmtID, err
		}
		cond, err := d.expr(n.Kids[0])
		if err != nil {
			return ast.NoStmtID, err
		}
		branches, err := d.stmts(n.Kids[1:])
		if err != nil {
			return ast.NoStmtID, err
		}
		if want == 2 {
			return b.Stmts.NewIf(cond, branches[0]), nil
		}
		return b.Stmts.NewIfElse(cond, branches[0], branches[1]), nil

	case "AssignStmt":
		if err := kids(n, 2); err != nil {
			return ast.NoStmtID, err
		}
		ops, err := d.exprs(n.Kids)
		if err != nil {
			return ast.NoStmtID, err
		}
		return b.Stmts.NewAssign(ops[0], ops[1]), nil

	case "WhileStmt":
		if err := kids(n, 2); err != nil {
			return ast.NoStmtID, err
		}
		cond, err := d.expr(n.Kids[0])
		if err != nil {
			return ast.NoStmtID, err
		}
		body, err := d.stmt(n.Kids[1])
		if err != nil {
			return ast.NoStmtID, err
		}
		return b.Stmts.NewWhile(cond, body), nil

	case "ReturnStmt":
		if err := kids(n, 1); err != nil {
			return ast.NoStmtID, err
		}
		switch ast.ReturnShape(n.Shape) {
		case ast.ReturnValue:
			value, err := d.expr(n.Kids[0])
			if err != nil {
				return ast.NoStmtID, err
			}
			return b.Stmts.NewReturnValue(value)
		case ast.ReturnCall:
			call, err := d.stmt(n.Kids[0])
			if err != nil {
				return ast.NoStmtID, err
			}
			return b.Stmts.NewReturnCall(call)
		}
		return ast.NoStmtID, schemaErr("ReturnStmt has unknown shape %d", n.Shape)

	case "FunctionDef":
		if err := kids(n, 1); err != nil {
			return ast.NoStmtID, err
		}
		sym, err := d.sym(n.Sym)
		if err != nil {
			return ast.NoStmtID, err
		}
		params := ast.NoParaListID
		if n.List != nil {
			entries, err := d.syms(n.List.Syms)
			if err != nil {
				return ast.NoStmtID, err
			}
			params = b.Lists.NewParaList(entries...)
		}
		body, err := d.stmt(n.Kids[0])
		if err != nil {
			return ast.NoStmtID, err
		}
		return b.Stmts.NewFunctionDef(sym, params, body), nil

	case "FuncCall":
		if err := kids(n, 0); err != nil {
			return ast.NoStmtID, err
		}
		callee, err := d.sym(n.Sym)
		if err != nil {
			return ast.NoStmtID, err
		}
		args, err := d.idList(n.List)
		if err != nil {
			return ast.NoStmtID, err
		}
		return b.Stmts.NewFuncCall(callee, args), nil

	case "FuncAssignStmt":
		if err := kids(n, 2); err != nil {
			return ast.NoStmtID, err
		}
		target, err := d.expr(n.Kids[0])
		if err != nil {
			return ast.NoStmtID, err
		}
		body, err := d.stmt(n.Kids[1])
		if err != nil {
			return ast.NoStmtID, err
		}
		switch ast.FuncAssignShape(n.Shape) {
		case ast.FuncAssignLValue:
			return b.Stmts.NewFuncAssignLValue(target, body)
		case ast.FuncAssignDeclared:
			typ, err := d.typ(n.Type)
			if err != nil {
				return ast.NoStmtID, err
			}
			return b.NewFuncAssignDeclared(typ, target, body)
		}
		return ast.NoStmtID, schemaErr("FuncAssignStmt has unknown shape %d", n.Shape)
	}
	return ast.NoStmtID, schemaErr("unknown statement kind %q", n.Kind)
}
