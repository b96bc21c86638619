package ast

import (
	"sysyc/internal/diag"
	"sysyc/internal/symbols"
	"sysyc/internal/types"
)

// Stmts manages allocation of statements.
type Stmts struct {
	Arena        *Arena[Stmt]
	Compounds    *Arena[StmtCompoundData]
	Seqs         *Arena[StmtSeqData]
	Decls        *Arena[StmtDeclData]
	Empties      *Arena[StmtEmptyData]
	Inits        *Arena[StmtInitData]
	Ifs          *Arena[StmtIfData]
	Assigns      *Arena[StmtAssignData]
	Whiles       *Arena[StmtWhileData]
	Returns      *Arena[StmtReturnData]
	FunctionDefs *Arena[StmtFunctionDefData]
	FuncCalls    *Arena[StmtFuncCallData]
	FuncAssigns  *Arena[StmtFuncAssignData]

	seq *Sequencer
}

func NewStmts(capHint uint, seq *Sequencer) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	if seq == nil {
		seq = &Sequencer{}
	}
	return &Stmts{
		Arena:        NewArena[Stmt](capHint),
		Compounds:    NewArena[StmtCompoundData](capHint),
		Seqs:         NewArena[StmtSeqData](capHint),
		Decls:        NewArena[StmtDeclData](capHint),
		Empties:      NewArena[StmtEmptyData](capHint),
		Inits:        NewArena[StmtInitData](capHint),
		Ifs:          NewArena[StmtIfData](capHint),
		Assigns:      NewArena[StmtAssignData](capHint),
		Whiles:       NewArena[StmtWhileData](capHint),
		Returns:      NewArena[StmtReturnData](capHint),
		FunctionDefs: NewArena[StmtFunctionDefData](capHint),
		FuncCalls:    NewArena[StmtFuncCallData](capHint),
		FuncAssigns:  NewArena[StmtFuncAssignData](capHint),
		seq:          seq,
	}
}

func (s *Stmts) new(kind StmtKind, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Seq:     s.seq.Next(),
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != kind {
		return 0, false
	}
	return uint32(stmt.Payload), true
}

func (s *Stmts) NewCompound(body StmtID) StmtID {
	return s.new(StmtCompound, s.Compounds.Allocate(StmtCompoundData{Body: body}))
}

func (s *Stmts) Compound(id StmtID) (*StmtCompoundData, bool) {
	p, ok := s.payload(id, StmtCompound)
	if !ok {
		return nil, false
	}
	return s.Compounds.Get(p), true
}

// NewSeq sequences two statements.
func (s *Stmts) NewSeq(first, second StmtID) StmtID {
	return s.new(StmtSeq, s.Seqs.Allocate(StmtSeqData{First: first, Second: second}))
}

func (s *Stmts) Seq(id StmtID) (*StmtSeqData, bool) {
	p, ok := s.payload(id, StmtSeq)
	if !ok {
		return nil, false
	}
	return s.Seqs.Get(p), true
}

func (s *Stmts) NewDecl(list IDListID) StmtID {
	return s.new(StmtDecl, s.Decls.Allocate(StmtDeclData{List: list}))
}

func (s *Stmts) Decl(id StmtID) (*StmtDeclData, bool) {
	p, ok := s.payload(id, StmtDecl)
	if !ok {
		return nil, false
	}
	return s.Decls.Get(p), true
}

// NewEmpty creates an empty statement; expr may be NoExprID.
func (s *Stmts) NewEmpty(expr ExprID) StmtID {
	return s.new(StmtEmpty, s.Empties.Allocate(StmtEmptyData{Expr: expr}))
}

func (s *Stmts) Empty(id StmtID) (*StmtEmptyData, bool) {
	p, ok := s.payload(id, StmtEmpty)
	if !ok {
		return nil, false
	}
	return s.Empties.Get(p), true
}

func (s *Stmts) NewInit(list InitListID) StmtID {
	return s.new(StmtInit, s.Inits.Allocate(StmtInitData{List: list}))
}

func (s *Stmts) Init(id StmtID) (*StmtInitData, bool) {
	p, ok := s.payload(id, StmtInit)
	if !ok {
		return nil, false
	}
	return s.Inits.Get(p), true
}

func (s *Stmts) NewIf(cond ExprID, then StmtID) StmtID {
	return s.new(StmtIf, s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then}))
}

func (s *Stmts) NewIfElse(cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIfElse, s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els}))
}

// If returns the data of an IfStmt or IfElseStmt.
func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	stmt := s.Get(id)
	if stmt == nil || (stmt.Kind != StmtIf && stmt.Kind != StmtIfElse) {
		return nil, false
	}
	return s.Ifs.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewAssign(lvalue, value ExprID) StmtID {
	return s.new(StmtAssign, s.Assigns.Allocate(StmtAssignData{LValue: lvalue, Value: value}))
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	p, ok := s.payload(id, StmtAssign)
	if !ok {
		return nil, false
	}
	return s.Assigns.Get(p), true
}

func (s *Stmts) NewWhile(cond ExprID, body StmtID) StmtID {
	return s.new(StmtWhile, s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body}))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(p), true
}

// NewFunctionDef creates a function definition. params may be an empty list.
func (s *Stmts) NewFunctionDef(sym symbols.SymbolID, params ParaListID, body StmtID) StmtID {
	return s.new(StmtFunctionDef, s.FunctionDefs.Allocate(StmtFunctionDefData{Symbol: sym, Params: params, Body: body}))
}

func (s *Stmts) FunctionDef(id StmtID) (*StmtFunctionDefData, bool) {
	p, ok := s.payload(id, StmtFunctionDef)
	if !ok {
		return nil, false
	}
	return s.FunctionDefs.Get(p), true
}

// NewFuncCall creates a call in statement position. args may be NoIDListID.
func (s *Stmts) NewFuncCall(callee symbols.SymbolID, args IDListID) StmtID {
	return s.new(StmtFuncCall, s.FuncCalls.Allocate(StmtFuncCallData{Callee: callee, Args: args}))
}

func (s *Stmts) FuncCall(id StmtID) (*StmtFuncCallData, bool) {
	p, ok := s.payload(id, StmtFuncCall)
	if !ok {
		return nil, false
	}
	return s.FuncCalls.Get(p), true
}

// NewReturnValue creates `return <value>`.
func (s *Stmts) NewReturnValue(value ExprID) (StmtID, error) {
	if !value.IsValid() {
		return NoStmtID, diag.Errorf(diag.AstVariantEmpty, "return requires a value expression")
	}
	return s.new(StmtReturn, s.Returns.Allocate(StmtReturnData{Shape: ReturnValue, value: value})), nil
}

// NewReturnCall creates `return <call>` where call is a FuncCall statement.
func (s *Stmts) NewReturnCall(call StmtID) (StmtID, error) {
	stmt := s.Get(call)
	if stmt == nil {
		return NoStmtID, diag.Errorf(diag.AstVariantEmpty, "return requires a call statement")
	}
	if stmt.Kind != StmtFuncCall {
		return NoStmtID, diag.Errorf(diag.AstBadChild, "return call must be a FuncCall, got %s", stmt.Kind).AtNode(stmt.Seq)
	}
	return s.new(StmtReturn, s.Returns.Allocate(StmtReturnData{Shape: ReturnCall, call: call})), nil
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

// NewFuncAssignLValue creates the resolved form: an lvalue target and a body.
func (s *Stmts) NewFuncAssignLValue(lvalue ExprID, body StmtID) (StmtID, error) {
	if !lvalue.IsValid() {
		return NoStmtID, diag.Errorf(diag.AstVariantEmpty, "function assignment requires an lvalue")
	}
	return s.new(StmtFuncAssign, s.FuncAssigns.Allocate(StmtFuncAssignData{
		Shape:  FuncAssignLValue,
		Body:   body,
		lvalue: lvalue,
	})), nil
}

// NewFuncAssignDeclared creates the declared form: a type, an Id expression and a body.
// exprs is consulted to check that ident is an Id node.
func (s *Stmts) NewFuncAssignDeclared(exprs *Exprs, typ types.TypeID, ident ExprID, body StmtID) (StmtID, error) {
	expr := exprs.Get(ident)
	if expr == nil {
		return NoStmtID, diag.Errorf(diag.AstVariantEmpty, "function assignment requires an identifier")
	}
	if expr.Kind != ExprIdent {
		return NoStmtID, diag.Errorf(diag.AstBadChild, "function assignment target must be an Id, got %s", expr.Kind).AtNode(expr.Seq)
	}
	if typ == types.NoTypeID {
		return NoStmtID, diag.Errorf(diag.AstVariantEmpty, "function assignment requires a declared type").AtNode(expr.Seq)
	}
	return s.new(StmtFuncAssign, s.FuncAssigns.Allocate(StmtFuncAssignData{
		Shape: FuncAssignDeclared,
		Body:  body,
		typ:   typ,
		ident: ident,
	})), nil
}

func (s *Stmts) FuncAssign(id StmtID) (*StmtFuncAssignData, bool) {
	p, ok := s.payload(id, StmtFuncAssign)
	if !ok {
		return nil, false
	}
	return s.FuncAssigns.Get(p), true
}
