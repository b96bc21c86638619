package ast

import (
	"sysyc/internal/diag"
	"sysyc/internal/symbols"
	"sysyc/internal/types"
)

// StmtKind enumerates the different kinds of statements.
type StmtKind uint8

const (
	StmtCompound StmtKind = iota
	StmtSeq
	StmtDecl
	StmtEmpty
	StmtInit
	StmtIf
	StmtIfElse
	StmtAssign
	StmtWhile
	StmtReturn
	StmtFunctionDef
	// StmtFuncCall is a call in statement position; its value is discarded.
	StmtFuncCall
	StmtFuncAssign
)

func (k StmtKind) String() string {
	switch k {
	case StmtCompound:
		return "CompoundStmt"
	case StmtSeq:
		return "SeqNode"
	case StmtDecl:
		return "DeclStmt"
	case StmtEmpty:
		return "EmptyStmt"
	case StmtInit:
		return "InitStmt"
	case StmtIf:
		return "IfStmt"
	case StmtIfElse:
		return "IfElseStmt"
	case StmtAssign:
		return "AssignStmt"
	case StmtWhile:
		return "WhileStmt"
	case StmtReturn:
		return "ReturnStmt"
	case StmtFunctionDef:
		return "FunctionDef"
	case StmtFuncCall:
		return "FuncCall"
	case StmtFuncAssign:
		return "FuncAssignStmt"
	}
	return "Stmt?"
}

// Stmt represents a statement node in the AST.
type Stmt struct {
	Kind    StmtKind
	Seq     uint32
	Payload PayloadID
}

type StmtCompoundData struct {
	Body StmtID
}

type StmtSeqData struct {
	First  StmtID
	Second StmtID
}

type StmtDeclData struct {
	List IDListID
}

// StmtEmptyData optionally carries a bare expression statement.
type StmtEmptyData struct {
	Expr ExprID // NoExprID for a lone ';'
}

type StmtInitData struct {
	List InitListID
}

// StmtIfData backs both IfStmt and IfElseStmt; Else is NoStmtID for IfStmt.
type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

type StmtAssignData struct {
	LValue ExprID
	Value  ExprID
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

type StmtFunctionDefData struct {
	Symbol symbols.SymbolID
	Params ParaListID
	Body   StmtID
}

type StmtFuncCallData struct {
	Callee symbols.SymbolID
	Args   IDListID // NoIDListID when called without arguments
}

// ReturnShape says which branch of a return statement is populated.
type ReturnShape uint8

const (
	ReturnValue ReturnShape = iota + 1
	ReturnCall
)

// StmtReturnData holds exactly one of a value expression or a call statement.
// Use NewReturnValue/NewReturnCall to build it and ValueExpr/CallStmt to read it.
type StmtReturnData struct {
	Shape ReturnShape
	value ExprID
	call  StmtID
}

// ValueExpr returns the returned expression of a ReturnValue statement.
func (r *StmtReturnData) ValueExpr() (ExprID, error) {
	if r.Shape != ReturnValue || !r.value.IsValid() {
		return NoExprID, diag.Errorf(diag.AstVariantEmpty, "return statement has no value expression")
	}
	return r.value, nil
}

// CallStmt returns the call statement of a ReturnCall statement.
func (r *StmtReturnData) CallStmt() (StmtID, error) {
	if r.Shape != ReturnCall || !r.call.IsValid() {
		return NoStmtID, diag.Errorf(diag.AstVariantEmpty, "return statement has no call")
	}
	return r.call, nil
}

// FuncAssignShape distinguishes the two resolution stages of a call-target
// assignment.
type FuncAssignShape uint8

const (
	// FuncAssignLValue: target already resolved to an lvalue expression.
	FuncAssignLValue FuncAssignShape = iota + 1
	// FuncAssignDeclared: target spelled as a declared type plus identifier.
	FuncAssignDeclared
)

// StmtFuncAssignData holds either {lvalue, body} or {type, ident, body}.
type StmtFuncAssignData struct {
	Shape  FuncAssignShape
	Body   StmtID
	lvalue ExprID
	typ    types.TypeID
	ident  ExprID
}

// LValue returns the target of a FuncAssignLValue statement.
func (f *StmtFuncAssignData) LValue() (ExprID, error) {
	if f.Shape != FuncAssignLValue || !f.lvalue.IsValid() {
		return NoExprID, diag.Errorf(diag.AstVariantEmpty, "function assignment has no lvalue")
	}
	return f.lvalue, nil
}

// Declared returns the declared type and identifier of a FuncAssignDeclared statement.
func (f *StmtFuncAssignData) Declared() (types.TypeID, ExprID, error) {
	if f.Shape != FuncAssignDeclared || !f.ident.IsValid() {
		return types.NoTypeID, NoExprID, diag.Errorf(diag.AstVariantEmpty, "function assignment has no declared target")
	}
	return f.typ, f.ident, nil
}
