package ast

import (
	"sysyc/internal/symbols"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprBinary represents a binary expression.
	ExprBinary ExprKind = iota
	// ExprUnary represents a unary expression (negation, logical not).
	ExprUnary
	// ExprConstant represents an integer literal.
	ExprConstant
	// ExprIdent represents a reference to a declared identifier.
	ExprIdent
	// ExprCall represents a call whose value is consumed by the enclosing expression.
	ExprCall
)

func (k ExprKind) String() string {
	switch k {
	case ExprBinary:
		return "BinaryExpr"
	case ExprUnary:
		return "SingelExpr"
	case ExprConstant:
		return "Constant"
	case ExprIdent:
		return "Id"
	case ExprCall:
		return "FuncExpr"
	}
	return "Expr?"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Seq     uint32
	Payload PayloadID
}

// BinaryOp enumerates binary operator kinds.
type BinaryOp uint8

const (
	// Арифметические
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod

	// Логические
	BinaryAnd
	BinaryOr

	// Сравнения
	BinaryLess
	BinaryGreater
	BinaryNotEqual
	BinaryEqual
	BinaryLessEq
	BinaryGreaterEq
)

// Mnemonic returns the trace spelling of the operator; ok is false for a
// value outside the enumerated set.
func (op BinaryOp) Mnemonic() (string, bool) {
	switch op {
	case BinaryAdd:
		return "add", true
	case BinarySub:
		return "sub", true
	case BinaryMul:
		return "mul", true
	case BinaryDiv:
		return "div", true
	case BinaryMod:
		return "mod", true
	case BinaryAnd:
		return "and", true
	case BinaryOr:
		return "or", true
	case BinaryLess:
		return "less", true
	case BinaryGreater:
		return "greater", true
	case BinaryNotEqual:
		return "notequal", true
	case BinaryEqual:
		return "equal", true
	case BinaryLessEq:
		return "lesseq", true
	case BinaryGreaterEq:
		return "greatereq", true
	}
	return "", false
}

// UnaryOp enumerates unary operator kinds.
type UnaryOp uint8

const (
	// UnaryMinus is arithmetic negation (-x).
	UnaryMinus UnaryOp = iota
	// UnaryNot is logical not (!x).
	UnaryNot
)

func (op UnaryOp) Mnemonic() (string, bool) {
	switch op {
	case UnaryMinus:
		return "minus", true
	case UnaryNot:
		return "not", true
	}
	return "", false
}

// ExprBinaryData holds the operator and both operands of a binary expression.
type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

// ExprConstantData points at the literal's symbol entry.
type ExprConstantData struct {
	Symbol symbols.SymbolID
}

// ExprIdentData points at an identifier entry. The entry must be of
// identifier kind for its scope depth to be readable.
type ExprIdentData struct {
	Symbol symbols.SymbolID
}

// ExprCallData describes a call in expression position.
type ExprCallData struct {
	Callee symbols.SymbolID
	Args   IDListID // NoIDListID when called without arguments
}
