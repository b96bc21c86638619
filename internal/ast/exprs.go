package ast

import (
	"sysyc/internal/symbols"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Binaries  *Arena[ExprBinaryData]
	Unaries   *Arena[ExprUnaryData]
	Constants *Arena[ExprConstantData]
	Idents    *Arena[ExprIdentData]
	Calls     *Arena[ExprCallData]

	seq *Sequencer
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
// Sequence numbers are drawn from seq, which is shared with the statement arenas.
func NewExprs(capHint uint, seq *Sequencer) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	if seq == nil {
		seq = &Sequencer{}
	}
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Unaries:   NewArena[ExprUnaryData](capHint),
		Constants: NewArena[ExprConstantData](capHint),
		Idents:    NewArena[ExprIdentData](capHint),
		Calls:     NewArena[ExprCallData](capHint),
		seq:       seq,
	}
}

func (e *Exprs) new(kind ExprKind, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Seq:     e.seq.Next(),
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(op BinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, PayloadID(payload))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewUnary creates a new unary expression.
func (e *Exprs) NewUnary(op UnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, PayloadID(payload))
}

// Unary returns the unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewConstant creates a literal backed by the given symbol entry.
func (e *Exprs) NewConstant(sym symbols.SymbolID) ExprID {
	payload := e.Constants.Allocate(ExprConstantData{Symbol: sym})
	return e.new(ExprConstant, PayloadID(payload))
}

func (e *Exprs) Constant(id ExprID) (*ExprConstantData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprConstant {
		return nil, false
	}
	return e.Constants.Get(uint32(expr.Payload)), true
}

// NewIdent creates an identifier reference backed by the given symbol entry.
func (e *Exprs) NewIdent(sym symbols.SymbolID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Symbol: sym})
	return e.new(ExprIdent, PayloadID(payload))
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewCall creates a call in expression position. args may be NoIDListID.
func (e *Exprs) NewCall(callee symbols.SymbolID, args IDListID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: args})
	return e.new(ExprCall, PayloadID(payload))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}
