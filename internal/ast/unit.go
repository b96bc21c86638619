package ast

import (
	"sysyc/internal/symbols"
	"sysyc/internal/types"
)

// Unit is one compilation unit: the tree plus the symbol entries and types
// it refers to. The tree must not outlive Symbols and Types.
type Unit struct {
	Builder *Builder
	Symbols *symbols.Table
	Types   *types.Interner
}

func NewUnit(hints Hints) *Unit {
	return &Unit{
		Builder: NewBuilder(hints),
		Symbols: symbols.NewTable(0, nil),
		Types:   types.NewInterner(),
	}
}
