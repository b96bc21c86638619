package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the built-in type kinds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindVoid
	KindConstInt
	KindFn
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInt:
		return "int"
	case KindVoid:
		return "void"
	case KindConstInt:
		return "const int"
	case KindFn:
		return "fn"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width is the storage size of an integer type in bytes.
type Width uint8

// DefaultWidth is the width of the canonical int and const int.
const DefaultWidth Width = 4

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Width   Width  // for int/const int
	Payload uint32 // index into fns for KindFn
}

// MakeInt describes a signed integer of the given width.
func MakeInt(width Width) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeConstInt describes a constant integer of the given width.
func MakeConstInt(width Width) Type {
	return Type{Kind: KindConstInt, Width: width}
}

// MakeVoid describes the void type.
func MakeVoid() Type {
	return Type{Kind: KindVoid}
}
