package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs of the canonical built-in types.
type Builtins struct {
	Invalid  TypeID
	Int      TypeID
	Void     TypeID
	ConstInt TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// It is the type registry of one compilation unit: the canonical int, void
// and const int exist exactly once and are never mutated.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	fns      []FnInfo
}

// NewInterner constructs an interner seeded with the built-in types.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 16),
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Int = in.Intern(MakeInt(DefaultWidth))
	in.builtins.Void = in.Intern(MakeVoid())
	in.builtins.ConstInt = in.Intern(MakeConstInt(DefaultWidth))
	return in
}

// Builtins returns TypeIDs for the built-in types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// ByName resolves a built-in type by its source spelling.
func (in *Interner) ByName(name string) (TypeID, bool) {
	switch name {
	case "int":
		return in.builtins.Int, true
	case "void":
		return in.builtins.Void, true
	case "const int":
		return in.builtins.ConstInt, true
	}
	return NoTypeID, false
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[typeKey(t)]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Len reports the number of interned types including the invalid sentinel.
func (in *Interner) Len() int {
	return len(in.types)
}

type typeKey struct {
	Kind    Kind
	Width   Width
	Payload uint32
}
