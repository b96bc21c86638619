package snapshot

// SchemaVersion is bumped whenever File changes shape.
const SchemaVersion uint16 = 1

// File is the on-disk form of one unit.
type File struct {
	Schema  uint16   `msgpack:"schema"`
	Types   []Type   `msgpack:"types"`
	Symbols []Symbol `msgpack:"symbols"`
	Root    *Node    `msgpack:"root,omitempty"`
}

// Type mirrors one interner slot, starting after the invalid sentinel.
type Type struct {
	Kind   uint8  `msgpack:"k"`
	Width  uint8  `msgpack:"w,omitempty"`
	Result uint32 `msgpack:"r,omitempty"` // function result, KindFn only
}

// Symbol mirrors one table entry in allocation order.
type Symbol struct {
	Kind  uint8  `msgpack:"k"`
	Type  uint32 `msgpack:"t"`
	Value int64  `msgpack:"v,omitempty"`
	Name  string `msgpack:"n,omitempty"`
	Depth int    `msgpack:"d,omitempty"`
	Label uint32 `msgpack:"l,omitempty"`
}

// Node is one tree node. Kind is the node's kind name (BinaryExpr,
// IfElseStmt, ...); which of the remaining fields are meaningful depends on it.
type Node struct {
	Kind  string  `msgpack:"kind"`
	Op    uint8   `msgpack:"op,omitempty"`
	Sym   uint32  `msgpack:"sym,omitempty"`
	Type  uint32  `msgpack:"type,omitempty"`
	Shape uint8   `msgpack:"shape,omitempty"`
	Kids  []*Node `msgpack:"kids,omitempty"`
	List  *List   `msgpack:"list,omitempty"`
}

// List is a declarator list; Inits is set for InitStmt only.
type List struct {
	Syms  []uint32 `msgpack:"syms"`
	Inits []*Node  `msgpack:"inits,omitempty"`
}
