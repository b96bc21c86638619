package symbols

import (
	"sysyc/internal/source"
	"sysyc/internal/types"
)

// EntryKind tags the variant stored in an Entry.
type EntryKind uint8

const (
	EntryInvalid EntryKind = iota
	EntryConstant
	EntryIdentifier
	EntryTemporary
)

func (k EntryKind) String() string {
	switch k {
	case EntryConstant:
		return "constant"
	case EntryIdentifier:
		return "identifier"
	case EntryTemporary:
		return "temporary"
	default:
		return "invalid"
	}
}

// Entry binds a name or literal to a type. Only identifier entries carry a
// scope depth; reading it from any other kind is reported by Table.Scope.
type Entry struct {
	Kind  EntryKind
	Type  types.TypeID
	Value int64           // EntryConstant
	Name  source.StringID // EntryIdentifier
	Depth int             // EntryIdentifier: lexical nesting level
	Label uint32          // EntryTemporary
}
