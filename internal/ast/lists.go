package ast

import (
	"slices"

	"sysyc/internal/diag"
	"sysyc/internal/symbols"
	"sysyc/internal/types"
)

// IDList is an ordered group of declared names, e.g. `int a, b;`.
// Entries belong to the symbol table; the list only refers to them.
type IDList struct {
	entries []symbols.SymbolID
}

func (l *IDList) Len() int                    { return len(l.entries) }
func (l *IDList) At(i int) symbols.SymbolID   { return l.entries[i] }
func (l *IDList) Entries() []symbols.SymbolID { return slices.Clone(l.entries) }

// SetType assigns typ to every entry.
func (l *IDList) SetType(tab SymbolTable, typ types.TypeID) error {
	return setType(tab, l.entries, typ)
}

// InitIDList pairs each declared name with its owned initializer by position.
// len(entries) == len(inits) holds for every value ever built.
type InitIDList struct {
	entries []symbols.SymbolID
	inits   []ExprID
}

func (l *InitIDList) Len() int { return len(l.entries) }

// At returns the i-th name and its initializer.
func (l *InitIDList) At(i int) (symbols.SymbolID, ExprID) {
	return l.entries[i], l.inits[i]
}

func (l *InitIDList) Entries() []symbols.SymbolID { return slices.Clone(l.entries) }
func (l *InitIDList) Inits() []ExprID             { return slices.Clone(l.inits) }

func (l *InitIDList) SetType(tab SymbolTable, typ types.TypeID) error {
	return setType(tab, l.entries, typ)
}

// ParaList is the ordered list of formal parameters; empty means no parameters.
type ParaList struct {
	entries []symbols.SymbolID
}

func (l *ParaList) Len() int                    { return len(l.entries) }
func (l *ParaList) At(i int) symbols.SymbolID   { return l.entries[i] }
func (l *ParaList) Entries() []symbols.SymbolID { return slices.Clone(l.entries) }

func (l *ParaList) SetType(tab SymbolTable, typ types.TypeID) error {
	return setType(tab, l.entries, typ)
}

func setType(tab SymbolTable, entries []symbols.SymbolID, typ types.TypeID) error {
	for _, id := range entries {
		if err := tab.SetType(id, typ); err != nil {
			return err
		}
	}
	return nil
}

// Lists manages allocation of declarator lists.
type Lists struct {
	IDs    *Arena[IDList]
	Inits  *Arena[InitIDList]
	Params *Arena[ParaList]
}

func NewLists(capHint uint) *Lists {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Lists{
		IDs:    NewArena[IDList](capHint),
		Inits:  NewArena[InitIDList](capHint),
		Params: NewArena[ParaList](capHint),
	}
}

func (l *Lists) NewIDList(entries []symbols.SymbolID) IDListID {
	return IDListID(l.IDs.Allocate(IDList{entries: slices.Clone(entries)}))
}

func (l *Lists) IDList(id IDListID) (*IDList, bool) {
	list := l.IDs.Get(uint32(id))
	return list, list != nil
}

// NewInitList pairs entries with inits by position. Mismatched lengths are rejected.
func (l *Lists) NewInitList(entries []symbols.SymbolID, inits []ExprID) (InitListID, error) {
	if len(entries) != len(inits) {
		return NoInitListID, diag.Errorf(diag.AstInitCountMismatch,
			"%d declarators but %d initializers", len(entries), len(inits))
	}
	return InitListID(l.Inits.Allocate(InitIDList{
		entries: slices.Clone(entries),
		inits:   slices.Clone(inits),
	})), nil
}

func (l *Lists) InitList(id InitListID) (*InitIDList, bool) {
	list := l.Inits.Get(uint32(id))
	return list, list != nil
}

// NewParaList creates a parameter list; call with no entries for `f()`.
func (l *Lists) NewParaList(entries ...symbols.SymbolID) ParaListID {
	return ParaListID(l.Params.Allocate(ParaList{entries: slices.Clone(entries)}))
}

func (l *Lists) ParaList(id ParaListID) (*ParaList, bool) {
	list := l.Params.Get(uint32(id))
	return list, list != nil
}
