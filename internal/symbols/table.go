package symbols

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"sysyc/internal/diag"
	"sysyc/internal/source"
	"sysyc/internal/types"
)

// Table owns symbol entries and the interned names they reference.
// Tree nodes refer to entries by SymbolID only.
type Table struct {
	data    []Entry // index 0 reserved for NoSymbolID
	Strings *source.Interner
}

// NewTable builds a fresh table. If strings is nil, a fresh interner is allocated.
func NewTable(capacity uint, strings *source.Interner) *Table {
	if capacity == 0 {
		capacity = 64
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		data:    make([]Entry, 1, capacity+1),
		Strings: strings,
	}
}

func (t *Table) add(e Entry) SymbolID {
	value, err := safecast.Conv[uint32](len(t.data))
	if err != nil {
		panic(fmt.Errorf("symbols arena overflow: %w", err))
	}
	t.data = append(t.data, e)
	return SymbolID(value)
}

// NewConstant records an integer literal.
func (t *Table) NewConstant(value int64, typ types.TypeID) SymbolID {
	return t.add(Entry{Kind: EntryConstant, Type: typ, Value: value})
}

// NewIdentifier records a declared name at the given scope depth.
func (t *Table) NewIdentifier(name string, typ types.TypeID, depth int) SymbolID {
	return t.add(Entry{Kind: EntryIdentifier, Type: typ, Name: t.Strings.Intern(name), Depth: depth})
}

// NewTemporary records a compiler temporary.
func (t *Table) NewTemporary(label uint32, typ types.TypeID) SymbolID {
	return t.add(Entry{Kind: EntryTemporary, Type: typ, Label: label})
}

// Get returns an entry pointer or nil for an invalid ID.
func (t *Table) Get(id SymbolID) *Entry {
	if !id.IsValid() || int(id) >= len(t.data) {
		return nil
	}
	return &t.data[id]
}

// Len reports number of stored entries excluding the sentinel.
func (t *Table) Len() int { return len(t.data) - 1 }

func (t *Table) mustGet(id SymbolID) (*Entry, error) {
	e := t.Get(id)
	if e == nil {
		return nil, diag.Errorf(diag.AstDanglingHandle, "symbol #%d is not allocated", id)
	}
	return e, nil
}

// Label is the entry's textual form: the literal value, the name, or t<N>.
func (t *Table) Label(id SymbolID) (string, error) {
	e, err := t.mustGet(id)
	if err != nil {
		return "", err
	}
	switch e.Kind {
	case EntryConstant:
		return strconv.FormatInt(e.Value, 10), nil
	case EntryIdentifier:
		return t.Strings.MustLookup(e.Name), nil
	case EntryTemporary:
		return "t" + strconv.FormatUint(uint64(e.Label), 10), nil
	}
	return "", diag.Errorf(diag.AstDanglingHandle, "symbol #%d has no variant", id)
}

// TypeOf returns the entry's current type.
func (t *Table) TypeOf(id SymbolID) (types.TypeID, error) {
	e, err := t.mustGet(id)
	if err != nil {
		return types.NoTypeID, err
	}
	return e.Type, nil
}

// Scope returns the lexical depth of an identifier entry.
func (t *Table) Scope(id SymbolID) (int, error) {
	e, err := t.mustGet(id)
	if err != nil {
		return 0, err
	}
	if e.Kind != EntryIdentifier {
		return 0, diag.Errorf(diag.AstNotIdentifier, "symbol #%d is a %s entry, scope is defined for identifiers only", id, e.Kind)
	}
	return e.Depth, nil
}

// SetType overwrites the entry's type.
func (t *Table) SetType(id SymbolID, typ types.TypeID) error {
	e, err := t.mustGet(id)
	if err != nil {
		return err
	}
	e.Type = typ
	return nil
}
