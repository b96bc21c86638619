package symbols

// SymbolID identifies an entry inside the symbol arena.
type SymbolID uint32

const (
	// NoSymbolID marks the absence of a symbol reference.
	NoSymbolID SymbolID = 0
)

// IsValid reports whether the symbol ID refers to an allocated entry.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }
