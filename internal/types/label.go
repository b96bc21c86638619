package types

import "strings"

// Label returns the trace spelling of a type: "int", "void", "const int",
// or "<result>()" for functions, nested to any depth.
// ok is false when id, or any result type it refers to, is not interned.
func Label(typesIn *Interner, id TypeID) (string, bool) {
	if typesIn == nil {
		return "", false
	}
	calls := 0
	for {
		tt, ok := typesIn.Lookup(id)
		if !ok {
			return "", false
		}
		switch tt.Kind {
		case KindInt, KindVoid, KindConstInt:
			return tt.Kind.String() + strings.Repeat("()", calls), true
		case KindFn:
			info, ok := typesIn.FnInfo(id)
			// результат интернируется раньше функции, поэтому id строго убывает
			if !ok || info.Result >= id {
				return "", false
			}
			id = info.Result
			calls++
		default:
			return "", false
		}
	}
}
