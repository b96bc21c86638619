package types //nolint:revive

import (
	"fmt"

	"fortio.org/safecast"
)

// FnInfo stores metadata for function types.
// Only the result is tracked; parameters are not part of the signature.
type FnInfo struct {
	Result TypeID
}

// RegisterFn creates or finds the function type returning result.
func (in *Interner) RegisterFn(result TypeID) TypeID {
	for i, info := range in.fns {
		if info.Result != result {
			continue
		}
		slot, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("fn info overflow: %w", err))
		}
		if id, ok := in.index[typeKey{Kind: KindFn, Payload: slot}]; ok {
			return id
		}
	}
	in.fns = append(in.fns, FnInfo{Result: result})
	slot, err := safecast.Conv[uint32](len(in.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindFn, Payload: slot})
}

// FnInfo retrieves function type metadata by TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFn {
		return nil, false
	}
	if int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}
