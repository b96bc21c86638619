package diag

import (
	"errors"
	"sort"
)

type Bag struct {
	items []*Diagnostic
	max   int
}

func NewBag(max int) *Bag {
	if max <= 0 {
		max = 100
	}
	return &Bag{
		items: make([]*Diagnostic, 0, min(max, 16)),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если достигнут лимит.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil || len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// AddError records err. Non-diagnostic errors become UnknownCode errors.
func (b *Bag) AddError(unit string, err error) bool {
	if err == nil {
		return false
	}
	var d *Diagnostic
	if !errors.As(err, &d) {
		d = New(SevError, UnknownCode, err.Error())
	} else {
		cp := *d
		d = &cp
	}
	if d.Unit == "" {
		d.Unit = unit
	}
	return b.Add(d)
}

func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity.Fails() {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// Sort orders diagnostics by unit, node, severity (desc) and code.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Unit != dj.Unit {
			return di.Unit < dj.Unit
		}
		if di.Node != dj.Node {
			return di.Node < dj.Node
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}
