package diagfmt

import (
	"sysyc/internal/ast"
)

// Declarator lists are walked by index; the tree is never consumed.

func (p *tracePrinter) idList(id ast.IDListID, level int, parent uint32) error {
	list, ok := p.b.Lists.IDList(id)
	if !ok {
		return dangling("declarator list", parent)
	}
	for i := 0; i < list.Len(); i++ {
		if err := p.idLine(list.At(i), level); err != nil {
			return atNode(err, parent)
		}
	}
	return nil
}

func (p *tracePrinter) initList(id ast.InitListID, level int, parent uint32) error {
	list, ok := p.b.Lists.InitList(id)
	if !ok {
		return dangling("initializer list", parent)
	}
	for i := 0; i < list.Len(); i++ {
		sym, init := list.At(i)
		if err := p.idLine(sym, level); err != nil {
			return atNode(err, parent)
		}
		if err := p.expr(init, level+levelStep, parent); err != nil {
			return err
		}
	}
	return nil
}

func (p *tracePrinter) paraList(id ast.ParaListID, level int, parent uint32) error {
	list, ok := p.b.Lists.ParaList(id)
	if !ok {
		return dangling("parameter list", parent)
	}
	for i := 0; i < list.Len(); i++ {
		if err := p.idLine(list.At(i), level); err != nil {
			return atNode(err, parent)
		}
	}
	return nil
}
