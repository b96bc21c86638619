package diagfmt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/trace"
	"sysyc/internal/types"
)

const (
	// rootLevel is the indentation of the root node under "program".
	rootLevel = 4
	// levelStep is added for every level of nesting.
	levelStep = 4
)

// tracePrinter renders one tree into a buffer. Nothing reaches the caller's
// writer unless the whole walk succeeds.
type tracePrinter struct {
	b      *ast.Builder
	syms   ast.SymbolTable
	types  *types.Interner
	out    bytes.Buffer
	tracer trace.Tracer
	span   uint64
}

// FormatTrace writes the line-oriented trace of the unit's tree to w:
// the literal line "program", then the root at indentation 4, children
// four columns deeper than their parent.
//
// The walk is read-only and may be repeated. On a broken node contract the
// returned error is a *diag.Diagnostic and w is left untouched.
func FormatTrace(ctx context.Context, w io.Writer, b *ast.Builder, syms ast.SymbolTable, typesIn *types.Interner) error {
	if b == nil {
		return errors.New("nil builder")
	}
	if syms == nil {
		return errors.New("nil symbol table")
	}
	if typesIn == nil {
		return errors.New("nil type registry")
	}
	t := trace.FromContext(ctx)
	span := trace.Begin(t, trace.ScopePass, "trace", trace.CurrentSpan(ctx))

	p := &tracePrinter{
		b:      b,
		syms:   syms,
		types:  typesIn,
		tracer: t,
		span:   span.ID(),
	}
	p.out.WriteString("program\n")
	if root := b.Root(); root.Kind != ast.NodeNone {
		if err := p.node(root, rootLevel); err != nil {
			span.End("failed")
			trace.Point(t, trace.ScopeError, "trace", err.Error(), span.ID())
			return err
		}
	}
	span.WithExtra("bytes", fmt.Sprint(p.out.Len())).End("")

	if _, err := w.Write(p.out.Bytes()); err != nil {
		return diag.Errorf(diag.IOWrite, "write trace: %v", err)
	}
	return nil
}

// FormatUnitTrace is FormatTrace over a bundled unit.
func FormatUnitTrace(ctx context.Context, w io.Writer, u *ast.Unit) error {
	if u == nil || u.Symbols == nil {
		return errors.New("incomplete unit")
	}
	return FormatTrace(ctx, w, u.Builder, u.Symbols, u.Types)
}

func (p *tracePrinter) node(ref ast.NodeRef, level int) error {
	switch ref.Kind {
	case ast.NodeExpr:
		return p.expr(ref.Expr, level, 0)
	case ast.NodeStmt:
		return p.stmt(ref.Stmt, level, 0)
	}
	return diag.Errorf(diag.AstDanglingHandle, "root has no node kind")
}

// line writes one node line prefixed with level spaces.
func (p *tracePrinter) line(level int, format string, args ...any) {
	p.out.WriteString(strings.Repeat(" ", level))
	fmt.Fprintf(&p.out, format, args...)
	p.out.WriteByte('\n')
}

func (p *tracePrinter) visit(name string, seq uint32) {
	trace.Point(p.tracer, trace.ScopeNode, name, fmt.Sprintf("#%d", seq), p.span)
}

// typeLabel resolves a type handle; an unset or unknown type is a dangling handle.
func (p *tracePrinter) typeLabel(id types.TypeID) (string, error) {
	label, ok := types.Label(p.types, id)
	if !ok {
		return "", diag.Errorf(diag.AstDanglingHandle, "type #%d is not in the type registry", id)
	}
	return label, nil
}

// atNode attaches seq to a diagnostic that is not yet bound to a node.
func atNode(err error, seq uint32) error {
	var d *diag.Diagnostic
	if errors.As(err, &d) && d.Node == 0 {
		d.Node = seq
	}
	return err
}

func dangling(what string, parent uint32) error {
	return diag.Errorf(diag.AstDanglingHandle, "%s does not refer to an allocated node", what).AtNode(parent)
}
