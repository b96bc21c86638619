package driver

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/diagfmt"
	"sysyc/internal/observ"
	"sysyc/internal/snapshot"
	"sysyc/internal/testkit"
	"sysyc/internal/trace"
)

// Mode selects what a run does with each unit.
type Mode uint8

const (
	// ModeDump checks and dumps every unit.
	ModeDump Mode = iota
	// ModeCheck only verifies tree invariants.
	ModeCheck
)

// Options configures DumpFile and DumpFiles.
type Options struct {
	Mode           Mode
	Jobs           int // 0 = GOMAXPROCS
	MaxDiagnostics int
	Timer          *observ.Timer
	Observer       PhaseObserver
}

// UnitResult is the outcome for one unit. Output is nil unless the dump succeeded.
type UnitResult struct {
	Path   string
	Output []byte
	Bag    *diag.Bag
	Stats  testkit.TreeStats
}

// Failed reports whether the unit produced an error diagnostic.
func (r *UnitResult) Failed() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// DumpFile loads one snapshot and runs the configured passes on it.
// Problems with the unit go to the result's Bag; the error return is
// reserved for cancellation.
func DumpFile(ctx context.Context, path string, opts Options) (UnitResult, error) {
	res := UnitResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeUnit, path, trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)
	defer func() {
		span.WithExtra("diagnostics", fmt.Sprint(res.Bag.Len())).End(status(&res))
	}()

	var unit *ast.Unit
	err := runPhase(path, "load", opts, func() error {
		var err error
		unit, err = snapshot.ReadFile(path)
		return err
	})
	if err != nil {
		res.Bag.AddError(path, err)
		return res, nil
	}

	err = runPhase(path, "check", opts, func() error {
		var err error
		res.Stats, err = testkit.CheckTree(unit.Builder, unit.Symbols)
		return err
	})
	if err != nil {
		res.Bag.AddError(path, err)
		return res, nil
	}
	span.WithExtra("nodes", fmt.Sprint(res.Stats.Reachable))
	if opts.Mode == ModeCheck {
		return res, nil
	}

	var buf bytes.Buffer
	err = runPhase(path, "dump", opts, func() error {
		return diagfmt.FormatUnitTrace(ctx, &buf, unit)
	})
	if err != nil {
		res.Bag.AddError(path, err)
		return res, nil
	}
	res.Output = buf.Bytes()
	return res, nil
}

// runPhase times fn and reports it to the observer.
func runPhase(unit, name string, opts Options, fn func() error) error {
	if opts.Observer != nil {
		opts.Observer(PhaseEvent{Unit: unit, Name: name, Status: PhaseStart})
	}
	start := time.Now()
	done := opts.Timer.Track(name + " " + unit)
	err := fn()
	note := ""
	if err != nil {
		note = diag.CodeOf(err).ID()
	}
	done(note)
	if opts.Observer != nil {
		opts.Observer(PhaseEvent{Unit: unit, Name: name, Status: PhaseEnd, Elapsed: time.Since(start), Failed: err != nil})
	}
	return err
}

func status(res *UnitResult) string {
	if res.Failed() {
		return "failed"
	}
	return "ok"
}
