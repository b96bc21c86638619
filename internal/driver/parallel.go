package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"sysyc/internal/trace"
)

// DumpFiles runs DumpFile over paths in parallel. Each unit gets its own
// builder, symbol table and type registry; results come back in input order.
func DumpFiles(ctx context.Context, paths []string, opts Options) ([]UnitResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, modeName(opts.Mode), trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]UnitResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			res, err := DumpFile(gctx, path, opts)
			results[i] = res
			return err
		})
	}

	err := g.Wait()
	failed := 0
	for i := range results {
		if results[i].Failed() {
			failed++
		}
	}
	detail := "ok"
	if err != nil {
		detail = "cancelled"
	}
	span.WithExtra("units", fmt.Sprint(len(paths))).
		WithExtra("failed", fmt.Sprint(failed)).
		End(detail)
	return results, err
}

func modeName(m Mode) string {
	if m == ModeCheck {
		return "check"
	}
	return "dump"
}
