package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sysyc/internal/diag"
	"sysyc/internal/diagfmt"
	"sysyc/internal/driver"
	"sysyc/internal/observ"
	"sysyc/internal/project"
	"sysyc/internal/trace"
)

// unitRun is what dump and check share: config, tracing, input expansion
// and the batch driver.
type unitRun struct {
	manifest *project.Manifest
	results  []driver.UnitResult
	timer    *observ.Timer
	failed   int
}

func runUnits(cmd *cobra.Command, args []string, mode driver.Mode, jobs int) (*unitRun, error) {
	manifest, err := loadManifest(cmd)
	if err != nil {
		return nil, err
	}
	cleanup, err := setupTracing(cmd, manifest.Config.Trace)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, cmd.Name(), 0)
	ctx = trace.WithSpan(ctx, span)

	inputs := args
	if len(inputs) == 0 {
		inputs = manifest.UnitPaths()
	}
	if len(inputs) == 0 {
		span.End("no input")
		return nil, errors.New("no units given and no [dump].units in sysyc.toml")
	}
	paths, err := driver.ExpandInputs(inputs)
	if err != nil {
		span.End("failed")
		return nil, err
	}

	if jobs <= 0 {
		jobs = manifest.Config.Dump.Jobs
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	uiValue, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	uiChoice, err := readUIMode(uiValue)
	if err != nil {
		return nil, err
	}

	run := &unitRun{manifest: manifest}
	if boolFlag(cmd, "timings") {
		run.timer = observ.NewTimer()
	}
	opts := driver.Options{
		Mode:           mode,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Timer:          run.timer,
	}
	if len(paths) > 1 && !boolFlag(cmd, "quiet") && shouldUseTUI(uiChoice) {
		final := "dump"
		if mode == driver.ModeCheck {
			final = "check"
		}
		run.results, err = runBatchWithUI(ctx, cmd.Name(), final, paths, opts)
	} else {
		run.results, err = driver.DumpFiles(ctx, paths, opts)
	}
	for i := range run.results {
		if run.results[i].Failed() {
			run.failed++
		}
	}
	span.WithExtra("units", fmt.Sprint(len(paths))).End(fmt.Sprintf("%d failed", run.failed))
	if err != nil {
		return nil, err
	}
	return run, nil
}

// report prints collected diagnostics and timings to stderr.
func (r *unitRun) report(cmd *cobra.Command) error {
	useColor, err := colorEnabled(cmd, os.Stderr)
	if err != nil {
		return err
	}
	bag := diag.NewBag(len(r.results) * 100)
	for _, res := range r.results {
		for _, d := range res.Bag.Items() {
			bag.Add(d)
		}
	}
	bag.Sort()
	if err := diagfmt.Pretty(cmd.ErrOrStderr(), bag, diagfmt.PrettyOpts{Color: useColor}); err != nil {
		return err
	}
	if r.timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), r.timer.Summary())
	}
	if r.failed > 0 {
		return fmt.Errorf("%d of %d units failed", r.failed, len(r.results))
	}
	return nil
}
