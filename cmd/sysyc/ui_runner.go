package main

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sysyc/internal/driver"
	"sysyc/internal/ui"
)

type batchOutcome struct {
	results []driver.UnitResult
	err     error
}

// runBatchWithUI runs the batch while a progress model follows its phase events.
func runBatchWithUI(ctx context.Context, title, final string, paths []string, opts driver.Options) ([]driver.UnitResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.PhaseEvent, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Observer = func(ev driver.PhaseEvent) { events <- ev }
		res, err := driver.DumpFiles(ctx, paths, optsCopy)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, final, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	finalModel, uiErr := program.Run()
	// the batch goroutine must never block on a full channel once the view is gone
	go func() {
		for range events {
		}
	}()
	if uiErr != nil || ui.Interrupted(finalModel) {
		cancel()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	if ui.Interrupted(finalModel) {
		return outcome.results, errors.New("interrupted")
	}
	return outcome.results, outcome.err
}
