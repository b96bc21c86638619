package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sysyc/internal/project"
	"sysyc/internal/trace"
)

// setupTracing merges the [trace] section with the trace flags and attaches
// the tracer to the command context. Flags win over the file.
// It returns a cleanup function and an error if initialization fails.
func setupTracing(cmd *cobra.Command, cfg project.TraceConfig) (func(), error) {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	if traceOutput == "" {
		traceOutput = cfg.Output
	}
	if levelStr == "" {
		levelStr = cfg.Level
		// --trace alone means "phase", like asking for a log file
		if root.PersistentFlags().Changed("trace") && (levelStr == "" || levelStr == "off") {
			levelStr = "phase"
		}
	}
	if formatStr == "" {
		formatStr = cfg.Format
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace format: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Format:     format,
		OutputPath: traceOutput,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
