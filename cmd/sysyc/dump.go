package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sysyc/internal/driver"
)

var (
	dumpJobs   int
	dumpOutput string
)

func init() {
	dumpCmd.Flags().IntVarP(&dumpJobs, "jobs", "j", 0, "units processed in parallel (0 = [dump].jobs or GOMAXPROCS)")
	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "", "write traces to a file instead of [dump].output")
}

var dumpCmd = &cobra.Command{
	Use:   "dump [unit.mp|dir]...",
	Short: "Print the syntax tree trace of each unit",
	Long: `Loads unit snapshots, verifies the tree and prints one trace per unit.
With several units each trace is preceded by a "==> path <==" header.
Without arguments the units listed in sysyc.toml are used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := runUnits(cmd, args, driver.ModeDump, dumpJobs)
		if err != nil {
			return err
		}

		target := dumpOutput
		if target == "" {
			target = run.manifest.Config.Dump.Output
		}
		if err := writeTraces(cmd, target, run.results); err != nil {
			return err
		}
		return run.report(cmd)
	},
}

// writeTraces emits successful traces in input order.
func writeTraces(cmd *cobra.Command, target string, results []driver.UnitResult) (err error) {
	var out io.Writer = cmd.OutOrStdout()
	if target != "" && target != "-" {
		f, createErr := os.Create(target)
		if createErr != nil {
			return fmt.Errorf("failed to create %s: %w", target, createErr)
		}
		defer func() {
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
		}()
		out = f
	}

	w := bufio.NewWriter(out)
	headers := len(results) > 1
	for i, res := range results {
		if res.Output == nil {
			continue
		}
		if headers {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", res.Path)
		}
		if _, err := w.Write(res.Output); err != nil {
			return err
		}
	}
	return w.Flush()
}
