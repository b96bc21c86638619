package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sysyc/internal/driver"
)

var checkJobs int

func init() {
	checkCmd.Flags().IntVarP(&checkJobs, "jobs", "j", 0, "units processed in parallel (0 = [dump].jobs or GOMAXPROCS)")
}

var checkCmd = &cobra.Command{
	Use:   "check [unit.mp|dir]...",
	Short: "Verify tree invariants of each unit without printing it",
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := runUnits(cmd, args, driver.ModeCheck, checkJobs)
		if err != nil {
			return err
		}
		if !boolFlag(cmd, "quiet") {
			out := cmd.OutOrStdout()
			for _, res := range run.results {
				if res.Failed() {
					continue
				}
				fmt.Fprintf(out, "%s: ok (%d of %d nodes reachable)\n",
					res.Path, res.Stats.Reachable, res.Stats.Allocated)
			}
		}
		return run.report(cmd)
	},
}
