// The `compare` subcommand: run every CPU scheduling policy over one
// workload and print the Pareto front and a weighted ranking. Grounded on
// the teacher's cmd/root.go RunE structure, generalized from a single
// simulation run to sim/compare.RunAll's six-way sweep.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ticksim/ticksim/sim/compare"
)

var compareMode string

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every CPU scheduling policy over a workload and rank them",
	RunE: func(cmd *cobra.Command, args []string) error {
		if workloadPath == "" {
			return fmt.Errorf("--workload is required")
		}
		wl, err := compare.LoadWorkload(workloadPath)
		if err != nil {
			return err
		}

		log := logger()
		results, err := compare.RunAll(log, wl.Specs(), wl.Quantum, wl.MemoryConfigOrNil())
		if err != nil {
			return err
		}

		rows := compare.BuildRows(results)
		front := compare.ParetoFront(rows)
		sig := compare.ComputeWorkloadSignals(wl.Specs())
		ranked, confidence := compare.Rank(rows, compare.Mode(compareMode), sig)

		printComparison(cmd, rows, front, ranked, confidence)
		return nil
	},
}

func printComparison(cmd *cobra.Command, rows []compare.ComparisonRow, front []string, ranked []compare.RankResult, confidence compare.Confidence) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "policy      avg_wt   avg_tat  avg_rt   makespan p95_wt   max_wt   wt_std   cpu_util throughput")
	for _, r := range rows {
		fmt.Fprintf(out, "%-11s %-8.2f %-8.2f %-8.2f %-8.2f %-8.2f %-8.2f %-8.2f %-8.4f %-8.4f\n",
			r.Policy, r.AvgWT, r.AvgTAT, r.AvgRT, r.Makespan, r.P95WT, r.MaxWT, r.WTStdDev, r.CPUUtil, r.Throughput)
	}

	fmt.Fprintf(out, "\npareto front: %v\n", front)

	fmt.Fprintf(out, "\nranking (mode=%s, confidence=%s):\n", compareMode, confidence)
	for i, r := range ranked {
		fmt.Fprintf(out, "  %d. %s (score=%.4f)\n", i+1, r.Policy, r.Score)
	}
}

func init() {
	compareCmd.Flags().StringVar(&workloadPath, "workload", "", "Path to a workload YAML file (process list)")
	compareCmd.Flags().StringVar(&compareMode, "mode", "throughput", "Ranking mode (throughput, responsiveness, fairness)")
}
