// The `run` subcommand: configure a scheduler from a workload file and a
// policy, advance it, and print the resulting metrics. Grounded on the
// teacher's cmd/root.go RunE structure (build config, run, print summary
// to cmd.OutOrStdout()).

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ticksim/ticksim/sim"
	"github.com/ticksim/ticksim/sim/compare"
	"github.com/ticksim/ticksim/sim/memory"
)

var runSteps int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Advance a configured simulation and print its metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildSchedulerConfig(cmd)
		if err != nil {
			return err
		}
		if workloadPath == "" {
			return fmt.Errorf("--workload is required")
		}
		wl, err := compare.LoadWorkload(workloadPath)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("quantum") && wl.Quantum != 0 {
			cfg.Quantum = wl.Quantum
		}

		log := logger()
		sched := sim.NewScheduler(log)

		var memSys sim.MemorySystem
		if cfg.MemoryMode == sim.MemoryFull {
			m, err := memory.New(log, cfg.ReplacementPolicy, cfg.FrameCount, cfg.PageSize, cfg.GlobalFaultPenalty, nil)
			if err != nil {
				return err
			}
			memSys = m
		}

		if err := sched.Configure(cfg, memSys); err != nil {
			return err
		}
		for _, spec := range wl.Specs() {
			if err := sched.AddProcess(spec); err != nil {
				return err
			}
		}

		ran, err := sched.Run(runSteps)
		if err != nil {
			return err
		}

		printRunSummary(cmd, cfg, sched, ran)
		return nil
	},
}

func printRunSummary(cmd *cobra.Command, cfg sim.SchedulerConfig, sched *sim.Scheduler, ran int) {
	out := cmd.OutOrStdout()
	procs := sched.AllProcesses()

	completed := 0
	perProcess := make([]sim.ProcessMetrics, 0, len(procs))
	for _, p := range procs {
		pm := sim.ComputeProcessMetrics(p)
		if pm.Done {
			completed++
		}
		perProcess = append(perProcess, pm)
	}
	agg := sim.ComputeAggregateMetrics(procs, sched.Now(), sched.CPUBusyTicks())

	fmt.Fprintf(out, "policy=%s ticks_run=%d time=%d completed=%d/%d\n", cfg.Policy, ran, sched.Now(), completed, len(procs))
	fmt.Fprintf(out, "utilization=%.4f throughput=%.4f makespan=%d\n", agg.Utilization, agg.Throughput, agg.Makespan)
	fmt.Fprintf(out, "avg_wt=%.4f avg_tat=%.4f avg_rt=%.4f\n", agg.AvgWaitingTime, agg.AvgTurnaround, agg.AvgResponseTime)

	for _, pm := range perProcess {
		fmt.Fprintf(out, "  %s wt=%d tat=%d rt=%d done=%v\n", pm.PID, pm.WaitingTime, pm.TurnaroundTime, pm.ResponseTime, pm.Done)
	}

	if cfg.MemoryMode == sim.MemoryFull {
		snap := sched.Snapshot()
		if snap.Memory != nil {
			fmt.Fprintf(out, "faults=%d hits=%d hit_ratio=%.4f\n", snap.Memory.Faults, snap.Memory.Hits, snap.Memory.HitRatio)
		}
	}
}

func init() {
	registerConfigFlags(runCmd)
	runCmd.Flags().IntVar(&runSteps, "steps", 200000, "Maximum ticks to run")
}
