// Scheduler-config flag registration and SchedulerConfig assembly for the
// `run` subcommand (`compare` registers its own --workload flag, bound to
// the same workloadPath variable), grounded on the teacher's cmd/root.go flag
// registration style (package-level flag vars bound in init) plus
// sim/config.go's YAML-file-then-flags precedence order (§4.8.3).

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ticksim/ticksim/sim"
)

var (
	configPath       string
	workloadPath     string
	policyFlag       string
	tickMSFlag       int64
	quantumFlag      int64
	memoryModeFlag   string
	pageSizeFlag     int64
	framesFlag       int
	memAlgoFlag      string
	faultPenaltyFlag int
)

// registerConfigFlags attaches the shared scheduler-config flags to cmd.
func registerConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a scheduler config YAML file")
	cmd.Flags().StringVar(&workloadPath, "workload", "", "Path to a workload YAML file (process list)")
	cmd.Flags().StringVar(&policyFlag, "policy", "", "CPU scheduling policy (FCFS, SJF, PRIORITY-NP, PRIORITY-P, RR, MLQ)")
	cmd.Flags().Int64Var(&tickMSFlag, "tick-ms", 0, "Pacing hint in milliseconds")
	cmd.Flags().Int64Var(&quantumFlag, "quantum", 0, "Quantum for RR/MLQ")
	cmd.Flags().StringVar(&memoryModeFlag, "memory-mode", "", "Memory mode (OFF, FULL)")
	cmd.Flags().Int64Var(&pageSizeFlag, "page-size", 0, "Page size in bytes (power of two)")
	cmd.Flags().IntVar(&framesFlag, "frames", 0, "Number of physical frames")
	cmd.Flags().StringVar(&memAlgoFlag, "mem-algo", "", "Replacement policy (FIFO, LRU, LFU, CLOCK)")
	cmd.Flags().IntVar(&faultPenaltyFlag, "fault-penalty", 0, "Global page fault penalty in ticks")
}

// buildSchedulerConfig assembles a SchedulerConfig from --config (if any)
// with explicitly-set flags taking precedence, per §4.8.3.
func buildSchedulerConfig(cmd *cobra.Command) (sim.SchedulerConfig, error) {
	cfg := sim.DefaultSchedulerConfig()
	if configPath != "" {
		loaded, err := sim.LoadSchedulerConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("policy") {
		cfg.Policy = sim.PolicyName(policyFlag)
	}
	if flags.Changed("tick-ms") {
		cfg.TickMS = tickMSFlag
	}
	if flags.Changed("quantum") {
		cfg.Quantum = quantumFlag
	}
	if flags.Changed("memory-mode") {
		cfg.MemoryMode = sim.MemoryMode(memoryModeFlag)
	}
	if flags.Changed("page-size") {
		cfg.PageSize = pageSizeFlag
	}
	if flags.Changed("frames") {
		cfg.FrameCount = framesFlag
	}
	if flags.Changed("mem-algo") {
		cfg.ReplacementPolicy = sim.ReplacementPolicy(memAlgoFlag)
	}
	if flags.Changed("fault-penalty") {
		cfg.GlobalFaultPenalty = faultPenaltyFlag
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
