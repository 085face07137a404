// Implements the Comparator of spec.md §4.5: run every supported CPU
// policy on the same workload snapshot and report each run's metrics,
// grounded on original_source/backend/app/engine/compare.py's
// run_algorithm_once/compare_all_algorithms shape (one fresh engine
// instance per algorithm, run to completion under a step budget, results
// collected into a per-algorithm table).

package compare

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ticksim/ticksim/sim"
	"github.com/ticksim/ticksim/sim/memory"
)

// maxSteps bounds each policy run, mirroring compare.py's max_steps guard
// against a workload that never drains.
const maxSteps = 200000

// MemoryConfig carries the paged-memory parameters a comparator run should
// apply uniformly across every policy, or nil for CPU-only comparison.
type MemoryConfig struct {
	PageSize          int64
	FrameCount        int
	ReplacementPolicy sim.ReplacementPolicy
	FaultPenalty      int
}

// PolicyResult is one policy's outcome from a comparator run.
type PolicyResult struct {
	Policy      sim.PolicyName
	Metrics     sim.AggregateMetrics
	PerProcess  []sim.ProcessMetrics
	WaitTimes   []float64
	TicksRun    int
	AllFinished bool
}

// allPolicies is the fixed set every comparator run evaluates, in the
// order spec.md §4.1's policy-selection table lists them.
var allPolicies = []sim.PolicyName{
	sim.FCFS, sim.SJF, sim.PriorityNP, sim.PriorityP, sim.RR, sim.MLQ,
}

// RunAll runs every policy in allPolicies against the same specs, using
// quantum for RR/MLQ and memCfg (nil for CPU-only) for every run. When
// memCfg requests OPT replacement, the full reference string is
// precomputed once and shared across every policy run — the reference
// stream depends only on each process's own address generator, not on
// scheduling order, so it is valid to reuse across all six runs.
func RunAll(log *logrus.Logger, specs []sim.ProcessSpec, quantum int64, memCfg *MemoryConfig) ([]PolicyResult, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	var future memory.FutureRefs
	if memCfg != nil && memCfg.ReplacementPolicy == sim.ReplOPT {
		future = memory.PrecomputeFutureRefs(specs, memCfg.PageSize)
	}

	results := make([]PolicyResult, 0, len(allPolicies))
	for _, policyName := range allPolicies {
		res, err := runOne(log, policyName, specs, quantum, memCfg, future)
		if err != nil {
			return nil, fmt.Errorf("running policy %s: %w", policyName, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func runOne(log *logrus.Logger, policyName sim.PolicyName, specs []sim.ProcessSpec, quantum int64, memCfg *MemoryConfig, future memory.FutureRefs) (PolicyResult, error) {
	sched := sim.NewScheduler(log)
	cfg := sim.SchedulerConfig{
		Policy:  policyName,
		TickMS:  100,
		Quantum: quantum,
	}

	var memSys sim.MemorySystem
	if memCfg != nil {
		cfg.MemoryMode = sim.MemoryFull
		cfg.PageSize = memCfg.PageSize
		cfg.FrameCount = memCfg.FrameCount
		cfg.ReplacementPolicy = memCfg.ReplacementPolicy
		cfg.GlobalFaultPenalty = memCfg.FaultPenalty
		if memCfg.ReplacementPolicy == sim.ReplOPT {
			cfg.AllowOfflineOPT = true
		}
		sys, err := memory.New(log, memCfg.ReplacementPolicy, memCfg.FrameCount, memCfg.PageSize, memCfg.FaultPenalty, future)
		if err != nil {
			return PolicyResult{}, err
		}
		memSys = sys
	}

	if err := sched.Configure(cfg, memSys); err != nil {
		return PolicyResult{}, err
	}
	for _, spec := range specs {
		if err := sched.AddProcess(spec); err != nil {
			return PolicyResult{}, err
		}
	}

	ticksRun, err := sched.Run(maxSteps)
	if err != nil {
		return PolicyResult{}, err
	}

	procs := sched.AllProcesses()
	perProcess := make([]sim.ProcessMetrics, len(procs))
	waitTimes := make([]float64, len(procs))
	allFinished := true
	for i, p := range procs {
		pm := sim.ComputeProcessMetrics(p)
		perProcess[i] = pm
		waitTimes[i] = float64(pm.WaitingTime)
		if !pm.Done {
			allFinished = false
		}
	}

	return PolicyResult{
		Policy:      policyName,
		Metrics:     sim.ComputeAggregateMetrics(procs, sched.Now(), sched.CPUBusyTicks()),
		PerProcess:  perProcess,
		WaitTimes:   waitTimes,
		TicksRun:    ticksRun,
		AllFinished: allFinished,
	}, nil
}
