// Regression tests for spec.md §8's six concrete scenarios (S1-S6), run
// literally against the Scheduler rather than re-derived from first
// principles, so a change to phase ordering or a policy's tie-break rule
// trips a test naming the exact tick it broke.
package sim

import (
	"testing"

	"github.com/ticksim/ticksim/internal/testutil"
)

func TestScenario_S1_FCFSNoIO(t *testing.T) {
	sched := newTestScheduler(t)
	must(t, sched.Configure(SchedulerConfig{Policy: FCFS, TickMS: 100}, nil))
	must(t, sched.AddProcess(ProcessSpec{PID: "P1", Arrival: 0, Queue: QueueUser, Bursts: []int64{5}}))
	must(t, sched.AddProcess(ProcessSpec{PID: "P2", Arrival: 1, Queue: QueueUser, Bursts: []int64{3}}))
	must(t, sched.AddProcess(ProcessSpec{PID: "P3", Arrival: 2, Queue: QueueUser, Bursts: []int64{1}}))

	if _, err := sched.Run(9); err != nil {
		t.Fatalf("Run: %v", err)
	}

	testutil.AssertStringSlicesEqual(t, "S1 gantt", []string{"P1", "P1", "P1", "P1", "P1", "P2", "P2", "P2", "P3"}, sched.CPUTimeline())

	procs := sched.AllProcesses()
	wantWT := map[string]int64{"P1": 0, "P2": 4, "P3": 6}
	wantTAT := map[string]int64{"P1": 5, "P2": 7, "P3": 7}
	for _, p := range procs {
		pm := ComputeProcessMetrics(p)
		testutil.AssertInt64Equal(t, "S1 WT "+p.PID, wantWT[p.PID], pm.WaitingTime)
		testutil.AssertInt64Equal(t, "S1 TAT "+p.PID, wantTAT[p.PID], pm.TurnaroundTime)
	}
}

func TestScenario_S2_RRQuantum2(t *testing.T) {
	sched := newTestScheduler(t)
	must(t, sched.Configure(SchedulerConfig{Policy: RR, TickMS: 100, Quantum: 2}, nil))
	must(t, sched.AddProcess(ProcessSpec{PID: "P1", Arrival: 0, Queue: QueueUser, Bursts: []int64{5}}))
	must(t, sched.AddProcess(ProcessSpec{PID: "P2", Arrival: 1, Queue: QueueUser, Bursts: []int64{3}}))
	must(t, sched.AddProcess(ProcessSpec{PID: "P3", Arrival: 2, Queue: QueueUser, Bursts: []int64{1}}))

	if _, err := sched.Run(9); err != nil {
		t.Fatalf("Run: %v", err)
	}

	testutil.AssertStringSlicesEqual(t, "S2 gantt", []string{"P1", "P1", "P2", "P2", "P3", "P1", "P1", "P2", "P1"}, sched.CPUTimeline())

	byPID := make(map[string]*Process)
	for _, p := range sched.AllProcesses() {
		byPID[p.PID] = p
	}
	testutil.AssertInt64Equal(t, "S2 completion P3", 5, byPID["P3"].Completion)
	testutil.AssertInt64Equal(t, "S2 completion P2", 8, byPID["P2"].Completion)
	testutil.AssertInt64Equal(t, "S2 completion P1", 9, byPID["P1"].Completion)
}

func TestScenario_S3_SJFTieBreak(t *testing.T) {
	sched := newTestScheduler(t)
	must(t, sched.Configure(SchedulerConfig{Policy: SJF, TickMS: 100}, nil))
	must(t, sched.AddProcess(ProcessSpec{PID: "P1", Arrival: 0, Queue: QueueUser, Bursts: []int64{7}}))
	must(t, sched.AddProcess(ProcessSpec{PID: "P2", Arrival: 2, Queue: QueueUser, Bursts: []int64{4}}))
	must(t, sched.AddProcess(ProcessSpec{PID: "P3", Arrival: 4, Queue: QueueUser, Bursts: []int64{1}}))
	must(t, sched.AddProcess(ProcessSpec{PID: "P4", Arrival: 5, Queue: QueueUser, Bursts: []int64{4}}))

	// P1 runs ticks [0,7). At t=7 the ready set is {P2,P3,P4}; shortest
	// burst (P3, len 1) dispatches next, then P2 (tied length with P4,
	// earlier arrival wins).
	testutil.AssertStringSlicesEqual(t, "S3 gantt through tick 12", []string{
		"P1", "P1", "P1", "P1", "P1", "P1", "P1", "P3", "P2", "P2", "P2", "P2",
	}, func() []string {
		if _, err := sched.Run(12); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return sched.CPUTimeline()
	}())
}

func TestScenario_S4_IOInterleave(t *testing.T) {
	sched := newTestScheduler(t)
	must(t, sched.Configure(SchedulerConfig{Policy: FCFS, TickMS: 100}, nil))
	must(t, sched.AddProcess(ProcessSpec{PID: "P1", Arrival: 0, Queue: QueueUser, Bursts: []int64{3, 2, 2}}))
	must(t, sched.AddProcess(ProcessSpec{PID: "P2", Arrival: 0, Queue: QueueUser, Bursts: []int64{2}}))

	if _, err := sched.Run(5); err != nil {
		t.Fatalf("Run: %v", err)
	}
	testutil.AssertStringSlicesEqual(t, "S4 gantt", []string{"P1", "P1", "P1", "P2", "P2"}, sched.CPUTimeline())
	testutil.AssertStringSlicesEqual(t, "S4 io gantt", []string{"IDLE", "IDLE", "IDLE", "P1", "P1"}, sched.IOTimeline())
}

func TestScenario_S6_PreemptivePriority(t *testing.T) {
	sched := newTestScheduler(t)
	must(t, sched.Configure(SchedulerConfig{Policy: PriorityP, TickMS: 100}, nil))
	must(t, sched.AddProcess(ProcessSpec{PID: "P1", Arrival: 0, Priority: 5, Queue: QueueUser, Bursts: []int64{8}}))
	must(t, sched.AddProcess(ProcessSpec{PID: "P2", Arrival: 3, Priority: 1, Queue: QueueUser, Bursts: []int64{4}}))

	if _, err := sched.Run(12); err != nil {
		t.Fatalf("Run: %v", err)
	}

	byPID := make(map[string]*Process)
	for _, p := range sched.AllProcesses() {
		byPID[p.PID] = p
	}
	testutil.AssertInt64Equal(t, "S6 completion P2", 7, byPID["P2"].Completion)
	testutil.AssertInt64Equal(t, "S6 completion P1", 12, byPID["P1"].Completion)
}
