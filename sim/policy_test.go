package sim

import "testing"

func TestNewPolicy_KnownNames(t *testing.T) {
	cases := []PolicyName{FCFS, SJF, PriorityNP, PriorityP}
	for _, name := range cases {
		p, err := NewPolicy(name, 0)
		if err != nil {
			t.Errorf("NewPolicy(%s): unexpected error %v", name, err)
			continue
		}
		if p.Name() != name {
			t.Errorf("NewPolicy(%s).Name() = %s", name, p.Name())
		}
	}
}

func TestNewPolicy_RRRequiresQuantum(t *testing.T) {
	if _, err := NewPolicy(RR, 0); err == nil {
		t.Fatalf("expected an error for RR with quantum 0")
	}
	p, err := NewPolicy(RR, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.QuantumDriven() || p.Quantum() != 3 {
		t.Errorf("RR policy quantum = %d, quantum-driven = %v", p.Quantum(), p.QuantumDriven())
	}
}

func TestNewPolicy_MLQRequiresQuantum(t *testing.T) {
	if _, err := NewPolicy(MLQ, 0); err == nil {
		t.Fatalf("expected an error for MLQ with quantum 0")
	}
}

func TestNewPolicy_UnknownName(t *testing.T) {
	if _, err := NewPolicy(PolicyName("BOGUS"), 1); err == nil {
		t.Fatalf("expected an error for an unknown policy name")
	}
}

func TestIsValidPolicy(t *testing.T) {
	for _, name := range []PolicyName{FCFS, SJF, PriorityNP, PriorityP, RR, MLQ} {
		if !IsValidPolicy(name) {
			t.Errorf("IsValidPolicy(%s) = false, want true", name)
		}
	}
	if IsValidPolicy(PolicyName("NOPE")) {
		t.Errorf("IsValidPolicy(NOPE) = true, want false")
	}
}

func TestPriorityPPolicy_StrictlyBetterOnlyOnLowerPriority(t *testing.T) {
	p := priorityPPolicy{}
	running := mustProc(t, "R", 0, 5, QueueUser, []int64{4})
	better := mustProc(t, "B", 1, 2, QueueUser, []int64{4})
	tie := mustProc(t, "T", 1, 5, QueueUser, []int64{4})
	worse := mustProc(t, "W", 1, 9, QueueUser, []int64{4})

	if !p.StrictlyBetter(running, better) {
		t.Errorf("lower-priority candidate should preempt")
	}
	if p.StrictlyBetter(running, tie) {
		t.Errorf("equal-priority candidate must not preempt (ties never preempt)")
	}
	if p.StrictlyBetter(running, worse) {
		t.Errorf("higher-priority-value candidate should not preempt")
	}
}

func TestMLQPolicy_SysPreemptsRunningUser(t *testing.T) {
	p := mlqPolicy{quantum: 2}
	runningUser := mustProc(t, "U", 0, 0, QueueUser, []int64{4})
	sysArrival := mustProc(t, "S", 1, 0, QueueSys, []int64{4})
	userArrival := mustProc(t, "U2", 1, 0, QueueUser, []int64{4})

	if !p.StrictlyBetter(runningUser, sysArrival) {
		t.Errorf("SYS arrival should preempt a running USER process")
	}
	if p.StrictlyBetter(runningUser, userArrival) {
		t.Errorf("a USER arrival should not preempt a running USER process")
	}
}

func TestSjfLess_OrdersByBurstThenArrivalThenPid(t *testing.T) {
	short := mustProc(t, "A", 5, 0, QueueUser, []int64{2})
	long := mustProc(t, "B", 0, 0, QueueUser, []int64{9})
	if !sjfLess(short, long) {
		t.Errorf("shorter next burst should sort first regardless of arrival")
	}

	early := mustProc(t, "C", 0, 0, QueueUser, []int64{4})
	late := mustProc(t, "D", 1, 0, QueueUser, []int64{4})
	if !sjfLess(early, late) {
		t.Errorf("equal burst length should tie-break on arrival")
	}
}
