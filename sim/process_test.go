package sim

import "testing"

func TestNewProcess_ValidBursts(t *testing.T) {
	p, err := NewProcess("P1", 0, 1, QueueUser, []int64{4, 2, 6}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.State != StateNew {
		t.Errorf("state = %v, want NEW", p.State)
	}
	if p.Remaining != 4 {
		t.Errorf("remaining = %d, want 4", p.Remaining)
	}
	if !p.CurrentBurstIsCPU() {
		t.Errorf("burst 0 should be a CPU burst")
	}
}

func TestNewProcess_RejectsEmptyPID(t *testing.T) {
	_, err := NewProcess("", 0, 1, QueueUser, []int64{4}, nil)
	if _, ok := err.(*InvalidPidError); !ok {
		t.Fatalf("err = %v, want *InvalidPidError", err)
	}
}

func TestNewProcess_RejectsEmptyBursts(t *testing.T) {
	_, err := NewProcess("P1", 0, 1, QueueUser, nil, nil)
	if _, ok := err.(*InvalidBurstsError); !ok {
		t.Fatalf("err = %v, want *InvalidBurstsError", err)
	}
}

func TestNewProcess_RejectsEvenLengthBursts(t *testing.T) {
	_, err := NewProcess("P1", 0, 1, QueueUser, []int64{4, 2}, nil)
	if _, ok := err.(*InvalidBurstsError); !ok {
		t.Fatalf("err = %v, want *InvalidBurstsError", err)
	}
}

func TestNewProcess_RejectsNonPositiveBurst(t *testing.T) {
	_, err := NewProcess("P1", 0, 1, QueueUser, []int64{4, 0, 2}, nil)
	if _, ok := err.(*InvalidBurstsError); !ok {
		t.Fatalf("err = %v, want *InvalidBurstsError", err)
	}
}

func TestProcess_CurrentBurstIsCPU_AlternatesByIndex(t *testing.T) {
	p, _ := NewProcess("P1", 0, 1, QueueUser, []int64{4, 2, 6}, nil)
	p.BurstIndex = 1
	if p.CurrentBurstIsCPU() {
		t.Errorf("index 1 should be an I/O burst")
	}
	p.BurstIndex = 2
	if !p.CurrentBurstIsCPU() {
		t.Errorf("index 2 should be a CPU burst")
	}
}

func TestProcess_HasNextBurst(t *testing.T) {
	p, _ := NewProcess("P1", 0, 1, QueueUser, []int64{4, 2, 6}, nil)
	p.BurstIndex = 1
	if !p.HasNextBurst() {
		t.Errorf("expected a next burst after index 1")
	}
	p.BurstIndex = 2
	if p.HasNextBurst() {
		t.Errorf("index 2 is the last burst, expected no next burst")
	}
}

func TestProcess_NextCPUBurstLen(t *testing.T) {
	p, _ := NewProcess("P1", 0, 1, QueueUser, []int64{4, 2, 6}, nil)
	if got := p.NextCPUBurstLen(); got != 4 {
		t.Errorf("got %d, want 4", got)
	}
	p.BurstIndex = 1
	if got := p.NextCPUBurstLen(); got != 0 {
		t.Errorf("I/O burst index should yield 0, got %d", got)
	}
}

func TestProcess_FaultPenalty_FallsBackToGlobal(t *testing.T) {
	p, _ := NewProcess("P1", 0, 1, QueueUser, []int64{4}, nil)
	if got := p.FaultPenalty(5); got != 5 {
		t.Errorf("got %d, want global fallback 5", got)
	}

	p.Memory = &MemoryProfile{FaultPenalty: 9}
	if got := p.FaultPenalty(5); got != 9 {
		t.Errorf("got %d, want per-process override 9", got)
	}
}
