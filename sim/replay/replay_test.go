package replay

import (
	"testing"

	"github.com/ticksim/ticksim/sim"
)

func sampleState() sim.StateSnapshot {
	return sim.StateSnapshot{
		Time:     3,
		Gantt:    []string{"P1", "P1", "IDLE", "P2"},
		IOGantt:  []string{"IDLE", "IDLE", "P1", "IDLE"},
		MemGantt: []string{"HIT:P1", "FAULT:P1", "HIT:P1", "HIT:P2"},
		EventLog: []string{
			"t=0: P1 NEW -> READY",
			"t=1: P1 READY -> RUNNING",
			"t=3: P2 READY -> RUNNING",
		},
		Running:  "P2",
		IOActive: "",
	}
}

func TestReplayMax_UsesLongestTimeline(t *testing.T) {
	state := sampleState()
	if got := ReplayMax(state); got != 3 {
		t.Errorf("ReplayMax = %d, want 3", got)
	}
}

func TestReplayMax_LongerGanttWinsOverTime(t *testing.T) {
	state := sampleState()
	state.Time = 1
	state.Gantt = append(state.Gantt, "P3", "P3") // len 6, index max 5
	if got := ReplayMax(state); got != 5 {
		t.Errorf("ReplayMax = %d, want 5 (longest timeline wins)", got)
	}
}

func TestProject_PastTickReconstructsRunningAndIOActive(t *testing.T) {
	state := sampleState()
	derived, err := Project(state, 2)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if derived.Time != 2 {
		t.Errorf("Time = %d, want 2", derived.Time)
	}
	if derived.Running != "" { // gantt[2] == "IDLE" maps to ""
		t.Errorf("Running = %q, want empty (IDLE)", derived.Running)
	}
	if derived.IOActive != "P1" {
		t.Errorf("IOActive = %q, want P1", derived.IOActive)
	}
}

func TestProject_TruncatesMemGanttToRequestedTick(t *testing.T) {
	state := sampleState()
	derived, err := Project(state, 1)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(derived.MemGantt) != 2 {
		t.Fatalf("len(MemGantt) = %d, want 2", len(derived.MemGantt))
	}
	if derived.MemGantt[1] != "FAULT:P1" {
		t.Errorf("MemGantt[1] = %q, want FAULT:P1", derived.MemGantt[1])
	}
}

func TestProject_FiltersEventLogToRequestedTick(t *testing.T) {
	state := sampleState()
	derived, err := Project(state, 1)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	// One warning line prepended (t=1 != state.Time=3) plus the two events at t<=1.
	if len(derived.EventLog) != 3 {
		t.Fatalf("EventLog = %v, want 3 lines (1 warning + 2 events)", derived.EventLog)
	}
	if derived.EventLog[0] != "REPLAY: t=1 view — ready/sys/user/io queue snapshots reflect the latest known state, not tick 1" {
		t.Errorf("unexpected warning line: %q", derived.EventLog[0])
	}
}

func TestProject_NoWarningWhenRequestingCurrentTime(t *testing.T) {
	state := sampleState()
	derived, err := Project(state, state.Time)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	for _, line := range derived.EventLog {
		if len(line) >= 7 && line[:7] == "REPLAY:" {
			t.Errorf("did not expect a warning line when t == state.Time, got %q", line)
		}
	}
}

func TestProject_RejectsNegativeTime(t *testing.T) {
	if _, err := Project(sampleState(), -1); err == nil {
		t.Fatalf("expected an error for a negative replay time")
	}
}

func TestProject_RejectsTimeBeyondReplayMax(t *testing.T) {
	state := sampleState()
	if _, err := Project(state, ReplayMax(state)+1); err == nil {
		t.Fatalf("expected an error for a time beyond ReplayMax")
	}
}

func TestTokenAt_PastEndOfTimelineReturnsEmpty(t *testing.T) {
	if got := tokenAt([]string{"P1"}, 5); got != "" {
		t.Errorf("tokenAt past the end = %q, want empty", got)
	}
}
