// Implements Project, spec.md §4.7's replay projection: given a live
// state snapshot and a requested logical time t, reconstruct an
// equivalent past-tick view without re-running the simulation. Grounded
// on the teacher's sim/trace package shape (a pure data package with no
// dependency on the simulator, only on the recorded shape it reads),
// repurposed from decision-trace recording to state-history projection.

package replay

import (
	"fmt"

	"github.com/ticksim/ticksim/sim"
)

// OutOfRangeError signals a replay request for a time outside
// [0, replayMax].
type OutOfRangeError struct {
	Requested int64
	Max       int64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("replay time %d out of range [0, %d]", e.Requested, e.Max)
}

// replayNoteFmt formats the line prepended to the projected event log whenever the
// requested time differs from the live state's current time, per
// spec.md §4.7's warning requirement.
const replayNoteFmt = "REPLAY: t=%d view — ready/sys/user/io queue snapshots reflect the latest known state, not tick %d"

// ReplayMax returns the largest valid replay time for state, per
// spec.md §4.7: max(state.Time, |gantt|-1, |io_gantt|-1, |mem_gantt|-1).
func ReplayMax(state sim.StateSnapshot) int64 {
	max := state.Time
	if v := int64(len(state.Gantt)) - 1; v > max {
		max = v
	}
	if v := int64(len(state.IOGantt)) - 1; v > max {
		max = v
	}
	if v := int64(len(state.MemGantt)) - 1; v > max {
		max = v
	}
	if max < 0 {
		max = 0
	}
	return max
}

// Project constructs a derived StateSnapshot reflecting what the
// simulator looked like at logical time t: the running pid comes from
// gantt[t], the I/O active pid from io_gantt[t], the memory timeline is
// truncated to [0..t], and the event log is filtered to entries whose
// parsed tick is <= t. Queue contents (ready/sys/user/io_queue) are not
// reconstructed — they carry over from state unchanged, since the
// timelines alone do not record historical queue membership — and a
// warning line is prepended to the event log whenever t != state.Time.
func Project(state sim.StateSnapshot, t int64) (sim.StateSnapshot, error) {
	replayMax := ReplayMax(state)
	if t < 0 || t > replayMax {
		return sim.StateSnapshot{}, &OutOfRangeError{Requested: t, Max: replayMax}
	}

	derived := state
	derived.Time = t
	derived.Gantt = append([]string(nil), state.Gantt...)
	derived.IOGantt = append([]string(nil), state.IOGantt...)

	derived.Running = tokenAt(state.Gantt, t)
	derived.IOActive = tokenAt(state.IOGantt, t)

	if end := int(t) + 1; end <= len(state.MemGantt) {
		derived.MemGantt = append([]string(nil), state.MemGantt[:end]...)
	} else {
		derived.MemGantt = append([]string(nil), state.MemGantt...)
	}

	filtered := make([]string, 0, len(state.EventLog))
	for _, line := range state.EventLog {
		rec, err := sim.ParseTransitionLine(line)
		if err != nil {
			continue
		}
		if rec.Time <= t {
			filtered = append(filtered, line)
		}
	}
	if t != state.Time {
		note := fmt.Sprintf(replayNoteFmt, t, t)
		filtered = append([]string{note}, filtered...)
	}
	derived.EventLog = filtered

	return derived, nil
}

// tokenAt returns timeline[t] with "IDLE" mapped to "", or "" if t is
// past the end of the recorded timeline.
func tokenAt(timeline []string, t int64) string {
	if t < 0 || int(t) >= len(timeline) {
		return ""
	}
	tok := timeline[t]
	if tok == "IDLE" {
		return ""
	}
	return tok
}
