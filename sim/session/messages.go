// Defines one Go type per inbound command in spec.md §6's control-message
// table. Each implements Command by executing itself against a Session,
// the same shape as the teacher's Event interface (Timestamp/Execute)
// generalized from a scheduled-event queue to a directly-dispatched
// command loop — see sim/session/session.go.

package session

import "github.com/ticksim/ticksim/sim"

// Command is one inbound control message. Execute applies it to s and
// returns the resulting state snapshot, or an error if the command was
// rejected without mutating state.
type Command interface {
	Execute(s *Session) (sim.StateSnapshot, error)
}

// InitCommand resets the session to a fresh configuration and admits an
// initial process set.
type InitCommand struct {
	Policy             sim.PolicyName
	TickMS             int64
	Quantum            int64
	MemoryMode         sim.MemoryMode
	Frames             int
	MemAlgo            sim.ReplacementPolicy
	PageSize           int64
	GlobalFaultPenalty int
	Processes          []sim.ProcessSpec
}

func (c InitCommand) Execute(s *Session) (sim.StateSnapshot, error) {
	return s.applyInit(c)
}

// TickCommand advances the scheduler by exactly one tick.
type TickCommand struct{}

func (c TickCommand) Execute(s *Session) (sim.StateSnapshot, error) {
	return s.applyRun(1)
}

// RunCommand advances the scheduler by Steps ticks (default 1).
type RunCommand struct {
	Steps int
}

func (c RunCommand) Execute(s *Session) (sim.StateSnapshot, error) {
	steps := c.Steps
	if steps <= 0 {
		steps = 1
	}
	return s.applyRun(steps)
}

// AddProcessCommand appends a process to pending arrivals.
type AddProcessCommand struct {
	Process sim.ProcessSpec
}

func (c AddProcessCommand) Execute(s *Session) (sim.StateSnapshot, error) {
	if err := s.scheduler.AddProcess(c.Process); err != nil {
		return sim.StateSnapshot{}, err
	}
	return s.snapshot(), nil
}

// RemoveProcessCommand removes pid and re-admits the remaining processes
// from their original arrival times.
type RemoveProcessCommand struct {
	PID string
}

func (c RemoveProcessCommand) Execute(s *Session) (sim.StateSnapshot, error) {
	if err := s.scheduler.RemoveProcess(c.PID); err != nil {
		return sim.StateSnapshot{}, err
	}
	return s.snapshot(), nil
}

// ClearAddedCommand drops every process added after init/config.
type ClearAddedCommand struct{}

func (c ClearAddedCommand) Execute(s *Session) (sim.StateSnapshot, error) {
	s.scheduler.ClearUserAdded()
	return s.snapshot(), nil
}

// SetSpeedCommand updates the pacing hint observers use; it has no effect
// on simulation logic.
type SetSpeedCommand struct {
	TickMS int64
}

func (c SetSpeedCommand) Execute(s *Session) (sim.StateSnapshot, error) {
	s.scheduler.SetTickMS(c.TickMS)
	return s.snapshot(), nil
}

// SetQuantumCommand re-arms the quantum for RR/MLQ.
type SetQuantumCommand struct {
	Quantum int64
}

func (c SetQuantumCommand) Execute(s *Session) (sim.StateSnapshot, error) {
	cfg := s.scheduler.Config()
	cfg.Quantum = c.Quantum
	if err := s.scheduler.Reconfigure(cfg, s.mem); err != nil {
		return sim.StateSnapshot{}, err
	}
	return s.snapshot(), nil
}

// ConfigCommand live-reconfigures a subset of init's fields; nil fields
// are left unchanged. Time is preserved unless Policy changes.
type ConfigCommand struct {
	Policy             *sim.PolicyName
	TickMS             *int64
	Quantum            *int64
	MemoryMode         *sim.MemoryMode
	Frames             *int
	MemAlgo            *sim.ReplacementPolicy
	PageSize           *int64
	GlobalFaultPenalty *int
}

func (c ConfigCommand) Execute(s *Session) (sim.StateSnapshot, error) {
	return s.applyConfig(c)
}

// ResetCommand reverts to the initial configuration with no processes.
type ResetCommand struct{}

func (c ResetCommand) Execute(s *Session) (sim.StateSnapshot, error) {
	s.scheduler.ClearAllProcesses()
	return s.snapshot(), nil
}

// SyncCommand is a pure read: it broadcasts the current state unchanged.
type SyncCommand struct{}

func (c SyncCommand) Execute(s *Session) (sim.StateSnapshot, error) {
	return s.snapshot(), nil
}
