// Implements the Scheduler core: the fixed eight-phase Tick described in
// spec.md §4.1, grounded on the teacher's simulator.go/event.go for its
// overall shape (an owning driver type advancing one step at a time,
// recording transitions to a log) generalized from a heap-ordered future-
// event queue to a fixed per-tick phase pipeline, since this domain's time
// model is a uniform logical clock rather than a sparse event schedule.

package sim

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// ProcessSpec is the immutable descriptor a caller supplies to AddProcess.
// The Scheduler keeps specs separately from live *Process objects so that
// RemoveProcess, ClearUserAdded, and Reset can rebuild fresh runtime state
// without losing the original construction parameters.
type ProcessSpec struct {
	PID      string
	Arrival  int64
	Priority int64
	Queue    QueueClass
	Bursts   []int64
	Memory   *MemoryProfile
}

type trackedSpec struct {
	spec           ProcessSpec
	addedAfterInit bool
}

// Scheduler owns all simulation runtime state: the process set, ready
// structure, I/O device, memory subsystem, timelines, and event log. It is
// not safe for concurrent use — sim/session serializes access through a
// single-writer command loop.
type Scheduler struct {
	cfg    SchedulerConfig
	policy Policy
	mem    MemorySystem

	configured bool
	now        int64

	specs      []trackedSpec
	procsByPID map[string]*Process
	pending    []*Process // NEW, sorted by (arrival, pid) ascending
	memWaiters []*Process

	ready          Ready
	io             IODevice
	ioTickPID      string
	running        *Process
	quantumCounter int64

	cpuTimeline    []string
	ioTimeline     []string
	memTimeline    []string
	completedOrder []string
	cpuBusyTicks   int64

	events *EventLog
	log    *logrus.Logger
}

// NewScheduler constructs an unconfigured Scheduler. Call Configure before
// Tick.
func NewScheduler(log *logrus.Logger) *Scheduler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scheduler{
		procsByPID: make(map[string]*Process),
		events:     NewEventLog(0),
		log:        log,
	}
}

// Configure validates cfg, installs the named policy, and wires mem as the
// memory subsystem (nil is valid when cfg.MemoryMode is OFF). Configure
// rewinds time to 0 and rebuilds runtime state for every process spec
// already tracked; it does not itself add or discard processes.
func (s *Scheduler) Configure(cfg SchedulerConfig, mem MemorySystem) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	policy, err := NewPolicy(cfg.Policy, cfg.Quantum)
	if err != nil {
		return err
	}
	if cfg.MemoryMode == MemoryFull && mem == nil {
		return &ConfigError{Reason: "FULL memory mode requires a memory subsystem"}
	}
	s.cfg = cfg
	s.policy = policy
	s.mem = mem
	s.configured = true
	s.rebuild()
	s.log.WithField("policy", cfg.Policy).Info("scheduler configured")
	return nil
}

// Reconfigure applies a live `config` command: time is preserved unless
// the CPU policy itself changes, in which case it falls back to
// Configure's full rebuild (time rewinds to 0). This mirrors the
// original simulator's set_config behavior, which only tears down
// runtime state on an algorithm switch.
func (s *Scheduler) Reconfigure(cfg SchedulerConfig, mem MemorySystem) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !s.configured || cfg.Policy != s.cfg.Policy {
		return s.Configure(cfg, mem)
	}
	policy, err := NewPolicy(cfg.Policy, cfg.Quantum)
	if err != nil {
		return err
	}
	if cfg.MemoryMode == MemoryFull && mem == nil {
		return &ConfigError{Reason: "FULL memory mode requires a memory subsystem"}
	}
	s.cfg = cfg
	s.policy = policy
	s.mem = mem
	s.quantumCounter = policy.Quantum()
	s.log.WithField("policy", cfg.Policy).Info("scheduler reconfigured in place")
	return nil
}

// SetTickMS updates the pacing hint carried in the config without touching
// policy, memory, or any in-flight scheduling counter. Unlike Reconfigure,
// it never re-arms the quantum counter — pacing is purely a display concern.
func (s *Scheduler) SetTickMS(tickMS int64) {
	s.cfg.TickMS = tickMS
}

// AddProcess validates and tracks a new process spec, admitting it once
// its arrival time is reached. Returns DuplicatePidError if pid is already
// tracked, InvalidPidError if pid is empty, or InvalidBurstsError if the
// burst sequence is malformed.
func (s *Scheduler) AddProcess(spec ProcessSpec) error {
	if _, exists := s.procsByPID[spec.PID]; exists {
		return &DuplicatePidError{PID: spec.PID}
	}
	p, err := NewProcess(spec.PID, spec.Arrival, spec.Priority, spec.Queue, spec.Bursts, spec.Memory)
	if err != nil {
		return err
	}
	s.specs = append(s.specs, trackedSpec{spec: spec, addedAfterInit: s.configured})
	s.procsByPID[p.PID] = p
	s.insertPending(p)
	return nil
}

// RemoveProcess drops pid's spec entirely and rebuilds runtime state for
// the remaining specs, rewinding time to 0 and re-admitting them from
// their original arrival times.
func (s *Scheduler) RemoveProcess(pid string) error {
	idx := -1
	for i, ts := range s.specs {
		if ts.spec.PID == pid {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &UnknownPidError{PID: pid}
	}
	s.specs = append(s.specs[:idx], s.specs[idx+1:]...)
	s.rebuild()
	return nil
}

// ClearUserAdded drops every spec added via AddProcess after Configure and
// rebuilds runtime state for the remaining specs.
func (s *Scheduler) ClearUserAdded() {
	kept := s.specs[:0]
	for _, ts := range s.specs {
		if !ts.addedAfterInit {
			kept = append(kept, ts)
		}
	}
	s.specs = kept
	s.rebuild()
}

// Reset restores initial conditions: time rewinds to 0 and every currently
// tracked spec (initial and user-added alike) is re-admitted from its
// original arrival time. The process set and policy configuration are
// unchanged.
func (s *Scheduler) Reset() {
	s.rebuild()
}

// ClearAllProcesses drops every tracked spec, initial and user-added
// alike, and rebuilds runtime state — the resulting process set is empty.
// This is the primitive the session-level `reset` command needs (spec.md
// §6: "Revert to initial configuration with no processes"), distinct from
// Reset, which keeps the process set and only rewinds time.
func (s *Scheduler) ClearAllProcesses() {
	s.specs = nil
	s.rebuild()
}

// rebuild reconstructs procsByPID, pending, and every mutable runtime
// counter from s.specs, discarding all in-flight state. Called by
// Configure, RemoveProcess, ClearUserAdded, and Reset.
func (s *Scheduler) rebuild() {
	s.now = 0
	s.procsByPID = make(map[string]*Process, len(s.specs))
	s.pending = nil
	s.memWaiters = nil
	s.running = nil
	s.quantumCounter = 0
	s.ioTickPID = ""
	s.cpuTimeline = nil
	s.ioTimeline = nil
	s.memTimeline = nil
	s.completedOrder = nil
	s.cpuBusyTicks = 0
	s.events.Reset()
	s.io = IODevice{}
	if s.policy != nil {
		s.ready = s.policy.NewReady()
	}
	if s.mem != nil {
		s.mem.Reset()
	}
	for _, ts := range s.specs {
		p, err := NewProcess(ts.spec.PID, ts.spec.Arrival, ts.spec.Priority, ts.spec.Queue, ts.spec.Bursts, ts.spec.Memory)
		if err != nil {
			// specs were validated at AddProcess time; a failure here would
			// indicate internal corruption, not a caller error.
			continue
		}
		s.procsByPID[p.PID] = p
		s.insertPending(p)
	}
}

// insertPending inserts p into s.pending, keeping it sorted by
// (ArrivalTime, PID) ascending.
func (s *Scheduler) insertPending(p *Process) {
	i := sort.Search(len(s.pending), func(i int) bool {
		a, b := s.pending[i], p
		if a.ArrivalTime != b.ArrivalTime {
			return a.ArrivalTime > b.ArrivalTime
		}
		return a.PID > b.PID
	})
	s.pending = append(s.pending, nil)
	copy(s.pending[i+1:], s.pending[i:])
	s.pending[i] = p
}

// AllProcesses returns every tracked process (any lifecycle state), in
// spec order. Callers must not mutate the returned slice's elements.
func (s *Scheduler) AllProcesses() []*Process {
	out := make([]*Process, 0, len(s.specs))
	for _, ts := range s.specs {
		if p, ok := s.procsByPID[ts.spec.PID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Now returns the current logical tick.
func (s *Scheduler) Now() int64 { return s.now }

// Running returns the currently RUNNING process, or nil.
func (s *Scheduler) Running() *Process { return s.running }

// Policy returns the configured policy, or nil if unconfigured.
func (s *Scheduler) Policy() Policy { return s.policy }

// Config returns the last-applied SchedulerConfig.
func (s *Scheduler) Config() SchedulerConfig { return s.cfg }

// Events returns the scheduler's event log.
func (s *Scheduler) Events() *EventLog { return s.events }

// CPUTimeline, IOTimeline, and MemTimeline return the three parallel
// per-tick timelines recorded so far. Callers must not mutate them.
func (s *Scheduler) CPUTimeline() []string { return s.cpuTimeline }
func (s *Scheduler) IOTimeline() []string  { return s.ioTimeline }
func (s *Scheduler) MemTimeline() []string { return s.memTimeline }

// CompletedOrder returns completed pids in completion order.
func (s *Scheduler) CompletedOrder() []string { return s.completedOrder }

// CPUBusyTicks returns the number of ticks the CPU timeline recorded a
// pid rather than IDLE (fault-attempt ticks count as busy per
// SPEC_FULL.md's Open Question decision).
func (s *Scheduler) CPUBusyTicks() int64 { return s.cpuBusyTicks }

// ReadyItems returns the processes currently in the ready structure, in
// no particular cross-policy order (see the concrete Ready implementation
// for its own ordering).
func (s *Scheduler) ReadyItems() []*Process {
	if s.ready == nil {
		return nil
	}
	return s.ready.Items()
}

// IOActivePID and IOWaitingPIDs expose the I/O device's state.
func (s *Scheduler) IOActivePID() string     { return s.io.ActivePID() }
func (s *Scheduler) IOWaitingPIDs() []string { return s.io.WaitingPIDs() }

// SysQueuePIDs and UserQueuePIDs return the SYS/USER ready pids when the
// configured policy is MLQ, or nil otherwise.
func (s *Scheduler) SysQueuePIDs() []string {
	tlq, ok := s.ready.(*TwoLevelQueue)
	if !ok {
		return nil
	}
	return pids(tlq.Sys.Items())
}

func (s *Scheduler) UserQueuePIDs() []string {
	tlq, ok := s.ready.(*TwoLevelQueue)
	if !ok {
		return nil
	}
	return pids(tlq.User.Items())
}

// ReadyQueuePIDs returns every ready pid, in the ready structure's order.
func (s *Scheduler) ReadyQueuePIDs() []string {
	return pids(s.ready.Items())
}

func pids(procs []*Process) []string {
	out := make([]string, len(procs))
	for i, p := range procs {
		out[i] = p.PID
	}
	return out
}

// Tick advances logical time by exactly one unit, running the eight
// phases in spec.md §4.1's fixed order. Returns NotInitializedError if
// Configure has not been called.
func (s *Scheduler) Tick() error {
	if !s.configured {
		return &NotInitializedError{}
	}

	s.admitArrivals()
	s.releaseMemoryWaiters()
	s.advanceIO()
	s.checkPreemption()
	s.dispatch()
	s.execute()
	s.postExecute()
	s.advanceTime()
	return nil
}

// Run advances the simulation up to n ticks, stopping early if every
// tracked process reaches DONE. Returns the number of ticks actually
// advanced and the first error encountered, if any.
func (s *Scheduler) Run(n int) (int, error) {
	advanced := 0
	for i := 0; i < n; i++ {
		if s.allDone() {
			break
		}
		if err := s.Tick(); err != nil {
			return advanced, err
		}
		advanced++
	}
	return advanced, nil
}

func (s *Scheduler) allDone() bool {
	if len(s.procsByPID) == 0 {
		return false
	}
	for _, p := range s.procsByPID {
		if p.State != StateDone {
			return false
		}
	}
	return true
}

// Phase 1: admit arrivals.
func (s *Scheduler) admitArrivals() {
	i := 0
	for i < len(s.pending) && s.pending[i].ArrivalTime <= s.now {
		i++
	}
	if i == 0 {
		return
	}
	admitted := s.pending[:i]
	s.pending = s.pending[i:]
	for _, p := range admitted {
		s.transition(p, StateReady, "")
		s.ready.Enqueue(p)
	}
}

// Phase 2: release memory-waiters. Every waiter is decremented before the
// zero check, per spec.md §4.1 phase 2.
func (s *Scheduler) releaseMemoryWaiters() {
	if len(s.memWaiters) == 0 {
		return
	}
	for _, p := range s.memWaiters {
		p.MemWait--
		p.MemWaitTicks++
	}
	remaining := s.memWaiters[:0]
	for _, p := range s.memWaiters {
		if p.MemWait <= 0 {
			s.transition(p, StateReady, "fault resolved")
			s.ready.Enqueue(p)
		} else {
			remaining = append(remaining, p)
		}
	}
	s.memWaiters = remaining
}

// Phase 3: advance I/O. A job enqueued during a tick's postExecute
// (phase 7) is not served until here, on the following tick — Tick promotes from the waiting list itself, so the pid
// it reports as served is whichever job actually occupied the device
// during this tick, recorded for phase 8's io_gantt entry.
func (s *Scheduler) advanceIO() {
	if pid := s.io.ActivePID(); pid != "" {
		s.procsByPID[pid].IOWaitTicks++
	}
	for _, pid := range s.io.WaitingPIDs() {
		s.procsByPID[pid].IOWaitTicks++
	}
	served, releasedPID, released := s.io.Tick()
	s.ioTickPID = served
	if !released {
		return
	}
	p := s.procsByPID[releasedPID]
	s.transition(p, StateReady, "io complete")
	p.BurstIndex++
	p.Remaining = p.Bursts[p.BurstIndex]
	s.ready.Enqueue(p)
}

// Phase 4: preemption check (preemptive policies only), plus RR/MLQ
// quantum-expiry rotation. Rotation is checked here rather than
// immediately when the counter hits zero in execute, so a process whose
// quantum expires exactly as it finishes its last tick still gets a
// chance to be re-selected next tick before it is forced off the CPU.
func (s *Scheduler) checkPreemption() {
	if s.running == nil {
		return
	}
	if s.policy.Preemptive() {
		if best := s.ready.Peek(); best != nil && s.policy.StrictlyBetter(s.running, best) {
			p := s.running
			s.transition(p, StateReady, "preempt")
			s.ready.Enqueue(p)
			s.running = nil
			s.quantumCounter = 0
		}
	}
	if s.running != nil && s.policy.QuantumDriven() && s.quantumCounter <= 0 && s.ready.Len() > 0 {
		p := s.running
		s.transition(p, StateReady, "time slice")
		s.ready.Enqueue(p)
		s.running = nil
		s.quantumCounter = 0
	}
}

// Phase 5: dispatch.
func (s *Scheduler) dispatch() {
	if s.running == nil && s.ready.Len() > 0 {
		p := s.ready.Dequeue()
		s.transition(p, StateRunning, "")
		if !p.HasStarted {
			p.HasStarted = true
			p.FirstStart = s.now
		}
		s.running = p
		s.quantumCounter = s.policy.Quantum()
	}
	for _, p := range s.ready.Items() {
		p.WaitTicks++
	}
}

// Phase 6: execute one CPU tick.
func (s *Scheduler) execute() {
	if s.running == nil {
		s.cpuTimeline = append(s.cpuTimeline, "IDLE")
		s.memTimeline = append(s.memTimeline, "IDLE")
		return
	}
	p := s.running
	s.cpuTimeline = append(s.cpuTimeline, p.PID)
	s.cpuBusyTicks++

	if s.cfg.MemoryMode == MemoryFull && s.mem != nil {
		res := s.mem.Step(p, s.now)
		s.memTimeline = append(s.memTimeline, res.Token)
		if res.Faulted {
			penalty := p.FaultPenalty(res.FaultPenalty)
			s.transition(p, StateWaitingMem, "page fault")
			p.MemWait = int64(penalty)
			s.memWaiters = append(s.memWaiters, p)
			s.running = nil
			return
		}
	} else {
		s.memTimeline = append(s.memTimeline, "IDLE")
	}

	p.Remaining--
	if s.policy.QuantumDriven() {
		s.quantumCounter--
	}
}

// Phase 7: post-execute transitions.
func (s *Scheduler) postExecute() {
	p := s.running
	if p == nil {
		return
	}
	if p.Remaining <= 0 {
		if p.HasNextBurst() {
			s.transition(p, StateWaitingIO, "")
			p.BurstIndex++
			p.Remaining = p.Bursts[p.BurstIndex]
			s.io.Enqueue(p.PID, p.Remaining)
		} else {
			s.transition(p, StateDone, "")
			p.Completion = s.now + 1
			s.completedOrder = append(s.completedOrder, p.PID)
		}
		s.running = nil
		return
	}
}

// Phase 8: advance time. Quantum expiry for a still-running process is
// left for the next tick's checkPreemption (phase 4) rather than acted on
// here — rotating in phase 7 would let the process keep the CPU for one
// tick fewer than its quantum whenever no other process is ready yet at
// expiry, and would double-rotate against phase 4 otherwise.
func (s *Scheduler) advanceTime() {
	if s.ioTickPID != "" {
		s.ioTimeline = append(s.ioTimeline, s.ioTickPID)
	} else {
		s.ioTimeline = append(s.ioTimeline, "IDLE")
	}
	s.now++
}

// transition records a state change in the event log and mutates p.State.
func (s *Scheduler) transition(p *Process, to State, reason string) {
	s.events.Record(s.now, p.PID, p.State, to, reason)
	p.State = to
}
