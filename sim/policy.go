// Defines the Policy strategy interface of spec.md §9's Design Notes and
// its six concrete implementations (FCFS, SJF, PRIORITY-NP, PRIORITY-P,
// RR, MLQ), selected per the table in spec.md §4.1.

package sim

import "fmt"

// PolicyName identifies a scheduling policy.
type PolicyName string

const (
	FCFS       PolicyName = "FCFS"
	SJF        PolicyName = "SJF"
	PriorityNP PolicyName = "PRIORITY-NP"
	PriorityP  PolicyName = "PRIORITY-P"
	RR         PolicyName = "RR"
	MLQ        PolicyName = "MLQ"
)

// Ready is the common shape every ready structure exposes to the
// Scheduler and to Policy.StrictlyBetter. Each Policy's NewReady returns
// the concrete structure appropriate to its ordering (FIFOQueue for
// FCFS/RR, SelectionQueue for SJF/PRIORITY, TwoLevelQueue for MLQ) so that
// Peek/Dequeue already return the policy's best candidate without the
// Scheduler needing to know which concrete structure backs it.
type Ready interface {
	Enqueue(p *Process)
	Dequeue() *Process
	Peek() *Process
	Len() int
	Remove(pid string) bool
	Items() []*Process
}

// Peek returns the SYS head if non-empty, else the USER head, or nil.
func (q *TwoLevelQueue) Peek() *Process {
	if q.Sys.Len() > 0 {
		return q.Sys.Peek()
	}
	return q.User.Peek()
}

// Items returns SYS's items followed by USER's items. Callers must not
// mutate the returned slice.
func (q *TwoLevelQueue) Items() []*Process {
	items := make([]*Process, 0, q.Len())
	items = append(items, q.Sys.Items()...)
	items = append(items, q.User.Items()...)
	return items
}

// Policy is the scheduling-decision strategy interface. A Policy owns no
// state of its own beyond configuration (quantum); all ready-structure
// state lives in the Ready value the Scheduler creates via NewReady and
// threads through every call.
type Policy interface {
	Name() PolicyName
	NewReady() Ready
	// Preemptive reports whether an arrival (or, for MLQ, a queue-class
	// change) can preempt a running process before its burst or quantum
	// ends.
	Preemptive() bool
	// QuantumDriven reports whether this policy rotates the running
	// process on quantum expiry (RR, MLQ).
	QuantumDriven() bool
	// Quantum returns the configured time-slice length; meaningless if
	// QuantumDriven() is false.
	Quantum() int64
	// StrictlyBetter reports whether candidate strictly preempts running.
	// Only invoked when Preemptive() is true and running is non-nil.
	StrictlyBetter(running, candidate *Process) bool
}

// fcfsPolicy: FIFO, no preemption, no quantum.
type fcfsPolicy struct{}

func (fcfsPolicy) Name() PolicyName                             { return FCFS }
func (fcfsPolicy) NewReady() Ready                               { return &FIFOQueue{} }
func (fcfsPolicy) Preemptive() bool                              { return false }
func (fcfsPolicy) QuantumDriven() bool                           { return false }
func (fcfsPolicy) Quantum() int64                                { return 0 }
func (fcfsPolicy) StrictlyBetter(running, candidate *Process) bool { return false }

// sjfPolicy: selection by (next CPU burst length, arrival, pid). Not
// preemptive per spec.md §4.1's table.
type sjfPolicy struct{}

func sjfLess(a, b *Process) bool {
	al, bl := a.NextCPUBurstLen(), b.NextCPUBurstLen()
	if al != bl {
		return al < bl
	}
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return a.PID < b.PID
}

func (sjfPolicy) Name() PolicyName                             { return SJF }
func (sjfPolicy) NewReady() Ready                               { return NewSelectionQueue(sjfLess) }
func (sjfPolicy) Preemptive() bool                              { return false }
func (sjfPolicy) QuantumDriven() bool                           { return false }
func (sjfPolicy) Quantum() int64                                { return 0 }
func (sjfPolicy) StrictlyBetter(running, candidate *Process) bool { return false }

// priorityLess orders by (priority ascending, arrival ascending, pid
// ascending) — shared by PRIORITY-NP and PRIORITY-P.
func priorityLess(a, b *Process) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return a.PID < b.PID
}

// priorityNPPolicy: selection by (priority, arrival, pid), non-preemptive.
type priorityNPPolicy struct{}

func (priorityNPPolicy) Name() PolicyName                             { return PriorityNP }
func (priorityNPPolicy) NewReady() Ready                               { return NewSelectionQueue(priorityLess) }
func (priorityNPPolicy) Preemptive() bool                              { return false }
func (priorityNPPolicy) QuantumDriven() bool                           { return false }
func (priorityNPPolicy) Quantum() int64                                { return 0 }
func (priorityNPPolicy) StrictlyBetter(running, candidate *Process) bool { return false }

// priorityPPolicy: selection by (priority, arrival, pid); preempts on a
// strictly better arrival. Ties never preempt (guarantees progress, per
// spec.md §9's Open Question decision).
type priorityPPolicy struct{}

func (priorityPPolicy) Name() PolicyName { return PriorityP }
func (priorityPPolicy) NewReady() Ready   { return NewSelectionQueue(priorityLess) }
func (priorityPPolicy) Preemptive() bool  { return true }
func (priorityPPolicy) QuantumDriven() bool { return false }
func (priorityPPolicy) Quantum() int64    { return 0 }
func (priorityPPolicy) StrictlyBetter(running, candidate *Process) bool {
	return candidate.Priority < running.Priority
}

// rrPolicy: FIFO, quantum-driven rotation, no arrival preemption.
type rrPolicy struct{ quantum int64 }

func (p rrPolicy) Name() PolicyName                             { return RR }
func (p rrPolicy) NewReady() Ready                               { return &FIFOQueue{} }
func (p rrPolicy) Preemptive() bool                              { return false }
func (p rrPolicy) QuantumDriven() bool                           { return true }
func (p rrPolicy) Quantum() int64                                { return p.quantum }
func (p rrPolicy) StrictlyBetter(running, candidate *Process) bool { return false }

// mlqPolicy: two FIFOs, SYS strictly dominates USER at every pick; SYS
// arrival preempts a running USER process; quantum expiry rotates within
// whichever level is running.
type mlqPolicy struct{ quantum int64 }

func (p mlqPolicy) Name() PolicyName   { return MLQ }
func (p mlqPolicy) NewReady() Ready     { return &TwoLevelQueue{} }
func (p mlqPolicy) Preemptive() bool    { return true }
func (p mlqPolicy) QuantumDriven() bool { return true }
func (p mlqPolicy) Quantum() int64      { return p.quantum }
func (p mlqPolicy) StrictlyBetter(running, candidate *Process) bool {
	return running.Queue == QueueUser && candidate.Queue == QueueSys
}

// NewPolicy constructs a Policy by name. RR and MLQ require quantum >= 1
// and return ConfigError otherwise.
func NewPolicy(name PolicyName, quantum int64) (Policy, error) {
	switch name {
	case FCFS:
		return fcfsPolicy{}, nil
	case SJF:
		return sjfPolicy{}, nil
	case PriorityNP:
		return priorityNPPolicy{}, nil
	case PriorityP:
		return priorityPPolicy{}, nil
	case RR:
		if quantum < 1 {
			return nil, &ConfigError{Reason: "RR requires quantum >= 1"}
		}
		return rrPolicy{quantum: quantum}, nil
	case MLQ:
		if quantum < 1 {
			return nil, &ConfigError{Reason: "MLQ requires quantum >= 1"}
		}
		return mlqPolicy{quantum: quantum}, nil
	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("unknown policy %q", name)}
	}
}

// IsValidPolicy reports whether name is a recognized PolicyName.
func IsValidPolicy(name PolicyName) bool {
	switch name {
	case FCFS, SJF, PriorityNP, PriorityP, RR, MLQ:
		return true
	default:
		return false
	}
}
