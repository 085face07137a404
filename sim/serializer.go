// Implements the outbound state-snapshot wire contract of spec.md §6.
// The snapshot is a value type: every slice and map is freshly built from
// the Scheduler's owned state, so no observer ever shares a mutable
// reference with the simulation (spec.md §3's ownership rule).

package sim

// MetricsSnapshot is the `metrics` object of the state snapshot.
type MetricsSnapshot struct {
	AvgWaitingTime    float64 `json:"avg_wait"`
	AvgTurnaroundTime float64 `json:"avg_turnaround"`
	AvgResponseTime   float64 `json:"avg_response"`
	CPUUtilizationPct float64 `json:"cpu_utilization_pct"`
	Makespan          int64   `json:"makespan"`
	Throughput        float64 `json:"throughput"`
}

// PerProcessSnapshot is one entry of the `per_process` array.
type PerProcessSnapshot struct {
	PID            string `json:"pid"`
	WaitingTime    int64  `json:"waiting_time"`
	TurnaroundTime int64  `json:"turnaround_time"`
	ResponseTime   int64  `json:"response_time"`
	Done           bool   `json:"done"`
}

// ProcessSnapshot is one entry of the `processes` array: the raw
// descriptor plus current runtime state.
type ProcessSnapshot struct {
	PID         string     `json:"pid"`
	ArrivalTime int64      `json:"arrival_time"`
	Priority    int64      `json:"priority"`
	Queue       QueueClass `json:"queue"`
	State       State      `json:"state"`
	BurstIndex  int        `json:"burst_index"`
	Remaining   int64      `json:"remaining"`
}

// StateSnapshot is the exact wire shape spec.md §6 designates as the
// outbound contract to the presentation and transport layers.
type StateSnapshot struct {
	Time        int64                `json:"time"`
	Algorithm   PolicyName           `json:"algorithm"`
	Preemptive  *bool                `json:"preemptive,omitempty"`
	TickMS      int64                `json:"tick_ms"`
	Quantum     int64                `json:"quantum"`
	Running     string               `json:"running"`
	ReadyQueue  []string             `json:"ready_queue"`
	SysQueue    []string             `json:"sys_queue,omitempty"`
	UserQueue   []string             `json:"user_queue,omitempty"`
	IOActive    string               `json:"io_active"`
	IOQueue     []string             `json:"io_queue"`
	Gantt       []string             `json:"gantt"`
	IOGantt     []string             `json:"io_gantt"`
	MemGantt    []string             `json:"mem_gantt"`
	Completed   []string             `json:"completed"`
	Metrics     MetricsSnapshot      `json:"metrics"`
	PerProcess  []PerProcessSnapshot `json:"per_process"`
	Processes   []ProcessSnapshot    `json:"processes"`
	EventLog    []string             `json:"event_log"`
	Memory      *MemorySnapshot      `json:"memory,omitempty"`
}

// Snapshot builds a full StateSnapshot from the Scheduler's current state.
// Metrics are recomputed lazily from the CPU timeline and per-process
// timestamps every call, per spec.md §4.4.
func (s *Scheduler) Snapshot() StateSnapshot {
	procs := s.AllProcesses()
	agg := ComputeAggregateMetrics(procs, s.now, s.cpuBusyTicks)

	running := ""
	if s.running != nil {
		running = s.running.PID
	}

	snap := StateSnapshot{
		Time:       s.now,
		Algorithm:  s.cfg.Policy,
		TickMS:     s.cfg.TickMS,
		Quantum:    s.cfg.Quantum,
		Running:    running,
		ReadyQueue: s.ReadyQueuePIDs(),
		SysQueue:   s.SysQueuePIDs(),
		UserQueue:  s.UserQueuePIDs(),
		IOActive:   s.IOActivePID(),
		IOQueue:    s.IOWaitingPIDs(),
		Gantt:      append([]string(nil), s.cpuTimeline...),
		IOGantt:    append([]string(nil), s.ioTimeline...),
		MemGantt:   append([]string(nil), s.memTimeline...),
		Completed:  append([]string(nil), s.completedOrder...),
		Metrics: MetricsSnapshot{
			AvgWaitingTime:    agg.AvgWaitingTime,
			AvgTurnaroundTime: agg.AvgTurnaround,
			AvgResponseTime:   agg.AvgResponseTime,
			CPUUtilizationPct: agg.Utilization * 100,
			Makespan:          agg.Makespan,
			Throughput:        agg.Throughput,
		},
		EventLog: s.events.Strings(),
	}

	if s.policy != nil {
		preemptive := s.policy.Preemptive()
		snap.Preemptive = &preemptive
	}

	for _, p := range procs {
		pm := ComputeProcessMetrics(p)
		snap.PerProcess = append(snap.PerProcess, PerProcessSnapshot{
			PID:            p.PID,
			WaitingTime:    pm.WaitingTime,
			TurnaroundTime: pm.TurnaroundTime,
			ResponseTime:   pm.ResponseTime,
			Done:           pm.Done,
		})
		snap.Processes = append(snap.Processes, ProcessSnapshot{
			PID:         p.PID,
			ArrivalTime: p.ArrivalTime,
			Priority:    p.Priority,
			Queue:       p.Queue,
			State:       p.State,
			BurstIndex:  p.BurstIndex,
			Remaining:   p.Remaining,
		})
	}

	if s.cfg.MemoryMode == MemoryFull && s.mem != nil {
		memSnap := s.mem.Snapshot()
		memSnap.MemGantt = snap.MemGantt
		snap.Memory = &memSnap
	}

	return snap
}
