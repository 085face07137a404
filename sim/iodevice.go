// Defines the single-server FIFO I/O device model of spec.md §4.2: at most
// one active job, plus an ordered waiting list. Strictly FIFO; no
// preemption.

package sim

// ioJob tracks a process's I/O burst progress while enqueued or active on
// the device.
type ioJob struct {
	pid       string
	remaining int64
}

// IODevice models a single I/O device: one active job and an ordered
// waiting list. Released processes re-enter the ready structure through
// the owning Scheduler, not directly here.
type IODevice struct {
	active  *ioJob
	waiting []*ioJob
}

// Enqueue adds a process's I/O burst to the waiting list. It never
// activates immediately — promotion only happens during the following
// tick's Tick call, so the tick a burst is enqueued on reports whichever
// job (if any) was actually served that tick, not the job that just
// arrived.
func (d *IODevice) Enqueue(pid string, length int64) {
	d.waiting = append(d.waiting, &ioJob{pid: pid, remaining: length})
}

// ActivePID returns the pid currently being served, or "" if idle.
func (d *IODevice) ActivePID() string {
	if d.active == nil {
		return ""
	}
	return d.active.pid
}

// WaitingPIDs returns the pids currently waiting, in FIFO order.
func (d *IODevice) WaitingPIDs() []string {
	pids := make([]string, len(d.waiting))
	for i, j := range d.waiting {
		pids[i] = j.pid
	}
	return pids
}

// Tick promotes a waiting job into the active slot if the device is idle,
// then decrements the active job's remaining burst by one tick. served is
// the pid actually decremented this tick ("" if the device stayed idle
// throughout the tick). When the active job's burst reaches zero it is
// released (reported as releasedPID) and the next waiting job, if any, is
// promoted for the following tick — not decremented this tick, since it
// was not the job served during this tick's I/O phase.
func (d *IODevice) Tick() (served string, releasedPID string, released bool) {
	if d.active == nil {
		d.promoteWaiting()
	}
	if d.active == nil {
		return "", "", false
	}
	served = d.active.pid
	d.active.remaining--
	if d.active.remaining > 0 {
		return served, "", false
	}
	releasedPID = d.active.pid
	d.active = nil
	d.promoteWaiting()
	return served, releasedPID, true
}

func (d *IODevice) promoteWaiting() {
	if d.active == nil && len(d.waiting) > 0 {
		d.active = d.waiting[0]
		d.waiting = d.waiting[1:]
	}
}

// Busy reports whether the device currently has an active job.
func (d *IODevice) Busy() bool { return d.active != nil }
