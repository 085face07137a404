// Defines the ready-structure implementations backing the scheduling
// policies of §4.1: a plain FIFO for FCFS/RR, a container/heap-backed
// selection structure for SJF/PRIORITY, and a two-FIFO structure for MLQ.

package sim

import "container/heap"

// FIFOQueue is an ordered, insertion-order-preserving sequence of
// processes. Backs FCFS and RR.
type FIFOQueue struct {
	items []*Process
}

// Enqueue appends a process to the back of the queue.
func (q *FIFOQueue) Enqueue(p *Process) {
	q.items = append(q.items, p)
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (q *FIFOQueue) Dequeue() *Process {
	if len(q.items) == 0 {
		return nil
	}
	p := q.items[0]
	q.items = q.items[1:]
	return p
}

// Len returns the number of queued processes.
func (q *FIFOQueue) Len() int { return len(q.items) }

// Peek returns the front process without removing it, or nil if empty.
func (q *FIFOQueue) Peek() *Process {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// Items returns the queue's contents in order, front first. Callers must
// not mutate the returned slice.
func (q *FIFOQueue) Items() []*Process {
	return q.items
}

// Remove removes the first process with the given pid, if present, and
// reports whether it was found.
func (q *FIFOQueue) Remove(pid string) bool {
	for i, p := range q.items {
		if p.PID == pid {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// lessFunc orders two candidates for a selection-based ready structure;
// it returns true if a strictly precedes b.
type lessFunc func(a, b *Process) bool

// selectionHeap is a container/heap.Interface implementation ordered by a
// caller-supplied lessFunc. Backs SJF and PRIORITY, whose pick keys are
// (next-burst-length | priority, arrival, pid).
type selectionHeap struct {
	items []*Process
	less  lessFunc
}

func (h *selectionHeap) Len() int            { return len(h.items) }
func (h *selectionHeap) Less(i, j int) bool  { return h.less(h.items[i], h.items[j]) }
func (h *selectionHeap) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *selectionHeap) Push(x interface{})  { h.items = append(h.items, x.(*Process)) }
func (h *selectionHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	return item
}

// SelectionQueue is a priority ready structure keyed by a lessFunc,
// exposing the same shape as FIFOQueue plus a Peek that does not require a
// pop (needed by preemption checks, which must inspect the best candidate
// without removing it).
type SelectionQueue struct {
	h *selectionHeap
}

// NewSelectionQueue creates a SelectionQueue ordered by less.
func NewSelectionQueue(less lessFunc) *SelectionQueue {
	h := &selectionHeap{less: less}
	heap.Init(h)
	return &SelectionQueue{h: h}
}

// Enqueue inserts a process, maintaining heap order.
func (s *SelectionQueue) Enqueue(p *Process) {
	heap.Push(s.h, p)
}

// Dequeue removes and returns the best-ranked process, or nil if empty.
func (s *SelectionQueue) Dequeue() *Process {
	if s.h.Len() == 0 {
		return nil
	}
	return heap.Pop(s.h).(*Process)
}

// Peek returns the best-ranked process without removing it, or nil if
// empty.
func (s *SelectionQueue) Peek() *Process {
	if s.h.Len() == 0 {
		return nil
	}
	return s.h.items[0]
}

// Len returns the number of queued processes.
func (s *SelectionQueue) Len() int { return s.h.Len() }

// Items returns the queue's contents in arbitrary (heap) order. Callers
// must not mutate the returned slice.
func (s *SelectionQueue) Items() []*Process {
	return s.h.items
}

// Remove removes the process with the given pid, if present, restoring
// heap order, and reports whether it was found.
func (s *SelectionQueue) Remove(pid string) bool {
	for i, p := range s.h.items {
		if p.PID == pid {
			heap.Remove(s.h, i)
			return true
		}
	}
	return false
}

// TwoLevelQueue implements MLQ's SYS/USER discipline: two independent
// FIFOs, with SYS strictly dominating USER at every pick.
type TwoLevelQueue struct {
	Sys  FIFOQueue
	User FIFOQueue
}

// Enqueue routes p into its queue class.
func (q *TwoLevelQueue) Enqueue(p *Process) {
	if p.Queue == QueueSys {
		q.Sys.Enqueue(p)
	} else {
		q.User.Enqueue(p)
	}
}

// Dequeue returns the SYS head if SYS is non-empty, else the USER head, or
// nil if both are empty.
func (q *TwoLevelQueue) Dequeue() *Process {
	if q.Sys.Len() > 0 {
		return q.Sys.Dequeue()
	}
	return q.User.Dequeue()
}

// Len returns the combined number of queued processes.
func (q *TwoLevelQueue) Len() int { return q.Sys.Len() + q.User.Len() }

// Remove removes the process with the given pid from whichever level it
// occupies, and reports whether it was found.
func (q *TwoLevelQueue) Remove(pid string) bool {
	if q.Sys.Remove(pid) {
		return true
	}
	return q.User.Remove(pid)
}
