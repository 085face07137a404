// Package sim implements the tick-driven CPU scheduling and paged-memory
// simulation core.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process descriptor, burst sequence, lifecycle state
//   - readyqueue.go: per-policy ready structures (FIFO, heap, two-FIFO MLQ)
//   - policy.go: the Policy strategy interface and its FCFS/SJF/PRIORITY/RR/MLQ implementations
//   - iodevice.go: the single-server I/O device model
//   - scheduler.go: Scheduler, the fixed eight-phase Tick function
//
// # Architecture
//
// The sim package owns all mutable simulation state. Paged-memory support
// lives in sim/memory (frame table, page tables, replacement policies, and
// virtual-address generators) so that CPU-only configurations never pay for
// it. Range analytics over the CPU timeline live in sim/analytics (Fenwick
// tree, run-length segment tree). Cross-policy comparison lives in
// sim/compare. Concurrent access and snapshot fan-out live in sim/session.
// Reconstructing a past tick's view lives in sim/replay.
//
// # Key Interfaces
//
//   - Policy: supply the ready structure whose ordering picks the next
//     process, and decide preemption and quantum rotation.
//   - memory.Replacer: choose a victim frame on a page fault.
package sim
