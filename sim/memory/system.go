// Implements System, the paged-memory subsystem that backs sim.Scheduler
// in FULL mode. System satisfies sim.MemorySystem, so sim never imports
// sim/memory directly — callers (cmd, sim/compare) construct a System and
// hand it to Scheduler.Configure as the MemorySystem interface value.

package memory

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ticksim/ticksim/sim"
)

const (
	recentStepsLimit = 50
	defaultWSSize    = 4
)

// procState is the per-process bookkeeping System needs beyond the shared
// FrameTable: its address generator, page table, virtual-memory bound for
// range checking, and its own reference-call counter (OPT's time axis).
type procState struct {
	gen      *AddrGen
	table    *PageTable
	vmSize   int64
	refIndex int64
}

// System implements sim.MemorySystem. It is not safe for concurrent use.
type System struct {
	log          *logrus.Logger
	policy       sim.ReplacementPolicy
	pageSize     int64
	faultPenalty int
	frames       *FrameTable
	replacer     Replacer
	future       FutureRefs

	procs map[string]*procState

	faults int64
	hits   int64
	translationLog   []string // bounded translation-log ring
}

// New constructs a System. future is nil for every policy except OPT,
// where it must be a PrecomputedFutureRefs built ahead of time by
// sim/compare's offline comparator run.
func New(log *logrus.Logger, policy sim.ReplacementPolicy, frameCount int, pageSize int64, faultPenalty int, future FutureRefs) (*System, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	replacer, err := NewReplacer(policy, future)
	if err != nil {
		return nil, err
	}
	return &System{
		log:          log,
		policy:       policy,
		pageSize:     pageSize,
		faultPenalty: faultPenalty,
		frames:       NewFrameTable(frameCount),
		replacer:     replacer,
		future:       future,
		procs:        make(map[string]*procState),
	}, nil
}

// Reset clears all frame and page-table state.
func (s *System) Reset() {
	s.frames.Reset()
	s.procs = make(map[string]*procState)
	s.faults = 0
	s.hits = 0
	s.translationLog = nil
}

func (s *System) stateFor(p *sim.Process) *procState {
	st, ok := s.procs[p.PID]
	if ok {
		return st
	}
	gen := NewAddrGen(p, s.pageSize)
	vmSize := int64(defaultWSSize) * s.pageSize
	if p.Memory != nil && p.Memory.VMSizeBytes > 0 {
		vmSize = p.Memory.VMSizeBytes
	} else if p.Memory != nil && p.Memory.WorkingSetSize > 0 {
		vmSize = int64(p.Memory.WorkingSetSize) * s.pageSize
	} else if p.Memory != nil && len(p.Memory.VPNs) > 0 {
		vmSize = int64(len(p.Memory.VPNs)) * s.pageSize
	}
	st = &procState{gen: gen, table: NewPageTable(p.PID), vmSize: vmSize}
	s.procs[p.PID] = st
	return st
}

// translateVPN performs the in-range VPN computation, no bounds checking.
func translateVPN(va, base, pageSize int64) int64 {
	return (va - base) / pageSize
}

// resolveVPN implements spec.md §7's TranslationOutOfRange handling: a VA
// outside [base, base+vmSize) is translated against a derived fault page
// rather than rejected.
func resolveVPN(va, base, vmSize, pageSize int64) (vpn int64, outOfRange bool) {
	offset := va - base
	if offset >= 0 && offset < vmSize {
		return offset / pageSize, false
	}
	mod := offset % vmSize
	if mod < 0 {
		mod += vmSize
	}
	return mod / pageSize, true
}

// Step performs the process's per-tick memory references (1 to
// RefsPerTick, capped at 3) and reports the first fault encountered, if
// any — a fault aborts the remaining references for this tick, per
// spec.md §4.1 phase 6b.
func (s *System) Step(p *sim.Process, now int64) sim.MemoryStepResult {
	st := s.stateFor(p)
	n := refsPerTick(p.Memory)
	for i := 0; i < n; i++ {
		va := st.gen.NextVA()
		st.refIndex++
		vpn, oor := resolveVPN(va, st.gen.base, st.vmSize, s.pageSize)
		if oor {
			s.log.WithFields(logrus.Fields{"pid": p.PID, "va": va}).Warn("translation out of range; using derived fault page")
		}
		res := s.translate(p.PID, st, vpn, va, now)
		if res.Faulted {
			return res
		}
	}
	return sim.MemoryStepResult{Token: fmt.Sprintf("HIT:%s", p.PID)}
}

// translate resolves a single virtual address, updating the page table,
// frame table, and translation log, and evicting a victim on a fault.
func (s *System) translate(pid string, st *procState, vpn, va, now int64) sim.MemoryStepResult {
	entry := st.table.EnsureEntry(vpn)
	if entry.Present {
		s.hits++
		s.frames.Touch(entry.PFN, now, st.refIndex)
		entry.LastUsed = now
		entry.Frequency++
		s.recordLine(fmt.Sprintf("t=%d: %s VA=%d VPN=%d PFN=%d HIT", now, pid, va, vpn, entry.PFN))
		return sim.MemoryStepResult{Token: fmt.Sprintf("HIT:%s", pid)}
	}

	s.faults++
	pfn, ok := s.frames.FreeFrame()
	var evictedPID string
	var evictedVPN int64
	if !ok {
		pfn = s.replacer.Victim(s.frames)
		victim := s.frames.At(pfn)
		evictedPID, evictedVPN = victim.OwnerPID, victim.VPN
		if evictedPID != "" {
			if victimState, ok := s.procs[evictedPID]; ok {
				victimState.table.Clear(evictedVPN)
			}
		}
		s.frames.Evict(pfn)
	}
	s.frames.Load(pfn, pid, vpn, now, st.refIndex)
	entry.Present = true
	entry.PFN = pfn
	entry.LastUsed = now
	entry.Frequency++

	line := fmt.Sprintf("t=%d: %s VA=%d VPN=%d PFN=%d FAULT", now, pid, va, vpn, pfn)
	if evictedPID != "" {
		line += fmt.Sprintf(" evict=%s/%d", evictedPID, evictedVPN)
	}
	s.recordLine(line)

	return sim.MemoryStepResult{
		Faulted:      true,
		FaultPenalty: s.faultPenalty,
		Token:        fmt.Sprintf("FAULT:%s", pid),
	}
}

func (s *System) recordLine(line string) {
	s.translationLog = append(s.translationLog, line)
	if len(s.translationLog) > recentStepsLimit {
		s.translationLog = s.translationLog[len(s.translationLog)-recentStepsLimit:]
	}
}

// Snapshot reports the memory subsystem's current state for
// serialization.
func (s *System) Snapshot() sim.MemorySnapshot {
	frames := s.frames.All()
	frameInfos := make([]sim.FrameInfo, len(frames))
	for i, f := range frames {
		frameInfos[i] = sim.FrameInfo{
			PFN: f.PFN, Free: f.Free, OwnerPID: f.OwnerPID, VPN: f.VPN,
			LoadTick: f.LoadTick, LastUsed: f.LastUsedTick,
			Frequency: f.Frequency, Reference: f.Reference,
		}
	}
	tables := make(map[string][]sim.PageTableEntry, len(s.procs))
	for pid, st := range s.procs {
		entries := st.table.Entries()
		out := make([]sim.PageTableEntry, len(entries))
		for i, e := range entries {
			out[i] = sim.PageTableEntry{
				VPN: e.VPN, Present: e.Present, PFN: e.PFN,
				LastUsed: e.LastUsed, Frequency: e.Frequency, Dirty: e.Dirty,
			}
		}
		tables[pid] = out
	}
	var hitRatio float64
	if total := s.faults + s.hits; total > 0 {
		hitRatio = float64(s.hits) / float64(total)
	}
	return sim.MemorySnapshot{
		Mode:               sim.MemoryFull,
		Algo:               s.policy,
		PageSize:           s.pageSize,
		NumFrames:          s.frames.Len(),
		Frames:             frameInfos,
		FaultPenalty:       s.faultPenalty,
		Faults:             s.faults,
		Hits:               s.hits,
		HitRatio:           hitRatio,
		PageTables:         tables,
		RecentSteps:        append([]string(nil), s.translationLog...),
		LastTranslationLog: append([]string(nil), s.translationLog...),
	}
}
