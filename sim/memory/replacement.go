// Implements the five page-replacement policies of spec.md §4.3.

package memory

import "github.com/ticksim/ticksim/sim"

// Replacer selects a victim frame among a fully-occupied FrameTable.
type Replacer interface {
	Victim(ft *FrameTable) int
}

// NewReplacer constructs a Replacer for the given policy. OPT requires a
// non-nil FutureRefs; callers outside sim/compare's offline path should
// never request it (sim.SchedulerConfig.Validate rejects OPT in live
// mode).
func NewReplacer(policy sim.ReplacementPolicy, future FutureRefs) (Replacer, error) {
	switch policy {
	case sim.ReplFIFO:
		return fifoReplacer{}, nil
	case sim.ReplLRU:
		return lruReplacer{}, nil
	case sim.ReplLFU:
		return lfuReplacer{}, nil
	case sim.ReplClock:
		return &clockReplacer{}, nil
	case sim.ReplOPT:
		if future == nil {
			return nil, &sim.ConfigError{Reason: "OPT requires a precomputed reference string"}
		}
		return optReplacer{future: future}, nil
	default:
		return nil, &sim.ConfigError{Reason: "unknown replacement policy"}
	}
}

// fifoReplacer evicts the frame with the smallest load-tick.
type fifoReplacer struct{}

func (fifoReplacer) Victim(ft *FrameTable) int {
	best := 0
	for i := 1; i < ft.Len(); i++ {
		if ft.At(i).LoadTick < ft.At(best).LoadTick {
			best = i
		}
	}
	return best
}

// lruReplacer evicts the frame with the smallest last-used tick; ties
// resolve to the smallest PFN via ascending scan with a strict less.
type lruReplacer struct{}

func (lruReplacer) Victim(ft *FrameTable) int {
	best := 0
	for i := 1; i < ft.Len(); i++ {
		if ft.At(i).LastUsedTick < ft.At(best).LastUsedTick {
			best = i
		}
	}
	return best
}

// lfuReplacer evicts the frame with the smallest access frequency; ties
// resolve by smallest last-used, then smallest PFN.
type lfuReplacer struct{}

func (lfuReplacer) Victim(ft *FrameTable) int {
	best := 0
	for i := 1; i < ft.Len(); i++ {
		a, b := ft.At(i), ft.At(best)
		if a.Frequency < b.Frequency || (a.Frequency == b.Frequency && a.LastUsedTick < b.LastUsedTick) {
			best = i
		}
	}
	return best
}

// clockReplacer implements second-chance replacement with a circular
// pointer, clearing reference bits as it sweeps.
type clockReplacer struct {
	hand int
}

func (c *clockReplacer) Victim(ft *FrameTable) int {
	n := ft.Len()
	for {
		f := ft.At(c.hand)
		if !f.Reference {
			victim := c.hand
			c.hand = (c.hand + 1) % n
			return victim
		}
		ft.ClearReference(c.hand)
		c.hand = (c.hand + 1) % n
	}
}

// FutureRefs answers "when is (pid, vpn) next referenced" for OPT.
// Distance is measured in that process's own reference-call count, not
// global ticks, since the reference stream is deterministic and
// independent of scheduling order (see sim/memory's PrecomputeFutureRefs).
type FutureRefs interface {
	// NextUse returns the smallest reference index > afterIndex at which
	// pid references vpn again, or (0, false) if it never does.
	NextUse(pid string, vpn int64, afterIndex int64) (int64, bool)
}

// optReplacer evicts the frame whose page has the farthest next
// reference; pages never referenced again are preferred for eviction.
type optReplacer struct {
	future FutureRefs
}

func (o optReplacer) Victim(ft *FrameTable) int {
	best := 0
	bestDist := o.distance(ft.At(0))
	for i := 1; i < ft.Len(); i++ {
		d := o.distance(ft.At(i))
		if d > bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func (o optReplacer) distance(f Frame) int64 {
	if next, ok := o.future.NextUse(f.OwnerPID, f.VPN, f.LastRefIndex); ok {
		return next
	}
	return int64(1) << 62
}

// PrecomputedFutureRefs holds each process's complete reference sequence,
// generated once, offline, before a comparator run begins.
type PrecomputedFutureRefs struct {
	sequences map[string][]int64
}

// PrecomputeFutureRefs generates the full VPN reference sequence for each
// spec, assuming it runs uninterrupted for the sum of its CPU bursts —
// the sequence itself does not depend on scheduling order, only on the
// process's own deterministic address generator.
func PrecomputeFutureRefs(specs []sim.ProcessSpec, pageSize int64) *PrecomputedFutureRefs {
	seqs := make(map[string][]int64, len(specs))
	for _, spec := range specs {
		p, err := sim.NewProcess(spec.PID, spec.Arrival, spec.Priority, spec.Queue, spec.Bursts, spec.Memory)
		if err != nil {
			continue
		}
		gen := NewAddrGen(p, pageSize)
		total := totalCPUTicks(spec.Bursts) * int64(refsPerTick(spec.Memory))
		seq := make([]int64, 0, total)
		for i := int64(0); i < total; i++ {
			va := gen.NextVA()
			seq = append(seq, translateVPN(va, gen.base, pageSize))
		}
		seqs[spec.PID] = seq
	}
	return &PrecomputedFutureRefs{sequences: seqs}
}

func (f *PrecomputedFutureRefs) NextUse(pid string, vpn int64, afterIndex int64) (int64, bool) {
	seq, ok := f.sequences[pid]
	if !ok {
		return 0, false
	}
	for i := afterIndex + 1; i < int64(len(seq)); i++ {
		if seq[i] == vpn {
			return i, true
		}
	}
	return 0, false
}

func totalCPUTicks(bursts []int64) int64 {
	var total int64
	for i, b := range bursts {
		if i%2 == 0 {
			total += b
		}
	}
	return total
}

func refsPerTick(mp *sim.MemoryProfile) int {
	if mp == nil || mp.RefsPerTick <= 0 {
		return 1
	}
	if mp.RefsPerTick > 3 {
		return 3
	}
	return mp.RefsPerTick
}
