// Implements the deterministic virtual-address generator of spec.md
// §4.3: given (pattern, base, vm_size, working_set), every run produces
// the identical reference sequence. Grounded on the teacher's seeded
// rand.New(rand.NewSource(seed)) style for reproducible pseudo-random
// streams.
//
// DeterministicWorkingSet supplements a feature the distilled spec is
// silent on: original_source's memory_sim.py derives a process's working
// set from a stable hash of its pid when no explicit VPN list is given,
// so two runs of the same workload always generate the same pages.

package memory

import (
	"hash/fnv"
	"math/rand"

	"github.com/ticksim/ticksim/sim"
)

// AddrGen produces one process's deterministic virtual-address stream.
type AddrGen struct {
	base        int64
	pageSize    int64
	pattern     sim.RefPattern
	ws          []int64 // working-set VPNs, used by SEQ/LOOP/RAND
	customAddrs []int64 // absolute VAs, used by CUSTOM
	pos         int
	rng         *rand.Rand
}

// stablePidSeed derives a deterministic int64 seed from a pid string.
func stablePidSeed(pid string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(pid))
	return int64(h.Sum64())
}

// DeterministicWorkingSet derives a reproducible working set of count
// VPNs from pid alone, used when a process carries no explicit VPN list.
func DeterministicWorkingSet(pid string, count int) []int64 {
	if count <= 0 {
		count = 1
	}
	r := rand.New(rand.NewSource(stablePidSeed(pid)))
	ws := make([]int64, count)
	for i := range ws {
		ws[i] = int64(i)
	}
	r.Shuffle(len(ws), func(i, j int) { ws[i], ws[j] = ws[j], ws[i] })
	return ws
}

// NewAddrGen builds an AddrGen for p, deriving a working set
// deterministically from its pid when no explicit profile field supplies
// one.
func NewAddrGen(p *sim.Process, pageSize int64) *AddrGen {
	g := &AddrGen{base: 0, pageSize: pageSize, pattern: sim.RefSeq}
	mp := p.Memory
	if mp == nil {
		g.ws = DeterministicWorkingSet(p.PID, 4)
		g.rng = rand.New(rand.NewSource(stablePidSeed(p.PID)))
		return g
	}
	g.base = mp.BaseAddr
	g.pattern = mp.Pattern
	g.customAddrs = mp.CustomAddrs
	switch {
	case len(mp.VPNs) > 0:
		g.ws = mp.VPNs
	case mp.Pattern == sim.RefCustom && len(mp.CustomAddrs) > 0:
		// working set unused for CUSTOM; addresses come from CustomAddrs.
	default:
		count := mp.WorkingSetSize
		if count <= 0 {
			count = 4
		}
		g.ws = DeterministicWorkingSet(p.PID, count)
	}
	g.rng = rand.New(rand.NewSource(stablePidSeed(p.PID)))
	return g
}

// NextVA returns the next virtual address in the process's reference
// stream.
func (g *AddrGen) NextVA() int64 {
	if g.pattern == sim.RefCustom && len(g.customAddrs) > 0 {
		va := g.customAddrs[g.pos%len(g.customAddrs)]
		g.pos++
		return va
	}
	if len(g.ws) == 0 {
		return g.base
	}
	var vpn int64
	switch g.pattern {
	case sim.RefLoop:
		period := len(g.ws)
		if period > 3 {
			period = 3
		}
		vpn = g.ws[g.pos%period]
		g.pos++
	case sim.RefRand:
		vpn = g.ws[g.rng.Intn(len(g.ws))]
		g.pos++
	default: // SEQ and fallback
		vpn = g.ws[g.pos%len(g.ws)]
		g.pos++
	}
	return g.base + vpn*g.pageSize
}

// Pos returns the number of references generated so far.
func (g *AddrGen) Pos() int { return g.pos }
