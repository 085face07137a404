package memory

import (
	"testing"

	"github.com/ticksim/ticksim/sim"
)

func TestFIFOReplacer_EvictsEarliestLoaded(t *testing.T) {
	ft := NewFrameTable(3)
	ft.Load(0, "P1", 1, 5, 0)
	ft.Load(1, "P1", 2, 1, 0)
	ft.Load(2, "P1", 3, 8, 0)

	r := fifoReplacer{}
	if got := r.Victim(ft); got != 1 {
		t.Errorf("victim = %d, want frame 1 (earliest LoadTick)", got)
	}
}

func TestLRUReplacer_EvictsLeastRecentlyUsed(t *testing.T) {
	ft := NewFrameTable(3)
	ft.Load(0, "P1", 1, 0, 0)
	ft.Load(1, "P1", 2, 0, 0)
	ft.Load(2, "P1", 3, 0, 0)
	ft.Touch(0, 10, 1)
	ft.Touch(2, 20, 2)
	// frame 1 was never touched after load (LastUsedTick stays at load time 0).

	r := lruReplacer{}
	if got := r.Victim(ft); got != 1 {
		t.Errorf("victim = %d, want frame 1 (never touched)", got)
	}
}

func TestLFUReplacer_EvictsLeastFrequentlyUsed(t *testing.T) {
	ft := NewFrameTable(2)
	ft.Load(0, "P1", 1, 0, 0)
	ft.Load(1, "P1", 2, 0, 0)
	ft.Touch(0, 1, 1)
	ft.Touch(0, 2, 2)

	r := lfuReplacer{}
	if got := r.Victim(ft); got != 1 {
		t.Errorf("victim = %d, want frame 1 (lower frequency)", got)
	}
}

func TestClockReplacer_SkipsReferencedFramesOnce(t *testing.T) {
	ft := NewFrameTable(2)
	ft.Load(0, "P1", 1, 0, 0) // Reference=true from Load
	ft.Load(1, "P1", 2, 0, 0) // Reference=true from Load

	r := &clockReplacer{}
	// Both frames start referenced: the hand clears frame 0's bit, advances,
	// clears frame 1's bit, wraps, and finally evicts frame 0.
	victim := r.Victim(ft)
	if victim != 0 {
		t.Errorf("victim = %d, want frame 0 after one full sweep", victim)
	}
}

func TestOPTReplacer_EvictsFarthestNextUse(t *testing.T) {
	ft := NewFrameTable(2)
	ft.Load(0, "P1", 1, 0, 0) // VPN 1, last referenced at index 0
	ft.Load(1, "P1", 2, 0, 0) // VPN 2, last referenced at index 0

	future := &fakeFutureRefs{
		nextUse: map[string]int64{"1": 5, "2": 2},
	}
	r := optReplacer{future: future}
	if got := r.Victim(ft); got != 0 {
		t.Errorf("victim = %d, want frame 0 (VPN 1's next use is farther away)", got)
	}
}

func TestOPTReplacer_PrefersNeverReferencedAgain(t *testing.T) {
	ft := NewFrameTable(2)
	ft.Load(0, "P1", 1, 0, 0)
	ft.Load(1, "P1", 2, 0, 0)

	future := &fakeFutureRefs{
		nextUse: map[string]int64{"1": 3}, // VPN 2 never used again
	}
	r := optReplacer{future: future}
	if got := r.Victim(ft); got != 1 {
		t.Errorf("victim = %d, want frame 1 (never referenced again)", got)
	}
}

func TestNewReplacer_OPTRequiresFutureRefs(t *testing.T) {
	if _, err := NewReplacer(sim.ReplOPT, nil); err == nil {
		t.Fatalf("expected an error constructing OPT without FutureRefs")
	}
	if _, err := NewReplacer(sim.ReplOPT, &fakeFutureRefs{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewReplacer_UnknownPolicy(t *testing.T) {
	if _, err := NewReplacer(sim.ReplacementPolicy("BOGUS"), nil); err == nil {
		t.Fatalf("expected an error for an unknown replacement policy")
	}
}

// fakeFutureRefs keys next-use distances by VPN only (string-formatted),
// ignoring pid/afterIndex, which is enough to exercise optReplacer's
// farthest-distance comparison in isolation.
type fakeFutureRefs struct {
	nextUse map[string]int64
}

func (f *fakeFutureRefs) NextUse(pid string, vpn int64, afterIndex int64) (int64, bool) {
	key := itoa(vpn)
	d, ok := f.nextUse[key]
	return d, ok
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
