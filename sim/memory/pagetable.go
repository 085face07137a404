// Implements the per-process page table of spec.md §4.3: VPN -> {present,
// PFN if present, last-used, frequency, dirty}. Backed by a map rather
// than a dense array, since working sets in this domain are small
// relative to the addressable VPN range (a hot-set map, per the design
// note in spec.md §9, without a dense-array fast path this domain's
// working-set sizes don't need).

package memory

import "sort"

// PageEntry is one VPN's mapping state.
type PageEntry struct {
	VPN       int64
	Present   bool
	PFN       int
	LastUsed  int64
	Frequency int64
	Dirty     bool
}

// PageTable maps a single process's VPNs to their mapping state.
type PageTable struct {
	PID     string
	entries map[int64]*PageEntry
}

// NewPageTable constructs an empty page table for pid.
func NewPageTable(pid string) *PageTable {
	return &PageTable{PID: pid, entries: make(map[int64]*PageEntry)}
}

// Lookup returns the entry for vpn, if one has ever been created.
func (t *PageTable) Lookup(vpn int64) (*PageEntry, bool) {
	e, ok := t.entries[vpn]
	return e, ok
}

// EnsureEntry returns the entry for vpn, creating a not-present one if
// this is the first reference to it.
func (t *PageTable) EnsureEntry(vpn int64) *PageEntry {
	e, ok := t.entries[vpn]
	if !ok {
		e = &PageEntry{VPN: vpn}
		t.entries[vpn] = e
	}
	return e
}

// Clear marks vpn not-present (used when its frame is evicted).
func (t *PageTable) Clear(vpn int64) {
	if e, ok := t.entries[vpn]; ok {
		e.Present = false
		e.PFN = 0
	}
}

// Entries returns every known entry, sorted by VPN, for deterministic
// serialization.
func (t *PageTable) Entries() []PageEntry {
	out := make([]PageEntry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VPN < out[j].VPN })
	return out
}

// Reset discards all entries.
func (t *PageTable) Reset() {
	t.entries = make(map[int64]*PageEntry)
}
