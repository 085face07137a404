// Package testutil provides shared test infrastructure for ticksim's
// package-level test suites, grounded on the teacher's
// sim/internal/testutil/golden.go — AssertFloat64Equal is kept verbatim
// in spirit; the golden-dataset loader is dropped since this domain has
// no equivalent fixed reference corpus, and small comparison helpers for
// the scenario tests (spec.md §8's S1-S6) are added in its place.
package testutil

import (
	"math"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertStringSlicesEqual fails the test if want and got differ in length
// or content, reporting the first mismatching index.
func AssertStringSlicesEqual(t *testing.T, name string, want, got []string) {
	t.Helper()
	if len(want) != len(got) {
		t.Errorf("%s: length mismatch: want %d (%v), got %d (%v)", name, len(want), want, len(got), got)
		return
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("%s[%d]: want %q, got %q", name, i, want[i], got[i])
		}
	}
}

// AssertInt64Equal fails the test if want != got.
func AssertInt64Equal(t *testing.T, name string, want, got int64) {
	t.Helper()
	if want != got {
		t.Errorf("%s: want %d, got %d", name, want, got)
	}
}
