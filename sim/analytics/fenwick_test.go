package analytics

import "testing"

func TestFenwick_RangeSum_Basic(t *testing.T) {
	f := NewFenwick(4)
	bits := []int64{1, 0, 1, 1, 0, 1}
	for _, b := range bits {
		f.Append(b)
	}
	if f.Len() != len(bits) {
		t.Fatalf("len = %d, want %d", f.Len(), len(bits))
	}
	if got := f.RangeSum(0, 5); got != 4 {
		t.Errorf("full range sum = %d, want 4", got)
	}
	if got := f.RangeSum(2, 3); got != 2 {
		t.Errorf("RangeSum(2,3) = %d, want 2", got)
	}
	if got := f.RangeSum(1, 1); got != 0 {
		t.Errorf("RangeSum(1,1) = %d, want 0", got)
	}
}

func TestFenwick_GrowsBeyondInitialCapacity(t *testing.T) {
	f := NewFenwick(2)
	for i := 0; i < 20; i++ {
		f.Append(int64(i % 2))
	}
	if f.Len() != 20 {
		t.Fatalf("len = %d, want 20", f.Len())
	}
	if got := f.RangeSum(0, 19); got != 10 {
		t.Errorf("RangeSum(0,19) = %d, want 10", got)
	}
}

func TestFenwick_RangeSum_ClampsOutOfBounds(t *testing.T) {
	f := NewFenwick(4)
	f.Append(1)
	f.Append(1)
	if got := f.RangeSum(-5, 100); got != 2 {
		t.Errorf("clamped range sum = %d, want 2", got)
	}
}

func TestFenwick_RangeSum_InvalidRange(t *testing.T) {
	f := NewFenwick(4)
	f.Append(1)
	if got := f.RangeSum(3, 1); got != 0 {
		t.Errorf("l > r should yield 0, got %d", got)
	}
}

func TestFenwick_RangeSum_EmptyTree(t *testing.T) {
	f := NewFenwick(4)
	if got := f.RangeSum(0, 0); got != 0 {
		t.Errorf("empty tree range sum = %d, want 0", got)
	}
}
