package compare

import "testing"

func TestComputeFairness_Empty(t *testing.T) {
	f := ComputeFairness(nil)
	if f != (Fairness{}) {
		t.Errorf("empty input should return the zero value, got %+v", f)
	}
}

func TestComputeFairness_UniformWaitTimesNoStarvation(t *testing.T) {
	f := ComputeFairness([]float64{5, 5, 5, 5})
	if f.AvgWT != 5 || f.MaxWT != 5 || f.StdDevWT != 0 {
		t.Errorf("uniform input = %+v", f)
	}
	if f.Starvation {
		t.Errorf("expected no starvation when max == avg")
	}
}

func TestComputeFairness_FlagsStarvationOnOutlier(t *testing.T) {
	f := ComputeFairness([]float64{1, 1, 1, 1, 100})
	if !f.Starvation {
		t.Errorf("expected starvation to be flagged, got %+v", f)
	}
	if f.MaxWT != 100 {
		t.Errorf("MaxWT = %v, want 100", f.MaxWT)
	}
}

func TestComputeFairness_SmallSampleUsesAbsoluteFloor(t *testing.T) {
	// avg=1.5, 2*avg=3, but the absolute floor of 10 governs a small sample.
	f := ComputeFairness([]float64{1, 2})
	if f.Starvation {
		t.Errorf("max=2 should not trip starvation with the floor of 10, got %+v", f)
	}
}
