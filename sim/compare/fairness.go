// Implements the fairness metrics of spec.md §4.5 (max WT, p95 WT,
// WT std-dev, starvation flag), grounded on the teacher's
// metrics_utils.go CalculatePercentile/CalculateMean generic-function
// style but delegated to gonum/stat instead of hand-rolled arithmetic,
// per SPEC_FULL.md's DOMAIN STACK section.

package compare

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Fairness reports the dispersion of waiting time across one policy run.
type Fairness struct {
	MaxWT      float64
	P95WT      float64
	AvgWT      float64
	StdDevWT   float64
	Starvation bool
}

// ComputeFairness derives Fairness from a policy run's per-process wait
// times. waitTimes is not mutated; a sorted copy is used for the quantile.
func ComputeFairness(waitTimes []float64) Fairness {
	if len(waitTimes) == 0 {
		return Fairness{}
	}
	sorted := append([]float64(nil), waitTimes...)
	sort.Float64s(sorted)

	avg := stat.Mean(sorted, nil)
	std := stat.StdDev(sorted, nil)
	p95 := stat.Quantile(0.95, stat.Empirical, sorted, nil)
	max := sorted[len(sorted)-1]

	return Fairness{
		MaxWT:      max,
		P95WT:      p95,
		AvgWT:      avg,
		StdDevWT:   std,
		Starvation: max >= maxFloat(2*avg, 10),
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
