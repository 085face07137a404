// Implements the Pareto front of spec.md §4.5: domination across the nine
// metrics the spec names, four minimized fairness/latency metrics from
// Comparator plus the fleet-aggregate metrics, grounded on
// original_source/backend/app/engine/compare.py's pareto computation
// (build a flat metric row per algorithm, then pairwise-dominate).

package compare

// ComparisonRow flattens one policy's PolicyResult and Fairness into the
// nine metrics spec.md §4.5's Pareto front dominates over.
type ComparisonRow struct {
	Policy     string
	AvgWT      float64 // minimize
	AvgTAT     float64 // minimize
	AvgRT      float64 // minimize
	Makespan   float64 // minimize
	P95WT      float64 // minimize
	MaxWT      float64 // minimize
	WTStdDev   float64 // minimize
	CPUUtil    float64 // maximize
	Throughput float64 // maximize
}

// BuildRows joins PolicyResults with their Fairness metrics into
// ComparisonRows, one per policy, in the same order as results.
func BuildRows(results []PolicyResult) []ComparisonRow {
	rows := make([]ComparisonRow, len(results))
	for i, r := range results {
		f := ComputeFairness(r.WaitTimes)
		rows[i] = ComparisonRow{
			Policy:     string(r.Policy),
			AvgWT:      r.Metrics.AvgWaitingTime,
			AvgTAT:     r.Metrics.AvgTurnaround,
			AvgRT:      r.Metrics.AvgResponseTime,
			Makespan:   float64(r.Metrics.Makespan),
			P95WT:      f.P95WT,
			MaxWT:      f.MaxWT,
			WTStdDev:   f.StdDevWT,
			CPUUtil:    r.Metrics.Utilization,
			Throughput: r.Metrics.Throughput,
		}
	}
	return rows
}

// minimize/maximize direction per field, in the order dominates iterates.
type metricDir struct {
	get      func(ComparisonRow) float64
	maximize bool
}

var dominationMetrics = []metricDir{
	{func(r ComparisonRow) float64 { return r.AvgWT }, false},
	{func(r ComparisonRow) float64 { return r.AvgTAT }, false},
	{func(r ComparisonRow) float64 { return r.AvgRT }, false},
	{func(r ComparisonRow) float64 { return r.Makespan }, false},
	{func(r ComparisonRow) float64 { return r.P95WT }, false},
	{func(r ComparisonRow) float64 { return r.MaxWT }, false},
	{func(r ComparisonRow) float64 { return r.WTStdDev }, false},
	{func(r ComparisonRow) float64 { return r.CPUUtil }, true},
	{func(r ComparisonRow) float64 { return r.Throughput }, true},
}

// dominates reports whether a dominates b: a is at least as good as b on
// every metric, and strictly better on at least one.
func dominates(a, b ComparisonRow) bool {
	strictlyBetter := false
	for _, m := range dominationMetrics {
		av, bv := m.get(a), m.get(b)
		if m.maximize {
			av, bv = -av, -bv
		}
		if av > bv {
			return false
		}
		if av < bv {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}

// ParetoFront returns the policy names of every row not dominated by any
// other row, in input order.
func ParetoFront(rows []ComparisonRow) []string {
	var front []string
	for i, candidate := range rows {
		dominated := false
		for j, other := range rows {
			if i == j {
				continue
			}
			if dominates(other, candidate) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, candidate.Policy)
		}
	}
	return front
}
