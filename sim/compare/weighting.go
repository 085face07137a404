// Implements the weighted ranking of spec.md §4.5: mode-specific base
// weights shifted by workload signals, robust per-cohort normalization,
// and a confidence rating from the top-two relative score gap. Grounded
// on original_source/backend/app/engine/compare.py's weighting logic
// (mode base tables, signal-driven shifts, median/IQR normalization) with
// the normalization itself delegated to gonum/stat per the DOMAIN STACK.

package compare

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ticksim/ticksim/sim"
)

// Mode selects which base weight table a ranking optimizes for.
type Mode string

const (
	ModeThroughput     Mode = "throughput"
	ModeResponsiveness Mode = "responsiveness"
	ModeFairness       Mode = "fairness"
)

// metricNames is the fixed column order every weight map and normalized
// row is keyed over, matching ComparisonRow's fields.
var metricNames = []string{
	"AvgWT", "AvgTAT", "AvgRT", "Makespan", "P95WT", "MaxWT", "WTStdDev", "CPUUtil", "Throughput",
}

func metricValue(r ComparisonRow, name string) float64 {
	switch name {
	case "AvgWT":
		return r.AvgWT
	case "AvgTAT":
		return r.AvgTAT
	case "AvgRT":
		return r.AvgRT
	case "Makespan":
		return r.Makespan
	case "P95WT":
		return r.P95WT
	case "MaxWT":
		return r.MaxWT
	case "WTStdDev":
		return r.WTStdDev
	case "CPUUtil":
		return r.CPUUtil
	case "Throughput":
		return r.Throughput
	default:
		return 0
	}
}

func metricMaximize(name string) bool {
	return name == "CPUUtil" || name == "Throughput"
}

// baseWeights returns the mode's starting weight table, summing to 1.
func baseWeights(mode Mode) map[string]float64 {
	switch mode {
	case ModeResponsiveness:
		return map[string]float64{
			"AvgWT": 0.20, "AvgTAT": 0.15, "AvgRT": 0.30, "Makespan": 0.05,
			"P95WT": 0.10, "MaxWT": 0.05, "WTStdDev": 0.05, "CPUUtil": 0.05, "Throughput": 0.05,
		}
	case ModeFairness:
		return map[string]float64{
			"AvgWT": 0.10, "AvgTAT": 0.05, "AvgRT": 0.05, "Makespan": 0.05,
			"P95WT": 0.20, "MaxWT": 0.20, "WTStdDev": 0.25, "CPUUtil": 0.05, "Throughput": 0.05,
		}
	default: // ModeThroughput
		return map[string]float64{
			"AvgWT": 0.05, "AvgTAT": 0.05, "AvgRT": 0.05, "Makespan": 0.20,
			"P95WT": 0.05, "MaxWT": 0.05, "WTStdDev": 0.05, "CPUUtil": 0.30, "Throughput": 0.20,
		}
	}
}

// WorkloadSignals are the coarse workload shape indicators spec.md §4.5
// names as weight-shift triggers.
type WorkloadSignals struct {
	IORatio       float64 // sum(io bursts) / sum(all bursts)
	BurstVariance float64 // coefficient of variation of CPU burst lengths
	ArrivalSpread float64 // max(arrival) - min(arrival)
	ProcessCount  int
}

// ComputeWorkloadSignals derives WorkloadSignals from the same specs a
// comparator run was given.
func ComputeWorkloadSignals(specs []sim.ProcessSpec) WorkloadSignals {
	if len(specs) == 0 {
		return WorkloadSignals{}
	}
	var ioSum, allSum float64
	var cpuBursts []float64
	minArrival, maxArrival := specs[0].Arrival, specs[0].Arrival
	for _, spec := range specs {
		if spec.Arrival < minArrival {
			minArrival = spec.Arrival
		}
		if spec.Arrival > maxArrival {
			maxArrival = spec.Arrival
		}
		for i, b := range spec.Bursts {
			allSum += float64(b)
			if i%2 == 0 {
				cpuBursts = append(cpuBursts, float64(b))
			} else {
				ioSum += float64(b)
			}
		}
	}
	sig := WorkloadSignals{
		ProcessCount:  len(specs),
		ArrivalSpread: float64(maxArrival - minArrival),
	}
	if allSum > 0 {
		sig.IORatio = ioSum / allSum
	}
	if len(cpuBursts) > 0 {
		mean := stat.Mean(cpuBursts, nil)
		if mean > 0 {
			sig.BurstVariance = stat.StdDev(cpuBursts, nil) / mean
		}
	}
	return sig
}

// applySignalShifts nudges weight mass toward the metrics each crossed
// signal makes more decision-relevant, then renormalizes to sum 1.
func applySignalShifts(weights map[string]float64, sig WorkloadSignals) map[string]float64 {
	shifted := make(map[string]float64, len(weights))
	for k, v := range weights {
		shifted[k] = v
	}

	shift := func(from, to []string, amount float64) {
		per := amount / float64(len(from))
		for _, f := range from {
			shifted[f] -= per
		}
		perTo := amount / float64(len(to))
		for _, t := range to {
			shifted[t] += perTo
		}
	}

	if sig.IORatio >= 0.6 {
		shift([]string{"CPUUtil", "Throughput"}, []string{"WTStdDev", "P95WT", "MaxWT"}, 0.06)
	}
	if sig.BurstVariance >= 0.8 {
		shift([]string{"AvgTAT", "AvgWT"}, []string{"P95WT", "MaxWT"}, 0.05)
	}
	if sig.ArrivalSpread >= 10 {
		shift([]string{"AvgRT", "WTStdDev"}, []string{"Makespan", "Throughput"}, 0.05)
	}
	if sig.ProcessCount >= 12 {
		shift([]string{"AvgRT", "MaxWT"}, []string{"CPUUtil", "Throughput"}, 0.05)
	}

	var total float64
	for _, v := range shifted {
		if v < 0 {
			v = 0
		}
		total += v
	}
	if total <= 0 {
		return weights
	}
	for k, v := range shifted {
		if v < 0 {
			v = 0
		}
		shifted[k] = v / total
	}
	return shifted
}

// normalizeColumn robust-normalizes one metric column to [0, 1] where
// lower always means "better", regardless of the metric's own direction.
// It uses a median/IQR z-score passed through a sigmoid; when the IQR is
// zero (including when every value in the column is equal) it falls back
// to min-max, which itself degenerates to 0.5 for every row when the
// column has no spread at all — spec.md §8 invariant 10.
func normalizeColumn(values []float64, maximize bool) []float64 {
	n := len(values)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	median := stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	q1 := stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	q3 := stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	iqr := q3 - q1

	if iqr <= 0 {
		min, max := sorted[0], sorted[n-1]
		for i, v := range values {
			var norm float64
			if max == min {
				norm = 0.5
			} else {
				norm = (v - min) / (max - min)
			}
			out[i] = directed(norm, maximize)
		}
		return out
	}

	for i, v := range values {
		z := (v - median) / iqr
		norm := 1 / (1 + math.Exp(-z))
		out[i] = directed(norm, maximize)
	}
	return out
}

func directed(norm float64, maximize bool) float64 {
	if maximize {
		return 1 - norm
	}
	return norm
}

// RankResult is one policy's weighted-score outcome.
type RankResult struct {
	Policy string
	Score  float64 // lower is better
}

// Confidence classifies how decisive the top pick is, from the relative
// gap between the best and second-best score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Rank scores every row under mode's weight table (shifted by sig) and
// returns them best-first, along with a confidence rating for the pick.
func Rank(rows []ComparisonRow, mode Mode, sig WorkloadSignals) ([]RankResult, Confidence) {
	weights := applySignalShifts(baseWeights(mode), sig)

	columns := make(map[string][]float64, len(metricNames))
	for _, name := range metricNames {
		col := make([]float64, len(rows))
		for i, r := range rows {
			col[i] = metricValue(r, name)
		}
		columns[name] = normalizeColumn(col, metricMaximize(name))
	}

	results := make([]RankResult, len(rows))
	for i, r := range rows {
		var score float64
		for _, name := range metricNames {
			score += weights[name] * columns[name][i]
		}
		results[i] = RankResult{Policy: r.Policy, Score: score}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score < results[j].Score
		}
		return tieBreak(rows, mode, results[i].Policy, results[j].Policy)
	})

	confidence := ConfidenceLow
	if len(results) >= 2 && results[0].Score > 0 {
		gap := (results[1].Score - results[0].Score) / results[0].Score
		switch {
		case gap >= 0.08:
			confidence = ConfidenceHigh
		case gap >= 0.04:
			confidence = ConfidenceMedium
		}
	}
	return results, confidence
}

// tieBreak applies mode-specific lexicographic tie-break rules when two
// rows score equally: responsiveness prefers lower AvgRT then AvgWT;
// fairness prefers lower WTStdDev then MaxWT; throughput prefers higher
// CPUUtil then Throughput.
func tieBreak(rows []ComparisonRow, mode Mode, a, b string) bool {
	ra, rb := rowFor(rows, a), rowFor(rows, b)
	switch mode {
	case ModeResponsiveness:
		if ra.AvgRT != rb.AvgRT {
			return ra.AvgRT < rb.AvgRT
		}
		return ra.AvgWT < rb.AvgWT
	case ModeFairness:
		if ra.WTStdDev != rb.WTStdDev {
			return ra.WTStdDev < rb.WTStdDev
		}
		return ra.MaxWT < rb.MaxWT
	default:
		if ra.CPUUtil != rb.CPUUtil {
			return ra.CPUUtil > rb.CPUUtil
		}
		return ra.Throughput > rb.Throughput
	}
}

func rowFor(rows []ComparisonRow, policy string) ComparisonRow {
	for _, r := range rows {
		if r.Policy == policy {
			return r
		}
	}
	return ComparisonRow{}
}
