package montecarlo

import (
	"math"
	"sort"
)

// Percentile returns the p-th percentile (0..100) of samples using linear
// interpolation between closest ranks. The input is not modified.
func Percentile(samples []float64, p float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		p = 0
	}
	if p >= 100 {
		p = 100
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}

	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// DistributionSummary condenses a simulation result into the percentile
// figures the reports care about.
type DistributionSummary struct {
	MeanReturn    float64
	StdDev        float64
	Return5th     float64
	MedianReturn  float64
	Return95th    float64
	Drawdown95th  float64
	WorstDrawdown float64
}

// Summarize extracts the standard report percentiles from the run.
func (r *SimulationResult) Summarize() DistributionSummary {
	summary := DistributionSummary{
		Return5th:    Percentile(r.ReturnSamples, 5),
		MedianReturn: Percentile(r.ReturnSamples, 50),
		Return95th:   Percentile(r.ReturnSamples, 95),
		Drawdown95th: Percentile(r.DrawdownSamples, 95),
	}

	if len(r.ReturnSamples) > 0 {
		sum := 0.0
		for _, v := range r.ReturnSamples {
			sum += v
		}
		summary.MeanReturn = sum / float64(len(r.ReturnSamples))

		variance := 0.0
		for _, v := range r.ReturnSamples {
			variance += (v - summary.MeanReturn) * (v - summary.MeanReturn)
		}
		summary.StdDev = math.Sqrt(variance / float64(len(r.ReturnSamples)))
	}

	for _, dd := range r.DrawdownSamples {
		if dd > summary.WorstDrawdown {
			summary.WorstDrawdown = dd
		}
	}

	return summary
}
