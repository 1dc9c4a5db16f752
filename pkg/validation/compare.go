package validation

import (
	"fmt"
	"math"

	"github.com/phamtrung93/fx-sentinel/pkg/types"
)

// Overfit verdict buckets over the additive score.
const (
	VerdictHighlyLikelyOverfit   = "HIGHLY LIKELY OVERFIT"
	VerdictPossibleOverfit       = "POSSIBLE OVERFIT"
	VerdictAcceptableDegradation = "ACCEPTABLE DEGRADATION"
	VerdictRobust                = "ROBUST"
)

// OverfitAnalysis scores how badly a strategy degrades out of sample.
// Probability is an additive relative-ranking score, not a calibrated
// probability: weights can stack past 100.
type OverfitAnalysis struct {
	Probability float64
	Findings    []string
	Verdict     string
}

// CompareSamples compares in-sample statistics against an out-of-sample run
// of the same strategy. Each degradation beyond its threshold adds a fixed
// weight to the score; findings record which thresholds fired.
func CompareSamples(inSample, outOfSample types.BacktestSummary) OverfitAnalysis {
	var analysis OverfitAnalysis

	add := func(weight float64, format string, args ...interface{}) {
		analysis.Probability += weight
		analysis.Findings = append(analysis.Findings, fmt.Sprintf(format, args...))
	}

	// Sharpe degradation.
	if inSample.SharpeRatio > 0 {
		decline := (inSample.SharpeRatio - outOfSample.SharpeRatio) / inSample.SharpeRatio * 100
		if decline > 50 {
			add(30, "Sharpe ratio declined %.0f%% out of sample (%.2f -> %.2f)",
				decline, inSample.SharpeRatio, outOfSample.SharpeRatio)
		} else if decline > 30 {
			add(20, "Sharpe ratio declined %.0f%% out of sample (%.2f -> %.2f)",
				decline, inSample.SharpeRatio, outOfSample.SharpeRatio)
		}
	}

	// Win-rate shift, absolute percentage points.
	if shift := math.Abs(inSample.WinRate-outOfSample.WinRate) * 100; shift > 15 {
		add(20, "win rate shifted %.1f points out of sample (%.1f%% -> %.1f%%)",
			shift, inSample.WinRate*100, outOfSample.WinRate*100)
	}

	// Profit-factor degradation.
	if inSample.ProfitFactor > 0 && !math.IsInf(inSample.ProfitFactor, 1) {
		decline := (inSample.ProfitFactor - outOfSample.ProfitFactor) / inSample.ProfitFactor * 100
		if decline > 40 {
			add(25, "profit factor declined %.0f%% out of sample (%.2f -> %.2f)",
				decline, inSample.ProfitFactor, outOfSample.ProfitFactor)
		}
	}

	// Drawdown blow-up.
	if inSample.MaxDrawdownPct > 0 && outOfSample.MaxDrawdownPct > inSample.MaxDrawdownPct*1.5 {
		add(15, "max drawdown grew %.1fx out of sample (%.1f%% -> %.1f%%)",
			outOfSample.MaxDrawdownPct/inSample.MaxDrawdownPct,
			inSample.MaxDrawdownPct, outOfSample.MaxDrawdownPct)
	}

	// Edge disappearing entirely. This stacks with the decline weight below:
	// a negative out-of-sample return is also a >100% decline.
	if inSample.ReturnPct > 0 {
		if outOfSample.ReturnPct < 0 {
			add(40, "strategy is profitable in sample (%.1f%%) but loses money out of sample (%.1f%%)",
				inSample.ReturnPct, outOfSample.ReturnPct)
		}
		decline := (inSample.ReturnPct - outOfSample.ReturnPct) / inSample.ReturnPct * 100
		if decline > 50 {
			add(25, "return declined %.0f%% out of sample (%.1f%% -> %.1f%%)",
				decline, inSample.ReturnPct, outOfSample.ReturnPct)
		}
	}

	switch {
	case analysis.Probability >= 70:
		analysis.Verdict = VerdictHighlyLikelyOverfit
	case analysis.Probability >= 40:
		analysis.Verdict = VerdictPossibleOverfit
	case analysis.Probability >= 20:
		analysis.Verdict = VerdictAcceptableDegradation
	default:
		analysis.Verdict = VerdictRobust
	}
	return analysis
}
