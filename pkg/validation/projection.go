package validation

import "github.com/phamtrung93/fx-sentinel/pkg/types"

// LiveScenario is one degraded projection of backtest performance.
type LiveScenario struct {
	Name           string
	DegradationPct float64
	ReturnPct      float64
	SharpeRatio    float64
	MaxDrawdownPct float64
}

// LivePerformanceExpectation holds three degraded projections of a backtest.
// This is an illustration of "live is worse than backtest", not a statistical
// forecast: each scenario applies a flat haircut to return and Sharpe and
// inflates drawdown by the same factor.
type LivePerformanceExpectation struct {
	Conservative LiveScenario
	Moderate     LiveScenario
	Optimistic   LiveScenario
}

// ProjectLivePerformance degrades a backtest summary into three live
// scenarios: conservative 30%, moderate 20%, optimistic 10%.
func ProjectLivePerformance(summary types.BacktestSummary) LivePerformanceExpectation {
	return LivePerformanceExpectation{
		Conservative: degrade(summary, "conservative", 30),
		Moderate:     degrade(summary, "moderate", 20),
		Optimistic:   degrade(summary, "optimistic", 10),
	}
}

func degrade(summary types.BacktestSummary, name string, degradationPct float64) LiveScenario {
	factor := 1 - degradationPct/100
	return LiveScenario{
		Name:           name,
		DegradationPct: degradationPct,
		ReturnPct:      summary.ReturnPct * factor,
		SharpeRatio:    summary.SharpeRatio * factor,
		MaxDrawdownPct: summary.MaxDrawdownPct / factor,
	}
}
