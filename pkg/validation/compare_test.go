package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamtrung93/fx-sentinel/pkg/types"
)

func TestCompareSamples_RobustStrategy(t *testing.T) {
	inSample := types.BacktestSummary{
		SharpeRatio: 1.5, WinRate: 0.55, ProfitFactor: 1.8,
		MaxDrawdownPct: 15, ReturnPct: 40,
	}
	outOfSample := types.BacktestSummary{
		SharpeRatio: 1.35, WinRate: 0.53, ProfitFactor: 1.7,
		MaxDrawdownPct: 17, ReturnPct: 34,
	}

	analysis := CompareSamples(inSample, outOfSample)
	assert.Equal(t, VerdictRobust, analysis.Verdict)
	assert.Zero(t, analysis.Probability)
	assert.Empty(t, analysis.Findings)
}

func TestCompareSamples_CollapsedEdge(t *testing.T) {
	inSample := types.BacktestSummary{
		SharpeRatio: 2.1, WinRate: 0.72, ProfitFactor: 2.4,
		MaxDrawdownPct: 8, ReturnPct: 60,
	}
	outOfSample := types.BacktestSummary{
		SharpeRatio: 0.3, WinRate: 0.48, ProfitFactor: 0.9,
		MaxDrawdownPct: 24, ReturnPct: -12,
	}

	analysis := CompareSamples(inSample, outOfSample)
	assert.Equal(t, VerdictHighlyLikelyOverfit, analysis.Verdict)
	// Sharpe (+30), win rate (+20), PF (+25), drawdown (+15), negative OOS
	// (+40) and the return decline (+25) it implies.
	assert.InDelta(t, 155, analysis.Probability, 1e-9)
	assert.Len(t, analysis.Findings, 6)
}

func TestCompareSamples_Weights(t *testing.T) {
	base := types.BacktestSummary{
		SharpeRatio: 2.0, WinRate: 0.55, ProfitFactor: 2.0,
		MaxDrawdownPct: 10, ReturnPct: 50,
	}

	cases := []struct {
		name     string
		mutate   func(*types.BacktestSummary)
		weight   float64
		findings int
	}{
		{"sharpe down 40 percent", func(s *types.BacktestSummary) { s.SharpeRatio = 1.1 }, 20, 1},
		{"sharpe down 60 percent", func(s *types.BacktestSummary) { s.SharpeRatio = 0.7 }, 30, 1},
		{"win rate shift 20 points", func(s *types.BacktestSummary) { s.WinRate = 0.35 }, 20, 1},
		{"profit factor halved", func(s *types.BacktestSummary) { s.ProfitFactor = 1.0 }, 25, 1},
		{"drawdown doubled", func(s *types.BacktestSummary) { s.MaxDrawdownPct = 20 }, 15, 1},
		{"return down 60 percent", func(s *types.BacktestSummary) { s.ReturnPct = 20 }, 25, 1},
		// A negative return is also a >100% decline, so both weights stack.
		{"return goes negative", func(s *types.BacktestSummary) { s.ReturnPct = -5 }, 65, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			oos := base
			tc.mutate(&oos)
			analysis := CompareSamples(base, oos)
			assert.InDelta(t, tc.weight, analysis.Probability, 1e-9)
			assert.Len(t, analysis.Findings, tc.findings)
		})
	}
}

func TestCompareSamples_VerdictBuckets(t *testing.T) {
	cases := []struct {
		probability float64
		verdict     string
	}{
		{0, VerdictRobust},
		{15, VerdictRobust},
		{20, VerdictAcceptableDegradation},
		{40, VerdictPossibleOverfit},
		{70, VerdictHighlyLikelyOverfit},
		{155, VerdictHighlyLikelyOverfit},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.verdict, verdictFor(tc.probability), "probability %.0f", tc.probability)
	}
}

// verdictFor drives CompareSamples to a chosen score by stacking known
// degradations, then reads its verdict.
func verdictFor(target float64) string {
	inSample := types.BacktestSummary{
		SharpeRatio: 2.0, WinRate: 0.55, ProfitFactor: 2.0,
		MaxDrawdownPct: 10, ReturnPct: 50,
	}
	outOfSample := inSample

	switch target {
	case 0:
		// no change
	case 15:
		outOfSample.MaxDrawdownPct = 20
	case 20:
		outOfSample.WinRate = 0.35
	case 40:
		outOfSample.WinRate = 0.35
		outOfSample.SharpeRatio = 1.1
	case 70:
		outOfSample.SharpeRatio = 0.7
		outOfSample.ProfitFactor = 1.0
		outOfSample.MaxDrawdownPct = 20
	case 155:
		outOfSample.SharpeRatio = 0.3
		outOfSample.WinRate = 0.3
		outOfSample.ProfitFactor = 0.8
		outOfSample.MaxDrawdownPct = 25
		outOfSample.ReturnPct = -10
	}
	return CompareSamples(inSample, outOfSample).Verdict
}

func TestProjectLivePerformance(t *testing.T) {
	summary := types.BacktestSummary{ReturnPct: 50, SharpeRatio: 2.0, MaxDrawdownPct: 14}

	exp := ProjectLivePerformance(summary)

	assert.InDelta(t, 35, exp.Conservative.ReturnPct, 1e-9)
	assert.InDelta(t, 1.4, exp.Conservative.SharpeRatio, 1e-9)
	assert.InDelta(t, 20, exp.Conservative.MaxDrawdownPct, 1e-9)

	assert.InDelta(t, 40, exp.Moderate.ReturnPct, 1e-9)
	assert.InDelta(t, 45, exp.Optimistic.ReturnPct, 1e-9)

	// Drawdown only ever gets worse in projection.
	assert.Greater(t, exp.Optimistic.MaxDrawdownPct, summary.MaxDrawdownPct)
	assert.Greater(t, exp.Conservative.MaxDrawdownPct, exp.Moderate.MaxDrawdownPct)
}

func TestSplitByRatio(t *testing.T) {
	trades := make([]types.TradeRecord, 10)

	in, out := SplitByRatio(trades, 0.7)
	assert.Len(t, in, 7)
	assert.Len(t, out, 3)

	in, out = SplitByRatio(trades, 0)
	assert.Len(t, in, 10)
	assert.Nil(t, out)

	in, out = SplitByRatio(trades, 1.5)
	assert.Len(t, in, 10)
	assert.Nil(t, out)
}

func TestSplitByDate(t *testing.T) {
	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	trades := []types.TradeRecord{
		{ExitTime: cutoff.AddDate(0, -2, 0)},
		{ExitTime: cutoff.AddDate(0, -1, 0)},
		{ExitTime: cutoff},
		{ExitTime: cutoff.AddDate(0, 1, 0)},
	}

	in, out := SplitByDate(trades, cutoff)
	require.Len(t, in, 2)
	require.Len(t, out, 2)
	assert.True(t, out[0].ExitTime.Equal(cutoff))
}
