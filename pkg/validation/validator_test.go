package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamtrung93/fx-sentinel/pkg/types"
)

func fullSettings() types.BacktestSettings {
	return types.BacktestSettings{
		UsedTickData:       true,
		IncludedSpread:     true,
		IncludedCommission: true,
	}
}

// healthySummary passes every rule.
func healthySummary() types.BacktestSummary {
	return types.BacktestSummary{
		TotalTrades:          250,
		WinRate:              0.58,
		ProfitFactor:         1.9,
		SharpeRatio:          1.6,
		MaxDrawdownPct:       14.0,
		ReturnPct:            42.0,
		AvgWinLossRatio:      1.3,
		MaxConsecutiveWins:   7,
		MaxConsecutiveLosses: 5,
		DurationDays:         365,
		Settings:             fullSettings(),
	}
}

func TestValidate_HealthySummaryPasses(t *testing.T) {
	report := Validate(healthySummary())
	assert.True(t, report.IsValid())
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
}

func TestValidate_SubHundredTradesIsSingleWarning(t *testing.T) {
	summary := types.BacktestSummary{
		TotalTrades:          87,
		WinRate:              0.6,
		ProfitFactor:         1.82,
		SharpeRatio:          1.45,
		MaxDrawdownPct:       18.5,
		ReturnPct:            35.0,
		AvgWinLossRatio:      1.2,
		MaxConsecutiveWins:   6,
		MaxConsecutiveLosses: 4,
		DurationDays:         260,
		Settings:             fullSettings(),
	}

	report := Validate(summary)
	assert.True(t, report.IsValid())
	assert.Empty(t, report.Errors)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "below 100")
}

func TestValidate_ExcessiveWinRateAlwaysErrors(t *testing.T) {
	// Whatever the rest of the summary looks like, 95% win rate is a hard error.
	summaries := []types.BacktestSummary{
		healthySummary(),
		{},
		{TotalTrades: 1000, ProfitFactor: 2.0, SharpeRatio: 2.0, DurationDays: 500},
	}
	for _, summary := range summaries {
		summary.WinRate = 0.95
		report := Validate(summary)
		assert.False(t, report.IsValid())
		found := false
		for _, e := range report.Errors {
			if strings.Contains(e, "win rate") {
				found = true
			}
		}
		assert.True(t, found, "expected a win-rate hard error, got %v", report.Errors)
	}
}

func TestValidate_HardErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*types.BacktestSummary)
		want   string
	}{
		{"too few trades", func(s *types.BacktestSummary) { s.TotalTrades = 12 }, "insufficient trades"},
		{"losing profit factor", func(s *types.BacktestSummary) { s.ProfitFactor = 0.8 }, "below 1.0"},
		{"impossible profit factor", func(s *types.BacktestSummary) { s.ProfitFactor = 7.5 }, "unrealistically high"},
		{"infinite profit factor", func(s *types.BacktestSummary) { s.ProfitFactor = math.Inf(1) }, "unrealistically high"},
		{"negative sharpe", func(s *types.BacktestSummary) { s.SharpeRatio = -0.2 }, "negative Sharpe"},
		{"lethal drawdown", func(s *types.BacktestSummary) { s.MaxDrawdownPct = 62 }, "unsurvivable"},
		{"no losing streaks", func(s *types.BacktestSummary) { s.MaxConsecutiveLosses = 0 }, "zero consecutive losses"},
		{"improbable win streak", func(s *types.BacktestSummary) { s.MaxConsecutiveWins = 25 }, "consecutive wins"},
		{"no commission", func(s *types.BacktestSummary) { s.Settings.IncludedCommission = false }, "commission"},
		{"no spread", func(s *types.BacktestSummary) { s.Settings.IncludedSpread = false }, "spread"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			summary := healthySummary()
			tc.mutate(&summary)
			report := Validate(summary)
			assert.False(t, report.IsValid())
			joined := ""
			for _, e := range report.Errors {
				joined += e + "\n"
			}
			assert.Contains(t, joined, tc.want)
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*types.BacktestSummary)
		want   string
	}{
		{"thin profit factor", func(s *types.BacktestSummary) { s.ProfitFactor = 1.2 }, "thin edge"},
		{"weak sharpe", func(s *types.BacktestSummary) { s.SharpeRatio = 0.7 }, "weak risk-adjusted"},
		{"suspicious sharpe", func(s *types.BacktestSummary) { s.SharpeRatio = 3.4 }, "suspiciously smooth"},
		{"heavy drawdown", func(s *types.BacktestSummary) { s.MaxDrawdownPct = 38; s.ReturnPct = 60 }, "painful"},
		{"small wins", func(s *types.BacktestSummary) { s.AvgWinLossRatio = 0.6 }, "win/loss ratio"},
		{"long losing streak", func(s *types.BacktestSummary) { s.MaxConsecutiveLosses = 13 }, "losing streaks"},
		{"poor reward for risk", func(s *types.BacktestSummary) { s.ReturnPct = 10 }, "return/drawdown"},
		{"bar data only", func(s *types.BacktestSummary) { s.Settings.UsedTickData = false }, "tick data"},
		{"short history", func(s *types.BacktestSummary) { s.DurationDays = 90 }, "span"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			summary := healthySummary()
			tc.mutate(&summary)
			report := Validate(summary)
			assert.True(t, report.IsValid(), "warnings must not block validity: %v", report.Errors)
			joined := ""
			for _, w := range report.Warnings {
				joined += w + "\n"
			}
			assert.Contains(t, joined, tc.want)
		})
	}
}

func TestValidate_AllRulesEvaluatedNoShortCircuit(t *testing.T) {
	// A summary breaking several rules at once reports all of them.
	summary := types.BacktestSummary{
		TotalTrades:    5,
		WinRate:        0.95,
		ProfitFactor:   0.4,
		SharpeRatio:    -1.0,
		MaxDrawdownPct: 80,
	}
	report := Validate(summary)
	assert.False(t, report.IsValid())
	assert.GreaterOrEqual(t, len(report.Errors), 5)
}

func TestValidate_Deterministic(t *testing.T) {
	summary := healthySummary()
	summary.ProfitFactor = 1.2
	summary.SharpeRatio = 0.7

	first := Validate(summary)
	second := Validate(summary)
	assert.Equal(t, first, second)
}
