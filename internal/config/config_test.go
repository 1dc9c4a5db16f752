package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamtrung93/fx-sentinel/internal/risk"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "default", cfg.Strategy.Name)
	assert.Equal(t, "EURUSD", cfg.Strategy.Symbol)
	assert.Equal(t, "trades.db", cfg.Journal.DatabasePath)
	assert.Equal(t, 1000, cfg.Simulation.Iterations)
	assert.Equal(t, 2*time.Minute, cfg.Simulation.Timeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRADING_SYMBOL", "GBPJPY")
	t.Setenv("MC_ITERATIONS", "5000")
	t.Setenv("EQUITY_AT_RISK_PCT", "2.5")
	t.Setenv("MC_TIMEOUT", "30s")

	cfg := Load()
	assert.Equal(t, "GBPJPY", cfg.Strategy.Symbol)
	assert.Equal(t, 5000, cfg.Simulation.Iterations)
	assert.InDelta(t, 2.5, cfg.Strategy.EquityAtRisk, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.Simulation.Timeout)
}

func TestLoad_MalformedEnvFallsBack(t *testing.T) {
	t.Setenv("MC_ITERATIONS", "lots")
	cfg := Load()
	assert.Equal(t, 1000, cfg.Simulation.Iterations)
}

func TestLoadEnvFile_MissingIsNotAnError(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")))
}

func TestLoadRiskLimits_EmptyPathReturnsDefaults(t *testing.T) {
	limits, err := LoadRiskLimits("")
	require.NoError(t, err)
	assert.Equal(t, risk.DefaultRiskLimits(), limits)
}

func TestLoadRiskLimits_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("risk:\n  max_daily_loss_pct: 1.5\n"), 0o644))

	limits, err := LoadRiskLimits(path)
	require.NoError(t, err)

	defaults := risk.DefaultRiskLimits()
	assert.InDelta(t, 1.5, limits.MaxDailyLossPct, 1e-9)
	assert.InDelta(t, defaults.MaxWeeklyLossPct, limits.MaxWeeklyLossPct, 1e-9)
	assert.InDelta(t, defaults.MaxDrawdownPct, limits.MaxDrawdownPct, 1e-9)
	assert.Equal(t, defaults.MaxConcurrentPositions, limits.MaxConcurrentPositions)
}

func TestLoadRiskLimits_RejectsInvalidLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("risk:\n  max_daily_loss_pct: -2\n"), 0o644))

	_, err := LoadRiskLimits(path)
	assert.Error(t, err)
}

func TestLoadRiskLimits_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("risk: [not a map"), 0o644))

	_, err := LoadRiskLimits(path)
	assert.Error(t, err)
}
