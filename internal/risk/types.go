package risk

import (
	"fmt"
	"time"

	"github.com/phamtrung93/fx-sentinel/pkg/types"
)

// AccountSnapshot is the per-evaluation view of the account supplied by the
// strategy driver. It is read once per risk check and never retained.
type AccountSnapshot struct {
	Equity    float64
	Balance   float64
	Timestamp time.Time
}

// RiskLimits is the immutable limit configuration for one session.
// Convention (documented, not enforced): MaxDrawdownPct >= MaxWeeklyLossPct >=
// MaxDailyLossPct, so the slower limits are the wider ones.
type RiskLimits struct {
	MaxDailyLossPct        float64 `yaml:"max_daily_loss_pct"`
	MaxWeeklyLossPct       float64 `yaml:"max_weekly_loss_pct"`
	MaxDrawdownPct         float64 `yaml:"max_drawdown_pct"`
	MaxConcurrentPositions int     `yaml:"max_concurrent_positions"`
}

// Validate checks that every limit is positive
func (l RiskLimits) Validate() error {
	if l.MaxDailyLossPct <= 0 {
		return fmt.Errorf("max daily loss must be positive, got %.2f", l.MaxDailyLossPct)
	}
	if l.MaxWeeklyLossPct <= 0 {
		return fmt.Errorf("max weekly loss must be positive, got %.2f", l.MaxWeeklyLossPct)
	}
	if l.MaxDrawdownPct <= 0 {
		return fmt.Errorf("max drawdown must be positive, got %.2f", l.MaxDrawdownPct)
	}
	if l.MaxConcurrentPositions <= 0 {
		return fmt.Errorf("max concurrent positions must be positive, got %d", l.MaxConcurrentPositions)
	}
	return nil
}

// DefaultRiskLimits returns a conservative limit set
func DefaultRiskLimits() RiskLimits {
	return RiskLimits{
		MaxDailyLossPct:        2.0,
		MaxWeeklyLossPct:       5.0,
		MaxDrawdownPct:         10.0,
		MaxConcurrentPositions: 3,
	}
}

// RiskState is the governor's session state. It is owned and mutated
// exclusively by the Governor; Statistics returns copies.
type RiskState struct {
	StartingDailyEquity  float64
	StartingWeeklyEquity float64
	HighWaterMark        float64
	LastDailyReset       time.Time
	LastWeeklyReset      time.Time
	TradingEnabled       bool
	OpenPositionCount    int
}

// BreachKind identifies which limit halted the session
type BreachKind string

const (
	BreachNone     BreachKind = ""
	BreachDrawdown BreachKind = "max_drawdown"
	BreachWeekly   BreachKind = "weekly_loss"
	BreachDaily    BreachKind = "daily_loss"
)

// Decision is the outcome of one risk gate evaluation. A false Allow with an
// empty Breach means the call was blocked without halting the session
// (position-count limit or an earlier halt still in effect).
type Decision struct {
	Allow           bool
	Reason          string
	Breach          BreachKind
	DrawdownWarning bool
}

// OrderExecutor is the capability the order-execution platform adapter
// implements. The governor only ever consumes CloseAll, and only as an
// advisory signal; it never cancels orders itself.
type OrderExecutor interface {
	Submit(symbol string, direction types.TradeDirection, volume float64) error
	CloseAll(reason string) error
}
