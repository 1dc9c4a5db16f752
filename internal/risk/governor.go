package risk

import (
	"fmt"
	"sync"
	"time"

	"github.com/phamtrung93/fx-sentinel/internal/logger"
	"github.com/phamtrung93/fx-sentinel/internal/monitoring"
)

// Governor gates every new-position request against the session's loss and
// exposure limits and owns the canonical "is trading currently allowed" state.
// One Governor instance per strategy instance; Evaluate is driven from the
// strategy's bar/tick callback on a single thread. The mutex exists for
// observability reads (Statistics, CanOpenNewPosition) from other goroutines,
// not to support concurrent drivers.
type Governor struct {
	strategy string
	limits   RiskLimits
	logger   *logger.Logger
	executor OrderExecutor

	state           RiskState
	nextDailyReset  time.Time
	nextWeeklyReset time.Time
	drawdownWarned  bool

	mu sync.RWMutex
}

// NewGovernor creates a governor for one trading session. startingEquity seeds
// the daily/weekly baselines and the high-water mark; now anchors the first
// reset boundaries.
func NewGovernor(strategy string, limits RiskLimits, startingEquity float64, now time.Time, log *logger.Logger, executor OrderExecutor) (*Governor, error) {
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid risk limits: %w", err)
	}
	if startingEquity <= 0 {
		return nil, fmt.Errorf("starting equity must be positive, got %.2f", startingEquity)
	}
	if log == nil {
		log = logger.NewDiscardLogger()
	}

	g := &Governor{
		strategy: strategy,
		limits:   limits,
		logger:   log,
		executor: executor,
		state: RiskState{
			StartingDailyEquity:  startingEquity,
			StartingWeeklyEquity: startingEquity,
			HighWaterMark:        startingEquity,
			LastDailyReset:       now,
			LastWeeklyReset:      now,
			TradingEnabled:       true,
		},
		nextDailyReset:  NextDailyReset(now),
		nextWeeklyReset: NextWeeklyReset(now),
	}

	monitoring.SetTradingHalted(strategy, false)

	return g, nil
}

// Evaluate runs the full risk check against the current account snapshot. It
// must be called before any sizing decision. Limit breaches flip the session
// into a halted state that only ReEnable clears; the position-count limit only
// blocks the current call.
func (g *Governor) Evaluate(snapshot AccountSnapshot, now time.Time) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.applyResets(snapshot.Equity, now)

	if snapshot.Equity > g.state.HighWaterMark {
		g.state.HighWaterMark = snapshot.Equity
	}

	decision := g.evaluateLocked(snapshot)

	monitoring.RecordEvaluation(g.strategy, decision.Allow)
	return decision
}

func (g *Governor) evaluateLocked(snapshot AccountSnapshot) Decision {
	if !g.state.TradingEnabled {
		return Decision{
			Allow:  false,
			Reason: "trading halted by earlier limit breach, explicit re-enable required",
		}
	}

	drawdown := lossPercent(g.state.HighWaterMark, snapshot.Equity)
	weeklyLoss := lossPercent(g.state.StartingWeeklyEquity, snapshot.Equity)
	dailyLoss := lossPercent(g.state.StartingDailyEquity, snapshot.Equity)

	monitoring.SetDrawdown(g.strategy, drawdown)

	// Most severe limit wins the report; any of the three halts the session.
	switch {
	case drawdown >= g.limits.MaxDrawdownPct:
		return g.breach(BreachDrawdown, drawdown, g.limits.MaxDrawdownPct)
	case weeklyLoss >= g.limits.MaxWeeklyLossPct:
		return g.breach(BreachWeekly, weeklyLoss, g.limits.MaxWeeklyLossPct)
	case dailyLoss >= g.limits.MaxDailyLossPct:
		return g.breach(BreachDaily, dailyLoss, g.limits.MaxDailyLossPct)
	}

	// The decision carries the warning on every call; the log gets one line
	// per excursion into the zone. Evaluate runs on every tick, so logging
	// unconditionally here would mean file I/O on the hot path.
	warning := drawdown >= g.limits.MaxDrawdownPct*0.5
	if warning && !g.drawdownWarned {
		g.drawdownWarned = true
		g.logger.Warning("Drawdown %.2f%% is past half of the %.2f%% limit", drawdown, g.limits.MaxDrawdownPct)
	} else if !warning {
		g.drawdownWarned = false
	}

	if g.state.OpenPositionCount >= g.limits.MaxConcurrentPositions {
		return Decision{
			Allow:           false,
			Reason:          fmt.Sprintf("max concurrent positions reached (%d)", g.limits.MaxConcurrentPositions),
			DrawdownWarning: warning,
		}
	}

	return Decision{Allow: true, Reason: "within limits", DrawdownWarning: warning}
}

// breach halts the session and emits the advisory flatten signal. The signal
// is advisory: order cancellation is the executor's job, not the governor's.
func (g *Governor) breach(kind BreachKind, current, limit float64) Decision {
	g.state.TradingEnabled = false

	g.logger.LogBreach(string(kind), current, limit)
	monitoring.RecordBreach(g.strategy, string(kind))
	monitoring.SetTradingHalted(g.strategy, true)

	reason := fmt.Sprintf("%s limit breached: %.2f%% >= %.2f%%", kind, current, limit)
	if g.executor != nil {
		err := g.executor.CloseAll(reason)
		g.logger.LogFlattenSignal(reason, err)
	}

	return Decision{Allow: false, Reason: reason, Breach: kind}
}

// applyResets rolls the daily and weekly baselines when a calendar boundary
// has been crossed since the previous evaluation.
func (g *Governor) applyResets(equity float64, now time.Time) {
	if !now.Before(g.nextDailyReset) {
		g.state.StartingDailyEquity = equity
		g.state.LastDailyReset = now
		g.nextDailyReset = NextDailyReset(now)
		g.logger.Info("Daily loss baseline reset to %.2f", equity)
	}
	if !now.Before(g.nextWeeklyReset) {
		g.state.StartingWeeklyEquity = equity
		g.state.LastWeeklyReset = now
		g.nextWeeklyReset = NextWeeklyReset(now)
		g.logger.Info("Weekly loss baseline reset to %.2f", equity)
	}
}

// CanOpenNewPosition is the read-only composite of the halt flag and the
// position-count limit. It performs no resets and no side effects.
func (g *Governor) CanOpenNewPosition() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state.TradingEnabled && g.state.OpenPositionCount < g.limits.MaxConcurrentPositions
}

// ReEnable clears a halt. Operator action only, never called automatically.
func (g *Governor) ReEnable() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state.TradingEnabled = true
	g.logger.LogOverride("trading re-enabled")
	monitoring.SetTradingHalted(g.strategy, false)
}

// Disable halts trading without a breach. Operator action only.
func (g *Governor) Disable() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state.TradingEnabled = false
	g.logger.LogOverride("trading disabled")
	monitoring.SetTradingHalted(g.strategy, true)
}

// PositionOpened records a new open position from the strategy driver
func (g *Governor) PositionOpened() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state.OpenPositionCount++
	monitoring.SetOpenPositions(g.strategy, g.state.OpenPositionCount)
}

// PositionClosed records a closed position from the strategy driver
func (g *Governor) PositionClosed() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.OpenPositionCount > 0 {
		g.state.OpenPositionCount--
	}
	monitoring.SetOpenPositions(g.strategy, g.state.OpenPositionCount)
}

// Statistics returns a read-only copy of the session state
func (g *Governor) Statistics() RiskState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Limits returns the session's immutable limit configuration
func (g *Governor) Limits() RiskLimits {
	return g.limits
}

// lossPercent is the percentage decline of current below baseline, zero when
// current is at or above the baseline.
func lossPercent(baseline, current float64) float64 {
	if baseline <= 0 {
		return 0
	}
	loss := (baseline - current) / baseline * 100
	if loss < 0 {
		return 0
	}
	return loss
}
