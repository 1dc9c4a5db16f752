package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Risk gate metrics
	evaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_evaluations_total",
			Help: "Total number of risk gate evaluations",
		},
		[]string{"strategy", "result"},
	)

	breachesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_breaches_total",
			Help: "Total number of risk limit breaches",
		},
		[]string{"strategy", "limit"},
	)

	tradingHalted = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "risk_trading_halted",
			Help: "Whether trading is currently halted (1) or enabled (0)",
		},
		[]string{"strategy"},
	)

	drawdownPct = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "risk_drawdown_percent",
			Help: "Current drawdown from high-water mark in percent",
		},
		[]string{"strategy"},
	)

	openPositions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "risk_open_positions",
			Help: "Number of currently open positions",
		},
		[]string{"strategy"},
	)

	// Sizing metrics
	positionSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sizing_position_size",
			Help:    "Distribution of computed position sizes",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		},
		[]string{"algorithm"},
	)

	sizingRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sizing_rejections_total",
			Help: "Total number of sizing requests rejected on preconditions",
		},
		[]string{"algorithm", "reason"},
	)

	// Simulation metrics
	simulationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "montecarlo_simulations_total",
			Help: "Total number of Monte Carlo simulation runs",
		},
	)
)

func init() {
	prometheus.MustRegister(evaluationsTotal)
	prometheus.MustRegister(breachesTotal)
	prometheus.MustRegister(tradingHalted)
	prometheus.MustRegister(drawdownPct)
	prometheus.MustRegister(openPositions)
	prometheus.MustRegister(positionSize)
	prometheus.MustRegister(sizingRejections)
	prometheus.MustRegister(simulationsTotal)
}

// MetricsHandler handles Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordEvaluation records the outcome of one risk gate evaluation
func RecordEvaluation(strategy string, allowed bool) {
	result := "allowed"
	if !allowed {
		result = "blocked"
	}
	evaluationsTotal.WithLabelValues(strategy, result).Inc()
}

// RecordBreach records a breached limit
func RecordBreach(strategy, limit string) {
	breachesTotal.WithLabelValues(strategy, limit).Inc()
}

// SetTradingHalted updates the halt gauge
func SetTradingHalted(strategy string, halted bool) {
	v := 0.0
	if halted {
		v = 1.0
	}
	tradingHalted.WithLabelValues(strategy).Set(v)
}

// SetDrawdown updates the current drawdown gauge
func SetDrawdown(strategy string, pct float64) {
	drawdownPct.WithLabelValues(strategy).Set(pct)
}

// SetOpenPositions updates the open position gauge
func SetOpenPositions(strategy string, count int) {
	openPositions.WithLabelValues(strategy).Set(float64(count))
}

// RecordPositionSize records a successfully computed size
func RecordPositionSize(algorithm string, size float64) {
	positionSize.WithLabelValues(algorithm).Observe(size)
}

// RecordSizingRejection records a sizing precondition failure
func RecordSizingRejection(algorithm, reason string) {
	sizingRejections.WithLabelValues(algorithm, reason).Inc()
}

// RecordSimulation records one Monte Carlo run
func RecordSimulation() {
	simulationsTotal.Inc()
}
