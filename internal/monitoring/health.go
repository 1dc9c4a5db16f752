package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

var startTime = time.Now()

type HealthChecker struct {
	mu             sync.RWMutex
	lastEvaluation time.Time
	tradingHalted  bool
	errors         []string
}

type HealthStatus struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	LastEvaluation time.Time `json:"last_evaluation"`
	TradingHalted  bool      `json:"trading_halted"`
	Uptime         string    `json:"uptime"`
	Errors         []string  `json:"errors,omitempty"`
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		errors: make([]string, 0),
	}
}

// MarkEvaluation records that the risk gate is being driven by the strategy
func (h *HealthChecker) MarkEvaluation() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastEvaluation = time.Now()
}

// MarkHalted records the governor's halt state
func (h *HealthChecker) MarkHalted(halted bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tradingHalted = halted
}

// RecordError appends an error for the health report
func (h *HealthChecker) RecordError(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, msg)
	if len(h.errors) > 20 {
		h.errors = h.errors[1:]
	}
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if h.tradingHalted {
		status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	if len(h.errors) > 0 {
		status = "unhealthy"
		w.WriteHeader(http.StatusInternalServerError)
	}

	health := HealthStatus{
		Status:         status,
		Timestamp:      time.Now(),
		LastEvaluation: h.lastEvaluation,
		TradingHalted:  h.tradingHalted,
		Uptime:         time.Since(startTime).String(),
		Errors:         h.errors,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}
