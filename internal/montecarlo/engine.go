package montecarlo

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	coreerrors "github.com/phamtrung93/fx-sentinel/internal/errors"
	"github.com/phamtrung93/fx-sentinel/internal/monitoring"
)

const (
	// DefaultMinSamples is the advisory floor below which bootstrap output is
	// statistically shaky. Short series still simulate (the caller may only
	// have a handful of trades) but the result carries a low-sample flag.
	DefaultMinSamples = 20

	// batchSize is the number of simulation paths per worker batch. Each batch
	// owns a derived RNG, which keeps results reproducible under parallelism.
	batchSize = 256
)

// Config controls one engine instance.
type Config struct {
	Seed       int64 // 0 selects a time-based seed
	MinSamples int   // 0 selects DefaultMinSamples
	Workers    int   // 0 selects runtime.NumCPU()
}

// Engine bootstraps historical per-trade returns into an empirical outcome
// distribution. Pure function of inputs plus seed; safe for concurrent use
// since each run derives its own RNGs.
type Engine struct {
	config Config
}

// SimulationResult holds the empirical distribution from one run. Discarded
// by the core once the caller has extracted percentiles.
type SimulationResult struct {
	RunID            string
	Seed             int64
	InputSampleCount int
	LowSample        bool
	ReturnSamples    []float64
	DrawdownSamples  []float64
}

// NewEngine creates a simulation engine. Tests must pass an explicit seed;
// production callers may leave it zero for a time-based one.
func NewEngine(config Config) *Engine {
	if config.MinSamples <= 0 {
		config.MinSamples = DefaultMinSamples
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Engine{config: config}
}

// Simulate draws numTradesPerSim returns with replacement for each of
// numSimulations paths, compounds each path's equity curve from a base of 100
// and records the final cumulative return plus the worst peak-to-trough
// drawdown seen along the path. Cancellation is cooperative between batches;
// a cancelled run returns the context error and no partial results.
func (e *Engine) Simulate(ctx context.Context, returns []float64, numSimulations, numTradesPerSim int) (*SimulationResult, error) {
	if len(returns) < 2 {
		return nil, coreerrors.Precondition(coreerrors.ErrInsufficientData, "montecarlo", "Simulate")
	}
	if numSimulations <= 0 {
		return nil, fmt.Errorf("numSimulations must be positive, got %d", numSimulations)
	}
	if numTradesPerSim <= 0 {
		return nil, fmt.Errorf("numTradesPerSim must be positive, got %d", numTradesPerSim)
	}

	seed := e.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	result := &SimulationResult{
		RunID:            uuid.New().String(),
		Seed:             seed,
		InputSampleCount: len(returns),
		LowSample:        len(returns) < e.config.MinSamples,
		ReturnSamples:    make([]float64, numSimulations),
		DrawdownSamples:  make([]float64, numSimulations),
	}

	numBatches := (numSimulations + batchSize - 1) / batchSize
	jobs := make(chan int, numBatches)
	for b := 0; b < numBatches; b++ {
		jobs <- b
	}
	close(jobs)

	workers := e.config.Workers
	if workers > numBatches {
		workers = numBatches
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case batch, ok := <-jobs:
					if !ok {
						return
					}
					e.runBatch(result, returns, batch, numSimulations, numTradesPerSim, seed)
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	monitoring.RecordSimulation()
	return result, nil
}

// runBatch fills the batch's disjoint slice region. The batch RNG is derived
// from the run seed and the batch index, so output is independent of worker
// scheduling.
func (e *Engine) runBatch(result *SimulationResult, returns []float64, batch, numSimulations, numTradesPerSim int, seed int64) {
	rng := rand.New(rand.NewSource(seed + int64(batch)*0x9E3779B9))

	start := batch * batchSize
	end := start + batchSize
	if end > numSimulations {
		end = numSimulations
	}

	for i := start; i < end; i++ {
		finalReturn, maxDrawdown := simulatePath(rng, returns, numTradesPerSim)
		result.ReturnSamples[i] = finalReturn
		result.DrawdownSamples[i] = maxDrawdown
	}
}

// simulatePath compounds one bootstrap path and tracks its running peak.
func simulatePath(rng *rand.Rand, returns []float64, numTrades int) (finalReturn, maxDrawdown float64) {
	equity := 100.0
	peak := equity

	for i := 0; i < numTrades; i++ {
		r := returns[rng.Intn(len(returns))]
		equity *= 1 + r/100
		if equity > peak {
			peak = equity
		}
		if peak > 0 {
			dd := (peak - equity) / peak * 100
			if dd > maxDrawdown {
				maxDrawdown = dd
			}
		}
	}

	return equity - 100, maxDrawdown
}
