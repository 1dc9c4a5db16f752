package montecarlo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "github.com/phamtrung93/fx-sentinel/internal/errors"
)

func TestSimulate_RejectsInsufficientData(t *testing.T) {
	engine := NewEngine(Config{Seed: 42})

	_, err := engine.Simulate(context.Background(), nil, 100, 10)
	assert.ErrorIs(t, err, coreerrors.ErrInsufficientData)

	_, err = engine.Simulate(context.Background(), []float64{1.5}, 100, 10)
	assert.ErrorIs(t, err, coreerrors.ErrInsufficientData)
}

func TestSimulate_RejectsBadDimensions(t *testing.T) {
	engine := NewEngine(Config{Seed: 42})
	returns := []float64{2, -1, 3}

	_, err := engine.Simulate(context.Background(), returns, 0, 10)
	assert.Error(t, err)

	_, err = engine.Simulate(context.Background(), returns, 100, 0)
	assert.Error(t, err)
}

// TestSimulate_Reproducible: two runs with the same seed yield identical
// sample sequences even though batches execute on multiple workers.
func TestSimulate_Reproducible(t *testing.T) {
	returns := []float64{2, -1, 3, -2, 1, 0.5, -1.5, 2.5}

	first, err := NewEngine(Config{Seed: 42, Workers: 4}).
		Simulate(context.Background(), returns, 2000, 25)
	require.NoError(t, err)

	second, err := NewEngine(Config{Seed: 42, Workers: 1}).
		Simulate(context.Background(), returns, 2000, 25)
	require.NoError(t, err)

	assert.Equal(t, first.ReturnSamples, second.ReturnSamples)
	assert.Equal(t, first.DrawdownSamples, second.DrawdownSamples)
	assert.Equal(t, first.Seed, second.Seed)
}

func TestSimulate_DifferentSeedsDiffer(t *testing.T) {
	returns := []float64{2, -1, 3, -2, 1}

	a, err := NewEngine(Config{Seed: 1}).Simulate(context.Background(), returns, 500, 10)
	require.NoError(t, err)
	b, err := NewEngine(Config{Seed: 2}).Simulate(context.Background(), returns, 500, 10)
	require.NoError(t, err)

	assert.NotEqual(t, a.ReturnSamples, b.ReturnSamples)
}

// TestSimulate_SmallSeries reproduces the reference scenario: five returns,
// 1000 simulations of 5 trades, fixed seed.
func TestSimulate_SmallSeries(t *testing.T) {
	returns := []float64{2, -1, 3, -2, 1}

	result, err := NewEngine(Config{Seed: 1}).Simulate(context.Background(), returns, 1000, 5)
	require.NoError(t, err)

	assert.Len(t, result.ReturnSamples, 1000)
	assert.Len(t, result.DrawdownSamples, 1000)
	assert.True(t, result.LowSample, "five trades is below the advisory sample floor")

	dd95 := Percentile(result.DrawdownSamples, 95)
	assert.GreaterOrEqual(t, dd95, 0.0)
	assert.LessOrEqual(t, dd95, 100.0)
}

func TestSimulate_DrawdownsBounded(t *testing.T) {
	returns := []float64{5, -4, 3, -6, 2, 1, -2, 4, -3, 2}

	result, err := NewEngine(Config{Seed: 7}).Simulate(context.Background(), returns, 3000, 50)
	require.NoError(t, err)

	for _, dd := range result.DrawdownSamples {
		assert.GreaterOrEqual(t, dd, 0.0)
		assert.Less(t, dd, 100.0)
	}
}

func TestSimulate_AllPositiveReturnsNeverDrawDown(t *testing.T) {
	returns := []float64{1, 2, 0.5, 3}

	result, err := NewEngine(Config{Seed: 3}).Simulate(context.Background(), returns, 200, 20)
	require.NoError(t, err)

	for i, dd := range result.DrawdownSamples {
		assert.Zero(t, dd, "path %d", i)
		assert.Greater(t, result.ReturnSamples[i], 0.0)
	}
}

func TestSimulate_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	returns := []float64{2, -1, 3, -2, 1}
	_, err := NewEngine(Config{Seed: 42}).Simulate(ctx, returns, 100000, 100)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulate_TimeBasedSeedWhenZero(t *testing.T) {
	returns := []float64{2, -1, 3}

	before := time.Now().UnixNano()
	result, err := NewEngine(Config{}).Simulate(context.Background(), returns, 10, 5)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Seed, before)
}
