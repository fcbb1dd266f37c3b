package dto

import (
	"encoding/json"
	"math"
	"testing"

	"strategy-backtest/internal/backtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBacktestResultJSONSafe(t *testing.T) {
	result := BacktestResult{
		Symbol: "AAPL",
		Metrics: backtest.Metrics{
			ProfitFactor: math.Inf(1),
			SharpeRatio:  1.5,
		},
	}

	safe := result.JSONSafe()
	assert.Equal(t, 9999.0, safe.Metrics.ProfitFactor)
	assert.Equal(t, 1.5, safe.Metrics.SharpeRatio)
	// the original keeps the exact value
	assert.True(t, math.IsInf(result.Metrics.ProfitFactor, 1))

	_, err := json.Marshal(safe)
	require.NoError(t, err)
}

func TestBacktestResultJSONSafeFiniteUntouched(t *testing.T) {
	result := BacktestResult{Metrics: backtest.Metrics{ProfitFactor: 2.4}}
	assert.Equal(t, 2.4, result.JSONSafe().Metrics.ProfitFactor)
}
