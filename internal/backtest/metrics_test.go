package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTotalReturn(t *testing.T) {
	tests := []struct {
		name   string
		equity []float64
		want   float64
	}{
		{name: "empty curve", equity: nil, want: 0},
		{name: "single point", equity: []float64{10000}, want: 0},
		{name: "gain", equity: []float64{10000, 10500, 11000}, want: 0.1},
		{name: "loss", equity: []float64{10000, 9000}, want: -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TotalReturn(tt.equity), 1e-9)
		})
	}
}

func TestSharpeRatioZeroVariance(t *testing.T) {
	// constant returns, including all-zero, must yield exactly 0
	assert.Zero(t, SharpeRatio([]float64{0, 0, 0, 0}, 0))
	assert.Zero(t, SharpeRatio([]float64{0.01, 0.01, 0.01}, 0.02))
	assert.Zero(t, SharpeRatio(nil, 0.02))
}

func TestSharpeRatioPositiveDrift(t *testing.T) {
	returns := []float64{0.01, 0.02, -0.005, 0.015, 0.01}
	got := SharpeRatio(returns, 0.02)
	assert.Positive(t, got)

	// higher volatility with the same mean lowers the ratio
	noisier := []float64{0.05, -0.03, 0.04, -0.02, 0.01}
	assert.Greater(t, got, SharpeRatio(noisier, 0.02))
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		equity []float64
		want   float64
	}{
		{name: "short curve", equity: []float64{10000}, want: 0},
		{name: "strictly increasing", equity: []float64{100, 110, 120, 130}, want: 0},
		{name: "single dip", equity: []float64{100, 120, 90, 130}, want: 0.25},
		{name: "uses deepest trough", equity: []float64{100, 80, 95, 50, 100}, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MaxDrawdown(tt.equity), 1e-9)
		})
	}
}

func TestWinRate(t *testing.T) {
	assert.Zero(t, WinRate(nil))

	trades := []Trade{
		{Profit: 100},
		{Profit: -50},
		{Profit: 25},
		{Profit: -10},
	}
	assert.InDelta(t, 0.5, WinRate(trades), 1e-9)
}

func TestProfitFactor(t *testing.T) {
	tests := []struct {
		name   string
		trades []Trade
		want   float64
	}{
		{name: "no trades", trades: nil, want: 0},
		{name: "only losses", trades: []Trade{{Profit: -100}}, want: 0},
		{name: "mixed", trades: []Trade{{Profit: 300}, {Profit: -100}, {Profit: -50}}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ProfitFactor(tt.trades), 1e-9)
		})
	}

	// zero gross loss with profit present is +Inf, not an error
	assert.True(t, math.IsInf(ProfitFactor([]Trade{{Profit: 100}}), 1))
}

func TestComputeMetricsBundle(t *testing.T) {
	equity := []float64{10000, 10200, 10100, 10500}
	trades := []Trade{
		{Profit: 300, ProfitPct: 3},
		{Profit: -100, ProfitPct: -1},
	}

	m := ComputeMetrics(equity, trades, 10000, 0.02)

	assert.Equal(t, 10000.0, m.InitialCapital)
	assert.Equal(t, 10500.0, m.FinalValue)
	assert.InDelta(t, 0.05, m.TotalReturn, 1e-9)
	assert.InDelta(t, 5.0, m.TotalReturnPct, 1e-9)
	assert.InDelta(t, 0.5, m.WinRate, 1e-9)
	assert.InDelta(t, 50.0, m.WinRatePct, 1e-9)
	assert.InDelta(t, 3.0, m.ProfitFactor, 1e-9)
	assert.Equal(t, 2, m.TotalTrades)
	assert.Equal(t, 1, m.WinningTrades)
	assert.Equal(t, 1, m.LosingTrades)
	assert.InDelta(t, 100.0, m.AvgProfit, 1e-9)
	assert.InDelta(t, 300.0, m.AvgWin, 1e-9)
	assert.InDelta(t, -100.0, m.AvgLoss, 1e-9)
	assert.Positive(t, m.MaxDrawdownPct)
}

func TestComputeMetricsNoTrades(t *testing.T) {
	// zero trades is a valid, common backtest outcome, not a failure;
	// the Sharpe ratio still comes from the equity curve alone
	equity := []float64{10000, 10000, 10000}

	m := ComputeMetrics(equity, nil, 10000, 0.02)

	assert.Zero(t, m.WinRate)
	assert.Zero(t, m.ProfitFactor)
	assert.Zero(t, m.SharpeRatio)
	assert.Zero(t, m.TotalTrades)
	assert.Equal(t, 10000.0, m.FinalValue)
}

func TestComputeMetricsFromSimulation(t *testing.T) {
	series := makeSeries(100, 102, 101, 105, 103)
	signals := SignalSeries{Hold, Buy, Hold, Sell, Hold}

	result, err := Simulate(series, signals, SimulationConfig{InitialCapital: 10000})
	assert.NoError(t, err)

	m := ComputeMetrics(result.EquityCurve, result.Trades, 10000, 0.02)
	assert.Equal(t, 1, m.TotalTrades)
	assert.InDelta(t, 10294.0, m.FinalValue, 1e-9)
	assert.InDelta(t, 100.0, m.WinRatePct, 1e-9)
	assert.True(t, math.IsInf(m.ProfitFactor, 1))
}

func TestTradeDurationUsesCalendarDays(t *testing.T) {
	entry := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	series := PriceSeries{
		{Date: entry, Close: 100, Open: 100, High: 100, Low: 100, Volume: 1},
		{Date: entry.AddDate(0, 0, 7), Close: 110, Open: 110, High: 110, Low: 110, Volume: 1},
	}
	signals := SignalSeries{Buy, Sell}

	result, err := Simulate(series, signals, SimulationConfig{InitialCapital: 1000})
	assert.NoError(t, err)
	assert.Equal(t, 7, result.Trades[0].DurationDays)
}
