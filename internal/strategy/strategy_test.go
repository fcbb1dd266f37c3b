package strategy

import (
	"testing"
	"time"

	"strategy-backtest/internal/backtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesFromCloses(closes []float64) backtest.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	series := make(backtest.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = backtest.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return series
}

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	names := registry.List()
	assert.Contains(t, names, "sma_cross")
	assert.Contains(t, names, "rsi")
	assert.Contains(t, names, "macd")
	assert.Contains(t, names, "breakout")

	s, err := registry.Get("sma_cross")
	require.NoError(t, err)
	assert.Equal(t, "sma_cross", s.Name())

	_, err = registry.Get("does_not_exist")
	assert.Error(t, err)
}

func TestSignalSeriesAlwaysAligned(t *testing.T) {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + float64(i%7)
	}
	series := seriesFromCloses(closes)

	registry := DefaultRegistry()
	for _, name := range registry.List() {
		name := name
		t.Run(name, func(t *testing.T) {
			s, err := registry.Get(name)
			require.NoError(t, err)

			signals, err := s.GenerateSignals(series)
			require.NoError(t, err)
			assert.Len(t, signals, len(series))
		})
	}
}

func TestSMACrossSignals(t *testing.T) {
	// flat, then a sharp ramp up, then a sharp drop; the fast average
	// crosses the slow one on each regime change
	closes := make([]float64, 0, 30)
	for i := 0; i < 10; i++ {
		closes = append(closes, 100)
	}
	for i := 0; i < 10; i++ {
		closes = append(closes, 100+float64(i+1)*5)
	}
	for i := 0; i < 10; i++ {
		closes = append(closes, 150-float64(i+1)*10)
	}

	s := NewSMACross(3, 8)
	signals, err := s.GenerateSignals(seriesFromCloses(closes))
	require.NoError(t, err)

	var buys, sells int
	firstBuy, firstSell := -1, -1
	for i, sig := range signals {
		switch sig {
		case backtest.Buy:
			buys++
			if firstBuy < 0 {
				firstBuy = i
			}
		case backtest.Sell:
			sells++
			if firstSell < 0 {
				firstSell = i
			}
		}
	}

	assert.Equal(t, 1, buys)
	assert.Equal(t, 1, sells)
	assert.Greater(t, firstSell, firstBuy)
	// warm-up bars yield hold
	for i := 0; i < 8; i++ {
		assert.Equal(t, backtest.Hold, signals[i])
	}
}

func TestRSIStrategySignals(t *testing.T) {
	// sell-off deep enough to push RSI below 30, then a recovery that
	// crosses back up through it
	closes := []float64{100, 98, 96, 94, 92, 90, 88, 86, 84, 82, 80, 85, 90, 95}

	s := NewRSIStrategy(5, 30, 70)
	signals, err := s.GenerateSignals(seriesFromCloses(closes))
	require.NoError(t, err)

	var buys int
	for _, sig := range signals {
		if sig == backtest.Buy {
			buys++
		}
	}
	assert.GreaterOrEqual(t, buys, 1)
}

func TestBreakoutStrategySignals(t *testing.T) {
	closes := []float64{100, 100, 100, 100, 100, 100, 120, 120, 80, 80}

	s := NewBreakoutStrategy(5)
	signals, err := s.GenerateSignals(seriesFromCloses(closes))
	require.NoError(t, err)

	assert.Equal(t, backtest.Buy, signals[6])
	assert.Equal(t, backtest.Sell, signals[8])
}

func TestBollingerStrategySignals(t *testing.T) {
	closes := make([]float64, 0, 25)
	for i := 0; i < 20; i++ {
		closes = append(closes, 100+float64(i%2)) // tight band around 100.5
	}
	closes = append(closes, 110, 110, 90, 90, 100)

	s := NewBollingerStrategy(20, 2)
	signals, err := s.GenerateSignals(seriesFromCloses(closes))
	require.NoError(t, err)

	assert.Equal(t, backtest.Sell, signals[20])
	assert.Equal(t, backtest.Buy, signals[22])
}

func TestCalculateIndicatorsShape(t *testing.T) {
	series := seriesFromCloses([]float64{100, 101, 102, 103, 104, 105, 106, 107, 108, 109})

	s := NewSMACross(3, 5)
	set, err := s.CalculateIndicators(series)
	require.NoError(t, err)

	require.Contains(t, set, "sma_fast")
	require.Contains(t, set, "sma_slow")
	assert.Len(t, set["sma_fast"], len(series))
	assert.Len(t, set["sma_slow"], len(series))
}
