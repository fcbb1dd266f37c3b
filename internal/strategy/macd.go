package strategy

import "strategy-backtest/internal/backtest"

// MACDStrategy signals on MACD line crossings of its signal line.
type MACDStrategy struct {
	fast   int
	slow   int
	signal int
}

func NewMACDStrategy(fast, slow, signal int) *MACDStrategy {
	if fast <= 0 {
		fast = 12
	}
	if slow <= 0 {
		slow = 26
	}
	if signal <= 0 {
		signal = 9
	}
	return &MACDStrategy{fast: fast, slow: slow, signal: signal}
}

func (s *MACDStrategy) Name() string {
	return "macd"
}

func (s *MACDStrategy) CalculateIndicators(series backtest.PriceSeries) (IndicatorSet, error) {
	macdLine, signalLine, histogram := MACD(series.Closes(), s.fast, s.slow, s.signal)
	return IndicatorSet{
		"macd":      macdLine,
		"signal":    signalLine,
		"histogram": histogram,
	}, nil
}

func (s *MACDStrategy) GenerateSignals(series backtest.PriceSeries) (backtest.SignalSeries, error) {
	macdLine, signalLine, _ := MACD(series.Closes(), s.fast, s.slow, s.signal)

	signals := make(backtest.SignalSeries, len(series))
	for i := 1; i < len(series); i++ {
		if !defined(macdLine[i-1], signalLine[i-1], macdLine[i], signalLine[i]) {
			continue
		}
		if macdLine[i-1] <= signalLine[i-1] && macdLine[i] > signalLine[i] {
			signals[i] = backtest.Buy
		} else if macdLine[i-1] >= signalLine[i-1] && macdLine[i] < signalLine[i] {
			signals[i] = backtest.Sell
		}
	}
	return signals, nil
}
