package strategy

import "strategy-backtest/internal/backtest"

// RSIStrategy buys when the RSI crosses back up through the oversold
// level and sells when it crosses back down through the overbought
// level.
type RSIStrategy struct {
	period     int
	oversold   float64
	overbought float64
}

func NewRSIStrategy(period int, oversold, overbought float64) *RSIStrategy {
	if period <= 0 {
		period = 14
	}
	if oversold <= 0 {
		oversold = 30
	}
	if overbought <= 0 {
		overbought = 70
	}
	return &RSIStrategy{period: period, oversold: oversold, overbought: overbought}
}

func (s *RSIStrategy) Name() string {
	return "rsi"
}

func (s *RSIStrategy) CalculateIndicators(series backtest.PriceSeries) (IndicatorSet, error) {
	return IndicatorSet{
		"rsi": RSI(series.Closes(), s.period),
	}, nil
}

func (s *RSIStrategy) GenerateSignals(series backtest.PriceSeries) (backtest.SignalSeries, error) {
	rsi := RSI(series.Closes(), s.period)

	signals := make(backtest.SignalSeries, len(series))
	for i := 1; i < len(series); i++ {
		if !defined(rsi[i-1], rsi[i]) {
			continue
		}
		if rsi[i-1] < s.oversold && rsi[i] >= s.oversold {
			signals[i] = backtest.Buy
		} else if rsi[i-1] > s.overbought && rsi[i] <= s.overbought {
			signals[i] = backtest.Sell
		}
	}
	return signals, nil
}
