package strategy

import "strategy-backtest/internal/backtest"

// BreakoutStrategy buys a close above the prior lookback high and sells
// a close below the prior lookback low (Donchian channel break).
type BreakoutStrategy struct {
	lookback int
}

func NewBreakoutStrategy(lookback int) *BreakoutStrategy {
	if lookback <= 0 {
		lookback = 20
	}
	return &BreakoutStrategy{lookback: lookback}
}

func (s *BreakoutStrategy) Name() string {
	return "breakout"
}

func (s *BreakoutStrategy) CalculateIndicators(series backtest.PriceSeries) (IndicatorSet, error) {
	return IndicatorSet{
		"channel_high": RollingMax(series.Highs(), s.lookback),
		"channel_low":  RollingMin(series.Lows(), s.lookback),
	}, nil
}

func (s *BreakoutStrategy) GenerateSignals(series backtest.PriceSeries) (backtest.SignalSeries, error) {
	highs := RollingMax(series.Highs(), s.lookback)
	lows := RollingMin(series.Lows(), s.lookback)
	closes := series.Closes()

	signals := make(backtest.SignalSeries, len(series))
	for i := range series {
		if !defined(highs[i], lows[i]) {
			continue
		}
		if closes[i] > highs[i] {
			signals[i] = backtest.Buy
		} else if closes[i] < lows[i] {
			signals[i] = backtest.Sell
		}
	}
	return signals, nil
}
