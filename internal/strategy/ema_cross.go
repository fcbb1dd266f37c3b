package strategy

import "strategy-backtest/internal/backtest"

// EMACross is the exponential variant of the moving average crossover.
type EMACross struct {
	fast int
	slow int
}

func NewEMACross(fast, slow int) *EMACross {
	if fast <= 0 {
		fast = 12
	}
	if slow <= 0 {
		slow = 26
	}
	return &EMACross{fast: fast, slow: slow}
}

func (s *EMACross) Name() string {
	return "ema_cross"
}

func (s *EMACross) CalculateIndicators(series backtest.PriceSeries) (IndicatorSet, error) {
	closes := series.Closes()
	return IndicatorSet{
		"ema_fast": EMA(closes, s.fast),
		"ema_slow": EMA(closes, s.slow),
	}, nil
}

func (s *EMACross) GenerateSignals(series backtest.PriceSeries) (backtest.SignalSeries, error) {
	closes := series.Closes()
	fast := EMA(closes, s.fast)
	slow := EMA(closes, s.slow)

	signals := make(backtest.SignalSeries, len(series))
	for i := 1; i < len(series); i++ {
		if !defined(fast[i-1], slow[i-1], fast[i], slow[i]) {
			continue
		}
		if fast[i-1] <= slow[i-1] && fast[i] > slow[i] {
			signals[i] = backtest.Buy
		} else if fast[i-1] >= slow[i-1] && fast[i] < slow[i] {
			signals[i] = backtest.Sell
		}
	}
	return signals, nil
}
