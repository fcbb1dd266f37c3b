package strategy

import "strategy-backtest/internal/backtest"

// SMACross signals on simple moving average crossovers: buy when the
// fast average crosses above the slow one, sell when it crosses below.
type SMACross struct {
	fast int
	slow int
}

func NewSMACross(fast, slow int) *SMACross {
	if fast <= 0 {
		fast = 20
	}
	if slow <= 0 {
		slow = 50
	}
	return &SMACross{fast: fast, slow: slow}
}

func (s *SMACross) Name() string {
	return "sma_cross"
}

func (s *SMACross) CalculateIndicators(series backtest.PriceSeries) (IndicatorSet, error) {
	closes := series.Closes()
	return IndicatorSet{
		"sma_fast": SMA(closes, s.fast),
		"sma_slow": SMA(closes, s.slow),
	}, nil
}

func (s *SMACross) GenerateSignals(series backtest.PriceSeries) (backtest.SignalSeries, error) {
	closes := series.Closes()
	fast := SMA(closes, s.fast)
	slow := SMA(closes, s.slow)

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
