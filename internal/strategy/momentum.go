package strategy

import "strategy-backtest/internal/backtest"

// MomentumStrategy follows trend persistence: buy when the lookback
// return exceeds the threshold, sell when it falls below the negative
// threshold.
type MomentumStrategy struct {
	lookback  int
	threshold float64
}

func NewMomentumStrategy(lookback int, threshold float64) *MomentumStrategy {
	if lookback <= 0 {
		lookback = 10
	}
	if threshold <= 0 {
		threshold = 0.03
	}
	return &MomentumStrategy{lookback: lookback, threshold: threshold}
}

func (s *MomentumStrategy) Name() string {
	return "momentum"
}

func (s *MomentumStrategy) CalculateIndicators(series backtest.PriceSeries) (IndicatorSet, error) {
	return IndicatorSet{
		"roc": RateOfChange(series.Closes(), s.lookback),
	}, nil
}

func (s *MomentumStrategy) GenerateSignals(series backtest.PriceSeries) (backtest.SignalSeries, error) {
	roc := RateOfChange(series.Closes(), s.lookback)

	signals := make(backtest.SignalSeries, len(series))
	for i := range series {
		if !defined(roc[i]) {
			continue
		}
		if roc[i] > s.threshold {
			signals[i] = backtest.Buy
		} else if roc[i] < -s.threshold {
			signals[i] = backtest.Sell
		}
	}
	return signals, nil
}
