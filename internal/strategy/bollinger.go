package strategy

import "strategy-backtest/internal/backtest"

// BollingerStrategy buys a close below the lower band and sells a close
// above the upper band.
type BollingerStrategy struct {
	period int
	numStd float64
}

func NewBollingerStrategy(period int, numStd float64) *BollingerStrategy {
	if period <= 0 {
		period = 20
	}
	if numStd <= 0 {
		numStd = 2
	}
	return &BollingerStrategy{period: period, numStd: numStd}
}

func (s *BollingerStrategy) Name() string {
	return "bollinger"
}

func (s *BollingerStrategy) CalculateIndicators(series backtest.PriceSeries) (IndicatorSet, error) {
	closes := series.Closes()
	mid := SMA(closes, s.period)
	std := RollingStd(closes, s.period)

	upper := nanSlice(len(closes))
	lower := nanSlice(len(closes))
	for i := range closes {
		if defined(mid[i], std[i]) {
			upper[i] = mid[i] + s.numStd*std[i]
			lower[i] = mid[i] - s.numStd*std[i]
		}
	}
	return IndicatorSet{
		"middle": mid,
		"upper":  upper,
		"lower":  lower,
	}, nil
}

func (s *BollingerStrategy) GenerateSignals(series backtest.PriceSeries) (backtest.SignalSeries, error) {
	closes := series.Closes()
	mid := SMA(closes, s.period)
	std := RollingStd(closes, s.period)

	signals := make(backtest.SignalSeries, len(series))
	for i := range series {
		if !defined(mid[i], std[i]) {
			continue
		}
		upper := mid[i] + s.numStd*std[i]
		lower := mid[i] - s.numStd*std[i]
		if closes[i] < lower {
			signals[i] = backtest.Buy
		} else if closes[i] > upper {
			signals[i] = backtest.Sell
		}
	}
	return signals, nil
}
