package strategy

import "strategy-backtest/internal/backtest"

// MeanReversionStrategy trades the z-score of the close against its
// moving average: buy deep discounts, sell rich premiums.
type MeanReversionStrategy struct {
	period    int
	threshold float64
}

func NewMeanReversionStrategy(period int, threshold float64) *MeanReversionStrategy {
	if period <= 0 {
		period = 20
	}
	if threshold <= 0 {
		threshold = 1.5
	}
	return &MeanReversionStrategy{period: period, threshold: threshold}
}

func (s *MeanReversionStrategy) Name() string {
	return "mean_reversion"
}

func (s *MeanReversionStrategy) CalculateIndicators(series backtest.PriceSeries) (IndicatorSet, error) {
	return IndicatorSet{
		"zscore": s.zscores(series),
	}, nil
}

func (s *MeanReversionStrategy) GenerateSignals(series backtest.PriceSeries) (backtest.SignalSeries, error) {
	z := s.zscores(series)

	signals := make(backtest.SignalSeries, len(series))
	for i := range series {
		if !defined(z[i]) {
			continue
		}
		if z[i] < -s.threshold {
			signals[i] = backtest.Buy
		} else if z[i] > s.threshold {
			signals[i] = backtest.Sell
		}
	}
	return signals, nil
}

func (s *MeanReversionStrategy) zscores(series backtest.PriceSeries) []float64 {
	closes := series.Closes()
	mean := SMA(closes, s.period)
	std := RollingStd(closes, s.period)

	z := nanSlice(len(closes))
	for i := range closes {
		if defined(mean[i], std[i]) && std[i] != 0 {
			z[i] = (closes[i] - mean[i]) / std[i]
		}
	}
	return z
}
