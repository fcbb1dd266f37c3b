package strategy

import (
	"fmt"
	"sort"

	"strategy-backtest/internal/backtest"
)

// IndicatorSet maps an indicator name to its per-bar values, aligned to
// the price series it was computed from. Warm-up bars hold NaN.
type IndicatorSet map[string][]float64

// Strategy turns a price series into an aligned signal series. Bars
// inside an indicator's lookback window yield Hold.
type Strategy interface {
	Name() string
	GenerateSignals(series backtest.PriceSeries) (backtest.SignalSeries, error)
	CalculateIndicators(series backtest.PriceSeries) (IndicatorSet, error)
}

// Registry resolves strategies by name.
type Registry struct {
	strategies map[string]Strategy
}

func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	for _, s := range strategies {
		r.strategies[s.Name()] = s
	}
	return r
}

// DefaultRegistry returns the registry with every built-in strategy at
// its default parameters.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewSMACross(0, 0),
		NewEMACross(0, 0),
		NewRSIStrategy(0, 0, 0),
		NewMACDStrategy(0, 0, 0),
		NewBollingerStrategy(0, 0),
		NewMomentumStrategy(0, 0),
		NewMeanReversionStrategy(0, 0),
		NewBreakoutStrategy(0),
	)
}

func (r *Registry) Get(name string) (Strategy, error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}
	return s, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
