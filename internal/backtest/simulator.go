package backtest

import (
	"math"

	"strategy-backtest/pkg/utils"
)

// SimulationConfig holds the execution parameters for one simulation
// run. It is passed by value and never mutated by the simulator.
type SimulationConfig struct {
	InitialCapital float64 `json:"initial_capital"`
	CommissionRate float64 `json:"commission_rate"`
	SlippageRate   float64 `json:"slippage_rate"`
}

// Validate checks the parameter ranges before any simulation state is
// created. Commission plus slippage must stay below 1, otherwise a
// single round trip could have non-positive net proceeds.
func (c SimulationConfig) Validate() error {
	if c.InitialCapital <= 0 {
		return &ConfigurationError{Reason: "initial capital must be positive"}
	}
	if c.CommissionRate < 0 || c.CommissionRate >= 1 {
		return &ConfigurationError{Reason: "commission rate must be in [0, 1)"}
	}
	if c.SlippageRate < 0 || c.SlippageRate >= 1 {
		return &ConfigurationError{Reason: "slippage rate must be in [0, 1)"}
	}
	if c.CommissionRate+c.SlippageRate >= 1 {
		return &ConfigurationError{Reason: "commission rate plus slippage rate must be below 1"}
	}
	return nil
}

// SimulationResult is the complete outcome of one simulation pass.
type SimulationResult struct {
	Trades      []Trade   `json:"trades"`
	EquityCurve []float64 `json:"equity_curve"`
	FinalCash   float64   `json:"final_cash"`
}

// Simulate walks the price series bar by bar in date order, applies the
// aligned signal series against a single-position cash/share ledger, and
// returns the completed trades plus the per-bar equity curve.
//
// Entries commit 100% of available cash to a single long position.
// A buy while holding, a sell while flat, and a buy that cannot afford
// one share are all silent no-ops. If a position is still open after the
// final bar it is force-closed at the last close price so the result
// always reflects a fully realized outcome.
func Simulate(series PriceSeries, signals SignalSeries, cfg SimulationConfig) (*SimulationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(series) != len(signals) {
		return nil, &AlignmentError{PriceLen: len(series), SignalLen: len(signals)}
	}

	buyFactor := 1 + cfg.CommissionRate + cfg.SlippageRate
	sellFactor := 1 - cfg.CommissionRate - cfg.SlippageRate

	cash := cfg.InitialCapital
	var pos Position
	trades := make([]Trade, 0)
	equity := make([]float64, 0, len(series))

	for i, bar := range series {
		price := bar.Close

		switch {
		case signals[i] == Buy && !pos.IsOpen():
			shares := int64(math.Floor(cash / (price * buyFactor)))
			cost := float64(shares) * price * buyFactor
			if shares >= 1 && cost <= cash {
				cash -= cost
				pos = Position{Shares: shares, EntryPrice: price, EntryDate: bar.Date}
			}
			// insufficient funds for one share is a missed signal, not an error

		case signals[i] == Sell && pos.IsOpen():
			trade, proceeds := closePosition(pos, bar, sellFactor, buyFactor)
			trades = append(trades, trade)
			cash += proceeds
			pos = Position{}
		}

		equity = append(equity, cash+float64(pos.Shares)*price)
	}

	// Strategy never emitted a closing sell: liquidate at the last close.
	if pos.IsOpen() {
		last := series[len(series)-1]
		trade, proceeds := closePosition(pos, last, sellFactor, buyFactor)
		trades = append(trades, trade)
		cash += proceeds
		pos = Position{}
	}

	return &SimulationResult{
		Trades:      trades,
		EquityCurve: equity,
		FinalCash:   cash,
	}, nil
}

func closePosition(pos Position, bar Bar, sellFactor, buyFactor float64) (Trade, float64) {
	proceeds := float64(pos.Shares) * bar.Close * sellFactor
	costBasis := float64(pos.Shares) * pos.EntryPrice * buyFactor
	profit := proceeds - costBasis

	return Trade{
		EntryDate:    pos.EntryDate,
		ExitDate:     bar.Date,
		EntryPrice:   pos.EntryPrice,
		ExitPrice:    bar.Close,
		Shares:       pos.Shares,
		Profit:       profit,
		ProfitPct:    profit / (float64(pos.Shares) * pos.EntryPrice) * 100,
		DurationDays: utils.DaysBetween(pos.EntryDate, bar.Date),
	}, proceeds
}
