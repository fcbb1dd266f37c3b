package dto

import (
	"math"
	"time"

	"strategy-backtest/internal/backtest"
)

// BacktestRequest carries the parameters for one backtest run. Zero
// execution parameters fall back to the configured simulation defaults.
type BacktestRequest struct {
	Symbol         string  `json:"symbol" validate:"required"`
	Strategy       string  `json:"strategy" validate:"required"`
	Range          string  `json:"range" validate:"omitempty,oneof=1m 3m 6m 1y 2y 5y"`
	InitialCapital float64 `json:"initial_capital" validate:"omitempty,gt=0"`
	CommissionRate float64 `json:"commission_rate" validate:"omitempty,gte=0,lt=1"`
	SlippageRate   float64 `json:"slippage_rate" validate:"omitempty,gte=0,lt=1"`
}

// BatchBacktestRequest runs several independent backtests in one call.
type BatchBacktestRequest struct {
	Requests []BacktestRequest `json:"requests" validate:"required,min=1,dive"`
}

// Period is the date range actually covered by the fetched series.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BacktestResult is the read-only snapshot returned to reporting
// consumers. It must never be fed back into the simulator.
type BacktestResult struct {
	Symbol      string           `json:"symbol"`
	Strategy    string           `json:"strategy"`
	Period      Period           `json:"period"`
	Metrics     backtest.Metrics `json:"metrics"`
	Trades      []backtest.Trade `json:"trades"`
	EquityCurve []float64        `json:"equity_curve"`
}

// JSONSafe returns a copy with non-finite metric values clamped, since
// encoding/json cannot represent +Inf. A gross-loss-free run keeps its
// +Inf profit factor in memory but serializes as the clamp value.
func (r BacktestResult) JSONSafe() BacktestResult {
	const profitFactorClamp = 9999

	if math.IsInf(r.Metrics.ProfitFactor, 1) {
		r.Metrics.ProfitFactor = profitFactorClamp
	}
	return r
}
