package backtest

import "time"

// Bar is a single OHLCV data point for one calendar date.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries is an ordered sequence of daily bars for one instrument.
// Bars must be unique and strictly increasing by date; callers that build
// a series from provider data are responsible for sorting it.
type PriceSeries []Bar

func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}
	return closes
}

func (s PriceSeries) Highs() []float64 {
	highs := make([]float64, len(s))
	for i, bar := range s {
		highs[i] = bar.High
	}
	return highs
}

func (s PriceSeries) Lows() []float64 {
	lows := make([]float64, len(s))
	for i, bar := range s {
		lows[i] = bar.Low
	}
	return lows
}

// Signal is a per-bar trading decision produced by a strategy.
type Signal int

const (
	Buy  Signal = 1
	Sell Signal = -1
	Hold Signal = 0
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// SignalSeries holds one Signal per Bar, index-aligned with the
// PriceSeries it was derived from.
type SignalSeries []Signal

// Trade is the immutable record of one closed position.
type Trade struct {
	EntryDate    time.Time `json:"entry_date"`
	ExitDate     time.Time `json:"exit_date"`
	EntryPrice   float64   `json:"entry_price"`
	ExitPrice    float64   `json:"exit_price"`
	Shares       int64     `json:"shares"`
	Profit       float64   `json:"profit"`
	ProfitPct    float64   `json:"profit_pct"`
	DurationDays int       `json:"duration_days"`
}

// Position tracks the currently held shares and their cost basis. A
// position is either fully flat or fully long, never partial.
type Position struct {
	Shares     int64
	EntryPrice float64
	EntryDate  time.Time
}

func (p Position) IsOpen() bool {
	return p.Shares > 0
}
