package backtest

import "math"

// TradingDaysPerYear is the annualization convention for daily bars.
const TradingDaysPerYear = 252

// Metrics is the standardized performance bundle derived from one
// simulation. Percentage-valued fields are the raw ratio times 100; both
// forms are kept under distinct names so consumers never have to guess
// the scale.
type Metrics struct {
	InitialCapital float64 `json:"initial_capital"`
	FinalValue     float64 `json:"final_value"`
	TotalReturn    float64 `json:"total_return"`
	TotalReturnPct float64 `json:"total_return_pct"`
	SharpeRatio    float64 `json:"sharpe_ratio"`
	MaxDrawdown    float64 `json:"max_drawdown"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`
	WinRate        float64 `json:"win_rate"`
	WinRatePct     float64 `json:"win_rate_pct"`
	ProfitFactor   float64 `json:"profit_factor"`
	TotalTrades    int     `json:"total_trades"`
	WinningTrades  int     `json:"winning_trades"`
	LosingTrades   int     `json:"losing_trades"`
	AvgProfit      float64 `json:"avg_profit"`
	AvgWin         float64 `json:"avg_win"`
	AvgLoss        float64 `json:"avg_loss"`
}

// TotalReturn returns the cumulative return of an equity curve as a
// ratio. An empty curve yields 0.
func TotalReturn(equity []float64) float64 {
	if len(equity) == 0 || equity[0] == 0 {
		return 0
	}
	return equity[len(equity)-1]/equity[0] - 1
}

// DailyReturns converts an equity curve into per-bar simple returns.
func DailyReturns(equity []float64) []float64 {
	if len(equity) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, equity[i]/equity[i-1]-1)
	}
	return returns
}

// SharpeRatio annualizes the mean excess daily return over its standard
// deviation. Constant returns (including the all-zero case) yield
// exactly 0 rather than dividing by zero.
func SharpeRatio(dailyReturns []float64, riskFreeAnnual float64) float64 {
	if len(dailyReturns) == 0 {
		return 0
	}

	riskFreeDaily := riskFreeAnnual / TradingDaysPerYear
	var sum float64
	for _, r := range dailyReturns {
		sum += r - riskFreeDaily
	}
	mean := sum / float64(len(dailyReturns))

	var variance float64
	for _, r := range dailyReturns {
		d := (r - riskFreeDaily) - mean
		variance += d * d
	}
	variance /= float64(len(dailyReturns))
	std := math.Sqrt(variance)
	if std == 0 {
		return 0
	}

	return math.Sqrt(TradingDaysPerYear) * mean / std
}

// MaxDrawdown returns the largest peak-to-trough decline of the equity
// curve as a positive fraction of the peak. Curves of length <= 1 have
// no drawdown.
func MaxDrawdown(equity []float64) float64 {
	if len(equity) <= 1 {
		return 0
	}
	peak := equity[0]
	maxDD := 0.0
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := (peak - v) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// WinRate returns the fraction of closed trades with positive profit.
// No trades is a valid outcome and yields 0.
func WinRate(trades []Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range trades {
		if t.Profit > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(trades))
}

// ProfitFactor returns gross profit over gross loss. With zero gross
// loss the result is +Inf when any profit exists, else 0.
func ProfitFactor(trades []Trade) float64 {
	var grossProfit, grossLoss float64
	for _, t := range trades {
		if t.Profit > 0 {
			grossProfit += t.Profit
		} else if t.Profit < 0 {
			grossLoss += -t.Profit
		}
	}
	if grossLoss == 0 {
		if grossProfit > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return grossProfit / grossLoss
}

// ComputeMetrics derives the full bundle from an equity curve and a
// completed trade list. It is a pure function and recomputed fresh per
// run.
func ComputeMetrics(equity []float64, trades []Trade, initialCapital, riskFreeAnnual float64) Metrics {
	m := Metrics{
		InitialCapital: initialCapital,
		TotalTrades:    len(trades),
	}

	if len(equity) > 0 {
		m.FinalValue = equity[len(equity)-1]
	} else {
		m.FinalValue = initialCapital
	}

	m.TotalReturn = TotalReturn(equity)
	m.TotalReturnPct = m.TotalReturn * 100
	m.SharpeRatio = SharpeRatio(DailyReturns(equity), riskFreeAnnual)
	m.MaxDrawdown = MaxDrawdown(equity)
	m.MaxDrawdownPct = m.MaxDrawdown * 100
	m.WinRate = WinRate(trades)
	m.WinRatePct = m.WinRate * 100
	m.ProfitFactor = ProfitFactor(trades)

	var totalProfit, winSum, lossSum float64
	for _, t := range trades {
		totalProfit += t.Profit
		if t.Profit > 0 {
			m.WinningTrades++
			winSum += t.Profit
		} else if t.Profit < 0 {
			m.LosingTrades++
			lossSum += t.Profit
		}
	}
	if m.TotalTrades > 0 {
		m.AvgProfit = totalProfit / float64(m.TotalTrades)
	}
	if m.WinningTrades > 0 {
		m.AvgWin = winSum / float64(m.WinningTrades)
	}
	if m.LosingTrades > 0 {
		m.AvgLoss = lossSum / float64(m.LosingTrades)
	}

	return m
}
