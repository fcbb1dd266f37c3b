package telegram

import (
	"fmt"
	"strings"
	"time"

	"strategy-backtest/pkg/utils"
)

// Report holds the fields worth surfacing in a chat message.
type Report struct {
	Symbol         string
	Strategy       string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	TotalReturnPct float64
	SharpeRatio    float64
	MaxDrawdownPct float64
	WinRatePct     float64
	TotalTrades    int
	FinalValue     float64
}

// FormatBacktestReport formats one run summary as Telegram Markdown.
func FormatBacktestReport(r Report) string {
	var builder strings.Builder

	emoji := "📈"
	if r.TotalReturnPct < 0 {
		emoji = "📉"
	}

	builder.WriteString(fmt.Sprintf("%s *[%s] %s*\n", emoji, r.Symbol, r.Strategy))
	builder.WriteString(fmt.Sprintf("Period: %s → %s\n", utils.FormatDate(r.PeriodStart), utils.FormatDate(r.PeriodEnd)))
	builder.WriteString(fmt.Sprintf("Return: %s\n", utils.FormatPercentage(r.TotalReturnPct)))
	builder.WriteString(fmt.Sprintf("Sharpe: %.2f\n", r.SharpeRatio))
	builder.WriteString(fmt.Sprintf("Max Drawdown: %.2f%%\n", r.MaxDrawdownPct))
	builder.WriteString(fmt.Sprintf("Win Rate: %.1f%% (%d trades)\n", r.WinRatePct, r.TotalTrades))
	builder.WriteString(fmt.Sprintf("Final Value: %s\n", utils.FormatMoney(r.FinalValue)))
	return builder.String()
}
