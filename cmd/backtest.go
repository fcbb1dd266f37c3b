package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"strategy-backtest/config"
	"strategy-backtest/internal/dto"
	"strategy-backtest/internal/repository"
	"strategy-backtest/internal/service"
	"strategy-backtest/internal/strategy"
	"strategy-backtest/pkg/cache"
	"strategy-backtest/pkg/logger"
	"strategy-backtest/pkg/utils"

	"github.com/spf13/cobra"
)

var backtestFlags struct {
	symbol         string
	strategy       string
	dataRange      string
	initialCapital float64
	commissionRate float64
	slippageRate   float64
	showTrades     bool
}

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a single backtest and print the report",
	Run:   runBacktestCmd,
}

func init() {
	backtestCmd.Flags().StringVarP(&backtestFlags.symbol, "symbol", "s", "", "ticker symbol (required)")
	backtestCmd.Flags().StringVarP(&backtestFlags.strategy, "strategy", "t", "sma_cross", "strategy name")
	backtestCmd.Flags().StringVarP(&backtestFlags.dataRange, "range", "r", "1y", "data range (1m 3m 6m 1y 2y 5y)")
	backtestCmd.Flags().Float64Var(&backtestFlags.initialCapital, "capital", 0, "initial capital (default from config)")
	backtestCmd.Flags().Float64Var(&backtestFlags.commissionRate, "commission", 0, "commission rate (default from config)")
	backtestCmd.Flags().Float64Var(&backtestFlags.slippageRate, "slippage", 0, "slippage rate (default from config)")
	backtestCmd.Flags().BoolVar(&backtestFlags.showTrades, "trades", false, "print the trade list")
	_ = backtestCmd.MarkFlagRequired("symbol")
}

func runBacktestCmd(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	inmemoryCache := cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval)
	yahooRepo := repository.NewYahooFinanceRepository(cfg, appLog)
	candleRepo := repository.NewCandleRepository(cfg, appLog, inmemoryCache, yahooRepo)

	// one-shot run, nothing to persist
	svc := service.NewBacktestService(cfg, appLog, candleRepo, nil, strategy.DefaultRegistry())

	result, err := svc.Run(ctx, dto.BacktestRequest{
		Symbol:         backtestFlags.symbol,
		Strategy:       backtestFlags.strategy,
		Range:          backtestFlags.dataRange,
		InitialCapital: backtestFlags.initialCapital,
		CommissionRate: backtestFlags.commissionRate,
		SlippageRate:   backtestFlags.slippageRate,
	})
	if err != nil {
		log.Fatalf("Backtest failed: %v", err)
	}

	printBacktestReport(result)
}

func printBacktestReport(result *dto.BacktestResult) {
	m := result.Metrics

	fmt.Printf("\nBacktest %s / %s (%s to %s)\n\n",
		result.Symbol, result.Strategy,
		utils.FormatDate(result.Period.Start), utils.FormatDate(result.Period.End))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Initial Capital\t%s\n", utils.FormatMoney(m.InitialCapital))
	fmt.Fprintf(w, "Final Value\t%s\n", utils.FormatMoney(m.FinalValue))
	fmt.Fprintf(w, "Total Return\t%s\n", utils.FormatPercentage(m.TotalReturnPct))
	fmt.Fprintf(w, "Sharpe Ratio\t%.2f\n", m.SharpeRatio)
	fmt.Fprintf(w, "Max Drawdown\t%.2f%%\n", m.MaxDrawdownPct)
	fmt.Fprintf(w, "Win Rate\t%.1f%%\n", m.WinRatePct)
	fmt.Fprintf(w, "Profit Factor\t%.2f\n", m.ProfitFactor)
	fmt.Fprintf(w, "Total Trades\t%d\n", m.TotalTrades)
	w.Flush()

	if !backtestFlags.showTrades || len(result.Trades) == 0 {
		return
	}

	fmt.Println("\nTrades:")
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Entry\tExit\tShares\tEntry Px\tExit Px\tProfit\tReturn")
	for _, t := range result.Trades {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.2f\t%.2f\t%s\n",
			utils.FormatDate(t.EntryDate), utils.FormatDate(t.ExitDate),
			t.Shares, t.EntryPrice, t.ExitPrice, t.Profit,
			utils.FormatPercentage(t.ProfitPct))
	}
	tw.Flush()
}
