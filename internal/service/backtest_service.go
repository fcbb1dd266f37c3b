package service

import (
	"context"
	"encoding/json"
	"fmt"

	"strategy-backtest/config"
	"strategy-backtest/internal/backtest"
	"strategy-backtest/internal/dto"
	"strategy-backtest/internal/model"
	"strategy-backtest/internal/repository"
	"strategy-backtest/internal/strategy"
	"strategy-backtest/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// BacktestService wires a strategy, a price series provider, the trade
// simulator, and the metrics calculator into a single call.
type BacktestService interface {
	Run(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResult, error)
	RunMany(ctx context.Context, reqs []dto.BacktestRequest) ([]dto.BacktestResult, error)
	Strategies() []string
	GetRuns(ctx context.Context, param model.GetBacktestRunsParam) ([]model.BacktestRun, error)
	GetRunByID(ctx context.Context, id uint) (*model.BacktestRun, error)
}

type backtestService struct {
	cfg        *config.Config
	log        *logger.Logger
	candleRepo repository.CandleRepository
	runRepo    repository.BacktestRunRepository
	registry   *strategy.Registry
}

func NewBacktestService(
	cfg *config.Config,
	log *logger.Logger,
	candleRepo repository.CandleRepository,
	runRepo repository.BacktestRunRepository,
	registry *strategy.Registry,
) BacktestService {
	return &backtestService{
		cfg:        cfg,
		log:        log,
		candleRepo: candleRepo,
		runRepo:    runRepo,
		registry:   registry,
	}
}

// Run executes one backtest: fetch prices, generate signals, simulate,
// compute metrics, persist the summary. Strategy errors propagate with
// symbol and period attached; they are never retried or swallowed.
func (s *backtestService) Run(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResult, error) {
	req = s.applyDefaults(req)

	strat, err := s.registry.Get(req.Strategy)
	if err != nil {
		return nil, err
	}

	stockData, err := s.candleRepo.Get(ctx, dto.GetStockDataParam{
		Symbol:   req.Symbol,
		Range:    req.Range,
		Interval: "1d",
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch price series",
			logger.StringField("symbol", req.Symbol),
			logger.ErrorField(err),
		)
		return nil, err
	}

	series := stockData.ToPriceSeries()
	if len(series) == 0 {
		return nil, &backtest.DataUnavailableError{Symbol: req.Symbol, Range: req.Range}
	}

	signals, err := strat.GenerateSignals(series)
	if err != nil {
		return nil, fmt.Errorf("strategy %s failed on %s (%s): %w", req.Strategy, req.Symbol, req.Range, err)
	}

	simResult, err := backtest.Simulate(series, signals, backtest.SimulationConfig{
		InitialCapital: req.InitialCapital,
		CommissionRate: req.CommissionRate,
		SlippageRate:   req.SlippageRate,
	})
	if err != nil {
		return nil, err
	}

	metrics := backtest.ComputeMetrics(simResult.EquityCurve, simResult.Trades, req.InitialCapital, s.cfg.Simulation.RiskFreeRate)

	result := &dto.BacktestResult{
		Symbol:   req.Symbol,
		Strategy: req.Strategy,
		Period: dto.Period{
			Start: series[0].Date,
			End:   series[len(series)-1].Date,
		},
		Metrics:     metrics,
		Trades:      simResult.Trades,
		EquityCurve: simResult.EquityCurve,
	}

	if err := s.persistRun(ctx, result); err != nil {
		// persistence is best effort, the result itself is already complete
		s.log.WarnContext(ctx, "Failed to persist backtest run",
			logger.StringField("symbol", req.Symbol),
			logger.ErrorField(err),
		)
	}

	s.log.InfoContext(ctx, "Backtest completed",
		logger.StringField("symbol", req.Symbol),
		logger.StringField("strategy", req.Strategy),
		logger.IntField("total_trades", metrics.TotalTrades),
		logger.FloatField("total_return_pct", metrics.TotalReturnPct),
	)
	return result, nil
}

// RunMany executes independent backtests concurrently. Each simulation
// owns its state, so the only shared resources are the read-only price
// cache and the run store.
func (s *backtestService) RunMany(ctx context.Context, reqs []dto.BacktestRequest) ([]dto.BacktestResult, error) {
	results := make([]dto.BacktestResult, len(reqs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Simulation.MaxConcurrency)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			result, err := s.Run(gCtx, req)
			if err != nil {
				return fmt.Errorf("backtest %s/%s: %w", req.Symbol, req.Strategy, err)
			}
			results[i] = *result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *backtestService) Strategies() []string {
	return s.registry.List()
}

func (s *backtestService) GetRuns(ctx context.Context, param model.GetBacktestRunsParam) ([]model.BacktestRun, error) {
	return s.runRepo.Get(ctx, param)
}

func (s *backtestService) GetRunByID(ctx context.Context, id uint) (*model.BacktestRun, error) {
	return s.runRepo.FindByID(ctx, id)
}

func (s *backtestService) applyDefaults(req dto.BacktestRequest) dto.BacktestRequest {
	if req.Range == "" {
		req.Range = "1y"
	}
	if req.InitialCapital == 0 {
		req.InitialCapital = s.cfg.Simulation.InitialCapital
	}
	if req.CommissionRate == 0 {
		req.CommissionRate = s.cfg.Simulation.CommissionRate
	}
	if req.SlippageRate == 0 {
		req.SlippageRate = s.cfg.Simulation.SlippageRate
	}
	return req
}

func (s *backtestService) persistRun(ctx context.Context, result *dto.BacktestResult) error {
	if s.runRepo == nil {
		return nil
	}

	safe := result.JSONSafe()
	tradesJSON, err := json.Marshal(safe.Trades)
	if err != nil {
		return err
	}
	equityJSON, err := json.Marshal(safe.EquityCurve)
	if err != nil {
		return err
	}

	run := &model.BacktestRun{
		Symbol:         safe.Symbol,
		Strategy:       safe.Strategy,
		StartDate:      safe.Period.Start,
		EndDate:        safe.Period.End,
		InitialCapital: safe.Metrics.InitialCapital,
		FinalValue:     safe.Metrics.FinalValue,
		TotalReturnPct: safe.Metrics.TotalReturnPct,
		SharpeRatio:    safe.Metrics.SharpeRatio,
		MaxDrawdownPct: safe.Metrics.MaxDrawdownPct,
		WinRatePct:     safe.Metrics.WinRatePct,
		ProfitFactor:   safe.Metrics.ProfitFactor,
		TotalTrades:    safe.Metrics.TotalTrades,
		Trades:         tradesJSON,
		EquityCurve:    equityJSON,
	}
	return s.runRepo.Create(ctx, run)
}
