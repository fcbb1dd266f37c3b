package service

import (
	"context"

	"strategy-backtest/config"
	"strategy-backtest/internal/dto"
	"strategy-backtest/pkg/logger"
	"strategy-backtest/pkg/telegram"
	"strategy-backtest/pkg/utils"

	"github.com/robfig/cron/v3"
)

// SchedulerService re-runs the configured watchlist on a cron schedule
// and pushes the summaries through the telegram notifier.
type SchedulerService interface {
	Start() error
	Stop()
}

type schedulerService struct {
	cfg             *config.Config
	log             *logger.Logger
	backtestService BacktestService
	notifier        *telegram.Notifier
	cron            *cron.Cron
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	backtestService BacktestService,
	notifier *telegram.Notifier,
) SchedulerService {
	return &schedulerService{
		cfg:             cfg,
		log:             log,
		backtestService: backtestService,
		notifier:        notifier,
		cron:            cron.New(),
	}
}

func (s *schedulerService) Start() error {
	if !s.cfg.Scheduler.Enabled || len(s.cfg.Scheduler.Watchlist) == 0 {
		s.log.Info("Scheduler disabled or watchlist empty, not starting")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Scheduler.CronExpression, func() {
		utils.GoSafe(s.runWatchlist)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Scheduler started",
		logger.StringField("cron", s.cfg.Scheduler.CronExpression),
		logger.IntField("watchlist_size", len(s.cfg.Scheduler.Watchlist)),
	)
	return nil
}

func (s *schedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}

func (s *schedulerService) runWatchlist() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Scheduler.TimeoutDuration)
	defer cancel()

	reqs := make([]dto.BacktestRequest, 0, len(s.cfg.Scheduler.Watchlist))
	for _, entry := range s.cfg.Scheduler.Watchlist {
		reqs = append(reqs, dto.BacktestRequest{
			Symbol:   entry.Symbol,
			Strategy: entry.Strategy,
			Range:    entry.Range,
		})
	}

	results, err := s.backtestService.RunMany(ctx, reqs)
	if err != nil {
		s.log.ErrorContext(ctx, "Scheduled watchlist run failed", logger.ErrorField(err))
		return
	}

	if s.notifier == nil {
		return
	}
	for _, result := range results {
		if !utils.ShouldContinue(ctx, s.log) {
			return
		}
		report := telegram.Report{
			Symbol:         result.Symbol,
			Strategy:       result.Strategy,
			PeriodStart:    result.Period.Start,
			PeriodEnd:      result.Period.End,
			TotalReturnPct: result.Metrics.TotalReturnPct,
			SharpeRatio:    result.Metrics.SharpeRatio,
			MaxDrawdownPct: result.Metrics.MaxDrawdownPct,
			WinRatePct:     result.Metrics.WinRatePct,
			TotalTrades:    result.Metrics.TotalTrades,
			FinalValue:     result.Metrics.FinalValue,
		}
		if err := s.notifier.SendReport(ctx, report); err != nil {
			s.log.WarnContext(ctx, "Failed to deliver scheduled report",
				logger.StringField("symbol", result.Symbol),
				logger.ErrorField(err),
			)
		}
	}
}
