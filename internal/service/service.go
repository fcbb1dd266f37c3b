package service

import (
	"strategy-backtest/config"
	"strategy-backtest/internal/repository"
	"strategy-backtest/internal/strategy"
	"strategy-backtest/pkg/logger"
	"strategy-backtest/pkg/telegram"
)

type Service struct {
	BacktestService  BacktestService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	notifier *telegram.Notifier,
) (*Service, error) {
	registry := strategy.DefaultRegistry()

	backtestService := NewBacktestService(cfg, log, repo.CandleRepo, repo.BacktestRunRepo, registry)
	schedulerService := NewSchedulerService(cfg, log, backtestService, notifier)

	return &Service{
		BacktestService:  backtestService,
		SchedulerService: schedulerService,
	}, nil
}
