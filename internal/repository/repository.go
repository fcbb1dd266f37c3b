package repository

import (
	"strategy-backtest/config"
	"strategy-backtest/pkg/cache"
	"strategy-backtest/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	YahooFinanceRepo YahooFinanceRepository
	CandleRepo       CandleRepository
	BacktestRunRepo  BacktestRunRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	yahooRepo := NewYahooFinanceRepository(cfg, log)

	return &Repository{
		YahooFinanceRepo: yahooRepo,
		CandleRepo:       NewCandleRepository(cfg, log, inmemoryCache, yahooRepo),
		BacktestRunRepo:  NewBacktestRunRepository(db),
	}, nil
}
