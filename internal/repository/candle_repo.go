package repository

import (
	"context"
	"fmt"

	"strategy-backtest/config"
	"strategy-backtest/internal/dto"
	"strategy-backtest/pkg/cache"
	"strategy-backtest/pkg/common"
	"strategy-backtest/pkg/logger"
)

// CandleRepository is the front door for price data: a read-through
// cache over the upstream provider.
type CandleRepository interface {
	Get(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error)
}

type candleRepository struct {
	cfg       *config.Config
	log       *logger.Logger
	cache     cache.Cache
	yahooRepo YahooFinanceRepository
}

func NewCandleRepository(cfg *config.Config, log *logger.Logger, inmemoryCache cache.Cache, yahooRepo YahooFinanceRepository) CandleRepository {
	return &candleRepository{
		cfg:       cfg,
		log:       log,
		cache:     inmemoryCache,
		yahooRepo: yahooRepo,
	}
}

func (r *candleRepository) Get(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	key := fmt.Sprintf(common.KEY_PRICE_SERIES, param.Symbol, param.Range)
	if data, found := cache.GetFromCache[*dto.StockData](key); found {
		r.log.DebugContext(ctx, "Price series cache hit", logger.StringField("symbol", param.Symbol))
		return data, nil
	}

	data, err := r.yahooRepo.Get(ctx, param)
	if err != nil {
		return nil, err
	}

	r.cache.Set(key, data, r.cfg.Cache.DefaultExpiration)
	return data, nil
}
