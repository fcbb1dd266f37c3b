package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"strategy-backtest/config"
	"strategy-backtest/internal/backtest"
	"strategy-backtest/internal/dto"
	"strategy-backtest/internal/model"
	"strategy-backtest/internal/strategy"
	"strategy-backtest/pkg/logger"
	"strategy-backtest/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCandleRepo struct {
	data map[string]*dto.StockData
	err  error
}

func (f *fakeCandleRepo) Get(_ context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.data[param.Symbol]
	if !ok {
		return &dto.StockData{Symbol: param.Symbol}, nil
	}
	return data, nil
}

type fakeRunRepo struct {
	mu   sync.Mutex
	runs []*model.BacktestRun
	err  error
}

func (f *fakeRunRepo) Create(_ context.Context, run *model.BacktestRun, _ ...utils.DBOption) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRunRepo) Get(_ context.Context, _ model.GetBacktestRunsParam, _ ...utils.DBOption) ([]model.BacktestRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.BacktestRun, 0, len(f.runs))
	for _, r := range f.runs {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRunRepo) FindByID(_ context.Context, id uint) (*model.BacktestRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.New("record not found")
}

func testConfig() *config.Config {
	return &config.Config{
		Simulation: config.Simulation{
			InitialCapital: 10000,
			CommissionRate: 0,
			SlippageRate:   0,
			RiskFreeRate:   0.02,
			MaxConcurrency: 4,
		},
	}
}

func stockDataFrom(symbol string, closes []float64) *dto.StockData {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	ohlcv := make([]dto.StockOHLCV, len(closes))
	for i, c := range closes {
		ohlcv[i] = dto.StockOHLCV{
			Open:      c,
			High:      c * 1.01,
			Low:       c * 0.99,
			Close:     c,
			Volume:    1000,
			Timestamp: base.AddDate(0, 0, i).Unix(),
		}
	}
	return &dto.StockData{Symbol: symbol, Range: "1y", Interval: "1d", OHLCV: ohlcv}
}

// rampCloses produces a dip, a long climb, then a sharp drop.
func rampCloses() []float64 {
	closes := make([]float64, 0, 40)
	price := 100.0
	for i := 0; i < 15; i++ {
		closes = append(closes, price)
		price -= 0.5
	}
	for i := 0; i < 15; i++ {
		closes = append(closes, price)
		price += 2.0
	}
	for i := 0; i < 10; i++ {
		closes = append(closes, price)
		price -= 3.0
	}
	return closes
}

func newTestService(candleRepo *fakeCandleRepo, runRepo *fakeRunRepo) BacktestService {
	log, _ := logger.New("error", "console")
	return NewBacktestService(testConfig(), log, candleRepo, runRepo, strategy.DefaultRegistry())
}

func TestBacktestService_Run(t *testing.T) {
	candleRepo := &fakeCandleRepo{data: map[string]*dto.StockData{
		"AAPL": stockDataFrom("AAPL", rampCloses()),
	}}
	runRepo := &fakeRunRepo{}
	svc := newTestService(candleRepo, runRepo)

	result, err := svc.Run(context.Background(), dto.BacktestRequest{
		Symbol:   "AAPL",
		Strategy: "sma_cross",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "AAPL", result.Symbol)
	assert.Equal(t, "sma_cross", result.Strategy)
	assert.Len(t, result.EquityCurve, 40)
	assert.Equal(t, 10000.0, result.Metrics.InitialCapital)
	assert.True(t, result.Period.End.After(result.Period.Start))

	// the summary row is persisted alongside the returned result
	require.Len(t, runRepo.runs, 1)
	assert.Equal(t, "AAPL", runRepo.runs[0].Symbol)
	assert.Equal(t, result.Metrics.TotalReturnPct, runRepo.runs[0].TotalReturnPct)
}

func TestBacktestService_Run_UnknownStrategy(t *testing.T) {
	svc := newTestService(&fakeCandleRepo{}, &fakeRunRepo{})

	_, err := svc.Run(context.Background(), dto.BacktestRequest{
		Symbol:   "AAPL",
		Strategy: "does_not_exist",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does_not_exist")
}

func TestBacktestService_Run_EmptySeries(t *testing.T) {
	svc := newTestService(&fakeCandleRepo{data: map[string]*dto.StockData{}}, &fakeRunRepo{})

	_, err := svc.Run(context.Background(), dto.BacktestRequest{
		Symbol:   "EMPTY",
		Strategy: "sma_cross",
	})
	require.Error(t, err)

	var dataErr *backtest.DataUnavailableError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "EMPTY", dataErr.Symbol)
}

func TestBacktestService_Run_FetchError(t *testing.T) {
	fetchErr := errors.New("upstream timeout")
	svc := newTestService(&fakeCandleRepo{err: fetchErr}, &fakeRunRepo{})

	_, err := svc.Run(context.Background(), dto.BacktestRequest{
		Symbol:   "AAPL",
		Strategy: "sma_cross",
	})
	require.ErrorIs(t, err, fetchErr)
}

func TestBacktestService_Run_PersistFailureIsNotFatal(t *testing.T) {
	candleRepo := &fakeCandleRepo{data: map[string]*dto.StockData{
		"AAPL": stockDataFrom("AAPL", rampCloses()),
	}}
	runRepo := &fakeRunRepo{err: errors.New("db down")}
	svc := newTestService(candleRepo, runRepo)

	result, err := svc.Run(context.Background(), dto.BacktestRequest{
		Symbol:   "AAPL",
		Strategy: "sma_cross",
	})
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestBacktestService_RunMany(t *testing.T) {
	candleRepo := &fakeCandleRepo{data: map[string]*dto.StockData{
		"AAPL": stockDataFrom("AAPL", rampCloses()),
		"MSFT": stockDataFrom("MSFT", rampCloses()),
	}}
	runRepo := &fakeRunRepo{}
	svc := newTestService(candleRepo, runRepo)

	reqs := []dto.BacktestRequest{
		{Symbol: "AAPL", Strategy: "sma_cross"},
		{Symbol: "MSFT", Strategy: "momentum"},
		{Symbol: "AAPL", Strategy: "rsi"},
	}
	results, err := svc.RunMany(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// results keep request order regardless of completion order
	assert.Equal(t, "AAPL", results[0].Symbol)
	assert.Equal(t, "sma_cross", results[0].Strategy)
	assert.Equal(t, "MSFT", results[1].Symbol)
	assert.Equal(t, "momentum", results[1].Strategy)
	assert.Equal(t, "rsi", results[2].Strategy)
}

func TestBacktestService_RunMany_OneFailureFailsBatch(t *testing.T) {
	candleRepo := &fakeCandleRepo{data: map[string]*dto.StockData{
		"AAPL": stockDataFrom("AAPL", rampCloses()),
	}}
	svc := newTestService(candleRepo, &fakeRunRepo{})

	reqs := []dto.BacktestRequest{
		{Symbol: "AAPL", Strategy: "sma_cross"},
		{Symbol: "EMPTY", Strategy: "sma_cross"},
	}
	_, err := svc.RunMany(context.Background(), reqs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EMPTY")
}

func TestBacktestService_Strategies(t *testing.T) {
	svc := newTestService(&fakeCandleRepo{}, &fakeRunRepo{})

	names := svc.Strategies()
	assert.Contains(t, names, "sma_cross")
	assert.Contains(t, names, "rsi")
	assert.Contains(t, names, "macd")
	assert.Len(t, names, 8)
}

func TestBacktestService_ApplyDefaults(t *testing.T) {
	svc := newTestService(&fakeCandleRepo{}, &fakeRunRepo{}).(*backtestService)

	req := svc.applyDefaults(dto.BacktestRequest{Symbol: "AAPL", Strategy: "rsi"})
	assert.Equal(t, "1y", req.Range)
	assert.Equal(t, 10000.0, req.InitialCapital)
	assert.Equal(t, 0.02, svc.cfg.Simulation.RiskFreeRate)

	custom := svc.applyDefaults(dto.BacktestRequest{
		Symbol: "AAPL", Strategy: "rsi", Range: "6m", InitialCapital: 5000,
	})
	assert.Equal(t, "6m", custom.Range)
	assert.Equal(t, 5000.0, custom.InitialCapital)
}
