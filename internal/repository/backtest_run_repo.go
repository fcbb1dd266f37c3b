package repository

import (
	"context"

	"strategy-backtest/internal/model"
	"strategy-backtest/pkg/utils"

	"gorm.io/gorm"
)

type BacktestRunRepository interface {
	Create(ctx context.Context, run *model.BacktestRun, opts ...utils.DBOption) error
	Get(ctx context.Context, param model.GetBacktestRunsParam, opts ...utils.DBOption) ([]model.BacktestRun, error)
	FindByID(ctx context.Context, id uint) (*model.BacktestRun, error)
}

type backtestRunRepository struct {
	db *gorm.DB
}

func NewBacktestRunRepository(db *gorm.DB) BacktestRunRepository {
	return &backtestRunRepository{db: db}
}

func (r *backtestRunRepository) Create(ctx context.Context, run *model.BacktestRun, opts ...utils.DBOption) error {
	db := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	return db.Create(run).Error
}

func (r *backtestRunRepository) Get(ctx context.Context, param model.GetBacktestRunsParam, opts ...utils.DBOption) ([]model.BacktestRun, error) {
	db := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	if len(param.IDs) > 0 {
		db = db.Where("id IN ?", param.IDs)
	}
	if len(param.Symbols) > 0 {
		db = db.Where("symbol IN ?", param.Symbols)
	}
	if len(param.Strategies) > 0 {
		db = db.Where("strategy IN ?", param.Strategies)
	}
	if param.Limit > 0 {
		db = db.Limit(param.Limit)
	}

	var runs []model.BacktestRun
	if err := db.Order("created_at DESC").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *backtestRunRepository) FindByID(ctx context.Context, id uint) (*model.BacktestRun, error) {
	var run model.BacktestRun
	if err := r.db.WithContext(ctx).First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}
