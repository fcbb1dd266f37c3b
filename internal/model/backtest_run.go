package model

import (
	"time"

	"gorm.io/datatypes"
)

// BacktestRun is the persisted summary of one completed backtest.
type BacktestRun struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Symbol         string         `gorm:"not null;index" json:"symbol"`
	Strategy       string         `gorm:"not null;index" json:"strategy"`
	StartDate      time.Time      `gorm:"not null" json:"start_date"`
	EndDate        time.Time      `gorm:"not null" json:"end_date"`
	InitialCapital float64        `gorm:"not null" json:"initial_capital"`
	FinalValue     float64        `gorm:"not null" json:"final_value"`
	TotalReturnPct float64        `gorm:"not null" json:"total_return_pct"`
	SharpeRatio    float64        `gorm:"not null" json:"sharpe_ratio"`
	MaxDrawdownPct float64        `gorm:"not null" json:"max_drawdown_pct"`
	WinRatePct     float64        `gorm:"not null" json:"win_rate_pct"`
	ProfitFactor   float64        `gorm:"not null" json:"profit_factor"`
	TotalTrades    int            `gorm:"not null" json:"total_trades"`
	Trades         datatypes.JSON `gorm:"type:jsonb" json:"trades"`
	EquityCurve    datatypes.JSON `gorm:"type:jsonb" json:"equity_curve"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BacktestRun) TableName() string {
	return "backtest_runs"
}

type GetBacktestRunsParam struct {
	IDs        []uint   `json:"ids"`
	Symbols    []string `json:"symbols"`
	Strategies []string `json:"strategies"`
	Limit      int      `json:"limit"`
}
