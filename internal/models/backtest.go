package models

import "time"

// BacktestMetrics holds the performance figures computed by the backend.
type BacktestMetrics struct {
	TotalReturn  float64 `json:"total_return"`
	SharpeRatio  float64 `json:"sharpe_ratio"`
	MaxDrawdown  float64 `json:"max_drawdown"`
	WinRate      float64 `json:"win_rate"`
	ProfitFactor float64 `json:"profit_factor"`
	TotalTrades  int     `json:"total_trades"`
	FinalCapital float64 `json:"final_capital"`
}

// Backtest represents a completed or in-flight backtest run.
type Backtest struct {
	ID           string           `json:"id"`
	StrategyID   string           `json:"strategy_id"`
	StrategyName string           `json:"strategy_name,omitempty"`
	DatasetID    string           `json:"dataset_id"`
	Status       JobStatus        `json:"status"`
	Metrics      *BacktestMetrics `json:"metrics,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// EquityPoint is one sample of the equity curve series.
type EquityPoint struct {
	Time   time.Time `json:"time"`
	Equity float64   `json:"equity"`
}

// ChartSeries carries the plottable output of a backtest.
type ChartSeries struct {
	BacktestID  string        `json:"backtest_id"`
	EquityCurve []EquityPoint `json:"equity_curve"`
	Drawdown    []EquityPoint `json:"drawdown,omitempty"`
}
