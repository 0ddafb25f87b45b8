// Package dashboard aggregates backtest collections into the per-strategy
// summaries shown on the overview screen. Pure array math; the figures inside
// each backtest come from the backend as-is.
package dashboard

import (
	"sort"

	"github.com/yourusername/backtest-console/internal/models"
)

// StrategySummary aggregates the backtests of one strategy.
type StrategySummary struct {
	StrategyID      string
	StrategyName    string
	Backtests       int
	Completed       int
	AvgTotalReturn  float64
	AvgSharpeRatio  float64
	AvgMaxDrawdown  float64
	AvgWinRate      float64
	BestTotalReturn float64
}

// Summary is the dashboard roll-up.
type Summary struct {
	TotalBacktests int
	Completed      int
	Running        int
	Failed         int
	Strategies     []StrategySummary
}

// Build groups backtests by strategy and computes per-strategy averages over
// the completed runs that carry metrics.
func Build(backtests []models.Backtest) Summary {
	summary := Summary{TotalBacktests: len(backtests)}

	byStrategy := make(map[string]*StrategySummary)
	var order []string

	for _, bt := range backtests {
		switch bt.Status {
		case models.JobCompleted:
			summary.Completed++
		case models.JobRunning, models.JobPending:
			summary.Running++
		case models.JobFailed:
			summary.Failed++
		}

		entry, ok := byStrategy[bt.StrategyID]
		if !ok {
			entry = &StrategySummary{StrategyID: bt.StrategyID, StrategyName: bt.StrategyName}
			byStrategy[bt.StrategyID] = entry
			order = append(order, bt.StrategyID)
		}
		entry.Backtests++
		if entry.StrategyName == "" && bt.StrategyName != "" {
			entry.StrategyName = bt.StrategyName
		}

		if bt.Status != models.JobCompleted || bt.Metrics == nil {
			continue
		}
		m := bt.Metrics
		entry.Completed++
		entry.AvgTotalReturn += m.TotalReturn
		entry.AvgSharpeRatio += m.SharpeRatio
		entry.AvgMaxDrawdown += m.MaxDrawdown
		entry.AvgWinRate += m.WinRate
		// Seed from the first completed run so an all-negative strategy does
		// not report a best of zero.
		if entry.Completed == 1 || m.TotalReturn > entry.BestTotalReturn {
			entry.BestTotalReturn = m.TotalReturn
		}
	}

	summary.Strategies = make([]StrategySummary, 0, len(order))
	for _, id := range order {
		entry := byStrategy[id]
		if entry.Completed > 0 {
			n := float64(entry.Completed)
			entry.AvgTotalReturn /= n
			entry.AvgSharpeRatio /= n
			entry.AvgMaxDrawdown /= n
			entry.AvgWinRate /= n
		}
		summary.Strategies = append(summary.Strategies, *entry)
	}

	// Best average return first; stable for equal values.
	sort.SliceStable(summary.Strategies, func(i, j int) bool {
		return summary.Strategies[i].AvgTotalReturn > summary.Strategies[j].AvgTotalReturn
	})

	return summary
}
