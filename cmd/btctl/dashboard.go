package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/backtest-console/internal/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the per-strategy performance roll-up",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		backtests, err := client.ListBacktests(ctx, "")
		if err != nil {
			return err
		}

		summary := dashboard.Build(backtests)
		fmt.Printf("Backtests: %d total, %d completed, %d running, %d failed\n\n",
			summary.TotalBacktests, summary.Completed, summary.Running, summary.Failed)

		fmt.Printf("%-28s %5s %9s %8s %8s %9s\n", "Strategy", "Runs", "AvgRet", "Sharpe", "WinRate", "BestRet")
		for _, s := range summary.Strategies {
			name := s.StrategyName
			if name == "" {
				name = s.StrategyID
			}
			fmt.Printf("%-28s %5d %8.2f%% %8.2f %7.1f%% %8.2f%%\n",
				name, s.Backtests, s.AvgTotalReturn*100, s.AvgSharpeRatio, s.AvgWinRate*100, s.BestTotalReturn*100)
		}
		return nil
	},
}
