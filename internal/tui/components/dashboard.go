package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/backtest-console/internal/dashboard"
	"github.com/yourusername/backtest-console/internal/models"
)

var (
	mutedColor = lipgloss.AdaptiveColor{Light: "243", Dark: "245"}

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

// RenderSummaryCard renders the dashboard totals card
func RenderSummaryCard(summary dashboard.Summary) string {
	var content strings.Builder

	content.WriteString("Backtests\n\n")
	content.WriteString(fmt.Sprintf("%s  %d\n", labelStyle.Render("Total:    "), summary.TotalBacktests))
	content.WriteString(fmt.Sprintf("%s  %d\n", labelStyle.Render("Completed:"), summary.Completed))
	content.WriteString(fmt.Sprintf("%s  %d\n", labelStyle.Render("Running:  "), summary.Running))
	content.WriteString(fmt.Sprintf("%s  %d\n", labelStyle.Render("Failed:   "), summary.Failed))

	return boxStyle.Render(content.String())
}

// RenderStrategyTable renders the per-strategy aggregate table
func RenderStrategyTable(summaries []dashboard.StrategySummary) string {
	if len(summaries) == 0 {
		return labelStyle.Render("No backtests yet. Press 4 to configure one.")
	}

	var content strings.Builder
	content.WriteString(fmt.Sprintf("%-28s %5s %9s %8s %8s\n", "Strategy", "Runs", "AvgRet", "Sharpe", "WinRate"))

	for _, s := range summaries {
		name := s.StrategyName
		if name == "" {
			name = s.StrategyID
		}
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		content.WriteString(fmt.Sprintf("%-28s %5d %8.2f%% %8.2f %7.1f%%\n",
			name, s.Backtests, s.AvgTotalReturn*100, s.AvgSharpeRatio, s.AvgWinRate*100))
	}

	return content.String()
}

// RenderJobStats renders a short job-queue line for the dashboard
func RenderJobStats(jobs []models.Job) string {
	var pending, running int
	for _, j := range jobs {
		switch j.Status {
		case models.JobPending:
			pending++
		case models.JobRunning:
			running++
		}
	}
	return labelStyle.Render(fmt.Sprintf("Queue: %d running, %d pending", running, pending))
}
