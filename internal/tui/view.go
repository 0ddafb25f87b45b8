package tui

import (
	"fmt"
	"strings"

	"github.com/yourusername/backtest-console/internal/dashboard"
	"github.com/yourusername/backtest-console/internal/models"
	"github.com/yourusername/backtest-console/internal/picker"
	"github.com/yourusername/backtest-console/internal/tui/components"
)

// View renders the active screen
func (m Model) View() string {
	var body string

	switch m.activeView {
	case ViewDashboard:
		body = m.viewDashboard()
	case ViewStrategies:
		body = m.viewStrategies()
	case ViewDatasets:
		body = m.viewDatasets()
	case ViewNewBacktest:
		body = m.viewForm()
	case ViewBacktests:
		body = m.viewBacktests()
	case ViewBacktestDetail:
		body = m.viewBacktestDetail()
	case ViewJobMonitor:
		body = components.RenderJobPanel(m.watchedJobID, m.watchedJob)
	case ViewError:
		body = m.viewError()
	}

	return m.header() + "\n" + body + "\n" + m.footer()
}

func (m Model) header() string {
	tabs := []struct {
		view  View
		label string
	}{
		{ViewDashboard, "1 Dashboard"},
		{ViewStrategies, "2 Strategies"},
		{ViewDatasets, "3 Datasets"},
		{ViewNewBacktest, "4 New Backtest"},
		{ViewBacktests, "5 Backtests"},
	}

	var parts []string
	for _, tab := range tabs {
		if tab.view == m.activeView {
			parts = append(parts, m.styles.Selected.Render(tab.label))
		} else {
			parts = append(parts, m.styles.Muted.Render(tab.label))
		}
	}

	line := m.styles.Title.Render("Backtest Console") + "  " + strings.Join(parts, "  ")
	if m.loading {
		line += "  " + m.styles.Muted.Render("loading...")
	}

	if m.notice != nil {
		style := m.styles.Success
		if m.notice.isError {
			style = m.styles.Failure
		}
		line += "\n" + style.Render(m.notice.text)
	}

	return line
}

func (m Model) footer() string {
	switch m.activeView {
	case ViewNewBacktest:
		if m.editing {
			return m.styles.StatusBar.Render("enter save · esc cancel")
		}
		if m.pickingWhich != "" {
			return m.styles.StatusBar.Render("type to search · up/down move · enter select · esc close")
		}
		return m.styles.StatusBar.Render("up/down move · enter edit · s submit · ctrl+r reset · esc cancel")
	case ViewBacktests:
		return m.styles.StatusBar.Render("enter detail · x delete · n new · r refresh · q quit")
	case ViewJobMonitor:
		return m.styles.StatusBar.Render("esc stop watching")
	case ViewError:
		return m.styles.StatusBar.Render("r retry · h home")
	}
	return m.styles.StatusBar.Render("1-5 views · r refresh · t theme · q quit")
}

func (m Model) viewDashboard() string {
	summary := dashboard.Build(m.backtests)
	return components.RenderSummaryCard(summary) + "\n" +
		components.RenderJobStats(m.jobs) + "\n\n" +
		components.RenderStrategyTable(summary.Strategies)
}

func (m Model) viewStrategies() string {
	if len(m.strategies) == 0 {
		return m.styles.Muted.Render("No strategies registered.")
	}

	var out strings.Builder
	out.WriteString(m.styles.Header.Render("Strategy Library") + "\n\n")
	for i, s := range m.strategies {
		marker := "  "
		line := fmt.Sprintf("%-30s %s", s.Name, m.styles.Muted.Render(s.Description))
		if !s.Active {
			line = fmt.Sprintf("%-30s %s", s.Name, m.styles.Muted.Render("(inactive)"))
		}
		if i == m.listCursor {
			marker = "> "
			line = m.styles.Selected.Render(line)
		}
		out.WriteString(marker + line + "\n")
	}
	out.WriteString("\n" + m.styles.Muted.Render("enter: run backtest with this strategy"))
	return out.String()
}

func (m Model) viewDatasets() string {
	if len(m.datasets) == 0 {
		return m.styles.Muted.Render("No datasets available.")
	}

	var out strings.Builder
	out.WriteString(m.styles.Header.Render("Datasets") + "\n\n")
	out.WriteString(fmt.Sprintf("%-24s %-10s %-8s %10s  %s\n", "Name", "Symbol", "TF", "Rows", "Range"))
	for _, d := range m.datasets {
		dateRange := ""
		if d.StartDate != "" || d.EndDate != "" {
			dateRange = d.StartDate + " .. " + d.EndDate
		}
		out.WriteString(fmt.Sprintf("%-24s %-10s %-8s %10d  %s\n",
			d.Name, d.Symbol, d.Timeframe, d.RowsCount, m.styles.Muted.Render(dateRange)))
	}
	return out.String()
}

func (m Model) viewForm() string {
	if m.pickingWhich != "" {
		return m.viewPicker()
	}

	var out strings.Builder
	out.WriteString(m.styles.Header.Render("New Backtest") + "\n\n")

	for i, field := range m.fields {
		marker := "  "
		label := fmt.Sprintf("%-22s", field.label)
		value := field.value

		if i == m.focusedField {
			marker = "> "
			label = m.styles.Selected.Render(label)
			if m.editing {
				value = m.editBuffer + "_"
			}
		}

		out.WriteString(marker + label + " " + value)
		if field.help != "" && i == m.focusedField && !m.editing {
			out.WriteString("  " + m.styles.Muted.Render(field.help))
		}
		if errText, ok := m.fieldErrors[errorKeyFor(field.key)]; ok {
			out.WriteString("\n    " + m.styles.FieldErr.Render(errText))
		}
		out.WriteString("\n")
	}

	if warn := m.dateOrderHint(); warn != "" {
		out.WriteString("\n" + m.styles.Muted.Render(warn) + "\n")
	}

	return out.String()
}

// errorKeyFor maps a form field key to its validation error key.
func errorKeyFor(fieldKey string) string {
	switch fieldKey {
	case "strategy_id":
		return "strategy"
	case "dataset_id":
		return "dataset"
	case "lots":
		return "position_size"
	}
	return fieldKey
}

// dateOrderHint flags an inverted date range without blocking submission; the
// backend's behavior on an inverted range is undefined, so this stays a hint.
func (m Model) dateOrderHint() string {
	d := m.drafts.Draft()
	if d.StartDate != "" && d.EndDate != "" && d.StartDate > d.EndDate {
		return "note: start date is after end date"
	}
	return ""
}

func (m Model) viewPicker() string {
	var out strings.Builder

	if m.pickingWhich == "strategy" {
		out.WriteString(m.styles.Header.Render("Select Strategy") + "\n\n")
		out.WriteString("Search: " + m.strategyPick.Query() + "_\n\n")
		filtered := picker.FilterStrategies(m.strategies, m.strategyPick.Query())
		for i, s := range filtered {
			line := s.Name
			if i == m.pickerCursor {
				line = m.styles.Selected.Render("> " + line)
			} else {
				line = "  " + line
			}
			out.WriteString(line + "\n")
		}
		if len(filtered) == 0 {
			out.WriteString(m.styles.Muted.Render("no matches") + "\n")
		}
		return out.String()
	}

	out.WriteString(m.styles.Header.Render("Select Dataset") + "\n\n")
	out.WriteString("Search: " + m.datasetPick.Query() + "_\n\n")
	filtered := picker.FilterDatasets(m.datasets, m.datasetPick.Query())
	for i, d := range filtered {
		line := fmt.Sprintf("%s (%s, %s)", d.Name, d.Symbol, d.Timeframe)
		if i == m.pickerCursor {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		out.WriteString(line + "\n")
	}
	if len(filtered) == 0 {
		out.WriteString(m.styles.Muted.Render("no matches") + "\n")
	}
	return out.String()
}

func (m Model) viewBacktests() string {
	if len(m.backtests) == 0 {
		return m.styles.Muted.Render("No backtests yet. Press n to configure one.")
	}

	var out strings.Builder
	out.WriteString(m.styles.Header.Render("Backtests") + "\n\n")
	out.WriteString(fmt.Sprintf("%-26s %-10s %9s %8s\n", "Strategy", "Status", "Return", "Sharpe"))

	for i, bt := range m.backtests {
		name := bt.StrategyName
		if name == "" {
			name = bt.StrategyID
		}
		ret, sharpe := "-", "-"
		if bt.Metrics != nil {
			ret = fmt.Sprintf("%8.2f%%", bt.Metrics.TotalReturn*100)
			sharpe = fmt.Sprintf("%8.2f", bt.Metrics.SharpeRatio)
		}

		line := fmt.Sprintf("%-26s %-10s %9s %8s", name, statusLabel(bt.Status), ret, sharpe)
		if i == m.listCursor {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		out.WriteString(line + "\n")
	}
	return out.String()
}

func statusLabel(status models.JobStatus) string {
	if status == "" {
		return "unknown"
	}
	return string(status)
}

func (m Model) viewBacktestDetail() string {
	bt := m.currentBacktest
	if bt == nil {
		return m.styles.Muted.Render("No backtest selected.")
	}

	var out strings.Builder
	name := bt.StrategyName
	if name == "" {
		name = bt.StrategyID
	}
	out.WriteString(m.styles.Header.Render("Backtest "+bt.ID) + "\n\n")
	out.WriteString(fmt.Sprintf("Strategy: %s    Dataset: %s    Status: %s\n\n", name, bt.DatasetID, statusLabel(bt.Status)))

	if bt.Metrics != nil {
		metr := bt.Metrics
		out.WriteString(fmt.Sprintf("Total return:   %8.2f%%\n", metr.TotalReturn*100))
		out.WriteString(fmt.Sprintf("Sharpe ratio:   %8.2f\n", metr.SharpeRatio))
		out.WriteString(fmt.Sprintf("Max drawdown:   %8.2f%%\n", metr.MaxDrawdown*100))
		out.WriteString(fmt.Sprintf("Win rate:       %8.2f%%\n", metr.WinRate*100))
		out.WriteString(fmt.Sprintf("Profit factor:  %8.2f\n", metr.ProfitFactor))
		out.WriteString(fmt.Sprintf("Trades:         %8d\n", metr.TotalTrades))
		out.WriteString(fmt.Sprintf("Final capital:  %8.2f\n\n", metr.FinalCapital))
	} else {
		out.WriteString(m.styles.Muted.Render("No metrics yet.") + "\n\n")
	}

	width := m.width - 4
	if width <= 0 {
		width = 60
	}
	out.WriteString(components.RenderEquitySparkline(m.chart, width))
	return out.String()
}

func (m Model) viewError() string {
	msg := "Something went wrong."
	if m.boundaryErr != nil {
		msg = m.boundaryErr.Error()
	}
	return m.styles.Panel.Render(
		m.styles.Failure.Render("The console hit an unexpected error") + "\n\n" +
			msg + "\n\n" +
			m.styles.Muted.Render("r: retry    h: back to dashboard"))
}
