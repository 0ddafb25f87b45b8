package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/backtest-console/internal/models"
	"github.com/yourusername/backtest-console/internal/submit"
)

// Data fetching runs in commands; explicit user actions (open, refresh,
// submit) trigger them, never implicit reactivity.

func (m Model) loadCollectionsCmd(refetch bool) tea.Cmd {
	client := m.client
	ctx := m.baseCtx
	return func() tea.Msg {
		var (
			msg collectionsLoadedMsg
			err error
		)

		if refetch {
			msg.strategies, err = client.RefetchStrategies(ctx)
		} else {
			msg.strategies, err = client.ListStrategies(ctx)
		}
		if err != nil {
			return errMsg{err}
		}

		if refetch {
			msg.datasets, err = client.RefetchDatasets(ctx)
		} else {
			msg.datasets, err = client.ListDatasets(ctx)
		}
		if err != nil {
			return errMsg{err}
		}

		if refetch {
			msg.backtests, err = client.RefetchBacktests(ctx, "")
		} else {
			msg.backtests, err = client.ListBacktests(ctx, "")
		}
		if err != nil {
			return errMsg{err}
		}

		if refetch {
			msg.jobs, err = client.RefetchJobs(ctx)
		} else {
			msg.jobs, err = client.ListJobs(ctx)
		}
		if err != nil {
			return errMsg{err}
		}

		return msg
	}
}

func (m Model) loadSchemaCmd(strategyID string) tea.Cmd {
	client := m.client
	ctx := m.baseCtx
	return func() tea.Msg {
		schema, err := client.GetStrategySchema(ctx, strategyID)
		if err != nil {
			return errMsg{err}
		}
		return schemaLoadedMsg{strategyID: strategyID, schema: schema}
	}
}

func (m Model) submitCmd() tea.Cmd {
	d := m.drafts.Draft()
	strategy := m.findStrategy(d.StrategyID)
	dataset := m.findDataset(d.DatasetID)
	schema := m.schema
	client := m.client
	logger := m.logger
	ctx := m.baseCtx

	return func() tea.Msg {
		recorder := &noticeRecorder{}
		handler := submit.NewHandler(client, recorder, logger)
		outcome := handler.Submit(ctx, d, strategy, dataset, schema)
		return submitOutcomeMsg{outcome: outcome, notices: recorder.notices}
	}
}

func (m Model) listenWatchCmd() tea.Cmd {
	ch := m.watchUpdates
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return watchFinishedMsg{}
		}
		return jobUpdateMsg(update)
	}
}

func (m Model) loadBacktestCmd(backtestID string) tea.Cmd {
	client := m.client
	ctx := m.baseCtx
	return func() tea.Msg {
		bt, err := client.GetBacktest(ctx, backtestID)
		if err != nil {
			return errMsg{err}
		}
		// The chart series is optional; a detail view without a curve is
		// still useful.
		chart, err := client.GetChartSeries(ctx, backtestID)
		if err != nil {
			chart = nil
		}
		return backtestDetailMsg{backtest: bt, chart: chart}
	}
}

func (m Model) deleteBacktestCmd(backtestID string) tea.Cmd {
	client := m.client
	ctx := m.baseCtx
	return func() tea.Msg {
		if err := client.DeleteBacktest(ctx, backtestID); err != nil {
			return errMsg{err}
		}
		return deletedMsg{backtestID: backtestID}
	}
}

// --- lookup helpers ---

func (m Model) findStrategy(id string) *models.Strategy {
	if id == "" {
		return nil
	}
	for i := range m.strategies {
		if m.strategies[i].ID == id {
			return &m.strategies[i]
		}
	}
	return nil
}

func (m Model) findDataset(id string) *models.Dataset {
	if id == "" {
		return nil
	}
	for i := range m.datasets {
		if m.datasets[i].ID == id {
			return &m.datasets[i]
		}
	}
	return nil
}

func (m Model) strategyName(id string) string {
	if s := m.findStrategy(id); s != nil {
		return s.Name
	}
	return ""
}

func (m Model) datasetName(id string) string {
	if d := m.findDataset(id); d != nil {
		return d.Name + " (" + d.Symbol + ")"
	}
	return ""
}
