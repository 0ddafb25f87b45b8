package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/backtest-console/internal/api"
	"github.com/yourusername/backtest-console/internal/draft"
	"github.com/yourusername/backtest-console/internal/models"
	"github.com/yourusername/backtest-console/internal/picker"
	"github.com/yourusername/backtest-console/internal/prefs"
)

// Update is the top-level event handler. It doubles as the error boundary: a
// panic anywhere below lands in the error view instead of crashing the
// terminal session.
func (m Model) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.WithField("panic", r).Error("Recovered from UI failure")
			m.boundaryErr = fmt.Errorf("unexpected failure: %v", r)
			m.prevView = m.activeView
			m.activeView = ViewError
			model = m
			cmd = nil
		}
	}()
	return m.update(msg)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clearNoticeMsg:
		if m.notice != nil && time.Since(m.notice.at) >= 4*time.Second {
			m.notice = nil
		}
		return m, nil

	case collectionsLoadedMsg:
		m.loading = false
		m.strategies = msg.strategies
		m.datasets = msg.datasets
		m.backtests = msg.backtests
		m.jobs = msg.jobs
		return m, nil

	case schemaLoadedMsg:
		return m.applySchema(msg)

	case submitOutcomeMsg:
		return m.applySubmitOutcome(msg)

	case jobUpdateMsg:
		return m.applyJobUpdate(msg)

	case watchFinishedMsg:
		m.watchUpdates = nil
		return m, nil

	case backtestDetailMsg:
		m.loading = false
		m.currentBacktest = msg.backtest
		m.chart = msg.chart
		m.activeView = ViewBacktestDetail
		return m, nil

	case deletedMsg:
		m.notice = &notice{text: "Backtest deleted", at: time.Now()}
		return m, tea.Batch(m.loadCollectionsCmd(true), clearNoticeCmd())

	case errMsg:
		m.loading = false
		m.notice = &notice{text: api.UserMessage(msg.err), isError: true, at: time.Now()}
		return m, clearNoticeCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry swallows everything except its own control keys.
	if m.editing {
		return m.handleEditKey(msg)
	}
	if m.pickingWhich != "" {
		return m.handlePickerKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.stopWatch()
		return m, tea.Quit
	case "1":
		m.activeView = ViewDashboard
		return m, nil
	case "2":
		m.activeView = ViewStrategies
		m.listCursor = 0
		return m, nil
	case "3":
		m.activeView = ViewDatasets
		m.listCursor = 0
		return m, nil
	case "4":
		return m.openForm(draft.OpenOptions{})
	case "5":
		m.activeView = ViewBacktests
		m.listCursor = 0
		return m, nil
	case "r":
		m.loading = true
		return m, m.loadCollectionsCmd(true)
	case "t":
		return m.cycleTheme()
	}

	switch m.activeView {
	case ViewNewBacktest:
		return m.handleFormKey(msg)
	case ViewStrategies:
		return m.handleStrategiesKey(msg)
	case ViewBacktests:
		return m.handleBacktestsKey(msg)
	case ViewBacktestDetail:
		if msg.String() == "esc" {
			m.activeView = ViewBacktests
			m.currentBacktest = nil
			m.chart = nil
		}
		return m, nil
	case ViewJobMonitor:
		if msg.String() == "esc" {
			m.stopWatch()
			m.activeView = ViewBacktests
			return m, m.loadCollectionsCmd(true)
		}
		return m, nil
	case ViewError:
		return m.handleErrorKey(msg)
	}

	return m, nil
}

func (m Model) handleErrorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r": // retry: go back and refetch
		m.boundaryErr = nil
		m.activeView = m.prevView
		m.loading = true
		return m, m.loadCollectionsCmd(true)
	case "h": // home
		m.boundaryErr = nil
		m.activeView = ViewDashboard
		return m, nil
	}
	return m, nil
}

func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	var next prefs.Theme
	switch m.prefs.Theme() {
	case prefs.ThemeSystem:
		next = prefs.ThemeLight
	case prefs.ThemeLight:
		next = prefs.ThemeDark
	default:
		next = prefs.ThemeSystem
	}
	m.prefs.SetTheme(next)
	m.styles = NewStyles(next)
	m.notice = &notice{text: "Theme: " + string(next), at: time.Now()}
	return m, clearNoticeCmd()
}

// --- new-backtest form ---

func (m Model) openForm(opts draft.OpenOptions) (tea.Model, tea.Cmd) {
	m.drafts.Open(opts, m.strategies, m.datasets)
	m.activeView = ViewNewBacktest
	m.fieldErrors = nil
	m.focusedField = 0
	m.strategyPick.Clear()
	m.datasetPick.Clear()
	m.schema = nil

	d := m.drafts.Draft()
	if d.StrategyID != "" {
		m.strategyPick.Select(d.StrategyID)
		m.rebuildForm()
		return m, m.loadSchemaCmd(d.StrategyID)
	}
	if d.DatasetID != "" {
		m.datasetPick.Select(d.DatasetID)
	}
	m.rebuildForm()
	return m, nil
}

func (m *Model) rebuildForm() {
	d := m.drafts.Draft()
	if d.DatasetID != "" {
		m.datasetPick.Select(d.DatasetID)
	}

	fields := []formField{
		{key: "strategy_id", label: "Strategy", value: m.strategyName(d.StrategyID), help: "enter to choose"},
		{key: "dataset_id", label: "Dataset", value: m.datasetName(d.DatasetID), help: "enter to choose"},
		{key: "initial_capital", label: "Initial capital", value: strconv.FormatFloat(d.InitialCapital, 'f', -1, 64)},
		{key: "lots", label: "Position size (lots)", value: strconv.Itoa(d.Lots)},
		{key: "commission", label: "Commission %", value: rateField(d.Commission)},
		{key: "slippage", label: "Slippage %", value: rateField(d.Slippage)},
		{key: "start_date", label: "Start date", value: d.StartDate, help: "YYYY-MM-DD, optional"},
		{key: "end_date", label: "End date", value: d.EndDate, help: "YYYY-MM-DD, optional"},
		{key: "intraday_mode", label: "Intraday mode", value: boolField(d.IntradayMode), help: "enter to toggle"},
		{key: "session_close_time", label: "Session close", value: d.SessionCloseTime},
		{key: "direction_filter", label: "Direction", value: d.DirectionFilter},
	}

	for _, spec := range m.schema {
		value := ""
		if v, ok := d.Parameters[spec.Name]; ok && v != nil {
			value = fmt.Sprintf("%v", v)
		}
		help := spec.Description
		if spec.Required && help == "" {
			help = "required"
		}
		fields = append(fields, formField{
			key:   "param_" + spec.Name,
			label: spec.Name,
			value: value,
			help:  help,
		})
	}

	m.fields = fields
	if m.focusedField >= len(fields) {
		m.focusedField = len(fields) - 1
	}
}

func rateField(rate *float64) string {
	if rate == nil {
		return ""
	}
	return draft.RateToPercent(*rate)
}

func boolField(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.drafts.Close()
		m.activeView = ViewDashboard
		return m, nil
	case "up", "k":
		if m.focusedField > 0 {
			m.focusedField--
		}
		return m, nil
	case "down", "j", "tab":
		if m.focusedField < len(m.fields)-1 {
			m.focusedField++
		}
		return m, nil
	case "ctrl+r":
		m.drafts.Reset()
		m.fieldErrors = nil
		m.rebuildForm()
		return m, nil
	case "s", "ctrl+s":
		return m, m.submitCmd()
	case "enter":
		return m.activateField()
	}
	return m, nil
}

func (m Model) activateField() (tea.Model, tea.Cmd) {
	if len(m.fields) == 0 {
		return m, nil
	}
	field := m.fields[m.focusedField]

	switch field.key {
	case "strategy_id":
		m.pickingWhich = "strategy"
		m.pickerCursor = 0
		m.strategyPick.SetQuery("")
		return m, nil
	case "dataset_id":
		m.pickingWhich = "dataset"
		m.pickerCursor = 0
		m.datasetPick.SetQuery("")
		return m, nil
	case "intraday_mode":
		d := m.drafts.Draft()
		m.drafts.SetField("intraday_mode", !d.IntradayMode)
		m.rebuildForm()
		return m, nil
	}

	m.editing = true
	m.editBuffer = field.value
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.editBuffer = ""
		return m, nil
	case "enter":
		m.editing = false
		m.commitField(m.fields[m.focusedField].key, m.editBuffer)
		m.editBuffer = ""
		m.rebuildForm()
		return m, nil
	case "backspace":
		if len(m.editBuffer) > 0 {
			m.editBuffer = m.editBuffer[:len(m.editBuffer)-1]
		}
		return m, nil
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.editBuffer += string(msg.Runes)
		}
		return m, nil
	}
}

// commitField parses one edited value into the draft. Parse failures leave the
// previous value in place and surface inline on the next validation pass.
func (m *Model) commitField(key, raw string) {
	switch key {
	case "initial_capital", "lots":
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			m.drafts.SetField(key, v)
		}
	case "commission", "slippage":
		if raw == "" {
			m.drafts.SetField(key, nil)
			return
		}
		if rate, err := draft.PercentToRate(raw); err == nil {
			m.drafts.SetField(key, rate)
		}
	case "start_date", "end_date", "session_close_time", "direction_filter":
		m.drafts.SetField(key, raw)
	default:
		if name, ok := paramName(key); ok {
			m.commitParameter(name, raw)
		}
	}
}

func (m *Model) commitParameter(name, raw string) {
	for _, spec := range m.schema {
		if spec.Name != name {
			continue
		}
		if spec.Type.IsNumeric() && raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				if spec.Type == models.ParamInt {
					m.drafts.SetParameter(name, int(v))
				} else {
					m.drafts.SetParameter(name, v)
				}
				return
			}
		}
		if spec.Type == models.ParamBool {
			m.drafts.SetParameter(name, raw == "yes" || raw == "true")
			return
		}
		m.drafts.SetParameter(name, raw)
		return
	}
	m.drafts.SetParameter(name, raw)
}

func paramName(key string) (string, bool) {
	const prefix = "param_"
	if len(key) > len(prefix) && key[:len(prefix)] == prefix {
		return key[len(prefix):], true
	}
	return "", false
}

// --- pickers ---

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := &m.strategyPick
	if m.pickingWhich == "dataset" {
		sel = &m.datasetPick
	}

	switch msg.String() {
	case "esc":
		m.pickingWhich = ""
		m.rebuildForm()
		return m, nil
	case "up":
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
		return m, nil
	case "down":
		if m.pickerCursor < m.pickerLen()-1 {
			m.pickerCursor++
		}
		return m, nil
	case "backspace":
		q := sel.Query()
		if len(q) > 0 {
			sel.SetQuery(q[:len(q)-1])
			m.pickerCursor = 0
		}
		return m, nil
	case "enter":
		return m.pickCurrent(sel)
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			sel.SetQuery(sel.Query() + string(msg.Runes))
			m.pickerCursor = 0
		}
		return m, nil
	}
}

func (m Model) pickerLen() int {
	if m.pickingWhich == "strategy" {
		return len(picker.FilterStrategies(m.strategies, m.strategyPick.Query()))
	}
	return len(picker.FilterDatasets(m.datasets, m.datasetPick.Query()))
}

func (m Model) pickCurrent(sel *picker.Selection) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.pickingWhich == "strategy" {
		filtered := picker.FilterStrategies(m.strategies, sel.Query())
		if m.pickerCursor < len(filtered) {
			chosen := filtered[m.pickerCursor]
			sel.Select(chosen.ID)
			m.drafts.SetField("strategy_id", chosen.ID)
			m.schema = nil
			cmd = m.loadSchemaCmd(chosen.ID)
		}
	} else {
		filtered := picker.FilterDatasets(m.datasets, sel.Query())
		if m.pickerCursor < len(filtered) {
			chosen := filtered[m.pickerCursor]
			sel.Select(chosen.ID)
			m.drafts.SetField("dataset_id", chosen.ID)
		}
	}

	m.pickingWhich = ""
	m.rebuildForm()
	return m, cmd
}

// --- list views ---

func (m Model) handleStrategiesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.listCursor > 0 {
			m.listCursor--
		}
	case "down", "j":
		if m.listCursor < len(m.strategies)-1 {
			m.listCursor++
		}
	case "enter":
		if m.listCursor < len(m.strategies) {
			chosen := m.strategies[m.listCursor]
			return m.openForm(draft.OpenOptions{
				StrategyID: chosen.ID,
				Parameters: chosen.DefaultParameters(),
			})
		}
	}
	return m, nil
}

func (m Model) handleBacktestsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.listCursor > 0 {
			m.listCursor--
		}
	case "down", "j":
		if m.listCursor < len(m.backtests)-1 {
			m.listCursor++
		}
	case "enter":
		if m.listCursor < len(m.backtests) {
			m.loading = true
			return m, m.loadBacktestCmd(m.backtests[m.listCursor].ID)
		}
	case "x":
		if m.listCursor < len(m.backtests) {
			return m, m.deleteBacktestCmd(m.backtests[m.listCursor].ID)
		}
	case "n":
		return m.openForm(draft.OpenOptions{})
	}
	return m, nil
}

// --- async message application ---

func (m Model) applySchema(msg schemaLoadedMsg) (tea.Model, tea.Cmd) {
	d := m.drafts.Draft()
	if d.StrategyID != msg.strategyID {
		// Stale response for a selection the user already changed.
		return m, nil
	}

	m.schema = msg.schema
	if len(d.Parameters) == 0 {
		defaults := make(map[string]interface{})
		for _, spec := range msg.schema {
			if spec.Default != nil {
				defaults[spec.Name] = spec.Default
			}
		}
		m.drafts.SetParameters(defaults)
	}
	m.rebuildForm()
	return m, nil
}

func (m Model) applySubmitOutcome(msg submitOutcomeMsg) (tea.Model, tea.Cmd) {
	for i := range msg.notices {
		m.notice = &msg.notices[i]
	}

	if !msg.outcome.Submitted {
		m.fieldErrors = msg.outcome.Validation.Errors
		return m, clearNoticeCmd()
	}

	m.drafts.Close()
	m.fieldErrors = nil
	m.watchedJobID = msg.outcome.JobID
	m.watchedJob = nil
	m.activeView = ViewJobMonitor

	watchCtx, cancel := context.WithCancel(m.baseCtx)
	m.watchCancel = cancel
	m.watchUpdates = m.poller.Watch(watchCtx, msg.outcome.JobID)
	return m, tea.Batch(m.listenWatchCmd(), clearNoticeCmd())
}

func (m Model) applyJobUpdate(msg jobUpdateMsg) (tea.Model, tea.Cmd) {
	if msg.Job != nil {
		m.watchedJob = msg.Job
		if msg.Job.Status.IsTerminal() {
			return m, tea.Batch(m.listenWatchCmd(), m.loadCollectionsCmd(true))
		}
	}
	return m, m.listenWatchCmd()
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchUpdates = nil
}
