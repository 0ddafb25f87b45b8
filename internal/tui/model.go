// Package tui implements the interactive terminal UI: dashboard, strategy and
// dataset browsers, the new-backtest form, and the job monitor.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/backtest-console/internal/api"
	"github.com/yourusername/backtest-console/internal/draft"
	"github.com/yourusername/backtest-console/internal/models"
	"github.com/yourusername/backtest-console/internal/picker"
	"github.com/yourusername/backtest-console/internal/poller"
	"github.com/yourusername/backtest-console/internal/prefs"
	"github.com/yourusername/backtest-console/internal/submit"
)

// View represents the active screen
type View int

const (
	ViewDashboard View = iota
	ViewStrategies
	ViewDatasets
	ViewNewBacktest
	ViewBacktests
	ViewBacktestDetail
	ViewJobMonitor
	ViewError
)

// notice is a transient toast-style notification
type notice struct {
	text    string
	isError bool
	at      time.Time
}

// formField is one editable line of the new-backtest form
type formField struct {
	key   string // draft field key, or "param_<name>"
	label string
	value string
	help  string
}

// Model is the Bubble Tea application model
type Model struct {
	client  *api.CachedClient
	prefs   *prefs.Store
	drafts  *draft.Store
	poller  *poller.Poller
	logger  *logrus.Logger
	styles  Styles
	baseCtx context.Context

	// UI state
	width      int
	height     int
	activeView View
	prevView   View
	loading    bool
	notice     *notice

	// Collections
	strategies []models.Strategy
	datasets   []models.Dataset
	backtests  []models.Backtest
	jobs       []models.Job
	schema     []models.ParameterSpec

	// Form state
	fields        []formField
	focusedField  int
	editing       bool
	editBuffer    string
	fieldErrors   draft.ErrorMap
	strategyPick  picker.Selection
	datasetPick   picker.Selection
	pickingWhich  string // "", "strategy", "dataset"
	pickerCursor  int

	// Backtest browsing
	listCursor      int
	currentBacktest *models.Backtest
	chart           *models.ChartSeries

	// Job monitoring
	watchedJobID string
	watchedJob   *models.Job
	watchCancel  context.CancelFunc
	watchUpdates <-chan poller.Update

	// Error boundary
	boundaryErr error
}

// NewModel creates the TUI model
func NewModel(client *api.CachedClient, prefStore *prefs.Store, pollInterval time.Duration, logger *logrus.Logger) Model {
	return Model{
		client:     client,
		prefs:      prefStore,
		drafts:     draft.NewStore(prefStore),
		poller:     poller.New(client, pollInterval, logger),
		logger:     logger,
		styles:     NewStyles(prefStore.Theme()),
		baseCtx:    context.Background(),
		activeView: ViewDashboard,
	}
}

// Init starts the initial data load
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.loadCollectionsCmd(false),
	)
}

// noticeRecorder captures pipeline notifications so the Update loop can apply
// them to the model that is current when the command message arrives.
type noticeRecorder struct {
	notices []notice
}

// Success implements submit.Notifier
func (r *noticeRecorder) Success(msg string) {
	r.notices = append(r.notices, notice{text: msg, at: time.Now()})
}

// Error implements submit.Notifier
func (r *noticeRecorder) Error(msg string) {
	r.notices = append(r.notices, notice{text: msg, isError: true, at: time.Now()})
}

// Message types

type collectionsLoadedMsg struct {
	strategies []models.Strategy
	datasets   []models.Dataset
	backtests  []models.Backtest
	jobs       []models.Job
}

type schemaLoadedMsg struct {
	strategyID string
	schema     []models.ParameterSpec
}

type backtestDetailMsg struct {
	backtest *models.Backtest
	chart    *models.ChartSeries
}

type submitOutcomeMsg struct {
	outcome submit.Outcome
	notices []notice
}

type jobUpdateMsg poller.Update

type watchFinishedMsg struct{}

type deletedMsg struct{ backtestID string }

type errMsg struct{ err error }

type clearNoticeMsg struct{}

func clearNoticeCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}
