// Package draft holds the in-progress backtest configuration being edited by
// the user, its default merging, and its validation rules. Nothing here talks
// to the backend; the draft is plain state mutated by the single UI goroutine.
package draft

import (
	"github.com/yourusername/backtest-console/internal/models"
	"github.com/yourusername/backtest-console/internal/prefs"
)

// Draft is the user-editable backtest configuration. An empty string id means
// "unselected". Commission and slippage are stored as fractional rates; the UI
// edits them as percentages through the transform in percent.go.
type Draft struct {
	StrategyID     string
	DatasetID      string
	InitialCapital float64
	Lots           int
	Commission     *float64
	Slippage       *float64
	StartDate      string
	EndDate        string
	Parameters     map[string]interface{}

	// Strategy-specific extras carried from preference defaults; folded into
	// the parameters bag at submission time.
	DailyProfitTarget float64
	OptionDelta       float64
	OptionPrice       float64
	IntradayMode      bool
	SessionCloseTime  string
	DirectionFilter   string
	TimeFilters       []string
	WeekdayFilters    []string
}

// OpenOptions carries an optional pre-selection, used when entering the flow
// from a "run backtest" action on a specific strategy.
type OpenOptions struct {
	StrategyID string
	Parameters map[string]interface{}
}

// Store owns the draft lifecycle: build on open, mutate while editing, discard
// on cancel or after successful submission.
type Store struct {
	prefs *prefs.Store
	draft Draft
	open  bool

	// A dataset choice survives reopening the form; a strategy choice does
	// not. Asymmetric on purpose: it matches the observed product behavior.
	lastDatasetID string

	lastOpts OpenOptions
}

// NewStore creates a draft store backed by the given preference store.
func NewStore(prefStore *prefs.Store) *Store {
	return &Store{prefs: prefStore}
}

// Open (re)builds the draft from defaults and applies the selection policy:
// auto-select the first strategy/dataset only when nothing is selected and no
// explicit pre-selection was supplied.
func (s *Store) Open(opts OpenOptions, strategies []models.Strategy, datasets []models.Dataset) {
	s.lastOpts = opts
	s.draft = buildDefaults(s.prefs)

	if opts.StrategyID != "" {
		s.draft.StrategyID = opts.StrategyID
	} else if len(strategies) > 0 {
		s.draft.StrategyID = strategies[0].ID
	}

	if len(opts.Parameters) > 0 {
		s.draft.Parameters = cloneParams(opts.Parameters)
	}

	if s.lastDatasetID != "" {
		s.draft.DatasetID = s.lastDatasetID
	} else if len(datasets) > 0 {
		s.draft.DatasetID = datasets[0].ID
	}

	s.open = true
}

// Close discards the draft; the dataset selection is remembered in-memory.
func (s *Store) Close() {
	s.lastDatasetID = s.draft.DatasetID
	s.open = false
}

// IsOpen reports whether the configuration surface is open.
func (s *Store) IsOpen() bool {
	return s.open
}

// Draft returns a copy of the current draft.
func (s *Store) Draft() Draft {
	d := s.draft
	d.Parameters = cloneParams(s.draft.Parameters)
	return d
}

// SetField shallow-merges one top-level field into the draft. Unknown keys are
// ignored; parameters go through SetParameter/SetParameters.
func (s *Store) SetField(key string, value interface{}) {
	switch key {
	case "strategy_id":
		if v, ok := value.(string); ok {
			s.draft.StrategyID = v
		}
	case "dataset_id":
		if v, ok := value.(string); ok {
			s.draft.DatasetID = v
			s.lastDatasetID = v
		}
	case "initial_capital":
		if v, ok := asNumber(value); ok {
			s.draft.InitialCapital = v
		}
	case "lots":
		if v, ok := asNumber(value); ok {
			s.draft.Lots = int(v)
		}
	case "commission":
		if v, ok := asNumber(value); ok {
			s.draft.Commission = &v
		} else if value == nil {
			s.draft.Commission = nil
		}
	case "slippage":
		if v, ok := asNumber(value); ok {
			s.draft.Slippage = &v
		} else if value == nil {
			s.draft.Slippage = nil
		}
	case "start_date":
		if v, ok := value.(string); ok {
			s.draft.StartDate = v
		}
	case "end_date":
		if v, ok := value.(string); ok {
			s.draft.EndDate = v
		}
	case "daily_profit_target":
		if v, ok := asNumber(value); ok {
			s.draft.DailyProfitTarget = v
		}
	case "option_delta":
		if v, ok := asNumber(value); ok {
			s.draft.OptionDelta = v
		}
	case "option_price":
		if v, ok := asNumber(value); ok {
			s.draft.OptionPrice = v
		}
	case "intraday_mode":
		if v, ok := value.(bool); ok {
			s.draft.IntradayMode = v
		}
	case "session_close_time":
		if v, ok := value.(string); ok {
			s.draft.SessionCloseTime = v
		}
	case "direction_filter":
		if v, ok := value.(string); ok {
			s.draft.DirectionFilter = v
		}
	}
}

// SetParameter sets one strategy parameter value.
func (s *Store) SetParameter(name string, value interface{}) {
	if s.draft.Parameters == nil {
		s.draft.Parameters = make(map[string]interface{})
	}
	s.draft.Parameters[name] = value
}

// SetParameters replaces the parameters sub-object wholesale.
func (s *Store) SetParameters(params map[string]interface{}) {
	s.draft.Parameters = cloneParams(params)
}

// Reset restores the draft to freshly computed defaults, reapplying the
// pre-selection the surface was opened with.
func (s *Store) Reset() {
	s.draft = buildDefaults(s.prefs)
	if s.lastOpts.StrategyID != "" {
		s.draft.StrategyID = s.lastOpts.StrategyID
	}
	if len(s.lastOpts.Parameters) > 0 {
		s.draft.Parameters = cloneParams(s.lastOpts.Parameters)
	}
	if s.lastDatasetID != "" {
		s.draft.DatasetID = s.lastDatasetID
	}
}

func cloneParams(params map[string]interface{}) map[string]interface{} {
	if params == nil {
		return nil
	}
	cloned := make(map[string]interface{}, len(params))
	for k, v := range params {
		cloned[k] = v
	}
	return cloned
}
