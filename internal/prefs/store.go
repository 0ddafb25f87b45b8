// Package prefs holds persisted user preferences: the UI theme and the
// per-field defaults applied to every new backtest draft. The store is an
// explicit dependency, never a package-level singleton, and writes through a
// pluggable persistence adapter on every change.
package prefs

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Theme is the UI colour preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// DefaultConfig is the persisted per-field default set merged into new drafts.
type DefaultConfig struct {
	InitialCapital    float64  `json:"initial_capital"`
	Lots              int      `json:"lots"`
	FeePerTrade       float64  `json:"fee_per_trade"`
	Slippage          float64  `json:"slippage"`
	DailyProfitTarget float64  `json:"daily_profit_target"`
	OptionDelta       float64  `json:"option_delta"`
	OptionPrice       float64  `json:"option_price"`
	IntradayMode      bool     `json:"intraday_mode"`
	SessionCloseTime  string   `json:"session_close_time"`
	DirectionFilter   string   `json:"direction_filter"`
	TimeFilters       []string `json:"time_filters,omitempty"`
	WeekdayFilters    []string `json:"weekday_filters,omitempty"`
}

// Data is the full persisted preference set.
type Data struct {
	Theme    Theme          `json:"theme"`
	Defaults *DefaultConfig `json:"defaults,omitempty"`
}

// Adapter is the persistence boundary: load on init, save on change.
type Adapter interface {
	Load() (*Data, error)
	Save(*Data) error
}

// Store holds preferences in memory and writes through the adapter.
type Store struct {
	mu      sync.RWMutex
	data    Data
	adapter Adapter
	logger  *logrus.Logger
}

// NewStore creates a store, hydrating from the adapter. A load failure is
// logged and falls back to defaults rather than blocking startup.
func NewStore(adapter Adapter, logger *logrus.Logger) *Store {
	s := &Store{
		data:    Data{Theme: ThemeSystem},
		adapter: adapter,
		logger:  logger,
	}

	if adapter != nil {
		if loaded, err := adapter.Load(); err != nil {
			logger.WithError(err).Warn("Failed to load preferences, using defaults")
		} else if loaded != nil {
			s.data = *loaded
			if s.data.Theme == "" {
				s.data.Theme = ThemeSystem
			}
		}
	}

	return s
}

// Theme returns the current theme preference
func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Theme
}

// SetTheme updates and persists the theme preference
func (s *Store) SetTheme(theme Theme) {
	s.mu.Lock()
	s.data.Theme = theme
	s.mu.Unlock()
	s.persist()
}

// Defaults returns a copy of the persisted draft defaults, or nil if unset
func (s *Store) Defaults() *DefaultConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Defaults == nil {
		return nil
	}
	copied := *s.data.Defaults
	return &copied
}

// SetDefaults updates and persists the draft defaults
func (s *Store) SetDefaults(defaults DefaultConfig) {
	s.mu.Lock()
	s.data.Defaults = &defaults
	s.mu.Unlock()
	s.persist()
}

func (s *Store) persist() {
	if s.adapter == nil {
		return
	}

	s.mu.RLock()
	snapshot := s.data
	s.mu.RUnlock()

	if err := s.adapter.Save(&snapshot); err != nil {
		s.logger.WithError(err).Warn("Failed to persist preferences")
	}
}
