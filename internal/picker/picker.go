// Package picker implements the search-filtered single-select lists used to
// choose a strategy and a dataset. Plain case-insensitive substring matching,
// source order preserved; no fuzzy matching, no ranking.
package picker

import (
	"strings"

	"github.com/yourusername/backtest-console/internal/models"
)

// FilterStrategies returns the strategies whose display name contains the
// search term, case-insensitively.
func FilterStrategies(strategies []models.Strategy, term string) []models.Strategy {
	if term == "" {
		return strategies
	}
	needle := strings.ToLower(term)
	var matched []models.Strategy
	for _, s := range strategies {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			matched = append(matched, s)
		}
	}
	return matched
}

// FilterDatasets returns the datasets whose name or symbol contains the
// search term, case-insensitively.
func FilterDatasets(datasets []models.Dataset, term string) []models.Dataset {
	if term == "" {
		return datasets
	}
	needle := strings.ToLower(term)
	var matched []models.Dataset
	for _, d := range datasets {
		if strings.Contains(strings.ToLower(d.Name), needle) ||
			strings.Contains(strings.ToLower(d.Symbol), needle) {
			matched = append(matched, d)
		}
	}
	return matched
}

// Selection tracks one picker's query and fixed choice. Selecting clears the
// query; editing the query while something is selected clears the selection.
type Selection struct {
	query      string
	selectedID string
}

// Query returns the current search term.
func (s *Selection) Query() string {
	return s.query
}

// SelectedID returns the fixed selection, or "" when nothing is selected.
func (s *Selection) SelectedID() string {
	return s.selectedID
}

// Select fixes the selection and clears the search term.
func (s *Selection) Select(id string) {
	s.selectedID = id
	s.query = ""
}

// SetQuery updates the search term, un-setting any fixed selection.
func (s *Selection) SetQuery(query string) {
	if s.selectedID != "" && query != s.query {
		s.selectedID = ""
	}
	s.query = query
}

// Clear resets both query and selection.
func (s *Selection) Clear() {
	s.query = ""
	s.selectedID = ""
}
