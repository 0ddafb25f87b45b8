package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/backtest-console/internal/models"
)

var strategies = []models.Strategy{
	{ID: "s1", Name: "Momentum Breakout"},
	{ID: "s2", Name: "Mean Reversion"},
	{ID: "s3", Name: "momentum scalper"},
}

var datasets = []models.Dataset{
	{ID: "d1", Name: "EURUSD Hourly", Symbol: "EURUSD"},
	{ID: "d2", Name: "GBPUSD Hourly", Symbol: "GBPUSD"},
	{ID: "d3", Name: "Gold Daily", Symbol: "XAUUSD"},
}

// TestFilterStrategies tests case-insensitive name matching with order preserved
func TestFilterStrategies(t *testing.T) {
	matched := FilterStrategies(strategies, "momentum")
	require.Len(t, matched, 2)
	assert.Equal(t, "s1", matched[0].ID)
	assert.Equal(t, "s3", matched[1].ID)

	assert.Len(t, FilterStrategies(strategies, ""), 3)
	assert.Empty(t, FilterStrategies(strategies, "arbitrage"))
}

// TestFilterDatasets tests matching on either name or symbol
func TestFilterDatasets(t *testing.T) {
	matched := FilterDatasets(datasets, "GBP")
	require.Len(t, matched, 1)
	assert.Equal(t, "GBPUSD Hourly", matched[0].Name)

	// Symbol-only match: "XAU" appears in no dataset name.
	matched = FilterDatasets(datasets, "xau")
	require.Len(t, matched, 1)
	assert.Equal(t, "d3", matched[0].ID)

	// Matches across both fields keep source order.
	matched = FilterDatasets(datasets, "usd")
	assert.Len(t, matched, 3)
}

// TestSelectionQueryClearsOnSelect tests that fixing a choice resets the term
func TestSelectionQueryClearsOnSelect(t *testing.T) {
	var sel Selection
	sel.SetQuery("mom")
	sel.Select("s1")

	assert.Equal(t, "s1", sel.SelectedID())
	assert.Equal(t, "", sel.Query())
}

// TestSelectionEditingClearsSelection tests that typing a new term un-fixes
// the previous choice
func TestSelectionEditingClearsSelection(t *testing.T) {
	var sel Selection
	sel.Select("s1")
	sel.SetQuery("mean")

	assert.Equal(t, "", sel.SelectedID())
	assert.Equal(t, "mean", sel.Query())

	// Re-setting the same query keeps the selection.
	sel.Select("s2")
	sel.SetQuery("")
	assert.Equal(t, "s2", sel.SelectedID())
}
