package draft

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/backtest-console/internal/models"
	"github.com/yourusername/backtest-console/internal/prefs"
)

func newTestStore(t *testing.T) (*Store, *prefs.Store) {
	t.Helper()
	logger := logrus.New()
	prefStore := prefs.NewStore(nil, logger)
	return NewStore(prefStore), prefStore
}

var (
	strategies = []models.Strategy{
		{ID: "strategy-1", Name: "Sample Strategy"},
		{ID: "strategy-2", Name: "Mean Reversion"},
	}
	datasets = []models.Dataset{
		{ID: "dataset-1", Name: "EURUSD Hourly", Symbol: "EURUSD"},
		{ID: "dataset-2", Name: "GBPUSD Hourly", Symbol: "GBPUSD"},
	}
)

// TestOpenAppliesBaselineDefaults tests the draft built with no persisted
// preferences
func TestOpenAppliesBaselineDefaults(t *testing.T) {
	store, _ := newTestStore(t)
	store.Open(OpenOptions{}, strategies, datasets)

	d := store.Draft()
	assert.Equal(t, float64(10000), d.InitialCapital)
	assert.Equal(t, 1, d.Lots)
	require.NotNil(t, d.Commission)
	assert.Equal(t, 0.0005, *d.Commission)
	require.NotNil(t, d.Slippage)
	assert.Equal(t, 0.0001, *d.Slippage)
	assert.Equal(t, "15:15", d.SessionCloseTime)
	assert.Equal(t, "both", d.DirectionFilter)
}

// TestOpenMergesPreferenceDefaults tests that persisted defaults override the
// baseline
func TestOpenMergesPreferenceDefaults(t *testing.T) {
	store, prefStore := newTestStore(t)
	prefStore.SetDefaults(prefs.DefaultConfig{
		InitialCapital: 25000,
		Lots:           3,
		FeePerTrade:    0.002,
		IntradayMode:   true,
	})

	store.Open(OpenOptions{}, strategies, datasets)
	d := store.Draft()

	assert.Equal(t, float64(25000), d.InitialCapital)
	assert.Equal(t, 3, d.Lots)
	require.NotNil(t, d.Commission)
	assert.Equal(t, 0.002, *d.Commission)
	assert.True(t, d.IntradayMode)
	// Fields the preference left unset keep the baseline.
	require.NotNil(t, d.Slippage)
	assert.Equal(t, 0.0001, *d.Slippage)
}

// TestOpenAutoSelectsFirstItems tests first-item auto-selection with no
// pre-selection
func TestOpenAutoSelectsFirstItems(t *testing.T) {
	store, _ := newTestStore(t)
	store.Open(OpenOptions{}, strategies, datasets)

	d := store.Draft()
	assert.Equal(t, "strategy-1", d.StrategyID)
	assert.Equal(t, "dataset-1", d.DatasetID)
}

// TestOpenHonoursPreselection tests entering the flow from a specific strategy
func TestOpenHonoursPreselection(t *testing.T) {
	store, _ := newTestStore(t)
	store.Open(OpenOptions{
		StrategyID: "strategy-2",
		Parameters: map[string]interface{}{"lookback": 12},
	}, strategies, datasets)

	d := store.Draft()
	assert.Equal(t, "strategy-2", d.StrategyID)
	assert.Equal(t, 12, d.Parameters["lookback"])
}

// TestReopenKeepsDatasetNotStrategy tests the selection memory across a
// close/reopen cycle: the dataset survives, the strategy resets
func TestReopenKeepsDatasetNotStrategy(t *testing.T) {
	store, _ := newTestStore(t)
	store.Open(OpenOptions{}, strategies, datasets)
	store.SetField("strategy_id", "strategy-2")
	store.SetField("dataset_id", "dataset-2")
	store.Close()

	store.Open(OpenOptions{}, strategies, datasets)
	d := store.Draft()

	assert.Equal(t, "strategy-1", d.StrategyID, "strategy selection should reset to the first item")
	assert.Equal(t, "dataset-2", d.DatasetID, "dataset selection should survive reopening")
}

// TestReset tests restoring defaults while keeping the opening pre-selection
func TestReset(t *testing.T) {
	store, _ := newTestStore(t)
	store.Open(OpenOptions{StrategyID: "strategy-2"}, strategies, datasets)
	store.SetField("initial_capital", 99999.0)
	store.SetParameter("lookback", 42)

	store.Reset()
	d := store.Draft()

	assert.Equal(t, float64(10000), d.InitialCapital)
	assert.Equal(t, "strategy-2", d.StrategyID)
	assert.NotContains(t, d.Parameters, "lookback")
}

// TestSetFieldRates tests pointer semantics of the commission and slippage fields
func TestSetFieldRates(t *testing.T) {
	store, _ := newTestStore(t)
	store.Open(OpenOptions{}, strategies, datasets)

	store.SetField("commission", 0.05)
	d := store.Draft()
	require.NotNil(t, d.Commission)
	assert.Equal(t, 0.05, *d.Commission)

	// nil clears the value so the backend default applies.
	store.SetField("commission", nil)
	d = store.Draft()
	assert.Nil(t, d.Commission)
}

// TestSetParametersReplacesWholesale tests that the parameters sub-object is
// swapped, not merged
func TestSetParametersReplacesWholesale(t *testing.T) {
	store, _ := newTestStore(t)
	store.Open(OpenOptions{}, strategies, datasets)
	store.SetParameter("old", 1)

	store.SetParameters(map[string]interface{}{"lookback": 12})
	d := store.Draft()

	assert.NotContains(t, d.Parameters, "old")
	assert.Equal(t, 12, d.Parameters["lookback"])
}

// TestDraftReturnsCopy tests that mutating a returned draft does not leak back
// into the store
func TestDraftReturnsCopy(t *testing.T) {
	store, _ := newTestStore(t)
	store.Open(OpenOptions{}, strategies, datasets)
	store.SetParameter("lookback", 12)

	d := store.Draft()
	d.Parameters["lookback"] = 99

	assert.Equal(t, 12, store.Draft().Parameters["lookback"])
}
