package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/backtest-console/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func validDraft() Draft {
	return Draft{
		StrategyID:     "strategy-1",
		DatasetID:      "dataset-1",
		InitialCapital: 10000,
		Lots:           1,
		Commission:     floatPtr(0.0005),
		Slippage:       floatPtr(0.0001),
		Parameters:     map[string]interface{}{},
	}
}

var (
	testStrategy = &models.Strategy{ID: "strategy-1", Name: "Sample Strategy"}
	testDataset  = &models.Dataset{ID: "dataset-1", Name: "EURUSD Hourly"}
)

// TestValidateAcceptsValidDraft tests the all-clear path
func TestValidateAcceptsValidDraft(t *testing.T) {
	d := validDraft()
	result := Validate(d, testStrategy, testDataset, d.Parameters, nil)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

// TestValidateSelections tests the strategy and dataset presence rules
func TestValidateSelections(t *testing.T) {
	d := validDraft()
	result := Validate(d, nil, nil, d.Parameters, nil)

	require.False(t, result.Valid)
	assert.Equal(t, "Please select a strategy", result.Errors["strategy"])
	assert.Equal(t, "Please select a dataset", result.Errors["dataset"])
}

// TestValidateInitialCapital tests the capital floor across boundary values
func TestValidateInitialCapital(t *testing.T) {
	tests := []struct {
		name    string
		capital float64
		wantErr bool
	}{
		{"At the floor", 1000, false},
		{"Above the floor", 50000, false},
		{"Just below the floor", 999.99, true},
		{"Zero", 0, true},
		{"Negative", -500, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.InitialCapital = tt.capital
			result := Validate(d, testStrategy, testDataset, d.Parameters, nil)

			if tt.wantErr {
				assert.Equal(t, "Initial capital must be at least 1,000", result.Errors["initial_capital"])
			} else {
				assert.NotContains(t, result.Errors, "initial_capital")
			}
		})
	}
}

// TestValidatePositionSize tests the inclusive 1..100 lots range
func TestValidatePositionSize(t *testing.T) {
	tests := []struct {
		name    string
		lots    int
		wantErr bool
	}{
		{"Lower bound", 1, false},
		{"Upper bound", 100, false},
		{"Zero", 0, true},
		{"Above upper bound", 101, true},
		{"Negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.Lots = tt.lots
			result := Validate(d, testStrategy, testDataset, d.Parameters, nil)

			if tt.wantErr {
				assert.Equal(t, "Position size must be between 1 and 100 lots", result.Errors["position_size"])
			} else {
				assert.NotContains(t, result.Errors, "position_size")
			}
		})
	}
}

// TestValidateRates tests commission and slippage bounds, including the unset case
func TestValidateRates(t *testing.T) {
	d := validDraft()
	d.Commission = floatPtr(0.11)
	d.Slippage = floatPtr(-0.01)
	result := Validate(d, testStrategy, testDataset, d.Parameters, nil)

	assert.Equal(t, "Commission must be between 0% and 10%", result.Errors["commission"])
	assert.Equal(t, "Slippage must be between 0% and 10%", result.Errors["slippage"])

	// Unset rates are not an error; the backend applies its own defaults.
	d = validDraft()
	d.Commission = nil
	d.Slippage = nil
	result = Validate(d, testStrategy, testDataset, d.Parameters, nil)
	assert.True(t, result.Valid)

	// Exactly 10% is still in range.
	d = validDraft()
	d.Commission = floatPtr(0.1)
	result = Validate(d, testStrategy, testDataset, d.Parameters, nil)
	assert.NotContains(t, result.Errors, "commission")
}

// TestValidateRequiredParameter tests that empty values fail a required
// parameter and suppress its bound checks
func TestValidateRequiredParameter(t *testing.T) {
	schema := []models.ParameterSpec{
		{Name: "lookback", Type: models.ParamInt, Required: true, Min: floatPtr(5), Max: floatPtr(20)},
	}

	tests := []struct {
		name   string
		params map[string]interface{}
		want   string
	}{
		{"Missing", map[string]interface{}{}, "lookback is required"},
		{"Nil value", map[string]interface{}{"lookback": nil}, "lookback is required"},
		{"Empty string", map[string]interface{}{"lookback": ""}, "lookback is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			result := Validate(d, testStrategy, testDataset, tt.params, schema)

			// Only the required message; the min bound never fires.
			assert.Equal(t, tt.want, result.Errors["param_lookback"])
		})
	}
}

// TestValidateNumericParameterBounds tests min/max checks, inclusive at the edges
func TestValidateNumericParameterBounds(t *testing.T) {
	schema := []models.ParameterSpec{
		{Name: "lookback", Type: models.ParamInt, Min: floatPtr(5), Max: floatPtr(20)},
	}

	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"Within bounds", 12, ""},
		{"At min", 5, ""},
		{"At max", 20, ""},
		{"Below min", 4, "lookback must be at least 5"},
		{"Above max", 21, "lookback must be at most 20"},
		{"Numeric string", "3", "lookback must be at least 5"},
		{"Non-numeric string ignored", "abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			params := map[string]interface{}{"lookback": tt.value}
			result := Validate(d, testStrategy, testDataset, params, schema)

			if tt.want == "" {
				assert.NotContains(t, result.Errors, "param_lookback")
			} else {
				assert.Equal(t, tt.want, result.Errors["param_lookback"])
			}
		})
	}
}

// TestValidateMaxMessageWinsOverMin tests the last-write-wins behavior when a
// degenerate schema makes both bound checks fail at once
func TestValidateMaxMessageWinsOverMin(t *testing.T) {
	// min > max: a value below min and above max trips both checks.
	schema := []models.ParameterSpec{
		{Name: "threshold", Type: models.ParamFloat, Min: floatPtr(10), Max: floatPtr(5)},
	}

	d := validDraft()
	params := map[string]interface{}{"threshold": 7.0}
	result := Validate(d, testStrategy, testDataset, params, schema)

	assert.Equal(t, "threshold must be at most 5", result.Errors["param_threshold"])
}

// TestValidateRulesAreIndependent tests that every failing field reports its
// own error in one pass
func TestValidateRulesAreIndependent(t *testing.T) {
	schema := []models.ParameterSpec{
		{Name: "lookback", Type: models.ParamInt, Required: true},
	}

	d := Draft{InitialCapital: 500, Lots: 0}
	result := Validate(d, nil, nil, nil, schema)

	require.False(t, result.Valid)
	assert.Len(t, result.Errors, 5)
}

// TestValidateNonNumericTypesSkipBounds tests that select and string
// parameters carry no bound validation
func TestValidateNonNumericTypesSkipBounds(t *testing.T) {
	schema := []models.ParameterSpec{
		{Name: "mode", Type: models.ParamSelect, Options: []string{"fast", "slow"}},
		{Name: "label", Type: models.ParamString},
	}

	d := validDraft()
	params := map[string]interface{}{"mode": "anything", "label": 42}
	result := Validate(d, testStrategy, testDataset, params, schema)

	assert.True(t, result.Valid)
}
