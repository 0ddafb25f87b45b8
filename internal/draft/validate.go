package draft

import (
	"encoding/json"
	"strconv"

	"github.com/yourusername/backtest-console/internal/models"
)

// ErrorMap maps a field key to a human-readable message. Strategy parameter
// keys are prefixed with "param_". Absence of a key means the field is valid.
type ErrorMap map[string]string

// Result is the outcome of validating a draft.
type Result struct {
	Valid  bool
	Errors ErrorMap
}

// Validate runs every applicable rule; rules are independent and never
// short-circuit, so each contributes its own key.
func Validate(d Draft, selectedStrategy *models.Strategy, selectedDataset *models.Dataset, parameters map[string]interface{}, schema []models.ParameterSpec) Result {
	errs := make(ErrorMap)

	if selectedStrategy == nil {
		errs["strategy"] = "Please select a strategy"
	}
	if selectedDataset == nil {
		errs["dataset"] = "Please select a dataset"
	}

	if d.InitialCapital < 1000 {
		errs["initial_capital"] = "Initial capital must be at least 1,000"
	}
	if d.Lots < 1 || d.Lots > 100 {
		errs["position_size"] = "Position size must be between 1 and 100 lots"
	}
	if d.Commission != nil && (*d.Commission < 0 || *d.Commission > 0.1) {
		errs["commission"] = "Commission must be between 0% and 10%"
	}
	if d.Slippage != nil && (*d.Slippage < 0 || *d.Slippage > 0.1) {
		errs["slippage"] = "Slippage must be between 0% and 10%"
	}

	for _, spec := range schema {
		validateParameter(spec, parameters, errs)
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

func validateParameter(spec models.ParameterSpec, parameters map[string]interface{}, errs ErrorMap) {
	key := "param_" + spec.Name
	value, present := parameters[spec.Name]

	if spec.Required && isEmpty(value, present) {
		errs[key] = spec.Name + " is required"
		return
	}

	if !spec.Type.IsNumeric() {
		// Unknown types and select options are left unvalidated.
		return
	}

	num, ok := asNumber(value)
	if !ok {
		return
	}

	// Both bound checks run; when both fail the max message wins because it
	// writes to the same key last.
	if spec.Min != nil && num < *spec.Min {
		errs[key] = spec.Name + " must be at least " + formatBound(*spec.Min)
	}
	if spec.Max != nil && num > *spec.Max {
		errs[key] = spec.Name + " must be at most " + formatBound(*spec.Max)
	}
}

func isEmpty(value interface{}, present bool) bool {
	if !present || value == nil {
		return true
	}
	if s, ok := value.(string); ok && s == "" {
		return true
	}
	return false
}

// asNumber reports whether the value is definable as a number, across the
// representations a decoded JSON payload or a form field can produce.
func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
