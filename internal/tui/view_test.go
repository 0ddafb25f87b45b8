package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/backtest-console/internal/models"
)

// TestErrorKeyMapping tests the form-field to validation-key mapping
func TestErrorKeyMapping(t *testing.T) {
	assert.Equal(t, "strategy", errorKeyFor("strategy_id"))
	assert.Equal(t, "dataset", errorKeyFor("dataset_id"))
	assert.Equal(t, "position_size", errorKeyFor("lots"))
	assert.Equal(t, "initial_capital", errorKeyFor("initial_capital"))
	assert.Equal(t, "param_lookback", errorKeyFor("param_lookback"))
}

// TestStatusLabel tests the fallback for an absent status
func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "unknown", statusLabel(""))
	assert.Equal(t, "completed", statusLabel(models.JobCompleted))
}

// TestNoticeRecorder tests that recorded notifications keep order and severity
func TestNoticeRecorder(t *testing.T) {
	recorder := &noticeRecorder{}
	recorder.Error("first failure")
	recorder.Success("then fine")

	assert.Len(t, recorder.notices, 2)
	assert.True(t, recorder.notices[0].isError)
	assert.Equal(t, "first failure", recorder.notices[0].text)
	assert.False(t, recorder.notices[1].isError)
}

// TestParamName tests form key parsing for schema parameters
func TestParamName(t *testing.T) {
	name, ok := paramName("param_lookback")
	assert.True(t, ok)
	assert.Equal(t, "lookback", name)

	_, ok = paramName("initial_capital")
	assert.False(t, ok)

	_, ok = paramName("param_")
	assert.False(t, ok)
}
