package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRateToPercent tests display formatting of stored fractional rates
func TestRateToPercent(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{0.0005, "0.0500"},
		{0.0001, "0.0100"},
		{0.1, "10.0000"},
		{0, "0.0000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RateToPercent(tt.rate))
	}
}

// TestPercentToRate tests parsing user percentage input back to a rate
func TestPercentToRate(t *testing.T) {
	rate, err := PercentToRate("0.05")
	require.NoError(t, err)
	assert.Equal(t, 0.0005, rate)

	rate, err = PercentToRate("10")
	require.NoError(t, err)
	assert.Equal(t, 0.1, rate)

	_, err = PercentToRate("not a number")
	assert.Error(t, err)
}

// TestPercentRoundTrip tests that values with at most four decimal places
// survive the edit round trip exactly
func TestPercentRoundTrip(t *testing.T) {
	for _, rate := range []float64{0.0005, 0.0001, 0.0025, 0.01, 0.1} {
		display := RateToPercent(rate)
		back, err := PercentToRate(display)
		require.NoError(t, err)
		assert.Equal(t, rate, back, "rate %v displayed as %s", rate, display)
	}
}
