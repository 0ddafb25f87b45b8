package components

import (
	"fmt"
	"strings"

	"github.com/yourusername/backtest-console/internal/models"
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// RenderEquitySparkline renders the equity curve as a unicode sparkline.
// The heavy candlestick rendering lives on the backend side; the console only
// needs a rough shape of the curve.
func RenderEquitySparkline(series *models.ChartSeries, width int) string {
	if series == nil || len(series.EquityCurve) == 0 {
		return labelStyle.Render("No chart data")
	}

	points := resample(series.EquityCurve, width)

	minV, maxV := points[0], points[0]
	for _, v := range points {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	var out strings.Builder
	span := maxV - minV
	for _, v := range points {
		idx := 0
		if span > 0 {
			idx = int((v - minV) / span * float64(len(sparks)-1))
		}
		out.WriteRune(sparks[idx])
	}

	out.WriteString(fmt.Sprintf("\n%s %.2f  %s %.2f", labelStyle.Render("low"), minV, labelStyle.Render("high"), maxV))
	return out.String()
}

func resample(curve []models.EquityPoint, width int) []float64 {
	if width < 1 {
		width = 1
	}
	if len(curve) <= width {
		out := make([]float64, len(curve))
		for i, p := range curve {
			out[i] = p.Equity
		}
		return out
	}

	out := make([]float64, width)
	for i := 0; i < width; i++ {
		out[i] = curve[i*len(curve)/width].Equity
	}
	return out
}
