package indicator

import "github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"

// MACDLine computes the MACD line on the full series and derives the signal
// line by recomputing the MACD line over each prefix from the slow period
// onward and smoothing that series with an EMA.
func MACDLine(values []float64, fast, slow, signal int) (models.MACD, bool) {
	if len(values) < slow+signal {
		return models.MACD{}, false
	}

	emaFast, okFast := EMA(values, fast)
	emaSlow, okSlow := EMA(values, slow)
	if !okFast || !okSlow {
		return models.MACD{}, false
	}
	line := emaFast - emaSlow

	history := make([]float64, 0, len(values)-slow)
	for i := slow; i < len(values); i++ {
		f, okF := EMA(values[:i+1], fast)
		s, okS := EMA(values[:i+1], slow)
		if okF && okS {
			history = append(history, f-s)
		}
	}

	signalLine, ok := EMA(history, signal)
	if !ok {
		return models.MACD{}, false
	}

	return models.MACD{
		Line:      line,
		Signal:    signalLine,
		Histogram: line - signalLine,
	}, true
}
