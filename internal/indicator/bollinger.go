package indicator

import (
	"math"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"
)

// Bollinger computes the band set around an SMA(period) middle with k
// standard deviations. %B is pinned to 50 when the bands collapse.
func Bollinger(values []float64, period int, k float64) (models.BollingerBands, bool) {
	if period <= 0 || len(values) < period {
		return models.BollingerBands{}, false
	}

	middle, ok := SMA(values, period)
	if !ok {
		return models.BollingerBands{}, false
	}

	window := values[len(values)-period:]
	variance := 0.0
	for _, v := range window {
		variance += (v - middle) * (v - middle)
	}
	stdev := math.Sqrt(variance / float64(period))

	upper := middle + k*stdev
	lower := middle - k*stdev

	percentB := 50.0
	if upper != lower {
		percentB = (values[len(values)-1] - lower) / (upper - lower) * 100
	}

	return models.BollingerBands{
		Upper:    upper,
		Middle:   middle,
		Lower:    lower,
		Width:    upper - lower,
		PercentB: percentB,
	}, true
}
