package indicator

import "github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"

// RSI computes the relative strength index over the last period deltas.
// A series with no losses reads 100, no gains reads 0.
func RSI(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period+1 {
		return 0, false
	}

	changes := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		changes = append(changes, values[i]-values[i-1])
	}

	var avgGain, avgLoss float64
	for _, change := range changes[len(changes)-period:] {
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += -change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// StochasticOscillator computes %K from trailing period windows and %D as
// the kSmooth-period SMA of the %K series. Zero-range windows read a neutral
// 50.
func StochasticOscillator(values []float64, period, kSmooth int) (models.Stochastic, bool) {
	if period <= 0 || len(values) < period {
		return models.Stochastic{}, false
	}

	kValues := make([]float64, 0, len(values)-period+1)
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		high, low := window[0], window[0]
		for _, v := range window[1:] {
			if v > high {
				high = v
			}
			if v < low {
				low = v
			}
		}
		if high == low {
			kValues = append(kValues, 50)
		} else {
			kValues = append(kValues, (values[i]-low)/(high-low)*100)
		}
	}

	if len(kValues) < kSmooth {
		return models.Stochastic{}, false
	}

	d, ok := SMA(kValues, kSmooth)
	if !ok {
		return models.Stochastic{}, false
	}
	return models.Stochastic{K: kValues[len(kValues)-1], D: d}, true
}

// WilliamsR computes Williams %R over the trailing window, in [-100, 0].
// Zero-range windows read a neutral -50.
func WilliamsR(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}

	window := values[len(values)-period:]
	high, low := window[0], window[0]
	for _, v := range window[1:] {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}

	if high == low {
		return -50, true
	}
	return (high - values[len(values)-1]) / (high - low) * -100, true
}
