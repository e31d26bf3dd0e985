// Package indicator computes technical indicators over an ascending,
// most-recent-last price series. Every function reports insufficient history
// through its ok return instead of a sentinel value, since zero is a
// legitimate reading for most indicators.
package indicator

// SMA returns the arithmetic mean of the last period values.
func SMA(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}
	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period), true
}

// EMA returns the exponential moving average seeded with the first series
// value and folded over the rest with multiplier 2/(period+1).
func EMA(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}
	mult := 2.0 / float64(period+1)
	ema := values[0]
	for _, price := range values[1:] {
		ema = price*mult + ema*(1-mult)
	}
	return ema, true
}
