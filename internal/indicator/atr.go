package indicator

import "math"

// ATR averages the true range over the last period steps. The series carries
// closes only, so the true range degenerates to the absolute delta between
// consecutive prices. The fusion thresholds are calibrated to this variant;
// do not swap in a high/low/close formulation.
func ATR(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period+1 {
		return 0, false
	}

	ranges := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		ranges = append(ranges, math.Abs(values[i]-values[i-1]))
	}

	return SMA(ranges, period)
}
