package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampUp(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 100 + float64(i)
	}
	return s
}

func rampDown(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 200 - float64(i)
	}
	return s
}

func flat(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestSMA(t *testing.T) {
	v, ok := SMA([]float64{1, 2, 3, 4, 5}, 5)
	require.True(t, ok)
	assert.InDelta(t, 3.0, v, 1e-9)

	// Only the trailing window counts.
	v, ok = SMA([]float64{100, 1, 2, 3}, 3)
	require.True(t, ok)
	assert.InDelta(t, 2.0, v, 1e-9)
}

func TestSMAInsufficientData(t *testing.T) {
	_, ok := SMA([]float64{1, 2}, 3)
	assert.False(t, ok)

	_, ok = SMA(nil, 1)
	assert.False(t, ok)

	_, ok = SMA([]float64{1, 2, 3}, 0)
	assert.False(t, ok)
}

func TestEMASeedsWithFirstValue(t *testing.T) {
	// A single-point series with period 1 is just the seed.
	v, ok := EMA([]float64{42}, 1)
	require.True(t, ok)
	assert.InDelta(t, 42.0, v, 1e-9)

	// Constant series stays at the constant.
	v, ok = EMA(flat(30, 7), 10)
	require.True(t, ok)
	assert.InDelta(t, 7.0, v, 1e-9)
}

func TestEMAInsufficientData(t *testing.T) {
	_, ok := EMA(rampUp(5), 10)
	assert.False(t, ok)
}

func TestRSIExtremes(t *testing.T) {
	v, ok := RSI(rampUp(20), 14)
	require.True(t, ok)
	assert.InDelta(t, 100.0, v, 1e-9)

	v, ok = RSI(rampDown(20), 14)
	require.True(t, ok)
	assert.InDelta(t, 0.0, v, 1e-9)
}

func TestRSIRequiresPeriodPlusOne(t *testing.T) {
	_, ok := RSI(rampUp(14), 14)
	assert.False(t, ok)

	_, ok = RSI(rampUp(15), 14)
	assert.True(t, ok)
}

func TestMACDRequiresSlowPlusSignal(t *testing.T) {
	_, ok := MACDLine(rampUp(34), 12, 26, 9)
	assert.False(t, ok)

	m, ok := MACDLine(rampUp(35), 12, 26, 9)
	require.True(t, ok)
	assert.InDelta(t, m.Line-m.Signal, m.Histogram, 1e-9)
}

func TestMACDTrendSign(t *testing.T) {
	m, ok := MACDLine(rampUp(50), 12, 26, 9)
	require.True(t, ok)
	// In a steady uptrend the fast EMA sits above the slow EMA.
	assert.Greater(t, m.Line, 0.0)

	m, ok = MACDLine(rampDown(50), 12, 26, 9)
	require.True(t, ok)
	assert.Less(t, m.Line, 0.0)
}

func TestBollingerOrdering(t *testing.T) {
	bb, ok := Bollinger(rampUp(25), 20, 2.0)
	require.True(t, ok)
	assert.GreaterOrEqual(t, bb.Upper, bb.Middle)
	assert.GreaterOrEqual(t, bb.Middle, bb.Lower)
	assert.InDelta(t, bb.Upper-bb.Lower, bb.Width, 1e-9)
}

func TestBollingerZeroRange(t *testing.T) {
	bb, ok := Bollinger(flat(25, 50), 20, 2.0)
	require.True(t, ok)
	assert.InDelta(t, 50.0, bb.PercentB, 1e-9)
	assert.InDelta(t, bb.Upper, bb.Lower, 1e-9)
}

func TestStochasticBounds(t *testing.T) {
	for _, series := range [][]float64{rampUp(30), rampDown(30), {5, 9, 2, 8, 1, 7, 3, 6, 4, 5, 9, 2, 8, 1, 7, 3, 6}} {
		st, ok := StochasticOscillator(series, 14, 3)
		require.True(t, ok)
		assert.GreaterOrEqual(t, st.K, 0.0)
		assert.LessOrEqual(t, st.K, 100.0)
		assert.GreaterOrEqual(t, st.D, 0.0)
		assert.LessOrEqual(t, st.D, 100.0)
	}
}

func TestStochasticZeroRange(t *testing.T) {
	st, ok := StochasticOscillator(flat(20, 10), 14, 3)
	require.True(t, ok)
	assert.InDelta(t, 50.0, st.K, 1e-9)
	assert.InDelta(t, 50.0, st.D, 1e-9)
}

func TestStochasticNeedsSmoothingWindow(t *testing.T) {
	// 15 points yield only two %K values, one short of the smoothing window.
	_, ok := StochasticOscillator(rampUp(15), 14, 3)
	assert.False(t, ok)

	_, ok = StochasticOscillator(rampUp(16), 14, 3)
	assert.True(t, ok)
}

func TestWilliamsRBounds(t *testing.T) {
	for _, series := range [][]float64{rampUp(20), rampDown(20)} {
		v, ok := WilliamsR(series, 14)
		require.True(t, ok)
		assert.GreaterOrEqual(t, v, -100.0)
		assert.LessOrEqual(t, v, 0.0)
	}
}

func TestWilliamsRZeroRange(t *testing.T) {
	v, ok := WilliamsR(flat(20, 10), 14)
	require.True(t, ok)
	assert.InDelta(t, -50.0, v, 1e-9)
}

func TestATR(t *testing.T) {
	// Constant step size: every true range is 1.
	v, ok := ATR(rampUp(20), 14)
	require.True(t, ok)
	assert.InDelta(t, 1.0, v, 1e-9)

	_, ok = ATR(rampUp(14), 14)
	assert.False(t, ok)
}

func TestInsufficientDataNeverGuesses(t *testing.T) {
	short := rampUp(5)

	_, ok := RSI(short, 14)
	assert.False(t, ok)
	_, ok = MACDLine(short, 12, 26, 9)
	assert.False(t, ok)
	_, ok = Bollinger(short, 20, 2.0)
	assert.False(t, ok)
	_, ok = StochasticOscillator(short, 14, 3)
	assert.False(t, ok)
	_, ok = WilliamsR(short, 14)
	assert.False(t, ok)
	_, ok = ATR(short, 14)
	assert.False(t, ok)
}
