package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"
)

func f(v float64) *float64 { return &v }

func TestFuseAlignedBullishReadings(t *testing.T) {
	d := Fuse(95, models.IndicatorSet{
		RSI:       f(25),
		MACD:      &models.MACD{Line: 1.5, Signal: 0.8, Histogram: 0.7},
		Bollinger: &models.BollingerBands{Upper: 120, Middle: 105, Lower: 95, Width: 25, PercentB: 0},
		Stoch:     &models.Stochastic{K: 12, D: 18},
		WilliamsR: f(-92),
		EMA20:     f(90),
		EMA50:     f(85),
	})

	assert.Equal(t, models.SignalBuy, d.Signal)
	assert.GreaterOrEqual(t, int(d.Strength), int(models.StrengthModerate))
	assert.Greater(t, d.Confidence, 50.0)
	assert.Equal(t, models.TrendBullish, d.Trend)
	assert.Equal(t, models.VoteStrongBuy, d.Votes["rsi"])
	assert.Equal(t, models.VoteStrongBuy, d.Votes["bollinger"])
	assert.NotEmpty(t, d.Reasoning)
}

func TestFuseAlignedBearishReadings(t *testing.T) {
	d := Fuse(105, models.IndicatorSet{
		RSI:       f(75),
		MACD:      &models.MACD{Line: -1.5, Signal: -0.8, Histogram: -0.7},
		Bollinger: &models.BollingerBands{Upper: 105, Middle: 95, Lower: 80, Width: 25, PercentB: 100},
		Stoch:     &models.Stochastic{K: 88, D: 82},
		WilliamsR: f(-8),
		EMA20:     f(110),
		EMA50:     f(115),
	})

	assert.Equal(t, models.SignalSell, d.Signal)
	assert.GreaterOrEqual(t, int(d.Strength), int(models.StrengthModerate))
	assert.Greater(t, d.Confidence, 50.0)
	assert.Equal(t, models.TrendBearish, d.Trend)
}

func TestFuseAllNeutralReadings(t *testing.T) {
	d := Fuse(100, models.IndicatorSet{
		RSI:       f(50),
		MACD:      &models.MACD{Line: 0.5, Signal: 0.5, Histogram: 0},
		Bollinger: &models.BollingerBands{Upper: 110, Middle: 100, Lower: 90, Width: 20, PercentB: 50},
		Stoch:     &models.Stochastic{K: 50, D: 50},
		WilliamsR: f(-50),
		EMA20:     f(100),
		EMA50:     f(100),
	})

	assert.Equal(t, models.SignalHold, d.Signal)
	assert.Equal(t, models.StrengthWeak, d.Strength)
	assert.Less(t, d.Confidence, 50.0)
	assert.Equal(t, models.TrendSideways, d.Trend)
	assert.Equal(t, models.RiskHigh, d.Risk)
	for name, vote := range d.Votes {
		assert.Equal(t, models.VoteNeutral, vote, name)
	}
}

func TestFuseHalfVotesAloneStayHold(t *testing.T) {
	// Two half votes over three evaluated indicators is a 0.33 ratio.
	d := Fuse(100, models.IndicatorSet{
		RSI:       f(35),
		Stoch:     &models.Stochastic{K: 15, D: 20},
		WilliamsR: f(-50),
	})

	assert.Equal(t, models.SignalHold, d.Signal)
	assert.Equal(t, models.VoteBuy, d.Votes["rsi"])
	assert.Equal(t, models.VoteBuy, d.Votes["stochastic"])
}

func TestFuseSkipsAbsentIndicators(t *testing.T) {
	// Only RSI present: a strong reading is a full vote over one evaluated.
	d := Fuse(100, models.IndicatorSet{RSI: f(20)})

	assert.Equal(t, models.SignalBuy, d.Signal)
	assert.Equal(t, models.StrengthStrong, d.Strength)
	assert.InDelta(t, 100.0, d.Confidence, 1e-9)
	assert.Equal(t, models.RiskLow, d.Risk)
	assert.Len(t, d.Votes, 1)
}

func TestFuseNoIndicators(t *testing.T) {
	d := Fuse(100, models.IndicatorSet{})

	assert.Equal(t, models.SignalHold, d.Signal)
	assert.Zero(t, d.Confidence)
	assert.Empty(t, d.Votes)
}

func TestFuseRiskBands(t *testing.T) {
	// 4 full buy votes over 6 evaluated: ratio 0.666, confidence 66.6.
	d := Fuse(95, models.IndicatorSet{
		RSI:       f(25),
		MACD:      &models.MACD{Line: 1, Signal: 0.5, Histogram: 0.5},
		Bollinger: &models.BollingerBands{Upper: 120, Middle: 105, Lower: 95, PercentB: 0},
		Stoch:     &models.Stochastic{K: 50, D: 50},
		WilliamsR: f(-50),
		EMA20:     f(90),
		EMA50:     f(85),
	})

	assert.Equal(t, models.SignalBuy, d.Signal)
	assert.Equal(t, models.StrengthModerate, d.Strength)
	assert.Equal(t, models.RiskMedium, d.Risk)
}
