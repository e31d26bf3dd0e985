// Package signal fuses an indicator set into a single trading decision by
// tallying directional votes. Strong readings cast a full vote, weaker ones
// half a vote, and neutral readings only widen the denominator.
package signal

import (
	"fmt"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"
)

// Decision is the fused output before it is wrapped into a SignalBundle.
type Decision struct {
	Signal     models.Signal
	Strength   models.Strength
	Confidence float64
	Trend      models.Trend
	Risk       models.Risk
	Reasoning  []string
	Votes      map[string]models.Vote
}

// Fuse evaluates every present indicator against its thresholds and derives
// the primary signal from the buy/sell vote ratios. Absent indicators are
// skipped entirely; trend comes from the EMA alignment alone and is not a
// vote.
func Fuse(currentPrice float64, ind models.IndicatorSet) Decision {
	d := Decision{
		Signal:    models.SignalHold,
		Strength:  models.StrengthWeak,
		Trend:     models.TrendSideways,
		Risk:      models.RiskMedium,
		Reasoning: []string{},
		Votes:     map[string]models.Vote{},
	}

	var buyVotes, sellVotes float64
	evaluated := 0

	if ind.RSI != nil {
		evaluated++
		rsi := *ind.RSI
		switch {
		case rsi < 30:
			d.Votes["rsi"] = models.VoteStrongBuy
			buyVotes++
			d.Reasoning = append(d.Reasoning, fmt.Sprintf("RSI oversold at %.1f", rsi))
		case rsi < 40:
			d.Votes["rsi"] = models.VoteBuy
			buyVotes += 0.5
			d.Reasoning = append(d.Reasoning, fmt.Sprintf("RSI approaching oversold at %.1f", rsi))
		case rsi > 70:
			d.Votes["rsi"] = models.VoteStrongSell
			sellVotes++
			d.Reasoning = append(d.Reasoning, fmt.Sprintf("RSI overbought at %.1f", rsi))
		case rsi > 60:
			d.Votes["rsi"] = models.VoteSell
			sellVotes += 0.5
			d.Reasoning = append(d.Reasoning, fmt.Sprintf("RSI approaching overbought at %.1f", rsi))
		default:
			d.Votes["rsi"] = models.VoteNeutral
		}
	}

	if ind.MACD != nil {
		evaluated++
		m := ind.MACD
		switch {
		case m.Line > m.Signal && m.Histogram > 0:
			d.Votes["macd"] = models.VoteBuy
			buyVotes++
			d.Reasoning = append(d.Reasoning, "MACD bullish crossover")
		case m.Line < m.Signal && m.Histogram < 0:
			d.Votes["macd"] = models.VoteSell
			sellVotes++
			d.Reasoning = append(d.Reasoning, "MACD bearish crossover")
		default:
			d.Votes["macd"] = models.VoteNeutral
		}
	}

	if ind.Bollinger != nil {
		evaluated++
		bb := ind.Bollinger
		switch {
		case currentPrice <= bb.Lower:
			d.Votes["bollinger"] = models.VoteStrongBuy
			buyVotes++
			d.Reasoning = append(d.Reasoning, fmt.Sprintf("Price at lower Bollinger Band (%.1f%%)", bb.PercentB))
		case currentPrice >= bb.Upper:
			d.Votes["bollinger"] = models.VoteStrongSell
			sellVotes++
			d.Reasoning = append(d.Reasoning, fmt.Sprintf("Price at upper Bollinger Band (%.1f%%)", bb.PercentB))
		case currentPrice < bb.Middle:
			d.Votes["bollinger"] = models.VoteBuy
			buyVotes += 0.5
		case currentPrice > bb.Middle:
			d.Votes["bollinger"] = models.VoteSell
			sellVotes += 0.5
		default:
			d.Votes["bollinger"] = models.VoteNeutral
		}
	}

	if ind.Stoch != nil {
		evaluated++
		k := ind.Stoch.K
		switch {
		case k < 20:
			d.Votes["stochastic"] = models.VoteBuy
			buyVotes += 0.5
			d.Reasoning = append(d.Reasoning, fmt.Sprintf("Stochastic oversold at %.1f%%", k))
		case k > 80:
			d.Votes["stochastic"] = models.VoteSell
			sellVotes += 0.5
			d.Reasoning = append(d.Reasoning, fmt.Sprintf("Stochastic overbought at %.1f%%", k))
		default:
			d.Votes["stochastic"] = models.VoteNeutral
		}
	}

	if ind.WilliamsR != nil {
		evaluated++
		wr := *ind.WilliamsR
		switch {
		case wr < -80:
			d.Votes["williams_r"] = models.VoteBuy
			buyVotes += 0.5
			d.Reasoning = append(d.Reasoning, fmt.Sprintf("Williams %%R oversold at %.1f", wr))
		case wr > -20:
			d.Votes["williams_r"] = models.VoteSell
			sellVotes += 0.5
			d.Reasoning = append(d.Reasoning, fmt.Sprintf("Williams %%R overbought at %.1f", wr))
		default:
			d.Votes["williams_r"] = models.VoteNeutral
		}
	}

	if ind.EMA20 != nil && ind.EMA50 != nil {
		evaluated++
		ema20, ema50 := *ind.EMA20, *ind.EMA50
		switch {
		case ema20 > ema50 && currentPrice > ema20:
			d.Votes["ema_trend"] = models.VoteBuy
			buyVotes++
			d.Reasoning = append(d.Reasoning, "Price above rising EMAs (bullish trend)")
			d.Trend = models.TrendBullish
		case ema20 < ema50 && currentPrice < ema20:
			d.Votes["ema_trend"] = models.VoteSell
			sellVotes++
			d.Reasoning = append(d.Reasoning, "Price below falling EMAs (bearish trend)")
			d.Trend = models.TrendBearish
		default:
			d.Votes["ema_trend"] = models.VoteNeutral
		}
	}

	if evaluated == 0 {
		return d
	}

	buyRatio := buyVotes / float64(evaluated)
	sellRatio := sellVotes / float64(evaluated)

	switch {
	case buyRatio > 0.6:
		d.Signal = models.SignalBuy
		d.Strength = models.StrengthModerate
		if buyRatio > 0.8 {
			d.Strength = models.StrengthStrong
		}
	case sellRatio > 0.6:
		d.Signal = models.SignalSell
		d.Strength = models.StrengthModerate
		if sellRatio > 0.8 {
			d.Strength = models.StrengthStrong
		}
	default:
		d.Signal = models.SignalHold
		d.Strength = models.StrengthWeak
	}

	d.Confidence = max(buyRatio, sellRatio) * 100

	switch {
	case d.Confidence > 80:
		d.Risk = models.RiskLow
	case d.Confidence > 60:
		d.Risk = models.RiskMedium
	default:
		d.Risk = models.RiskHigh
	}

	return d
}
