package models

import "time"

// Signal is the primary trading decision.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

// Strength grades how pronounced a signal is, 1 (very weak) to 5 (very strong).
type Strength int

const (
	StrengthVeryWeak   Strength = 1
	StrengthWeak       Strength = 2
	StrengthModerate   Strength = 3
	StrengthStrong     Strength = 4
	StrengthVeryStrong Strength = 5
)

// Trend is the EMA-alignment trend classification.
type Trend string

const (
	TrendBullish  Trend = "bullish"
	TrendBearish  Trend = "bearish"
	TrendSideways Trend = "sideways"
)

// Risk classifies how much the engine trusts its own decision.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// Vote is a single indicator's contribution to the fused decision.
type Vote string

const (
	VoteStrongBuy  Vote = "STRONG_BUY"
	VoteBuy        Vote = "BUY"
	VoteNeutral    Vote = "NEUTRAL"
	VoteSell       Vote = "SELL"
	VoteStrongSell Vote = "STRONG_SELL"
)

// SignalBundle is the final fused output for one symbol.
type SignalBundle struct {
	Symbol           string          `json:"symbol"`
	CurrentPrice     float64         `json:"current_price"`
	Timestamp        time.Time       `json:"timestamp"`
	Period           string          `json:"period"`
	Signal           Signal          `json:"signal"`
	Strength         Strength        `json:"signal_strength"`
	Confidence       float64         `json:"confidence"`
	Trend            Trend           `json:"trend_direction"`
	Risk             Risk            `json:"risk_level"`
	Reasoning        []string        `json:"reasoning"`
	Indicators       IndicatorSet    `json:"indicators"`
	IndividualVotes  map[string]Vote `json:"individual_signals"`
	SyntheticHistory bool            `json:"synthetic_history"`
}

// OverviewEntry summarizes one symbol inside a market overview.
type OverviewEntry struct {
	Signal     Signal  `json:"signal,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Trend      Trend   `json:"trend,omitempty"`
	Risk       Risk    `json:"risk,omitempty"`
	Price      float64 `json:"price,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// StrongSignal marks a symbol whose fused signal reached STRONG.
type StrongSignal struct {
	Symbol     string  `json:"symbol"`
	Signal     Signal  `json:"signal"`
	Confidence float64 `json:"confidence"`
}

// MarketOverview aggregates signal bundles across symbols.
type MarketOverview struct {
	Timestamp          time.Time                `json:"timestamp"`
	TotalSymbols       int                      `json:"total_symbols"`
	SuccessfulAnalyses int                      `json:"successful_analyses"`
	SignalsSummary     map[Signal]int           `json:"signals_summary"`
	StrongSignals      []StrongSignal           `json:"strong_signals"`
	Symbols            map[string]OverviewEntry `json:"symbols"`
}

// Mover is one row in the gainers/losers/most-active market summary tables.
type Mover struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change,omitempty"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}

// IndexQuote is a compact quote for a market index proxy.
type IndexQuote struct {
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// MarketSummary is the broad-market snapshot: index quotes plus top movers.
type MarketSummary struct {
	Timestamp  time.Time             `json:"timestamp"`
	Indices    map[string]IndexQuote `json:"indices"`
	TopGainers []Mover               `json:"top_gainers"`
	TopLosers  []Mover               `json:"top_losers"`
	MostActive []Mover               `json:"most_active"`
}

// SymbolMatch is one result of a symbol search.
type SymbolMatch struct {
	Symbol string     `json:"symbol"`
	Name   string     `json:"name"`
	Type   AssetClass `json:"type"`
}

// SignalEvent is published to the event stream whenever a bundle is freshly
// computed (cache hits do not emit events).
type SignalEvent struct {
	Symbol     string    `json:"symbol"`
	Signal     Signal    `json:"signal"`
	Strength   Strength  `json:"strength"`
	Confidence float64   `json:"confidence"`
	Price      float64   `json:"price"`
	Timestamp  time.Time `json:"timestamp"`
}
