package models

// MACD holds the MACD line, its signal line, and their difference.
type MACD struct {
	Line      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// BollingerBands holds the three bands plus derived width and %B.
type BollingerBands struct {
	Upper    float64 `json:"upper"`
	Middle   float64 `json:"middle"`
	Lower    float64 `json:"lower"`
	Width    float64 `json:"width"`
	PercentB float64 `json:"percent_b"`
}

// Stochastic holds the %K and %D oscillator values.
type Stochastic struct {
	K float64 `json:"k_percent"`
	D float64 `json:"d_percent"`
}

// IndicatorSet is a symbol-scoped bag of computed indicators. Nil fields mean
// "insufficient history"; zero is a legitimate value and never stands in for
// absence.
type IndicatorSet struct {
	RSI       *float64        `json:"rsi"`
	EMA20     *float64        `json:"ema_20"`
	EMA50     *float64        `json:"ema_50"`
	SMA20     *float64        `json:"sma_20"`
	ATR       *float64        `json:"atr"`
	WilliamsR *float64        `json:"williams_r"`
	MACD      *MACD           `json:"macd"`
	Bollinger *BollingerBands `json:"bollinger_bands"`
	Stoch     *Stochastic     `json:"stochastic"`
}
