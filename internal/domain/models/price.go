package models

import (
	"strings"
	"time"
)

// AssetClass is the advisory classification of a symbol. It only drives
// provider fallback order and is never persisted as ground truth.
type AssetClass string

const (
	AssetStock  AssetClass = "stock"
	AssetCrypto AssetClass = "crypto"
	AssetForex  AssetClass = "forex"
)

// cryptoTickers are substrings that mark a symbol as a cryptocurrency.
var cryptoTickers = []string{"BTC", "ETH", "ADA", "DOT", "LINK", "UNI", "AAVE", "SOL", "MATIC", "AVAX"}

// forexCurrencies are ISO currency codes used to spot 6-letter pairs.
var forexCurrencies = []string{"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "NZD"}

// DetectAssetClass classifies a symbol by pattern matching. Crypto substrings
// win over the forex pair shape; everything else is a stock.
func DetectAssetClass(symbol string) AssetClass {
	upper := strings.ToUpper(symbol)

	for _, t := range cryptoTickers {
		if strings.Contains(upper, t) {
			return AssetCrypto
		}
	}

	if len(upper) == 6 {
		for _, c := range forexCurrencies {
			if strings.Contains(upper, c) {
				return AssetForex
			}
		}
	}

	return AssetStock
}

// NormalizeSymbol uppercases and trims a raw ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Bar is one OHLCV record for a single period.
type Bar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// PriceRecord is the normalized quote shape shared by all providers.
// History, when present, is sorted ascending by date.
type PriceRecord struct {
	Symbol        string     `json:"symbol"`
	CurrentPrice  float64    `json:"current_price"`
	Change        float64    `json:"change"`
	ChangePercent float64    `json:"change_percent"`
	Volume        int64      `json:"volume"`
	High          float64    `json:"high"`
	Low           float64    `json:"low"`
	Open          float64    `json:"open"`
	PreviousClose float64    `json:"previous_close"`
	Source        string     `json:"source"`
	Timestamp     time.Time  `json:"timestamp"`
	AssetClass    AssetClass `json:"asset_type,omitempty"`
	Period        string     `json:"period,omitempty"`
	History       []Bar      `json:"history,omitempty"`
}

// ClosePrices extracts the close series from history, most recent last,
// capped to the given number of trailing points.
func (p *PriceRecord) ClosePrices(limit int) []float64 {
	bars := p.History
	if limit > 0 && len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}
	prices := make([]float64, len(bars))
	for i, b := range bars {
		prices[i] = b.Close
	}
	return prices
}
