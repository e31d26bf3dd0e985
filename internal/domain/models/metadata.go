package models

// AssetMetadata describes an asset beyond its price: identity, sector, and
// fundamental metrics. Pointer fields are absent when the provider had no
// value.
type AssetMetadata struct {
	Symbol        string     `json:"symbol"`
	Name          string     `json:"name"`
	Type          AssetClass `json:"type"`
	Exchange      string     `json:"exchange"`
	Currency      string     `json:"currency"`
	Sector        string     `json:"sector"`
	Industry      string     `json:"industry"`
	PERatio       *float64   `json:"pe_ratio"`
	PBRatio       *float64   `json:"pb_ratio"`
	DividendYield *float64   `json:"dividend_yield"`
	MarketCap     *float64   `json:"market_cap"`
	Beta          float64    `json:"beta"`
	WeekHigh52    *float64   `json:"52_week_high"`
	WeekLow52     *float64   `json:"52_week_low"`
	EPS           *float64   `json:"eps"`
}
