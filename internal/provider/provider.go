package provider

import (
	"context"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"
)

// Source tags recorded on PriceRecord and used for rate limiting and metrics.
const (
	SourceAlphaVantage = "alpha_vantage"
	SourceYahoo        = "yahoo_finance"
	SourceCoinGecko    = "coingecko"
)

// Quoter fetches a current quote for a symbol. A false return collapses
// every failure mode (network error, provider error payload, quota note,
// malformed body, unknown symbol) into the single "no data" signal the
// fallback chain understands. Implementations never return an error.
type Quoter interface {
	Name() string
	FetchQuote(ctx context.Context, symbol string) (*models.PriceRecord, bool)
}

// Historian fetches an ascending, bounded historical series. Only the
// primary provider implements it.
type Historian interface {
	FetchHistory(ctx context.Context, symbol, period string) ([]models.Bar, bool)
}

// MetadataFetcher retrieves company fundamentals for a symbol.
type MetadataFetcher interface {
	FetchOverview(ctx context.Context, symbol string) (*models.AssetMetadata, bool)
}
