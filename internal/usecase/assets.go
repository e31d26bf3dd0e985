package usecase

import (
	"context"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/service/marketcache"
)

type symbolDefault struct {
	name     string
	class    models.AssetClass
	sector   string
	industry string
	exchange string
}

// symbolDefaults fills in identity fields for well-known symbols when the
// provider has nothing.
var symbolDefaults = map[string]symbolDefault{
	"AAPL":  {name: "Apple Inc.", sector: "Technology", industry: "Consumer Electronics", exchange: "NASDAQ"},
	"GOOGL": {name: "Alphabet Inc.", sector: "Technology", industry: "Internet Services", exchange: "NASDAQ"},
	"MSFT":  {name: "Microsoft Corporation", sector: "Technology", industry: "Software", exchange: "NASDAQ"},
	"AMZN":  {name: "Amazon.com Inc.", sector: "Consumer", industry: "E-commerce", exchange: "NASDAQ"},
	"TSLA":  {name: "Tesla Inc.", sector: "Consumer", industry: "Automotive", exchange: "NASDAQ"},
	"NVDA":  {name: "NVIDIA Corporation", sector: "Technology", industry: "Semiconductors", exchange: "NASDAQ"},
	"META":  {name: "Meta Platforms Inc.", sector: "Technology", industry: "Social Media", exchange: "NASDAQ"},
	"JPM":   {name: "JPMorgan Chase & Co.", sector: "Financial", industry: "Banking", exchange: "NYSE"},
	"BAC":   {name: "Bank of America Corp.", sector: "Financial", industry: "Banking", exchange: "NYSE"},
	"WFC":   {name: "Wells Fargo & Company", sector: "Financial", industry: "Banking", exchange: "NYSE"},
	"JNJ":   {name: "Johnson & Johnson", sector: "Healthcare", industry: "Pharmaceuticals", exchange: "NYSE"},
	"PFE":   {name: "Pfizer Inc.", sector: "Healthcare", industry: "Pharmaceuticals", exchange: "NYSE"},
	"KO":    {name: "The Coca-Cola Company", sector: "Consumer", industry: "Beverages", exchange: "NYSE"},
	"PEP":   {name: "PepsiCo Inc.", sector: "Consumer", industry: "Beverages", exchange: "NASDAQ"},
	"BTC":   {name: "Bitcoin", class: models.AssetCrypto, sector: "Cryptocurrency", industry: "Digital Currency", exchange: "Crypto"},
	"ETH":   {name: "Ethereum", class: models.AssetCrypto, sector: "Cryptocurrency", industry: "Digital Currency", exchange: "Crypto"},
	"ADA":   {name: "Cardano", class: models.AssetCrypto, sector: "Cryptocurrency", industry: "Digital Currency", exchange: "Crypto"},
}

// GetAssetMetadata resolves metadata for a symbol: cache, then the primary
// provider's company overview (when a real key is configured), then known
// defaults. It always returns a populated record.
func (m *MarketData) GetAssetMetadata(ctx context.Context, symbol string) *models.AssetMetadata {
	symbol = models.NormalizeSymbol(symbol)
	key := "metadata:" + symbol

	var cached models.AssetMetadata
	if m.store.Get(ctx, marketcache.NamespaceAssets, key, &cached) {
		return &cached
	}

	var meta *models.AssetMetadata
	if m.cfg.AlphaVantageEnabled() {
		meta, _ = m.primary.FetchOverview(ctx, symbol)
	}

	meta = applyMetadataDefaults(meta, symbol)
	m.store.Set(ctx, marketcache.NamespaceAssets, key, meta, m.cfg.Cache.TTL.Metadata)
	return meta
}

func applyMetadataDefaults(meta *models.AssetMetadata, symbol string) *models.AssetMetadata {
	if meta == nil {
		meta = &models.AssetMetadata{}
	}
	meta.Symbol = symbol

	known := symbolDefaults[symbol]
	if meta.Name == "" {
		meta.Name = known.name
	}
	if meta.Name == "" {
		meta.Name = symbol + " Corporation"
	}
	if meta.Type == "" {
		meta.Type = known.class
	}
	if meta.Type == "" {
		meta.Type = models.AssetStock
	}
	if meta.Exchange == "" {
		meta.Exchange = known.exchange
	}
	if meta.Exchange == "" {
		meta.Exchange = "NASDAQ"
	}
	if meta.Currency == "" {
		meta.Currency = "USD"
	}
	if meta.Sector == "" {
		meta.Sector = known.sector
	}
	if meta.Sector == "" {
		meta.Sector = "Other"
	}
	if meta.Industry == "" {
		meta.Industry = known.industry
	}
	if meta.Industry == "" {
		meta.Industry = "General"
	}
	if meta.Beta == 0 {
		meta.Beta = 1.0
	}
	return meta
}
