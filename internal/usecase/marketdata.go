package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/provider"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/service/marketcache"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/config"
	applogger "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/logger"
)

// marketIndices are the index proxies reported in the market summary.
var marketIndices = []string{"SPY", "QQQ", "IWM", "DIA"}

// marketUniverse is the fixed breadth universe scanned for top movers.
var marketUniverse = []string{
	"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "NVDA", "META", "NFLX",
	"JPM", "BAC", "WFC", "GS", "MS", "C", "AXP", "V", "MA",
	"JNJ", "PFE", "UNH", "ABBV", "MRK", "TMO", "ABT", "DHR",
	"KO", "PEP", "WMT", "PG", "HD", "DIS", "NKE", "BA", "CAT",
}

const moversLimit = 10

// QuoteHistorian is the primary provider shape: quotes, history, and
// company fundamentals.
type QuoteHistorian interface {
	provider.Quoter
	provider.Historian
	provider.MetadataFetcher
}

// MarketData orchestrates quote acquisition: cache short-circuit, asset
// class detection, and the ordered provider fallback chain. Only the primary
// provider contributes history.
type MarketData struct {
	cfg       *config.Config
	store     *marketcache.Store
	primary   QuoteHistorian
	yahoo     provider.Quoter
	coingecko provider.Quoter
	l         *applogger.Logger
}

func NewMarketData(cfg *config.Config, store *marketcache.Store, primary QuoteHistorian, yahoo, coingecko provider.Quoter, l *applogger.Logger) *MarketData {
	return &MarketData{
		cfg:       cfg,
		store:     store,
		primary:   primary,
		yahoo:     yahoo,
		coingecko: coingecko,
		l:         l,
	}
}

func priceKey(symbol, period string) string {
	return fmt.Sprintf("price:%s_%s", symbol, period)
}

// GetPriceWithHistory resolves a quote through the fallback chain. A cache
// hit bypasses every provider; TTL bounds the resulting staleness. The
// second return is false only when no provider produced a usable quote.
func (m *MarketData) GetPriceWithHistory(ctx context.Context, symbol, period string) (*models.PriceRecord, bool) {
	symbol = models.NormalizeSymbol(symbol)
	key := priceKey(symbol, period)

	var cached models.PriceRecord
	if m.store.Get(ctx, marketcache.NamespaceMarketData, key, &cached) {
		return &cached, true
	}

	assetClass := models.DetectAssetClass(symbol)
	m.l.Debug("fetching fresh quote",
		applogger.String("symbol", symbol),
		applogger.String("asset_class", string(assetClass)),
		applogger.String("period", period),
	)

	var rec *models.PriceRecord
	var history []models.Bar

	if assetClass == models.AssetCrypto && m.cfg.Providers.CoinGecko.Enabled {
		rec, _ = m.coingecko.FetchQuote(ctx, symbol)
	}

	if rec == nil && m.cfg.AlphaVantageEnabled() {
		var ok bool
		if rec, ok = m.primary.FetchQuote(ctx, symbol); ok {
			history, _ = m.primary.FetchHistory(ctx, symbol, period)
		}
	}

	if rec == nil && m.cfg.Providers.Yahoo.Enabled {
		rec, _ = m.yahoo.FetchQuote(ctx, symbol)
	}

	if rec == nil {
		m.l.Warn("no provider produced a quote", applogger.String("symbol", symbol))
		return nil, false
	}

	rec.AssetClass = assetClass
	rec.Period = period
	rec.History = history

	m.store.Set(ctx, marketcache.NamespaceMarketData, key, rec, m.cfg.Cache.TTL.Price)
	return rec, true
}

// GetMultiplePrices fetches every symbol concurrently. The result always has
// exactly one entry per requested symbol; nil marks unavailability, and a
// panic in one fetch never disturbs the others.
func (m *MarketData) GetMultiplePrices(ctx context.Context, symbols []string, period string) map[string]*models.PriceRecord {
	results := make(map[string]*models.PriceRecord, len(symbols))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()

			var rec *models.PriceRecord
			func() {
				defer func() {
					if r := recover(); r != nil {
						m.l.Error("price fetch panicked",
							applogger.String("symbol", symbol),
							applogger.Any("panic", r),
						)
						rec = nil
					}
				}()
				rec, _ = m.GetPriceWithHistory(ctx, symbol, period)
			}()

			mu.Lock()
			results[symbol] = rec
			mu.Unlock()
		}(symbol)
	}

	wg.Wait()
	return results
}

// GetMarketSummary quotes the index proxies and scans the breadth universe
// for the day's top gainers, losers, and most active names.
func (m *MarketData) GetMarketSummary(ctx context.Context) *models.MarketSummary {
	summary := &models.MarketSummary{
		Timestamp:  time.Now().UTC(),
		Indices:    make(map[string]models.IndexQuote, len(marketIndices)),
		TopGainers: []models.Mover{},
		TopLosers:  []models.Mover{},
		MostActive: []models.Mover{},
	}

	for symbol, rec := range m.GetMultiplePrices(ctx, marketIndices, "1d") {
		if rec == nil {
			continue
		}
		summary.Indices[symbol] = models.IndexQuote{
			Price:         rec.CurrentPrice,
			Change:        rec.Change,
			ChangePercent: rec.ChangePercent,
		}
	}

	for symbol, rec := range m.GetMultiplePrices(ctx, marketUniverse, "1d") {
		if rec == nil {
			continue
		}
		mover := models.Mover{
			Symbol:        symbol,
			Price:         rec.CurrentPrice,
			Change:        rec.Change,
			ChangePercent: rec.ChangePercent,
			Volume:        rec.Volume,
		}
		if rec.ChangePercent > 0 {
			summary.TopGainers = append(summary.TopGainers, mover)
		}
		if rec.ChangePercent < 0 {
			summary.TopLosers = append(summary.TopLosers, mover)
		}
		summary.MostActive = append(summary.MostActive, mover)
	}

	sort.Slice(summary.TopGainers, func(i, j int) bool {
		return summary.TopGainers[i].ChangePercent > summary.TopGainers[j].ChangePercent
	})
	sort.Slice(summary.TopLosers, func(i, j int) bool {
		return summary.TopLosers[i].ChangePercent < summary.TopLosers[j].ChangePercent
	})
	sort.Slice(summary.MostActive, func(i, j int) bool {
		return summary.MostActive[i].Volume > summary.MostActive[j].Volume
	})

	summary.TopGainers = capMovers(summary.TopGainers)
	summary.TopLosers = capMovers(summary.TopLosers)
	summary.MostActive = capMovers(summary.MostActive)
	return summary
}

func capMovers(movers []models.Mover) []models.Mover {
	if len(movers) > moversLimit {
		return movers[:moversLimit]
	}
	return movers
}

// searchTable is the static symbol directory served by SearchSymbols.
var searchTable = []models.SymbolMatch{
	{Symbol: "AAPL", Name: "Apple Inc.", Type: models.AssetStock},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Type: models.AssetStock},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Type: models.AssetStock},
	{Symbol: "TSLA", Name: "Tesla Inc.", Type: models.AssetStock},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Type: models.AssetStock},
	{Symbol: "BTC", Name: "Bitcoin", Type: models.AssetCrypto},
	{Symbol: "ETH", Name: "Ethereum", Type: models.AssetCrypto},
	{Symbol: "ADA", Name: "Cardano", Type: models.AssetCrypto},
}

// SearchSymbols matches the query against the static symbol directory by
// ticker or name substring.
func (m *MarketData) SearchSymbols(query string, limit int) []models.SymbolMatch {
	upper := strings.ToUpper(strings.TrimSpace(query))
	matches := []models.SymbolMatch{}
	for _, entry := range searchTable {
		if strings.Contains(entry.Symbol, upper) || strings.Contains(strings.ToUpper(entry.Name), upper) {
			matches = append(matches, entry)
		}
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
