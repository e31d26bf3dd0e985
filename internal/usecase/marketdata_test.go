package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/service/marketcache"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/cache"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/config"
	applogger "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/logger"
)

type fakeQuoter struct {
	mu      sync.Mutex
	name    string
	records map[string]*models.PriceRecord
	panics  map[string]bool
	calls   int
}

func (f *fakeQuoter) Name() string { return f.name }

func (f *fakeQuoter) FetchQuote(_ context.Context, symbol string) (*models.PriceRecord, bool) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.panics[symbol] {
		panic("provider blew up")
	}
	rec, ok := f.records[symbol]
	if !ok || rec == nil {
		return nil, false
	}
	clone := *rec
	return &clone, true
}

func (f *fakeQuoter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakePrimary struct {
	fakeQuoter
	history      map[string][]models.Bar
	historyCalls int
}

func (f *fakePrimary) FetchHistory(_ context.Context, symbol, _ string) ([]models.Bar, bool) {
	f.mu.Lock()
	f.historyCalls++
	f.mu.Unlock()
	bars, ok := f.history[symbol]
	return bars, ok
}

func (f *fakePrimary) FetchOverview(_ context.Context, symbol string) (*models.AssetMetadata, bool) {
	return nil, false
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Environment = "test"
	cfg.Providers.AlphaVantage.APIKey = "real-key"
	cfg.Providers.Yahoo.Enabled = true
	cfg.Providers.CoinGecko.Enabled = true
	cfg.Cache.TTL.Price = 5 * time.Minute
	cfg.Cache.TTL.Signal = 10 * time.Minute
	cfg.Cache.TTL.Metadata = 24 * time.Hour
	return cfg
}

func record(symbol, source string, price float64) *models.PriceRecord {
	return &models.PriceRecord{
		Symbol:       symbol,
		CurrentPrice: price,
		Source:       source,
		Timestamp:    time.Unix(1700000000, 0).UTC(),
	}
}

func newTestMarketData(cfg *config.Config, primary *fakePrimary, yahoo, coingecko *fakeQuoter) (*MarketData, *marketcache.Store) {
	store := marketcache.New(cache.NewMemoryCache(), applogger.Nop())
	return NewMarketData(cfg, store, primary, yahoo, coingecko, applogger.Nop()), store
}

func TestGetPriceWithHistoryFallbackOrder(t *testing.T) {
	// Primary fails, secondary succeeds: the secondary's record wins and the
	// crypto adapter is never consulted for a stock symbol.
	primary := &fakePrimary{fakeQuoter: fakeQuoter{name: "primary"}}
	yahoo := &fakeQuoter{name: "yahoo", records: map[string]*models.PriceRecord{
		"AAPL": record("AAPL", "yahoo_finance", 190),
	}}
	coingecko := &fakeQuoter{name: "coingecko"}

	m, _ := newTestMarketData(testConfig(), primary, yahoo, coingecko)

	rec, ok := m.GetPriceWithHistory(context.Background(), "aapl", "1mo")
	require.True(t, ok)
	assert.Equal(t, "yahoo_finance", rec.Source)
	assert.Equal(t, models.AssetStock, rec.AssetClass)
	assert.Equal(t, 1, primary.callCount())
	assert.Equal(t, 1, yahoo.callCount())
	assert.Zero(t, coingecko.callCount())
}

func TestGetPriceWithHistoryCryptoPrefersCoinGecko(t *testing.T) {
	primary := &fakePrimary{fakeQuoter: fakeQuoter{name: "primary", records: map[string]*models.PriceRecord{
		"BTC": record("BTC", "alpha_vantage", 60000),
	}}}
	yahoo := &fakeQuoter{name: "yahoo"}
	coingecko := &fakeQuoter{name: "coingecko", records: map[string]*models.PriceRecord{
		"BTC": record("BTC", "coingecko", 60100),
	}}

	m, _ := newTestMarketData(testConfig(), primary, yahoo, coingecko)

	rec, ok := m.GetPriceWithHistory(context.Background(), "BTC", "1mo")
	require.True(t, ok)
	assert.Equal(t, "coingecko", rec.Source)
	assert.Equal(t, models.AssetCrypto, rec.AssetClass)
	assert.Zero(t, primary.callCount())
	assert.Zero(t, yahoo.callCount())
}

func TestGetPriceWithHistoryDisabledProvidersAreSkipped(t *testing.T) {
	cfg := testConfig()
	cfg.Providers.AlphaVantage.APIKey = config.DemoAPIKey
	cfg.Providers.CoinGecko.Enabled = false

	primary := &fakePrimary{fakeQuoter: fakeQuoter{name: "primary", records: map[string]*models.PriceRecord{
		"BTC": record("BTC", "alpha_vantage", 60000),
	}}}
	yahoo := &fakeQuoter{name: "yahoo", records: map[string]*models.PriceRecord{
		"BTC": record("BTC", "yahoo_finance", 59900),
	}}
	coingecko := &fakeQuoter{name: "coingecko", records: map[string]*models.PriceRecord{
		"BTC": record("BTC", "coingecko", 60100),
	}}

	m, _ := newTestMarketData(cfg, primary, yahoo, coingecko)

	rec, ok := m.GetPriceWithHistory(context.Background(), "BTC", "1mo")
	require.True(t, ok)
	assert.Equal(t, "yahoo_finance", rec.Source)
	assert.Zero(t, primary.callCount())
	assert.Zero(t, coingecko.callCount())
}

func TestGetPriceWithHistoryAttachesHistoryFromPrimary(t *testing.T) {
	primary := &fakePrimary{
		fakeQuoter: fakeQuoter{name: "primary", records: map[string]*models.PriceRecord{
			"IBM": record("IBM", "alpha_vantage", 140),
		}},
		history: map[string][]models.Bar{
			"IBM": {{Date: "2024-01-01", Close: 138}, {Date: "2024-02-01", Close: 140}},
		},
	}
	m, _ := newTestMarketData(testConfig(), primary, &fakeQuoter{name: "yahoo"}, &fakeQuoter{name: "coingecko"})

	rec, ok := m.GetPriceWithHistory(context.Background(), "IBM", "1mo")
	require.True(t, ok)
	require.Len(t, rec.History, 2)
	assert.Equal(t, "1mo", rec.Period)
	assert.Equal(t, 1, primary.historyCalls)
}

func TestGetPriceWithHistoryCacheHitShortCircuits(t *testing.T) {
	primary := &fakePrimary{fakeQuoter: fakeQuoter{name: "primary"}}
	yahoo := &fakeQuoter{name: "yahoo"}
	coingecko := &fakeQuoter{name: "coingecko"}
	m, store := newTestMarketData(testConfig(), primary, yahoo, coingecko)

	seeded := record("AAPL", "alpha_vantage", 195)
	require.True(t, store.Set(context.Background(), marketcache.NamespaceMarketData, priceKey("AAPL", "1mo"), seeded, time.Minute))

	rec, ok := m.GetPriceWithHistory(context.Background(), "AAPL", "1mo")
	require.True(t, ok)
	assert.Equal(t, seeded.CurrentPrice, rec.CurrentPrice)
	assert.Zero(t, primary.callCount())
	assert.Zero(t, yahoo.callCount())
	assert.Zero(t, coingecko.callCount())
}

func TestGetPriceWithHistoryAllProvidersFail(t *testing.T) {
	m, _ := newTestMarketData(testConfig(),
		&fakePrimary{fakeQuoter: fakeQuoter{name: "primary"}},
		&fakeQuoter{name: "yahoo"},
		&fakeQuoter{name: "coingecko"},
	)

	rec, ok := m.GetPriceWithHistory(context.Background(), "NOPE", "1mo")
	assert.False(t, ok)
	assert.Nil(t, rec)
}

func TestGetMultiplePricesOneEntryPerSymbol(t *testing.T) {
	primary := &fakePrimary{fakeQuoter: fakeQuoter{
		name: "primary",
		records: map[string]*models.PriceRecord{
			"AAPL": record("AAPL", "alpha_vantage", 190),
			"IBM":  record("IBM", "alpha_vantage", 140),
		},
		panics: map[string]bool{"MSFT": true},
	}}
	m, _ := newTestMarketData(testConfig(), primary, &fakeQuoter{name: "yahoo"}, &fakeQuoter{name: "coingecko"})

	results := m.GetMultiplePrices(context.Background(), []string{"AAPL", "MSFT", "IBM"}, "1mo")

	require.Len(t, results, 3)
	assert.NotNil(t, results["AAPL"])
	assert.NotNil(t, results["IBM"])
	assert.Nil(t, results["MSFT"])
}

func TestSearchSymbols(t *testing.T) {
	m, _ := newTestMarketData(testConfig(),
		&fakePrimary{fakeQuoter: fakeQuoter{name: "primary"}},
		&fakeQuoter{name: "yahoo"},
		&fakeQuoter{name: "coingecko"},
	)

	matches := m.SearchSymbols("apple", 10)
	require.Len(t, matches, 1)
	assert.Equal(t, "AAPL", matches[0].Symbol)

	matches = m.SearchSymbols("a", 2)
	assert.Len(t, matches, 2)

	assert.Empty(t, m.SearchSymbols("zzzz", 10))
}

func TestGetAssetMetadataDefaults(t *testing.T) {
	cfg := testConfig()
	cfg.Providers.AlphaVantage.APIKey = config.DemoAPIKey

	m, _ := newTestMarketData(cfg,
		&fakePrimary{fakeQuoter: fakeQuoter{name: "primary"}},
		&fakeQuoter{name: "yahoo"},
		&fakeQuoter{name: "coingecko"},
	)

	meta := m.GetAssetMetadata(context.Background(), "btc")
	require.NotNil(t, meta)
	assert.Equal(t, "BTC", meta.Symbol)
	assert.Equal(t, "Bitcoin", meta.Name)
	assert.Equal(t, models.AssetCrypto, meta.Type)
	assert.Equal(t, 1.0, meta.Beta)

	meta = m.GetAssetMetadata(context.Background(), "ZZZZ")
	require.NotNil(t, meta)
	assert.Equal(t, "ZZZZ Corporation", meta.Name)
	assert.Equal(t, models.AssetStock, meta.Type)
	assert.Equal(t, "Other", meta.Sector)
}
