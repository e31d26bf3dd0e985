package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/service/marketcache"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/cache"
	applogger "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/logger"
)

type fakePriceSource struct {
	mu      sync.Mutex
	records map[string]*models.PriceRecord
	calls   int
}

func (f *fakePriceSource) GetPriceWithHistory(_ context.Context, symbol, period string) (*models.PriceRecord, bool) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	rec, ok := f.records[models.NormalizeSymbol(symbol)]
	if !ok || rec == nil {
		return nil, false
	}
	clone := *rec
	return &clone, true
}

func (f *fakePriceSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func barsRampUp(n int, base float64) []models.Bar {
	bars := make([]models.Bar, n)
	for i := range bars {
		bars[i] = models.Bar{
			Date:  fmt.Sprintf("2024-01-%02d", i+1),
			Close: base + float64(i),
		}
	}
	return bars
}

func recordWithHistory(symbol string, price float64, bars []models.Bar) *models.PriceRecord {
	rec := record(symbol, "alpha_vantage", price)
	rec.History = bars
	return rec
}

func newTestAnalysis(source PriceSource) *Analysis {
	store := marketcache.New(cache.NewMemoryCache(), applogger.Nop())
	return NewAnalysis(testConfig(), store, source, nil, applogger.Nop())
}

func TestComputeSignalBundle(t *testing.T) {
	source := &fakePriceSource{records: map[string]*models.PriceRecord{
		"AAPL": recordWithHistory("AAPL", 190, barsRampUp(30, 160)),
	}}
	a := newTestAnalysis(source)

	bundle, ok := a.ComputeSignalBundle(context.Background(), "aapl", "1mo")
	require.True(t, ok)
	assert.Equal(t, "AAPL", bundle.Symbol)
	assert.Contains(t, []models.Signal{models.SignalBuy, models.SignalSell, models.SignalHold}, bundle.Signal)
	assert.False(t, bundle.SyntheticHistory)
	assert.NotNil(t, bundle.Indicators.RSI)
	assert.NotNil(t, bundle.Indicators.MACD)
	assert.NotNil(t, bundle.Indicators.Bollinger)
	// 30 points are short of the EMA-50 window.
	assert.Nil(t, bundle.Indicators.EMA50)
}

func TestComputeSignalBundleServedFromCache(t *testing.T) {
	source := &fakePriceSource{records: map[string]*models.PriceRecord{
		"AAPL": recordWithHistory("AAPL", 190, barsRampUp(30, 160)),
	}}
	a := newTestAnalysis(source)

	first, ok := a.ComputeSignalBundle(context.Background(), "AAPL", "1mo")
	require.True(t, ok)

	second, ok := a.ComputeSignalBundle(context.Background(), "AAPL", "1mo")
	require.True(t, ok)

	assert.Equal(t, first.Signal, second.Signal)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.Reasoning, second.Reasoning)
	assert.Equal(t, first.IndividualVotes, second.IndividualVotes)
	assert.True(t, first.Timestamp.Equal(second.Timestamp))
	assert.Equal(t, 1, source.callCount())
}

func TestComputeSignalBundleSyntheticFallback(t *testing.T) {
	source := &fakePriceSource{records: map[string]*models.PriceRecord{
		"AAPL": record("AAPL", "yahoo_finance", 100),
	}}
	a := newTestAnalysis(source)

	bundle, ok := a.ComputeSignalBundle(context.Background(), "AAPL", "1mo")
	require.True(t, ok)
	assert.True(t, bundle.SyntheticHistory)
	assert.Contains(t, bundle.Reasoning[len(bundle.Reasoning)-1], "synthetic")
	// The 50-point synthetic ramp feeds the full suite.
	assert.NotNil(t, bundle.Indicators.EMA50)
}

func TestComputeSignalBundleNoPriceData(t *testing.T) {
	a := newTestAnalysis(&fakePriceSource{})

	bundle, ok := a.ComputeSignalBundle(context.Background(), "NOPE", "1mo")
	assert.False(t, ok)
	assert.Nil(t, bundle)
}

func TestComputeSignalBundleInsufficientHistory(t *testing.T) {
	source := &fakePriceSource{records: map[string]*models.PriceRecord{
		"AAPL": recordWithHistory("AAPL", 190, barsRampUp(10, 180)),
	}}
	a := newTestAnalysis(source)

	_, ok := a.ComputeSignalBundle(context.Background(), "AAPL", "1mo")
	assert.False(t, ok)
}

func TestGetMarketOverview(t *testing.T) {
	source := &fakePriceSource{records: map[string]*models.PriceRecord{
		"AAPL": recordWithHistory("AAPL", 190, barsRampUp(30, 160)),
		"IBM":  recordWithHistory("IBM", 140, barsRampUp(30, 110)),
	}}
	a := newTestAnalysis(source)

	overview := a.GetMarketOverview(context.Background(), []string{"AAPL", "IBM", "NOPE"}, "1mo")

	assert.Equal(t, 3, overview.TotalSymbols)
	assert.Equal(t, 2, overview.SuccessfulAnalyses)
	require.Len(t, overview.Symbols, 3)
	assert.Equal(t, "No data available", overview.Symbols["NOPE"].Error)
	assert.NotZero(t, overview.Symbols["AAPL"].Price)

	total := 0
	for _, n := range overview.SignalsSummary {
		total += n
	}
	assert.Equal(t, 2, total)
}
