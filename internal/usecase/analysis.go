package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/indicator"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/service/events"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/service/marketcache"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/service/metrics"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/signal"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/config"
	applogger "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/logger"
)

// Computing the full suite needs at least the MACD slow period of points.
const minHistoryPoints = 26

// closeWindow is how many trailing closes feed the indicator suite.
const closeWindow = 50

// PriceSource is the slice of MarketData the analysis path depends on.
type PriceSource interface {
	GetPriceWithHistory(ctx context.Context, symbol, period string) (*models.PriceRecord, bool)
}

// Analysis computes indicator suites and fused signal bundles on top of the
// acquisition layer.
type Analysis struct {
	cfg    *config.Config
	store  *marketcache.Store
	prices PriceSource
	events *events.Publisher
	l      *applogger.Logger
}

func NewAnalysis(cfg *config.Config, store *marketcache.Store, prices PriceSource, publisher *events.Publisher, l *applogger.Logger) *Analysis {
	metrics.Register()
	return &Analysis{
		cfg:    cfg,
		store:  store,
		prices: prices,
		events: publisher,
		l:      l,
	}
}

func signalKey(symbol, period string) string {
	return fmt.Sprintf("signals:%s_%s", symbol, period)
}

// ComputeSignalBundle produces the fused signal for a symbol. Cached bundles
// are served as-is within their TTL. When the provider supplies no history a
// linear synthetic series around the current price is used and flagged on
// the bundle. Returns false when no quote is available or the series stays
// below the indicator minimum.
func (a *Analysis) ComputeSignalBundle(ctx context.Context, symbol, period string) (*models.SignalBundle, bool) {
	symbol = models.NormalizeSymbol(symbol)
	key := signalKey(symbol, period)

	var cached models.SignalBundle
	if a.store.Get(ctx, marketcache.NamespaceTechnical, key, &cached) {
		return &cached, true
	}

	start := time.Now()
	defer func() {
		metrics.SignalLatency.WithLabelValues("compute_bundle").Observe(time.Since(start).Seconds())
	}()

	rec, ok := a.prices.GetPriceWithHistory(ctx, symbol, period)
	if !ok {
		return nil, false
	}

	prices := rec.ClosePrices(closeWindow)
	synthetic := false
	if len(prices) == 0 {
		a.l.Warn("no history available, using synthetic series",
			applogger.String("symbol", symbol),
			applogger.String("period", period),
		)
		prices = syntheticSeries(rec.CurrentPrice, closeWindow)
		synthetic = true
	}

	if len(prices) < minHistoryPoints {
		a.l.Warn("insufficient history for analysis",
			applogger.String("symbol", symbol),
			applogger.Int("points", len(prices)),
		)
		return nil, false
	}

	ind := computeIndicators(prices)
	decision := signal.Fuse(rec.CurrentPrice, ind)

	bundle := &models.SignalBundle{
		Symbol:           symbol,
		CurrentPrice:     rec.CurrentPrice,
		Timestamp:        time.Now().UTC(),
		Period:           period,
		Signal:           decision.Signal,
		Strength:         decision.Strength,
		Confidence:       decision.Confidence,
		Trend:            decision.Trend,
		Risk:             decision.Risk,
		Reasoning:        decision.Reasoning,
		Indicators:       ind,
		IndividualVotes:  decision.Votes,
		SyntheticHistory: synthetic,
	}
	if synthetic {
		bundle.Reasoning = append(bundle.Reasoning, "Derived from synthetic price series, no market history available")
	}

	metrics.SignalsGenerated.WithLabelValues(string(bundle.Signal)).Inc()
	a.store.Set(ctx, marketcache.NamespaceTechnical, key, bundle, a.cfg.Cache.TTL.Signal)
	a.events.PublishSignal(ctx, bundle)

	a.l.Info("signal generated",
		applogger.String("symbol", symbol),
		applogger.String("signal", string(bundle.Signal)),
		applogger.Float64("confidence", bundle.Confidence),
	)
	return bundle, true
}

// GetMarketOverview computes bundles for every symbol concurrently and
// aggregates decision counts and strong signals. A failing symbol gets an
// error mark instead of disturbing the rest.
func (a *Analysis) GetMarketOverview(ctx context.Context, symbols []string, period string) *models.MarketOverview {
	overview := &models.MarketOverview{
		Timestamp:      time.Now().UTC(),
		TotalSymbols:   len(symbols),
		SignalsSummary: map[models.Signal]int{models.SignalBuy: 0, models.SignalSell: 0, models.SignalHold: 0},
		StrongSignals:  []models.StrongSignal{},
		Symbols:        make(map[string]models.OverviewEntry, len(symbols)),
	}

	bundles := make(map[string]*models.SignalBundle, len(symbols))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()

			var bundle *models.SignalBundle
			func() {
				defer func() {
					if r := recover(); r != nil {
						a.l.Error("signal computation panicked",
							applogger.String("symbol", symbol),
							applogger.Any("panic", r),
						)
						bundle = nil
					}
				}()
				bundle, _ = a.ComputeSignalBundle(ctx, symbol, period)
			}()

			mu.Lock()
			bundles[symbol] = bundle
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()

	for _, symbol := range symbols {
		bundle := bundles[symbol]
		if bundle == nil {
			overview.Symbols[symbol] = models.OverviewEntry{Error: "No data available"}
			continue
		}

		overview.SuccessfulAnalyses++
		overview.SignalsSummary[bundle.Signal]++

		if bundle.Strength >= models.StrengthStrong {
			overview.StrongSignals = append(overview.StrongSignals, models.StrongSignal{
				Symbol:     symbol,
				Signal:     bundle.Signal,
				Confidence: bundle.Confidence,
			})
		}

		overview.Symbols[symbol] = models.OverviewEntry{
			Signal:     bundle.Signal,
			Confidence: bundle.Confidence,
			Trend:      bundle.Trend,
			Risk:       bundle.Risk,
			Price:      bundle.CurrentPrice,
		}
	}

	return overview
}

// syntheticSeries builds a linear ramp around the base price so the suite
// still has something to chew on when a provider returns a quote without
// history.
func syntheticSeries(base float64, points int) []float64 {
	series := make([]float64, points)
	for i := range series {
		series[i] = base * (1 + float64(i-25)*0.01)
	}
	return series
}

func computeIndicators(prices []float64) models.IndicatorSet {
	var ind models.IndicatorSet

	if v, ok := indicator.RSI(prices, 14); ok {
		ind.RSI = &v
	}
	if v, ok := indicator.EMA(prices, 20); ok {
		ind.EMA20 = &v
	}
	if v, ok := indicator.EMA(prices, 50); ok {
		ind.EMA50 = &v
	}
	if v, ok := indicator.SMA(prices, 20); ok {
		ind.SMA20 = &v
	}
	if v, ok := indicator.ATR(prices, 14); ok {
		ind.ATR = &v
	}
	if v, ok := indicator.WilliamsR(prices, 14); ok {
		ind.WilliamsR = &v
	}
	if v, ok := indicator.MACDLine(prices, 12, 26, 9); ok {
		ind.MACD = &v
	}
	if v, ok := indicator.Bollinger(prices, 20, 2.0); ok {
		ind.Bollinger = &v
	}
	if v, ok := indicator.StochasticOscillator(prices, 14, 3); ok {
		ind.Stoch = &v
	}

	return ind
}
