package di

import (
	"fmt"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/handler/api"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/provider"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/service/events"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/service/marketcache"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/service/ratelimit"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/usecase"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/cache"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/config"
	apihttp "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/http"
	pkgkafka "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/kafka"
	applogger "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/logger"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideCacheService creates the configured cache backend.
func ProvideCacheService(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Backend == "redis" {
		c, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvideRateLimiter creates the shared per-source request limiter.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Providers.MinRequestInterval)
}

// ProvideStore creates the namespaced cache store.
func ProvideStore(svc cache.Service, l *applogger.Logger) *marketcache.Store {
	return marketcache.New(svc, l)
}

// ProvideAlphaVantage creates the primary quote provider.
func ProvideAlphaVantage(cfg *config.Config, limiter *ratelimit.Limiter, l *applogger.Logger) *provider.AlphaVantage {
	return provider.NewAlphaVantage(
		cfg.Providers.AlphaVantage.APIKey,
		cfg.Providers.AlphaVantage.BaseURL,
		cfg.Providers.AlphaVantage.Timeout,
		limiter, l,
	)
}

// ProvideYahoo creates the secondary quote provider.
func ProvideYahoo(cfg *config.Config, limiter *ratelimit.Limiter, l *applogger.Logger) *provider.Yahoo {
	return provider.NewYahoo(cfg.Providers.Yahoo.BaseURL, cfg.Providers.Yahoo.Timeout, limiter, l)
}

// ProvideCoinGecko creates the crypto quote provider.
func ProvideCoinGecko(cfg *config.Config, limiter *ratelimit.Limiter, l *applogger.Logger) *provider.CoinGecko {
	return provider.NewCoinGecko(cfg.Providers.CoinGecko.BaseURL, cfg.Providers.CoinGecko.Timeout, limiter, l)
}

// ProvideMarketData creates the acquisition orchestrator.
func ProvideMarketData(
	cfg *config.Config,
	store *marketcache.Store,
	alpha *provider.AlphaVantage,
	yahoo *provider.Yahoo,
	coingecko *provider.CoinGecko,
	l *applogger.Logger,
) *usecase.MarketData {
	return usecase.NewMarketData(cfg, store, alpha, yahoo, coingecko, l)
}

// ProvideKafkaProducer creates the event producer, or nil when events are
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideEventsPublisher creates the signal event publisher. Nil when
// events are disabled.
func ProvideEventsPublisher(producer *pkgkafka.Producer, cfg *config.Config, l *applogger.Logger) *events.Publisher {
	if producer == nil {
		return nil
	}
	return events.New(producer, cfg.Events.Topic, l)
}

// ProvideAnalysis creates the signal analysis use case.
func ProvideAnalysis(
	cfg *config.Config,
	store *marketcache.Store,
	market *usecase.MarketData,
	publisher *events.Publisher,
	l *applogger.Logger,
) *usecase.Analysis {
	return usecase.NewAnalysis(cfg, store, market, publisher, l)
}

// ProvideRouter assembles the API handlers.
func ProvideRouter(cfg *config.Config, market *usecase.MarketData, analysis *usecase.Analysis, l *applogger.Logger) apihttp.Handler {
	return api.NewRouter(
		api.NewMarketHandler(market, l),
		api.NewSignalsHandler(analysis, l),
		api.NewStreamHandler(market, cfg.Stream.RefreshInterval, l),
		api.NewHealthHandler(cfg.Environment),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler apihttp.Handler,
	cacheSvc cache.Service,
	producer *pkgkafka.Producer,
) *server.App {
	return server.New(cfg, l, handler, cacheSvc, producer)
}
