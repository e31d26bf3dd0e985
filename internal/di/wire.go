//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/config"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure
		ProvideLogger,
		ProvideCacheService,
		ProvideRateLimiter,
		ProvideStore,
		ProvideKafkaProducer,

		// Providers
		ProvideAlphaVantage,
		ProvideYahoo,
		ProvideCoinGecko,

		// Use cases
		ProvideMarketData,
		ProvideEventsPublisher,
		ProvideAnalysis,

		// HTTP surface
		ProvideRouter,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
