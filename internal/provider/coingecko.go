package provider

import (
	"context"
	"time"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/service/metrics"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/service/ratelimit"
	apihttp "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/http"
	applogger "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/logger"
)

// coinIDs maps supported crypto tickers to CoinGecko identifiers. Symbols
// outside this map return no data without making a network call.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"ADA":   "cardano",
	"DOT":   "polkadot",
	"LINK":  "chainlink",
	"UNI":   "uniswap",
	"AAVE":  "aave",
	"SOL":   "solana",
	"MATIC": "matic-network",
	"AVAX":  "avalanche-2",
}

// CoinGecko fetches crypto spot prices. Day high/low and open are
// approximated from the spot price and 24h change since the simple price
// endpoint does not carry them.
type CoinGecko struct {
	baseURL string
	client  *apihttp.Client
	limiter *ratelimit.Limiter
	l       *applogger.Logger
}

func NewCoinGecko(baseURL string, timeout time.Duration, limiter *ratelimit.Limiter, l *applogger.Logger) *CoinGecko {
	metrics.Register()
	return &CoinGecko{
		baseURL: baseURL,
		client:  apihttp.NewClient(apihttp.WithTimeout(timeout)),
		limiter: limiter,
		l:       l,
	}
}

func (c *CoinGecko) Name() string { return SourceCoinGecko }

func (c *CoinGecko) FetchQuote(ctx context.Context, symbol string) (*models.PriceRecord, bool) {
	upper := models.NormalizeSymbol(symbol)
	coinID, known := coinIDs[upper]
	if !known {
		return nil, false
	}

	c.limiter.Wait(ctx, SourceCoinGecko)

	var payload map[string]struct {
		USD          float64 `json:"usd"`
		USD24hChange float64 `json:"usd_24h_change"`
		USD24hVol    float64 `json:"usd_24h_vol"`
	}
	err := c.client.SendAndParse(ctx, &apihttp.RequestOptions{
		Method: apihttp.MethodGet,
		URL:    c.baseURL + "/simple/price",
		QueryParams: map[string]string{
			"ids":                     coinID,
			"vs_currencies":           "usd",
			"include_24hr_change":     "true",
			"include_24hr_vol":        "true",
			"include_last_updated_at": "true",
		},
	}, &payload)
	if err != nil {
		c.miss(upper, "request failed", err)
		return nil, false
	}

	coin, ok := payload[coinID]
	if !ok || coin.USD <= 0 {
		c.miss(upper, "coin missing from response", nil)
		return nil, false
	}

	price := coin.USD
	change := price * (coin.USD24hChange / 100)

	metrics.ProviderRequests.WithLabelValues(SourceCoinGecko, "success").Inc()
	return &models.PriceRecord{
		Symbol:        upper,
		CurrentPrice:  price,
		Change:        change,
		ChangePercent: coin.USD24hChange,
		Volume:        int64(coin.USD24hVol),
		High:          price * 1.05,
		Low:           price * 0.95,
		Open:          price - change,
		PreviousClose: price - change,
		Source:        SourceCoinGecko,
		Timestamp:     time.Now().UTC(),
	}, true
}

func (c *CoinGecko) miss(symbol, reason string, err error) {
	metrics.ProviderRequests.WithLabelValues(SourceCoinGecko, "failure").Inc()
	fields := []applogger.Field{
		applogger.String("provider", SourceCoinGecko),
		applogger.String("symbol", symbol),
		applogger.String("reason", reason),
	}
	if err != nil {
		fields = append(fields, applogger.Error(err))
	}
	c.l.Warn("provider returned no data", fields...)
}
