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

// Yahoo fetches quotes from the Yahoo Finance chart API. It is the last
// fallback in the chain and supplies no history.
type Yahoo struct {
	baseURL string
	client  *apihttp.Client
	limiter *ratelimit.Limiter
	l       *applogger.Logger
}

func NewYahoo(baseURL string, timeout time.Duration, limiter *ratelimit.Limiter, l *applogger.Logger) *Yahoo {
	metrics.Register()
	return &Yahoo{
		baseURL: baseURL,
		client:  apihttp.NewClient(apihttp.WithTimeout(timeout)),
		limiter: limiter,
		l:       l,
	}
}

func (y *Yahoo) Name() string { return SourceYahoo }

type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				PreviousClose        float64 `json:"previousClose"`
				RegularMarketVolume  int64   `json:"regularMarketVolume"`
				RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
				RegularMarketOpen    float64 `json:"regularMarketOpen"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

// FetchQuote reads the chart meta block for the symbol. Change figures are
// derived from the previous close since the endpoint does not report them.
func (y *Yahoo) FetchQuote(ctx context.Context, symbol string) (*models.PriceRecord, bool) {
	y.limiter.Wait(ctx, SourceYahoo)

	var payload yahooChart
	err := y.client.SendAndParse(ctx, &apihttp.RequestOptions{
		Method: apihttp.MethodGet,
		URL:    y.baseURL + "/" + symbol,
		QueryParams: map[string]string{
			"range":          "1d",
			"interval":       "1m",
			"includePrePost": "true",
		},
	}, &payload)
	if err != nil {
		y.miss(symbol, "request failed", err)
		return nil, false
	}

	if len(payload.Chart.Result) == 0 {
		y.miss(symbol, "empty chart result", nil)
		return nil, false
	}

	meta := payload.Chart.Result[0].Meta
	price := meta.RegularMarketPrice
	if price <= 0 {
		y.miss(symbol, "no market price", nil)
		return nil, false
	}

	previousClose := meta.PreviousClose
	if previousClose == 0 {
		previousClose = price
	}
	change := price - previousClose
	changePercent := 0.0
	if previousClose != 0 {
		changePercent = change / previousClose * 100
	}

	high := meta.RegularMarketDayHigh
	if high == 0 {
		high = price
	}
	low := meta.RegularMarketDayLow
	if low == 0 {
		low = price
	}
	open := meta.RegularMarketOpen
	if open == 0 {
		open = price
	}

	metrics.ProviderRequests.WithLabelValues(SourceYahoo, "success").Inc()
	return &models.PriceRecord{
		Symbol:        models.NormalizeSymbol(symbol),
		CurrentPrice:  price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        meta.RegularMarketVolume,
		High:          high,
		Low:           low,
		Open:          open,
		PreviousClose: previousClose,
		Source:        SourceYahoo,
		Timestamp:     time.Now().UTC(),
	}, true
}

func (y *Yahoo) miss(symbol, reason string, err error) {
	metrics.ProviderRequests.WithLabelValues(SourceYahoo, "failure").Inc()
	fields := []applogger.Field{
		applogger.String("provider", SourceYahoo),
		applogger.String("symbol", symbol),
		applogger.String("reason", reason),
	}
	if err != nil {
		fields = append(fields, applogger.Error(err))
	}
	y.l.Warn("provider returned no data", fields...)
}
