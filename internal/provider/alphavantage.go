package provider

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/service/metrics"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/service/ratelimit"
	apihttp "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/http"
	applogger "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/logger"
)

const alphaHistoryLimit = 30

// periodFunctions maps a requested period to the Alpha Vantage time series
// function. Unknown periods fall back to monthly.
var periodFunctions = map[string]string{
	"1d":  "TIME_SERIES_INTRADAY",
	"1wk": "TIME_SERIES_WEEKLY",
	"1mo": "TIME_SERIES_MONTHLY",
	"3mo": "TIME_SERIES_MONTHLY",
	"6mo": "TIME_SERIES_MONTHLY",
	"1y":  "TIME_SERIES_MONTHLY",
}

// AlphaVantage is the primary quote provider and the only history source.
type AlphaVantage struct {
	apiKey  string
	baseURL string
	client  *apihttp.Client
	limiter *ratelimit.Limiter
	l       *applogger.Logger
}

func NewAlphaVantage(apiKey, baseURL string, timeout time.Duration, limiter *ratelimit.Limiter, l *applogger.Logger) *AlphaVantage {
	metrics.Register()
	return &AlphaVantage{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  apihttp.NewClient(apihttp.WithTimeout(timeout)),
		limiter: limiter,
		l:       l,
	}
}

func (a *AlphaVantage) Name() string { return SourceAlphaVantage }

// FetchQuote retrieves the GLOBAL_QUOTE endpoint and normalizes it. Missing
// optional fields default to the current price, volume defaults to 0.
func (a *AlphaVantage) FetchQuote(ctx context.Context, symbol string) (*models.PriceRecord, bool) {
	a.limiter.Wait(ctx, SourceAlphaVantage)

	var payload struct {
		ErrorMessage string            `json:"Error Message"`
		Note         string            `json:"Note"`
		GlobalQuote  map[string]string `json:"Global Quote"`
	}

	err := a.client.SendAndParse(ctx, &apihttp.RequestOptions{
		Method: apihttp.MethodGet,
		URL:    a.baseURL,
		QueryParams: map[string]string{
			"function": "GLOBAL_QUOTE",
			"symbol":   symbol,
			"apikey":   a.apiKey,
		},
	}, &payload)
	if err != nil {
		a.miss(symbol, "request failed", err)
		return nil, false
	}

	if payload.ErrorMessage != "" {
		a.miss(symbol, "provider error: "+payload.ErrorMessage, nil)
		return nil, false
	}
	if payload.Note != "" {
		a.miss(symbol, "rate limited by provider", nil)
		return nil, false
	}

	quote := payload.GlobalQuote
	priceStr, ok := quote["05. price"]
	if !ok {
		a.miss(symbol, "no price in response", nil)
		return nil, false
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price <= 0 {
		a.miss(symbol, "unparseable price", err)
		return nil, false
	}

	metrics.ProviderRequests.WithLabelValues(SourceAlphaVantage, "success").Inc()
	return &models.PriceRecord{
		Symbol:        models.NormalizeSymbol(symbol),
		CurrentPrice:  price,
		Change:        fieldFloat(quote, "09. change", 0),
		ChangePercent: fieldPercent(quote, "10. change percent"),
		Volume:        fieldInt(quote, "06. volume"),
		High:          fieldFloat(quote, "03. high", price),
		Low:           fieldFloat(quote, "04. low", price),
		Open:          fieldFloat(quote, "02. open", price),
		PreviousClose: fieldFloat(quote, "08. previous close", price),
		Source:        SourceAlphaVantage,
		Timestamp:     time.Now().UTC(),
	}, true
}

// FetchHistory retrieves the period-appropriate time series and returns the
// last 30 bars in ascending date order.
func (a *AlphaVantage) FetchHistory(ctx context.Context, symbol, period string) ([]models.Bar, bool) {
	a.limiter.Wait(ctx, SourceAlphaVantage)

	function, ok := periodFunctions[period]
	if !ok {
		function = "TIME_SERIES_MONTHLY"
	}

	params := map[string]string{
		"function": function,
		"symbol":   symbol,
		"apikey":   a.apiKey,
	}
	if function == "TIME_SERIES_INTRADAY" {
		params["interval"] = "5min"
	}

	var payload map[string]interface{}
	err := a.client.SendAndParse(ctx, &apihttp.RequestOptions{
		Method:      apihttp.MethodGet,
		URL:         a.baseURL,
		QueryParams: params,
	}, &payload)
	if err != nil {
		a.miss(symbol, "history request failed", err)
		return nil, false
	}

	if _, bad := payload["Error Message"]; bad {
		return nil, false
	}
	if _, bad := payload["Note"]; bad {
		return nil, false
	}

	var series map[string]interface{}
	for key, value := range payload {
		if strings.Contains(key, "Time Series") {
			series, _ = value.(map[string]interface{})
			break
		}
	}
	if len(series) == 0 {
		return nil, false
	}

	bars := make([]models.Bar, 0, len(series))
	for date, raw := range series {
		values, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		bars = append(bars, models.Bar{
			Date:   date,
			Open:   seriesFloat(values, "1. open"),
			High:   seriesFloat(values, "2. high"),
			Low:    seriesFloat(values, "3. low"),
			Close:  seriesFloat(values, "4. close"),
			Volume: int64(seriesFloat(values, "5. volume")),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })
	if len(bars) > alphaHistoryLimit {
		bars = bars[len(bars)-alphaHistoryLimit:]
	}
	return bars, true
}

// FetchOverview retrieves company fundamentals from the OVERVIEW endpoint.
// Only stocks are covered; empty or "None" fields stay absent.
func (a *AlphaVantage) FetchOverview(ctx context.Context, symbol string) (*models.AssetMetadata, bool) {
	a.limiter.Wait(ctx, SourceAlphaVantage)

	var payload map[string]string
	err := a.client.SendAndParse(ctx, &apihttp.RequestOptions{
		Method: apihttp.MethodGet,
		URL:    a.baseURL,
		QueryParams: map[string]string{
			"function": "OVERVIEW",
			"symbol":   symbol,
			"apikey":   a.apiKey,
		},
	}, &payload)
	if err != nil {
		a.miss(symbol, "overview request failed", err)
		return nil, false
	}

	if payload["Error Message"] != "" || payload["Note"] != "" {
		return nil, false
	}
	if payload["Symbol"] == "" {
		return nil, false
	}

	meta := &models.AssetMetadata{
		Symbol:        models.NormalizeSymbol(symbol),
		Name:          payload["Name"],
		Type:          models.AssetStock,
		Exchange:      payload["Exchange"],
		Currency:      payload["Currency"],
		Sector:        payload["Sector"],
		Industry:      payload["Industry"],
		PERatio:       optionalFloat(payload["PERatio"]),
		PBRatio:       optionalFloat(payload["PriceToBookRatio"]),
		DividendYield: optionalFloat(payload["DividendYield"]),
		MarketCap:     optionalFloat(payload["MarketCapitalization"]),
		WeekHigh52:    optionalFloat(payload["52WeekHigh"]),
		WeekLow52:     optionalFloat(payload["52WeekLow"]),
		EPS:           optionalFloat(payload["EPS"]),
	}
	if beta := optionalFloat(payload["Beta"]); beta != nil {
		meta.Beta = *beta
	}

	metrics.ProviderRequests.WithLabelValues(SourceAlphaVantage, "success").Inc()
	return meta, true
}

func (a *AlphaVantage) miss(symbol, reason string, err error) {
	metrics.ProviderRequests.WithLabelValues(SourceAlphaVantage, "failure").Inc()
	fields := []applogger.Field{
		applogger.String("provider", SourceAlphaVantage),
		applogger.String("symbol", symbol),
		applogger.String("reason", reason),
	}
	if err != nil {
		fields = append(fields, applogger.Error(err))
	}
	a.l.Warn("provider returned no data", fields...)
}

func fieldFloat(m map[string]string, key string, fallback float64) float64 {
	v, ok := m[key]
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func fieldPercent(m map[string]string, key string) float64 {
	v, ok := m[key]
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
	if err != nil {
		return 0
	}
	return f
}

func fieldInt(m map[string]string, key string) int64 {
	v, ok := m[key]
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func seriesFloat(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	case float64:
		return v
	default:
		return 0
	}
}

func optionalFloat(v string) *float64 {
	if v == "" || v == "None" || v == "-" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
