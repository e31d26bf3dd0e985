package api

import (
	"github.com/labstack/echo/v4"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/usecase"
	apihttp "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/http"
	applogger "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/logger"
)

// MarketHandler serves quotes, batch prices, market summary, symbol search,
// and asset metadata.
type MarketHandler struct {
	market *usecase.MarketData
	l      *applogger.Logger
}

func NewMarketHandler(market *usecase.MarketData, l *applogger.Logger) *MarketHandler {
	return &MarketHandler{market: market, l: l}
}

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/prices/summary", h.GetMarketSummary)
	g.GET("/prices/:symbol", h.GetPrice)
	g.POST("/prices/batch", h.GetBatchPrices)
	g.GET("/symbols/search", h.SearchSymbols)
	g.GET("/assets/:symbol", h.GetAssetMetadata)
}

func (h *MarketHandler) GetPrice(c echo.Context) error {
	var req models.PriceRequest
	if errs := apihttp.ReadAndValidateRequest(c, &req); errs != nil {
		return apihttp.BadRequestResponse(c, errs)
	}

	rec, ok := h.market.GetPriceWithHistory(c.Request().Context(), req.Symbol, req.Period)
	if !ok {
		return apihttp.AppErrorResponse(c, apihttp.NotFoundErrorf("no price data available for %s", req.Symbol))
	}
	return apihttp.SuccessResponse(c, rec)
}

func (h *MarketHandler) GetBatchPrices(c echo.Context) error {
	var req models.BatchPricesRequest
	if errs := apihttp.ReadAndValidateRequest(c, &req); errs != nil {
		return apihttp.BadRequestResponse(c, errs)
	}

	prices := h.market.GetMultiplePrices(c.Request().Context(), req.Symbols, "1mo")
	return apihttp.SuccessResponse(c, prices)
}

func (h *MarketHandler) GetMarketSummary(c echo.Context) error {
	summary := h.market.GetMarketSummary(c.Request().Context())
	return apihttp.SuccessResponse(c, summary)
}

func (h *MarketHandler) SearchSymbols(c echo.Context) error {
	var req models.SymbolSearchRequest
	if errs := apihttp.ReadAndValidateRequest(c, &req); errs != nil {
		return apihttp.BadRequestResponse(c, errs)
	}

	matches := h.market.SearchSymbols(req.Query, req.Limit)
	return apihttp.SuccessResponse(c, matches)
}

func (h *MarketHandler) GetAssetMetadata(c echo.Context) error {
	var req models.MetadataRequest
	if errs := apihttp.ReadAndValidateRequest(c, &req); errs != nil {
		return apihttp.BadRequestResponse(c, errs)
	}

	meta := h.market.GetAssetMetadata(c.Request().Context(), req.Symbol)
	return apihttp.SuccessResponse(c, meta)
}
