package api

import (
	"github.com/labstack/echo/v4"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/usecase"
	apihttp "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/http"
	applogger "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/logger"
)

// SignalsHandler serves technical analysis bundles and the market overview.
type SignalsHandler struct {
	analysis *usecase.Analysis
	l        *applogger.Logger
}

func NewSignalsHandler(analysis *usecase.Analysis, l *applogger.Logger) *SignalsHandler {
	return &SignalsHandler{analysis: analysis, l: l}
}

func (h *SignalsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/signals/:symbol", h.GetSignals)
	g.POST("/signals/overview", h.GetMarketOverview)
}

func (h *SignalsHandler) GetSignals(c echo.Context) error {
	var req models.SignalRequest
	if errs := apihttp.ReadAndValidateRequest(c, &req); errs != nil {
		return apihttp.BadRequestResponse(c, errs)
	}

	bundle, ok := h.analysis.ComputeSignalBundle(c.Request().Context(), req.Symbol, req.Period)
	if !ok {
		return apihttp.AppErrorResponse(c, apihttp.NotFoundErrorf("no signal data available for %s", req.Symbol))
	}
	return apihttp.SuccessResponse(c, bundle)
}

func (h *SignalsHandler) GetMarketOverview(c echo.Context) error {
	var req models.OverviewRequest
	if errs := apihttp.ReadAndValidateRequest(c, &req); errs != nil {
		return apihttp.BadRequestResponse(c, errs)
	}

	overview := h.analysis.GetMarketOverview(c.Request().Context(), req.Symbols, "1mo")
	return apihttp.SuccessResponse(c, overview)
}
