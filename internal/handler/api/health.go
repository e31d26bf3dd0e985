package api

import (
	"time"

	"github.com/labstack/echo/v4"

	apihttp "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/http"
)

// HealthHandler reports liveness.
type HealthHandler struct {
	environment string
}

func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{environment: environment}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/health", h.Health)
}

func (h *HealthHandler) Health(c echo.Context) error {
	return apihttp.SuccessResponse(c, map[string]interface{}{
		"status":      "ok",
		"environment": h.environment,
		"timestamp":   time.Now().UTC(),
	})
}
