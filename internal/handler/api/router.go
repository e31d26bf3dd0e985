package api

import "github.com/labstack/echo/v4"

// Router aggregates every API handler behind the single Handler interface
// the server expects.
type Router struct {
	handlers []interface{ RegisterRoutes(e *echo.Echo) }
}

func NewRouter(market *MarketHandler, signals *SignalsHandler, stream *StreamHandler, health *HealthHandler) *Router {
	return &Router{
		handlers: []interface{ RegisterRoutes(e *echo.Echo) }{
			market, signals, stream, health,
		},
	}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	for _, h := range r.handlers {
		h.RegisterRoutes(e)
	}
}
