package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/domain/models"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/usecase"
	applogger "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/logger"
)

const (
	maxStreamSymbols = 10
	writeDeadline    = 10 * time.Second
)

// StreamHandler pushes periodic quote refreshes to WebSocket subscribers.
type StreamHandler struct {
	market   *usecase.MarketData
	interval time.Duration
	upgrader websocket.Upgrader
	l        *applogger.Logger
}

func NewStreamHandler(market *usecase.MarketData, interval time.Duration, l *applogger.Logger) *StreamHandler {
	return &StreamHandler{
		market:   market,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		l: l,
	}
}

func (h *StreamHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/ws/prices", h.StreamPrices)
}

type priceUpdate struct {
	Type      string                         `json:"type"`
	Timestamp time.Time                      `json:"timestamp"`
	Prices    map[string]*models.PriceRecord `json:"prices"`
}

// StreamPrices upgrades the connection and sends a price snapshot for the
// subscribed symbols on every refresh tick until the client disconnects.
func (h *StreamHandler) StreamPrices(c echo.Context) error {
	symbols := parseStreamSymbols(c.QueryParam("symbols"))
	if len(symbols) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "symbols query parameter is required"})
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	h.l.Info("price stream opened",
		applogger.Strings("symbols", symbols),
		applogger.String("remote", conn.RemoteAddr().String()),
	)

	ctx := c.Request().Context()

	// Reader goroutine: drains control frames and signals disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		update := priceUpdate{
			Type:      "prices",
			Timestamp: time.Now().UTC(),
			Prices:    h.market.GetMultiplePrices(ctx, symbols, "1d"),
		}

		conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := conn.WriteJSON(update); err != nil {
			h.l.Debug("price stream closed", applogger.Error(err))
			return nil
		}

		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func parseStreamSymbols(raw string) []string {
	parts := strings.Split(raw, ",")
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		s := models.NormalizeSymbol(p)
		if s == "" {
			continue
		}
		symbols = append(symbols, s)
		if len(symbols) == maxStreamSymbols {
			break
		}
	}
	return symbols
}
