// Package tracking streams synthetic live-location updates to browser
// clients over a WebSocket connection. It is a demo feed; the values are
// random and carry no relation to stored orders.
package tracking

import (
	"math/rand/v2"
	"net/http"
	"time"

	"logistics-orders/internal/models"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var demoStatuses = []models.OrderStatus{
	models.OrderStatusPending,
	models.OrderStatusInTransit,
	models.OrderStatusDelivered,
}

// Handler serves the live-location WebSocket endpoint.
type Handler struct {
	interval time.Duration
}

// NewHandler creates a tracking handler pushing one update per interval.
func NewHandler(interval time.Duration) *Handler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Handler{interval: interval}
}

// StreamLocations upgrades the request to a WebSocket and sends a random
// location frame on every tick until the client goes away.
func (h *Handler) StreamLocations(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for range ticker.C {
		update := models.TrackingUpdate{
			Latitude:    -90 + rand.Float64()*180,
			Longitude:   -180 + rand.Float64()*360,
			OrderStatus: demoStatuses[rand.IntN(len(demoStatuses))],
		}
		if err := ws.WriteJSON(update); err != nil {
			// Client disconnected.
			return nil
		}
	}
	return nil
}
