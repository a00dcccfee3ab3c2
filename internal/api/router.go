package api

import (
	"net/http"
	"time"

	"logistics-orders/internal/modules/orders"
	"logistics-orders/internal/modules/tracking"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(
	e *echo.Echo,
	orderHandler *orders.Handler,
	trackingHandler *tracking.Handler,
) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"service": "order-management",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	orderGroup := e.Group("/orders")
	{
		orderGroup.GET("", orderHandler.ListOrders)
		orderGroup.POST("", orderHandler.CreateOrder)
		orderGroup.GET("/:orderId", orderHandler.GetOrder)
		orderGroup.PUT("/:orderId", orderHandler.UpdateOrder)
		orderGroup.DELETE("/:orderId", orderHandler.DeleteOrder)

		orderGroup.GET("/:orderId/items", orderHandler.ListItems)
		orderGroup.POST("/:orderId/items", orderHandler.AddItem)
		orderGroup.GET("/:orderId/items/:itemId", orderHandler.GetItem)
		orderGroup.PUT("/:orderId/items/:itemId", orderHandler.UpdateItem)
		orderGroup.DELETE("/:orderId/items/:itemId", orderHandler.RemoveItem)

		orderGroup.GET("/:orderId/calculations", orderHandler.ListCalculations)
		orderGroup.POST("/:orderId/calculations", orderHandler.CreateCalculation)
		orderGroup.GET("/:orderId/calculations/:calculationId", orderHandler.GetCalculation)
		orderGroup.PUT("/:orderId/calculations/:calculationId", orderHandler.UpdateCalculation)
		orderGroup.DELETE("/:orderId/calculations/:calculationId", orderHandler.DeleteCalculation)

		orderGroup.GET("/:orderId/status-history", orderHandler.ListHistory)
		orderGroup.POST("/:orderId/status-history", orderHandler.RecordStatus)
		orderGroup.GET("/:orderId/status-history/:historyId", orderHandler.GetHistoryEntry)
		orderGroup.DELETE("/:orderId/status-history/:historyId", orderHandler.DeleteHistoryEntry)
	}

	// Live-location demo stream.
	e.GET("/ws/track", trackingHandler.StreamLocations)
}
