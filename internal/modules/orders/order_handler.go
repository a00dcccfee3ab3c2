package orders

import (
	"net/http"
	"strconv"

	"logistics-orders/internal/models"
	"logistics-orders/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for orders and their child resources.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new order handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func pathID(c echo.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// --- Orders ---

func (h *Handler) ListOrders(c echo.Context) error {
	offset, limit := utils.GetOffsetLimit(c)
	orders, err := h.svc.ListOrders(c.Request().Context(), offset, limit)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, orders)
}

func (h *Handler) CreateOrder(c echo.Context) error {
	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	order, err := h.svc.CreateOrder(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, order)
}

func (h *Handler) GetOrder(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}

	order, err := h.svc.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, order)
}

func (h *Handler) UpdateOrder(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}

	var req models.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	order, err := h.svc.UpdateOrder(c.Request().Context(), orderID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, order)
}

func (h *Handler) DeleteOrder(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}

	if err := h.svc.DeleteOrder(c.Request().Context(), orderID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Order items ---

func (h *Handler) ListItems(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}

	items, err := h.svc.ListItems(c.Request().Context(), orderID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if items == nil {
		items = []*models.OrderItem{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, items)
}

func (h *Handler) AddItem(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}

	var req models.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	item, err := h.svc.AddItem(c.Request().Context(), orderID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, item)
}

func (h *Handler) GetItem(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID")
	}

	item, err := h.svc.GetItem(c.Request().Context(), orderID, itemID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, item)
}

func (h *Handler) UpdateItem(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID")
	}

	var req models.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	item, err := h.svc.UpdateItem(c.Request().Context(), orderID, itemID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, item)
}

func (h *Handler) RemoveItem(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID")
	}

	if err := h.svc.RemoveItem(c.Request().Context(), orderID, itemID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Price calculations ---

func (h *Handler) ListCalculations(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}

	calcs, err := h.svc.ListCalculations(c.Request().Context(), orderID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if calcs == nil {
		calcs = []*models.PriceCalculation{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, calcs)
}

func (h *Handler) CreateCalculation(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}

	var req models.CreateCalculationRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	calc, err := h.svc.CreateCalculation(c.Request().Context(), orderID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, calc)
}

func (h *Handler) GetCalculation(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}
	calculationID, ok := pathID(c, "calculationId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid calculation ID")
	}

	calc, err := h.svc.GetCalculation(c.Request().Context(), orderID, calculationID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, calc)
}

func (h *Handler) UpdateCalculation(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}
	calculationID, ok := pathID(c, "calculationId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid calculation ID")
	}

	var req models.UpdateCalculationRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	calc, err := h.svc.UpdateCalculation(c.Request().Context(), orderID, calculationID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, calc)
}

func (h *Handler) DeleteCalculation(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}
	calculationID, ok := pathID(c, "calculationId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid calculation ID")
	}

	if err := h.svc.DeleteCalculation(c.Request().Context(), orderID, calculationID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Status history ---

func (h *Handler) ListHistory(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}

	entries, err := h.svc.ListHistory(c.Request().Context(), orderID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if entries == nil {
		entries = []*models.OrderStatusHistory{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, entries)
}

func (h *Handler) RecordStatus(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}

	var req models.CreateHistoryRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	entry, err := h.svc.RecordStatus(c.Request().Context(), orderID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, entry)
}

func (h *Handler) GetHistoryEntry(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}
	historyID, ok := pathID(c, "historyId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid history ID")
	}

	entry, err := h.svc.GetHistoryEntry(c.Request().Context(), orderID, historyID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, entry)
}

func (h *Handler) DeleteHistoryEntry(c echo.Context) error {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID")
	}
	historyID, ok := pathID(c, "historyId")
	if !ok {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid history ID")
	}

	if err := h.svc.DeleteHistoryEntry(c.Request().Context(), orderID, historyID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
