package utils

import (
	"errors"
	"net/http"
	"strconv"

	"logistics-orders/internal/models"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondWithJSON writes a JSON response with the given status code.
func RespondWithJSON(c echo.Context, code int, payload interface{}) error {
	return c.JSON(code, payload)
}

// RespondWithError writes a JSON error body with the given status code.
func RespondWithError(c echo.Context, code int, message string) error {
	return c.JSON(code, ErrorResponse{Error: message})
}

// HandleServiceError maps service-layer errors onto HTTP responses:
// ErrNotFound to 404, ErrConflict to 400, anything else to 500.
func HandleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, models.ErrConflict):
		return RespondWithError(c, http.StatusBadRequest, "Request conflicts with existing data")
	default:
		return RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// GetOffsetLimit reads the offset and limit query parameters, falling back
// to 0 and 100 for missing or malformed values.
func GetOffsetLimit(c echo.Context) (int, int) {
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = 100
	}
	return offset, limit
}
