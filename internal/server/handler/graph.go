package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/morikuni/failure/v2"
	"github.com/takatori/sbekms/internal/errors"
	"github.com/takatori/sbekms/internal/kg"
)

// NewExploreGraphHandler creates a handler translating graph exploration
// requests into triple-store queries and projected graphs.
func NewExploreGraphHandler(explorer kg.GraphExplorer) func(echo.Context) error {
	return func(c echo.Context) error {
		var query kg.GraphQuery
		if err := c.Bind(&query); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}

		result, err := explorer.Explore(c.Request().Context(), query)
		if err != nil {
			return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, result)
	}
}

// statusFor maps error codes onto HTTP statuses: validation failures are
// the client's fault, everything else is ours or the store's.
func statusFor(err error) int {
	switch failure.CodeOf(err) {
	case errors.ErrInvalidQuery:
		return http.StatusBadRequest
	case errors.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
