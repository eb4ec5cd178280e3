package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/takatori/sbekms/internal/kg"
)

// NewSearchHandler creates a handler running unified asset search.
func NewSearchHandler(searcher kg.AssetSearcher) func(echo.Context) error {
	return func(c echo.Context) error {
		var query kg.SearchQuery
		if err := c.Bind(&query); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}

		response, err := searcher.Search(c.Request().Context(), query)
		if err != nil {
			return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, response)
	}
}
