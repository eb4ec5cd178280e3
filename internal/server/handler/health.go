package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/takatori/sbekms/internal/kg/sparql"
)

// NewHealthHandler reports service liveness and triplestore connectivity.
func NewHealthHandler(client *sparql.Client) func(echo.Context) error {
	return func(c echo.Context) error {
		store := "connected"
		if !client.TestConnection(c.Request().Context()) {
			store = "unreachable"
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status":      "healthy",
			"service":     "knowledge-graph",
			"triplestore": store,
		})
	}
}
