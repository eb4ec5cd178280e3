package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/takatori/sbekms/internal/kg/sparql"
)

// NewSetupStoreHandler creates a handler that ensures the triplestore
// repository exists, creating it when absent.
func NewSetupStoreHandler(client *sparql.Client) func(echo.Context) error {
	return func(c echo.Context) error {
		created, err := client.EnsureRepository(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create repository"})
		}

		message := "Repository already exists"
		if created {
			message = "Repository created successfully"
		}
		return c.JSON(http.StatusOK, map[string]string{"message": message})
	}
}

// NewStoreStatsHandler creates a handler reporting repository statistics.
func NewStoreStatsHandler(client *sparql.Client) func(echo.Context) error {
	return func(c echo.Context) error {
		stats, err := client.Stats(c.Request().Context())
		if err != nil {
			return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, stats)
	}
}

// NewAnnotateAssetHandler creates a handler that turns uploaded-asset
// metadata into RDF statements.
func NewAnnotateAssetHandler(annotator *sparql.Annotator) func(echo.Context) error {
	return func(c echo.Context) error {
		var meta sparql.AssetMetadata
		if err := c.Bind(&meta); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		if meta.FileName == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "file_name is required"})
		}

		assetURI, count, err := annotator.Annotate(c.Request().Context(), meta)
		if err != nil {
			return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"asset_uri":     assetURI,
			"triples_added": count,
		})
	}
}
