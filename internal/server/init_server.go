package server

import (
	"github.com/labstack/echo/v4"
	"github.com/takatori/sbekms/internal"
	"github.com/takatori/sbekms/internal/kg/sparql"
	"github.com/takatori/sbekms/internal/server/handler"
	"github.com/takatori/sbekms/internal/vocab"
)

func InitServer(config *internal.Config) (*echo.Echo, error) {
	e := echo.New()

	ns := vocab.Namespaces{
		WDO:      config.WdoNamespace,
		Instance: config.InstanceNamespace,
	}
	client := sparql.NewClient(config)
	service := sparql.NewService(client, ns)
	annotator := sparql.NewAnnotator(client, ns)

	e.GET("/health", handler.NewHealthHandler(client))
	e.POST("/graph/explore", handler.NewExploreGraphHandler(service))
	e.POST("/search", handler.NewSearchHandler(service))
	e.POST("/store/setup", handler.NewSetupStoreHandler(client))
	e.GET("/store/stats", handler.NewStoreStatsHandler(client))
	e.POST("/assets/annotate", handler.NewAnnotateAssetHandler(annotator))

	return e, nil
}
