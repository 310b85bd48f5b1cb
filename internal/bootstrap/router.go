package bootstrap

import (
	httpapi "github.com/fonovalabs/fonova-web/internal/api/http"
	"github.com/fonovalabs/fonova-web/internal/api/http/middleware"
	"github.com/fonovalabs/fonova-web/internal/api/http/routes"
	"github.com/fonovalabs/fonova-web/internal/api/http/site"
	"github.com/fonovalabs/fonova-web/internal/site/content"
	"github.com/fonovalabs/fonova-web/internal/site/feed"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Content        *content.Document
	Feed           *feed.Feed
	Quotes         site.QuoteSubmitter
	QuotePerMin    int
	MaxUploadMB    int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.CORS(dep.AllowedOrigins))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Content.Brand, dep.Feed.Cache())
	healthHandler.RegisterRoutes(r)

	routes.RegisterV1(r, routes.V1Deps{
		Content:     dep.Content,
		Feed:        dep.Feed,
		Quotes:      dep.Quotes,
		QuotePerMin: dep.QuotePerMin,
		MaxUploadMB: dep.MaxUploadMB,
	})

	return r
}
