package routes

import (
	"github.com/fonovalabs/fonova-web/internal/api/http/middleware"
	"github.com/fonovalabs/fonova-web/internal/api/http/site"
	"github.com/fonovalabs/fonova-web/internal/site/content"
	"github.com/fonovalabs/fonova-web/internal/site/feed"
	"github.com/fonovalabs/fonova-web/internal/site/quote"

	"github.com/gin-gonic/gin"
)

type V1Deps struct {
	Content      *content.Document
	Feed         *feed.Feed
	Quotes       site.QuoteSubmitter
	QuotePerMin  int
	MaxUploadMB  int
	QuoteCatalog *quote.Catalog
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")

	catalog := quote.DefaultCatalog
	if dep.QuoteCatalog != nil {
		catalog = *dep.QuoteCatalog
	}

	limiter := middleware.NewRateLimiter(dep.QuotePerMin)
	h := site.New(dep.Content, dep.Feed, catalog, dep.Quotes, dep.MaxUploadMB)
	h.Register(api, limiter.Middleware())
}
