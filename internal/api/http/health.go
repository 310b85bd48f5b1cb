package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fonovalabs/fonova-web/internal/cms/client"
	"github.com/fonovalabs/fonova-web/internal/site/feed"
	"github.com/gin-gonic/gin"
)

type UpstreamStats struct {
	Calls        int64   `json:"calls"`
	Errors       int64   `json:"errors"`
	ErrorRate    float64 `json:"error_rate"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

type HealthResponse struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	Brand     string        `json:"brand,omitempty"`
	Cache     string        `json:"cache"`
	CacheKind string        `json:"cache_kind,omitempty"`
	Upstream  UpstreamStats `json:"upstream"`
}

type HealthHandler struct {
	serviceName string
	version     string
	brand       string
	cache       feed.Cache
}

func NewHealthHandler(serviceName, version, brand string, cache feed.Cache) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		brand:       brand,
		cache:       cache,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	cacheStatus := "disabled"
	cacheKind := ""
	if h.cache != nil {
		cacheKind = h.cache.Name()
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.cache.Ping(pingCtx); err != nil {
			cacheStatus = "down"
		} else {
			cacheStatus = "up"
		}
	}

	m := client.GetMetrics()
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Brand:     h.brand,
		Cache:     cacheStatus,
		CacheKind: cacheKind,
		Upstream: UpstreamStats{
			Calls:        m.Calls,
			Errors:       m.Errors,
			ErrorRate:    m.ErrorRate(),
			AvgLatencyMs: m.AverageLatencyMs(),
		},
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
